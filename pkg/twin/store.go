/*
Copyright 2026 Nscale.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package twin

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"maps"
	"sync"
	"time"

	"k8s.io/utils/ptr"
)

var (
	// ErrNotFound is returned when no object has the requested id.
	ErrNotFound = errors.New("object not found")

	// ErrReserved is returned when modifying one of the seeded objects.
	ErrReserved = errors.New("object is reserved")
)

// Object is a stored object.
type Object struct {
	ID        string
	Name      string
	Data      map[string]interface{}
	CreatedAt *time.Time
	UpdatedAt *time.Time
}

// Store holds objects in memory in insertion order.
type Store struct {
	lock     sync.RWMutex
	objects  map[string]*Object
	order    []string
	reserved map[string]bool
	now      func() time.Time
	newID    func() string
}

// NewStore returns a store populated with the reserved seed objects.
func NewStore() *Store {
	s := &Store{
		objects:  map[string]*Object{},
		reserved: map[string]bool{},
		now:      time.Now,
		newID:    randomID,
	}

	for _, o := range seed() {
		s.objects[o.ID] = o
		s.order = append(s.order, o.ID)
		s.reserved[o.ID] = true
	}

	return s
}

// randomID returns 32 lower case hex digits.
func randomID() string {
	bytes := make([]byte, 16)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

func copyObject(o *Object) Object {
	out := *o
	out.Data = deepCopy(o.Data)

	return out
}

func deepCopy(in map[string]interface{}) map[string]interface{} {
	if in == nil {
		return nil
	}

	out := make(map[string]interface{}, len(in))

	for k, v := range in {
		if m, ok := v.(map[string]interface{}); ok {
			out[k] = deepCopy(m)
			continue
		}

		out[k] = v
	}

	return out
}

// List returns the objects named by ids, in the order given and skipping
// unknown ones, or every object when ids is empty.
func (s *Store) List(ids []string) []Object {
	s.lock.RLock()
	defer s.lock.RUnlock()

	if len(ids) == 0 {
		ids = s.order
	}

	out := make([]Object, 0, len(ids))

	for _, id := range ids {
		if o, ok := s.objects[id]; ok {
			out = append(out, copyObject(o))
		}
	}

	return out
}

// Get returns a single object.
func (s *Store) Get(id string) (Object, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	o, ok := s.objects[id]
	if !ok {
		return Object{}, ErrNotFound
	}

	return copyObject(o), nil
}

// Create stores a new object under a fresh id.
func (s *Store) Create(name string, data map[string]interface{}) Object {
	s.lock.Lock()
	defer s.lock.Unlock()

	o := &Object{
		ID:        s.newID(),
		Name:      name,
		Data:      deepCopy(data),
		CreatedAt: ptr.To(s.now().UTC()),
	}

	s.objects[o.ID] = o
	s.order = append(s.order, o.ID)

	return copyObject(o)
}

func (s *Store) mutable(id string) (*Object, error) {
	o, ok := s.objects[id]
	if !ok {
		return nil, ErrNotFound
	}

	if s.reserved[id] {
		return nil, ErrReserved
	}

	return o, nil
}

// Replace overwrites the name and data of an object.
func (s *Store) Replace(id, name string, data map[string]interface{}) (Object, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	o, err := s.mutable(id)
	if err != nil {
		return Object{}, err
	}

	o.Name = name
	o.Data = deepCopy(data)
	o.UpdatedAt = ptr.To(s.now().UTC())

	return copyObject(o), nil
}

// Patch updates only the given fields. A nil name leaves the name alone and
// data is merged key by key, recursing into nested objects.
func (s *Store) Patch(id string, name *string, data map[string]interface{}) (Object, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	o, err := s.mutable(id)
	if err != nil {
		return Object{}, err
	}

	if name != nil {
		o.Name = *name
	}

	if data != nil {
		o.Data = merge(o.Data, data)
	}

	o.UpdatedAt = ptr.To(s.now().UTC())

	return copyObject(o), nil
}

func merge(dst, src map[string]interface{}) map[string]interface{} {
	out := deepCopy(dst)
	if out == nil {
		out = map[string]interface{}{}
	}

	for k, v := range src {
		existing, eok := out[k].(map[string]interface{})
		patch, pok := v.(map[string]interface{})

		if eok && pok {
			out[k] = merge(existing, patch)
			continue
		}

		if pok {
			out[k] = deepCopy(patch)
			continue
		}

		out[k] = v
	}

	return out
}

// Delete removes an object.
func (s *Store) Delete(id string) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, err := s.mutable(id); err != nil {
		return err
	}

	delete(s.objects, id)

	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return nil
}

// Len returns the number of stored objects, reserved ones included.
func (s *Store) Len() int {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return len(s.objects)
}

// Reserved reports whether id is one of the seeded objects.
func (s *Store) Reserved(id string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.reserved[id]
}

// Reset drops every created object, keeping the seeds.
func (s *Store) Reset() {
	s.lock.Lock()
	defer s.lock.Unlock()

	maps.DeleteFunc(s.objects, func(id string, _ *Object) bool {
		return !s.reserved[id]
	})

	order := s.order[:0]

	for _, id := range s.order {
		if s.reserved[id] {
			order = append(order, id)
		}
	}

	s.order = order
}
