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
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s := NewStore()

	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time {
		return now
	}

	var n int

	s.newID = func() string {
		n++

		return fmt.Sprintf("created-%d", n)
	}

	return s
}

func TestStoreSeeded(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	require.Equal(t, 13, s.Len())

	for _, id := range []string{"1", "7", "13"} {
		assert.True(t, s.Reserved(id), id)
	}

	o, err := s.Get("7")
	require.NoError(t, err)
	assert.Equal(t, "Apple MacBook Pro 16", o.Name)
}

func TestStoreListOrder(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created := s.Create("Widget", nil)

	all := s.List(nil)
	require.Len(t, all, 14)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, created.ID, all[13].ID)

	some := s.List([]string{"3", "missing", "1"})
	require.Len(t, some, 2)
	assert.Equal(t, "3", some[0].ID)
	assert.Equal(t, "1", some[1].ID)
}

func TestStoreCreateIsolated(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	data := map[string]interface{}{
		"color": "red",
		"nested": map[string]interface{}{
			"a": 1.0,
		},
	}

	created := s.Create("Widget", data)
	require.NotNil(t, created.CreatedAt)
	assert.Nil(t, created.UpdatedAt)

	data["color"] = "blue"
	data["nested"].(map[string]interface{})["a"] = 2.0

	o, err := s.Get(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "red", o.Data["color"])
	assert.Equal(t, 1.0, o.Data["nested"].(map[string]interface{})["a"])
}

func TestStoreReplace(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created := s.Create("Widget", map[string]interface{}{"color": "red", "price": 10.0})

	updated, err := s.Replace(created.ID, "Gadget", map[string]interface{}{"price": 20.0})
	require.NoError(t, err)
	assert.Equal(t, "Gadget", updated.Name)
	assert.Equal(t, map[string]interface{}{"price": 20.0}, updated.Data)
	require.NotNil(t, updated.UpdatedAt)
}

func TestStorePatchMerges(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created := s.Create("Widget", map[string]interface{}{
		"color": "red",
		"price": 10.0,
		"dims": map[string]interface{}{
			"w": 1.0,
			"h": 2.0,
		},
	})

	patched, err := s.Patch(created.ID, nil, map[string]interface{}{
		"price": 99.5,
		"dims": map[string]interface{}{
			"h": 3.0,
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Widget", patched.Name)
	assert.Equal(t, "red", patched.Data["color"])
	assert.Equal(t, 99.5, patched.Data["price"])
	assert.Equal(t, map[string]interface{}{"w": 1.0, "h": 3.0}, patched.Data["dims"])

	name := "Renamed"

	patched, err = s.Patch(created.ID, &name, nil)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", patched.Name)
	assert.Equal(t, 99.5, patched.Data["price"])
}

func TestStoreDelete(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	created := s.Create("Widget", nil)

	require.NoError(t, s.Delete(created.ID))
	require.ErrorIs(t, s.Delete(created.ID), ErrNotFound)

	_, err := s.Get(created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 13, s.Len())
}

func TestStoreReservedImmutable(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	_, err := s.Replace("1", "x", nil)
	require.ErrorIs(t, err, ErrReserved)

	_, err = s.Patch("1", nil, map[string]interface{}{"color": "x"})
	require.ErrorIs(t, err, ErrReserved)

	require.ErrorIs(t, s.Delete("1"), ErrReserved)

	_, err = s.Replace("missing", "x", nil)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreReset(t *testing.T) {
	t.Parallel()

	s := newTestStore(t)

	s.Create("a", nil)
	s.Create("b", nil)
	s.Reset()

	assert.Equal(t, 13, s.Len())
	assert.Len(t, s.List(nil), 13)
}
