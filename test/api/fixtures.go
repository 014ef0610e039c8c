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

//nolint:revive,staticcheck // dot imports are standard for Ginkgo/Gomega test code
package api

import (
	"context"
	"net/http"
	"slices"
	"sync"

	"github.com/spjmurray/go-util/pkg/set"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// ObjectTracker records objects created and deleted during a run so leaks
// can be reported.
type ObjectTracker struct {
	lock    sync.Mutex
	created []string
	deleted []string
}

func (t *ObjectTracker) Created(id string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.created = append(t.created, id)
}

func (t *ObjectTracker) Deleted(id string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.deleted = append(t.deleted, id)
}

// Leaked returns, sorted, the ids that were created but never deleted.
func (t *ObjectTracker) Leaked() []string {
	t.lock.Lock()
	defer t.lock.Unlock()

	created := set.New[string](t.created...)
	deleted := set.New[string](t.deleted...)

	var leaked []string

	for id := range created.Difference(deleted).All() {
		leaked = append(leaked, id)
	}

	slices.Sort(leaked)

	return leaked
}

// CreateObjectWithCleanup creates an object, asserts the create succeeded and
// deletes it when the current spec finishes. Transport failures panic.
func CreateObjectWithCleanup(client *APIClient, ctx context.Context, payload interface{}) (*Response, string) {
	resp := client.MustCreateObject(ctx, payload)

	Expect(resp).To(HaveStatus(http.StatusOK))

	id := resp.ID()
	Expect(id).NotTo(BeEmpty(), "create response has no id: %s", resp)

	GinkgoWriter.Printf("Created object: %s\n", id)

	DeferCleanup(func(ctx context.Context) {
		GinkgoWriter.Printf("Cleaning up object: %s\n", id)

		deleted, err := client.DeleteObject(ctx, id)
		if err != nil {
			GinkgoWriter.Printf("Warning: Failed to delete object %s: %v\n", id, err)
			return
		}

		// Cases that delete their own object leave nothing to clean.
		if deleted.StatusCode != http.StatusOK && deleted.StatusCode != http.StatusNotFound {
			GinkgoWriter.Printf("Warning: Failed to delete object %s: %s\n", id, deleted)
		}
	})

	return resp, id
}
