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

//nolint:testpackage,revive // test package in suites is standard for these tests, dot imports standard for Ginkgo
package suites

import (
	"net/http"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nscaledev/restful-objects-contract/test/api"
)

// The service has no items resource, every request is answered by the
// framework's not found handler.
func describeItems() {
	Describe("Items", func() {
		Context("When creating an item", func() {
			Describe("Given a negative price", func() {
				It("should return 404", func() {
					payload := api.NewItemPayload().WithPrice(-10.0).Build()

					Expect(payload).To(HaveKeyWithValue("price", BeNumerically("<", 0)))

					resp := client.MustCreateItem(ctx, payload)
					Expect(resp).To(api.HaveStatus(http.StatusNotFound))
				})
			})
		})

		Context("When updating an item", func() {
			Describe("Given an empty body", func() {
				It("should return 404", func() {
					resp := client.MustUpdateItem(ctx, "1", map[string]interface{}{})
					Expect(resp).To(api.HaveStatus(http.StatusNotFound))
				})
			})
		})
	})
}
