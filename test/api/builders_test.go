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

package api_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nscaledev/restful-objects-contract/test/api"
)

func TestItemPayloadDefaults(t *testing.T) {
	t.Parallel()

	payload := api.NewItemPayload().Build()
	require.Equal(t, map[string]interface{}{
		"type":          "book",
		"price":         10.0,
		"numberinstock": 5,
	}, payload)
}

func TestItemPayloadNegativePrice(t *testing.T) {
	t.Parallel()

	payload := api.NewItemPayload().WithPrice(-10.0).Build()
	require.Equal(t, "book", payload["type"])
	require.InDelta(t, -10.0, payload["price"], 0)
	require.Equal(t, 5, payload["numberinstock"])
}

func TestItemPayloadBuildCopies(t *testing.T) {
	t.Parallel()

	builder := api.NewItemPayload()
	payload := builder.Build()
	payload["type"] = "pen"

	require.Equal(t, "book", builder.Build()["type"])
}
