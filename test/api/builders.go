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

package api

import (
	"maps"

	"github.com/nscaledev/restful-objects-contract/pkg/fixture"
)

// ObjectPayloadBuilder builds object payloads for testing.
type ObjectPayloadBuilder struct {
	fixture fixture.Fixture
}

// NewObjectPayload creates a builder seeded with a generated name, colour and
// a price drawn from r.
func NewObjectPayload(generator *fixture.Generator, r fixture.PriceRange) *ObjectPayloadBuilder {
	return &ObjectPayloadBuilder{
		fixture: generator.Object(r),
	}
}

// WithName sets the object name.
func (b *ObjectPayloadBuilder) WithName(name string) *ObjectPayloadBuilder {
	b.fixture.Name = name
	return b
}

// WithColor sets data.color.
func (b *ObjectPayloadBuilder) WithColor(color string) *ObjectPayloadBuilder {
	b.fixture.Data.Color = color
	return b
}

// WithPrice sets data.price verbatim, including values outside any range.
func (b *ObjectPayloadBuilder) WithPrice(price float64) *ObjectPayloadBuilder {
	b.fixture.Data.Price = price
	return b
}

// Fixture returns the typed payload.
func (b *ObjectPayloadBuilder) Fixture() fixture.Fixture {
	return b.fixture
}

// Build returns the payload as a JSON mapping.
func (b *ObjectPayloadBuilder) Build() map[string]interface{} {
	return b.fixture.Map()
}

// ItemPayloadBuilder builds item payloads. Items carry a type, a price and a
// stock count rather than the name/data shape of objects.
type ItemPayloadBuilder struct {
	payload map[string]interface{}
}

// NewItemPayload creates a builder with a book priced at 10 and 5 in stock.
func NewItemPayload() *ItemPayloadBuilder {
	return &ItemPayloadBuilder{
		payload: map[string]interface{}{
			"type":          "book",
			"price":         10.0,
			"numberinstock": 5,
		},
	}
}

// WithType sets the item type.
func (b *ItemPayloadBuilder) WithType(kind string) *ItemPayloadBuilder {
	b.payload["type"] = kind
	return b
}

// WithPrice sets the price verbatim, negative values included.
func (b *ItemPayloadBuilder) WithPrice(price float64) *ItemPayloadBuilder {
	b.payload["price"] = price
	return b
}

// WithNumberInStock sets the stock count.
func (b *ItemPayloadBuilder) WithNumberInStock(n int) *ItemPayloadBuilder {
	b.payload["numberinstock"] = n
	return b
}

// Build returns a copy of the payload.
func (b *ItemPayloadBuilder) Build() map[string]interface{} {
	return maps.Clone(b.payload)
}
