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

// Package fixture generates randomized, schema valid object payloads.
package fixture

import (
	"math"
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// PriceRange is a closed interval with a fixed number of fractional digits.
type PriceRange struct {
	Min    float64
	Max    float64
	Digits int
}

// Common ranges used by the suites.
var (
	DefaultPrice = PriceRange{Min: 10, Max: 1000, Digits: 2}
	LowPrice     = PriceRange{Min: 10, Max: 500, Digits: 2}
	HighPrice    = PriceRange{Min: 500, Max: 1000, Digits: 2}
	PatchPrice   = PriceRange{Min: 100, Max: 1000, Digits: 2}
)

// Data is the nested data block of an object.
type Data struct {
	Color string  `json:"color"`
	Price float64 `json:"price"`
}

// Fixture is a generated object payload.
type Fixture struct {
	Name string `json:"name"`
	Data Data   `json:"data"`
}

// Map renders the fixture as a JSON request body.
func (f Fixture) Map() map[string]interface{} {
	return map[string]interface{}{
		"name": f.Name,
		"data": map[string]interface{}{
			"color": f.Data.Color,
			"price": f.Data.Price,
		},
	}
}

// Generator produces fixtures. It is safe for concurrent use.
type Generator struct {
	lock  sync.Mutex
	faker *gofakeit.Faker
}

// New returns a generator. A zero seed picks a random one.
func New(seed uint64) *Generator {
	return &Generator{
		faker: gofakeit.New(seed),
	}
}

// Name returns a product name.
func (g *Generator) Name() string {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.faker.ProductName()
}

// Color returns a human readable colour name.
func (g *Generator) Color() string {
	g.lock.Lock()
	defer g.lock.Unlock()

	return g.faker.SafeColor()
}

// Price returns a value drawn uniformly from the range, rounded to the
// requested number of fractional digits. Reversed bounds are swapped.
func (g *Generator) Price(r PriceRange) float64 {
	lo, hi := r.Min, r.Max
	if lo > hi {
		lo, hi = hi, lo
	}

	g.lock.Lock()
	value := g.faker.Float64Range(lo, hi)
	g.lock.Unlock()

	return Round(value, lo, hi, r.Digits)
}

// Object returns a complete fixture with its price drawn from r.
func (g *Generator) Object(r PriceRange) Fixture {
	return Fixture{
		Name: g.Name(),
		Data: Data{
			Color: g.Color(),
			Price: g.Price(r),
		},
	}
}

// MaxDigits is the most fractional digits a float64 price can carry.
// Larger requests are clamped.
const MaxDigits = 15

// Round rounds value to digits fractional digits, keeping it inside [lo, hi]
// whenever the interval holds a value with that precision. Digits are
// clamped to [0, MaxDigits].
func Round(value, lo, hi float64, digits int) float64 {
	scale := math.Pow10(min(max(digits, 0), MaxDigits))

	// Magnitudes this large have no fractional digits left to round.
	if math.IsInf(value*scale, 0) || math.IsInf(hi*scale, 0) || math.IsInf(lo*scale, 0) {
		return value
	}

	rounded := math.Round(value*scale) / scale

	if rounded > hi {
		rounded = math.Floor(hi*scale) / scale
	}

	if rounded < lo {
		rounded = math.Ceil(lo*scale) / scale
	}

	return rounded
}
