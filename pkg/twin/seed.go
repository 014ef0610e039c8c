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

// seed returns the read-only objects the public service ships with.
func seed() []*Object {
	return []*Object{
		{ID: "1", Name: "Google Pixel 6 Pro", Data: map[string]interface{}{"color": "Cloudy White", "capacity": "128 GB"}},
		{ID: "2", Name: "Apple iPhone 12 Mini, 256GB, Blue"},
		{ID: "3", Name: "Apple iPhone 12 Pro Max", Data: map[string]interface{}{"color": "Cloudy White", "capacity GB": 512.0}},
		{ID: "4", Name: "Apple iPhone 11, 64GB", Data: map[string]interface{}{"price": 389.99, "color": "Purple"}},
		{ID: "5", Name: "Samsung Galaxy Z Fold2", Data: map[string]interface{}{"price": 689.99, "color": "Brown"}},
		{ID: "6", Name: "Apple AirPods", Data: map[string]interface{}{"generation": "3rd", "price": 120.0}},
		{ID: "7", Name: "Apple MacBook Pro 16", Data: map[string]interface{}{"year": 2019.0, "price": 1849.99, "CPU model": "Intel Core i9", "Hard disk size": "1 TB"}},
		{ID: "8", Name: "Apple Watch Series 8", Data: map[string]interface{}{"Strap Colour": "Elderberry", "Case Size": "41mm"}},
		{ID: "9", Name: "Beats Studio3 Wireless", Data: map[string]interface{}{"Color": "Red", "Description": "High-performance wireless noise cancelling headphones"}},
		{ID: "10", Name: "Apple iPad Mini 5th Gen", Data: map[string]interface{}{"Capacity": "64 GB", "Screen size": 7.9}},
		{ID: "11", Name: "Apple iPad Mini 5th Gen", Data: map[string]interface{}{"Capacity": "254 GB", "Screen size": 7.9}},
		{ID: "12", Name: "Apple iPad Air", Data: map[string]interface{}{"Generation": "4th", "Price": "419.99", "Capacity": "64 GB"}},
		{ID: "13", Name: "Apple iPad Air", Data: map[string]interface{}{"Generation": "4th", "Price": "519.99", "Capacity": "256 GB"}},
	}
}
