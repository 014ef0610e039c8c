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
	"fmt"
	"net/url"
)

// Endpoints contains all API endpoint patterns.
type Endpoints struct{}

// NewEndpoints creates a new Endpoints instance.
func NewEndpoints() *Endpoints {
	return &Endpoints{}
}

// Object endpoints.
func (e *Endpoints) Objects() string {
	return "/objects"
}

func (e *Endpoints) Object(id string) string {
	return fmt.Sprintf("/objects/%s", url.PathEscape(id))
}

// Item endpoints. The service does not serve these; they exist to check
// how unknown resources are rejected.
func (e *Endpoints) Items() string {
	return "/items"
}

func (e *Endpoints) Item(id string) string {
	return fmt.Sprintf("/items/%s", url.PathEscape(id))
}
