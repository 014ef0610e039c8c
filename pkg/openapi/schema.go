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

// Package openapi holds the OpenAPI description of the objects resource
// and validates responses against it.
package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
)

// ErrUndocumented is returned for requests the document has no operation for.
var ErrUndocumented = errors.New("no documented operation")

//go:embed objects.yaml
var document []byte

// Load parses and validates the embedded document.
func Load() (*openapi3.T, error) {
	loader := openapi3.NewLoader()

	doc, err := loader.LoadFromData(document)
	if err != nil {
		return nil, fmt.Errorf("loading openapi document: %w", err)
	}

	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("validating openapi document: %w", err)
	}

	return doc, nil
}

// Validator checks responses against the document.
type Validator struct {
	router routers.Router
}

// NewValidator returns a validator that routes requests sent to serverURL.
// An empty serverURL keeps the servers listed in the document.
func NewValidator(serverURL string) (*Validator, error) {
	doc, err := Load()
	if err != nil {
		return nil, err
	}

	if serverURL != "" {
		doc.Servers = openapi3.Servers{
			&openapi3.Server{URL: serverURL},
		}
	}

	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("building openapi router: %w", err)
	}

	return &Validator{
		router: router,
	}, nil
}

// undocumented reports whether a routing failure means the document has no
// operation for the request. The router returns fresh RouteErrors carrying
// the sentinel message rather than the sentinels themselves.
func undocumented(err error) bool {
	if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
		return true
	}

	var routeErr *routers.RouteError
	if !errors.As(err, &routeErr) {
		return false
	}

	return routeErr.Reason == routers.ErrPathNotFound.Error() || routeErr.Reason == routers.ErrMethodNotAllowed.Error()
}

// ValidateResponse checks that the status, headers and body returned for req
// are documented. Requests with no matching operation return ErrUndocumented.
func (v *Validator) ValidateResponse(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error {
	route, pathParams, err := v.router.FindRoute(req)
	if err != nil {
		if undocumented(err) {
			return fmt.Errorf("%w: %s %s", ErrUndocumented, req.Method, req.URL.Path)
		}

		return fmt.Errorf("routing %s %s: %w", req.Method, req.URL.Path, err)
	}

	input := &openapi3filter.ResponseValidationInput{
		RequestValidationInput: &openapi3filter.RequestValidationInput{
			Request:    req,
			PathParams: pathParams,
			Route:      route,
		},
		Status: status,
		Header: header,
		Options: &openapi3filter.Options{
			IncludeResponseStatus: true,
			MultiError:            true,
		},
	}

	input.SetBodyBytes(body)

	if err := openapi3filter.ValidateResponse(ctx, input); err != nil {
		return fmt.Errorf("%s %s returned an undocumented response: %w", req.Method, req.URL.Path, err)
	}

	return nil
}
