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

//nolint:revive // naming conventions acceptable in test code
package api

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/nscaledev/restful-objects-contract/pkg/openapi"
)

//go:generate mockgen -destination=mock/interfaces.go -package=mock github.com/nscaledev/restful-objects-contract/test/api Doer,ResponseValidator

// Doer sends HTTP requests, *http.Client being the usual implementation.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResponseValidator checks a response against a schema.
type ResponseValidator interface {
	ValidateResponse(ctx context.Context, req *http.Request, status int, header http.Header, body []byte) error
}

// NetworkError is returned when no HTTP response was received, or the
// response could not be read.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: network error: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Response is everything recorded about a single exchange.
type Response struct {
	Method      string
	Path        string
	StatusCode  int
	Header      http.Header
	Body        interface{}
	Raw         []byte
	TraceParent string
	Duration    time.Duration

	// SchemaErr is the outcome of OpenAPI validation, nil when the response
	// conforms or validation is disabled.
	SchemaErr error
}

// Object returns the body as a JSON object, or nil.
func (r *Response) Object() map[string]interface{} {
	o, _ := r.Body.(map[string]interface{})
	return o
}

// List returns the body as a JSON array, or nil.
func (r *Response) List() []interface{} {
	l, _ := r.Body.([]interface{})
	return l
}

// ID returns the id field of an object body, or the empty string.
func (r *Response) ID() string {
	id, _ := r.Object()["id"].(string)
	return id
}

// TraceID returns the trace ID sent with the request.
func (r *Response) TraceID() string {
	return extractTraceID(r.TraceParent)
}

func (r *Response) String() string {
	return fmt.Sprintf("%s %s status=%d body=%s (trace ID: %s)", r.Method, r.Path, r.StatusCode, string(r.Raw), r.TraceID())
}

type APIClient struct {
	baseURL   string
	client    Doer
	config    *TestConfig
	endpoints *Endpoints
	validator ResponseValidator
	tracker   *ObjectTracker
}

// NewAPIClientWithConfig creates a client for config.BaseURL, validating
// responses against the bundled OpenAPI document when configured to.
func NewAPIClientWithConfig(config *TestConfig) (*APIClient, error) {
	var validator ResponseValidator

	if config.ValidateSchema {
		v, err := openapi.NewValidator(config.BaseURL)
		if err != nil {
			return nil, err
		}

		validator = v
	}

	return NewAPIClient(config, &http.Client{Timeout: config.RequestTimeout}, validator), nil
}

// NewAPIClient creates a client over an arbitrary transport. A nil validator
// disables schema validation.
func NewAPIClient(config *TestConfig, client Doer, validator ResponseValidator) *APIClient {
	return &APIClient{
		baseURL:   strings.TrimSuffix(config.BaseURL, "/"),
		client:    client,
		config:    config,
		endpoints: NewEndpoints(),
		validator: validator,
		tracker:   &ObjectTracker{},
	}
}

// Tracker returns the record of objects this client created and deleted.
func (c *APIClient) Tracker() *ObjectTracker {
	return c.tracker
}

// Endpoints returns the path table the client uses.
func (c *APIClient) Endpoints() *Endpoints {
	return c.endpoints
}

// logError logs a transport error with trace context.
func (c *APIClient) logError(method, path string, duration time.Duration, traceParent string, err error, context string) {
	ginkgo.GinkgoWriter.Printf("[%s %s] ERROR %s duration=%s traceparent=%s error=%v\n", method, path, context, duration, traceParent, err)
	c.logTraceContext(traceParent)
}

// logTraceContext logs the trace context information.
func (c *APIClient) logTraceContext(traceParent string) {
	ginkgo.GinkgoWriter.Printf("TRACE CONTEXT: Use trace ID '%s' to correlate this request\n", extractTraceID(traceParent))
}

func randomHex(n int) string {
	bytes := make([]byte, n)
	_, _ = rand.Read(bytes)

	return hex.EncodeToString(bytes)
}

// createTraceParent creates a W3C traceparent header value.
func createTraceParent() string {
	return fmt.Sprintf("00-%s-%s-01", randomHex(16), randomHex(8))
}

// extractTraceID extracts the trace ID from a traceparent header value.
func extractTraceID(traceParent string) string {
	parts := strings.Split(traceParent, "-")
	if len(parts) >= 2 {
		return parts[1]
	}

	return traceParent
}

func carriesBody(method string) bool {
	return method != http.MethodGet && method != http.MethodDelete
}

// Send performs one request. Any HTTP status is returned as a Response with a
// nil error; a *NetworkError means no usable response arrived.
func (c *APIClient) Send(ctx context.Context, method, path string, body interface{}) (*Response, error) {
	fullURL := c.baseURL + path

	var reader io.Reader

	if body != nil && carriesBody(method) {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshaling request body: %w", err)
		}

		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	traceParent := createTraceParent()
	req.Header.Set("Traceparent", traceParent)
	req.Header.Set("Tracestate", "test-automation=ginkgo")
	req.Header.Set("Accept", "application/json")

	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.client.Do(req)
	duration := time.Since(start)

	if err != nil {
		c.logError(method, path, duration, traceParent, err, "http request failed")
		return nil, &NetworkError{Method: method, URL: fullURL, Err: err}
	}

	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logError(method, path, duration, traceParent, err, "reading response body")
		return nil, &NetworkError{Method: method, URL: fullURL, Err: fmt.Errorf("reading response body: %w", err)}
	}

	if c.config.LogRequests {
		ginkgo.GinkgoWriter.Printf("[%s %s] status=%d duration=%s traceparent=%s\n", method, path, resp.StatusCode, duration, traceParent)
	}

	if c.config.LogResponses && len(raw) > 0 {
		ginkgo.GinkgoWriter.Printf("[%s %s] response body: %s\n", method, path, string(raw))
	}

	response := &Response{
		Method:      method,
		Path:        path,
		StatusCode:  resp.StatusCode,
		Header:      resp.Header,
		Raw:         raw,
		TraceParent: traceParent,
		Duration:    duration,
	}

	// Bodies that are not JSON leave Body nil, Raw still has the bytes.
	if len(raw) > 0 {
		var decoded interface{}
		if err := json.Unmarshal(raw, &decoded); err == nil {
			response.Body = decoded
		}
	}

	if c.validator != nil {
		response.SchemaErr = c.validator.ValidateResponse(ctx, req, resp.StatusCode, resp.Header, raw)
	}

	return response, nil
}

// ListObjects lists every object, or only those with the given ids.
func (c *APIClient) ListObjects(ctx context.Context, ids ...string) (*Response, error) {
	path := c.endpoints.Objects()

	if len(ids) > 0 {
		query := url.Values{"id": ids}
		path += "?" + query.Encode()
	}

	return c.Send(ctx, http.MethodGet, path, nil)
}

func (c *APIClient) GetObject(ctx context.Context, id string) (*Response, error) {
	return c.Send(ctx, http.MethodGet, c.endpoints.Object(id), nil)
}

func (c *APIClient) CreateObject(ctx context.Context, body interface{}) (*Response, error) {
	resp, err := c.Send(ctx, http.MethodPost, c.endpoints.Objects(), body)
	if err == nil && resp.StatusCode == http.StatusOK && resp.ID() != "" {
		c.tracker.Created(resp.ID())
	}

	return resp, err
}

// UpdateObject replaces an object with PUT.
func (c *APIClient) UpdateObject(ctx context.Context, id string, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPut, c.endpoints.Object(id), body)
}

// PatchObject partially updates an object.
func (c *APIClient) PatchObject(ctx context.Context, id string, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPatch, c.endpoints.Object(id), body)
}

func (c *APIClient) DeleteObject(ctx context.Context, id string) (*Response, error) {
	resp, err := c.Send(ctx, http.MethodDelete, c.endpoints.Object(id), nil)
	if err == nil && resp.StatusCode == http.StatusOK {
		c.tracker.Deleted(id)
	}

	return resp, err
}

func (c *APIClient) CreateItem(ctx context.Context, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPost, c.endpoints.Items(), body)
}

func (c *APIClient) UpdateItem(ctx context.Context, id string, body interface{}) (*Response, error) {
	return c.Send(ctx, http.MethodPut, c.endpoints.Item(id), body)
}

// must panics on transport failure so the running spec is recorded as
// errored rather than failed.
func must(resp *Response, err error) *Response {
	if err != nil {
		panic(err)
	}

	return resp
}

func (c *APIClient) MustListObjects(ctx context.Context, ids ...string) *Response {
	return must(c.ListObjects(ctx, ids...))
}

func (c *APIClient) MustGetObject(ctx context.Context, id string) *Response {
	return must(c.GetObject(ctx, id))
}

func (c *APIClient) MustCreateObject(ctx context.Context, body interface{}) *Response {
	return must(c.CreateObject(ctx, body))
}

func (c *APIClient) MustUpdateObject(ctx context.Context, id string, body interface{}) *Response {
	return must(c.UpdateObject(ctx, id, body))
}

func (c *APIClient) MustPatchObject(ctx context.Context, id string, body interface{}) *Response {
	return must(c.PatchObject(ctx, id, body))
}

func (c *APIClient) MustDeleteObject(ctx context.Context, id string) *Response {
	return must(c.DeleteObject(ctx, id))
}

func (c *APIClient) MustCreateItem(ctx context.Context, body interface{}) *Response {
	return must(c.CreateItem(ctx, body))
}

func (c *APIClient) MustUpdateItem(ctx context.Context, id string, body interface{}) *Response {
	return must(c.UpdateItem(ctx, id, body))
}
