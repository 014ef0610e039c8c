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
	"errors"
	"fmt"

	"github.com/onsi/gomega/types"

	"github.com/nscaledev/restful-objects-contract/pkg/jsonlike"
)

// StatusError describes a response whose status differs from the one
// expected.
type StatusError struct {
	Method   string
	Path     string
	Expected int
	Actual   int
	Body     string
	TraceID  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code for %s %s: expected %d, got %d, body: %s (trace ID: %s)", e.Method, e.Path, e.Expected, e.Actual, e.Body, e.TraceID)
}

func asResponse(actual interface{}, matcher string) (*Response, error) {
	resp, ok := actual.(*Response)
	if !ok || resp == nil {
		return nil, fmt.Errorf("%s expects a non-nil *api.Response, got %T", matcher, actual)
	}

	return resp, nil
}

// HaveStatus succeeds when a *Response has the given status code.
func HaveStatus(code int) types.GomegaMatcher {
	return &statusMatcher{expected: code}
}

type statusMatcher struct {
	expected int
	err      *StatusError
}

func (m *statusMatcher) Match(actual interface{}) (bool, error) {
	resp, err := asResponse(actual, "HaveStatus")
	if err != nil {
		return false, err
	}

	m.err = &StatusError{
		Method:   resp.Method,
		Path:     resp.Path,
		Expected: m.expected,
		Actual:   resp.StatusCode,
		Body:     string(resp.Raw),
		TraceID:  resp.TraceID(),
	}

	return resp.StatusCode == m.expected, nil
}

func (m *statusMatcher) FailureMessage(_ interface{}) string {
	return m.err.Error()
}

func (m *statusMatcher) NegatedFailureMessage(_ interface{}) string {
	return fmt.Sprintf("expected %s %s not to return status %d (trace ID: %s)", m.err.Method, m.err.Path, m.expected, m.err.TraceID)
}

// MatchJSONLike succeeds when the decoded body of a *Response, or any decoded
// JSON value, contains shape. Keys absent from shape are ignored.
func MatchJSONLike(shape interface{}) types.GomegaMatcher {
	return &jsonLikeMatcher{expected: shape}
}

type jsonLikeMatcher struct {
	expected interface{}
	mismatch error
	resp     *Response
}

func (m *jsonLikeMatcher) Match(actual interface{}) (bool, error) {
	value := actual

	if resp, ok := actual.(*Response); ok {
		if resp == nil {
			return false, errors.New("MatchJSONLike got a nil *api.Response")
		}

		m.resp = resp
		value = resp.Body
	}

	err := jsonlike.Match(value, m.expected)
	if err == nil {
		m.mismatch = nil
		return true, nil
	}

	if !errors.Is(err, jsonlike.ErrMismatch) {
		return false, err
	}

	m.mismatch = err

	return false, nil
}

func (m *jsonLikeMatcher) FailureMessage(actual interface{}) string {
	if m.resp != nil {
		return fmt.Sprintf("response body does not match: %v\n%s", m.mismatch, m.resp)
	}

	return fmt.Sprintf("value does not match: %v\nactual: %#v", m.mismatch, actual)
}

func (m *jsonLikeMatcher) NegatedFailureMessage(actual interface{}) string {
	return fmt.Sprintf("expected %#v not to contain %#v", actual, m.expected)
}

// ConformToSchema succeeds when a *Response passed OpenAPI validation.
func ConformToSchema() types.GomegaMatcher {
	return &schemaMatcher{}
}

type schemaMatcher struct {
	resp *Response
}

func (m *schemaMatcher) Match(actual interface{}) (bool, error) {
	resp, err := asResponse(actual, "ConformToSchema")
	if err != nil {
		return false, err
	}

	m.resp = resp

	return resp.SchemaErr == nil, nil
}

func (m *schemaMatcher) FailureMessage(_ interface{}) string {
	return fmt.Sprintf("response does not conform to the OpenAPI document: %v\n%s", m.resp.SchemaErr, m.resp)
}

func (m *schemaMatcher) NegatedFailureMessage(_ interface{}) string {
	return fmt.Sprintf("expected response not to conform to the OpenAPI document\n%s", m.resp)
}
