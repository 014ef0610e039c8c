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

// Package jsonlike implements partial structural matching of decoded JSON.
//
// An expected shape matches an actual document when every key in the shape
// exists in the document with an equal value, recursively. Keys only present
// in the document are ignored. Arrays must have the same length and match
// element by element. Values are never coerced: a string never equals a
// number, and numbers must be exactly equal.
package jsonlike

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
)

// ErrMismatch is wrapped by every MismatchError.
var ErrMismatch = errors.New("json mismatch")

// MismatchError identifies the first path at which a document diverges
// from the expected shape.
type MismatchError struct {
	// Path is a JSONPath style location, e.g. $.data.price.
	Path string
	// Expected is the value (or type) the shape required.
	Expected interface{}
	// Actual is what was found, nil when the key was missing.
	Actual interface{}
	// Reason is a short description of the failure class.
	Reason string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s at %s: expected %s, got %s", e.Reason, e.Path, describe(e.Expected), describe(e.Actual))
}

func (e *MismatchError) Unwrap() error {
	return ErrMismatch
}

// Match checks that actual contains expected. Both sides may be any value
// produced by encoding/json decoding into interface{}; expected may also
// use Go maps, slices and numeric types, which are normalised first.
func Match(actual, expected interface{}) error {
	normalised, err := Normalize(expected)
	if err != nil {
		return err
	}

	return match("$", actual, normalised)
}

// Normalize converts a Go value into the representation encoding/json
// produces when decoding into interface{}.
func Normalize(value interface{}) (interface{}, error) {
	switch t := value.(type) {
	case nil, bool, string, float64:
		return t, nil
	case map[string]interface{}:
		out := make(map[string]interface{}, len(t))

		for k, v := range t {
			n, err := Normalize(v)
			if err != nil {
				return nil, err
			}

			out[k] = n
		}

		return out, nil
	case []interface{}:
		out := make([]interface{}, len(t))

		for i, v := range t {
			n, err := Normalize(v)
			if err != nil {
				return nil, err
			}

			out[i] = n
		}

		return out, nil
	case json.Number:
		return t.Float64()
	case json.RawMessage:
		var out interface{}
		if err := json.Unmarshal(t, &out); err != nil {
			return nil, fmt.Errorf("decoding raw expected value: %w", err)
		}

		return out, nil
	}

	v := reflect.ValueOf(value)

	//nolint:exhaustive
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(v.Uint()), nil
	case reflect.Float32:
		// Go through the shortest decimal so 19.99 stays 19.99.
		return strconv.ParseFloat(strconv.FormatFloat(v.Float(), 'g', -1, 32), 64)
	case reflect.Float64:
		return v.Float(), nil
	case reflect.Pointer:
		if v.IsNil() {
			return nil, nil
		}

		return Normalize(v.Elem().Interface())
	}

	// Structs and typed maps or slices take the JSON route, which honours
	// struct tags.
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding expected value: %w", err)
	}

	var out interface{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decoding expected value: %w", err)
	}

	return out, nil
}

func match(path string, actual, expected interface{}) error {
	switch want := expected.(type) {
	case map[string]interface{}:
		got, ok := actual.(map[string]interface{})
		if !ok {
			return &MismatchError{Path: path, Expected: "object", Actual: actual, Reason: "type mismatch"}
		}

		// Sorted keys give a stable "first" mismatch.
		for _, key := range slices.Sorted(maps.Keys(want)) {
			child := path + "." + key

			value, ok := got[key]
			if !ok {
				return &MismatchError{Path: child, Expected: want[key], Reason: "missing key"}
			}

			if err := match(child, value, want[key]); err != nil {
				return err
			}
		}

		return nil
	case []interface{}:
		got, ok := actual.([]interface{})
		if !ok {
			return &MismatchError{Path: path, Expected: "array", Actual: actual, Reason: "type mismatch"}
		}

		if len(got) != len(want) {
			return &MismatchError{Path: path, Expected: len(want), Actual: len(got), Reason: "length mismatch"}
		}

		for i := range want {
			if err := match(fmt.Sprintf("%s[%d]", path, i), got[i], want[i]); err != nil {
				return err
			}
		}

		return nil
	case nil:
		if actual != nil {
			return &MismatchError{Path: path, Actual: actual, Reason: "value mismatch"}
		}

		return nil
	}

	if reflect.TypeOf(actual) != reflect.TypeOf(expected) {
		return &MismatchError{Path: path, Expected: expected, Actual: actual, Reason: "type mismatch"}
	}

	if actual != expected {
		return &MismatchError{Path: path, Expected: expected, Actual: actual, Reason: "value mismatch"}
	}

	return nil
}

func describe(value interface{}) string {
	switch t := value.(type) {
	case nil:
		return "<nil>"
	case string:
		return strconv.Quote(t)
	case map[string]interface{}, []interface{}:
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprintf("%v", t)
		}

		return string(data)
	}

	return fmt.Sprintf("%v (%T)", value, value)
}
