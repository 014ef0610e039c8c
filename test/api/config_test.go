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
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func lookup(env map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	}
}

func TestLoadTestConfigDefaults(t *testing.T) {
	t.Parallel()

	config, err := loadTestConfig(lookup(nil))
	require.NoError(t, err)

	require.Equal(t, &TestConfig{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: 30 * time.Second,
		ValidateSchema: true,
	}, config)
}

func TestLoadTestConfigOverrides(t *testing.T) {
	t.Parallel()

	config, err := loadTestConfig(lookup(map[string]string{
		"API_BASE_URL":     "http://localhost:8080/",
		"API_USE_TWIN":     "true",
		"REQUEST_TIMEOUT":  "5s",
		"LOG_REQUESTS":     "1",
		"LOG_RESPONSES":    "true",
		"VALIDATE_SCHEMA":  "false",
		"REPORT_PATH":      "out/report.json",
		"REPORT_XLSX_PATH": "out/report.xlsx",
		"FIXTURE_SEED":     "42",
	}))
	require.NoError(t, err)

	require.Equal(t, &TestConfig{
		BaseURL:        "http://localhost:8080",
		UseTwin:        true,
		RequestTimeout: 5 * time.Second,
		LogRequests:    true,
		LogResponses:   true,
		ReportPath:     "out/report.json",
		ReportXLSXPath: "out/report.xlsx",
		FixtureSeed:    42,
	}, config)
}

func TestLoadTestConfigInvalid(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"API_BASE_URL":    "not a url",
		"API_USE_TWIN":    "maybe",
		"REQUEST_TIMEOUT": "soon",
		"FIXTURE_SEED":    "-1",
		"VALIDATE_SCHEMA": "yes please",
	}

	for key, value := range tests {
		t.Run(key, func(t *testing.T) {
			t.Parallel()

			_, err := loadTestConfig(lookup(map[string]string{key: value}))
			require.ErrorIs(t, err, ErrInvalidConfig)
			require.ErrorContains(t, err, key)
		})
	}
}

func TestLoadTestConfigNegativeTimeout(t *testing.T) {
	t.Parallel()

	_, err := loadTestConfig(lookup(map[string]string{"REQUEST_TIMEOUT": "-1s"}))
	require.ErrorIs(t, err, ErrInvalidConfig)
}
