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
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultBaseURL is the public service the suites target by default.
	DefaultBaseURL = "https://api.restful-api.dev"

	defaultRequestTimeout = 30 * time.Second
)

// ErrInvalidConfig is returned when an environment variable cannot be parsed.
var ErrInvalidConfig = errors.New("invalid configuration")

type TestConfig struct {
	BaseURL        string
	UseTwin        bool
	RequestTimeout time.Duration
	LogRequests    bool
	LogResponses   bool
	ValidateSchema bool
	ReportPath     string
	ReportXLSXPath string
	FixtureSeed    uint64
}

// LoadTestConfig loads configuration from environment variables and .env files.
// Returns an error if any value is malformed.
func LoadTestConfig() (*TestConfig, error) {
	loadEnvFile()

	return loadTestConfig(os.LookupEnv)
}

// loadTestConfig builds a configuration from the given lookup so tests can
// supply their own environment.
func loadTestConfig(lookup func(string) (string, bool)) (*TestConfig, error) {
	p := &parser{lookup: lookup}

	config := &TestConfig{
		BaseURL:        strings.TrimSuffix(p.string("API_BASE_URL", DefaultBaseURL), "/"),
		UseTwin:        p.bool("API_USE_TWIN", false),
		RequestTimeout: p.duration("REQUEST_TIMEOUT", defaultRequestTimeout),
		LogRequests:    p.bool("LOG_REQUESTS", false),
		LogResponses:   p.bool("LOG_RESPONSES", false),
		ValidateSchema: p.bool("VALIDATE_SCHEMA", true),
		ReportPath:     p.string("REPORT_PATH", ""),
		ReportXLSXPath: p.string("REPORT_XLSX_PATH", ""),
		FixtureSeed:    p.uint("FIXTURE_SEED", 0),
	}

	if u, err := url.Parse(config.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		p.fail("API_BASE_URL", config.BaseURL, "must be an absolute URL")
	}

	if config.RequestTimeout < 0 {
		p.fail("REQUEST_TIMEOUT", config.RequestTimeout.String(), "must not be negative")
	}

	if err := errors.Join(p.errs...); err != nil {
		return nil, err
	}

	return config, nil
}

type parser struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (p *parser) fail(key, value, reason string) {
	p.errs = append(p.errs, fmt.Errorf("%w: %s=%q %s", ErrInvalidConfig, key, value, reason))
}

func (p *parser) get(key string) (string, bool) {
	value, ok := p.lookup(key)
	if !ok || value == "" {
		return "", false
	}

	return value, true
}

func (p *parser) string(key, defaultValue string) string {
	if value, ok := p.get(key); ok {
		return value
	}

	return defaultValue
}

func (p *parser) duration(key string, defaultValue time.Duration) time.Duration {
	value, ok := p.get(key)
	if !ok {
		return defaultValue
	}

	duration, err := time.ParseDuration(value)
	if err != nil {
		p.fail(key, value, "is not a duration")
		return defaultValue
	}

	return duration
}

func (p *parser) bool(key string, defaultValue bool) bool {
	value, ok := p.get(key)
	if !ok {
		return defaultValue
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		p.fail(key, value, "is not a boolean")
		return defaultValue
	}

	return boolValue
}

func (p *parser) uint(key string, defaultValue uint64) uint64 {
	value, ok := p.get(key)
	if !ok {
		return defaultValue
	}

	uintValue, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		p.fail(key, value, "is not an unsigned integer")
		return defaultValue
	}

	return uintValue
}

func loadEnvFile() {
	envPaths := []string{
		"../../.env",    // From test/api/suites directory
		"../../../.env", // From test/contracts/consumer/objects
	}

	var envPath string

	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			absPath, err := filepath.Abs(path)
			if err == nil {
				envPath = absPath
				break
			}
		}
	}

	if envPath == "" {
		// Not an error in CI where variables are set directly.
		return
	}

	// Existing environment variables take precedence.
	if err := godotenv.Load(envPath); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to load .env file from %s: %v\n", envPath, err)
	}
}
