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

// Package api provides integration test utilities for the restful-api.dev
// objects resource.
//
// # Separate Client Implementation
//
// The suites talk to the service through APIClient, a thin wrapper over
// net/http, rather than a generated client. Any change in the observable
// contract has to show up here or in the bundled OpenAPI document, which
// keeps contract drift explicit and reviewable.
//
// The client is tailored for contract testing:
//   - every HTTP status is returned as a Response, only transport failures
//     are errors (*NetworkError)
//   - W3C trace context propagation for request correlation
//   - optional OpenAPI validation recorded on each Response
//   - Must variants that panic so Ginkgo records the spec as errored
//
// # Running Against The Twin
//
// Setting API_USE_TWIN=true starts the in-process stand-in from pkg/twin and
// points the suites at it, so they run without network access.
package api
