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

package report

import (
	"strings"

	"github.com/onsi/ginkgo/v2/types"
)

// OutcomeFromSpecState maps a Ginkgo spec state onto a case outcome.
// Panics, timeouts and interrupts mean the case never got to a verdict,
// so they are errors rather than failures.
func OutcomeFromSpecState(state types.SpecState) Outcome {
	//nolint:exhaustive
	switch state {
	case types.SpecStatePassed:
		return OutcomePassed
	case types.SpecStateFailed:
		return OutcomeFailed
	case types.SpecStatePanicked, types.SpecStateInterrupted, types.SpecStateAborted, types.SpecStateTimedout:
		return OutcomeErrored
	case types.SpecStateSkipped, types.SpecStatePending:
		return OutcomeSkipped
	}

	return OutcomeErrored
}

// CaseName is the name under which a spec is recorded.
func CaseName(report types.SpecReport) string {
	return strings.TrimSpace(report.FullText())
}

// FromSpecReport converts a finished Ginkgo spec into a case.
func FromSpecReport(report types.SpecReport) Case {
	c := Case{
		Name:     CaseName(report),
		Outcome:  OutcomeFromSpecState(report.State),
		Started:  report.StartTime,
		Duration: report.RunTime,
	}

	if c.Outcome == OutcomeFailed || c.Outcome == OutcomeErrored {
		message := report.Failure.Message
		if report.Failure.ForwardedPanic != "" {
			message = strings.TrimSpace(message + "\n" + report.Failure.ForwardedPanic)
		}

		c.Failure = &Failure{
			Message:  message,
			Location: report.Failure.Location.String(),
		}
	}

	return c
}
