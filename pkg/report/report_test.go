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

package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/onsi/ginkgo/v2/types"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nscaledev/restful-objects-contract/pkg/report"
)

var errSink = errors.New("disk full")

func run(t *testing.T, r *report.Reporter, name string, outcome report.Outcome) {
	t.Helper()

	require.NoError(t, r.Begin(name))

	c := report.Case{Name: name, Outcome: outcome}
	if outcome != report.OutcomePassed {
		c.Failure = &report.Failure{Message: "expected 200, got 404"}
	}

	require.NoError(t, r.Complete(c))
}

// TestLifecycle ensures outcomes are counted and flushed once.
func TestLifecycle(t *testing.T) {
	t.Parallel()

	var flushed []*report.Summary

	r := report.New(report.SinkFunc(func(s *report.Summary) error {
		flushed = append(flushed, s)
		return nil
	}))

	require.NoError(t, r.Start())

	run(t, r, "GET /objects returns a list", report.OutcomePassed)
	run(t, r, "GET /objects/{id} returns 404", report.OutcomeFailed)
	run(t, r, "GET /objects/{id} returns 404", report.OutcomeErrored)
	require.NoError(t, r.Complete(report.Case{Name: "pending case", Outcome: report.OutcomeSkipped}))

	summary, err := r.End()
	require.NoError(t, err)
	require.Len(t, flushed, 1)

	require.Equal(t, 4, summary.Total)
	require.Equal(t, 1, summary.Passed)
	require.Equal(t, 1, summary.Failed)
	require.Equal(t, 1, summary.Errored)
	require.Equal(t, 1, summary.Skipped)
	require.False(t, summary.Success())
	require.Equal(t, summary.Cases, flushed[0].Cases)

	_, err = r.End()
	require.ErrorIs(t, err, report.ErrInvalidTransition)
}

func TestInvalidTransitions(t *testing.T) {
	t.Parallel()

	r := report.New()

	require.ErrorIs(t, r.Begin("before start"), report.ErrInvalidTransition)

	require.NoError(t, r.Start())
	require.ErrorIs(t, r.Start(), report.ErrInvalidTransition)

	require.NoError(t, r.Begin("first"))
	require.ErrorIs(t, r.Begin("second"), report.ErrInvalidTransition)
	require.ErrorIs(t, r.Complete(report.Case{Name: "second", Outcome: report.OutcomePassed}), report.ErrInvalidTransition)
	require.ErrorIs(t, r.Complete(report.Case{Name: "first", Outcome: report.OutcomeRunning}), report.ErrInvalidTransition)
	require.NoError(t, r.Complete(report.Case{Name: "first", Outcome: report.OutcomePassed}))

	_, err := r.End()
	require.NoError(t, err)

	require.ErrorIs(t, r.Begin("after end"), report.ErrInvalidTransition)
}

// TestEndErrorsRunningCase ensures a case cut short by suite end is errored.
func TestEndErrorsRunningCase(t *testing.T) {
	t.Parallel()

	r := report.New()

	require.NoError(t, r.Start())
	require.NoError(t, r.Begin("hung request"))

	summary, err := r.End()
	require.NoError(t, err)
	require.Equal(t, 1, summary.Errored)
	require.Equal(t, report.OutcomeErrored, summary.Cases[0].Outcome)
	require.NotNil(t, summary.Cases[0].Failure)
}

// TestSinkFailureDoesNotMaskOutcomes ensures broken sinks are reported but
// the remaining sinks and the summary are unaffected.
func TestSinkFailureDoesNotMaskOutcomes(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := report.New(
		report.SinkFunc(func(*report.Summary) error { return errSink }),
		report.SinkFunc(func(s *report.Summary) error {
			s.Cases[0].Outcome = report.OutcomeFailed
			panic("boom")
		}),
		report.JSON(&buf),
	)

	require.NoError(t, r.Start())
	run(t, r, "POST /objects creates an object", report.OutcomePassed)

	summary, err := r.End()
	require.ErrorIs(t, err, errSink)
	require.ErrorContains(t, err, "boom")
	require.Equal(t, 1, summary.Passed)
	require.Equal(t, report.OutcomePassed, summary.Cases[0].Outcome)

	var decoded report.Summary
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Equal(t, 1, decoded.Passed)
	require.Equal(t, report.OutcomePassed, decoded.Cases[0].Outcome)
}

func TestTextSink(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := report.New(report.Text(&buf))

	require.NoError(t, r.Start())
	run(t, r, "PUT /items/1 returns 404", report.OutcomeFailed)

	_, err := r.End()
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "PUT /items/1 returns 404")
	require.Contains(t, out, "FAILED")
	require.Contains(t, out, "-> expected 200, got 404")
	require.Contains(t, out, "Total: 1 | Passed: 0 | Failed: 1 | Errored: 0 | Skipped: 0")
}

func TestTextSinkTruncatesOnRuneBoundary(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer

	r := report.New(report.Text(&buf))

	name := strings.Repeat("é", 100)

	require.NoError(t, r.Start())
	run(t, r, name, report.OutcomePassed)

	_, err := r.End()
	require.NoError(t, err)

	out := buf.String()
	require.True(t, utf8.ValidString(out))
	require.Contains(t, out, strings.Repeat("é", 69)+"...")
	require.NotContains(t, out, strings.Repeat("é", 70))
}

func TestFileSinks(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "out", "report.json")
	xlsxPath := filepath.Join(dir, "out", "report.xlsx")

	r := report.New(report.JSONFile(jsonPath), report.XLSXFile(xlsxPath))

	require.NoError(t, r.Start())
	run(t, r, "DELETE /objects/{id} deletes the object", report.OutcomePassed)
	run(t, r, "PATCH /objects/{id} keeps the colour", report.OutcomeFailed)

	_, err := r.End()
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)

	var decoded report.Summary
	require.NoError(t, json.Unmarshal(data, &decoded))
	require.Equal(t, 2, decoded.Total)

	f, err := excelize.OpenFile(xlsxPath)
	require.NoError(t, err)

	defer f.Close()

	name, err := f.GetCellValue("Results", "B2")
	require.NoError(t, err)
	require.Equal(t, "DELETE /objects/{id} deletes the object", name)

	outcome, err := f.GetCellValue("Results", "C3")
	require.NoError(t, err)
	require.Equal(t, "failed", outcome)
}

func TestFromSpecReport(t *testing.T) {
	t.Parallel()

	start := time.Now()

	tests := []struct {
		state   types.SpecState
		outcome report.Outcome
	}{
		{types.SpecStatePassed, report.OutcomePassed},
		{types.SpecStateFailed, report.OutcomeFailed},
		{types.SpecStatePanicked, report.OutcomeErrored},
		{types.SpecStateTimedout, report.OutcomeErrored},
		{types.SpecStateInterrupted, report.OutcomeErrored},
		{types.SpecStateSkipped, report.OutcomeSkipped},
		{types.SpecStatePending, report.OutcomeSkipped},
	}

	for _, test := range tests {
		spec := types.SpecReport{
			ContainerHierarchyTexts: []string{"Objects", "GET /objects/{id}"},
			LeafNodeText:            "returns 404 for an unknown id",
			State:                   test.state,
			StartTime:               start,
			RunTime:                 time.Second,
			Failure: types.Failure{
				Message:        "Expected status 404, got 200",
				ForwardedPanic: "",
				Location:       types.CodeLocation{FileName: "objects_test.go", LineNumber: 42},
			},
		}

		c := report.FromSpecReport(spec)

		require.Equal(t, "Objects GET /objects/{id} returns 404 for an unknown id", c.Name)
		require.Equal(t, test.outcome, c.Outcome, test.state.String())
		require.Equal(t, time.Second, c.Duration)

		if test.outcome == report.OutcomeFailed || test.outcome == report.OutcomeErrored {
			require.NotNil(t, c.Failure)
			require.Equal(t, "objects_test.go:42", c.Failure.Location)
		} else {
			require.Nil(t, c.Failure)
		}
	}
}
