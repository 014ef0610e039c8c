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

// Package report accumulates test case outcomes across a suite run and
// flushes a summary to one or more sinks when the suite ends.
package report

import (
	"errors"
	"fmt"
	"sync"
	"time"
)

// ErrInvalidTransition is returned when a lifecycle call is made out of order.
var ErrInvalidTransition = errors.New("invalid lifecycle transition")

// Outcome is the state of a single case.
type Outcome string

const (
	OutcomePending Outcome = "pending"
	OutcomeRunning Outcome = "running"
	OutcomePassed  Outcome = "passed"
	OutcomeFailed  Outcome = "failed"
	OutcomeErrored Outcome = "errored"
	OutcomeSkipped Outcome = "skipped"
)

// Terminal returns true once a case can no longer change state.
func (o Outcome) Terminal() bool {
	switch o {
	case OutcomePassed, OutcomeFailed, OutcomeErrored, OutcomeSkipped:
		return true
	case OutcomePending, OutcomeRunning:
	}

	return false
}

// Failure describes why a case did not pass.
type Failure struct {
	Message  string `json:"message"`
	Location string `json:"location,omitempty"`
}

// Case is the record of one test case.
type Case struct {
	Name     string        `json:"name"`
	Outcome  Outcome       `json:"outcome"`
	Failure  *Failure      `json:"failure,omitempty"`
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
}

// Summary is flushed to sinks when the suite ends.
type Summary struct {
	Started  time.Time     `json:"started"`
	Duration time.Duration `json:"duration"`
	Total    int           `json:"total"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Errored  int           `json:"errored"`
	Skipped  int           `json:"skipped"`
	Cases    []Case        `json:"cases"`
}

// Success returns true when nothing failed or errored.
func (s *Summary) Success() bool {
	return s.Failed == 0 && s.Errored == 0
}

// Sink receives the summary at suite end.
type Sink interface {
	Write(summary *Summary) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(summary *Summary) error

func (f SinkFunc) Write(summary *Summary) error {
	return f(summary)
}

// Reporter is the suite lifecycle object. Calls are expected in the order
// Start, then Begin/Complete per case, then End.
type Reporter struct {
	lock    sync.Mutex
	sinks   []Sink
	cases   []Case
	running int
	started time.Time
	ended   bool
	now     func() time.Time
}

// New returns a reporter that flushes to the given sinks.
func New(sinks ...Sink) *Reporter {
	return &Reporter{
		sinks:   sinks,
		running: -1,
		now:     time.Now,
	}
}

// Start marks the beginning of the suite.
func (r *Reporter) Start() error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if !r.started.IsZero() {
		return fmt.Errorf("%w: suite already started", ErrInvalidTransition)
	}

	r.started = r.now()

	return nil
}

func (r *Reporter) checkActive() error {
	if r.started.IsZero() {
		return fmt.Errorf("%w: suite not started", ErrInvalidTransition)
	}

	if r.ended {
		return fmt.Errorf("%w: suite already ended", ErrInvalidTransition)
	}

	return nil
}

// Begin moves a case from pending to running. Only one case may run at a time.
func (r *Reporter) Begin(name string) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.checkActive(); err != nil {
		return err
	}

	if r.running >= 0 {
		return fmt.Errorf("%w: case %q begun while %q is running", ErrInvalidTransition, name, r.cases[r.running].Name)
	}

	r.cases = append(r.cases, Case{
		Name:    name,
		Outcome: OutcomeRunning,
		Started: r.now(),
	})

	r.running = len(r.cases) - 1

	return nil
}

// Complete records the terminal outcome of a case. A case that was never
// begun, for example one skipped by the framework, is recorded directly.
func (r *Reporter) Complete(c Case) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.checkActive(); err != nil {
		return err
	}

	if !c.Outcome.Terminal() {
		return fmt.Errorf("%w: case %q completed with outcome %q", ErrInvalidTransition, c.Name, c.Outcome)
	}

	if r.running < 0 {
		r.cases = append(r.cases, c)

		return nil
	}

	current := &r.cases[r.running]

	if current.Name != c.Name {
		return fmt.Errorf("%w: case %q completed while %q is running", ErrInvalidTransition, c.Name, current.Name)
	}

	if c.Started.IsZero() {
		c.Started = current.Started
	}

	if c.Duration == 0 {
		c.Duration = r.now().Sub(c.Started)
	}

	*current = c
	r.running = -1

	return nil
}

// Summary returns a snapshot of the outcomes recorded so far.
func (r *Reporter) Summary() *Summary {
	r.lock.Lock()
	defer r.lock.Unlock()

	return r.summary()
}

func (r *Reporter) summary() *Summary {
	s := &Summary{
		Started: r.started,
		Cases:   make([]Case, len(r.cases)),
	}

	if !r.started.IsZero() {
		s.Duration = r.now().Sub(r.started)
	}

	copy(s.Cases, r.cases)

	for i := range s.Cases {
		s.Total++

		//nolint:exhaustive
		switch s.Cases[i].Outcome {
		case OutcomePassed:
			s.Passed++
		case OutcomeFailed:
			s.Failed++
		case OutcomeErrored:
			s.Errored++
		case OutcomeSkipped:
			s.Skipped++
		}
	}

	return s
}

// End closes the suite and flushes the summary to every sink. A case left
// running is recorded as errored. Sink errors are returned together but
// never alter the recorded outcomes.
func (r *Reporter) End() (*Summary, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if err := r.checkActive(); err != nil {
		return nil, err
	}

	r.ended = true

	if r.running >= 0 {
		current := &r.cases[r.running]
		current.Outcome = OutcomeErrored
		current.Failure = &Failure{Message: "suite ended before the case completed"}
		current.Duration = r.now().Sub(current.Started)

		r.running = -1
	}

	summary := r.summary()

	var errs []error

	for _, sink := range r.sinks {
		if err := writeSink(sink, summary); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return summary, fmt.Errorf("flushing report: %w", errors.Join(errs...))
	}

	return summary, nil
}

// writeSink isolates the reporter from a panicking sink.
func writeSink(sink Sink, summary *Summary) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("sink panicked: %v", p)
		}
	}()

	// Sinks get their own copy so they cannot rewrite outcomes.
	clone := *summary
	clone.Cases = append([]Case(nil), summary.Cases...)

	return sink.Write(&clone)
}
