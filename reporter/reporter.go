// Copyright 2020-2024 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package reporter routes the diagnostics of many translation units,
// compiled concurrently, to a single caller-supplied sink.
package reporter

import (
	"sync"

	"github.com/pulanski/rcc/report"
)

// ErrorReporter is responsible for reporting the given error. If the reporter
// returns a non-nil error, compilation will abort with that error. If the
// reporter returns nil, compilation will continue, so that as many errors
// as possible are reported.
type ErrorReporter func(err ErrorWithPos) error

// WarningReporter is responsible for reporting the given warning. Warnings
// never cause compilation to fail on their own.
type WarningReporter func(ErrorWithPos)

type Reporter interface {
	Error(ErrorWithPos) error
	Warning(ErrorWithPos)
}

// NewReporter creates a [Reporter] from a pair of functions, either of which
// may be nil. A nil errs aborts on the first error; a nil warnings drops
// warnings.
func NewReporter(errs ErrorReporter, warnings WarningReporter) Reporter {
	return reporterFuncs{errs: errs, warnings: warnings}
}

type reporterFuncs struct {
	errs     ErrorReporter
	warnings WarningReporter
}

func (r reporterFuncs) Error(err ErrorWithPos) error {
	if r.errs == nil {
		return err
	}
	return r.errs(err)
}

func (r reporterFuncs) Warning(err ErrorWithPos) {
	if r.warnings != nil {
		r.warnings(err)
	}
}

// Handler feeds diagnostics to a [Reporter] and remembers the first error
// it returned. It is safe for concurrent use.
type Handler struct {
	reporter Reporter
	werror   bool

	mu           sync.Mutex
	errsReported bool
	err          error
}

// NewHandler creates a handler around rep. A nil rep aborts on the first
// error. If werror is set, warnings are reported as errors.
func NewHandler(rep Reporter, werror bool) *Handler {
	if rep == nil {
		rep = NewReporter(nil, nil)
	}
	return &Handler{reporter: rep, werror: werror}
}

// HandleReport passes every error and warning in r to the reporter, in
// order. Remarks are not passed on. It returns the handler's error, if any.
func (h *Handler) HandleReport(r *report.Report) error {
	for i := range r.Diagnostics {
		d := &r.Diagnostics[i]
		switch {
		case d.Level == report.ICE, d.Level == report.Error,
			d.Level == report.Warning && h.werror:
			if err := h.HandleDiagnostic(d); err != nil {
				return err
			}
		case d.Level == report.Warning:
			h.HandleWarning(d)
		}
	}
	return h.ReporterError()
}

// HandleDiagnostic reports d as an error. Once the reporter has returned an
// error, further errors are not passed to it.
func (h *Handler) HandleDiagnostic(d *report.Diagnostic) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	h.errsReported = true
	err := h.reporter.Error(Error(d))
	h.err = err
	return err
}

// HandleError records an error that did not come from a diagnostic, such as
// a failure to read a file. The reporter sees it only if it has a position.
func (h *Handler) HandleError(err error) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.err != nil {
		return h.err
	}
	if ewp, ok := err.(ErrorWithPos); ok {
		h.errsReported = true
		err = h.reporter.Error(ewp)
	}
	h.err = err
	return err
}

func (h *Handler) HandleWarning(d *report.Diagnostic) {
	// no need for lock; warnings don't interact with mutable fields
	h.reporter.Warning(Error(d))
}

// Error returns the handler's result: the reporter's error, or
// [ErrInvalidSource] if errors were reported and the reporter let them pass.
func (h *Handler) Error() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.errsReported && h.err == nil {
		return ErrInvalidSource
	}
	return h.err
}

// ReporterError returns the error returned by the reporter, if any.
func (h *Handler) ReporterError() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.err
}
