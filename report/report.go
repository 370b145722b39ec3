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

package report

import (
	"cmp"
	"fmt"
	"slices"
)

// Level represents the severity of a diagnostic message.
type Level int8

const (
	// Internal compiler error. Indicates a bug within the front end.
	ICE Level = 1 + iota
	// Red. Indicates a constraint violation that makes the input invalid.
	Error
	// Yellow. Indicates something that probably should not be ignored.
	Warning
	// Cyan. This is the diagnostics version of "info".
	Remark
)

// String implements [fmt.Stringer].
func (l Level) String() string {
	switch l {
	case ICE:
		return "internal compiler error"
	case Error:
		return "error"
	case Warning:
		return "warning"
	case Remark:
		return "remark"
	default:
		return fmt.Sprintf("report.Level(%d)", int(l))
	}
}

// Diagnose is an error that can be rendered as a diagnostic.
type Diagnose interface {
	error

	// Diagnose writes out this error to the given diagnostic.
	//
	// This function should not set Level nor Err; those are set by the
	// diagnostics framework.
	Diagnose(*Diagnostic)
}

// Report is a collection of diagnostics.
//
// A Report is not safe for concurrent use. Each translation unit gets its own
// report; see the reporter package for merging reports across goroutines.
type Report struct {
	Diagnostics []Diagnostic
}

// Error pushes an error diagnostic onto this report.
func (r *Report) Error(err Diagnose) {
	err.Diagnose(r.push(err, Error))
}

// Warn pushes a warning diagnostic onto this report.
func (r *Report) Warn(err Diagnose) {
	err.Diagnose(r.push(err, Warning))
}

// Remark pushes a remark diagnostic onto this report.
func (r *Report) Remark(err Diagnose) {
	err.Diagnose(r.push(err, Remark))
}

// ICE pushes an internal compiler error onto this report.
func (r *Report) ICE(err error) *Diagnostic {
	d := r.push(err, ICE)
	if diag, ok := err.(Diagnose); ok {
		diag.Diagnose(d)
	}
	return d
}

// Errorf creates a new error diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Errorf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Error)
}

// Warnf creates a new warning diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Warnf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Warning)
}

// Remarkf creates a new remark diagnostic with an unspecified error type;
// analogous to [fmt.Errorf].
func (r *Report) Remarkf(format string, args ...any) *Diagnostic {
	return r.push(fmt.Errorf(format, args...), Remark)
}

// Count returns how many diagnostics of the given level this report holds.
func (r *Report) Count(level Level) int {
	var n int
	for i := range r.Diagnostics {
		if r.Diagnostics[i].Level == level {
			n++
		}
	}
	return n
}

// HasErrors returns whether this report contains any errors or ICEs.
func (r *Report) HasErrors() bool {
	return r.Count(Error) > 0 || r.Count(ICE) > 0
}

// Append copies every diagnostic in other onto the end of r.
func (r *Report) Append(other *Report) {
	r.Diagnostics = append(r.Diagnostics, other.Diagnostics...)
}

// Sort sorts this report's diagnostics by file path, then by the offset of
// their primary annotation. Diagnostics without a position sort first within
// their file. The sort is stable.
func (r *Report) Sort() {
	slices.SortStableFunc(r.Diagnostics, func(a, b Diagnostic) int {
		ap, bp := a.Primary(), b.Primary()
		if c := cmp.Compare(ap.File.Path(), bp.File.Path()); c != 0 {
			return c
		}
		return cmp.Compare(ap.Start.Offset, bp.Start.Offset)
	})
}

// push is the core "make me a diagnostic" function.
func (r *Report) push(err error, level Level) *Diagnostic {
	r.Diagnostics = append(r.Diagnostics, Diagnostic{Err: err, Level: level})
	return &r.Diagnostics[len(r.Diagnostics)-1]
}

// AsError returns an error standing for every error and ICE in r, or nil if
// there are none. The individual errors can be reached with [errors.Is] and
// [errors.As].
func AsError(r *Report) error {
	var errs []error
	for i := range r.Diagnostics {
		if d := &r.Diagnostics[i]; d.Level == Error || d.Level == ICE {
			errs = append(errs, d.Err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return reportError(errs)
}

type reportError []error

func (e reportError) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	return fmt.Sprintf("%v (and %d more errors)", e[0], len(e)-1)
}

func (e reportError) Unwrap() []error {
	return e
}
