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

package reporter

import (
	"errors"
	"fmt"

	"github.com/pulanski/rcc/report"
)

// ErrInvalidSource is returned when errors were reported for a file but
// the [ErrorReporter] chose to continue.
var ErrInvalidSource = errors.New("parse failed: invalid C source")

// ErrorWithPos is an error about a C source file that includes the location
// in the file that caused it.
//
// The value of Error() contains both the position and the underlying error.
// The value of Unwrap() is only the underlying error.
type ErrorWithPos interface {
	error
	Path() string
	Position() report.Location
	Unwrap() error
}

// Error wraps a diagnostic as an [ErrorWithPos], positioned at its primary
// annotation.
func Error(d *report.Diagnostic) ErrorWithPos {
	primary := d.Primary()
	return errorWithPos{
		path:       primary.File.Path(),
		pos:        primary.Start,
		code:       d.Code,
		underlying: d.Err,
	}
}

// Errorf returns an [ErrorWithPos] for a formatted message.
func Errorf(path string, pos report.Location, format string, args ...any) ErrorWithPos {
	return errorWithPos{path: path, pos: pos, underlying: fmt.Errorf(format, args...)}
}

type errorWithPos struct {
	path       string
	pos        report.Location
	code       string
	underlying error
}

func (e errorWithPos) Error() string {
	msg := fmt.Sprintf("%v", e.underlying)
	if e.code != "" {
		msg = fmt.Sprintf("[%s] %s", e.code, msg)
	}
	if e.pos.Line == 0 {
		return fmt.Sprintf("%s: %s", e.path, msg)
	}
	return fmt.Sprintf("%s:%d:%d: %s", e.path, e.pos.Line, e.pos.Column, msg)
}

func (e errorWithPos) Path() string {
	return e.path
}

func (e errorWithPos) Position() report.Location {
	return e.pos
}

func (e errorWithPos) Unwrap() error {
	return e.underlying
}

var _ ErrorWithPos = errorWithPos{}
