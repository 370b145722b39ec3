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

import "fmt"

// Diagnostic is a type of error that can be rendered as a rich diagnostic.
//
// Not all Diagnostics are "errors", even though Diagnostic does embed error;
// some represent warnings, or perhaps debugging remarks.
type Diagnostic struct {
	// The error that prompted this diagnostic. Its Error() return is used
	// as the diagnostic message.
	Err error

	// The kind of diagnostic this is, which affects how and whether it is shown
	// to users.
	Level Level

	// A short machine-readable code such as E0001, rendered next to the level.
	Code string

	// A lowercase dash-separated tag naming the diagnostic's category, such
	// as return-type. Warnings with a tag can be referred to by -W flags.
	Tag string

	// The file this diagnostic occurs in, if it has no associated Annotations.
	InFile string

	// A list of annotated source code spans in the diagnostic.
	Annotations []Annotation

	// Notes and help messages to include at the end of the diagnostic, after
	// the Annotations.
	Notes, Help []string
}

// Annotation is an annotated source code snippet within a [Diagnostic].
type Annotation struct {
	// The file this snippet is from.
	File *File
	// Start and end positions for this snippet, within the above file.
	Start, End Location
	// A message to show under this snippet. May be empty.
	Message string
	// Whether this is a "primary" snippet, which is used for deciding whether
	// or not to mark the snippet with the same color as the overall diagnostic.
	Primary bool
}

// Span returns the span of the annotated text.
func (a Annotation) Span() Span {
	return a.File.Span(a.Start.Offset, a.End.Offset)
}

// Message returns the diagnostic's main message.
func (d *Diagnostic) Message() string {
	if d.Err == nil {
		return ""
	}
	return d.Err.Error()
}

// Primary returns this diagnostic's primary snippet, if it has one.
//
// If it doesn't have one, it returns a dummy annotation referring to InFile.
func (d *Diagnostic) Primary() Annotation {
	for _, annotation := range d.Annotations {
		if annotation.Primary {
			return annotation
		}
	}
	return Annotation{
		File:    NewFile(d.InFile, ""),
		Primary: true,
	}
}

// With applies the given options to this diagnostic.
func (d *Diagnostic) With(options ...DiagnosticOption) *Diagnostic {
	for _, option := range options {
		if option != nil {
			option(d)
		}
	}
	return d
}

// DiagnosticOption is an option that can be applied to a [Diagnostic].
//
// Nil values passed to [Diagnostic.With] are ignored.
type DiagnosticOption func(*Diagnostic)

// InFile returns a DiagnosticOption that causes a diagnostic without a primary
// span to mention the given file.
func InFile(path string) DiagnosticOption {
	return func(d *Diagnostic) { d.InFile = path }
}

// Code returns a DiagnosticOption that sets the diagnostic's code.
func Code(code string) DiagnosticOption {
	return func(d *Diagnostic) { d.Code = code }
}

// Tag returns a DiagnosticOption that sets the diagnostic's tag.
func Tag(tag string) DiagnosticOption {
	return func(d *Diagnostic) { d.Tag = tag }
}

// Snippet returns a DiagnosticOption that adds a new snippet to a diagnostic.
//
// The first annotation added is the "primary" annotation, and will be
// rendered differently from the others.
func Snippet(span Span) DiagnosticOption {
	return Snippetf(span, "")
}

// Snippetf is like [Snippet], but attaches a message to the snippet.
//
// Returns nil if span has no file.
func Snippetf(span Span, format string, args ...any) DiagnosticOption {
	if span.IsZero() {
		return nil
	}
	annotation := Annotation{
		File:    span.File,
		Start:   span.StartLoc(),
		End:     span.EndLoc(),
		Message: fmt.Sprintf(format, args...),
	}
	return func(d *Diagnostic) {
		annotation.Primary = len(d.Annotations) == 0
		d.Annotations = append(d.Annotations, annotation)
	}
}

// Note returns a DiagnosticOption that provides the user with context about
// the diagnostic, after the annotations.
func Note(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Notes = append(d.Notes, fmt.Sprintf(format, args...))
	}
}

// Help returns a DiagnosticOption that provides the user with a helpful prose
// suggestion for resolving the diagnostic.
func Help(format string, args ...any) DiagnosticOption {
	return func(d *Diagnostic) {
		d.Help = append(d.Help, fmt.Sprintf(format, args...))
	}
}
