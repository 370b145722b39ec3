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
	"io"
	"slices"
	"strconv"
	"strings"
)

// Renderer configures a diagnostic rendering operation.
type Renderer struct {
	// If set, uses a compact one-line format for each diagnostic.
	Compact bool

	// If set, rendering results are enriched with ANSI color escapes.
	Colorize bool

	// Upgrades all warnings to errors.
	WarningsAreErrors bool

	// If set, remark diagnostics will be printed.
	ShowRemarks bool
}

// Render renders a diagnostic report.
//
// In addition to returning the rendering result, returns the number of errors
// and warnings that were rendered. The error return is an error when writing
// to out.
func (r Renderer) Render(report *Report, out io.Writer) (errorCount, warningCount int, err error) {
	for i := range report.Diagnostics {
		d := &report.Diagnostics[i]
		if !r.ShowRemarks && d.Level == Remark {
			continue
		}

		if _, err = fmt.Fprintln(out, r.Diagnostic(d)); err != nil {
			return
		}
		if !r.Compact {
			if _, err = fmt.Fprintln(out); err != nil {
				return
			}
		}

		switch d.Level {
		case Error, ICE:
			errorCount++
		case Warning:
			if r.WarningsAreErrors {
				errorCount++
			} else {
				warningCount++
			}
		}
	}
	if r.Compact {
		return
	}

	c := newStyleSheet(r)
	pluralize := func(count int, what string) string {
		if count == 1 {
			return "1 " + what
		}
		return fmt.Sprint(count, " ", what, "s")
	}

	switch {
	case errorCount > 0 && warningCount > 0:
		_, err = fmt.Fprint(out, c.bError, "encountered ", pluralize(errorCount, "error"),
			" and ", pluralize(warningCount, "warning"), c.reset, "\n")
	case errorCount > 0:
		_, err = fmt.Fprint(out, c.bError, "encountered ", pluralize(errorCount, "error"), c.reset, "\n")
	case warningCount > 0:
		_, err = fmt.Fprint(out, c.bWarning, "encountered ", pluralize(warningCount, "warning"), c.reset, "\n")
	}
	return
}

// RenderString is a helper for calling [Renderer.Render] with a
// [strings.Builder].
func (r Renderer) RenderString(report *Report) (text string, errorCount, warningCount int) {
	var buf strings.Builder
	e, w, _ := r.Render(report, &buf)
	return buf.String(), e, w
}

// Diagnostic renders a single diagnostic to a string.
func (r Renderer) Diagnostic(d *Diagnostic) string {
	level := d.Level.String()
	if d.Level == Warning && r.WarningsAreErrors {
		level = Error.String()
	}
	if d.Code != "" {
		level += "[" + d.Code + "]"
	}

	c := newStyleSheet(r)
	primary := d.Primary()

	// For the compact style, we imitate GCC.
	if r.Compact {
		var prefix string
		switch {
		case primary.Start.Line != 0:
			prefix = fmt.Sprintf("%s:%d:%d: ", primary.File.Path(), primary.Start.Line, primary.Start.Column)
		case primary.File.Path() != "":
			prefix = primary.File.Path() + ": "
		}
		return fmt.Sprint(prefix, c.ColorForLevel(d.Level), level, ": ", d.Message(), c.reset)
	}

	// For the full style, we imitate the Rust compiler.
	var out strings.Builder
	fmt.Fprint(&out, c.BoldForLevel(d.Level), level, ": ", d.Message(), c.reset)

	var greatestLine int
	for _, snip := range d.Annotations {
		greatestLine = max(greatestLine, snip.Start.Line)
	}
	gutter := strings.Repeat(" ", len(strconv.Itoa(greatestLine)))

	switch {
	case primary.Start.Line != 0:
		fmt.Fprintf(&out, "\n%s%s-->%s %s:%d:%d", gutter, c.bAccent, c.reset,
			primary.File.Path(), primary.Start.Line, primary.Start.Column)
	case primary.File.Path() != "":
		fmt.Fprintf(&out, "\n%s%s-->%s %s", gutter, c.bAccent, c.reset, primary.File.Path())
	}

	if len(d.Annotations) > 0 {
		annotations := slices.Clone(d.Annotations)
		slices.SortStableFunc(annotations, func(a, b Annotation) int {
			if c := cmp.Compare(a.File.Path(), b.File.Path()); c != 0 {
				return c
			}
			return cmp.Compare(a.Start.Offset, b.Start.Offset)
		})

		fmt.Fprintf(&out, "\n%s %s|%s", gutter, c.bAccent, c.reset)
		prevLine, prevFile := 0, ""
		for _, a := range annotations {
			if a.File.Path() != prevFile && prevFile != "" {
				fmt.Fprintf(&out, "\n%s%s-->%s %s:%d:%d", gutter, c.bAccent, c.reset,
					a.File.Path(), a.Start.Line, a.Start.Column)
				fmt.Fprintf(&out, "\n%s %s|%s", gutter, c.bAccent, c.reset)
				prevLine = 0
			}
			if a.Start.Line != prevLine {
				if prevLine != 0 && a.Start.Line > prevLine+1 {
					fmt.Fprintf(&out, "\n%s...%s", c.bAccent, c.reset)
				}
				line := strings.TrimRight(expandTabs(a.File.Line(a.Start.Line)), "\r\n")
				fmt.Fprintf(&out, "\n%s%*d |%s %s", c.bAccent, len(gutter), a.Start.Line, c.reset, line)
			}
			prevLine, prevFile = a.Start.Line, a.File.Path()
			r.underline(&out, c, d.Level, gutter, a)
		}
	}

	for _, note := range d.Notes {
		fmt.Fprintf(&out, "\n%s %s=%s note: %s", gutter, c.bAccent, c.reset, note)
	}
	for _, help := range d.Help {
		fmt.Fprintf(&out, "\n%s %s=%s help: %s", gutter, c.bAccent, c.reset, help)
	}

	return out.String()
}

// underline writes the marker row under an annotated source line. Primary
// annotations use ^ in the diagnostic's color; others use - in the accent
// color.
func (r Renderer) underline(out *strings.Builder, c styleSheet, level Level, gutter string, a Annotation) {
	lineStart, lineEnd := a.File.LineOffsets(a.Start.Line)
	text := strings.TrimRight(a.File.Text()[lineStart:lineEnd], "\r\n")

	start := stringWidth(0, text[:min(a.Start.Offset-lineStart, len(text))])
	end := stringWidth(0, text)
	if a.End.Line == a.Start.Line {
		end = stringWidth(0, text[:min(a.End.Offset-lineStart, len(text))])
	}
	width := max(end-start, 1)

	mark, color := "-", c.bAccent
	if a.Primary {
		mark, color = "^", c.BoldForLevel(level)
	}

	fmt.Fprintf(out, "\n%s %s|%s %s%s%s", gutter, c.bAccent, c.reset,
		strings.Repeat(" ", start), color, strings.Repeat(mark, width))
	if a.Message != "" {
		fmt.Fprint(out, " ", a.Message)
	}
	fmt.Fprint(out, c.reset)
}
