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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errTest struct {
	span Span
}

func (e errTest) Error() string { return "something went wrong" }

func (e errTest) Diagnose(d *Diagnostic) {
	d.With(Code("E9999"), Snippetf(e.span, "right here"), Note("a note"), Help("a help"))
}

func TestFileLocation(t *testing.T) {
	t.Parallel()

	f := NewFile("a.c", "int x;\n\tint y;\nz")
	assert.Equal(t, 3, f.Lines())
	assert.Equal(t, "int x;\n", f.Line(1))
	assert.Equal(t, "z", f.Line(3))

	tests := []struct {
		offset       int
		units        LengthUnit
		line, column int
	}{
		{0, TermWidth, 1, 1},
		{4, TermWidth, 1, 5},
		{7, TermWidth, 2, 1},
		{8, TermWidth, 2, 5}, // After the tab.
		{8, ByteLength, 2, 2},
		{15, TermWidth, 3, 1},
		{16, TermWidth, 3, 2},
		{100, ByteLength, 3, 2}, // Clamped.
	}
	for _, tt := range tests {
		loc := f.Location(tt.offset, tt.units)
		assert.Equal(t, tt.line, loc.Line, "offset %d", tt.offset)
		assert.Equal(t, tt.column, loc.Column, "offset %d", tt.offset)
	}
}

func TestFileLocationUTF16(t *testing.T) {
	t.Parallel()

	f := NewFile("a.c", "\"😀\" x")
	loc := f.Location(strings.Index(f.Text(), "x"), UTF16Length)
	assert.Equal(t, 1, loc.Line)
	assert.Equal(t, 6, loc.Column)
}

func TestFileEmpty(t *testing.T) {
	t.Parallel()

	f := NewFile("empty.c", "")
	assert.Equal(t, 1, f.Lines())
	assert.Equal(t, Location{Offset: 0, Line: 1, Column: 1}, f.Location(0, TermWidth))
	assert.Empty(t, f.Line(1))
}

func TestReport(t *testing.T) {
	t.Parallel()

	f := NewFile("b.c", "int x\n")
	var r Report
	r.Warnf("late").With(Snippet(f.Span(4, 5)))
	r.Error(errTest{span: f.Span(0, 3)})
	r.Remarkf("fyi").With(InFile("a.c"))
	r.ICE(errors.New("boom"))

	assert.True(t, r.HasErrors())
	assert.Equal(t, 1, r.Count(Error))
	assert.Equal(t, 1, r.Count(Warning))
	assert.Equal(t, 1, r.Count(ICE))

	d := r.Diagnostics[1]
	assert.Equal(t, "E9999", d.Code)
	require.Len(t, d.Annotations, 1)
	assert.True(t, d.Annotations[0].Primary)
	assert.Equal(t, "int", d.Annotations[0].Span().Text())
	assert.Equal(t, []string{"a note"}, d.Notes)
	assert.Equal(t, []string{"a help"}, d.Help)

	r.Sort()
	var msgs []string
	for i := range r.Diagnostics {
		msgs = append(msgs, r.Diagnostics[i].Message())
	}
	assert.Equal(t, []string{"boom", "fyi", "something went wrong", "late"}, msgs)

	var other Report
	other.Append(&r)
	assert.Len(t, other.Diagnostics, 4)
}

func TestRenderCompact(t *testing.T) {
	t.Parallel()

	f := NewFile("a.c", "int x\n")
	var r Report
	r.Errorf("expected `;`").With(Code("E0002"), Snippetf(f.Span(5, 5), "expected `;` here"))
	r.Warnf("empty").With(InFile("b.c"))
	r.Remarkf("hidden")

	text, errs, warns := Renderer{Compact: true}.RenderString(&r)
	assert.Equal(t, 1, errs)
	assert.Equal(t, 1, warns)
	assert.Equal(t, "a.c:1:6: error[E0002]: expected `;`\nb.c: warning: empty\n", text)

	text, errs, warns = Renderer{Compact: true, WarningsAreErrors: true}.RenderString(&r)
	assert.Equal(t, 2, errs)
	assert.Equal(t, 0, warns)
	assert.Contains(t, text, "b.c: error: empty")
}

func TestRenderFull(t *testing.T) {
	t.Parallel()

	f := NewFile("a.c", "int x\n")
	var r Report
	r.Errorf("expected `;`").With(
		Code("E0002"),
		Snippetf(f.Span(5, 5), "expected `;` here"),
		Snippet(f.Span(0, 3)),
		Help("add a `;`"),
	)

	text, errs, _ := Renderer{}.RenderString(&r)
	assert.Equal(t, 1, errs)
	want := strings.Join([]string{
		"error[E0002]: expected `;`",
		" --> a.c:1:6",
		"  |",
		"1 | int x",
		"  | ---",
		"  |      ^ expected `;` here",
		"  = help: add a `;`",
		"",
		"encountered 1 error",
		"",
	}, "\n")
	assert.Equal(t, want, text)
}

func TestRenderColor(t *testing.T) {
	t.Parallel()

	var r Report
	r.Warnf("careful")
	text, _, warns := Renderer{Colorize: true}.RenderString(&r)
	assert.Equal(t, 1, warns)
	assert.Contains(t, text, "\033[1;33mwarning: careful\033[0m")

	text, _, _ = Renderer{Colorize: true, Compact: true}.RenderString(&r)
	assert.Contains(t, text, "\033[0;33mwarning: careful\033[0m")

	text, _, _ = Renderer{Colorize: true, WarningsAreErrors: true}.RenderString(&r)
	assert.Contains(t, text, "\033[1;31merror: careful\033[0m")

	text, _, _ = Renderer{}.RenderString(&r)
	assert.NotContains(t, text, "\033")
}

func TestAsError(t *testing.T) {
	t.Parallel()

	r := new(Report)
	r.Warnf("just a warning")
	require.NoError(t, AsError(r))

	sentinel := errors.New("first")
	r.Error(errTest{})
	r.ICE(sentinel)
	err := AsError(r)
	require.Error(t, err)
	assert.Equal(t, "something went wrong (and 1 more errors)", err.Error())
	assert.ErrorIs(t, err, sentinel)
	var target errTest
	assert.ErrorAs(t, err, &target)
}
