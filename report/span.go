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
	"slices"
	"strings"
	"sync"
	"unicode/utf16"
)

// LengthUnit selects how [File.Location] measures columns.
type LengthUnit int8

const (
	// TermWidth measures columns in terminal cells, as a user sees them.
	TermWidth LengthUnit = iota
	// ByteLength measures columns in UTF-8 bytes.
	ByteLength
	// RuneLength measures columns in Unicode code points.
	RuneLength
	// UTF16Length measures columns in UTF-16 code units, as LSP clients do.
	UTF16Length
)

// Location is a user-displayable location within a source code file.
type Location struct {
	// The byte offset for this location.
	Offset int

	// The line and column for this location, 1-indexed.
	Line, Column int
}

// Span is a location within a [File].
type Span struct {
	// The file this span refers to.
	*File

	// The start and end byte offsets for this span.
	Start, End int
}

// IsZero returns whether or not this is the zero span.
func (s Span) IsZero() bool {
	return s.File == nil
}

// Text returns the text corresponding to this span.
func (s Span) Text() string {
	return s.File.Text()[s.Start:s.End]
}

// Len returns the length of this span, in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// StartLoc returns the start location for this span.
func (s Span) StartLoc() Location {
	return s.Location(s.Start, TermWidth)
}

// EndLoc returns the end location for this span.
func (s Span) EndLoc() Location {
	return s.Location(s.End, TermWidth)
}

// File is a source code file involved in a diagnostic.
//
// It contains additional book-keeping information for resolving span
// locations. Files are safe to share between goroutines.
type File struct {
	path, text string

	once sync.Once
	// A prefix sum of the line lengths of text. Given a byte offset, it is
	// possible to recover which line that offset is on by performing a binary
	// search on this list.
	lineIndex []int
}

// NewFile constructs a new source file.
func NewFile(path, text string) *File {
	return &File{path: path, text: text}
}

// Path returns this file's filesystem path.
func (f *File) Path() string {
	if f == nil {
		return ""
	}
	return f.path
}

// Text returns this file's textual contents.
func (f *File) Text() string {
	if f == nil {
		return ""
	}
	return f.text
}

// Span is a shorthand for creating a new Span.
func (f *File) Span(start, end int) Span {
	if f == nil {
		return Span{}
	}
	return Span{f, start, end}
}

// Lines returns the number of lines in this file.
func (f *File) Lines() int {
	return len(f.lines()) - 1
}

// Line returns the given line, including its trailing newline.
//
// line is expected to be 1-indexed.
func (f *File) Line(line int) string {
	start, end := f.LineOffsets(line)
	return f.text[start:end]
}

// LineOffsets returns the offsets for the given line, including its trailing
// newline.
//
// line is expected to be 1-indexed.
func (f *File) LineOffsets(line int) (start, end int) {
	lines := f.lines()
	return lines[line-1], lines[line]
}

// Location searches this index to build full Location information for the
// given byte offset.
//
// This operation is O(log n).
func (f *File) Location(offset int, units LengthUnit) Location {
	if f == nil {
		return Location{Offset: offset, Line: 1, Column: 1}
	}

	offset = min(max(offset, 0), len(f.text))
	lines := f.lines()

	// Find the smallest index in lines such that lines[line] <= offset.
	line, exact := slices.BinarySearch(lines, offset)
	if !exact {
		line--
	}
	// An offset at the very end of a file ending in a newline sits on the
	// phantom line after it.
	line = min(line, len(lines)-2)

	chunk := f.text[lines[line]:offset]
	var column int
	switch units {
	case RuneLength:
		for range chunk {
			column++
		}
	case ByteLength:
		column = len(chunk)
	case UTF16Length:
		for _, r := range chunk {
			column += utf16.RuneLen(r)
		}
	case TermWidth:
		column = stringWidth(0, chunk)
	}

	return Location{
		Offset: offset,
		Line:   line + 1,
		Column: column + 1,
	}
}

func (f *File) lines() []int {
	f.once.Do(func() {
		// The index always starts with line 1 at offset 0 and ends with a
		// sentinel at len(text), so LineOffsets works for the final line.
		f.lineIndex = append(f.lineIndex, 0)
		var next int
		text := f.text
		for {
			newline := strings.IndexByte(text, '\n') + 1
			if newline == 0 {
				break
			}
			text = text[newline:]
			next += newline
			f.lineIndex = append(f.lineIndex, next)
		}
		if next != len(f.text) || len(f.lineIndex) == 1 {
			f.lineIndex = append(f.lineIndex, len(f.text))
		}
	})
	return f.lineIndex
}
