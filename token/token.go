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

package token

import "fmt"

// Span is a half-open byte range [Start, End) into a source file.
//
// The zero Span is the empty sentinel used for nodes with no children.
type Span struct {
	Start, End int
}

// Len returns the number of bytes covered by this span.
func (s Span) Len() int {
	return s.End - s.Start
}

// IsEmpty returns whether this span covers no bytes.
func (s Span) IsEmpty() bool {
	return s.End <= s.Start
}

// Contains returns whether other lies entirely within s.
func (s Span) Contains(other Span) bool {
	return s.Start <= other.Start && other.End <= s.End
}

// Text returns the text of the source that this span covers.
func (s Span) Text(src string) string {
	return src[s.Start:s.End]
}

// String implements [fmt.Stringer].
func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token is a single lexical element of a source file.
type Token struct {
	Kind   Kind
	Lexeme string
	Span   Span
}

// String implements [fmt.Stringer].
func (t Token) String() string {
	return fmt.Sprintf("%s@%v %q", t.Kind.Name(), t.Span, t.Lexeme)
}
