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

// Stream is an ordered sequence of non-trivia tokens terminated by exactly
// one [EOF] token, with a cursor that only moves forward.
type Stream struct {
	tokens []Token
	cursor int
}

// NewStream wraps toks in a stream. Trivia is dropped, and an EOF token is
// appended at the end of the last token if toks does not already end in one.
func NewStream(toks []Token) *Stream {
	out := make([]Token, 0, len(toks)+1)
	end := 0
	for _, tok := range toks {
		if tok.Kind.IsTrivia() {
			continue
		}
		if tok.Kind == EOF {
			break
		}
		out = append(out, tok)
		end = tok.Span.End
	}
	if n := len(toks); n > 0 && toks[n-1].Kind == EOF {
		end = toks[n-1].Span.Start
	}
	out = append(out, Token{Kind: EOF, Span: Span{Start: end, End: end}})
	return &Stream{tokens: out}
}

// Len returns the number of tokens in the stream, including EOF.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// Tokens returns every token in the stream, including EOF. The returned
// slice must not be modified.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// At returns the token at index i. Indices past the end yield the EOF token.
func (s *Stream) At(i int) Token {
	if i >= len(s.tokens) {
		return s.tokens[len(s.tokens)-1]
	}
	return s.tokens[i]
}

// Cursor returns the index of the next token [Stream.Next] will yield.
func (s *Stream) Cursor() int {
	return s.cursor
}

// Next pops the token under the cursor. Returns false once the stream,
// including its EOF token, has been drained.
func (s *Stream) Next() (Token, bool) {
	if s.cursor >= len(s.tokens) {
		return Token{}, false
	}
	tok := s.tokens[s.cursor]
	s.cursor++
	return tok, true
}

// Done returns whether every token, including EOF, has been popped.
func (s *Stream) Done() bool {
	return s.cursor >= len(s.tokens)
}
