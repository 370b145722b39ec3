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

// Package lexer turns C source text into tokens.
//
// The lexer never fails: text that matches no token rule is coalesced into
// [token.Unknown] tokens for the parser to diagnose.
package lexer

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// Lex tokenizes the contents of file into a trivia-free stream ending in
// exactly one EOF token positioned at the end of the text.
func Lex(file *report.File) *token.Stream {
	text := file.Text()
	toks := Scan(text)
	toks = append(toks, token.Token{
		Kind: token.EOF,
		Span: token.Span{Start: len(text), End: len(text)},
	})
	return token.NewStream(toks)
}

// Scan tokenizes text, including trivia. The returned tokens exactly tile
// text: concatenating their lexemes reproduces it.
//
// Every maximal run of unrecognized characters becomes a single
// [token.Unknown] token, and every `**` is split into two `*` tokens.
func Scan(text string) []token.Token {
	l := &lexer{text: text, bol: true}
	for !l.done() {
		start := l.pos
		kind := l.next()
		l.emit(kind, start)
	}
	return l.toks
}

type lexer struct {
	text string
	pos  int
	toks []token.Token

	// Whether only whitespace and comments precede pos on the current line.
	bol bool
}

func (l *lexer) done() bool {
	return l.pos >= len(l.text)
}

// peek returns the rune at pos+offset bytes, or -1 at the end of the text.
func (l *lexer) peek(offset int) rune {
	if l.pos+offset >= len(l.text) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(l.text[l.pos+offset:])
	return r
}

func (l *lexer) pop() rune {
	r, sz := utf8.DecodeRuneInString(l.text[l.pos:])
	l.pos += sz
	return r
}

func (l *lexer) emit(kind token.Kind, start int) {
	switch kind {
	case token.Newline:
		l.bol = true
	case token.Whitespace, token.Comment:
	default:
		l.bol = false
	}

	switch kind {
	case token.Unknown:
		if n := len(l.toks); n > 0 && l.toks[n-1].Kind == token.Unknown && l.toks[n-1].Span.End == start {
			last := &l.toks[n-1]
			last.Span.End = l.pos
			last.Lexeme = l.text[last.Span.Start:l.pos]
			return
		}
	case token.StarStar:
		l.toks = append(l.toks,
			token.Token{Kind: token.Star, Lexeme: "*", Span: token.Span{Start: start, End: start + 1}},
			token.Token{Kind: token.Star, Lexeme: "*", Span: token.Span{Start: start + 1, End: start + 2}},
		)
		return
	}

	l.toks = append(l.toks, token.Token{
		Kind:   kind,
		Lexeme: l.text[start:l.pos],
		Span:   token.Span{Start: start, End: l.pos},
	})
}

// next consumes one token and returns its kind.
func (l *lexer) next() token.Kind {
	r := l.peek(0)
	switch {
	case r == '\n':
		l.pos++
		return token.Newline
	case isSpace(r):
		for isSpace(l.peek(0)) {
			l.pos++
		}
		return token.Whitespace
	case r == '#' && l.bol:
		l.skipDirective()
		return token.Directive
	case r == '/' && l.peek(1) == '/':
		l.skipLineComment()
		return token.Comment
	case r == '/' && l.peek(1) == '*':
		l.skipBlockComment()
		return token.Comment
	case r == '"':
		l.pos++
		l.readQuoted('"')
		return token.String
	case r == '\'':
		l.pos++
		l.readQuoted('\'')
		return token.CharConstant
	case isDigit(r) || (r == '.' && isDigit(l.peek(1))):
		return l.readNumber()
	case isIdentStart(r):
		return l.readIdentifier()
	}

	if kind, n := matchPunct(l.text[l.pos:]); n > 0 {
		l.pos += n
		return kind
	}

	if r == utf8.RuneError {
		// Invalid UTF-8; consume a single byte so that tiling still holds.
		l.pos++
	} else {
		l.pop()
	}
	return token.Unknown
}

func (l *lexer) readIdentifier() token.Kind {
	start := l.pos
	for isIdentPart(l.peek(0)) {
		l.pop()
	}
	word := l.text[start:l.pos]

	// Encoding prefixes for string and character literals.
	switch word {
	case "L", "u", "U", "u8":
		switch q := l.peek(0); q {
		case '"':
			l.pos++
			l.readQuoted('"')
			return token.String
		case '\'':
			if word != "u8" {
				l.pos++
				l.readQuoted('\'')
				return token.CharConstant
			}
		}
	}

	if kw, ok := token.Keyword(word); ok {
		return kw
	}
	return token.Identifier
}

// readQuoted consumes the body of a literal whose opening quote has already
// been consumed. An unterminated literal stops before the end of its line.
func (l *lexer) readQuoted(quote rune) {
	for !l.done() {
		switch l.peek(0) {
		case quote:
			l.pos++
			return
		case '\n':
			return
		case '\\':
			l.pos++
			if !l.done() && l.peek(0) != '\n' {
				l.pop()
			}
		default:
			l.pop()
		}
	}
}

func (l *lexer) readNumber() token.Kind {
	kind := token.IntegerConstant
	hex := l.peek(0) == '0' && (l.peek(1) == 'x' || l.peek(1) == 'X')
	digit, exp := isDigit, "eE"
	if hex {
		l.pos += 2
		digit, exp = isHexDigit, "pP"
	}

	for digit(l.peek(0)) {
		l.pos++
	}
	if l.peek(0) == '.' {
		kind = token.FloatingConstant
		l.pos++
		for digit(l.peek(0)) {
			l.pos++
		}
	}
	if r := l.peek(0); r >= 0 && strings.ContainsRune(exp, r) {
		sign := l.peek(1) == '+' || l.peek(1) == '-'
		n := 1
		if sign {
			n = 2
		}
		if isDigit(l.peek(n)) {
			kind = token.FloatingConstant
			l.pos += n
			for isDigit(l.peek(0)) {
				l.pos++
			}
		}
	}

	suffix := "uUlL"
	if kind == token.FloatingConstant {
		suffix = "fFlL"
	}
	for r := l.peek(0); r >= 0 && strings.ContainsRune(suffix, r); r = l.peek(0) {
		l.pos++
	}
	return kind
}

func (l *lexer) skipLineComment() {
	if i := strings.IndexByte(l.text[l.pos:], '\n'); i >= 0 {
		l.pos += i
	} else {
		l.pos = len(l.text)
	}
}

// skipBlockComment consumes a /* */ comment. An unterminated comment runs to
// the end of the text.
func (l *lexer) skipBlockComment() {
	if i := strings.Index(l.text[l.pos+2:], "*/"); i >= 0 {
		l.pos += i + 4
	} else {
		l.pos = len(l.text)
	}
}

// skipDirective consumes a preprocessor directive up to, but excluding, the
// newline that ends it. Backslash-newline pairs continue the directive.
func (l *lexer) skipDirective() {
	for !l.done() {
		i := strings.IndexByte(l.text[l.pos:], '\n')
		if i < 0 {
			l.pos = len(l.text)
			return
		}
		line := strings.TrimSuffix(l.text[l.pos:l.pos+i], "\r")
		if !strings.HasSuffix(line, "\\") {
			l.pos += i
			return
		}
		l.pos += i + 1
	}
}

// puncts is ordered so that longer spellings are tried first.
var puncts = func() [3][]token.Kind {
	var out [3][]token.Kind
	for k := token.Plus; k <= token.StarStar; k++ {
		n := len(k.String())
		out[3-n] = append(out[3-n], k)
	}
	return out
}()

// matchPunct returns the longest punctuator that prefixes text.
func matchPunct(text string) (token.Kind, int) {
	for _, group := range puncts {
		for _, k := range group {
			if strings.HasPrefix(text, k.String()) {
				return k, len(k.String())
			}
		}
	}
	return token.Unknown, 0
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\v' || r == '\f'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isHexDigit(r rune) bool {
	return isDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

func isIdentStart(r rune) bool {
	return r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') ||
		(r > utf8.RuneSelf && unicode.IsLetter(r))
}

func isIdentPart(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}
