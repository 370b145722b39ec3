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

package parser

import (
	"errors"
	"fmt"

	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// Diagnostic codes reported by the parser.
const (
	CodeUnknownToken    = "E0000"
	CodeUnexpectedToken = "E0001"
	CodeExpectedToken   = "E0002"
	CodeUnterminated    = "E0003"
	CodeTooDeep         = "E0004"
	CodeOutOfFuel       = "E0005"
	CodeEmptyUnit       = "W0002"
)

var (
	// ErrOutOfFuel is returned when the parser stops making progress. It
	// always indicates a bug in the parser.
	ErrOutOfFuel = errors.New("parser ran out of fuel")

	// ErrMalformedTree is returned when the event log does not describe a
	// well-formed tree. It always indicates a bug in the parser.
	ErrMalformedTree = errors.New("malformed event log")
)

// describe renders a token the way diagnostics refer to it.
func describe(tok token.Token) string {
	switch {
	case tok.Kind == token.EOF:
		return "end of file"
	case tok.Kind.IsPunct(), tok.Kind.IsKeyword():
		return tok.Kind.Quoted()
	default:
		return fmt.Sprintf("%v `%s`", tok.Kind, tok.Lexeme)
	}
}

// errUnknownToken diagnoses input the lexer could not classify.
type errUnknownToken struct {
	span report.Span
	text string
}

func (e errUnknownToken) Error() string {
	return fmt.Sprintf("unknown token `%s`", e.text)
}

func (e errUnknownToken) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeUnknownToken),
		report.Snippetf(e.span, "not a valid C token"),
	)
}

// errUnexpected diagnoses a token that cannot appear where it was found.
type errUnexpected struct {
	at    report.Span
	got   token.Token
	want  token.Set // May be empty.
	where string    // Describes the enclosing construct, e.g. "in statement".
}

func (e errUnexpected) Error() string {
	if e.where == "" {
		return "unexpected " + describe(e.got)
	}
	return fmt.Sprintf("unexpected %s %s", describe(e.got), e.where)
}

func (e errUnexpected) Diagnose(d *report.Diagnostic) {
	var label string
	if e.want.Len() > 0 {
		label = "expected " + e.want.Join("or")
	}
	d.With(
		report.Code(CodeUnexpectedToken),
		report.Snippetf(e.at, "%s", label),
	)
}

// errExpected diagnoses a token that is missing.
type errExpected struct {
	at      report.Span // Zero-width, just past the previous token.
	found   token.Token
	foundAt report.Span
	want    token.Set
	where   string // e.g. "after declaration".
}

func (e errExpected) Error() string {
	return "expected " + e.want.Join("or")
}

func (e errExpected) Diagnose(d *report.Diagnostic) {
	label := "expected " + e.want.Join("or")
	if e.where != "" {
		label += " " + e.where
	}
	d.With(
		report.Code(CodeExpectedToken),
		report.Snippetf(e.at, "%s", label),
	)
	if e.found.Kind != token.EOF && e.foundAt.Start != e.at.Start {
		d.With(report.Snippetf(e.foundAt, "found %s", describe(e.found)))
	}
}

// errExpectedExpression diagnoses a missing operand.
type errExpectedExpression struct {
	at  report.Span
	got token.Token
}

func (e errExpectedExpression) Error() string {
	return "expected expression, found " + describe(e.got)
}

func (e errExpectedExpression) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeUnexpectedToken),
		report.Snippetf(e.at, "expected expression"),
	)
}

// errExpectedType diagnoses a parameter declared without a type.
type errExpectedType struct {
	at  report.Span
	got token.Token
}

func (e errExpectedType) Error() string {
	return "expected type specifier, found " + describe(e.got)
}

func (e errExpectedType) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeExpectedToken),
		report.Snippetf(e.at, "parameter has no type"),
	)
}

// errUnterminated diagnoses a string or character literal that runs into the
// end of its line.
type errUnterminated struct {
	at   report.Span
	kind token.Kind
}

func (e errUnterminated) Error() string {
	return fmt.Sprintf("unterminated %v", e.kind)
}

func (e errUnterminated) Diagnose(d *report.Diagnostic) {
	quote := `"`
	if e.kind == token.CharConstant {
		quote = "'"
	}
	d.With(
		report.Code(CodeUnterminated),
		report.Snippetf(e.at, "missing closing %s", quote),
	)
}

// errTooDeep diagnoses input nested past the configured ceiling.
type errTooDeep struct {
	at    report.Span
	limit int
}

func (e errTooDeep) Error() string {
	return "nesting too deep"
}

func (e errTooDeep) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeTooDeep),
		report.Snippetf(e.at, "exceeds the maximum depth of %d", e.limit),
		report.Help("split the expression or block into smaller pieces"),
	)
}

// errStuck is the internal error reported when the parser runs out of fuel.
type errStuck struct {
	at  report.Span
	tok token.Token
}

func (e errStuck) Error() string {
	return fmt.Sprintf("parser made no progress at %s", describe(e.tok))
}

func (e errStuck) Unwrap() error {
	return ErrOutOfFuel
}

func (e errStuck) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeOutOfFuel),
		report.Snippetf(e.at, "stuck here"),
		report.Note("this is a bug in the parser"),
	)
}

// errAdvancePastEOF is the internal error reported when a rule tries to
// consume the end-of-file token.
type errAdvancePastEOF struct {
	at token.Token
}

func (e errAdvancePastEOF) Error() string {
	return "parser advanced past end of file"
}

// errBuild is the internal error reported when the event log is unbalanced.
type errBuild struct {
	reason string
}

func (e errBuild) Error() string {
	return "building tree: " + e.reason
}

func (e errBuild) Unwrap() error {
	return ErrMalformedTree
}

// errEmptyUnit warns about a file without any declarations.
type errEmptyUnit struct {
	path string
}

func (e errEmptyUnit) Error() string {
	return "ISO C requires a translation unit to contain at least one declaration"
}

func (e errEmptyUnit) Diagnose(d *report.Diagnostic) {
	d.With(
		report.InFile(e.path),
		report.Code(CodeEmptyUnit),
		report.Tag("pedantic"),
	)
}
