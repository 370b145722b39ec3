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

package ast

import (
	"errors"
	"fmt"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/report"
)

// Diagnostic codes reported by lowering.
const (
	CodeReturnType    = "W0001"
	CodeImplicitInt   = "W0003"
	CodeMalformedTree = "E0006"
	CodeNotAFunction  = "E0007"
)

// ErrMalformedTree is returned when lowering meets a tree shape the parser
// never produces.
var ErrMalformedTree = errors.New("malformed syntax tree")

// errMissingReturn warns about a non-void function whose body is empty.
type errMissingReturn struct {
	name   string
	ret    DataType
	at     report.Span // The closing brace of the body.
	nameAt report.Span
}

func (e errMissingReturn) Error() string {
	return "non-void function does not return a value"
}

func (e errMissingReturn) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeReturnType),
		report.Tag("return-type"),
		report.Snippetf(e.at, "control reaches end of non-void function"),
		report.Snippetf(e.nameAt, "`%s` declared to return `%v` here", e.name, e.ret),
	)
}

// errImplicitInt warns about a declaration without a type specifier.
type errImplicitInt struct {
	at report.Span
}

func (e errImplicitInt) Error() string {
	return "type specifier missing, defaults to `int`"
}

func (e errImplicitInt) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeImplicitInt),
		report.Tag("implicit-int"),
		report.Snippet(e.at),
		report.Help("ISO C99 and later do not support implicit int"),
	)
}

// errNotAFunction diagnoses a function body attached to a declarator that
// does not declare a function, as in `int x { }`.
type errNotAFunction struct {
	name string
	at   report.Span
	typ  DataType
}

func (e errNotAFunction) Error() string {
	return fmt.Sprintf("`%s` is not declared as a function", e.name)
}

func (e errNotAFunction) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeNotAFunction),
		report.Snippetf(e.at, "declared with type `%v`", e.typ),
		report.Help("add a parameter list, such as `(void)`"),
	)
}

// errMalformed is an internal error for a tree shape lowering cannot handle.
type errMalformed struct {
	at   report.Span
	kind cst.Kind
	what string
}

func (e errMalformed) Error() string {
	return fmt.Sprintf("malformed %v: %s", e.kind, e.what)
}

func (e errMalformed) Unwrap() error {
	return ErrMalformedTree
}

func (e errMalformed) Diagnose(d *report.Diagnostic) {
	d.With(
		report.Code(CodeMalformedTree),
		report.Snippet(e.at),
	)
}
