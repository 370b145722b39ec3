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
	"fmt"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// Option configures [Lower].
type Option func(*lowerer)

// WithFile supplies the source file the tree was parsed from, so that
// diagnostics can point into it. Without it, diagnostics carry no snippets.
func WithFile(file *report.File) Option {
	return func(l *lowerer) { l.file = file }
}

// Lower converts a parsed translation unit into an AST.
//
// External declarations containing syntax errors are skipped. Warnings, such
// as for a non-void function with an empty body, are reported to r. An error
// is returned only for a tree the parser could not have produced; an ICE
// has then also been reported to r.
func Lower(tree *cst.Tree, r *report.Report, opts ...Option) (unit *TranslationUnit, err error) {
	l := &lowerer{report: r}
	for _, opt := range opts {
		opt(l)
	}

	defer func() {
		v := recover()
		if v == nil {
			return
		}
		bad, ok := v.(malformed)
		if !ok {
			panic(v)
		}
		ice := errMalformed{at: l.span(bad.tree.Span), kind: bad.tree.Kind, what: bad.what}
		r.ICE(ice)
		unit, err = nil, ice
	}()

	if tree == nil {
		l.fail(&cst.Tree{Kind: cst.TranslationUnit}, "nil tree")
	}
	if tree.Kind != cst.TranslationUnit {
		l.fail(tree, "not a translation unit")
	}

	unit = new(TranslationUnit)
	for ext := range tree.TreesOf(cst.ExternDecl) {
		if ext.ContainsErrors() {
			continue
		}
		if decl := l.externDecl(ext); decl != nil {
			unit.Functions = append(unit.Functions, decl)
		}
	}
	return unit, nil
}

type lowerer struct {
	file   *report.File
	report *report.Report
}

// malformed is the panic value used to abandon lowering; Lower converts it
// into an ICE.
type malformed struct {
	tree *cst.Tree
	what string
}

func (l *lowerer) fail(t *cst.Tree, format string, args ...any) {
	panic(malformed{tree: t, what: fmt.Sprintf(format, args...)})
}

func (l *lowerer) span(s token.Span) report.Span {
	return l.file.Span(s.Start, s.End)
}

// child returns the first child tree of t with the given kind, failing if
// there is none.
func (l *lowerer) child(t *cst.Tree, kind cst.Kind) *cst.Tree {
	c := t.FindChild(kind)
	if c == nil {
		l.fail(t, "missing %v", kind)
	}
	return c
}

// first returns the first child tree of t, failing if there is none.
func (l *lowerer) first(t *cst.Tree) *cst.Tree {
	for c := range t.Trees() {
		return c
	}
	l.fail(t, "no child trees")
	return nil
}

// trees returns the child trees of t, failing unless there are between lo
// and hi of them.
func (l *lowerer) trees(t *cst.Tree, lo, hi int) []*cst.Tree {
	var out []*cst.Tree
	for c := range t.Trees() {
		out = append(out, c)
	}
	if len(out) < lo || len(out) > hi {
		l.fail(t, "has %d child trees", len(out))
	}
	return out
}

// leadingToken returns t's first child, which must be a token.
func (l *lowerer) leadingToken(t *cst.Tree) *token.Token {
	if len(t.Children) == 0 || t.Children[0].Token == nil {
		l.fail(t, "does not start with a token")
	}
	return t.Children[0].Token
}

func (l *lowerer) externDecl(ext *cst.Tree) ExternDecl {
	decl := l.first(ext)
	switch decl.Kind {
	case cst.FunctionDef:
		if fn := l.function(decl); fn != nil {
			return fn
		}
		return nil
	case cst.Declaration:
		return l.declaration(decl)
	case cst.StaticAssertDeclaration:
		return l.staticAssert(decl)
	default:
		l.fail(decl, "unexpected external declaration")
		return nil
	}
}
