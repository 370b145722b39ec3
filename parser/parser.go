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
	"fmt"

	"github.com/tliron/commonlog"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/lexer"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// DefaultMaxDepth is the nesting ceiling used when none is configured.
const DefaultMaxDepth = 256

// Option configures a parse.
type Option func(*options)

type options struct {
	maxDepth int
	logger   commonlog.Logger
}

// WithMaxDepth sets how deeply blocks, expressions and declarators may nest
// before the parser gives up on the innermost construct. Non-positive values
// select [DefaultMaxDepth].
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// WithLogger sets the logger that receives rule traces at debug level.
func WithLogger(log commonlog.Logger) Option {
	return func(o *options) { o.logger = log }
}

func newOptions(opts []Option) options {
	o := options{
		maxDepth: DefaultMaxDepth,
		logger:   commonlog.GetLogger("rcc.parser"),
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// Parse lexes and parses a C source file.
//
// Syntax errors are reported to r and recorded in the tree as
// [cst.ErrorTree] nodes; they do not cause an error return. The returned
// error is non-nil only when the parser itself failed, in which case an ICE
// has also been reported and the tree is nil.
func Parse(file *report.File, r *report.Report, opts ...Option) (*cst.Tree, error) {
	return ParseTokens(file, lexer.Lex(file), r, opts...)
}

// ParseTokens parses an already lexed stream. file supplies the text that
// diagnostics point into.
func ParseTokens(file *report.File, stream *token.Stream, r *report.Report, opts ...Option) (*cst.Tree, error) {
	return run(file, stream, r, newOptions(opts), translationUnit)
}

// rules are the entry points accepted by [ParseRule].
var rules = map[cst.Kind]func(*parser){
	cst.TranslationUnit:      translationUnit,
	cst.ExternDecl:           externDecl,
	cst.FunctionDef:          functionDefinition,
	cst.Declaration:          declaration,
	cst.Declarator:           declarator,
	cst.TypeName:             typeName,
	cst.Initializer:          initializer,
	cst.Statement:            statement,
	cst.CompoundStatement:    compoundStatement,
	cst.Expression:           func(p *parser) { expression(p) },
	cst.AssignmentExpression: func(p *parser) { assignmentExpression(p) },
	cst.ConstantExpression:   func(p *parser) { constantExpression(p) },
}

// ParseRule parses file as a single instance of the given production, such
// as [cst.Statement] or [cst.Expression]. Tokens left over after the
// production are reported and kept in a trailing error tree.
func ParseRule(file *report.File, kind cst.Kind, r *report.Report, opts ...Option) (*cst.Tree, error) {
	rule, ok := rules[kind]
	if !ok {
		return nil, fmt.Errorf("parser: no rule for %v", kind)
	}
	if kind == cst.TranslationUnit {
		return Parse(file, r, opts...)
	}

	tree, err := run(file, lexer.Lex(file), r, newOptions(opts), func(p *parser) {
		m := p.open()
		rule(p)
		if !p.eof() {
			rest := p.open()
			p.report.Error(errUnexpected{
				at:    p.span(p.current().Span),
				got:   p.current(),
				where: "after " + kind.String(),
			})
			for !p.eof() {
				p.advance()
			}
			p.close(rest, cst.ErrorTree)
		}
		p.close(m, kind)
	})
	if err != nil {
		return nil, err
	}
	if len(tree.Children) == 1 && tree.Children[0].Tree != nil {
		tree = tree.Children[0].Tree
	}
	return tree, nil
}

// run drives start over stream and assembles the result.
func run(file *report.File, stream *token.Stream, r *report.Report, opts options, start func(*parser)) (tree *cst.Tree, err error) {
	p := newParser(file, stream, r, opts)
	defer func() {
		v := recover()
		if v == nil {
			return
		}
		stuck, ok := v.(outOfFuel)
		if !ok {
			panic(v)
		}
		ice := errStuck{at: p.span(stuck.at.Span), tok: stuck.at}
		r.ICE(ice)
		tree, err = nil, ice
	}()

	start(p)
	tree, err = buildTree(p)
	if err != nil {
		r.ICE(err)
		return nil, err
	}
	if p.log != nil && p.log.AllowLevel(commonlog.Debug) {
		p.log.Debugf("parsed %s: %d tokens, %d events, %d errors",
			file.Path(), len(p.tokens)-1, len(p.events), tree.NumErrors())
	}
	return tree, nil
}
