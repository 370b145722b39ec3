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
	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/token"
)

// compoundStatement parses a braced block. Runs of declarations and runs of
// statements alternate as DeclarationList and StatementList children.
func compoundStatement(p *parser) {
	defer p.leave()
	if _, ok := p.enter(cst.CompoundStatement); !ok {
		return
	}

	m := p.open()
	if !p.expect(token.LBrace, "to open block") {
		p.close(m, cst.CompoundStatement)
		return
	}
	for !p.at(token.RBrace) && !p.eof() {
		before := p.pos
		switch {
		case p.atDeclarationStart():
			declarationList(p)
		case p.atAny(statementFirst):
			statementList(p)
		default:
			p.advanceWithError(errUnexpected{
				at:    p.span(p.current().Span),
				got:   p.current(),
				where: "in block",
			})
		}
		p.guard(before, "in block")
	}
	p.expect(token.RBrace, "to close block")
	p.close(m, cst.CompoundStatement)
}

func declarationList(p *parser) {
	m := p.open()
	for p.atDeclarationStart() {
		before := p.pos
		if p.at(token.KwStaticAssert) {
			staticAssertDeclaration(p)
		} else {
			declaration(p)
		}
		p.guard(before, "in declaration")
	}
	p.close(m, cst.DeclarationList)
}

func statementList(p *parser) {
	m := p.open()
	for !p.at(token.RBrace) && p.atAny(statementFirst) && !p.atDeclarationStart() {
		before := p.pos
		statement(p)
		p.guard(before, "in statement")
	}
	p.close(m, cst.StatementList)
}

// statement parses any statement into a Statement wrapper.
func statement(p *parser) {
	defer p.leave()
	if _, ok := p.enter(cst.Statement); !ok {
		return
	}

	m := p.open()
	switch {
	case p.at(token.Identifier) && p.nth(1) == token.Colon,
		p.at(token.KwCase), p.at(token.KwDefault):
		labeledStatement(p)
	case p.at(token.LBrace):
		compoundStatement(p)
	case p.at(token.KwIf), p.at(token.KwSwitch):
		selectionStatement(p)
	case p.at(token.KwWhile), p.at(token.KwDo), p.at(token.KwFor):
		iterationStatement(p)
	case p.at(token.KwGoto), p.at(token.KwContinue), p.at(token.KwBreak), p.at(token.KwReturn):
		jumpStatement(p)
	default:
		expressionStatement(p)
	}
	p.close(m, cst.Statement)
}

// body parses the statement governed by a label, condition, or loop.
func body(p *parser) {
	if p.at(token.RBrace) || p.eof() {
		p.missing(errUnexpected{
			at:    p.span(p.current().Span),
			got:   p.current(),
			where: "where a statement was expected",
		})
		return
	}
	statement(p)
}

func labeledStatement(p *parser) {
	m := p.open()
	switch {
	case p.at(token.Identifier):
		p.advance()
		p.advance()
	case p.at(token.KwCase):
		p.advance()
		constantExpression(p)
		p.expect(token.Colon, "after `case` label")
	default:
		p.advance()
		p.expect(token.Colon, "after `default`")
	}
	body(p)
	p.close(m, cst.LabeledStatement)
}

func expressionStatement(p *parser) {
	m := p.open()
	if !p.at(token.Semicolon) {
		expression(p)
	}
	p.expect(token.Semicolon, "after expression")
	p.close(m, cst.ExpressionStatement)
}

// condition parses a parenthesized controlling expression.
func condition(p *parser, keyword string) {
	p.expect(token.LParen, "after `"+keyword+"`")
	expression(p)
	p.expect(token.RParen, "to close condition")
}

func selectionStatement(p *parser) {
	m := p.open()
	if p.at(token.KwIf) {
		p.advance()
		condition(p, "if")
		body(p)
		if p.eat(token.KwElse) {
			body(p)
		}
	} else {
		p.advance()
		condition(p, "switch")
		body(p)
	}
	p.close(m, cst.SelectionStatement)
}

func iterationStatement(p *parser) {
	m := p.open()
	switch {
	case p.at(token.KwWhile):
		p.advance()
		condition(p, "while")
		body(p)
	case p.at(token.KwDo):
		p.advance()
		body(p)
		p.expect(token.KwWhile, "after `do` body")
		condition(p, "while")
		p.expect(token.Semicolon, "after `do`-`while`")
	default:
		p.advance()
		p.expect(token.LParen, "after `for`")
		if p.atDeclarationStart() {
			declaration(p)
		} else {
			if !p.at(token.Semicolon) {
				expression(p)
			}
			p.expect(token.Semicolon, "after `for` initializer")
		}
		if !p.at(token.Semicolon) {
			expression(p)
		}
		p.expect(token.Semicolon, "after `for` condition")
		if !p.at(token.RParen) {
			expression(p)
		}
		p.expect(token.RParen, "to close `for` header")
		body(p)
	}
	p.close(m, cst.IterationStatement)
}

func jumpStatement(p *parser) {
	m := p.open()
	switch {
	case p.at(token.KwGoto):
		p.advance()
		p.expect(token.Identifier, "after `goto`")
	case p.at(token.KwReturn):
		p.advance()
		if !p.at(token.Semicolon) {
			expression(p)
		}
	default:
		p.advance()
	}
	p.expect(token.Semicolon, "after jump")
	p.close(m, cst.JumpStatement)
}
