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

// Expression rules return the mark of the node they produced so that callers
// can wrap it with openBefore. Operator nodes are only created when an
// operator is present: `x` parses to a bare PrimaryExpression.

// expression parses a comma expression.
func expression(p *parser) markClosed {
	lhs := assignmentExpression(p)
	for p.at(token.Comma) {
		m := p.openBefore(lhs)
		p.advance()
		assignmentExpression(p)
		lhs = p.close(m, cst.Expression)
	}
	return lhs
}

// assignmentExpression parses a right-associative assignment.
func assignmentExpression(p *parser) markClosed {
	defer p.leave()
	if skipped, ok := p.enter(cst.AssignmentExpression); !ok {
		return skipped
	}

	lhs := conditionalExpression(p)
	if p.atAny(assignmentOperators) {
		m := p.openBefore(lhs)
		p.advance()
		assignmentExpression(p)
		return p.close(m, cst.AssignmentExpression)
	}
	return lhs
}

func conditionalExpression(p *parser) markClosed {
	lhs := logicalOrExpression(p)
	if p.at(token.Question) {
		m := p.openBefore(lhs)
		p.advance()
		expression(p)
		p.expect(token.Colon, "in conditional expression")
		conditionalExpression(p)
		return p.close(m, cst.ConditionalExpression)
	}
	return lhs
}

// constantExpression wraps a conditional expression, as used by array bounds,
// case labels, bit widths and enumerator values.
func constantExpression(p *parser) markClosed {
	m := p.open()
	conditionalExpression(p)
	return p.close(m, cst.ConstantExpression)
}

// Binary operators by precedence, loosest first.
var (
	logicalOrOperators      = token.NewSet(token.PipePipe)
	logicalAndOperators     = token.NewSet(token.AmpAmp)
	inclusiveOrOperators    = token.NewSet(token.Pipe)
	exclusiveOrOperators    = token.NewSet(token.Caret)
	andOperators            = token.NewSet(token.Amp)
	equalityOperators       = token.NewSet(token.EqEq, token.Ne)
	relationalOperators     = token.NewSet(token.Lt, token.Gt, token.Le, token.Ge)
	shiftOperators          = token.NewSet(token.LShift, token.RShift)
	additiveOperators       = token.NewSet(token.Plus, token.Minus)
	multiplicativeOperators = token.NewSet(token.Star, token.Slash, token.Percent)
)

// binary parses a left-associative chain of operands separated by ops.
func binary(p *parser, ops token.Set, kind cst.Kind, operand func(*parser) markClosed) markClosed {
	lhs := operand(p)
	for p.atAny(ops) {
		m := p.openBefore(lhs)
		p.advance()
		operand(p)
		lhs = p.close(m, kind)
	}
	return lhs
}

func logicalOrExpression(p *parser) markClosed {
	return binary(p, logicalOrOperators, cst.LogicalOrExpression, logicalAndExpression)
}

func logicalAndExpression(p *parser) markClosed {
	return binary(p, logicalAndOperators, cst.LogicalAndExpression, inclusiveOrExpression)
}

func inclusiveOrExpression(p *parser) markClosed {
	return binary(p, inclusiveOrOperators, cst.InclusiveOrExpression, exclusiveOrExpression)
}

func exclusiveOrExpression(p *parser) markClosed {
	return binary(p, exclusiveOrOperators, cst.ExclusiveOrExpression, andExpression)
}

func andExpression(p *parser) markClosed {
	return binary(p, andOperators, cst.AndExpression, equalityExpression)
}

func equalityExpression(p *parser) markClosed {
	return binary(p, equalityOperators, cst.EqualityExpression, relationalExpression)
}

func relationalExpression(p *parser) markClosed {
	return binary(p, relationalOperators, cst.RelationalExpression, shiftExpression)
}

func shiftExpression(p *parser) markClosed {
	return binary(p, shiftOperators, cst.ShiftExpression, additiveExpression)
}

func additiveExpression(p *parser) markClosed {
	return binary(p, additiveOperators, cst.AdditiveExpression, multiplicativeExpression)
}

func multiplicativeExpression(p *parser) markClosed {
	return binary(p, multiplicativeOperators, cst.MultiplicativeExpression, castExpression)
}

// castExpression parses "(" TypeName ")" CastExpression, or falls through to
// a unary expression when the parenthesis does not hold a type.
func castExpression(p *parser) markClosed {
	if !p.atCast() {
		return unaryExpression(p)
	}
	defer p.leave()
	if skipped, ok := p.enter(cst.CastExpression); !ok {
		// The operand of the innermost cast goes with the skipped tokens.
		return p.skipWhile(skipped, func() bool { return !p.atAny(operandFollow) })
	}

	m := p.open()
	p.advance()
	typeName(p)
	p.expect(token.RParen, "to close cast")
	castExpression(p)
	return p.close(m, cst.CastExpression)
}

// unaryExpression parses prefix operators, sizeof and _Alignof.
func unaryExpression(p *parser) markClosed {
	defer p.leave()
	if skipped, ok := p.enter(cst.UnaryExpression); !ok {
		return skipped
	}

	switch {
	case p.at(token.Inc), p.at(token.Dec):
		m := p.open()
		p.advance()
		unaryExpression(p)
		return p.close(m, cst.UnaryExpression)
	case p.atAny(unaryOperators):
		m := p.open()
		p.advance()
		castExpression(p)
		return p.close(m, cst.UnaryExpression)
	case p.at(token.KwSizeof):
		m := p.open()
		p.advance()
		if p.at(token.LParen) && p.atTypeName(1) {
			p.advance()
			typeName(p)
			p.expect(token.RParen, "to close `sizeof`")
		} else {
			unaryExpression(p)
		}
		return p.close(m, cst.UnaryExpression)
	case p.at(token.KwAlignof):
		m := p.open()
		p.advance()
		p.expect(token.LParen, "after `_Alignof`")
		typeName(p)
		p.expect(token.RParen, "to close `_Alignof`")
		return p.close(m, cst.UnaryExpression)
	default:
		return postfixExpression(p)
	}
}

// postfixExpression parses a primary expression followed by subscripts,
// calls, member accesses, and postfix increments.
func postfixExpression(p *parser) markClosed {
	lhs := primaryExpression(p)
	for {
		switch {
		case p.at(token.LBracket):
			m := p.openBefore(lhs)
			p.advance()
			expression(p)
			p.expect(token.RBracket, "to close subscript")
			lhs = p.close(m, cst.PostfixExpression)
		case p.at(token.LParen):
			m := p.openBefore(lhs)
			p.advance()
			if !p.at(token.RParen) {
				argumentExpressionList(p)
			}
			p.expect(token.RParen, "to close argument list")
			lhs = p.close(m, cst.PostfixExpression)
		case p.at(token.Dot), p.at(token.Arrow):
			m := p.openBefore(lhs)
			p.advance()
			p.expect(token.Identifier, "after member access")
			lhs = p.close(m, cst.PostfixExpression)
		case p.at(token.Inc), p.at(token.Dec):
			m := p.openBefore(lhs)
			p.advance()
			lhs = p.close(m, cst.PostfixExpression)
		default:
			return lhs
		}
	}
}

func argumentExpressionList(p *parser) {
	m := p.open()
	assignmentExpression(p)
	for p.eat(token.Comma) {
		assignmentExpression(p)
	}
	p.close(m, cst.ArgumentExpressionList)
}

// primaryExpression parses an identifier, constant, string literal,
// parenthesized expression, or generic selection.
//
// A missing operand in front of a token that ends an expression is recorded
// as an empty error tree; anything else is consumed into one.
func primaryExpression(p *parser) markClosed {
	if !p.atAny(primaryFirst) {
		err := errExpectedExpression{at: p.span(p.current().Span), got: p.current()}
		if p.atAny(operandFollow) {
			return p.missing(err)
		}
		return p.advanceWithError(err)
	}

	m := p.open()
	switch {
	case p.at(token.Identifier), p.at(token.KwFuncName):
		p.advance()
	case p.atAny(constants):
		c := p.open()
		if p.at(token.CharConstant) {
			p.checkTerminated('\'')
		}
		p.advance()
		p.close(c, cst.Constant)
	case p.at(token.String):
		stringLiteral(p)
	case p.at(token.LParen):
		p.advance()
		expression(p)
		p.expect(token.RParen, "to close parenthesized expression")
	default:
		genericSelection(p)
	}
	return p.close(m, cst.PrimaryExpression)
}

// stringLiteral parses one or more adjacent string literals, which are
// concatenated.
func stringLiteral(p *parser) {
	m := p.open()
	for p.at(token.String) {
		p.checkTerminated('"')
		p.advance()
	}
	p.close(m, cst.String)
}

// checkTerminated reports the current literal token if it is missing its
// closing quote.
func (p *parser) checkTerminated(quote byte) {
	tok := p.current()
	if !terminated(tok.Lexeme, quote) {
		p.report.Error(errUnterminated{at: p.span(tok.Span), kind: tok.Kind})
	}
}

// genericSelection parses
//
//	"_Generic" "(" AssignmentExpression "," GenericAssocList ")" .
func genericSelection(p *parser) {
	m := p.open()
	p.advance()
	p.expect(token.LParen, "after `_Generic`")
	assignmentExpression(p)
	p.expect(token.Comma, "after controlling expression")
	list := p.open()
	genericAssociation(p)
	for p.eat(token.Comma) {
		genericAssociation(p)
	}
	p.close(list, cst.GenericAssocList)
	p.expect(token.RParen, "to close `_Generic`")
	p.close(m, cst.GenericSelection)
}

func genericAssociation(p *parser) {
	m := p.open()
	if !p.eat(token.KwDefault) {
		typeName(p)
	}
	p.expect(token.Colon, "in generic association")
	assignmentExpression(p)
	p.close(m, cst.GenericAssociation)
}
