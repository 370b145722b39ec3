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
	"strings"

	"github.com/pulanski/rcc/token"
)

// Token sets used for lookahead decisions and recovery.
var (
	storageClassSpecifiers = token.NewSet(
		token.KwTypedef, token.KwExtern, token.KwStatic,
		token.KwThreadLocal, token.KwAuto, token.KwRegister,
	)
	basicTypeSpecifiers = token.NewSet(
		token.KwVoid, token.KwChar, token.KwShort, token.KwInt, token.KwLong,
		token.KwFloat, token.KwDouble, token.KwSigned, token.KwUnsigned,
		token.KwBool, token.KwComplex, token.KwImaginary,
	)
	typeQualifiers     = token.NewSet(token.KwConst, token.KwRestrict, token.KwVolatile, token.KwAtomic)
	functionSpecifiers = token.NewSet(token.KwInline, token.KwNoreturn)
	tagKeywords        = token.NewSet(token.KwStruct, token.KwUnion, token.KwEnum)

	// specifierQualifierKeywords start a specifier-qualifier list, and with it
	// a type name.
	specifierQualifierKeywords = basicTypeSpecifiers.Union(typeQualifiers, tagKeywords).With(token.KwAlignas)

	// declarationSpecifierKeywords start declaration specifiers.
	declarationSpecifierKeywords = specifierQualifierKeywords.Union(storageClassSpecifiers, functionSpecifiers)

	declaratorFirst = token.NewSet(token.Identifier, token.LParen, token.Star)

	assignmentOperators = token.NewSet(
		token.Eq, token.StarEq, token.SlashEq, token.PercentEq, token.PlusEq,
		token.MinusEq, token.LShiftEq, token.RShiftEq, token.AmpEq,
		token.CaretEq, token.PipeEq,
	)
	unaryOperators = token.NewSet(
		token.Amp, token.Star, token.Plus, token.Minus, token.Tilde, token.Bang,
	)
	constants = token.NewSet(token.IntegerConstant, token.FloatingConstant, token.CharConstant)

	primaryFirst = constants.With(
		token.Identifier, token.String, token.LParen, token.KwGeneric, token.KwFuncName,
	)
	expressionFirst = primaryFirst.Union(unaryOperators).With(
		token.Inc, token.Dec, token.KwSizeof, token.KwAlignof,
	)
	statementFirst = expressionFirst.With(
		token.Semicolon, token.LBrace, token.KwIf, token.KwSwitch, token.KwWhile,
		token.KwDo, token.KwFor, token.KwGoto, token.KwContinue, token.KwBreak,
		token.KwReturn, token.KwCase, token.KwDefault,
	)

	// operandFollow are tokens that end an expression. A missing operand in
	// front of one of them is reported without consuming it.
	operandFollow = token.NewSet(
		token.Semicolon, token.RParen, token.RBracket, token.RBrace,
		token.Comma, token.Colon, token.EOF,
	)

	// declaratorFollow are tokens that may legitimately follow a declarator.
	declaratorFollow = token.NewSet(
		token.Semicolon, token.Comma, token.Eq, token.RParen, token.LBrace,
		token.Colon, token.EOF,
	)
)

// typedefFollow are tokens after which an identifier in specifier position
// is read as a typedef name.
var (
	typedefFollowDecl = token.NewSet(token.Identifier, token.Star)
	typedefFollowType = token.NewSet(token.Identifier, token.Star, token.RParen, token.LBracket)
)

// lookaheadLimit bounds the scan that tells function definitions from
// declarations.
const lookaheadLimit = 128

// atTypedefName reports whether the identifier k tokens ahead is a typedef
// name. Without a symbol table this is a guess: an identifier followed by
// something that can only continue a declaration.
func (p *parser) atTypedefName(k int, follow token.Set) bool {
	return p.peek(k) == token.Identifier && follow.Has(p.peek(k+1))
}

// atDeclarationStart reports whether a block item starting at the cursor is a
// declaration rather than a statement.
func (p *parser) atDeclarationStart() bool {
	switch p.peek(0) {
	case token.KwStaticAssert:
		return true
	case token.Identifier:
		switch p.peek(1) {
		case token.Identifier:
			return true
		case token.Star:
			// T *p; and T *p = ...; read as declarations, a * b + c; as an
			// expression.
			k := 1
			for p.peek(k) == token.Star {
				k++
			}
			if p.peek(k) != token.Identifier {
				return false
			}
			switch p.peek(k + 1) {
			case token.Eq, token.Semicolon, token.Comma, token.LBracket:
				return true
			}
		}
		return false
	default:
		return declarationSpecifierKeywords.Has(p.peek(0))
	}
}

// atTypeName reports whether a type name starts k tokens ahead.
func (p *parser) atTypeName(k int) bool {
	return specifierQualifierKeywords.Has(p.nth(k)) || p.atTypedefName(k, typedefFollowType)
}

// atCast reports whether the cursor is at the parenthesized type of a cast.
func (p *parser) atCast() bool {
	if p.peek(0) != token.LParen {
		return false
	}
	if specifierQualifierKeywords.Has(p.peek(1)) {
		return true
	}
	if p.peek(1) != token.Identifier {
		return false
	}
	// (T *) x and (T) x, where T is a typedef name.
	k := 2
	for p.peek(k) == token.Star {
		k++
	}
	if p.peek(k) != token.RParen {
		return false
	}
	if k > 2 {
		return true
	}
	switch p.peek(k + 1) {
	case token.Identifier, token.IntegerConstant, token.FloatingConstant,
		token.CharConstant, token.String:
		return true
	}
	return false
}

// specifierLength returns how many tokens of declaration specifiers start at
// the cursor, or -1 if they contain a tagged type body. Bodies and
// parenthesized arguments are skipped without being parsed.
func (p *parser) specifierLength() int {
	var k int
	seenType := false
	for k < lookaheadLimit {
		switch kind := p.peek(k); {
		case tagKeywords.Has(kind):
			seenType = true
			k++
			if p.peek(k) == token.Identifier {
				k++
			}
			if p.peek(k) == token.LBrace {
				return -1
			}
		case kind == token.KwAtomic && p.peek(k+1) == token.LParen,
			kind == token.KwAlignas:
			if kind == token.KwAtomic {
				seenType = true
			}
			k = p.skipParens(k + 1)
		case declarationSpecifierKeywords.Has(kind):
			if basicTypeSpecifiers.Has(kind) {
				seenType = true
			}
			k++
		case !seenType && p.atTypedefName(k, typedefFollowDecl):
			seenType = true
			k++
		default:
			return k
		}
	}
	return k
}

// skipParens returns the index just past the parenthesized group starting k
// tokens ahead.
func (p *parser) skipParens(k int) int {
	if p.peek(k) != token.LParen {
		return k
	}
	var depth int
	for ; k < lookaheadLimit; k++ {
		switch p.peek(k) {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return k + 1
			}
		case token.EOF:
			return k
		}
	}
	return k
}

// atFunctionDefinition decides whether the external declaration at the
// cursor is a function definition.
//
// After the declaration specifiers, a depth-balanced scan over the declarator
// looks for the token that settles it: a top-level `{`, or the start of a
// K&R parameter declaration after `)`, means a definition; `;`, `=` and `,`
// mean a declaration.
func (p *parser) atFunctionDefinition() bool {
	k := p.specifierLength()
	if k < 0 || !declaratorFirst.Has(p.peek(k)) {
		return false
	}

	var depth int
	prev := token.Unknown
	for j := k; j < k+lookaheadLimit; j++ {
		kind := p.peek(j)
		switch kind {
		case token.LParen, token.LBracket:
			depth++
		case token.RParen, token.RBracket:
			depth--
			if depth < 0 {
				return false
			}
		case token.LBrace:
			if depth == 0 {
				return true
			}
		case token.Semicolon, token.EOF:
			return false
		case token.Eq, token.Comma:
			if depth == 0 {
				return false
			}
		default:
			if depth == 0 && prev == token.RParen &&
				(declarationSpecifierKeywords.Has(kind) || kind == token.Identifier) {
				return true
			}
		}
		prev = kind
	}
	return false
}

// terminated reports whether a string or character literal's lexeme ends
// with its closing quote.
func terminated(lexeme string, quote byte) bool {
	i := strings.IndexByte(lexeme, quote)
	if i < 0 {
		return false
	}
	for j := i + 1; j < len(lexeme); j++ {
		switch lexeme[j] {
		case '\\':
			j++
		case quote:
			return j == len(lexeme)-1
		}
	}
	return false
}
