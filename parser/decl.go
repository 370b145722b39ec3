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

// translationUnit parses a whole file.
//
//	TranslationUnit = { ExternDecl } .
func translationUnit(p *parser) {
	m := p.open()
	if p.eof() {
		p.report.Warn(errEmptyUnit{path: p.file.Path()})
	}
	for !p.eof() {
		before := p.pos
		if p.atExternDeclStart() {
			externDecl(p)
		} else {
			p.advanceWithError(errUnexpected{
				at:    p.span(p.current().Span),
				got:   p.current(),
				where: "at top level",
			})
		}
		p.guard(before, "at top level")
	}
	p.close(m, cst.TranslationUnit)
}

func (p *parser) atExternDeclStart() bool {
	return p.at(token.Identifier) || p.at(token.KwStaticAssert) ||
		declarationSpecifierKeywords.Has(p.nth(0))
}

// externDecl parses a declaration or function definition at file scope.
func externDecl(p *parser) {
	m := p.open()
	switch {
	case p.at(token.KwStaticAssert):
		staticAssertDeclaration(p)
	case p.atFunctionDefinition():
		functionDefinition(p)
	default:
		declaration(p)
	}
	p.close(m, cst.ExternDecl)
}

// functionDefinition parses a function definition. Old-style parameter
// declarations between the declarator and the body are collected into a
// DeclarationList.
func functionDefinition(p *parser) {
	m := p.open()
	if p.atDeclarationSpecifiers() {
		declarationSpecifiers(p)
	}
	declarator(p)
	if !p.at(token.LBrace) && p.atDeclarationStart() {
		list := p.open()
		for !p.at(token.LBrace) && p.atDeclarationStart() {
			before := p.pos
			declaration(p)
			p.guard(before, "in parameter declarations")
		}
		p.close(list, cst.DeclarationList)
	}
	compoundStatement(p)
	p.close(m, cst.FunctionDef)
}

// declaration parses a declaration, including its trailing semicolon.
func declaration(p *parser) {
	m := p.open()
	declarationSpecifiers(p)
	if !p.at(token.Semicolon) {
		initDeclaratorList(p)
	}
	p.expect(token.Semicolon, "after declaration")
	p.close(m, cst.Declaration)
}

// staticAssertDeclaration parses
//
//	"_Static_assert" "(" ConstantExpression [ "," String ] ")" ";" .
func staticAssertDeclaration(p *parser) {
	m := p.open()
	p.advance()
	p.expect(token.LParen, "after `_Static_assert`")
	constantExpression(p)
	if p.eat(token.Comma) {
		if p.at(token.String) {
			stringLiteral(p)
		} else {
			p.expect(token.String, "as assertion message")
		}
	}
	p.expect(token.RParen, "to close `_Static_assert`")
	p.expect(token.Semicolon, "after `_Static_assert`")
	p.close(m, cst.StaticAssertDeclaration)
}

func (p *parser) atDeclarationSpecifiers() bool {
	return declarationSpecifierKeywords.Has(p.nth(0)) || p.atTypedefName(0, typedefFollowDecl)
}

// declarationSpecifiers parses storage classes, type specifiers, qualifiers,
// and function and alignment specifiers, in any order.
func declarationSpecifiers(p *parser) {
	m := p.open()
	specifiers(p, true, typedefFollowDecl)
	p.close(m, cst.DeclarationSpecifiers)
}

// specifierQualifierList parses the specifiers allowed in struct members and
// type names.
func specifierQualifierList(p *parser, follow token.Set) {
	m := p.open()
	specifiers(p, false, follow)
	p.close(m, cst.SpecifierQualifierList)
}

// specifiers parses the body of a specifier list. A typedef name is only
// accepted before any other type specifier has been seen.
func specifiers(p *parser, decl bool, follow token.Set) {
	seenType := false
	for {
		switch kind := p.nth(0); {
		case decl && storageClassSpecifiers.Has(kind):
			wrapToken(p, cst.StorageClassSpecifier)
		case decl && functionSpecifiers.Has(kind):
			wrapToken(p, cst.FunctionSpecifier)
		case kind == token.KwAtomic && p.nth(1) == token.LParen:
			t := p.open()
			atomicTypeSpecifier(p)
			p.close(t, cst.TypeSpecifier)
			seenType = true
		case typeQualifiers.Has(kind):
			wrapToken(p, cst.TypeQualifier)
		case kind == token.KwAlignas:
			alignmentSpecifier(p)
		case kind == token.KwStruct, kind == token.KwUnion:
			t := p.open()
			structOrUnionSpecifier(p)
			p.close(t, cst.TypeSpecifier)
			seenType = true
		case kind == token.KwEnum:
			t := p.open()
			enumSpecifier(p)
			p.close(t, cst.TypeSpecifier)
			seenType = true
		case basicTypeSpecifiers.Has(kind):
			wrapToken(p, cst.TypeSpecifier)
			seenType = true
		case !seenType && p.atTypedefName(0, follow):
			wrapToken(p, cst.TypeSpecifier)
			seenType = true
		default:
			return
		}
	}
}

// wrapToken consumes the current token into a node of the given kind.
func wrapToken(p *parser, kind cst.Kind) {
	m := p.open()
	p.advance()
	p.close(m, kind)
}

// atomicTypeSpecifier parses "_Atomic" "(" TypeName ")".
func atomicTypeSpecifier(p *parser) {
	m := p.open()
	p.advance()
	p.expect(token.LParen, "after `_Atomic`")
	typeName(p)
	p.expect(token.RParen, "to close `_Atomic`")
	p.close(m, cst.AtomicTypeSpecifier)
}

// alignmentSpecifier parses "_Alignas" "(" ( TypeName | ConstantExpression ) ")".
func alignmentSpecifier(p *parser) {
	m := p.open()
	p.advance()
	p.expect(token.LParen, "after `_Alignas`")
	if p.atTypeName(0) {
		typeName(p)
	} else {
		constantExpression(p)
	}
	p.expect(token.RParen, "to close `_Alignas`")
	p.close(m, cst.AlignmentSpecifier)
}

// structOrUnionSpecifier parses a struct or union type, with or without a
// body.
func structOrUnionSpecifier(p *parser) {
	defer p.leave()
	if _, ok := p.enter(cst.StructOrUnionSpecifier); !ok {
		return
	}

	m := p.open()
	wrapToken(p, cst.StructOrUnion)
	named := p.eat(token.Identifier)
	if p.eat(token.LBrace) {
		structDeclarationList(p)
		p.expect(token.RBrace, "to close struct body")
	} else if !named {
		p.missing(errUnexpected{
			at:    p.span(p.current().Span),
			got:   p.current(),
			want:  token.NewSet(token.Identifier, token.LBrace),
			where: "after `struct`",
		})
	}
	p.close(m, cst.StructOrUnionSpecifier)
}

func structDeclarationList(p *parser) {
	m := p.open()
	for !p.at(token.RBrace) && !p.eof() {
		before := p.pos
		switch {
		case p.at(token.KwStaticAssert):
			staticAssertDeclaration(p)
		case specifierQualifierKeywords.Has(p.nth(0)) || p.at(token.Identifier):
			structDeclaration(p)
		default:
			p.advanceWithError(errUnexpected{
				at:    p.span(p.current().Span),
				got:   p.current(),
				where: "in struct body",
			})
		}
		p.guard(before, "in struct body")
	}
	p.close(m, cst.StructDeclarationList)
}

// structDeclaration parses one member declaration, including its semicolon.
func structDeclaration(p *parser) {
	m := p.open()
	specifierQualifierList(p, typedefFollowDecl)
	if !p.at(token.Semicolon) {
		list := p.open()
		structDeclarator(p)
		for p.eat(token.Comma) {
			structDeclarator(p)
		}
		p.close(list, cst.StructDeclaratorList)
	}
	p.expect(token.Semicolon, "after struct member")
	p.close(m, cst.StructDeclaration)
}

// structDeclarator parses a member declarator with an optional bit width.
func structDeclarator(p *parser) {
	m := p.open()
	if !p.at(token.Colon) {
		declarator(p)
	}
	if p.eat(token.Colon) {
		constantExpression(p)
	}
	p.close(m, cst.StructDeclarator)
}

// enumSpecifier parses an enum type, with or without a body.
func enumSpecifier(p *parser) {
	m := p.open()
	p.advance()
	named := p.eat(token.Identifier)
	if p.eat(token.LBrace) {
		list := p.open()
		enumerator(p)
		for p.at(token.Comma) && p.nth(1) != token.RBrace {
			p.advance()
			enumerator(p)
		}
		p.close(list, cst.EnumeratorList)
		p.eat(token.Comma)
		p.expect(token.RBrace, "to close enum body")
	} else if !named {
		p.missing(errUnexpected{
			at:    p.span(p.current().Span),
			got:   p.current(),
			want:  token.NewSet(token.Identifier, token.LBrace),
			where: "after `enum`",
		})
	}
	p.close(m, cst.EnumSpecifier)
}

func enumerator(p *parser) {
	m := p.open()
	p.expect(token.Identifier, "in enumerator")
	if p.eat(token.Eq) {
		constantExpression(p)
	}
	p.close(m, cst.Enumerator)
}

func initDeclaratorList(p *parser) {
	m := p.open()
	initDeclarator(p)
	for p.eat(token.Comma) {
		initDeclarator(p)
	}
	p.close(m, cst.InitDeclaratorList)
}

func initDeclarator(p *parser) {
	m := p.open()
	declarator(p)
	if p.eat(token.Eq) {
		initializer(p)
	}
	p.close(m, cst.InitDeclarator)
}

// declarator parses
//
//	Declarator = [ Pointer ] DirectDeclarator .
func declarator(p *parser) {
	defer p.leave()
	if _, ok := p.enter(cst.Declarator); !ok {
		return
	}

	m := p.open()
	if p.at(token.Star) {
		pointer(p)
	}
	directDeclarator(p)
	p.close(m, cst.Declarator)
}

// pointer parses one `*` with its qualifiers, nesting the next one inside.
func pointer(p *parser) {
	defer p.leave()
	if skipped, ok := p.enter(cst.Pointer); !ok {
		p.skipWhile(skipped, func() bool { return p.at(token.Star) || p.atAny(typeQualifiers) })
		return
	}

	m := p.open()
	p.advance()
	if p.atAny(typeQualifiers) {
		list := p.open()
		for p.atAny(typeQualifiers) {
			p.advance()
		}
		p.close(list, cst.TypeQualifierList)
	}
	if p.at(token.Star) {
		pointer(p)
	}
	p.close(m, cst.Pointer)
}

// directDeclarator parses the declared name, or a parenthesized declarator,
// followed by any number of array and function suffixes.
func directDeclarator(p *parser) {
	m := p.open()
	switch {
	case p.eat(token.Identifier):
	case p.at(token.LParen):
		p.advance()
		declarator(p)
		p.expect(token.RParen, "to close declarator")
	case p.atAny(declaratorFollow):
		p.missing(errExpected{
			at:      p.file.Span(p.prevEnd(), p.prevEnd()),
			found:   p.current(),
			foundAt: p.span(p.current().Span),
			want:    token.NewSet(token.Identifier, token.LParen),
			where:   "in declarator",
		})
	default:
		p.advanceWithError(errUnexpected{
			at:    p.span(p.current().Span),
			got:   p.current(),
			want:  token.NewSet(token.Identifier, token.LParen),
			where: "in declarator",
		})
	}
	declaratorSuffixes(p)
	p.close(m, cst.DirectDeclarator)
}

// declaratorSuffixes parses trailing array and parameter lists.
func declaratorSuffixes(p *parser) {
	for {
		switch {
		case p.at(token.LBracket):
			arraySuffix(p)
		case p.at(token.LParen):
			p.advance()
			switch {
			case p.at(token.RParen):
			case p.atParameterTypeList():
				paramTypeList(p)
			case p.at(token.Identifier):
				identifierList(p)
			default:
				paramTypeList(p)
			}
			p.expect(token.RParen, "to close parameter list")
		default:
			return
		}
	}
}

// arraySuffix parses "[" [ "static" ] { TypeQualifier } [ "*" | AssignmentExpression ] "]".
func arraySuffix(p *parser) {
	p.advance()
	p.eat(token.KwStatic)
	for p.atAny(typeQualifiers) {
		p.advance()
	}
	p.eat(token.KwStatic)
	switch {
	case p.at(token.Star) && p.nth(1) == token.RBracket:
		p.advance()
	case !p.at(token.RBracket):
		assignmentExpression(p)
	}
	p.expect(token.RBracket, "to close array bound")
}

func (p *parser) atParameterTypeList() bool {
	return declarationSpecifierKeywords.Has(p.nth(0)) || p.atTypedefName(0, typedefFollowDecl)
}

// paramTypeList parses ParamList [ "," "..." ].
func paramTypeList(p *parser) {
	m := p.open()
	list := p.open()
	parameterDeclaration(p)
	for p.at(token.Comma) && p.nth(1) != token.Ellipsis {
		p.advance()
		parameterDeclaration(p)
	}
	p.close(list, cst.ParamList)
	if p.at(token.Comma) {
		p.advance()
		p.advance()
	}
	p.close(m, cst.ParamTypeList)
}

// parameterDeclaration parses one parameter, whose declarator may be
// concrete, abstract, or absent.
func parameterDeclaration(p *parser) {
	m := p.open()
	switch {
	case p.atParameterTypeList():
		declarationSpecifiers(p)
	case p.atAny(declaratorFirst):
		p.missing(errExpectedType{at: p.span(p.current().Span), got: p.current()})
	default:
		p.advanceWithError(errUnexpected{
			at:    p.span(p.current().Span),
			got:   p.current(),
			where: "in parameter list",
		})
	}
	switch {
	case !p.atAny(declaratorFirst) && !p.at(token.LBracket):
	case p.atAbstractDeclarator():
		abstractDeclarator(p)
	default:
		declarator(p)
	}
	p.close(m, cst.ParameterDeclaration)
}

// atAbstractDeclarator reports whether the declarator at the cursor names
// nothing, as in `int (*)(int)` or `char *[]`.
func (p *parser) atAbstractDeclarator() bool {
	for k := 0; k < lookaheadLimit; k++ {
		switch p.peek(k) {
		case token.Star, token.LParen, token.KwConst, token.KwRestrict,
			token.KwVolatile, token.KwAtomic:
		case token.Identifier:
			return false
		default:
			return true
		}
	}
	return true
}

func identifierList(p *parser) {
	m := p.open()
	p.expect(token.Identifier, "in identifier list")
	for p.eat(token.Comma) {
		p.expect(token.Identifier, "in identifier list")
	}
	p.close(m, cst.IdentifierList)
}

// typeName parses a specifier-qualifier list and optional abstract
// declarator, as in casts and sizeof.
func typeName(p *parser) {
	m := p.open()
	specifierQualifierList(p, typedefFollowType)
	if p.atAny(abstractDeclaratorFirst) {
		abstractDeclarator(p)
	}
	p.close(m, cst.TypeName)
}

var abstractDeclaratorFirst = token.NewSet(token.Star, token.LParen, token.LBracket)

// abstractDeclarator parses [ Pointer ] [ DirectAbstractDeclarator ].
func abstractDeclarator(p *parser) {
	defer p.leave()
	if _, ok := p.enter(cst.AbstractDeclarator); !ok {
		return
	}

	m := p.open()
	if p.at(token.Star) {
		pointer(p)
	}
	if p.at(token.LParen) || p.at(token.LBracket) {
		directAbstractDeclarator(p)
	}
	p.close(m, cst.AbstractDeclarator)
}

func directAbstractDeclarator(p *parser) {
	m := p.open()
	if p.at(token.LParen) && abstractDeclaratorFirst.Has(p.nth(1)) {
		p.advance()
		abstractDeclarator(p)
		p.expect(token.RParen, "to close declarator")
	}
	declaratorSuffixes(p)
	p.close(m, cst.DirectAbstractDeclarator)
}

// initializer parses an expression or a braced initializer list.
func initializer(p *parser) {
	defer p.leave()
	if _, ok := p.enter(cst.Initializer); !ok {
		return
	}

	m := p.open()
	if p.eat(token.LBrace) {
		if !p.at(token.RBrace) {
			initializerList(p)
		}
		p.eat(token.Comma)
		p.expect(token.RBrace, "to close initializer")
	} else {
		assignmentExpression(p)
	}
	p.close(m, cst.Initializer)
}

func initializerList(p *parser) {
	m := p.open()
	for {
		before := p.pos
		if p.at(token.LBracket) || p.at(token.Dot) {
			designation(p)
		}
		initializer(p)
		if !p.at(token.Comma) || p.nth(1) == token.RBrace || p.pos == before {
			break
		}
		p.advance()
	}
	p.close(m, cst.InitializerList)
}

// designation parses a designator list followed by `=`.
func designation(p *parser) {
	m := p.open()
	list := p.open()
	for p.at(token.LBracket) || p.at(token.Dot) {
		d := p.open()
		if p.eat(token.LBracket) {
			constantExpression(p)
			p.expect(token.RBracket, "to close designator")
		} else {
			p.advance()
			p.expect(token.Identifier, "after `.` in designator")
		}
		p.close(d, cst.Designator)
	}
	p.close(list, cst.DesignatorList)
	p.expect(token.Eq, "after designator")
	p.close(m, cst.Designation)
}
