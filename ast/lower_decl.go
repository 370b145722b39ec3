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
	"math"
	"strings"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/token"
)

// function lowers a FunctionDef. It returns nil if the declarator does not
// declare a function.
func (l *lowerer) function(def *cst.Tree) *Function {
	specs := def.FindChild(cst.DeclarationSpecifiers)
	base, explicit := l.baseType(specs)
	info := l.declarator(base, l.child(def, cst.Declarator))
	if !explicit {
		l.report.Warn(errImplicitInt{at: l.span(info.nameSpan)})
	}

	typ, ok := info.typ.(*Func)
	if !ok {
		l.report.Error(errNotAFunction{name: info.name, at: l.span(info.nameSpan), typ: info.typ})
		return nil
	}

	fn := &Function{
		Name:       info.name,
		ReturnType: typ.Return,
		Variadic:   typ.Variadic,
		Specifiers: l.specifierKinds(specs),
		Span:       def.Span,
	}
	switch {
	case info.params == nil:
		for _, p := range typ.Params {
			fn.Params = append(fn.Params, Param{Type: p})
		}
	case info.params.Kind == cst.IdentifierList:
		fn.Params = l.oldStyleParams(info.params, def.FindChild(cst.DeclarationList))
	default:
		fn.Params, _ = l.params(info.params)
	}

	body := l.child(def, cst.CompoundStatement)
	fn.Body = l.compound(body)
	if !IsVoid(fn.ReturnType) && len(fn.Body.Items) == 0 {
		var closing token.Span
		if brace := body.FindToken(token.RBrace); brace != nil {
			closing = brace.Span
		}
		l.report.Warn(errMissingReturn{
			name:   fn.Name,
			ret:    fn.ReturnType,
			at:     l.span(closing),
			nameAt: l.span(info.nameSpan),
		})
	}
	return fn
}

// oldStyleParams lowers a K&R identifier list, taking each parameter's type
// from the declarations that follow the declarator. Undeclared parameters
// are int.
func (l *lowerer) oldStyleParams(names, decls *cst.Tree) []Param {
	types := make(map[string]DataType)
	if decls != nil {
		for decl := range decls.TreesOf(cst.Declaration) {
			for _, d := range l.declaration(decl).Declarators {
				types[d.Name] = d.Type
			}
		}
	}

	var params []Param
	for _, c := range names.Children {
		if c.Token == nil || c.Token.Kind != token.Identifier {
			continue
		}
		p := Param{Name: c.Token.Lexeme, Type: Int}
		if t, ok := types[p.Name]; ok {
			p.Type = t
		}
		params = append(params, p)
	}
	return params
}

func (l *lowerer) declaration(decl *cst.Tree) *Declaration {
	specs := l.child(decl, cst.DeclarationSpecifiers)
	base, explicit := l.baseType(specs)
	if !explicit {
		l.report.Warn(errImplicitInt{at: l.span(decl.Span)})
	}

	out := &Declaration{
		Specifiers: l.specifierKinds(specs),
		Base:       base,
		Span:       decl.Span,
	}
	list := decl.FindChild(cst.InitDeclaratorList)
	if list == nil {
		return out
	}
	for init := range list.TreesOf(cst.InitDeclarator) {
		info := l.declarator(base, l.child(init, cst.Declarator))
		d := &Declarator{Name: info.name, Type: info.typ}
		if value := init.FindChild(cst.Initializer); value != nil {
			d.Init = l.initializer(value)
		}
		out.Declarators = append(out.Declarators, d)
	}
	return out
}

func (l *lowerer) staticAssert(decl *cst.Tree) *StaticAssert {
	out := &StaticAssert{
		Cond: l.expr(l.child(decl, cst.ConstantExpression)),
		Span: decl.Span,
	}
	if msg := decl.FindChild(cst.String); msg != nil {
		out.Message = joinTokens(msg)
	}
	return out
}

// specifierKinds returns the storage classes and function specifiers of a
// specifier list.
func (l *lowerer) specifierKinds(specs *cst.Tree) []token.Kind {
	if specs == nil {
		return nil
	}
	var out []token.Kind
	for c := range specs.Trees() {
		if c.Kind != cst.StorageClassSpecifier && c.Kind != cst.FunctionSpecifier {
			continue
		}
		out = append(out, l.leadingToken(c).Kind)
	}
	return out
}

// baseType computes the type named by the type specifiers of a
// DeclarationSpecifiers or SpecifierQualifierList. The second result is
// false if there are no type specifiers, in which case the type is int.
func (l *lowerer) baseType(specs *cst.Tree) (DataType, bool) {
	if specs == nil {
		return Int, false
	}

	var (
		result        DataType
		seen, integer bool
	)
	for spec := range specs.TreesOf(cst.TypeSpecifier) {
		seen = true
		if len(spec.Children) == 0 {
			l.fail(spec, "empty type specifier")
		}
		if c := spec.Children[0]; c.Tree != nil {
			result = l.taggedType(c.Tree)
			continue
		}
		switch tok := spec.Children[0].Token; tok.Kind {
		case token.KwVoid:
			result = Void
		case token.KwChar:
			result = Char
		case token.KwFloat:
			result = Float
		case token.KwDouble:
			result = Double
		case token.KwInt, token.KwShort, token.KwLong, token.KwSigned, token.KwUnsigned:
			integer = true
		case token.Identifier:
			result = &Named{Name: tok.Lexeme}
		}
	}

	switch {
	case result != nil:
		return result, true
	case integer:
		return Int, true
	case seen:
		return Unknown, true
	default:
		return Int, false
	}
}

// taggedType lowers a struct, union, enum or _Atomic type specifier.
func (l *lowerer) taggedType(t *cst.Tree) DataType {
	var name string
	if tag := t.FindToken(token.Identifier); tag != nil {
		name = tag.Lexeme
	}
	switch t.Kind {
	case cst.StructOrUnionSpecifier:
		kw := l.leadingToken(l.child(t, cst.StructOrUnion))
		return &Struct{Name: name, Union: kw.Kind == token.KwUnion}
	case cst.EnumSpecifier:
		return &Enum{Name: name}
	case cst.AtomicTypeSpecifier:
		return l.typeName(l.child(t, cst.TypeName))
	default:
		l.fail(t, "unexpected type specifier")
		return nil
	}
}

// typeName lowers the type of a cast, sizeof or _Generic association.
func (l *lowerer) typeName(t *cst.Tree) DataType {
	base, _ := l.baseType(l.child(t, cst.SpecifierQualifierList))
	if d := t.FindChild(cst.AbstractDeclarator); d != nil {
		return l.declarator(base, d).typ
	}
	return base
}

// declInfo is what a declarator contributes to a declaration.
type declInfo struct {
	name     string
	nameSpan token.Span
	typ      DataType

	// The parameter list of the function suffix directly applied to the
	// declared name, if any.
	params *cst.Tree
}

// declarator applies a Declarator or AbstractDeclarator to base.
//
// Pointers bind looser than suffixes, so `*a[3]` is an array of pointers;
// a parenthesized inner declarator applies last, so `(*a)[3]` is a pointer
// to an array.
func (l *lowerer) declarator(base DataType, d *cst.Tree) declInfo {
	typ := base
	var direct *cst.Tree
	for c := range d.Trees() {
		switch c.Kind {
		case cst.Pointer:
			for p := c; p != nil; p = p.FindChild(cst.Pointer) {
				typ = &Pointer{Elem: typ}
			}
		case cst.DirectDeclarator, cst.DirectAbstractDeclarator:
			direct = c
		default:
			l.fail(c, "unexpected child of %v", d.Kind)
		}
	}
	if direct == nil {
		if d.Kind == cst.Declarator {
			l.fail(d, "missing direct declarator")
		}
		return declInfo{typ: typ, nameSpan: token.Span{Start: d.Span.Start, End: d.Span.Start}}
	}
	return l.directDeclarator(typ, direct)
}

type declSuffix struct {
	kind token.Kind // LBracket or LParen.
	tree *cst.Tree  // The bound or parameter list; may be nil.
}

func (l *lowerer) directDeclarator(typ DataType, d *cst.Tree) declInfo {
	info := declInfo{nameSpan: token.Span{Start: d.Span.Start, End: d.Span.Start}}
	var (
		inner    *cst.Tree
		suffixes []declSuffix
	)
	for i, c := range d.Children {
		switch {
		case c.Tree != nil && (c.Tree.Kind == cst.Declarator || c.Tree.Kind == cst.AbstractDeclarator):
			inner = c.Tree
		case c.Tree != nil:
			if len(suffixes) == 0 {
				l.fail(c.Tree, "unexpected %v in declarator", c.Tree.Kind)
			}
			suffixes[len(suffixes)-1].tree = c.Tree
		case c.Token.Kind == token.Identifier && inner == nil && len(suffixes) == 0:
			info.name = c.Token.Lexeme
			info.nameSpan = c.Token.Span
		case c.Token.Kind == token.LParen:
			if i+1 < len(d.Children) {
				if next := d.Children[i+1].Tree; next != nil &&
					(next.Kind == cst.Declarator || next.Kind == cst.AbstractDeclarator) {
					continue
				}
			}
			suffixes = append(suffixes, declSuffix{kind: token.LParen})
		case c.Token.Kind == token.LBracket:
			suffixes = append(suffixes, declSuffix{kind: token.LBracket})
		}
	}

	for i := len(suffixes) - 1; i >= 0; i-- {
		s := suffixes[i]
		if s.kind == token.LBracket {
			typ = &Array{Elem: typ, Len: l.arrayLen(s.tree)}
		} else {
			typ = l.funcType(typ, s.tree)
		}
	}

	if inner != nil {
		return l.declarator(typ, inner)
	}
	info.typ = typ
	if len(suffixes) > 0 && suffixes[0].kind == token.LParen && suffixes[0].tree != nil {
		info.params = suffixes[0].tree
	}
	return info
}

// arrayLen returns the length of an array whose bound is an integer literal.
func (l *lowerer) arrayLen(bound *cst.Tree) *int64 {
	if bound == nil {
		return nil
	}
	lit, ok := l.expr(bound).(*Literal)
	if !ok || lit.Kind != Integer {
		return nil
	}
	v, err := lit.Int()
	if err != nil || v > math.MaxInt64 {
		return nil
	}
	n := int64(v)
	return &n
}

// funcType builds the type of a function returning ret whose parameters are
// list, a ParamTypeList or IdentifierList.
func (l *lowerer) funcType(ret DataType, list *cst.Tree) *Func {
	fn := &Func{Return: ret}
	switch {
	case list == nil:
	case list.Kind == cst.IdentifierList:
		for _, c := range list.Children {
			if c.Token != nil && c.Token.Kind == token.Identifier {
				fn.Params = append(fn.Params, Int)
			}
		}
	case list.Kind == cst.ParamTypeList:
		params, variadic := l.params(list)
		for _, p := range params {
			fn.Params = append(fn.Params, p.Type)
		}
		fn.Variadic = variadic
	default:
		l.fail(list, "unexpected parameter list")
	}
	return fn
}

// params lowers a ParamTypeList. A lone unnamed void parameter means the
// function takes no parameters.
func (l *lowerer) params(list *cst.Tree) ([]Param, bool) {
	var params []Param
	for decl := range l.child(list, cst.ParamList).TreesOf(cst.ParameterDeclaration) {
		base, _ := l.baseType(decl.FindChild(cst.DeclarationSpecifiers))
		p := Param{Type: base}
		switch {
		case decl.FindChild(cst.Declarator) != nil:
			info := l.declarator(base, decl.FindChild(cst.Declarator))
			p.Name, p.Type = info.name, info.typ
		case decl.FindChild(cst.AbstractDeclarator) != nil:
			p.Type = l.declarator(base, decl.FindChild(cst.AbstractDeclarator)).typ
		}
		params = append(params, p)
	}
	if len(params) == 1 && params[0].Name == "" && IsVoid(params[0].Type) {
		params = nil
	}
	return params, list.FindToken(token.Ellipsis) != nil
}

// joinTokens joins the lexemes of t's tokens with single spaces.
func joinTokens(t *cst.Tree) string {
	var parts []string
	for tok := range t.Tokens() {
		parts = append(parts, tok.Lexeme)
	}
	return strings.Join(parts, " ")
}
