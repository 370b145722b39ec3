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
	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/token"
)

// expr lowers any expression tree. Parentheses are dropped.
func (l *lowerer) expr(t *cst.Tree) Expr {
	switch kind := t.Kind; {
	case kind == cst.PrimaryExpression:
		return l.primary(t)
	case kind == cst.ConstantExpression:
		return l.expr(l.first(t))
	case kind == cst.Expression, kind.IsBinary():
		x, op, y := l.binary(t)
		return &Binary{Op: op, X: x, Y: y}
	case kind == cst.AssignmentExpression:
		x, op, y := l.binary(t)
		return &Assign{Op: op, X: x, Y: y}
	case kind == cst.ConditionalExpression:
		parts := l.trees(t, 3, 3)
		return &Cond{Cond: l.expr(parts[0]), Then: l.expr(parts[1]), Else: l.expr(parts[2])}
	case kind == cst.CastExpression:
		parts := l.trees(t, 2, 2)
		if parts[0].Kind != cst.TypeName {
			l.fail(t, "cast without a type")
		}
		return &Cast{Type: l.typeName(parts[0]), X: l.expr(parts[1])}
	case kind == cst.UnaryExpression:
		return l.unary(t)
	case kind == cst.PostfixExpression:
		return l.postfix(t)
	default:
		l.fail(t, "unexpected %v in expression", kind)
		return nil
	}
}

// binary splits an operator node into its operands and operator.
func (l *lowerer) binary(t *cst.Tree) (Expr, token.Kind, Expr) {
	c := t.Children
	if len(c) != 3 || c[0].Tree == nil || c[1].Token == nil || c[2].Tree == nil {
		l.fail(t, "not a binary operation")
	}
	return l.expr(c[0].Tree), c[1].Token.Kind, l.expr(c[2].Tree)
}

func (l *lowerer) primary(t *cst.Tree) Expr {
	if len(t.Children) == 0 {
		l.fail(t, "empty primary expression")
	}
	c := t.Children[0]
	if c.Tree != nil {
		switch c.Tree.Kind {
		case cst.Constant:
			return l.constant(c.Tree)
		case cst.String:
			return &Literal{Kind: String, Text: joinTokens(c.Tree)}
		case cst.GenericSelection:
			return l.generic(c.Tree)
		}
		l.fail(c.Tree, "unexpected primary expression")
	}

	switch c.Token.Kind {
	case token.Identifier, token.KwFuncName:
		return &Ident{Name: c.Token.Lexeme}
	case token.LParen:
		return l.expr(l.trees(t, 1, 1)[0])
	}
	l.fail(t, "unexpected primary expression")
	return nil
}

func (l *lowerer) constant(t *cst.Tree) *Literal {
	tok := l.leadingToken(t)
	switch tok.Kind {
	case token.IntegerConstant:
		return &Literal{Kind: Integer, Text: tok.Lexeme}
	case token.FloatingConstant:
		return &Literal{Kind: Floating, Text: tok.Lexeme}
	case token.CharConstant:
		return &Literal{Kind: Character, Text: tok.Lexeme}
	}
	l.fail(t, "unexpected constant")
	return nil
}

func (l *lowerer) unary(t *cst.Tree) Expr {
	op := l.leadingToken(t).Kind
	switch op {
	case token.KwAlignof:
		return &AlignofType{Type: l.typeName(l.child(t, cst.TypeName))}
	case token.KwSizeof:
		if ty := t.FindChild(cst.TypeName); ty != nil {
			return &SizeofType{Type: l.typeName(ty)}
		}
	}
	return &Unary{Op: op, X: l.expr(l.trees(t, 1, 1)[0])}
}

func (l *lowerer) postfix(t *cst.Tree) Expr {
	c := t.Children
	if len(c) < 2 || c[0].Tree == nil || c[1].Token == nil {
		l.fail(t, "not a postfix expression")
	}
	x := l.expr(c[0].Tree)

	switch op := c[1].Token.Kind; op {
	case token.LBracket:
		if len(c) < 3 || c[2].Tree == nil {
			l.fail(t, "subscript without an index")
		}
		return &Index{X: x, Index: l.expr(c[2].Tree)}
	case token.LParen:
		call := &Call{Func: x}
		if args := t.FindChild(cst.ArgumentExpressionList); args != nil {
			for arg := range args.Trees() {
				call.Args = append(call.Args, l.expr(arg))
			}
		}
		return call
	case token.Dot, token.Arrow:
		name := t.FindToken(token.Identifier)
		if name == nil {
			l.fail(t, "member access without a name")
		}
		return &Member{X: x, Name: name.Lexeme, Arrow: op == token.Arrow}
	default:
		return &Postfix{Op: op, X: x}
	}
}

func (l *lowerer) generic(t *cst.Tree) Expr {
	out := new(Generic)
	for c := range t.Trees() {
		if c.Kind != cst.GenericAssocList {
			out.Control = l.expr(c)
			continue
		}
		for assoc := range c.TreesOf(cst.GenericAssociation) {
			var a GenericAssoc
			for part := range assoc.Trees() {
				if part.Kind == cst.TypeName {
					a.Type = l.typeName(part)
				} else {
					a.Value = l.expr(part)
				}
			}
			out.Assocs = append(out.Assocs, a)
		}
	}
	return out
}

// initializer lowers an Initializer: an expression, or a braced list.
func (l *lowerer) initializer(t *cst.Tree) Expr {
	if t.FindToken(token.LBrace) == nil {
		return l.expr(l.trees(t, 1, 1)[0])
	}

	list := new(InitList)
	items := t.FindChild(cst.InitializerList)
	if items == nil {
		return list
	}
	var pending []Designator
	for c := range items.Trees() {
		switch c.Kind {
		case cst.Designation:
			pending = l.designators(c)
		case cst.Initializer:
			list.Elems = append(list.Elems, InitElem{Designators: pending, Value: l.initializer(c)})
			pending = nil
		default:
			l.fail(c, "unexpected initializer item")
		}
	}
	return list
}

func (l *lowerer) designators(t *cst.Tree) []Designator {
	var out []Designator
	for d := range l.child(t, cst.DesignatorList).TreesOf(cst.Designator) {
		if index := d.FindChild(cst.ConstantExpression); index != nil {
			out = append(out, Designator{Index: l.expr(index)})
			continue
		}
		name := d.FindToken(token.Identifier)
		if name == nil {
			l.fail(d, "designator without a member name")
		}
		out = append(out, Designator{Field: name.Lexeme})
	}
	return out
}
