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

func (l *lowerer) compound(t *cst.Tree) *Compound {
	block := new(Compound)
	for list := range t.Trees() {
		switch list.Kind {
		case cst.DeclarationList:
			for decl := range list.Trees() {
				block.Items = append(block.Items, &DeclStmt{Decl: l.blockDecl(decl)})
			}
		case cst.StatementList:
			for stmt := range list.Trees() {
				block.Items = append(block.Items, l.stmt(stmt))
			}
		default:
			l.fail(list, "unexpected block item")
		}
	}
	return block
}

func (l *lowerer) blockDecl(decl *cst.Tree) ExternDecl {
	switch decl.Kind {
	case cst.Declaration:
		return l.declaration(decl)
	case cst.StaticAssertDeclaration:
		return l.staticAssert(decl)
	default:
		l.fail(decl, "unexpected declaration")
		return nil
	}
}

// stmt lowers a Statement wrapper.
func (l *lowerer) stmt(t *cst.Tree) Stmt {
	if t.Kind != cst.Statement {
		l.fail(t, "not a statement")
	}
	s := l.first(t)
	switch s.Kind {
	case cst.CompoundStatement:
		return l.compound(s)
	case cst.ExpressionStatement:
		out := new(ExprStmt)
		if x := l.trees(s, 0, 1); len(x) == 1 {
			out.X = l.expr(x[0])
		}
		return out
	case cst.JumpStatement:
		return l.jump(s)
	case cst.LabeledStatement:
		return l.labeled(s)
	case cst.SelectionStatement:
		return l.selection(s)
	case cst.IterationStatement:
		return l.iteration(s)
	default:
		l.fail(s, "unexpected statement")
		return nil
	}
}

func (l *lowerer) jump(t *cst.Tree) Stmt {
	switch l.leadingToken(t).Kind {
	case token.KwGoto:
		label := t.FindToken(token.Identifier)
		if label == nil {
			l.fail(t, "goto without a label")
		}
		return &Goto{Label: label.Lexeme}
	case token.KwContinue:
		return new(Continue)
	case token.KwBreak:
		return new(Break)
	default:
		out := new(Return)
		if x := l.trees(t, 0, 1); len(x) == 1 {
			out.Value = l.expr(x[0])
		}
		return out
	}
}

func (l *lowerer) labeled(t *cst.Tree) Stmt {
	body := l.stmt(l.child(t, cst.Statement))
	switch tok := l.leadingToken(t); tok.Kind {
	case token.KwCase:
		return &Case{Value: l.expr(l.child(t, cst.ConstantExpression)), Body: body}
	case token.KwDefault:
		return &Default{Body: body}
	default:
		return &Labeled{Label: tok.Lexeme, Body: body}
	}
}

func (l *lowerer) selection(t *cst.Tree) Stmt {
	if l.leadingToken(t).Kind == token.KwSwitch {
		parts := l.trees(t, 2, 2)
		return &Switch{Tag: l.expr(parts[0]), Body: l.stmt(parts[1])}
	}
	parts := l.trees(t, 2, 3)
	out := &If{Cond: l.expr(parts[0]), Then: l.stmt(parts[1])}
	if len(parts) == 3 {
		out.Else = l.stmt(parts[2])
	}
	return out
}

func (l *lowerer) iteration(t *cst.Tree) Stmt {
	switch l.leadingToken(t).Kind {
	case token.KwWhile:
		parts := l.trees(t, 2, 2)
		return &While{Cond: l.expr(parts[0]), Body: l.stmt(parts[1])}
	case token.KwDo:
		parts := l.trees(t, 2, 2)
		return &DoWhile{Body: l.stmt(parts[0]), Cond: l.expr(parts[1])}
	default:
		return l.forLoop(t)
	}
}

// forLoop lowers a for loop, telling its three optional clauses apart by
// the separators between them.
func (l *lowerer) forLoop(t *cst.Tree) Stmt {
	const (
		initClause = iota
		condClause
		postClause
		bodyClause
	)

	out := new(For)
	clause := initClause
	for _, c := range t.Children[1:] {
		if c.Token != nil {
			switch c.Token.Kind {
			case token.Semicolon:
				clause++
			case token.RParen:
				clause = bodyClause
			}
			continue
		}

		switch {
		case c.Tree.Kind == cst.Declaration:
			out.Init = &DeclStmt{Decl: l.declaration(c.Tree)}
			clause = condClause
		case c.Tree.Kind == cst.Statement:
			out.Body = l.stmt(c.Tree)
		case clause == initClause:
			out.Init = &ExprStmt{X: l.expr(c.Tree)}
		case clause == condClause:
			out.Cond = l.expr(c.Tree)
		case clause == postClause:
			out.Post = l.expr(c.Tree)
		default:
			l.fail(c.Tree, "unexpected %v in for loop", c.Tree.Kind)
		}
	}
	if out.Body == nil {
		l.fail(t, "for loop without a body")
	}
	return out
}
