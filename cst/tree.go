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

package cst

import (
	"iter"

	"github.com/pulanski/rcc/token"
)

// Tree is a node of the concrete syntax tree.
//
// Its Span is the union of its children's spans. A tree without children has
// a zero-width span just past the token preceding it. Children appear in
// source order.
type Tree struct {
	Kind     Kind
	Span     token.Span
	Children []Child
}

// Child is a child of a [Tree]: exactly one of Token and Tree is non-nil.
type Child struct {
	Token *token.Token
	Tree  *Tree
}

// TokenChild wraps tok as a [Child].
func TokenChild(tok token.Token) Child {
	return Child{Token: &tok}
}

// TreeChild wraps t as a [Child].
func TreeChild(t *Tree) Child {
	return Child{Tree: t}
}

// Span returns the span of whichever value this child holds.
func (c Child) Span() token.Span {
	if c.Token != nil {
		return c.Token.Span
	}
	return c.Tree.Span
}

// IsEmpty returns whether t has no children.
func (t *Tree) IsEmpty() bool {
	return len(t.Children) == 0
}

// FindChild returns the first immediate child tree of the given kind, or nil.
func (t *Tree) FindChild(kind Kind) *Tree {
	for _, c := range t.Children {
		if c.Tree != nil && c.Tree.Kind == kind {
			return c.Tree
		}
	}
	return nil
}

// FindToken returns the first immediate child token of the given kind, or nil.
func (t *Tree) FindToken(kind token.Kind) *token.Token {
	for _, c := range t.Children {
		if c.Token != nil && c.Token.Kind == kind {
			return c.Token
		}
	}
	return nil
}

// Trees returns an iterator over the immediate child trees of t.
func (t *Tree) Trees() iter.Seq[*Tree] {
	return func(yield func(*Tree) bool) {
		for _, c := range t.Children {
			if c.Tree != nil && !yield(c.Tree) {
				return
			}
		}
	}
}

// TreesOf returns an iterator over the immediate child trees of the given kind.
func (t *Tree) TreesOf(kind Kind) iter.Seq[*Tree] {
	return func(yield func(*Tree) bool) {
		for c := range t.Trees() {
			if c.Kind == kind && !yield(c) {
				return
			}
		}
	}
}

// Tokens returns an iterator over every token in the subtree rooted at t, in
// source order.
func (t *Tree) Tokens() iter.Seq[*token.Token] {
	return func(yield func(*token.Token) bool) {
		t.tokens(yield)
	}
}

func (t *Tree) tokens(yield func(*token.Token) bool) bool {
	for _, c := range t.Children {
		if c.Token != nil {
			if !yield(c.Token) {
				return false
			}
		} else if !c.Tree.tokens(yield) {
			return false
		}
	}
	return true
}

// Walk calls visit on t and every tree below it, in preorder. If visit
// returns false, the children of that tree are skipped.
func (t *Tree) Walk(visit func(*Tree) bool) {
	if !visit(t) {
		return
	}
	for c := range t.Trees() {
		c.Walk(visit)
	}
}

// ContainsErrors returns whether t is an [ErrorTree] or has one below it.
func (t *Tree) ContainsErrors() bool {
	if t.Kind == ErrorTree {
		return true
	}
	for c := range t.Trees() {
		if c.ContainsErrors() {
			return true
		}
	}
	return false
}

// NumErrors returns the number of [ErrorTree] nodes in the subtree rooted at
// t, including t itself.
func (t *Tree) NumErrors() int {
	var n int
	t.Walk(func(t *Tree) bool {
		if t.Kind == ErrorTree {
			n++
		}
		return true
	})
	return n
}

// NumFunctions returns the number of function definitions among the external
// declarations directly under t.
func (t *Tree) NumFunctions() int {
	return t.countExtern(FunctionDef)
}

// NumDeclarations returns the number of declarations among the external
// declarations directly under t.
func (t *Tree) NumDeclarations() int {
	return t.countExtern(Declaration)
}

func (t *Tree) countExtern(kind Kind) int {
	var n int
	for decl := range t.TreesOf(ExternDecl) {
		if decl.FindChild(kind) != nil {
			n++
		}
	}
	return n
}

// Text returns the source text t spans.
func (t *Tree) Text(src string) string {
	return t.Span.Text(src)
}
