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
	"slices"

	"github.com/pulanski/rcc/internal/interval"
	"github.com/pulanski/rcc/token"
)

// Index answers position queries against a tree: which token covers an
// offset, and which nodes enclose it.
type Index struct {
	root   *Tree
	tokens interval.Map[int, leaf]
}

type leaf struct {
	tok    *token.Token
	parent *Tree
}

// NewIndex builds an index over every token in root.
//
// Tokens in a well-formed tree never overlap; a token that would overlap an
// earlier one is left out of the index.
func NewIndex(root *Tree) *Index {
	idx := &Index{root: root}
	var visit func(t *Tree)
	visit = func(t *Tree) {
		for _, c := range t.Children {
			if c.Tree != nil {
				visit(c.Tree)
				continue
			}
			idx.tokens.Insert(c.Token.Span.Start, c.Token.Span.End, leaf{tok: c.Token, parent: t})
		}
	}
	visit(root)
	return idx
}

// Len returns the number of indexed tokens.
func (idx *Index) Len() int {
	return idx.tokens.Len()
}

// TokenAt returns the token covering offset, or nil if offset falls in
// trivia or outside the file.
func (idx *Index) TokenAt(offset int) *token.Token {
	in, ok := idx.tokens.Get(offset)
	if !ok {
		return nil
	}
	return in.Value.tok
}

// Path returns the trees enclosing the token at offset, outermost first. The
// last element is the token's parent. Returns nil if no token covers offset.
func (idx *Index) Path(offset int) []*Tree {
	in, ok := idx.tokens.Get(offset)
	if !ok {
		return nil
	}

	var path []*Tree
	var find func(t *Tree) bool
	find = func(t *Tree) bool {
		path = append(path, t)
		if t == in.Value.parent {
			return true
		}
		for c := range t.Trees() {
			if c.Span.Contains(in.Value.tok.Span) && find(c) {
				return true
			}
		}
		path = path[:len(path)-1]
		return false
	}
	if !find(idx.root) {
		return nil
	}
	return slices.Clip(path)
}
