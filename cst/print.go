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
	"fmt"
	"io"
	"strings"
)

// String renders t as an indented outline, one node or token per line:
//
//	TranslationUnit@0..9
//	  ExternDecl@0..9
//	    ...
//	      SEMICOLON@8..9 ";"
func (t *Tree) String() string {
	var b strings.Builder
	_ = t.Print(&b)
	return b.String()
}

// Print writes the outline produced by [Tree.String] to w.
func (t *Tree) Print(w io.Writer) error {
	return t.print(w, 0)
}

func (t *Tree) print(w io.Writer, depth int) error {
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%s%s@%v\n", indent, t.Kind, t.Span); err != nil {
		return err
	}
	for _, c := range t.Children {
		if c.Tree != nil {
			if err := c.Tree.print(w, depth+1); err != nil {
				return err
			}
			continue
		}
		if _, err := fmt.Fprintf(w, "%s  %s@%v %q\n", indent, c.Token.Kind.Name(), c.Token.Span, c.Token.Lexeme); err != nil {
			return err
		}
	}
	return nil
}

// Shape renders the kinds of t and its descendant trees as a compact
// S-expression, omitting tokens; for example
// "(ExternDecl (Declaration (DeclarationSpecifiers (TypeSpecifier))))".
func (t *Tree) Shape() string {
	var b strings.Builder
	t.shape(&b)
	return b.String()
}

func (t *Tree) shape(b *strings.Builder) {
	b.WriteByte('(')
	b.WriteString(t.Kind.String())
	for c := range t.Trees() {
		b.WriteByte(' ')
		c.shape(b)
	}
	b.WriteByte(')')
}
