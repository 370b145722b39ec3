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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulanski/rcc/token"
)

func tok(kind token.Kind, lexeme string, start int) Child {
	return TokenChild(token.Token{
		Kind:   kind,
		Lexeme: lexeme,
		Span:   token.Span{Start: start, End: start + len(lexeme)},
	})
}

func node(kind Kind, span token.Span, children ...Child) *Tree {
	return &Tree{Kind: kind, Span: span, Children: children}
}

// sample builds the tree for "@ int x;".
func sample() *Tree {
	spec := node(DeclarationSpecifiers, token.Span{Start: 2, End: 5},
		TreeChild(node(TypeSpecifier, token.Span{Start: 2, End: 5}, tok(token.KwInt, "int", 2))),
	)
	decl := node(Declaration, token.Span{Start: 2, End: 8},
		TreeChild(spec),
		TreeChild(node(InitDeclaratorList, token.Span{Start: 6, End: 7},
			TreeChild(node(InitDeclarator, token.Span{Start: 6, End: 7},
				TreeChild(node(Declarator, token.Span{Start: 6, End: 7},
					TreeChild(node(DirectDeclarator, token.Span{Start: 6, End: 7}, tok(token.Identifier, "x", 6))),
				)),
			)),
		)),
		tok(token.Semicolon, ";", 7),
	)
	return node(TranslationUnit, token.Span{Start: 0, End: 8},
		TreeChild(node(ErrorTree, token.Span{Start: 0, End: 1}, tok(token.Unknown, "@", 0))),
		TreeChild(node(ExternDecl, token.Span{Start: 2, End: 8}, TreeChild(decl))),
	)
}

func TestKindNames(t *testing.T) {
	t.Parallel()

	for _, k := range Kinds() {
		name := k.String()
		require.NotEmpty(t, name, "kind %d", k)
		got, ok := KindByName(name)
		assert.True(t, ok, name)
		assert.Equal(t, k, got)
	}
	assert.Equal(t, "cst.Kind(250)", Kind(250).String())
	assert.True(t, AdditiveExpression.IsBinary())
	assert.False(t, CastExpression.IsBinary())
}

func TestFind(t *testing.T) {
	t.Parallel()

	root := sample()
	ext := root.FindChild(ExternDecl)
	require.NotNil(t, ext)
	decl := ext.FindChild(Declaration)
	require.NotNil(t, decl)
	assert.Nil(t, ext.FindChild(FunctionDef))

	semi := decl.FindToken(token.Semicolon)
	require.NotNil(t, semi)
	assert.Equal(t, ";", semi.Lexeme)
	assert.Nil(t, decl.FindToken(token.Identifier), "only immediate children are searched")

	assert.Len(t, slices.Collect(root.TreesOf(ExternDecl)), 1)
}

func TestErrors(t *testing.T) {
	t.Parallel()

	root := sample()
	assert.True(t, root.ContainsErrors())
	assert.Equal(t, 1, root.NumErrors())
	assert.False(t, root.FindChild(ExternDecl).ContainsErrors())
	assert.Equal(t, 0, root.FindChild(ExternDecl).NumErrors())

	empty := node(ErrorTree, token.Span{})
	assert.True(t, empty.ContainsErrors())
	assert.Equal(t, 1, empty.NumErrors())
}

func TestCounts(t *testing.T) {
	t.Parallel()

	root := sample()
	assert.Equal(t, 0, root.NumFunctions())
	assert.Equal(t, 1, root.NumDeclarations())
}

func TestTokens(t *testing.T) {
	t.Parallel()

	var lexemes []string
	for tok := range sample().Tokens() {
		lexemes = append(lexemes, tok.Lexeme)
	}
	assert.Equal(t, []string{"@", "int", "x", ";"}, lexemes)
	assert.Equal(t, "int x;", sample().FindChild(ExternDecl).Text("@ int x;"))
}

func TestPrint(t *testing.T) {
	t.Parallel()

	decl := sample().FindChild(ExternDecl).FindChild(Declaration)
	want := `Declaration@2..8
  DeclarationSpecifiers@2..5
    TypeSpecifier@2..5
      INT_KW@2..5 "int"
  InitDeclaratorList@6..7
    InitDeclarator@6..7
      Declarator@6..7
        DirectDeclarator@6..7
          IDENTIFIER@6..7 "x"
  SEMICOLON@7..8 ";"
`
	assert.Equal(t, want, decl.String())
	assert.Equal(t,
		"(TranslationUnit (ErrorTree) (ExternDecl (Declaration (DeclarationSpecifiers (TypeSpecifier)) "+
			"(InitDeclaratorList (InitDeclarator (Declarator (DirectDeclarator)))))))",
		sample().Shape(),
	)
}

func TestIndex(t *testing.T) {
	t.Parallel()

	root := sample()
	idx := NewIndex(root)
	assert.Equal(t, 4, idx.Len())

	x := idx.TokenAt(6)
	require.NotNil(t, x)
	assert.Equal(t, "x", x.Lexeme)
	assert.Nil(t, idx.TokenAt(1), "whitespace")
	assert.Nil(t, idx.TokenAt(100))

	var kinds []Kind
	for _, tr := range idx.Path(6) {
		kinds = append(kinds, tr.Kind)
	}
	assert.Equal(t, []Kind{
		TranslationUnit, ExternDecl, Declaration, InitDeclaratorList,
		InitDeclarator, Declarator, DirectDeclarator,
	}, kinds)

	path := idx.Path(0)
	require.Len(t, path, 2)
	assert.Equal(t, ErrorTree, path[1].Kind)
	assert.Nil(t, idx.Path(1))
}
