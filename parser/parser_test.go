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
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/internal/corpora"
	"github.com/pulanski/rcc/lexer"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

func parse(t *testing.T, text string, opts ...Option) (*cst.Tree, *report.Report) {
	t.Helper()
	r := new(report.Report)
	tree, err := Parse(report.NewFile("test.c", text), r, opts...)
	require.NoError(t, err)
	require.NotNil(t, tree)
	checkTree(t, text, tree)
	return tree, r
}

func parseRule(t *testing.T, text string, kind cst.Kind) (*cst.Tree, *report.Report) {
	t.Helper()
	r := new(report.Report)
	tree, err := ParseRule(report.NewFile("test.c", text), kind, r)
	require.NoError(t, err)
	require.NotNil(t, tree)
	return tree, r
}

// checkTree verifies the structural guarantees every parse must uphold:
// each token appears exactly once, in order, and every child's span lies
// within its parent's.
func checkTree(t *testing.T, text string, tree *cst.Tree) {
	t.Helper()

	var want []token.Token
	stream := lexer.Lex(report.NewFile("test.c", text))
	for _, tok := range stream.Tokens() {
		if tok.Kind != token.EOF {
			want = append(want, tok)
		}
	}
	var got []token.Token
	for tok := range tree.Tokens() {
		got = append(got, *tok)
	}
	assert.Equal(t, want, got, "tokens in tree")

	tree.Walk(func(parent *cst.Tree) bool {
		for _, c := range parent.Children {
			if !parent.Span.Contains(c.Span()) {
				t.Errorf("%v@%v does not contain child at %v", parent.Kind, parent.Span, c.Span())
			}
		}
		return true
	})
}

func codes(r *report.Report) []string {
	var out []string
	for _, d := range r.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func TestParseMain(t *testing.T) {
	t.Parallel()

	tree, r := parse(t, "int main() { return 0; }")
	assert.Empty(t, r.Diagnostics)
	assert.False(t, tree.ContainsErrors())
	assert.Equal(t, 1, tree.NumFunctions())
	assert.Equal(t,
		"(TranslationUnit (ExternDecl (FunctionDef"+
			" (DeclarationSpecifiers (TypeSpecifier))"+
			" (Declarator (DirectDeclarator))"+
			" (CompoundStatement (StatementList (Statement (JumpStatement (PrimaryExpression (Constant)))))))))",
		tree.Shape(),
	)
}

func TestMissingSemicolon(t *testing.T) {
	t.Parallel()

	tree, r := parse(t, "int x")
	require.Len(t, r.Diagnostics, 1)
	d := r.Diagnostics[0]
	assert.Equal(t, report.Error, d.Level)
	assert.Equal(t, CodeExpectedToken, d.Code)
	assert.Equal(t, "expected `;`", d.Message())
	assert.Equal(t, 5, d.Primary().Start.Offset)

	assert.True(t, tree.ContainsErrors())
	assert.Equal(t, 1, tree.NumErrors())
	assert.Equal(t, 1, tree.NumDeclarations())
	assert.Equal(t,
		"(TranslationUnit (ExternDecl (Declaration"+
			" (DeclarationSpecifiers (TypeSpecifier))"+
			" (InitDeclaratorList (InitDeclarator (Declarator (DirectDeclarator))))"+
			" (ErrorTree))))",
		tree.Shape(),
	)

	// The missing token is an empty tree sitting where the `;` belongs.
	for missing := range tree.TreesOf(cst.ErrorTree) {
		assert.True(t, missing.IsEmpty())
		assert.Equal(t, token.Span{Start: 5, End: 5}, missing.Span)
	}
}

func TestUnknownTokenAtTopLevel(t *testing.T) {
	t.Parallel()

	tree, r := parse(t, "@@@ int main(){return 0;}")
	assert.Equal(t, []string{CodeUnknownToken}, codes(r))

	require.Len(t, tree.Children, 2)
	junk := tree.Children[0].Tree
	require.NotNil(t, junk)
	assert.Equal(t, cst.ErrorTree, junk.Kind)
	tok := junk.FindToken(token.Unknown)
	require.NotNil(t, tok)
	assert.Equal(t, "@@@", tok.Lexeme)

	ext := tree.Children[1].Tree
	require.NotNil(t, ext)
	assert.Equal(t, cst.ExternDecl, ext.Kind)
	assert.False(t, ext.ContainsErrors())
	assert.NotNil(t, ext.FindChild(cst.FunctionDef))
}

func TestPointerTokens(t *testing.T) {
	t.Parallel()

	tree, r := parse(t, "char**p;")
	assert.Empty(t, r.Diagnostics)

	var stars []token.Span
	for tok := range tree.Tokens() {
		if tok.Kind == token.Star {
			stars = append(stars, tok.Span)
		}
	}
	assert.Equal(t, []token.Span{{Start: 4, End: 5}, {Start: 5, End: 6}}, stars)

	decl := tree.FindChild(cst.ExternDecl).FindChild(cst.Declaration).
		FindChild(cst.InitDeclaratorList).FindChild(cst.InitDeclarator).
		FindChild(cst.Declarator)
	require.NotNil(t, decl)
	assert.Equal(t, "(Declarator (Pointer (Pointer)) (DirectDeclarator))", decl.Shape())
}

func TestExternalDeclarations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		want       []cst.Kind
	}{
		{name: "prototype", text: "int f(void);", want: []cst.Kind{cst.Declaration}},
		{name: "definition", text: "int f(void) {}", want: []cst.Kind{cst.FunctionDef}},
		{name: "implicit_int", text: "main() { return 0; }", want: []cst.Kind{cst.FunctionDef}},
		{name: "k_and_r", text: "int f(a, b) int a; int b; { return a; }", want: []cst.Kind{cst.FunctionDef}},
		{name: "function_pointer", text: "int (*fp)(int, int);", want: []cst.Kind{cst.Declaration}},
		{name: "struct", text: "struct S { int a; char *b; };", want: []cst.Kind{cst.Declaration}},
		{name: "struct_return", text: "struct S f(void) { }", want: []cst.Kind{cst.FunctionDef}},
		{name: "multiple", text: "int a = 1, b;", want: []cst.Kind{cst.Declaration}},
		{name: "array", text: "int a[4] = {1, 2, [3] = 4};", want: []cst.Kind{cst.Declaration}},
		{
			name: "typedef_name",
			text: "typedef int T; T g(T x) { return x; }",
			want: []cst.Kind{cst.Declaration, cst.FunctionDef},
		},
		{
			name: "static_assert",
			text: `_Static_assert(sizeof(int) == 4, "int");`,
			want: []cst.Kind{cst.StaticAssertDeclaration},
		},
		{
			name: "enum",
			text: "enum Day { MON, TUE = 2, };",
			want: []cst.Kind{cst.Declaration},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tree, r := parse(t, test.text)
			assert.Empty(t, r.Diagnostics)

			var got []cst.Kind
			for ext := range tree.TreesOf(cst.ExternDecl) {
				require.Len(t, ext.Children, 1)
				got = append(got, ext.Children[0].Tree.Kind)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestBlockItems(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, body string
		want       []cst.Kind
	}{
		{
			name: "interleaved",
			body: "int a; a = 1; int b;",
			want: []cst.Kind{cst.DeclarationList, cst.StatementList, cst.DeclarationList},
		},
		{name: "typedef_declaration", body: "size_t n;", want: []cst.Kind{cst.DeclarationList}},
		{name: "typedef_pointer", body: "T *p = 0;", want: []cst.Kind{cst.DeclarationList}},
		{name: "pointer_or_product", body: "x * y;", want: []cst.Kind{cst.DeclarationList}},
		{name: "multiplication", body: "x * y + 1;", want: []cst.Kind{cst.StatementList}},
		{name: "label", body: "done: return;", want: []cst.Kind{cst.StatementList}},
		{name: "empty", body: "", want: nil},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tree, r := parse(t, "void f() { "+test.body+" }")
			assert.Empty(t, r.Diagnostics)

			body := tree.FindChild(cst.ExternDecl).FindChild(cst.FunctionDef).FindChild(cst.CompoundStatement)
			require.NotNil(t, body)
			var got []cst.Kind
			for c := range body.Trees() {
				got = append(got, c.Kind)
			}
			assert.Equal(t, test.want, got)
		})
	}
}

func TestStatements(t *testing.T) {
	t.Parallel()

	text := `
int main(int argc, char **argv) {
    int i, sum = 0;
    for (i = 0; i < argc; i++) {
        if (i % 2) continue; else sum += i;
    }
    while (sum > 10) sum--;
    do { sum++; } while (sum < 3);
    switch (sum) {
    case 1: break;
    default: goto out;
    }
out:
    return sum ? (int)sum : -1;
}
`
	tree, r := parse(t, text)
	assert.Empty(t, r.Diagnostics)
	assert.False(t, tree.ContainsErrors())

	counts := make(map[cst.Kind]int)
	tree.Walk(func(t *cst.Tree) bool {
		counts[t.Kind]++
		return true
	})
	assert.Equal(t, 3, counts[cst.IterationStatement])
	assert.Equal(t, 2, counts[cst.SelectionStatement])
	assert.Equal(t, 3, counts[cst.LabeledStatement])
	assert.Equal(t, 1, counts[cst.CastExpression])
	assert.Equal(t, 1, counts[cst.ConditionalExpression])
}

func TestExpressions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text, want string
	}{
		{"x", "(PrimaryExpression)"},
		{"a + b * c", "(AdditiveExpression (PrimaryExpression) (MultiplicativeExpression (PrimaryExpression) (PrimaryExpression)))"},
		{"a - b - c", "(AdditiveExpression (AdditiveExpression (PrimaryExpression) (PrimaryExpression)) (PrimaryExpression))"},
		{"a = b = c", "(AssignmentExpression (PrimaryExpression) (AssignmentExpression (PrimaryExpression) (PrimaryExpression)))"},
		{"a, b", "(Expression (PrimaryExpression) (PrimaryExpression))"},
		{"(int)x", "(CastExpression (TypeName (SpecifierQualifierList (TypeSpecifier))) (PrimaryExpression))"},
		{"(char *)p", "(CastExpression (TypeName (SpecifierQualifierList (TypeSpecifier)) (AbstractDeclarator (Pointer))) (PrimaryExpression))"},
		{"(x) + 1", "(AdditiveExpression (PrimaryExpression (PrimaryExpression)) (PrimaryExpression (Constant)))"},
		{"f(a, 1)", "(PostfixExpression (PrimaryExpression) (ArgumentExpressionList (PrimaryExpression) (PrimaryExpression (Constant))))"},
		{"p->x.y[0]++", "(PostfixExpression (PostfixExpression (PostfixExpression (PostfixExpression (PrimaryExpression))) (PrimaryExpression (Constant))))"},
		{"-~!x", "(UnaryExpression (UnaryExpression (UnaryExpression (PrimaryExpression))))"},
		{"sizeof(int)", "(UnaryExpression (TypeName (SpecifierQualifierList (TypeSpecifier))))"},
		{"sizeof x", "(UnaryExpression (PrimaryExpression))"},
		{"a ? b : c", "(ConditionalExpression (PrimaryExpression) (PrimaryExpression) (PrimaryExpression))"},
		{`"a" "b"`, "(PrimaryExpression (String))"},
		{"a || b && c | d ^ e & f == g < h << i",
			"(LogicalOrExpression (PrimaryExpression) (LogicalAndExpression (PrimaryExpression)" +
				" (InclusiveOrExpression (PrimaryExpression) (ExclusiveOrExpression (PrimaryExpression)" +
				" (AndExpression (PrimaryExpression) (EqualityExpression (PrimaryExpression)" +
				" (RelationalExpression (PrimaryExpression) (ShiftExpression (PrimaryExpression) (PrimaryExpression))))))))))"},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			tree, r := parseRule(t, test.text, cst.Expression)
			assert.Empty(t, r.Diagnostics)
			assert.Equal(t, test.want, tree.Shape())
		})
	}
}

func TestRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name, text string
		codes      []string
	}{
		{name: "missing_operand", text: "int main() { int x = ; return 0; }", codes: []string{CodeUnexpectedToken}},
		{name: "missing_semicolon_in_block", text: "int main() { return 0 }", codes: []string{CodeExpectedToken}},
		{name: "stray_brace", text: "} int x;", codes: []string{CodeUnexpectedToken}},
		{name: "unclosed_block", text: "int main() { return 0;", codes: []string{CodeExpectedToken}},
		{name: "bad_declarator", text: "int 5;", codes: []string{CodeUnexpectedToken}},
		{name: "junk_in_block", text: "void f() { ] return; }", codes: []string{CodeUnexpectedToken}},
		{name: "unknown_in_expression", text: "void f() { x = 1 @ 2; }", codes: []string{CodeExpectedToken, CodeUnknownToken}},
		{
			name:  "unterminated_string",
			text:  "char *s = \"abc;\n",
			codes: []string{CodeUnterminated, CodeExpectedToken},
		},
		{name: "untyped_parameter", text: "int f(int a, b);", codes: []string{CodeExpectedToken}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			tree, r := parse(t, test.text)
			assert.Equal(t, test.codes, codes(r))
			assert.True(t, tree.ContainsErrors())
		})
	}
}

func TestEmptyFile(t *testing.T) {
	t.Parallel()

	tree, r := parse(t, "// nothing here\n")
	assert.True(t, tree.IsEmpty())
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, report.Warning, r.Diagnostics[0].Level)
	assert.Equal(t, CodeEmptyUnit, r.Diagnostics[0].Code)
}

func TestNestingCeiling(t *testing.T) {
	t.Parallel()

	const depth = 1000
	text := "int x = " + strings.Repeat("(", depth) + "1" + strings.Repeat(")", depth) + ";"
	tree, r := parse(t, text)
	assert.Equal(t, []string{CodeTooDeep}, codes(r))
	assert.True(t, tree.ContainsErrors())

	_, r = parse(t, "int x = ((((1))));", WithMaxDepth(4))
	assert.Equal(t, []string{CodeTooDeep}, codes(r))

	_, r = parse(t, "int x = ((((1))));")
	assert.Empty(t, r.Diagnostics)

	casts := "int x = " + strings.Repeat("(int)", 50) + "1;"
	tree, r = parse(t, casts, WithMaxDepth(4))
	assert.Equal(t, []string{CodeTooDeep}, codes(r))
	assert.True(t, tree.ContainsErrors())
	assert.Equal(t, 1, tree.NumDeclarations())

	_, r = parse(t, "int x = (int)1;", WithMaxDepth(4))
	assert.Empty(t, r.Diagnostics)

	stars := "int " + strings.Repeat("*", 50) + "x; int y;"
	tree, r = parse(t, stars, WithMaxDepth(4))
	assert.Equal(t, []string{CodeTooDeep}, codes(r))
	assert.Equal(t, 2, tree.NumDeclarations())

	_, r = parse(t, "int ***x;", WithMaxDepth(4))
	assert.Empty(t, r.Diagnostics)
}

func TestOutOfFuel(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.c", "int x;")
	r := new(report.Report)
	tree, err := run(file, lexer.Lex(file), r, newOptions(nil), func(p *parser) {
		for !p.at(token.Semicolon) {
		}
	})
	assert.Nil(t, tree)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfFuel))
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, report.ICE, r.Diagnostics[0].Level)
	assert.Equal(t, CodeOutOfFuel, r.Diagnostics[0].Code)
}

func TestMalformedEventLog(t *testing.T) {
	t.Parallel()

	file := report.NewFile("test.c", "int x;")
	r := new(report.Report)
	_, err := run(file, lexer.Lex(file), r, newOptions(nil), func(p *parser) {
		p.open()
		p.advance()
	})
	assert.True(t, errors.Is(err, ErrMalformedTree))
	assert.Equal(t, 1, r.Count(report.ICE))

	r = new(report.Report)
	_, err = run(file, lexer.Lex(file), r, newOptions(nil), func(p *parser) {
		m := p.open()
		p.close(m, cst.TranslationUnit)
	})
	assert.True(t, errors.Is(err, ErrMalformedTree), "tokens left unconsumed")
}

func TestParseRule(t *testing.T) {
	t.Parallel()

	tree, r := parseRule(t, "return 0;", cst.Statement)
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, cst.Statement, tree.Kind)

	tree, r = parseRule(t, "x + 1 )", cst.Expression)
	assert.Equal(t, []string{CodeUnexpectedToken}, codes(r))
	assert.Equal(t, cst.Expression, tree.Kind)
	assert.Equal(t, "(Expression (AdditiveExpression (PrimaryExpression) (PrimaryExpression (Constant))) (ErrorTree))", tree.Shape())

	_, err := ParseRule(report.NewFile("test.c", ""), cst.Pointer, new(report.Report))
	assert.Error(t, err)
}

func TestCorpus(t *testing.T) {
	t.Parallel()

	corpora.Corpus{
		Root:      "testdata/parse",
		Refresh:   "RCC_REFRESH",
		Extension: "c",
		Outputs: []corpora.Output{
			{Extension: "stderr.txt"},
		},
		Test: func(t *testing.T, path, text string) []string {
			r := new(report.Report)
			tree, err := Parse(report.NewFile(path, text), r)
			require.NoError(t, err)
			checkTree(t, text, tree)

			if strings.Contains(path, "/ok/") {
				assert.False(t, tree.ContainsErrors())
			}

			r.Sort()
			stderr, _, _ := report.Renderer{Compact: true}.RenderString(r)
			return []string{stderr}
		},
	}.Run(t)
}

func FuzzParse(f *testing.F) {
	f.Add("int main() { return 0; }")
	f.Add("int x")
	f.Add("@@@ int main(){return 0;}")
	f.Add("char**p;")
	f.Add("int f(a, b) int a; { return (a)(b); }")
	f.Add("struct { int : 3; } x = { .a = 1, [2] = { 3 } };")
	f.Add("))))((((;;;;}}}}{{{{")
	f.Fuzz(func(t *testing.T, text string) {
		r := new(report.Report)
		tree, err := Parse(report.NewFile("fuzz.c", text), r)
		require.NoError(t, err)
		checkTree(t, text, tree)
		if tree.ContainsErrors() {
			assert.True(t, r.HasErrors())
		}
	})
}
