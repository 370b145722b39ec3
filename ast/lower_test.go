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

package ast_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulanski/rcc/ast"
	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/parser"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// ignoreSpans drops source positions from comparisons.
var ignoreSpans = cmp.Options{
	cmp.FilterPath(func(p cmp.Path) bool {
		f, ok := p.Last().(cmp.StructField)
		return ok && f.Name() == "Span"
	}, cmp.Ignore()),
	cmpopts.EquateEmpty(),
}

func lower(t *testing.T, text string) (*ast.TranslationUnit, *report.Report) {
	t.Helper()
	file := report.NewFile("test.c", text)
	r := new(report.Report)
	tree, err := parser.Parse(file, r)
	require.NoError(t, err)
	unit, err := ast.Lower(tree, r, ast.WithFile(file))
	require.NoError(t, err)
	require.NotNil(t, unit)
	return unit, r
}

func codes(r *report.Report) []string {
	var out []string
	for _, d := range r.Diagnostics {
		out = append(out, d.Code)
	}
	return out
}

func integer(text string) *ast.Literal {
	return &ast.Literal{Kind: ast.Integer, Text: text}
}

func length(n int64) *int64 {
	return &n
}

func TestLowerMain(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "int main() { return 0; }")
	assert.Empty(t, r.Diagnostics)

	want := []ast.ExternDecl{
		&ast.Function{
			Name:       "main",
			ReturnType: ast.Int,
			Body: &ast.Compound{Items: []ast.Stmt{
				&ast.Return{Value: integer("0")},
			}},
		},
	}
	assert.Empty(t, cmp.Diff(want, unit.Functions, ignoreSpans))
}

func TestLowerParams(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "int main(int argc, char** argv){return 0;}")
	assert.Empty(t, r.Diagnostics)

	main := unit.Func("main")
	require.NotNil(t, main)
	want := []ast.Param{
		{Name: "argc", Type: ast.Int},
		{Name: "argv", Type: &ast.Pointer{Elem: &ast.Pointer{Elem: ast.Char}}},
	}
	assert.Empty(t, cmp.Diff(want, main.Params))
	assert.Equal(t, "int(int, char**)", main.Type().String())
}

func TestLowerMissingReturn(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "int qux(int x) {}")
	qux := unit.Func("qux")
	require.NotNil(t, qux)
	assert.Empty(t, cmp.Diff(&ast.Compound{}, qux.Body, ignoreSpans))
	assert.Equal(t, []ast.Param{{Name: "x", Type: ast.Int}}, qux.Params)

	require.Len(t, r.Diagnostics, 1)
	d := r.Diagnostics[0]
	assert.Equal(t, report.Warning, d.Level)
	assert.Equal(t, ast.CodeReturnType, d.Code)
	assert.Equal(t, "return-type", d.Tag)
	assert.Equal(t, "non-void function does not return a value", d.Message())
	assert.Equal(t, 16, d.Primary().Start.Offset)
	assert.False(t, r.HasErrors())

	_, r = lower(t, "void quux(void) {}")
	assert.Empty(t, r.Diagnostics)
}

func TestLowerSkipsErrors(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "int x")
	assert.Empty(t, unit.Functions)
	assert.Equal(t, []string{parser.CodeExpectedToken}, codes(r))

	unit, r = lower(t, "@@@ int main(){return 0;}")
	assert.Equal(t, []string{parser.CodeUnknownToken}, codes(r))
	require.Len(t, unit.Functions, 1)
	assert.Equal(t, "main", unit.Func("main").Name)

	unit, _ = lower(t, "int a = ; int b = 1;")
	require.Len(t, unit.Functions, 1)
	decl, ok := unit.Functions[0].(*ast.Declaration)
	require.True(t, ok)
	assert.Equal(t, "b", decl.Declarators[0].Name)
}

func TestDeclaratorTypes(t *testing.T) {
	t.Parallel()

	handler := &ast.Func{Return: ast.Void, Params: []ast.DataType{ast.Int}}
	tests := []struct {
		text, name string
		want       ast.DataType
	}{
		{"char **argv;", "argv", &ast.Pointer{Elem: &ast.Pointer{Elem: ast.Char}}},
		{"int *a[3];", "a", &ast.Array{Elem: &ast.Pointer{Elem: ast.Int}, Len: length(3)}},
		{"int (*a)[3];", "a", &ast.Pointer{Elem: &ast.Array{Elem: ast.Int, Len: length(3)}}},
		{"int m[2][3];", "m", &ast.Array{Elem: &ast.Array{Elem: ast.Int, Len: length(3)}, Len: length(2)}},
		{"int v[] = {1};", "v", &ast.Array{Elem: ast.Int}},
		{"int (*fp)(int, char);", "fp", &ast.Pointer{Elem: &ast.Func{Return: ast.Int, Params: []ast.DataType{ast.Int, ast.Char}}}},
		{"int printf(const char *fmt, ...);", "printf", &ast.Func{Return: ast.Int, Params: []ast.DataType{&ast.Pointer{Elem: ast.Char}}, Variadic: true}},
		{"int f(void);", "f", &ast.Func{Return: ast.Int}},
		{"int g();", "g", &ast.Func{Return: ast.Int}},
		{"unsigned long n;", "n", ast.Int},
		{"long double d;", "d", ast.Double},
		{"struct S *s;", "s", &ast.Pointer{Elem: &ast.Struct{Name: "S"}}},
		{"union U u;", "u", &ast.Struct{Name: "U", Union: true}},
		{"enum E e;", "e", &ast.Enum{Name: "E"}},
		{"T x;", "x", &ast.Named{Name: "T"}},
		{"_Bool b;", "b", ast.Unknown},
		{
			"void (*signal(int sig, void (*func)(int)))(int);", "signal",
			&ast.Func{
				Return: &ast.Pointer{Elem: handler},
				Params: []ast.DataType{ast.Int, &ast.Pointer{Elem: handler}},
			},
		},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			unit, r := lower(t, test.text)
			assert.Empty(t, r.Diagnostics)
			require.Len(t, unit.Functions, 1)
			decl, ok := unit.Functions[0].(*ast.Declaration)
			require.True(t, ok)
			require.Len(t, decl.Declarators, 1)
			assert.Equal(t, test.name, decl.Declarators[0].Name)
			assert.Empty(t, cmp.Diff(test.want, decl.Declarators[0].Type))
		})
	}
}

func TestLowerReturnTypes(t *testing.T) {
	t.Parallel()

	// Integer keywords only set the type when nothing more specific is named.
	tests := []struct {
		text string
		want ast.DataType
	}{
		{"unsigned char f(){}", ast.Char},
		{"char unsigned f(){}", ast.Char},
		{"long double f(){}", ast.Double},
		{"unsigned f(){}", ast.Int},
		{"const long long f(){}", ast.Int},
		{"static struct S *f(){}", &ast.Pointer{Elem: &ast.Struct{Name: "S"}}},
		{"void f(){}", ast.Void},
	}

	for _, test := range tests {
		t.Run(test.text, func(t *testing.T) {
			t.Parallel()

			unit, _ := lower(t, test.text)
			require.Len(t, unit.Functions, 1)
			fn, ok := unit.Functions[0].(*ast.Function)
			require.True(t, ok)
			assert.Equal(t, "f", fn.Name)
			if diff := cmp.Diff(test.want, fn.ReturnType, ignoreSpans); diff != "" {
				t.Errorf("return type mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLowerStatements(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, `
void f(int n) {
    for (int i = 0; i < n; i++)
        if (i) continue; else break;
    while (n) n--;
    do { n += 2; } while (n < 10);
    switch (n) {
    case 1: goto done;
    default: ;
    }
done:
    return;
}`)
	assert.Empty(t, r.Diagnostics)

	f := unit.Func("f")
	require.NotNil(t, f)
	n, i := &ast.Ident{Name: "n"}, &ast.Ident{Name: "i"}
	want := &ast.Compound{Items: []ast.Stmt{
		&ast.For{
			Init: &ast.DeclStmt{Decl: &ast.Declaration{
				Base:        ast.Int,
				Declarators: []*ast.Declarator{{Name: "i", Type: ast.Int, Init: integer("0")}},
			}},
			Cond: &ast.Binary{Op: token.Lt, X: i, Y: n},
			Post: &ast.Postfix{Op: token.Inc, X: i},
			Body: &ast.If{Cond: i, Then: &ast.Continue{}, Else: &ast.Break{}},
		},
		&ast.While{Cond: n, Body: &ast.ExprStmt{X: &ast.Postfix{Op: token.Dec, X: n}}},
		&ast.DoWhile{
			Body: &ast.Compound{Items: []ast.Stmt{
				&ast.ExprStmt{X: &ast.Assign{Op: token.PlusEq, X: n, Y: integer("2")}},
			}},
			Cond: &ast.Binary{Op: token.Lt, X: n, Y: integer("10")},
		},
		&ast.Switch{Tag: n, Body: &ast.Compound{Items: []ast.Stmt{
			&ast.Case{Value: integer("1"), Body: &ast.Goto{Label: "done"}},
			&ast.Default{Body: &ast.ExprStmt{}},
		}}},
		&ast.Labeled{Label: "done", Body: &ast.Return{}},
	}}
	assert.Empty(t, cmp.Diff(want, f.Body, ignoreSpans))
}

func TestLowerExpressions(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, `int x = (char)a + b * -c, y = f(1, 2)[0].m, z = {1, [2] = 3, .w = s->v};`)
	assert.Empty(t, r.Diagnostics)
	require.Len(t, unit.Functions, 1)
	decl := unit.Functions[0].(*ast.Declaration)
	require.Len(t, decl.Declarators, 3)

	a, b, c := &ast.Ident{Name: "a"}, &ast.Ident{Name: "b"}, &ast.Ident{Name: "c"}
	want := []ast.Expr{
		&ast.Binary{
			Op: token.Plus,
			X:  &ast.Cast{Type: ast.Char, X: a},
			Y:  &ast.Binary{Op: token.Star, X: b, Y: &ast.Unary{Op: token.Minus, X: c}},
		},
		&ast.Member{
			X: &ast.Index{
				X:     &ast.Call{Func: &ast.Ident{Name: "f"}, Args: []ast.Expr{integer("1"), integer("2")}},
				Index: integer("0"),
			},
			Name: "m",
		},
		&ast.InitList{Elems: []ast.InitElem{
			{Value: integer("1")},
			{Designators: []ast.Designator{{Index: integer("2")}}, Value: integer("3")},
			{Designators: []ast.Designator{{Field: "w"}}, Value: &ast.Member{X: &ast.Ident{Name: "s"}, Name: "v", Arrow: true}},
		}},
	}
	for i, d := range decl.Declarators {
		assert.Empty(t, cmp.Diff(want[i], d.Init, ignoreSpans), d.Name)
	}
}

func TestLowerOldStyleDefinition(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "int f(a, b, c) int a; char *b; { return a; }")
	assert.Empty(t, r.Diagnostics)
	f := unit.Func("f")
	require.NotNil(t, f)
	assert.Empty(t, cmp.Diff([]ast.Param{
		{Name: "a", Type: ast.Int},
		{Name: "b", Type: &ast.Pointer{Elem: ast.Char}},
		{Name: "c", Type: ast.Int},
	}, f.Params))
}

func TestLowerImplicitInt(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "main() { return 0; }")
	assert.Equal(t, []string{ast.CodeImplicitInt}, codes(r))
	assert.Equal(t, "implicit-int", r.Diagnostics[0].Tag)
	main := unit.Func("main")
	require.NotNil(t, main)
	assert.Equal(t, ast.Int, main.ReturnType)

	unit, r = lower(t, "static inline int g(void) { return 1; }")
	assert.Empty(t, r.Diagnostics)
	assert.Equal(t, []token.Kind{token.KwStatic, token.KwInline}, unit.Func("g").Specifiers)
}

func TestLowerNotAFunction(t *testing.T) {
	t.Parallel()

	unit, r := lower(t, "int x { }")
	assert.Equal(t, []string{ast.CodeNotAFunction}, codes(r))
	assert.Empty(t, unit.Functions)
}

func TestLowerDeterministic(t *testing.T) {
	t.Parallel()

	text := `
typedef struct Point { int x, y; } Point;
static int dist(Point *p) { return p->x * p->x + p->y * p->y; }
int main(void) {
    Point p = { .x = 3, .y = 4 };
    _Static_assert(sizeof(int) >= 2, "int too small");
    return dist(&p) == 25 ? 0 : 1;
}`
	file := report.NewFile("test.c", text)
	r := new(report.Report)
	tree, err := parser.Parse(file, r)
	require.NoError(t, err)
	require.False(t, tree.ContainsErrors())

	first, err := ast.Lower(tree, r)
	require.NoError(t, err)
	second, err := ast.Lower(tree, r)
	require.NoError(t, err)
	assert.Empty(t, cmp.Diff(first, second))
	assert.Len(t, first.Functions, 3)
	assert.Empty(t, r.Diagnostics)

	typedef := first.Functions[0].(*ast.Declaration)
	assert.True(t, typedef.IsTypedef())
	assert.Equal(t, &ast.Struct{Name: "Point"}, typedef.Base)
}

func TestLowerMalformed(t *testing.T) {
	t.Parallel()

	tree := &cst.Tree{
		Kind: cst.TranslationUnit,
		Children: []cst.Child{cst.TreeChild(&cst.Tree{
			Kind:     cst.ExternDecl,
			Children: []cst.Child{cst.TreeChild(&cst.Tree{Kind: cst.FunctionDef})},
		})},
	}
	r := new(report.Report)
	unit, err := ast.Lower(tree, r)
	assert.Nil(t, unit)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ast.ErrMalformedTree))
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, report.ICE, r.Diagnostics[0].Level)
	assert.Equal(t, ast.CodeMalformedTree, r.Diagnostics[0].Code)

	_, err = ast.Lower(&cst.Tree{Kind: cst.Statement}, new(report.Report))
	assert.True(t, errors.Is(err, ast.ErrMalformedTree))
	_, err = ast.Lower(nil, new(report.Report))
	assert.True(t, errors.Is(err, ast.ErrMalformedTree))
}

func TestLiteralValues(t *testing.T) {
	t.Parallel()

	for text, want := range map[string]uint64{"0": 0, "42UL": 42, "0x1Fu": 31, "017": 15} {
		v, err := integer(text).Int()
		require.NoError(t, err, text)
		assert.Equal(t, want, v, text)
	}

	f, err := (&ast.Literal{Kind: ast.Floating, Text: "2.5f"}).Float()
	require.NoError(t, err)
	assert.InDelta(t, 2.5, f, 0)

	_, err = (&ast.Literal{Kind: ast.String, Text: `"x"`}).Int()
	assert.Error(t, err)
}

func TestDataTypeString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "char**", (&ast.Pointer{Elem: &ast.Pointer{Elem: ast.Char}}).String())
	assert.Equal(t, "int[4]", (&ast.Array{Elem: ast.Int, Len: length(4)}).String())
	assert.Equal(t, "(void(int))*", (&ast.Pointer{Elem: &ast.Func{Return: ast.Void, Params: []ast.DataType{ast.Int}}}).String())
	assert.Equal(t, "int(char*, ...)", (&ast.Func{Return: ast.Int, Params: []ast.DataType{&ast.Pointer{Elem: ast.Char}}, Variadic: true}).String())
	assert.Equal(t, "union U", (&ast.Struct{Name: "U", Union: true}).String())
}
