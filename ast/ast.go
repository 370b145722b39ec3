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
	"iter"
	"slices"

	"github.com/pulanski/rcc/token"
)

// TranslationUnit is the lowered form of one source file.
type TranslationUnit struct {
	// Every well-formed external declaration, in source order. Despite the
	// name, this includes declarations as well as function definitions.
	Functions []ExternDecl
}

// Funcs returns an iterator over the function definitions in u.
func (u *TranslationUnit) Funcs() iter.Seq[*Function] {
	return func(yield func(*Function) bool) {
		for _, decl := range u.Functions {
			if fn, ok := decl.(*Function); ok && !yield(fn) {
				return
			}
		}
	}
}

// Func returns the function definition with the given name, or nil.
func (u *TranslationUnit) Func(name string) *Function {
	for fn := range u.Funcs() {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

// ExternDecl is a declaration at file scope: a *[Function], *[Declaration]
// or *[StaticAssert]. The latter two also appear in blocks, inside a
// [DeclStmt].
type ExternDecl interface {
	externDecl()
}

// Function is a function definition.
type Function struct {
	Name       string
	Params     []Param
	Variadic   bool
	ReturnType DataType
	Body       *Compound

	// Storage classes and function specifiers, such as `static` and
	// `inline`, in source order.
	Specifiers []token.Kind

	Span token.Span
}

// Type returns the function type of fn.
func (fn *Function) Type() *Func {
	t := &Func{Return: fn.ReturnType, Variadic: fn.Variadic}
	for _, p := range fn.Params {
		t.Params = append(t.Params, p.Type)
	}
	return t
}

// Param is a function parameter. Name is empty for unnamed parameters.
type Param struct {
	Name string
	Type DataType
}

// Declaration declares one or more names sharing the same specifiers.
type Declaration struct {
	Specifiers  []token.Kind
	Base        DataType
	Declarators []*Declarator

	Span token.Span
}

// IsTypedef returns whether d declares type names rather than objects.
func (d *Declaration) IsTypedef() bool {
	return slices.Contains(d.Specifiers, token.KwTypedef)
}

// Declarator is a single name introduced by a [Declaration], with its full
// type and optional initializer.
type Declarator struct {
	Name string
	Type DataType
	Init Expr // May be nil.
}

// StaticAssert is a `_Static_assert` declaration.
type StaticAssert struct {
	Cond    Expr
	Message string // The literal's source text, quotes included. May be empty.

	Span token.Span
}

func (*Function) externDecl()     {}
func (*Declaration) externDecl()  {}
func (*StaticAssert) externDecl() {}
