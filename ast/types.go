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
	"fmt"
	"strings"
)

// DataType is the type of a declaration, parameter or cast.
//
// It is one of [Primitive], *[Pointer], *[Array], *[Struct], *[Enum],
// *[Func] or *[Named].
type DataType interface {
	fmt.Stringer
	isDataType()
}

// Primitive is a built-in arithmetic type, or void.
//
// Integer types of every width and signedness lower to Int.
type Primitive int8

const (
	Unknown Primitive = iota
	Void
	Char
	Int
	Float
	Double
)

var primitiveNames = [...]string{
	Unknown: "<unknown>",
	Void:    "void",
	Char:    "char",
	Int:     "int",
	Float:   "float",
	Double:  "double",
}

func (p Primitive) String() string {
	if int(p) < len(primitiveNames) {
		return primitiveNames[p]
	}
	return fmt.Sprintf("ast.Primitive(%d)", int(p))
}

// Pointer is a pointer to Elem.
type Pointer struct {
	Elem DataType
}

func (p *Pointer) String() string {
	switch p.Elem.(type) {
	case *Func, *Array:
		return "(" + p.Elem.String() + ")*"
	default:
		return p.Elem.String() + "*"
	}
}

// Array is an array of Elem. Len is nil when the bound is absent or is not
// an integer literal.
type Array struct {
	Elem DataType
	Len  *int64
}

func (a *Array) String() string {
	if a.Len == nil {
		return a.Elem.String() + "[]"
	}
	return fmt.Sprintf("%v[%d]", a.Elem, *a.Len)
}

// Struct is a struct or union type, named by its tag. Anonymous types have
// an empty Name.
type Struct struct {
	Name  string
	Union bool
}

func (s *Struct) String() string {
	kw := "struct"
	if s.Union {
		kw = "union"
	}
	if s.Name == "" {
		return kw + " <anonymous>"
	}
	return kw + " " + s.Name
}

// Enum is an enumerated type, named by its tag.
type Enum struct {
	Name string
}

func (e *Enum) String() string {
	if e.Name == "" {
		return "enum <anonymous>"
	}
	return "enum " + e.Name
}

// Func is a function type. A function declared with an empty parameter list
// has no Params and is not Variadic.
type Func struct {
	Return   DataType
	Params   []DataType
	Variadic bool
}

func (f *Func) String() string {
	var b strings.Builder
	b.WriteString(f.Return.String())
	b.WriteByte('(')
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	if f.Variadic {
		if len(f.Params) > 0 {
			b.WriteString(", ")
		}
		b.WriteString("...")
	}
	b.WriteByte(')')
	return b.String()
}

// Named is a type referred to by a typedef name. Typedefs are not resolved.
type Named struct {
	Name string
}

func (n *Named) String() string {
	return n.Name
}

func (Primitive) isDataType() {}
func (*Pointer) isDataType()  {}
func (*Array) isDataType()    {}
func (*Struct) isDataType()   {}
func (*Enum) isDataType()     {}
func (*Func) isDataType()     {}
func (*Named) isDataType()    {}

// IsVoid returns whether t is void.
func IsVoid(t DataType) bool {
	p, ok := t.(Primitive)
	return ok && p == Void
}
