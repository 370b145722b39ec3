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
	"strconv"
	"strings"

	"github.com/pulanski/rcc/token"
)

// Expr is an expression.
type Expr interface {
	expr()
}

// LiteralKind distinguishes the kinds of [Literal].
type LiteralKind int8

const (
	Integer LiteralKind = iota
	Floating
	Character
	String
)

func (k LiteralKind) String() string {
	switch k {
	case Integer:
		return "integer"
	case Floating:
		return "floating"
	case Character:
		return "character"
	case String:
		return "string"
	default:
		return fmt.Sprintf("ast.LiteralKind(%d)", int(k))
	}
}

// Literal is a constant or string literal, kept as written. Adjacent string
// literals are joined by a single space.
type Literal struct {
	Kind LiteralKind
	Text string
}

// Int parses an integer literal, ignoring any suffix. Octal and hexadecimal
// forms are supported.
func (l *Literal) Int() (uint64, error) {
	if l.Kind != Integer {
		return 0, fmt.Errorf("%v literal %s is not an integer", l.Kind, l.Text)
	}
	text := strings.TrimRight(l.Text, "uUlL")
	return strconv.ParseUint(text, 0, 64)
}

// Float parses a floating literal, ignoring any suffix.
func (l *Literal) Float() (float64, error) {
	switch l.Kind {
	case Integer:
		v, err := l.Int()
		return float64(v), err
	case Floating:
		return strconv.ParseFloat(strings.TrimRight(l.Text, "fFlL"), 64)
	default:
		return 0, fmt.Errorf("%v literal %s is not a number", l.Kind, l.Text)
	}
}

type (
	Ident struct {
		Name string
	}

	// Binary is a binary operation, including the comma operator.
	Binary struct {
		Op   token.Kind
		X, Y Expr
	}

	// Unary is a prefix operation. `sizeof x` is a Unary with Op
	// [token.KwSizeof].
	Unary struct {
		Op token.Kind
		X  Expr
	}

	// Postfix is a postfix increment or decrement.
	Postfix struct {
		Op token.Kind
		X  Expr
	}

	// Assign is a simple or compound assignment.
	Assign struct {
		Op   token.Kind
		X, Y Expr
	}

	Cond struct {
		Cond, Then, Else Expr
	}

	Cast struct {
		Type DataType
		X    Expr
	}

	Call struct {
		Func Expr
		Args []Expr
	}

	Index struct {
		X, Index Expr
	}

	// Member is `X.Name`, or `X->Name` when Arrow is set.
	Member struct {
		X     Expr
		Name  string
		Arrow bool
	}

	SizeofType struct {
		Type DataType
	}

	AlignofType struct {
		Type DataType
	}

	// Generic is a `_Generic` selection.
	Generic struct {
		Control Expr
		Assocs  []GenericAssoc
	}

	// InitList is a braced initializer.
	InitList struct {
		Elems []InitElem
	}
)

// GenericAssoc is one association of a [Generic]. Type is nil for the
// default association.
type GenericAssoc struct {
	Type  DataType
	Value Expr
}

// InitElem is one element of an [InitList].
type InitElem struct {
	Designators []Designator
	Value       Expr
}

// Designator selects an array element by Index, or a member by Field.
type Designator struct {
	Index Expr
	Field string
}

func (*Literal) expr()     {}
func (*Ident) expr()       {}
func (*Binary) expr()      {}
func (*Unary) expr()       {}
func (*Postfix) expr()     {}
func (*Assign) expr()      {}
func (*Cond) expr()        {}
func (*Cast) expr()        {}
func (*Call) expr()        {}
func (*Index) expr()       {}
func (*Member) expr()      {}
func (*SizeofType) expr()  {}
func (*AlignofType) expr() {}
func (*Generic) expr()     {}
func (*InitList) expr()    {}
