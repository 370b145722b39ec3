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

// Stmt is a statement.
type Stmt interface {
	stmt()
}

// Compound is a braced block.
type Compound struct {
	Items []Stmt
}

// DeclStmt is a declaration appearing among the items of a block, or as the
// initializer of a for loop. Decl is a *[Declaration] or *[StaticAssert].
type DeclStmt struct {
	Decl ExternDecl
}

// ExprStmt is an expression evaluated for its effects. X is nil for the
// empty statement.
type ExprStmt struct {
	X Expr
}

// Return is a return statement. Value is nil for a bare `return;`.
type Return struct {
	Value Expr
}

type (
	If struct {
		Cond       Expr
		Then, Else Stmt // Else may be nil.
	}

	Switch struct {
		Tag  Expr
		Body Stmt
	}

	While struct {
		Cond Expr
		Body Stmt
	}

	DoWhile struct {
		Body Stmt
		Cond Expr
	}

	// For is a for loop. Init is nil, a *[DeclStmt] or an *[ExprStmt]; Cond
	// and Post may be nil.
	For struct {
		Init       Stmt
		Cond, Post Expr
		Body       Stmt
	}

	Break    struct{}
	Continue struct{}

	Goto struct {
		Label string
	}

	// Labeled is a statement prefixed with a goto label.
	Labeled struct {
		Label string
		Body  Stmt
	}

	Case struct {
		Value Expr
		Body  Stmt
	}

	Default struct {
		Body Stmt
	}
)

func (*Compound) stmt() {}
func (*DeclStmt) stmt() {}
func (*ExprStmt) stmt() {}
func (*Return) stmt()   {}
func (*If) stmt()       {}
func (*Switch) stmt()   {}
func (*While) stmt()    {}
func (*DoWhile) stmt()  {}
func (*For) stmt()      {}
func (*Break) stmt()    {}
func (*Continue) stmt() {}
func (*Goto) stmt()     {}
func (*Labeled) stmt()  {}
func (*Case) stmt()     {}
func (*Default) stmt()  {}
