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

// Package ast defines a minimal abstract syntax tree for C, and the lowering
// that produces it from a concrete syntax tree.
//
// The root of the tree is a *TranslationUnit, holding one ExternDecl per
// well-formed external declaration of the source file. External declarations
// whose concrete syntax contains errors are left out: the parser has already
// diagnosed them, and lowering only looks at trees it can trust.
//
// The tree is made of four families of nodes, each a closed sum type behind
// an interface: ExternDecl, Stmt, Expr and DataType. Types are computed the
// way C reads declarators, inside out, so that `int *a[3]` is an array of
// three pointers and `int (*a)[3]` a pointer to an array.
//
// This package defines several interfaces. User code should not implement
// any of them; consumers switch over the concrete types defined here.
//
// Lowering never panics on a tree the parser produced. A shape the parser
// cannot produce is reported as an internal compiler error, and [Lower]
// returns an error wrapping [ErrMalformedTree].
package ast
