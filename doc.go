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

// Package rcc is the entry point for compiling C source files with the
// resilient front end. A compilation has these phases:
//
//  1. Tokenize the source.
//     Also see: lexer.Lex
//  2. Parse the tokens into a concrete syntax tree, recovering from errors.
//     Also see: parser.Parse
//  3. Lower the tree into an abstract syntax tree.
//     Also see: ast.Lower
//
// This package runs all of the phases for a set of files, compiling them in
// parallel.
//
// # Resolvers
//
// A Resolver is how the compiler locates the files to compile. The
// SourceResolver reads them from disk, optionally searching a list of
// include paths; ResolverFunc and CompositeResolver build others.
//
// # Compiler
//
// A Compiler accepts a list of file names and produces a Result for each:
// its syntax tree, its AST and its diagnostics. Only the Resolver field is
// required:
//
//	compiler := rcc.Compiler{
//	    Resolver: &rcc.SourceResolver{},
//	}
//
// This minimal Compiler uses one goroutine per CPU core and fails at the
// first error. Supply a Reporter to keep going and collect every
// diagnostic.
package rcc
