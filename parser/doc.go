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

// Package parser implements a resilient recursive-descent parser for C.
//
// Grammar rules do not build trees directly. Instead they append open, close
// and advance events to a log, which is replayed into a [cst.Tree] once the
// whole input has been consumed. This lets a rule decide what kind a node is
// after seeing its contents, and lets binary operators adopt an operand that
// was already parsed.
//
// The parser never gives up on a file. Unexpected tokens are wrapped in
// error trees and missing ones are recorded as empty error trees, each with a
// diagnostic, and parsing continues. Every look at the upcoming tokens from a
// grammar rule burns fuel that is only replenished by consuming a token, so a
// rule that stops making progress is caught rather than looping forever.
//
// The grammar the parser accepts is documented in EBNF by [Grammar].
package parser
