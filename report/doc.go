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

// Package report provides a robust diagnostics framework. It offers
// diagnostic construction, source file line indexing, and rendering to a
// terminal in both a compact and a rich snippet-based format.
//
// A [Report] is a plain accumulator: the parser and the AST lowering pass
// push diagnostics onto it, and nothing they do depends on what it holds.
package report
