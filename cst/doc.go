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

// Package cst defines the concrete syntax tree produced by the parser.
//
// Every token of the input, including tokens consumed during error recovery,
// appears exactly once in the tree. Recovery wraps the offending tokens in
// [ErrorTree] nodes, so callers should check [Tree.ContainsErrors] before
// trusting a subtree.
package cst
