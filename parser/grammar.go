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

package parser

import (
	_ "embed"
	"strings"
	"sync"

	"golang.org/x/exp/ebnf"
)

// GrammarStart is the start production of [Grammar].
const GrammarStart = "TranslationUnit"

//go:embed c.ebnf
var grammarSource string

var grammar = sync.OnceValues(func() (ebnf.Grammar, error) {
	g, err := ebnf.Parse("c.ebnf", strings.NewReader(grammarSource))
	if err != nil {
		return nil, err
	}
	if err := ebnf.Verify(g, GrammarStart); err != nil {
		return nil, err
	}
	return g, nil
})

// Grammar returns the syntax the parser accepts, as verified EBNF.
//
// Production names match [cst.Kind] names; a few additional productions
// such as AssignmentOperator factor out repeated alternatives.
func Grammar() (ebnf.Grammar, error) {
	return grammar()
}

// GrammarSource returns the EBNF text of [Grammar].
func GrammarSource() string {
	return grammarSource
}
