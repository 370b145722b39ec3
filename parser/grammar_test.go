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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulanski/rcc/cst"
)

func TestGrammar(t *testing.T) {
	t.Parallel()

	g, err := Grammar()
	require.NoError(t, err)
	require.Contains(t, g, GrammarStart)

	for _, kind := range cst.Kinds() {
		if kind == cst.ErrorTree {
			continue
		}
		assert.Contains(t, g, kind.String(), "no production for %v", kind)
	}
	assert.Contains(t, GrammarSource(), "TranslationUnit = { ExternDecl } .")
}
