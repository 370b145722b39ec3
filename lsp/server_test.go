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

package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const uri = "file:///src/a.c"

func TestDiagnostics(t *testing.T) {
	t.Parallel()

	doc := analyze("a.c", "int x")
	diags := doc.diagnostics()
	require.Len(t, diags, 1)
	d := diags[0]
	assert.Equal(t, protocol.DiagnosticSeverityError, *d.Severity)
	assert.Equal(t, "E0002", d.Code.Value)
	assert.Equal(t, "rcc", *d.Source)
	assert.Equal(t, protocol.Position{Line: 0, Character: 5}, d.Range.Start)

	doc = analyze("a.c", "int qux(int x) {}")
	diags = doc.diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.DiagnosticSeverityWarning, *diags[0].Severity)
	assert.Contains(t, diags[0].Message, "non-void function does not return a value")
	assert.NotEmpty(t, diags[0].RelatedInformation)
}

func TestUTF16Columns(t *testing.T) {
	t.Parallel()

	// The emoji is four bytes but two UTF-16 code units.
	doc := analyze("a.c", "char *s = \"😀\"; int x")
	diags := doc.diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, protocol.Position{Line: 0, Character: 21}, diags[0].Range.Start)

	assert.Equal(t, 22, doc.offset(protocol.Position{Line: 0, Character: 20}))
	assert.Equal(t, 11, doc.offset(protocol.Position{Line: 0, Character: 11}))
	assert.Equal(t, 23, doc.offset(protocol.Position{Line: 0, Character: 99}))
	assert.Equal(t, 23, doc.offset(protocol.Position{Line: 7, Character: 0}))
}

func TestHover(t *testing.T) {
	t.Parallel()

	ls := NewServer("test")
	ls.update(uri, "int main(int argc, char **argv) { return argc; }")

	hover := func(character uint32) *protocol.Hover {
		h, err := ls.textDocumentHover(nil, &protocol.HoverParams{
			TextDocumentPositionParams: protocol.TextDocumentPositionParams{
				TextDocument: protocol.TextDocumentIdentifier{URI: uri},
				Position:     protocol.Position{Line: 0, Character: character},
			},
		})
		require.NoError(t, err)
		return h
	}

	h := hover(42)
	require.NotNil(t, h)
	content, ok := h.Contents.(protocol.MarkupContent)
	require.True(t, ok)
	assert.Contains(t, content.Value, "argc: int")
	assert.Contains(t, content.Value, "IDENTIFIER")
	assert.Contains(t, content.Value, "FunctionDef")
	assert.Equal(t, protocol.Range{
		Start: protocol.Position{Line: 0, Character: 41},
		End:   protocol.Position{Line: 0, Character: 45},
	}, *h.Range)

	content = hover(5).Contents.(protocol.MarkupContent)
	assert.Contains(t, content.Value, "main: int(int, char**)")

	assert.Nil(t, hover(3), "whitespace")
}

func TestDocumentSymbols(t *testing.T) {
	t.Parallel()

	ls := NewServer("test")
	ls.update(uri, "int g; int main(void) { return 0; } typedef int T; int f(int);")

	got, err := ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	require.NoError(t, err)
	symbols, ok := got.([]protocol.DocumentSymbol)
	require.True(t, ok)

	var names []string
	var kinds []protocol.SymbolKind
	for _, s := range symbols {
		names = append(names, s.Name)
		kinds = append(kinds, s.Kind)
	}
	assert.Equal(t, []string{"g", "main", "T", "f"}, names)
	assert.Equal(t, []protocol.SymbolKind{
		protocol.SymbolKindVariable,
		protocol.SymbolKindFunction,
		protocol.SymbolKindClass,
		protocol.SymbolKindFunction,
	}, kinds)
	assert.Equal(t, "int()", *symbols[1].Detail)

	got, err = ls.textDocumentDocumentSymbol(nil, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///elsewhere.c"},
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPublish(t *testing.T) {
	t.Parallel()

	var (
		method string
		params protocol.PublishDiagnosticsParams
	)
	notify := func(m string, p any) {
		method = m
		params = p.(protocol.PublishDiagnosticsParams)
	}

	publish(notify, uri, analyze("a.c", "int x"))
	assert.Equal(t, protocol.ServerTextDocumentPublishDiagnostics, method)
	assert.Equal(t, uri, params.URI)
	assert.Len(t, params.Diagnostics, 1)

	publish(notify, uri, nil)
	assert.NotNil(t, params.Diagnostics)
	assert.Empty(t, params.Diagnostics)
}

func TestURIToPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/src/a.c", uriToPath(uri))
	assert.Equal(t, "untitled:1", uriToPath("untitled:1"))
}
