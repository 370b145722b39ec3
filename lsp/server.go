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

// Package lsp serves rcc's diagnostics, hovers and document symbols over
// the Language Server Protocol.
package lsp

import (
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
	"github.com/tliron/glsp/server"

	"github.com/pulanski/rcc/ast"
	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/parser"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

const lsName = "rcc"

// Server is a language server for C files. Every open document is reparsed
// in full on each change.
type Server struct {
	handler protocol.Handler
	server  *server.Server
	version string
	options []parser.Option
	log     commonlog.Logger

	mu   sync.Mutex
	docs map[protocol.DocumentUri]*document
}

// document is the analysis of one open file.
type document struct {
	file   *report.File
	tree   *cst.Tree
	index  *cst.Index
	unit   *ast.TranslationUnit
	report *report.Report
	types  map[string]ast.DataType
}

// NewServer creates a server; opts configure the parser.
func NewServer(version string, opts ...parser.Option) *Server {
	ls := &Server{
		version: version,
		options: opts,
		log:     commonlog.GetLogger("rcc.lsp"),
		docs:    map[protocol.DocumentUri]*document{},
	}

	ls.handler = protocol.Handler{
		Initialize:                 ls.initialize,
		Initialized:                ls.initialized,
		Shutdown:                   ls.shutdown,
		SetTrace:                   ls.setTrace,
		TextDocumentDidOpen:        ls.textDocumentDidOpen,
		TextDocumentDidChange:      ls.textDocumentDidChange,
		TextDocumentDidClose:       ls.textDocumentDidClose,
		TextDocumentDidSave:        ls.textDocumentDidSave,
		TextDocumentHover:          ls.textDocumentHover,
		TextDocumentDocumentSymbol: ls.textDocumentDocumentSymbol,
	}

	ls.server = server.NewServer(&ls.handler, lsName, false)

	return ls
}

func (ls *Server) RunStdio() error {
	return ls.server.RunStdio()
}

func (ls *Server) initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	capabilities := ls.handler.CreateServerCapabilities()

	capabilities.TextDocumentSync = &protocol.TextDocumentSyncOptions{
		OpenClose: boolPtr(true),
		Change:    ptr(protocol.TextDocumentSyncKindFull),
		Save: &protocol.SaveOptions{
			IncludeText: boolPtr(true),
		},
	}

	return protocol.InitializeResult{
		Capabilities: capabilities,
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    lsName,
			Version: &ls.version,
		},
	}, nil
}

func (ls *Server) initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

func (ls *Server) shutdown(ctx *glsp.Context) error {
	return nil
}

func (ls *Server) setTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	protocol.SetTraceValue(params.Value)
	return nil
}

func (ls *Server) textDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	doc := ls.update(params.TextDocument.URI, params.TextDocument.Text)
	publish(ctx.Notify, params.TextDocument.URI, doc)
	return nil
}

func (ls *Server) textDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	change := params.ContentChanges[len(params.ContentChanges)-1]
	whole, ok := change.(protocol.TextDocumentContentChangeEventWhole)
	if !ok {
		return fmt.Errorf("lsp: incremental change to %s; only full sync is supported", params.TextDocument.URI)
	}
	doc := ls.update(params.TextDocument.URI, whole.Text)
	publish(ctx.Notify, params.TextDocument.URI, doc)
	return nil
}

func (ls *Server) textDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	ls.mu.Lock()
	delete(ls.docs, params.TextDocument.URI)
	ls.mu.Unlock()
	publish(ctx.Notify, params.TextDocument.URI, nil)
	return nil
}

func (ls *Server) textDocumentDidSave(ctx *glsp.Context, params *protocol.DidSaveTextDocumentParams) error {
	if params.Text == nil {
		return nil
	}
	doc := ls.update(params.TextDocument.URI, *params.Text)
	publish(ctx.Notify, params.TextDocument.URI, doc)
	return nil
}

func (ls *Server) textDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc := ls.get(params.TextDocument.URI)
	if doc == nil {
		return nil, nil
	}
	offset := doc.offset(params.Position)
	tok := doc.index.TokenAt(offset)
	if tok == nil {
		return nil, nil
	}

	var b strings.Builder
	if typ, ok := doc.types[tok.Lexeme]; ok && tok.Kind == token.Identifier {
		fmt.Fprintf(&b, "```c\n%s: %v\n```\n\n", tok.Lexeme, typ)
	}
	b.WriteString(tok.Kind.Name())
	for _, t := range doc.index.Path(offset) {
		fmt.Fprintf(&b, " < %v", t.Kind)
	}

	r := doc.rangeOf(tok.Span)
	return &protocol.Hover{
		Contents: protocol.MarkupContent{Kind: protocol.MarkupKindMarkdown, Value: b.String()},
		Range:    &r,
	}, nil
}

func (ls *Server) textDocumentDocumentSymbol(ctx *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
	doc := ls.get(params.TextDocument.URI)
	if doc == nil || doc.unit == nil {
		return nil, nil
	}
	return doc.symbols(), nil
}

// update reanalyzes the document at uri.
func (ls *Server) update(uri protocol.DocumentUri, text string) *document {
	doc := analyze(uriToPath(uri), text, ls.options...)
	ls.log.Debugf("analyzed %s: %d diagnostics", uri, len(doc.report.Diagnostics))

	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.docs[uri] = doc
	return doc
}

func (ls *Server) get(uri protocol.DocumentUri) *document {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.docs[uri]
}

// analyze parses and lowers one file. A parser failure leaves the document
// with only its diagnostics.
func analyze(path, text string, opts ...parser.Option) *document {
	doc := &document{
		file:   report.NewFile(path, text),
		report: new(report.Report),
		types:  map[string]ast.DataType{},
	}
	tree, err := parser.Parse(doc.file, doc.report, opts...)
	if err != nil {
		tree = &cst.Tree{Kind: cst.TranslationUnit}
	}
	doc.tree = tree
	doc.index = cst.NewIndex(tree)

	if err == nil {
		doc.unit, _ = ast.Lower(tree, doc.report, ast.WithFile(doc.file))
	}
	if doc.unit != nil {
		for _, decl := range doc.unit.Functions {
			switch decl := decl.(type) {
			case *ast.Function:
				doc.types[decl.Name] = decl.Type()
				for _, p := range decl.Params {
					doc.types[p.Name] = p.Type
				}
			case *ast.Declaration:
				for _, d := range decl.Declarators {
					doc.types[d.Name] = d.Type
				}
			}
		}
	}
	doc.report.Sort()
	return doc
}

func (doc *document) symbols() []protocol.DocumentSymbol {
	var out []protocol.DocumentSymbol
	for _, decl := range doc.unit.Functions {
		switch decl := decl.(type) {
		case *ast.Function:
			r := doc.rangeOf(decl.Span)
			out = append(out, protocol.DocumentSymbol{
				Name:           decl.Name,
				Detail:         ptr(decl.Type().String()),
				Kind:           protocol.SymbolKindFunction,
				Range:          r,
				SelectionRange: r,
			})
		case *ast.Declaration:
			r := doc.rangeOf(decl.Span)
			for _, d := range decl.Declarators {
				kind := protocol.SymbolKindVariable
				if _, ok := d.Type.(*ast.Func); ok {
					kind = protocol.SymbolKindFunction
				}
				if decl.IsTypedef() {
					kind = protocol.SymbolKindClass
				}
				out = append(out, protocol.DocumentSymbol{
					Name:           d.Name,
					Detail:         ptr(d.Type.String()),
					Kind:           kind,
					Range:          r,
					SelectionRange: r,
				})
			}
		}
	}
	return out
}

func uriToPath(uri protocol.DocumentUri) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

func ptr[T any](v T) *T {
	return &v
}

func boolPtr(b bool) *bool {
	return &b
}
