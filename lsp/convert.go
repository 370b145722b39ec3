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
	"strings"
	"unicode/utf16"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// publish sends doc's diagnostics for uri. A nil doc clears them.
func publish(notify glsp.NotifyFunc, uri protocol.DocumentUri, doc *document) {
	diagnostics := []protocol.Diagnostic{}
	if doc != nil {
		diagnostics = doc.diagnostics()
	}
	notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func (doc *document) diagnostics() []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(doc.report.Diagnostics))
	for i := range doc.report.Diagnostics {
		d := &doc.report.Diagnostics[i]
		out = append(out, doc.diagnostic(d))
	}
	return out
}

func (doc *document) diagnostic(d *report.Diagnostic) protocol.Diagnostic {
	primary := d.Primary()
	message := d.Message()
	if primary.Message != "" && primary.Message != message {
		message += ": " + primary.Message
	}
	for _, note := range d.Notes {
		message += "\nnote: " + note
	}
	for _, help := range d.Help {
		message += "\nhelp: " + help
	}

	out := protocol.Diagnostic{
		Range:    doc.rangeOf(token.Span{Start: primary.Start.Offset, End: primary.End.Offset}),
		Severity: ptr(severity(d.Level)),
		Source:   ptr(lsName),
		Message:  message,
	}
	if d.Code != "" {
		out.Code = &protocol.IntegerOrString{Value: d.Code}
	}
	for _, a := range d.Annotations {
		if a.Primary || a.Message == "" {
			continue
		}
		out.RelatedInformation = append(out.RelatedInformation, protocol.DiagnosticRelatedInformation{
			Location: protocol.Location{
				URI:   "file://" + a.File.Path(),
				Range: doc.rangeOf(token.Span{Start: a.Start.Offset, End: a.End.Offset}),
			},
			Message: a.Message,
		})
	}
	return out
}

func severity(level report.Level) protocol.DiagnosticSeverity {
	switch level {
	case report.Warning:
		return protocol.DiagnosticSeverityWarning
	case report.Remark:
		return protocol.DiagnosticSeverityInformation
	default:
		return protocol.DiagnosticSeverityError
	}
}

// rangeOf converts a byte span to an LSP range, whose columns count UTF-16
// code units.
func (doc *document) rangeOf(span token.Span) protocol.Range {
	return protocol.Range{
		Start: doc.position(span.Start),
		End:   doc.position(span.End),
	}
}

func (doc *document) position(offset int) protocol.Position {
	loc := doc.file.Location(offset, report.UTF16Length)
	return protocol.Position{
		Line:      protocol.UInteger(loc.Line - 1),
		Character: protocol.UInteger(loc.Column - 1),
	}
}

// offset converts an LSP position to a byte offset, clamping to the end of
// the line or file. A position inside a surrogate pair moves to the next
// rune.
func (doc *document) offset(pos protocol.Position) int {
	line := int(pos.Line) + 1
	if line > doc.file.Lines() {
		return len(doc.file.Text())
	}
	start, end := doc.file.LineOffsets(line)
	text := strings.TrimSuffix(doc.file.Text()[start:end], "\n")

	units := int(pos.Character)
	for i, r := range text {
		if units <= 0 {
			return start + i
		}
		n := utf16.RuneLen(r)
		if n < 0 {
			n = 1
		}
		units -= n
	}
	return start + len(text)
}
