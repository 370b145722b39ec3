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
	"slices"

	"github.com/tliron/commonlog"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

// Fuel is the number of lookahead queries the parser may make without
// consuming a token. Running out means a grammar rule is looping without
// making progress.
const Fuel = 256

type eventKind uint8

const (
	evOpen eventKind = iota
	evClose
	evAdvance
)

// event is a single entry of the parser's event log. buildTree replays the
// log to assemble the tree.
type event struct {
	kind eventKind
	tree cst.Kind   // evOpen only.
	span token.Span // evOpen only; provisional, recomputed by buildTree.
}

// markOpened is the index of an evOpen event that has not been closed yet.
type markOpened struct{ index int }

// markClosed is the index of an evOpen event whose node has been closed.
type markClosed struct{ index int }

// parser holds the state of one parse. It is not safe for concurrent use and
// is discarded once the tree is built.
type parser struct {
	file   *report.File
	report *report.Report
	log    commonlog.Logger

	tokens []token.Token // Always ends with EOF.
	pos    int
	fuel   int
	events []event

	depth, maxDepth int
	tooDeep         bool
}

// outOfFuel is the panic value used to unwind a stuck parse. It is recovered
// at the top of the parse and turned into [ErrOutOfFuel].
type outOfFuel struct{ at token.Token }

func newParser(file *report.File, stream *token.Stream, r *report.Report, opts options) *parser {
	return &parser{
		file:     file,
		report:   r,
		log:      opts.logger,
		tokens:   stream.Tokens(),
		fuel:     Fuel,
		maxDepth: opts.maxDepth,
	}
}

// current returns the token under the cursor.
func (p *parser) current() token.Token {
	return p.tokens[min(p.pos, len(p.tokens)-1)]
}

// prevEnd returns the end offset of the last consumed token.
func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return p.current().Span.Start
	}
	return p.tokens[p.pos-1].Span.End
}

func (p *parser) span(s token.Span) report.Span {
	return p.file.Span(s.Start, s.End)
}

// open starts a new node at the cursor. Its kind is decided when it is
// closed. A node that never consumes anything sits just past the previous
// token.
func (p *parser) open() markOpened {
	m := markOpened{index: len(p.events)}
	p.events = append(p.events, event{
		kind: evOpen,
		tree: cst.ErrorTree,
		span: token.Span{Start: p.prevEnd()},
	})
	return m
}

// openBefore starts a new node that will become the parent of the already
// closed node at m.
func (p *parser) openBefore(m markClosed) markOpened {
	p.events = slices.Insert(p.events, m.index, event{
		kind: evOpen,
		tree: cst.ErrorTree,
		span: p.events[m.index].span,
	})
	return markOpened{index: m.index}
}

// close finishes the node at m, giving it the specified kind.
func (p *parser) close(m markOpened, kind cst.Kind) markClosed {
	ev := &p.events[m.index]
	ev.tree = kind
	ev.span.End = max(ev.span.Start, p.prevEnd())
	p.events = append(p.events, event{kind: evClose})
	return markClosed(m)
}

// advance consumes the token under the cursor and refuels the parser.
func (p *parser) advance() {
	if p.eof() {
		p.report.ICE(errAdvancePastEOF{at: p.current()})
		return
	}
	p.fuel = Fuel
	p.events = append(p.events, event{kind: evAdvance})
	p.pos++
}

// advanceWithError wraps the current token in an [cst.ErrorTree] and reports
// err. At end of file the error tree is empty.
func (p *parser) advanceWithError(err report.Diagnose) markClosed {
	m := p.open()
	if tok := p.current(); tok.Kind == token.Unknown {
		err = errUnknownToken{span: p.span(tok.Span), text: tok.Lexeme}
	}
	p.report.Error(err)
	if !p.eof() {
		p.advance()
	}
	return p.close(m, cst.ErrorTree)
}

// missing reports err and records an empty [cst.ErrorTree] in place of
// whatever was expected, without consuming anything.
func (p *parser) missing(err report.Diagnose) markClosed {
	m := p.open()
	p.report.Error(err)
	return p.close(m, cst.ErrorTree)
}

// nth returns the kind of the token k places past the cursor. Every call
// burns one unit of fuel.
func (p *parser) nth(k int) token.Kind {
	if p.fuel == 0 {
		panic(outOfFuel{at: p.current()})
	}
	p.fuel--
	if i := p.pos + k; i < len(p.tokens) {
		return p.tokens[i].Kind
	}
	return token.EOF
}

// peek is nth without the fuel cost, for scans that are bounded by
// lookaheadLimit or end of file.
func (p *parser) peek(k int) token.Kind {
	if i := p.pos + k; i < len(p.tokens) {
		return p.tokens[i].Kind
	}
	return token.EOF
}

// at returns whether the current token has the given kind.
func (p *parser) at(kind token.Kind) bool {
	return p.nth(0) == kind
}

// atAny returns whether the current token is in set.
func (p *parser) atAny(set token.Set) bool {
	return set.Has(p.nth(0))
}

// eof returns whether every real token has been consumed.
func (p *parser) eof() bool {
	return p.pos >= len(p.tokens)-1
}

// eat consumes the current token if it has the given kind.
func (p *parser) eat(kind token.Kind) bool {
	if p.at(kind) {
		p.advance()
		return true
	}
	return false
}

// expect consumes a token of the given kind, or reports it missing. The
// cursor never moves on failure; enclosing rules synchronize instead.
func (p *parser) expect(kind token.Kind, where string) bool {
	if p.eat(kind) {
		return true
	}
	p.missing(errExpected{
		at:      p.file.Span(p.prevEnd(), p.prevEnd()),
		found:   p.current(),
		foundAt: p.span(p.current().Span),
		want:    token.NewSet(kind),
		where:   where,
	})
	return false
}

// enter records entry into a nesting rule. When the nesting ceiling is hit,
// the next token tree is skipped as an error and enter returns false along
// with the error tree. Every call must be paired with a call to leave.
func (p *parser) enter(rule cst.Kind) (markClosed, bool) {
	p.depth++
	if p.depth <= p.maxDepth {
		if p.log != nil && p.log.AllowLevel(commonlog.Debug) {
			p.log.Debugf("%*s%v at %v", p.depth, "", rule, p.current())
		}
		return markClosed{}, true
	}
	if !p.tooDeep {
		p.tooDeep = true
		p.report.Error(errTooDeep{at: p.span(p.current().Span), limit: p.maxDepth})
	}
	return p.skipTokenTree(), false
}

func (p *parser) leave() {
	p.depth--
}

// skipTokenTree consumes a single token, or a whole bracketed group if the
// cursor is at an opening bracket, into an error tree. Closing brackets and
// semicolons are left for the enclosing rule.
func (p *parser) skipTokenTree() markClosed {
	m := p.open()
	var depth int
	for !p.eof() {
		switch p.nth(0) {
		case token.LParen, token.LBracket, token.LBrace:
			depth++
		case token.RParen, token.RBracket, token.RBrace:
			if depth == 0 {
				return p.close(m, cst.ErrorTree)
			}
			depth--
		case token.Semicolon:
			if depth == 0 {
				return p.close(m, cst.ErrorTree)
			}
		}
		p.advance()
		if depth == 0 {
			break
		}
	}
	return p.close(m, cst.ErrorTree)
}

// skipWhile extends the error tree at skipped over the token trees that
// follow it, for as long as more reports true.
func (p *parser) skipWhile(skipped markClosed, more func() bool) markClosed {
	if p.eof() || !more() {
		return skipped
	}
	m := p.openBefore(skipped)
	for !p.eof() && more() {
		var depth int
		for !p.eof() {
			switch p.nth(0) {
			case token.LParen, token.LBracket, token.LBrace:
				depth++
			case token.RParen, token.RBracket, token.RBrace:
				depth--
			}
			p.advance()
			if depth <= 0 {
				break
			}
		}
	}
	return p.close(m, cst.ErrorTree)
}

// guard forces progress in a list loop whose body did not move the cursor
// past before.
func (p *parser) guard(before int, where string) {
	if p.pos == before && !p.eof() {
		p.advanceWithError(errUnexpected{
			at:    p.span(p.current().Span),
			got:   p.current(),
			where: where,
		})
	}
}
