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
	"fmt"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/token"
)

// buildTree replays the event log into a tree.
//
// The final close event is held back so the root stays on the stack. Each
// node's span is recomputed from its children as it is closed, so that
// spans always cover exactly the tokens below them.
func buildTree(p *parser) (*cst.Tree, error) {
	events := p.events
	if len(events) == 0 || events[len(events)-1].kind != evClose {
		return nil, errBuild{reason: "event log does not end by closing the root"}
	}
	events = events[:len(events)-1]

	var (
		stack []*cst.Tree
		next  int
	)
	for i, ev := range events {
		switch ev.kind {
		case evOpen:
			stack = append(stack, &cst.Tree{
				Kind: ev.tree,
				Span: token.Span{Start: ev.span.Start, End: ev.span.Start},
			})
		case evClose:
			if len(stack) < 2 {
				return nil, errBuild{reason: fmt.Sprintf("unbalanced close at event %d", i)}
			}
			tree := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			repairSpan(tree)
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, cst.TreeChild(tree))
		case evAdvance:
			if len(stack) == 0 {
				return nil, errBuild{reason: fmt.Sprintf("token consumed outside any node at event %d", i)}
			}
			if next >= len(p.tokens)-1 {
				return nil, errBuild{reason: fmt.Sprintf("event %d consumes past end of file", i)}
			}
			top := stack[len(stack)-1]
			top.Children = append(top.Children, cst.TokenChild(p.tokens[next]))
			next++
		}
	}

	switch {
	case len(stack) != 1:
		return nil, errBuild{reason: fmt.Sprintf("%d nodes left open", len(stack))}
	case next != len(p.tokens)-1:
		return nil, errBuild{reason: fmt.Sprintf("%d tokens never consumed", len(p.tokens)-1-next)}
	}
	root := stack[0]
	repairSpan(root)
	return root, nil
}

// repairSpan sets t's span to the union of its children's spans. Trees
// without children keep their zero-width position.
func repairSpan(t *cst.Tree) {
	if len(t.Children) == 0 {
		return
	}
	span := t.Children[0].Span()
	for _, c := range t.Children[1:] {
		s := c.Span()
		span.Start = min(span.Start, s.Start)
		span.End = max(span.End, s.End)
	}
	t.Span = span
}
