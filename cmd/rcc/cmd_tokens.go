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

package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pulanski/rcc/lexer"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/token"
)

func (a *app) newTokensCmd() *cobra.Command {
	var trivia bool
	cmd := &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			var toks []token.Token
			if trivia {
				toks = lexer.Scan(string(text))
			} else {
				toks = lexer.Lex(report.NewFile(args[0], string(text))).Tokens()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, tok := range toks {
				fmt.Fprintf(w, "%d..%d\t%s\t%q\n", tok.Span.Start, tok.Span.End, tok.Kind.Name(), tok.Lexeme)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&trivia, "trivia", false, "include whitespace, comments and preprocessor lines")
	return cmd
}
