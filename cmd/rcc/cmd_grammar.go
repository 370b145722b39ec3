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
	"maps"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pulanski/rcc/parser"
)

func (a *app) newGrammarCmd() *cobra.Command {
	var source bool
	cmd := &cobra.Command{
		Use:   "grammar",
		Short: "Print the productions of the recognized C grammar",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			if source {
				_, err := fmt.Fprint(out, parser.GrammarSource())
				return err
			}
			grammar, err := parser.Grammar()
			if err != nil {
				return err
			}
			for _, name := range slices.Sorted(maps.Keys(grammar)) {
				if _, err := fmt.Fprintln(out, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&source, "source", false, "print the EBNF itself")
	return cmd
}
