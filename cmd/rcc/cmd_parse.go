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
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/parser"
	"github.com/pulanski/rcc/report"
)

func (a *app) newParseCmd() *cobra.Command {
	var (
		shape, stats bool
		rule         string
	)
	cmd := &cobra.Command{
		Use:   "parse <files or directories...>",
		Short: "Print the concrete syntax tree of each file",
		Long: `Parse C files and print their concrete syntax trees. A directory stands for
every .c file beneath it. Syntax errors are printed to stderr; the tree still
covers every token, with error nodes around the parts that did not parse.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			multi := len(args) > 1
			show := func(path string, tree *cst.Tree) error {
				switch {
				case stats:
					_, err := fmt.Fprintf(out, "%s: %d functions, %d declarations, %d errors\n",
						path, tree.NumFunctions(), tree.NumDeclarations(), tree.NumErrors())
					return err
				case shape:
					_, err := fmt.Fprintln(out, tree.Shape())
					return err
				default:
					if multi {
						if _, err := fmt.Fprintf(out, "// %s\n", path); err != nil {
							return err
						}
					}
					return tree.Print(out)
				}
			}

			if rule != "" {
				kind, ok := cst.KindByName(rule)
				if !ok {
					return fmt.Errorf("unknown rule %q", rule)
				}
				return a.parseRule(cmd.ErrOrStderr(), kind, args, show)
			}

			results, err := a.compile(cmd.Context(), args)
			if err != nil {
				return err
			}
			multi = len(results) > 1
			for _, res := range results {
				if res.Tree == nil {
					continue
				}
				if err := show(res.Path, res.Tree); err != nil {
					return err
				}
			}
			_, _, err = a.render(cmd.ErrOrStderr(), results)
			return err
		},
	}
	cmd.Flags().BoolVar(&shape, "shape", false, "print only the nesting of nodes, on one line")
	cmd.Flags().BoolVar(&stats, "stats", false, "print only counts of functions, declarations and errors")
	cmd.Flags().StringVar(&rule, "rule", "", "parse each file as this production, such as Statement or Expression")
	return cmd
}

// parseRule parses each file as a single production.
func (a *app) parseRule(stderr io.Writer, kind cst.Kind, paths []string, show func(string, *cst.Tree) error) error {
	for _, path := range paths {
		text, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		file := report.NewFile(path, string(text))
		r := new(report.Report)
		tree, err := parser.ParseRule(file, kind, r, a.parserOptions()...)
		if _, _, renderErr := a.renderer(stderr).Render(r, stderr); renderErr != nil {
			return renderErr
		}
		if err != nil {
			return err
		}
		if err := show(path, tree); err != nil {
			return err
		}
	}
	return nil
}
