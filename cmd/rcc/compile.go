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
	"context"
	"errors"
	"io"
	"io/fs"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/pulanski/rcc"
	"github.com/pulanski/rcc/internal/config"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/reporter"
)

// compile expands args into files and compiles them, collecting every
// diagnostic rather than stopping at the first error.
func (a *app) compile(ctx context.Context, args []string) ([]*rcc.Result, error) {
	var paths []string
	for _, arg := range args {
		expanded, err := rcc.ExpandPaths(arg)
		if errors.Is(err, fs.ErrNotExist) && len(a.cfg.IncludePaths) > 0 {
			// Left for the include paths to find.
			paths = append(paths, arg)
			continue
		}
		if err != nil {
			return nil, err
		}
		paths = append(paths, expanded...)
	}

	c := &rcc.Compiler{
		Resolver: rcc.CompositeResolver{
			&rcc.SourceResolver{},
			&rcc.SourceResolver{IncludePaths: a.cfg.IncludePaths},
		},
		MaxParallelism: a.cfg.Jobs,
		Reporter: reporter.NewReporter(
			func(err reporter.ErrorWithPos) error {
				a.log.Debugf("error: %v", err)
				return nil
			},
			nil,
		),
		Werror:  a.cfg.Werror,
		Options: a.parserOptions(),
	}
	results, err := c.Compile(ctx, paths...)
	if err != nil && !errors.Is(err, reporter.ErrInvalidSource) {
		return nil, err
	}
	return results, nil
}

// render writes the diagnostics of every result to w, sorted by file, and
// returns the number of errors and warnings.
func (a *app) render(w io.Writer, results []*rcc.Result) (errs, warnings int, err error) {
	all := new(report.Report)
	seen := map[*rcc.Result]bool{}
	for _, res := range results {
		if !seen[res] {
			seen[res] = true
			all.Append(res.Report)
		}
	}
	all.Sort()
	return a.renderer(w).Render(all, w)
}

func (a *app) renderer(w io.Writer) report.Renderer {
	colorize := false
	switch a.cfg.Color {
	case config.ColorAlways:
		colorize = true
	case config.ColorAuto:
		f, ok := w.(*os.File)
		colorize = ok && isatty.IsTerminal(f.Fd())
	}
	return report.Renderer{
		Colorize:          colorize,
		WarningsAreErrors: a.cfg.Werror,
	}
}
