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

package rcc

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/pulanski/rcc/ast"
	"github.com/pulanski/rcc/cst"
	"github.com/pulanski/rcc/parser"
	"github.com/pulanski/rcc/report"
	"github.com/pulanski/rcc/reporter"
)

// Compiler handles compilation tasks, turning C source files into syntax
// trees and ASTs.
//
// The compilation process involves three steps for each source file:
//  1. Tokenizing the source.
//  2. Parsing the tokens into a lossless concrete syntax tree.
//  3. Lowering the tree into an abstract syntax tree.
//
// Syntax errors do not stop a file from being compiled: the declarations
// around them still make it into the AST.
type Compiler struct {
	// Resolves paths into source code. This field is the only required field.
	Resolver Resolver
	// The maximum parallelism to use when compiling. If unspecified or set to
	// a non-positive value, then min(runtime.NumCPU(), runtime.GOMAXPROCS(-1))
	// will be used.
	MaxParallelism int
	// A custom error and warning reporter. If unspecified a default reporter
	// is used. A default reporter fails the compilation after encountering any
	// errors and ignores all warnings.
	Reporter reporter.Reporter
	// If true, warnings are passed to Reporter as errors.
	Werror bool
	// Options for the parser, such as [parser.WithMaxDepth].
	Options []parser.Option
	// Receives progress at debug level. Defaults to the "rcc.compiler"
	// logger.
	Logger commonlog.Logger
}

// Result is the output of compiling one file.
type Result struct {
	Path   string
	File   *report.File
	Tree   *cst.Tree
	Unit   *ast.TranslationUnit
	Report *report.Report
}

// Compile compiles the given files. Results are in the same order as files;
// a path given more than once is compiled once and shares its result.
//
// If the Reporter aborts, or a file cannot be loaded, that error is
// returned with no results. Otherwise every file has a result, and the
// error is [reporter.ErrInvalidSource] if any errors were reported.
func (c *Compiler) Compile(ctx context.Context, files ...string) ([]*Result, error) {
	if len(files) == 0 {
		return nil, nil
	}

	par := c.MaxParallelism
	if par <= 0 {
		par = min(runtime.GOMAXPROCS(-1), runtime.NumCPU())
	}
	log := c.Logger
	if log == nil {
		log = commonlog.GetLogger("rcc.compiler")
	}

	group, ctx := errgroup.WithContext(ctx)
	e := executor{
		c:       c,
		h:       reporter.NewHandler(c.Reporter, c.Werror),
		s:       semaphore.NewWeighted(int64(par)),
		log:     log,
		results: map[string]*Result{},
	}

	results := make([]*Result, len(files))
	for i, f := range files {
		e.mu.Lock()
		res, ok := e.results[f]
		if !ok {
			res = &Result{Path: f}
			e.results[f] = res
			group.Go(func() error { return e.compile(ctx, res) })
		}
		e.mu.Unlock()
		results[i] = res
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}
	log.Debugf("compiled %d files", len(e.results))
	return results, e.h.Error()
}

type executor struct {
	c   *Compiler
	h   *reporter.Handler
	s   *semaphore.Weighted
	log commonlog.Logger

	mu      sync.Mutex
	results map[string]*Result
}

func (e *executor) compile(ctx context.Context, res *Result) error {
	if err := e.s.Acquire(ctx, 1); err != nil {
		return err
	}
	defer e.s.Release(1)

	file, err := e.load(res.Path)
	if err != nil {
		return err
	}
	res.File = file
	res.Report = new(report.Report)
	e.log.Debugf("compiling %s", file.Path())

	// Parser and lowering failures are also reported as ICEs, so they reach
	// the handler below and the remaining files still compile.
	res.Tree, err = parser.Parse(file, res.Report, e.c.Options...)
	if err == nil {
		res.Unit, err = ast.Lower(res.Tree, res.Report, ast.WithFile(file))
	}
	if err != nil {
		e.log.Errorf("%s: %v", file.Path(), err)
	}

	res.Report.Sort()
	return e.h.HandleReport(res.Report)
}

func (e *executor) load(path string) (*report.File, error) {
	found, err := e.c.Resolver.FindFileByPath(path)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", path, err)
	}
	if found.Source == nil {
		return nil, fmt.Errorf("resolving %s: %w", path, ErrNotFound)
	}
	if closer, ok := found.Source.(io.Closer); ok {
		defer closer.Close()
	}
	text, err := io.ReadAll(found.Source)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	name := found.Path
	if name == "" {
		name = path
	}
	return report.NewFile(name, string(text)), nil
}
