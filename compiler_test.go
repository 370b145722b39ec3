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
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulanski/rcc/reporter"
)

var sources = map[string]string{
	"main.c": "int main(int argc, char **argv) { return 0; }\n",
	"bad.c":  "int x\n",
	"qux.c":  "int qux(int x) {}\n",
}

// collector is a reporter that keeps going and remembers what it saw.
type collector struct {
	mu             sync.Mutex
	errs, warnings []string
}

func (c *collector) Error(err reporter.ErrorWithPos) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.errs = append(c.errs, err.Error())
	return nil
}

func (c *collector) Warning(err reporter.ErrorWithPos) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.warnings = append(c.warnings, err.Error())
}

func compiler(rep reporter.Reporter) *Compiler {
	return &Compiler{
		Resolver: &SourceResolver{Accessor: SourceAccessorFromMap(sources)},
		Reporter: rep,
	}
}

func TestCompile(t *testing.T) {
	t.Parallel()

	rep := new(collector)
	results, err := compiler(rep).Compile(context.Background(), "main.c", "bad.c", "qux.c")
	require.ErrorIs(t, err, reporter.ErrInvalidSource)
	require.Len(t, results, 3)

	main := results[0]
	assert.Equal(t, "main.c", main.Path)
	assert.Empty(t, main.Report.Diagnostics)
	require.NotNil(t, main.Unit.Func("main"))
	assert.Len(t, main.Unit.Func("main").Params, 2)

	bad := results[1]
	assert.True(t, bad.Tree.ContainsErrors())
	assert.Empty(t, bad.Unit.Functions)
	assert.Equal(t, []string{"bad.c:1:6: [E0002] expected `;`"}, rep.errs)

	qux := results[2]
	assert.False(t, qux.Report.HasErrors())
	assert.NotNil(t, qux.Unit.Func("qux"))
	require.Len(t, rep.warnings, 1)
	assert.Contains(t, rep.warnings[0], "non-void function does not return a value")
}

func TestCompileFailFast(t *testing.T) {
	t.Parallel()

	results, err := compiler(nil).Compile(context.Background(), "bad.c")
	assert.Nil(t, results)
	var ewp reporter.ErrorWithPos
	require.ErrorAs(t, err, &ewp)
	assert.Equal(t, "bad.c", ewp.Path())
	assert.Equal(t, 1, ewp.Position().Line)
}

func TestCompileWerror(t *testing.T) {
	t.Parallel()

	c := compiler(nil)
	results, err := c.Compile(context.Background(), "qux.c")
	require.NoError(t, err)
	require.Len(t, results, 1)

	c.Werror = true
	_, err = c.Compile(context.Background(), "qux.c")
	assert.ErrorContains(t, err, "non-void function does not return a value")
}

func TestCompileDuplicates(t *testing.T) {
	t.Parallel()

	results, err := compiler(nil).Compile(context.Background(), "main.c", "main.c")
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Same(t, results[0], results[1])
}

func TestCompileMissingFile(t *testing.T) {
	t.Parallel()

	_, err := compiler(new(collector)).Compile(context.Background(), "main.c", "nope.c")
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.ErrorContains(t, err, "nope.c")
}

func TestCompileCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := compiler(nil).Compile(ctx, "main.c")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompileNothing(t *testing.T) {
	t.Parallel()

	results, err := compiler(nil).Compile(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestSourceResolver(t *testing.T) {
	t.Parallel()

	r := &SourceResolver{
		IncludePaths: []string{"first", "second"},
		Accessor: SourceAccessorFromMap(map[string]string{
			filepath.Join("second", "a.c"): "int a;",
		}),
	}
	found, err := r.FindFileByPath("a.c")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("second", "a.c"), found.Path)

	_, err = r.FindFileByPath("b.c")
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestCompositeResolver(t *testing.T) {
	t.Parallel()

	_, err := CompositeResolver(nil).FindFileByPath("a.c")
	assert.ErrorIs(t, err, ErrNotFound)

	both := CompositeResolver{
		ResolverFunc(func(string) (SearchResult, error) { return SearchResult{}, ErrNotFound }),
		&SourceResolver{Accessor: SourceAccessorFromMap(sources)},
	}
	found, err := both.FindFileByPath("main.c")
	require.NoError(t, err)
	assert.Equal(t, "main.c", found.Path)

	_, err = both.FindFileByPath("nope.c")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExpandPaths(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	for _, name := range []string{"a.c", "sub/b.c", "sub/c.h"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("int x;\n"), 0o600))
	}

	paths, err := ExpandPaths(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.c"), filepath.Join(dir, "sub", "b.c")}, paths)

	paths, err = ExpandPaths(filepath.Join(dir, "**", "*.h"), filepath.Join(dir, "a.c"), dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "a.c"),
		filepath.Join(dir, "sub", "b.c"),
		filepath.Join(dir, "sub", "c.h"),
	}, paths)

	_, err = ExpandPaths(filepath.Join(dir, "missing.c"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}
