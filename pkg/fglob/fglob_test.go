package fglob_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/matcher"
	"github.com/gruntwork-io/fglob/internal/task"
	"github.com/gruntwork-io/fglob/internal/vfs"
	"github.com/gruntwork-io/fglob/options"
	"github.com/gruntwork-io/fglob/pkg/fglob"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCwd = "/work"

var tmpTree = []string{
	".tmp/styles.css",
	".tmp/components/header/styles.css",
	".tmp/components/header/scripts.js",
	".tmp/components/footer/styles.css",
	".tmp/components/footer/scripts.js",
}

func newTestOptions(t *testing.T, paths ...string) *options.Options {
	t.Helper()

	fs := vfs.NewMemMapFS()
	require.NoError(t, vfs.CreateTree(fs, testCwd, paths...))

	opts := options.NewOptions()
	opts.FS = fs
	opts.Cwd = testCwd
	opts.Logger = log.New(log.WithOutput(io.Discard))

	return opts
}

func findPaths(t *testing.T, patterns []string, opts *options.Options) []string {
	t.Helper()

	entries, err := fglob.Find(t.Context(), patterns, opts)
	require.NoError(t, err)

	return entry.Paths(entries)
}

func TestFindScenarios(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		patterns []string
		ignore   []string
		expected []string
	}{
		{
			name:     "negative pattern and ignore list",
			patterns: []string{".tmp/**/*", "!.tmp/**/*.css"},
			ignore:   []string{".tmp/**/*.css"},
			expected: []string{
				".tmp/components",
				".tmp/components/header",
				".tmp/components/header/scripts.js",
				".tmp/components/footer",
				".tmp/components/footer/scripts.js",
			},
		},
		{
			name:     "directory exclusion prunes the subtree",
			patterns: []string{".tmp/**/*", "!.tmp/components/**"},
			expected: []string{".tmp/styles.css"},
		},
		{
			name:     "missing base directory",
			patterns: []string{"missing-dir/**/*"},
			expected: []string{},
		},
		{
			name:     "static pattern",
			patterns: []string{".tmp/styles.css"},
			expected: []string{".tmp/styles.css"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := newTestOptions(t, tmpTree...)
			opts.Ignore = tc.ignore

			paths := findPaths(t, tc.patterns, opts)
			require.NotNil(t, paths)
			assert.ElementsMatch(t, tc.expected, paths)
		})
	}
}

func TestTasksGlobalExclusion(t *testing.T) {
	t.Parallel()

	tasks, err := fglob.Tasks([]string{"a/**/*", "b/**/*", "!**/*.txt"}, newTestOptions(t))
	require.NoError(t, err)
	require.Len(t, tasks, 2)

	assert.Equal(t, "a", tasks[0].Base)
	assert.Equal(t, "b", tasks[1].Base)

	for _, tsk := range tasks {
		assert.Equal(t, []string{"**/*.txt"}, tsk.Negative)
	}
}

func TestFindMatchesEveryPositivePattern(t *testing.T) {
	t.Parallel()

	tree := []string{"a/1.txt", "a/2.md", "a/b/3.txt", "a/b/c/4.txt", "d/5.txt"}
	opts := newTestOptions(t, tree...)

	for _, pattern := range []string{"a/**/*.txt", "a/*", "**/*.md", "a/b/**"} {
		var expected []string

		for _, path := range allPaths(tree) {
			if matcher.NewDoublestar().Match(pattern, path) && strings.HasPrefix(path, baseOf(t, pattern)) {
				expected = append(expected, path)
			}
		}

		assert.ElementsMatch(t, expected, findPaths(t, []string{pattern}, opts), pattern)
	}
}

func TestFindExclusionIsMonotonic(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, tmpTree...)
	positive := []string{".tmp/**/*"}
	all := findPaths(t, positive, opts)

	for _, negative := range []string{"!**/*.css", "!.tmp/components/**", "!**/header", "!.tmp/*"} {
		subset := findPaths(t, append(positive, negative), opts)

		assert.Subset(t, all, subset, negative)
		assert.LessOrEqual(t, len(subset), len(all), negative)
	}
}

func TestFindIsIdempotent(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, tmpTree...)
	patterns := []string{".tmp/**", "!**/footer/**"}

	assert.Equal(t, findPaths(t, patterns, opts), findPaths(t, patterns, opts))
}

func TestFindUniq(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, "a/1.txt", "a/2.txt", "b/3.txt")
	patterns := []string{"**/*.txt", "a/*.txt"}

	assert.Equal(t, []string{"a/1.txt", "a/2.txt", "b/3.txt"}, findPaths(t, patterns, opts))

	opts.Uniq = false
	assert.Equal(t, []string{"a/1.txt", "a/2.txt", "b/3.txt", "a/1.txt", "a/2.txt"}, findPaths(t, patterns, opts))
}

func TestFindShallow(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, tmpTree...)
	opts.Deep = options.Shallow

	paths := findPaths(t, []string{".tmp/**"}, opts)
	assert.ElementsMatch(t, []string{".tmp/styles.css", ".tmp/components"}, paths)

	for _, path := range paths {
		assert.Equal(t, 2, len(strings.Split(path, "/")), path)
	}
}

func TestFindOptions(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		modify   func(opts *options.Options)
		expected []string
	}{
		{
			name:     "only files",
			modify:   func(opts *options.Options) { opts.OnlyFiles = true },
			expected: []string{".tmp/styles.css", ".tmp/components/header/styles.css", ".tmp/components/header/scripts.js", ".tmp/components/footer/styles.css", ".tmp/components/footer/scripts.js"},
		},
		{
			name:     "only directories",
			modify:   func(opts *options.Options) { opts.OnlyDirectories = true },
			expected: []string{".tmp/components", ".tmp/components/header", ".tmp/components/footer"},
		},
		{
			name:     "bounded depth",
			modify:   func(opts *options.Options) { opts.Deep = 2 },
			expected: []string{".tmp/styles.css", ".tmp/components", ".tmp/components/header", ".tmp/components/footer"},
		},
		{
			name: "transform",
			modify: func(opts *options.Options) {
				opts.OnlyDirectories = true
				opts.Transform = func(e entry.Entry) entry.Entry {
					return fglob.Path(strings.ToUpper(e.Path()))
				}
			},
			expected: []string{".TMP/COMPONENTS", ".TMP/COMPONENTS/HEADER", ".TMP/COMPONENTS/FOOTER"},
		},
		{
			name: "compiled matcher",
			modify: func(opts *options.Options) {
				opts.Matcher = matcher.NewCompiled()
				opts.OnlyFiles = true
				opts.Ignore = []string{"**/header/**"}
			},
			expected: []string{".tmp/styles.css", ".tmp/components/footer/styles.css", ".tmp/components/footer/scripts.js"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			opts := newTestOptions(t, tmpTree...)
			tc.modify(opts)

			assert.ElementsMatch(t, tc.expected, findPaths(t, []string{".tmp/**"}, opts))
		})
	}
}

func TestFindStats(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, tmpTree...)
	opts.Stats = true

	entries, err := fglob.Find(t.Context(), []string{".tmp/*"}, opts)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	for _, e := range entries {
		stat, ok := e.(*fglob.Stat)
		require.True(t, ok, "%T is not a stat entry", e)
		assert.Equal(t, filepath.Base(e.Path()), stat.Name())
		assert.Equal(t, e.Path() == ".tmp/components", stat.IsDir())
	}
}

func TestFindInvalidInput(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, tmpTree...)
	opts.OnlyFiles = true
	opts.OnlyDirectories = true

	_, err := fglob.Find(t.Context(), []string{"**"}, opts)

	var conflictErr options.ConflictingFiltersError
	require.ErrorAs(t, err, &conflictErr)

	_, err = fglob.Find(t.Context(), []string{"src/[invalid-glob"}, newTestOptions(t))

	var patternErr matcher.InvalidPatternError
	require.ErrorAs(t, err, &patternErr)
	assert.Equal(t, "src/[invalid-glob", patternErr.Pattern)

	_, err = fglob.FindAsync(t.Context(), []string{"a/*", "!"}, newTestOptions(t))

	var emptyErr task.EmptyPatternError
	require.ErrorAs(t, err, &emptyErr)

	_, err = fglob.FindStream(t.Context(), []string{""}, newTestOptions(t))
	require.ErrorAs(t, err, &emptyErr)
}

func TestFindNoPatterns(t *testing.T) {
	t.Parallel()

	entries, err := fglob.Find(t.Context(), nil, newTestOptions(t, tmpTree...))
	require.NoError(t, err)
	assert.Empty(t, entries)

	entries, err = fglob.Find(t.Context(), []string{"!**/*.css"}, newTestOptions(t, tmpTree...))
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFindDoesNotModifyOptions(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, tmpTree...)
	opts.Cwd = testCwd
	opts.Ignore = []string{"**/*.js"}
	opts.Logger = nil

	_, err := fglob.Find(t.Context(), []string{".tmp/**"}, opts)
	require.NoError(t, err)

	assert.Nil(t, opts.Logger)
	assert.Equal(t, []string{"**/*.js"}, opts.Ignore)
}

func TestFindAsync(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, "a/1.txt", "a/2.txt", "b/3.txt", "c/4.md")

	future, err := fglob.FindAsync(t.Context(), []string{"a/*", "b/*", "**/*.txt", "missing/*"}, opts)
	require.NoError(t, err)

	entries, err := future.Wait()
	require.NoError(t, err)
	assert.Equal(t, []string{"a/1.txt", "a/2.txt", "b/3.txt"}, entry.Paths(entries))

	<-future.Done()
}

func TestFindStream(t *testing.T) {
	t.Parallel()

	opts := newTestOptions(t, "a/1.txt", "a/2.txt", "b/3.txt", "c/4.md")
	opts.Parallelism = 1

	stream, err := fglob.FindStream(t.Context(), []string{"a/*", "b/*", "**/*.txt"}, opts)
	require.NoError(t, err)

	var paths []string

	for e := range stream.Entries() {
		paths = append(paths, e.Path())
	}

	require.NoError(t, stream.Err())
	assert.ElementsMatch(t, []string{"a/1.txt", "a/2.txt", "b/3.txt", "a/1.txt", "a/2.txt", "b/3.txt"}, paths)
}

func TestFindCanceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	_, err := fglob.Find(ctx, []string{".tmp/**"}, newTestOptions(t, tmpTree...))
	require.ErrorIs(t, err, context.Canceled)
}

func TestFindOSFilesystem(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, vfs.CreateTree(vfs.NewOSFS(), dir, tmpTree...))

	opts := options.NewOptions()
	opts.Cwd = dir
	opts.Logger = log.New(log.WithOutput(io.Discard))

	entries, err := fglob.Find(t.Context(), []string{".tmp/**/*.js"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{".tmp/components/footer/scripts.js", ".tmp/components/header/scripts.js"}, entry.Paths(entries))

	require.NoError(t, os.Chmod(filepath.Join(dir, ".tmp", "components", "header"), 0o000))

	t.Cleanup(func() {
		_ = os.Chmod(filepath.Join(dir, ".tmp", "components", "header"), 0o755) //nolint:gosec
	})

	if os.Geteuid() == 0 {
		return
	}

	_, err = fglob.Find(t.Context(), []string{".tmp/**/*.js"}, opts)
	require.ErrorIs(t, err, os.ErrPermission)

	future, err := fglob.FindAsync(t.Context(), []string{".tmp/**/*.js", "other/*"}, opts)
	require.NoError(t, err)

	_, err = future.Wait()
	require.ErrorIs(t, err, os.ErrPermission)
	assert.True(t, errors.ContainsStackTrace(err))
}

func allPaths(tree []string) []string {
	seen := map[string]bool{}

	var paths []string

	for _, file := range tree {
		parts := strings.Split(file, "/")
		for i := range parts {
			path := strings.Join(parts[:i+1], "/")
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}

	return paths
}

func baseOf(t *testing.T, pattern string) string {
	t.Helper()

	tasks, err := fglob.Tasks([]string{pattern}, nil)
	require.NoError(t, err)
	require.Len(t, tasks, 1)

	if tasks[0].Base == "." {
		return ""
	}

	return tasks[0].Base + "/"
}

func TestFindSymlinkToAncestor(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, vfs.CreateTree(vfs.NewOSFS(), dir, "a/file.txt", "b.txt"))
	require.NoError(t, os.Symlink("..", filepath.Join(dir, "a", "loop")))

	opts := options.NewOptions()
	opts.Cwd = dir
	opts.Logger = log.New(log.WithOutput(io.Discard))

	entries, err := fglob.Find(t.Context(), []string{"a/**"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"a/file.txt", "a/loop", "a/loop/a", "a/loop/b.txt"}, entry.Paths(entries))

	stream, err := fglob.FindStream(t.Context(), []string{"a/**", "!**/b.txt"}, opts)
	require.NoError(t, err)

	streamed, err := stream.Collect()
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a/file.txt", "a/loop", "a/loop/a"}, entry.Paths(streamed))
}
