// Package walker walks the directory tree of a single task and yields the entries matching its patterns.
//
// Two decisions are made for every entry, using only the entry itself: whether it is included in the output,
// and, for directories, whether its children are read. Directories matching one of the task's exclusions are
// never read, so excluded subtrees cost a single match instead of a full listing.
package walker

import (
	"context"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/matcher"
	"github.com/gruntwork-io/fglob/internal/task"
	"github.com/gruntwork-io/fglob/internal/vfs"
	"github.com/gruntwork-io/fglob/options"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/gruntwork-io/fglob/telemetry"
)

// Walker walks task directories. It holds no per-walk state, so one Walker can run many walks concurrently.
type Walker struct {
	fs              vfs.FS
	matcher         matcher.Matcher
	logger          log.Logger
	transform       entry.Transform
	cwd             string
	deep            options.Depth
	onlyFiles       bool
	onlyDirectories bool
	stats           bool
	followSymlinks  bool
}

// New returns a Walker configured by normalized options.
func New(opts *options.Options) *Walker {
	return &Walker{
		fs:              opts.FS,
		matcher:         opts.Matcher,
		logger:          opts.Logger,
		transform:       opts.Transform,
		cwd:             opts.Cwd,
		deep:            opts.Deep,
		onlyFiles:       opts.OnlyFiles,
		onlyDirectories: opts.OnlyDirectories,
		stats:           opts.Stats,
		followSymlinks:  opts.FollowSymlinks,
	}
}

// Walk reads the tree below the task's base directory and calls fn for every included entry, after the
// transform was applied. Directories are reported before their children. A missing base directory is not an
// error, the walk simply finds nothing. If fn returns fs.SkipAll the walk stops without error, any other error
// returned by fn stops the walk and is returned.
func (w *Walker) Walk(ctx context.Context, t *task.Task, fn func(entry.Entry) error) error {
	attrs := map[string]any{
		"base":     t.Base,
		"patterns": t.Patterns,
	}

	return telemetry.Trace(ctx, "walk", attrs, func(ctx context.Context) error {
		logger := w.logger.WithField(log.FieldKeyTask, t.Base)
		logger.Debugf("Walking %s with patterns %v", t.Base, t.Patterns)

		root := w.root(t)

		rootInfo, err := w.statDir(root)
		if err != nil {
			return errors.WithStackTraceAndPrefix(err, "walking %s", t.Base)
		}

		if rootInfo == nil {
			logger.Debugf("Base directory %s does not exist", t.Base)
			return nil
		}

		var found int

		err = w.walkDir(ctx, t, root, relativeBase(t.Base), []os.FileInfo{rootInfo}, func(e entry.Entry) error {
			found++
			return fn(e)
		})

		switch {
		case errors.Is(err, fs.SkipAll):
			err = nil
		case errors.IsNotExist(err) || errors.IsNotDirectory(err):
			logger.Debugf("Base directory %s does not exist", t.Base)

			return nil
		case err != nil:
			return errors.WithStackTraceAndPrefix(err, "walking %s", t.Base)
		}

		logger.WithField(log.FieldKeyEntries, found).Debugf("Finished walking %s", t.Base)

		return nil
	})
}

// Entries returns the entries of the task's walk as a sequence. Every iteration walks the tree again. An error
// ends the sequence with a nil entry and that error.
func (w *Walker) Entries(ctx context.Context, t *task.Task) iter.Seq2[entry.Entry, error] {
	return func(yield func(entry.Entry, error) bool) {
		err := w.Walk(ctx, t, func(e entry.Entry) error {
			if !yield(e, nil) {
				return fs.SkipAll
			}

			return nil
		})
		if err != nil {
			yield(nil, err)
		}
	}
}

// Collect walks the task and returns all of its entries.
func (w *Walker) Collect(ctx context.Context, t *task.Task) ([]entry.Entry, error) {
	var entries []entry.Entry

	err := w.Walk(ctx, t, func(e entry.Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// walkDir reads dir, the last of ancestors, which holds the directories from the base down to dir.
func (w *Walker) walkDir(ctx context.Context, t *task.Task, dir, relDir string, ancestors []os.FileInfo, fn func(entry.Entry) error) error {
	depth := len(ancestors) - 1

	if err := ctx.Err(); err != nil {
		return err
	}

	infos, err := vfs.ReadDir(w.fs, dir)
	if err != nil {
		return err
	}

	for _, info := range infos {
		if err := ctx.Err(); err != nil {
			return err
		}

		path := joinRelative(relDir, info.Name())
		fullPath := filepath.Join(dir, info.Name())

		if w.followSymlinks {
			if info, err = vfs.ResolveLink(w.fs, fullPath, info); err != nil {
				return err
			}
		}

		if w.include(t, path, info) {
			if err := fn(w.transform(entry.New(path, info, w.stats))); err != nil {
				return err
			}
		}

		if !info.IsDir() || !w.descend(t, path, depth+1) {
			continue
		}

		if w.followSymlinks && isAncestor(ancestors, info) {
			w.logger.Tracef("Skipping %s, it links back to a directory being walked", path)
			continue
		}

		err := w.walkDir(ctx, t, fullPath, path, append(ancestors[:len(ancestors):len(ancestors)], info), fn)

		// The directory was removed after its parent was listed.
		if errors.IsNotExist(err) {
			w.logger.Tracef("Directory %s disappeared during the walk", path)
			continue
		}

		if err != nil {
			return err
		}
	}

	return nil
}

// include decides whether the entry is part of the output.
func (w *Walker) include(t *task.Task, path string, info os.FileInfo) bool {
	isDir := info.IsDir()

	if isDir && matcher.Any(w.matcher, path, t.Negative) {
		return false
	}

	if (w.onlyFiles && isDir) || (w.onlyDirectories && !isDir) {
		return false
	}

	return matcher.All(w.matcher, path, t.Patterns)
}

// descend decides whether the children of the directory at the given depth below the base are read.
func (w *Walker) descend(t *task.Task, path string, depth int) bool {
	if !w.deep.Descend(depth) {
		return false
	}

	if matcher.Any(w.matcher, path, t.Negative) {
		w.logger.Tracef("Skipping excluded directory %s", path)
		return false
	}

	return true
}

// statDir returns the description of the directory at path, following symbolic links, or nil if there is no
// directory at path.
func (w *Walker) statDir(path string) (os.FileInfo, error) {
	info, err := w.fs.Stat(path)

	switch {
	case errors.IsNotExist(err) || errors.IsNotDirectory(err):
		return nil, nil
	case err != nil:
		return nil, err
	}

	if !info.IsDir() {
		return nil, nil
	}

	return info, nil
}

// isAncestor reports whether the directory described by info is one of ancestors, which happens when a symbolic
// link points back up the tree.
func isAncestor(ancestors []os.FileInfo, info os.FileInfo) bool {
	for _, ancestor := range ancestors {
		if os.SameFile(ancestor, info) {
			return true
		}
	}

	return false
}

func (w *Walker) root(t *task.Task) string {
	if filepath.IsAbs(t.Base) {
		return filepath.FromSlash(t.Base)
	}

	return filepath.Join(w.cwd, filepath.FromSlash(t.Base))
}

// relativeBase returns the prefix of the entry paths of a walk rooted at base.
func relativeBase(base string) string {
	if base == "." {
		return ""
	}

	return base
}

func joinRelative(dir, name string) string {
	switch dir {
	case "":
		return name
	case "/":
		return "/" + name
	}

	return dir + "/" + name
}
