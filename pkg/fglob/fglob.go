// Package fglob finds the files and directories matching a list of glob patterns.
//
// Patterns are relative to the working directory of the options. A pattern starting with `!` excludes the
// entries it matches. Patterns are grouped into independent directory walks by their static base directory,
// and directories matching an exclusion are never read:
//
//	entries, err := fglob.Find(ctx, []string{"src/**/*.go", "!**/testdata/**"}, nil)
//
// Find blocks until every walk finished, FindAsync returns a Future, and FindStream delivers the entries on a
// channel as they are found.
package fglob

import (
	"context"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/matcher"
	"github.com/gruntwork-io/fglob/internal/reader"
	"github.com/gruntwork-io/fglob/internal/task"
	"github.com/gruntwork-io/fglob/internal/walker"
	"github.com/gruntwork-io/fglob/options"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/gruntwork-io/fglob/telemetry"
	"github.com/gruntwork-io/fglob/util"
)

type (
	// Entry is a found file or directory: a Path, or a *Stat when stats are requested.
	Entry = entry.Entry
	// Path is an entry without file information.
	Path = entry.Path
	// Stat is an entry carrying the file information gathered during the walk.
	Stat = entry.Stat
	// Task is one planned directory walk.
	Task = task.Task
	// Stream delivers entries as they are found.
	Stream = reader.Stream
)

// Execution modes, used in logs and traces.
const (
	ModeSync   = "sync"
	ModeAsync  = "async"
	ModeStream = "stream"
)

// Find returns the entries matching the patterns once every walk finished. With the Uniq option, an entry
// found by more than one walk is returned once, at its first position.
func Find(ctx context.Context, patterns []string, opts *options.Options) ([]Entry, error) {
	plan, err := newPlan(patterns, opts, ModeSync)
	if err != nil {
		return nil, err
	}

	var entries []Entry

	err = telemetry.Trace(ctx, "find", plan.traceAttrs(), func(ctx context.Context) error {
		entries, err = reader.ReadSync(ctx, plan.walker, plan.tasks)
		return err
	})
	if err != nil {
		return nil, err
	}

	return plan.finish(entries), nil
}

// Future is the pending result of FindAsync.
type Future struct {
	future *reader.Future
	plan   *plan
}

// FindAsync starts walking concurrently and returns immediately. Invalid input is reported here, before any
// directory is read; walk failures are reported by Wait.
func FindAsync(ctx context.Context, patterns []string, opts *options.Options) (*Future, error) {
	plan, err := newPlan(patterns, opts, ModeAsync)
	if err != nil {
		return nil, err
	}

	return &Future{
		future: reader.ReadAsync(ctx, plan.walker, plan.tasks, plan.opts.Parallelism),
		plan:   plan,
	}, nil
}

// Wait blocks until every walk finished and returns the entries in task order, or the first walk failure.
// With the Uniq option, duplicates are removed as by Find.
func (future *Future) Wait() ([]Entry, error) {
	results, err := future.future.Wait()
	if err != nil {
		return nil, err
	}

	return future.plan.finish(util.Flatten(results)), nil
}

// Done returns a channel closed once the result is available.
func (future *Future) Done() <-chan struct{} {
	return future.future.Done()
}

// FindStream starts walking concurrently and returns a stream of the entries in the order they are found.
// The stream never removes duplicates. Invalid input is reported here, walk failures by the stream's Err.
func FindStream(ctx context.Context, patterns []string, opts *options.Options) (*Stream, error) {
	plan, err := newPlan(patterns, opts, ModeStream)
	if err != nil {
		return nil, err
	}

	return reader.ReadStream(ctx, plan.walker, plan.tasks, plan.opts.Parallelism, plan.logger), nil
}

// Tasks returns the walks planned for the patterns, without reading any directory.
func Tasks(patterns []string, opts *options.Options) ([]*Task, error) {
	plan, err := newPlan(patterns, opts, "")
	if err != nil {
		return nil, err
	}

	return plan.tasks, nil
}

// plan holds everything prepared for a single call.
type plan struct {
	opts   *options.Options
	logger log.Logger
	walker *walker.Walker
	tasks  []*task.Task
	mode   string
}

// newPlan validates the input and plans the walks. Nothing is read from the filesystem.
func newPlan(patterns []string, opts *options.Options, mode string) (*plan, error) {
	if opts == nil {
		opts = options.NewOptions()
	}

	opts, err := opts.Normalize()
	if err != nil {
		return nil, err
	}

	tasks, err := task.Generate(patterns, opts.Ignore)
	if err != nil {
		return nil, err
	}

	if err := matcher.ValidateAll(opts.Matcher, patterns); err != nil {
		return nil, err
	}

	logger := opts.Logger
	if mode != "" {
		logger = logger.WithField(log.FieldKeyMode, mode)
	}

	logger.Debugf("Planned %d tasks for %d patterns in %s", len(tasks), len(patterns), opts.Cwd)

	for _, t := range tasks {
		logger.WithField(log.FieldKeyBase, t.Base).Tracef("Task patterns %v, exclusions %v", t.Patterns, t.Negative)
	}

	walkerOpts := opts.Clone()
	walkerOpts.Logger = logger

	return &plan{
		opts:   opts,
		logger: logger,
		walker: walker.New(walkerOpts),
		tasks:  tasks,
		mode:   mode,
	}, nil
}

// finish removes duplicate paths when requested.
func (plan *plan) finish(entries []Entry) []Entry {
	if !plan.opts.Uniq || len(plan.tasks) < 2 {
		return entries
	}

	return util.RemoveDuplicatesByKey(entries, Entry.Path)
}

func (plan *plan) traceAttrs() map[string]any {
	return map[string]any{
		"mode":  plan.mode,
		"cwd":   plan.opts.Cwd,
		"tasks": len(plan.tasks),
	}
}
