// Package cli implements the fglob command line tool.
package cli

import (
	"context"
	"io"
	"slices"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/matcher"
	"github.com/gruntwork-io/fglob/options"
	"github.com/gruntwork-io/fglob/pkg/fglob"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/gruntwork-io/fglob/util"
	"github.com/urfave/cli/v2"
)

const AppName = "fglob"

// Version is set at build time.
var Version = "dev"

// NewApp creates the fglob CLI App.
func NewApp(writer, errWriter io.Writer, logger log.Logger) *cli.App {
	app := cli.NewApp()
	app.Name = AppName
	app.Usage = "Prints the files and directories matching glob patterns. Patterns starting with ! exclude entries."
	app.UsageText = "fglob [options] PATTERN..."
	app.Version = Version
	app.Writer = writer
	app.ErrWriter = errWriter
	app.Flags = newFlags()
	app.HideHelpCommand = true
	app.Before = beforeRunningCommand(logger)
	app.Action = errors.WithPanicHandling(runFind(logger))
	// Errors are reported by the caller of Run.
	app.ExitErrHandler = func(*cli.Context, error) {}

	return app
}

func beforeRunningCommand(logger log.Logger) cli.BeforeFunc {
	return func(cliCtx *cli.Context) error {
		if err := logger.SetLevel(cliCtx.String(FlagNameLogLevel)); err != nil {
			return err
		}

		formatter, err := log.ParseFormatter(cliCtx.String(FlagNameLogFormat), cliCtx.App.ErrWriter)
		if err != nil {
			return err
		}

		logger.SetOptions(log.WithOutput(cliCtx.App.ErrWriter), log.WithFormatter(formatter))

		return nil
	}
}

func runFind(logger log.Logger) cli.ActionFunc {
	return func(cliCtx *cli.Context) error {
		run, err := newRun(cliCtx, logger)
		if err != nil {
			return err
		}

		if cliCtx.Bool(FlagNameTasks) {
			tasks, err := fglob.Tasks(run.patterns, run.opts)
			if err != nil {
				return err
			}

			return writeTasks(cliCtx.App.Writer, tasks)
		}

		writer := &entryWriter{out: cliCtx.App.Writer}

		if err := run.find(cliCtx.Context, writer); err != nil {
			return err
		}

		logger.WithField(log.FieldKeyEntries, writer.count).Debugf("Found %d entries", writer.count)

		return nil
	}
}

// run holds the resolved input of a single invocation.
type run struct {
	opts     *options.Options
	patterns []string
	mode     string
}

// newRun resolves defaults, the config file and the flags, in this order of increasing precedence.
func newRun(cliCtx *cli.Context, logger log.Logger) (*run, error) {
	opts := options.NewOptions()
	opts.Logger = logger

	run := &run{
		opts: opts,
		mode: cliCtx.String(FlagNameMode),
	}

	matcherName := cliCtx.String(FlagNameMatcher)

	if path := cliCtx.String(FlagNameConfig); path != "" {
		cfg, err := LoadConfig(opts.FS, path)
		if err != nil {
			return nil, err
		}

		cfg.Apply(opts)

		if run.patterns, err = cfg.PatternList(); err != nil {
			return nil, err
		}

		if cfg.Mode != "" && !cliCtx.IsSet(FlagNameMode) {
			run.mode = cfg.Mode
		}

		if cfg.Matcher != "" && !cliCtx.IsSet(FlagNameMatcher) {
			matcherName = cfg.Matcher
		}
	}

	if err := applyFlags(cliCtx, opts); err != nil {
		return nil, err
	}

	m, err := matcher.New(matcherName)
	if err != nil {
		return nil, err
	}

	opts.Matcher = m

	if cliCtx.Args().Present() {
		run.patterns = cliCtx.Args().Slice()
	}

	if len(run.patterns) == 0 {
		return nil, errors.New(NoPatternsError{})
	}

	if !slices.Contains(Modes, run.mode) {
		return nil, errors.New(InvalidModeError{Mode: run.mode})
	}

	return run, nil
}

func applyFlags(cliCtx *cli.Context, opts *options.Options) error {
	if cliCtx.IsSet(FlagNameCwd) {
		opts.Cwd = cliCtx.String(FlagNameCwd)
	}

	if cliCtx.IsSet(FlagNameDeep) {
		deep, err := options.ParseDepth(cliCtx.String(FlagNameDeep))
		if err != nil {
			return err
		}

		opts.Deep = deep
	}

	opts.Ignore = util.MergeStringSlices(opts.Ignore, util.RemoveEmptyElements(cliCtx.StringSlice(FlagNameIgnore)))

	if cliCtx.IsSet(FlagNameOnlyFiles) {
		opts.OnlyFiles = cliCtx.Bool(FlagNameOnlyFiles)
	}

	if cliCtx.IsSet(FlagNameOnlyDirectories) {
		opts.OnlyDirectories = cliCtx.Bool(FlagNameOnlyDirectories)
	}

	if cliCtx.IsSet(FlagNameStats) {
		opts.Stats = cliCtx.Bool(FlagNameStats)
	}

	if cliCtx.IsSet(FlagNameNoUniq) {
		opts.Uniq = !cliCtx.Bool(FlagNameNoUniq)
	}

	if cliCtx.IsSet(FlagNameNoFollow) {
		opts.FollowSymlinks = !cliCtx.Bool(FlagNameNoFollow)
	}

	if cliCtx.IsSet(FlagNameParallelism) {
		opts.Parallelism = cliCtx.Int(FlagNameParallelism)
	}

	return nil
}

func (run *run) find(ctx context.Context, writer *entryWriter) error {
	switch run.mode {
	case ModeAsync:
		future, err := fglob.FindAsync(ctx, run.patterns, run.opts)
		if err != nil {
			return err
		}

		entries, err := future.Wait()
		if err != nil {
			return err
		}

		return writer.WriteAll(entries)
	case ModeStream:
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		stream, err := fglob.FindStream(ctx, run.patterns, run.opts)
		if err != nil {
			return err
		}

		var writeErr error

		for e := range stream.Entries() {
			if writeErr != nil {
				continue
			}

			if writeErr = writer.Write(e); writeErr != nil {
				cancel()
			}
		}

		if writeErr != nil {
			return writeErr
		}

		return stream.Err()
	}

	entries, err := fglob.Find(ctx, run.patterns, run.opts)
	if err != nil {
		return err
	}

	return writer.WriteAll(entries)
}
