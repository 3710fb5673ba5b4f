// Package options provides the set of options that configure a find.
package options

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/matcher"
	"github.com/gruntwork-io/fglob/internal/vfs"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/mitchellh/go-homedir"
)

const defaultLogLevel = log.InfoLevel

// Options represents options that configure a single find call. A call never modifies the options it is given.
type Options struct {
	// FS is the filesystem directories are read from.
	FS vfs.FS
	// Matcher decides whether a path matches a glob pattern.
	Matcher matcher.Matcher
	// Logger is used for debug output of the planning and walking steps.
	Logger log.Logger
	// Transform is applied to every entry before it is returned.
	Transform entry.Transform
	// Cwd is the directory patterns are relative to. A leading `~` is expanded to the home directory.
	Cwd string
	// Ignore holds exclusion patterns applied on top of the negative patterns.
	Ignore []string
	// Deep controls recursion: Infinite, Shallow or a maximum number of path segments below a base directory.
	Deep Depth
	// Parallelism bounds the number of concurrent walks of the async and stream modes. Zero means one walk
	// per task.
	Parallelism int
	// OnlyFiles drops directories from the results.
	OnlyFiles bool
	// OnlyDirectories drops everything but directories from the results.
	OnlyDirectories bool
	// Stats makes every entry carry its file information.
	Stats bool
	// Uniq removes entries found by more than one task from the sync and async results.
	Uniq bool
	// FollowSymlinks makes symbolic links to directories be walked like directories.
	FollowSymlinks bool
}

// NewOptions returns the default options, rooted at the process working directory.
func NewOptions() *Options {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = "."
	}

	return &Options{
		FS:             vfs.NewOSFS(),
		Matcher:        matcher.NewDoublestar(),
		Logger:         log.New(log.WithOutput(os.Stderr), log.WithLevel(defaultLogLevel)),
		Transform:      entry.Identity,
		Cwd:            cwd,
		Deep:           Infinite,
		Uniq:           true,
		FollowSymlinks: true,
	}
}

// Clone returns a copy of the options. Slices are copied as well, so the copy can be changed freely.
func (opts *Options) Clone() *Options {
	newOpts := *opts
	newOpts.Ignore = slices.Clone(opts.Ignore)

	return &newOpts
}

// Normalize returns a copy of the options with the zero values of the required fields replaced by defaults,
// and the working directory expanded and made absolute. The returned options are validated.
func (opts *Options) Normalize() (*Options, error) {
	newOpts := opts.Clone()

	if newOpts.FS == nil {
		newOpts.FS = vfs.NewOSFS()
	}

	if newOpts.Matcher == nil {
		newOpts.Matcher = matcher.NewDoublestar()
	}

	if newOpts.Logger == nil {
		newOpts.Logger = log.Default()
	}

	if newOpts.Transform == nil {
		newOpts.Transform = entry.Identity
	}

	cwd, err := homedir.Expand(newOpts.Cwd)
	if err != nil {
		return nil, errors.WithStackTrace(err)
	}

	if cwd == "" {
		cwd = "."
	}

	if vfs.IsOS(newOpts.FS) && !filepath.IsAbs(cwd) {
		if cwd, err = filepath.Abs(cwd); err != nil {
			return nil, errors.WithStackTrace(err)
		}
	}

	newOpts.Cwd = cwd

	if err := newOpts.Validate(); err != nil {
		return nil, err
	}

	return newOpts, nil
}

// Validate returns an error if the options cannot be used together.
func (opts *Options) Validate() error {
	if opts.OnlyFiles && opts.OnlyDirectories {
		return errors.New(ConflictingFiltersError{})
	}

	if opts.Parallelism < 0 {
		return errors.New(InvalidParallelismError{Value: opts.Parallelism})
	}

	if opts.Deep < Infinite {
		return errors.New(InvalidDepthError{Value: opts.Deep.String()})
	}

	if opts.Matcher != nil {
		return matcher.ValidateAll(opts.Matcher, opts.Ignore)
	}

	return nil
}
