package cli

import (
	"strings"

	"github.com/gruntwork-io/fglob/internal/matcher"
	"github.com/gruntwork-io/fglob/pkg/log"
	"github.com/urfave/cli/v2"
)

const (
	// EnvVarPrefix is prepended to the environment variable names of all flags.
	EnvVarPrefix = "FGLOB_"

	FlagNameCwd             = "cwd"
	FlagNameDeep            = "deep"
	FlagNameIgnore          = "ignore"
	FlagNameOnlyFiles       = "only-files"
	FlagNameOnlyDirectories = "only-directories"
	FlagNameStats           = "stats"
	FlagNameNoUniq          = "no-uniq"
	FlagNameNoFollow        = "no-follow-symlinks"
	FlagNameMode            = "mode"
	FlagNameMatcher         = "matcher"
	FlagNameParallelism     = "parallelism"
	FlagNameConfig          = "config"
	FlagNameTasks           = "tasks"
	FlagNameLogLevel        = "log-level"
	FlagNameLogFormat       = "log-format"
)

// Execution modes.
const (
	ModeSync   = "sync"
	ModeAsync  = "async"
	ModeStream = "stream"
)

// Modes lists the supported execution modes.
var Modes = []string{ModeSync, ModeAsync, ModeStream}

func envVars(name string) []string {
	return []string{EnvVarPrefix + strings.ToUpper(strings.ReplaceAll(name, "-", "_"))}
}

func newFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    FlagNameCwd,
			EnvVars: envVars(FlagNameCwd),
			Usage:   "The directory patterns are relative to. Default is the current directory.",
		},
		&cli.StringFlag{
			Name:    FlagNameDeep,
			EnvVars: envVars(FlagNameDeep),
			Usage:   "Recursion depth: true for unlimited, false for the base directory only, or a number of path segments.",
			Value:   "true",
		},
		&cli.StringSliceFlag{
			Name:    FlagNameIgnore,
			EnvVars: envVars(FlagNameIgnore),
			Usage:   "Exclusion pattern applied to every walk. Can be specified multiple times.",
		},
		&cli.BoolFlag{
			Name:    FlagNameOnlyFiles,
			EnvVars: envVars(FlagNameOnlyFiles),
			Usage:   "Report files only.",
		},
		&cli.BoolFlag{
			Name:    FlagNameOnlyDirectories,
			EnvVars: envVars(FlagNameOnlyDirectories),
			Usage:   "Report directories only.",
		},
		&cli.BoolFlag{
			Name:    FlagNameStats,
			EnvVars: envVars(FlagNameStats),
			Usage:   "Print the mode and size of every entry.",
		},
		&cli.BoolFlag{
			Name:    FlagNameNoUniq,
			EnvVars: envVars(FlagNameNoUniq),
			Usage:   "Keep entries found by more than one walk.",
		},
		&cli.BoolFlag{
			Name:    FlagNameNoFollow,
			EnvVars: envVars(FlagNameNoFollow),
			Usage:   "Do not walk symbolic links to directories.",
		},
		&cli.StringFlag{
			Name:    FlagNameMode,
			EnvVars: envVars(FlagNameMode),
			Usage:   "Execution mode: " + strings.Join(Modes, ", ") + ".",
			Value:   ModeSync,
		},
		&cli.StringFlag{
			Name:    FlagNameMatcher,
			EnvVars: envVars(FlagNameMatcher),
			Usage:   "Glob matcher implementation: " + strings.Join(matcher.Names, ", ") + ".",
			Value:   matcher.DoublestarName,
		},
		&cli.IntFlag{
			Name:    FlagNameParallelism,
			EnvVars: envVars(FlagNameParallelism),
			Usage:   "Maximum number of concurrent walks in async and stream modes. 0 means unlimited.",
		},
		&cli.StringFlag{
			Name:    FlagNameConfig,
			EnvVars: envVars(FlagNameConfig),
			Usage:   "Path to a YAML file with patterns and options. Flags take precedence over the file.",
		},
		&cli.BoolFlag{
			Name:    FlagNameTasks,
			EnvVars: envVars(FlagNameTasks),
			Usage:   "Print the planned walks instead of walking.",
		},
		&cli.StringFlag{
			Name:    FlagNameLogLevel,
			EnvVars: envVars(FlagNameLogLevel),
			Usage:   "Log level: " + log.AllLevels.String() + ".",
			Value:   log.InfoLevel.String(),
		},
		&cli.StringFlag{
			Name:    FlagNameLogFormat,
			EnvVars: envVars(FlagNameLogFormat),
			Usage:   "Log format: " + strings.Join(log.AllFormats, ", ") + ".",
			Value:   log.TextFormat,
		},
	}
}
