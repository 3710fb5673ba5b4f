package cli

import (
	"bytes"
	"io"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/vfs"
	"github.com/gruntwork-io/fglob/options"
	"github.com/gruntwork-io/fglob/pkg/fglob"
	"github.com/gruntwork-io/fglob/util"
	"gopkg.in/yaml.v3"
)

// Config is the content of a YAML config file. Unset fields leave the defaults, and the flags, untouched.
//
//	patterns:
//	  - "src/**/*.go"
//	  - "!**/testdata/**"
//	deep: 3
//	only-files: true
type Config struct {
	// Patterns is a string or a list of strings.
	Patterns        any            `yaml:"patterns"`
	Cwd             string         `yaml:"cwd"`
	Deep            *options.Depth `yaml:"deep"`
	Ignore          []string       `yaml:"ignore"`
	OnlyFiles       *bool          `yaml:"only-files"`
	OnlyDirectories *bool          `yaml:"only-directories"`
	Stats           *bool          `yaml:"stats"`
	Uniq            *bool          `yaml:"uniq"`
	FollowSymlinks  *bool          `yaml:"follow-symlinks"`
	Mode            string         `yaml:"mode"`
	Matcher         string         `yaml:"matcher"`
	Parallelism     *int           `yaml:"parallelism"`
}

// LoadConfig reads and decodes the config file at path. Unknown keys are rejected.
func LoadConfig(fs vfs.FS, path string) (*Config, error) {
	data, err := vfs.ReadFile(fs, path)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "reading config file %s", path)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	cfg := new(Config)

	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, errors.WithStackTraceAndPrefix(err, "decoding config file %s", path)
	}

	if _, err := cfg.PatternList(); err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "config file %s", path)
	}

	return cfg, nil
}

// PatternList returns the patterns of the config file, nil when there are none.
func (cfg *Config) PatternList() ([]string, error) {
	if cfg.Patterns == nil {
		return nil, nil
	}

	return fglob.Patterns(cfg.Patterns)
}

// Apply copies the fields set in the config file to the options.
func (cfg *Config) Apply(opts *options.Options) {
	if cfg.Cwd != "" {
		opts.Cwd = cfg.Cwd
	}

	if cfg.Deep != nil {
		opts.Deep = *cfg.Deep
	}

	opts.Ignore = util.MergeStringSlices(opts.Ignore, cfg.Ignore)

	setBool(&opts.OnlyFiles, cfg.OnlyFiles)
	setBool(&opts.OnlyDirectories, cfg.OnlyDirectories)
	setBool(&opts.Stats, cfg.Stats)
	setBool(&opts.Uniq, cfg.Uniq)
	setBool(&opts.FollowSymlinks, cfg.FollowSymlinks)

	if cfg.Parallelism != nil {
		opts.Parallelism = *cfg.Parallelism
	}
}

func setBool(dst *bool, val *bool) {
	if val != nil {
		*dst = *val
	}
}
