package log

import (
	"io"
	"os"
	"strings"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

const (
	TextFormat = "text"
	JSONFormat = "json"
)

// AllFormats exposes all supported format names.
var AllFormats = []string{TextFormat, JSONFormat}

// ParseFormatter returns the logrus formatter for the given format name. Text output is colored only when
// the given writer is a terminal.
func ParseFormatter(name string, out io.Writer) (logrus.Formatter, error) {
	switch strings.ToLower(name) {
	case TextFormat, "":
		return &logrus.TextFormatter{
			DisableColors:    !isTerminal(out),
			DisableTimestamp: true,
		}, nil
	case JSONFormat:
		return &logrus.JSONFormatter{}, nil
	}

	return nil, errors.Errorf("invalid log format %q, supported formats: %s", name, strings.Join(AllFormats, ", "))
}

func isTerminal(out io.Writer) bool {
	file, ok := out.(*os.File)
	if !ok {
		return false
	}

	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}
