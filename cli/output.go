package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/pkg/fglob"
)

// entryWriter prints one entry per line.
type entryWriter struct {
	out   io.Writer
	count int
}

func (writer *entryWriter) Write(e fglob.Entry) error {
	var err error

	if stat, ok := e.(*fglob.Stat); ok {
		_, err = fmt.Fprintf(writer.out, "%s %d %s\n", stat.Mode(), stat.Size(), stat.Path())
	} else {
		_, err = fmt.Fprintln(writer.out, e.Path())
	}

	if err != nil {
		return errors.WithStackTrace(err)
	}

	writer.count++

	return nil
}

func (writer *entryWriter) WriteAll(entries []fglob.Entry) error {
	for _, e := range entries {
		if err := writer.Write(e); err != nil {
			return err
		}
	}

	return nil
}

func writeTasks(out io.Writer, tasks []*fglob.Task) error {
	for _, t := range tasks {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", t.Base, strings.Join(t.Patterns, " ")); err != nil {
			return errors.WithStackTrace(err)
		}
	}

	return nil
}
