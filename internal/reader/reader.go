// Package reader runs the walks of planned tasks and delivers their entries in one of three modes: blocking,
// as a future, or as a stream.
package reader

import (
	"context"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/task"
)

// Walker walks a single task. It is implemented by *walker.Walker.
type Walker interface {
	Walk(ctx context.Context, t *task.Task, fn func(entry.Entry) error) error
}

// collect walks a task and returns its entries.
func collect(ctx context.Context, w Walker, t *task.Task) ([]entry.Entry, error) {
	entries := []entry.Entry{}

	err := w.Walk(ctx, t, func(e entry.Entry) error {
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}
