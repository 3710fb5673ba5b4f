package reader

import (
	"context"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/task"
)

// ReadSync walks the tasks one after another and returns their entries in task order. The first failing walk
// stops the read.
func ReadSync(ctx context.Context, w Walker, tasks []*task.Task) ([]entry.Entry, error) {
	entries := []entry.Entry{}

	for _, t := range tasks {
		taskEntries, err := collect(ctx, w, t)
		if err != nil {
			return nil, err
		}

		entries = append(entries, taskEntries...)
	}

	return entries, nil
}
