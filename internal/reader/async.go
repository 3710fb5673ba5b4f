package reader

import (
	"context"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/task"
	"golang.org/x/sync/errgroup"
)

// Future is the pending result of ReadAsync.
type Future struct {
	done    chan struct{}
	results [][]entry.Entry
	err     error
}

// ReadAsync starts walking the tasks concurrently, at most parallelism at a time, zero meaning all of them.
// The first failing walk cancels the context of the other walks.
func ReadAsync(ctx context.Context, w Walker, tasks []*task.Task, parallelism int) *Future {
	future := &Future{
		done:    make(chan struct{}),
		results: make([][]entry.Entry, len(tasks)),
	}

	group, groupCtx := errgroup.WithContext(ctx)

	if parallelism > 0 {
		group.SetLimit(parallelism)
	}

	go func() {
		defer close(future.done)

		for i, t := range tasks {
			group.Go(func() error {
				entries, err := collect(groupCtx, w, t)
				if err != nil {
					return err
				}

				future.results[i] = entries

				return nil
			})
		}

		if err := group.Wait(); err != nil {
			future.results, future.err = nil, err
		}
	}()

	return future
}

// Wait blocks until every walk finished and returns the entries of every task, in task order, or the first
// failure.
func (future *Future) Wait() ([][]entry.Entry, error) {
	<-future.done
	return future.results, future.err
}

// Done returns a channel closed once the result is available.
func (future *Future) Done() <-chan struct{} {
	return future.done
}
