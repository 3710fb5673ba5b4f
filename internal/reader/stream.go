package reader

import (
	"context"
	"sync"

	"github.com/gruntwork-io/fglob/internal/entry"
	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/task"
	"github.com/gruntwork-io/fglob/internal/worker"
	"github.com/gruntwork-io/fglob/pkg/log"
)

// Stream delivers the entries of concurrently walked tasks as they are found.
type Stream struct {
	entries   chan entry.Entry
	err       error
	closeOnce sync.Once
}

// ReadStream starts walking the tasks on a worker pool, at most parallelism at a time, zero meaning all of
// them. Entries of different tasks are interleaved. The first failing walk stops the others. The entries
// channel is closed once every walk finished; the consumer must drain it or cancel ctx.
func ReadStream(ctx context.Context, w Walker, tasks []*task.Task, parallelism int, logger log.Logger) *Stream {
	stream := &Stream{entries: make(chan entry.Entry)}

	pool := worker.NewWorkerPool(ctx, parallelism, worker.WithFailFast())

	for _, t := range tasks {
		pool.Submit(func(ctx context.Context) error {
			return w.Walk(ctx, t, func(e entry.Entry) error {
				select {
				case stream.entries <- e:
					return nil
				case <-ctx.Done():
					return errors.WithStackTrace(ctx.Err())
				}
			})
		})
	}

	go func() {
		if err := pool.GracefulStop(); err != nil {
			if multiErr := new(errors.MultiError); errors.As(err, &multiErr) && multiErr.Len() > 1 {
				logger.Debugf("Stream finished with %d failed walks: %v", multiErr.Len(), err)
			}

			stream.err = pool.FirstErr()
		}

		stream.close()
	}()

	return stream
}

// Entries returns the channel entries are delivered on. It is closed exactly once, after every walk finished.
func (stream *Stream) Entries() <-chan entry.Entry {
	return stream.entries
}

// Err returns the first failure of the stream. It is valid once the entries channel is closed.
func (stream *Stream) Err() error {
	return stream.err
}

// Collect drains the stream and returns its entries, or the terminal failure.
func (stream *Stream) Collect() ([]entry.Entry, error) {
	entries := []entry.Entry{}

	for e := range stream.entries {
		entries = append(entries, e)
	}

	if err := stream.Err(); err != nil {
		return nil, err
	}

	return entries, nil
}

func (stream *Stream) close() {
	stream.closeOnce.Do(func() {
		close(stream.entries)
	})
}
