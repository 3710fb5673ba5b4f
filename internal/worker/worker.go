// Package worker runs independent jobs concurrently with a bounded number of workers.
//
// Every job receives the pool context. The pool context is cancelled by Stop, and by the first failing job
// when the pool fails fast, so sibling jobs can give up early. All failures are collected into a
// MultiError, failures caused by the pool's own cancellation excepted.
package worker

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/gruntwork-io/fglob/internal/errors"
)

// Job is a unit of work run by the pool.
type Job func(ctx context.Context) error

// Option configures a Pool.
type Option func(*Pool)

// WithFailFast makes the first failing job cancel the pool context.
func WithFailFast() Option {
	return func(wp *Pool) {
		wp.failFast = true
	}
}

// Pool manages concurrent job execution with a configurable number of workers.
type Pool struct {
	ctx         context.Context
	cancel      context.CancelFunc
	semaphore   chan struct{}
	allErrors   *errors.MultiError
	firstErr    error
	wg          sync.WaitGroup
	allErrorsMu sync.Mutex
	isStopping  atomic.Bool
	isStopped   atomic.Bool
	failFast    bool
}

// NewWorkerPool creates a pool running at most maxWorkers jobs at once. A non-positive maxWorkers runs every
// submitted job immediately.
func NewWorkerPool(ctx context.Context, maxWorkers int, opts ...Option) *Pool {
	ctx, cancel := context.WithCancel(ctx)

	wp := &Pool{
		ctx:       ctx,
		cancel:    cancel,
		allErrors: &errors.MultiError{},
	}

	if maxWorkers > 0 {
		wp.semaphore = make(chan struct{}, maxWorkers)
	}

	for _, opt := range opts {
		opt(wp)
	}

	return wp
}

// Submit starts a goroutine running the job as soon as a worker is available. Jobs submitted after Stop
// are dropped.
func (wp *Pool) Submit(job Job) {
	if wp.isStopping.Load() {
		return
	}

	wp.wg.Add(1)

	go func() {
		defer wp.wg.Done()

		if !wp.acquire() {
			return
		}

		defer wp.release()

		var err error

		func() {
			defer errors.Recover(func(cause error) {
				err = cause
			})

			err = job(wp.ctx)
		}()

		wp.appendError(err)
	}()
}

// Wait blocks until all submitted jobs are completed and returns the collected errors.
func (wp *Pool) Wait() error {
	wp.wg.Wait()

	wp.allErrorsMu.Lock()
	defer wp.allErrorsMu.Unlock()

	return wp.allErrors.ErrorOrNil()
}

// FirstErr returns the error of the first failed job, or nil. It is complete once Wait returned.
func (wp *Pool) FirstErr() error {
	wp.allErrorsMu.Lock()
	defer wp.allErrorsMu.Unlock()

	return wp.firstErr
}

// Stop prevents new submissions and cancels the context of the running jobs.
func (wp *Pool) Stop() {
	wp.isStopping.Store(true)
	wp.isStopped.Store(true)
	wp.cancel()
}

// GracefulStop prevents new submissions, waits for the submitted jobs and releases the pool context.
func (wp *Pool) GracefulStop() error {
	wp.isStopping.Store(true)

	err := wp.Wait()
	wp.cancel()

	return err
}

// IsStopping returns whether the pool is in the process of stopping.
func (wp *Pool) IsStopping() bool {
	return wp.isStopping.Load()
}

func (wp *Pool) acquire() bool {
	if wp.semaphore == nil {
		return true
	}

	select {
	case wp.semaphore <- struct{}{}:
		return true
	case <-wp.ctx.Done():
		wp.appendError(wp.ctx.Err())
		return false
	}
}

func (wp *Pool) release() {
	if wp.semaphore != nil {
		<-wp.semaphore
	}
}

// appendError records a job failure. Cancellations caused by the pool itself are not failures of the job.
func (wp *Pool) appendError(err error) {
	if err == nil {
		return
	}

	wp.allErrorsMu.Lock()
	defer wp.allErrorsMu.Unlock()

	if errors.IsContextCanceled(err) && wp.firstErr != nil {
		return
	}

	if errors.IsContextCanceled(err) && wp.isStopped.Load() {
		return
	}

	if wp.firstErr == nil {
		wp.firstErr = err
	}

	wp.allErrors = wp.allErrors.Append(err)

	if wp.failFast {
		wp.cancel()
	}
}
