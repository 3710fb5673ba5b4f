// Package errors contains helper functions for wrapping errors with stack traces, detecting filesystem
// conditions that the finder absorbs, and panic recovery.
package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"

	goerrors "github.com/go-errors/errors"
	"github.com/urfave/cli/v2"
)

// New creates a new error with a stack trace. If the given value is already an error carrying a stack trace,
// it is returned as is.
func New(val any) error {
	if val == nil {
		return nil
	}

	if err, ok := val.(error); ok && ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(val, 1)
}

// Errorf creates a new error and wraps in an Error type that contains the stack trace.
func Errorf(message string, args ...any) error {
	err := fmt.Errorf(message, args...)
	return goerrors.Wrap(err, 1)
}

// WithStackTrace wraps the given error in an Error type that contains the stack trace. If the given error already has a stack trace,
// it is used directly. If the given error is nil, return nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	if ContainsStackTrace(err) {
		return err
	}

	return goerrors.Wrap(err, 1)
}

// WithStackTraceAndPrefix wraps the given error in an Error type that contains the stack trace and has the given message prepended as part of
// the error message. If the given error is nil, return nil.
func WithStackTraceAndPrefix(err error, message string, args ...any) error {
	if err == nil {
		return nil
	}

	return goerrors.WrapPrefix(err, fmt.Sprintf(message, args...), 1)
}

// IsNotExist reports whether the error says a file or directory does not exist. Wrapped errors,
// including the ones carrying a stack trace, are unwrapped first.
func IsNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist) || errors.Is(err, syscall.ENOENT)
}

// IsNotDirectory reports whether the error says a path component is not a directory, which readdir reports
// when a pattern base points at a regular file.
func IsNotDirectory(err error) bool {
	return errors.Is(err, syscall.ENOTDIR)
}

// WithPanicHandling wraps every command action to handle panics by returning them as errors with a stack trace.
func WithPanicHandling(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) (err error) {
		defer Recover(func(cause error) {
			err = cause
		})

		return action(ctx)
	}
}
