// Package signal cancels contexts on interrupt signals.
package signal

import (
	"context"
	"fmt"
	"os"
)

// ContextCanceledCause is the cancellation cause of a context cancelled by a signal.
type ContextCanceledCause struct {
	Signal os.Signal
}

// NewContextCanceledCause returns a new `ContextCanceledCause` instance.
func NewContextCanceledCause(sig os.Signal) *ContextCanceledCause {
	return &ContextCanceledCause{Signal: sig}
}

// Error implements the `Error` method.
func (cause ContextCanceledCause) Error() string {
	return fmt.Sprintf("%s: received signal %v", context.Canceled, cause.Signal)
}

// Unwrap implements the `Unwrap` method.
func (ContextCanceledCause) Unwrap() error {
	return context.Canceled
}
