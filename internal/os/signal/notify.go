package signal

import (
	"context"
	"os"
	"os/signal"
)

// NotifyContext returns a copy of ctx that is cancelled with a ContextCanceledCause when one of the given
// signals arrives. The returned stop function releases the signal handler.
func NotifyContext(ctx context.Context, sigs ...os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(ctx)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, sigs...)

	go func() {
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			cancel(NewContextCanceledCause(sig))
		case <-ctx.Done():
		}
	}()

	return ctx, func() { cancel(nil) }
}
