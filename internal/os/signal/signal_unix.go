//go:build !windows

package signal

import (
	"os"
	"syscall"
)

// InterruptSignals contains the signals that stop a running find.
var InterruptSignals = []os.Signal{syscall.SIGTERM, syscall.SIGINT}
