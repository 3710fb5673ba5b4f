//go:build windows

package signal

import (
	"os"
)

// InterruptSignals contains the signals that stop a running find.
var InterruptSignals = []os.Signal{os.Interrupt}
