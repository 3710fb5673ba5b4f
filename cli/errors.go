package cli

import (
	"fmt"
	"strings"
)

// NoPatternsError is returned when neither the arguments nor the config file contain a pattern.
type NoPatternsError struct{}

func (err NoPatternsError) Error() string {
	return "no patterns given, pass them as arguments or in the config file"
}

// InvalidModeError is returned for an unknown execution mode.
type InvalidModeError struct {
	Mode string
}

func (err InvalidModeError) Error() string {
	return fmt.Sprintf("invalid mode %q, supported modes: %s", err.Mode, strings.Join(Modes, ", "))
}
