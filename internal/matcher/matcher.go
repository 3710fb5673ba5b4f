// Package matcher provides the glob matching capability consumed by the walker.
//
// A Matcher only answers whether a path matches a single, non-negated pattern. The combination rules used by
// the walker live in All and Any: a `!`-prefixed pattern passed to them matches when the path does not match
// the rest of the pattern.
package matcher

//go:generate mockgen -source=$GOFILE -destination=mocks/mock_$GOFILE -package=mocks

import (
	"fmt"
	"strings"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/pattern"
)

const (
	// DoublestarName selects the doublestar matcher.
	DoublestarName = "doublestar"
	// CompiledName selects the matcher compiling patterns once with gobwas/glob.
	CompiledName = "compiled"
)

// Names lists the matchers selectable by name.
var Names = []string{DoublestarName, CompiledName}

// Matcher reports whether slash-separated paths match glob patterns.
type Matcher interface {
	// Match reports whether name matches the pattern. Malformed patterns match nothing.
	Match(pattern, name string) bool
	// Validate returns an InvalidPatternError if the pattern is malformed.
	Validate(pattern string) error
}

// InvalidPatternError is returned by Validate for patterns the matcher cannot parse.
type InvalidPatternError struct {
	Pattern string
	Err     error
}

func (err InvalidPatternError) Error() string {
	if err.Err != nil {
		return fmt.Sprintf("invalid glob pattern %q: %v", err.Pattern, err.Err)
	}

	return fmt.Sprintf("invalid glob pattern %q", err.Pattern)
}

func (err InvalidPatternError) Unwrap() error {
	return err.Err
}

// New returns the matcher with the given name.
func New(name string) (Matcher, error) {
	switch strings.ToLower(name) {
	case DoublestarName, "":
		return NewDoublestar(), nil
	case CompiledName:
		return NewCompiled(), nil
	}

	return nil, errors.Errorf("invalid matcher %q, supported matchers: %s", name, strings.Join(Names, ", "))
}

// All reports whether name satisfies every pattern: it matches each positive pattern and none of the
// `!`-prefixed ones.
func All(m Matcher, name string, patterns []string) bool {
	for _, p := range patterns {
		if pattern.IsNegative(p) {
			if m.Match(p[len(pattern.NegationMarker):], name) {
				return false
			}

			continue
		}

		if !m.Match(p, name) {
			return false
		}
	}

	return true
}

// Any reports whether name matches at least one of the patterns.
func Any(m Matcher, name string, patterns []string) bool {
	for _, p := range patterns {
		if m.Match(p, name) {
			return true
		}
	}

	return false
}

// ValidateAll validates every pattern, negated patterns are validated without their marker.
func ValidateAll(m Matcher, patterns []string) error {
	for _, p := range patterns {
		if err := m.Validate(strings.TrimPrefix(p, pattern.NegationMarker)); err != nil {
			return errors.WithStackTrace(err)
		}
	}

	return nil
}
