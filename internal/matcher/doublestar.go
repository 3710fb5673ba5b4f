package matcher

import (
	"github.com/bmatcuk/doublestar/v4"
)

// Doublestar matches with github.com/bmatcuk/doublestar, where `**` stands for zero or more path segments.
type Doublestar struct{}

// NewDoublestar returns the default matcher.
func NewDoublestar() *Doublestar {
	return &Doublestar{}
}

// Match implements Matcher.
func (Doublestar) Match(pattern, name string) bool {
	ok, err := doublestar.Match(pattern, name)

	return ok && err == nil
}

// Validate implements Matcher.
func (Doublestar) Validate(pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return InvalidPatternError{Pattern: pattern, Err: doublestar.ErrBadPattern}
	}

	return nil
}
