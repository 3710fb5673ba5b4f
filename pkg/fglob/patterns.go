package fglob

import (
	"slices"

	"github.com/gruntwork-io/fglob/internal/errors"
)

// InvalidPatternsError is returned by Patterns for input that is neither a string nor a list of strings.
type InvalidPatternsError struct {
	Value any
}

func (err InvalidPatternsError) Error() string {
	return "patterns must be a string or an array of strings"
}

// Patterns converts dynamically typed input, such as decoded configuration, into a pattern list. It accepts
// a string, a list of strings, or a list of values that are all strings.
func Patterns(source any) ([]string, error) {
	switch val := source.(type) {
	case string:
		return []string{val}, nil
	case []string:
		if val == nil {
			break
		}

		return slices.Clone(val), nil
	case []any:
		if val == nil {
			break
		}

		patterns := make([]string, 0, len(val))

		for _, item := range val {
			str, ok := item.(string)
			if !ok {
				return nil, errors.New(InvalidPatternsError{Value: source})
			}

			patterns = append(patterns, str)
		}

		return patterns, nil
	}

	return nil, errors.New(InvalidPatternsError{Value: source})
}
