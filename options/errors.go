package options

import "fmt"

// ConflictingFiltersError is returned when both only-files and only-directories are requested.
type ConflictingFiltersError struct{}

func (err ConflictingFiltersError) Error() string {
	return "only-files and only-directories cannot be used together"
}

// InvalidDepthError is returned for depth values that are neither a boolean nor a non-negative number.
type InvalidDepthError struct {
	Value string
}

func (err InvalidDepthError) Error() string {
	return fmt.Sprintf("invalid depth %q, expected true, false or a non-negative number", err.Value)
}

// InvalidParallelismError is returned for negative parallelism values.
type InvalidParallelismError struct {
	Value int
}

func (err InvalidParallelismError) Error() string {
	return fmt.Sprintf("invalid parallelism %d, expected a non-negative number", err.Value)
}
