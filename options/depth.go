package options

import (
	"strconv"
	"strings"

	"github.com/gruntwork-io/fglob/internal/errors"
)

// Depth controls how deep a walk recurses below its base directory.
type Depth int

const (
	// Infinite walks the whole subtree.
	Infinite Depth = -1
	// Shallow reads the base directory only.
	Shallow Depth = 0
)

// ParseDepth parses `true` (Infinite), `false` (Shallow) or a non-negative number of path segments.
func ParseDepth(str string) (Depth, error) {
	switch strings.ToLower(strings.TrimSpace(str)) {
	case "", "true", "infinite":
		return Infinite, nil
	case "false":
		return Shallow, nil
	}

	num, err := strconv.Atoi(str)
	if err != nil || num < 0 {
		return Shallow, errors.New(InvalidDepthError{Value: str})
	}

	return Depth(num), nil
}

// Descend reports whether a directory at the given number of path segments below the base directory may be
// read. A bound of N allows entries up to N segments deep, so only directories less than N deep are read.
func (depth Depth) Descend(dirDepth int) bool {
	switch {
	case depth == Infinite:
		return true
	case depth == Shallow:
		return false
	}

	return dirDepth+1 <= int(depth)
}

// String implements fmt.Stringer.
func (depth Depth) String() string {
	switch depth {
	case Infinite:
		return "true"
	case Shallow:
		return "false"
	}

	return strconv.Itoa(int(depth))
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (depth *Depth) UnmarshalText(text []byte) error {
	parsed, err := ParseDepth(string(text))
	if err != nil {
		return err
	}

	*depth = parsed

	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (depth Depth) MarshalText() ([]byte, error) {
	return []byte(depth.String()), nil
}
