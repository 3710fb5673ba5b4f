// Package entry defines the values produced by a find: either a bare relative path or a relative path
// together with the file information gathered while walking.
package entry

import (
	"os"
)

// Entry is one filesystem object found by a walk. It is implemented by Path and *Stat only.
type Entry interface {
	// Path returns the slash-separated path relative to the working directory.
	Path() string
	// IsDir reports whether the entry is a directory.
	IsDir() bool

	entry()
}

// Transform is applied to every entry before it is handed to the caller.
type Transform func(Entry) Entry

// Identity is the default Transform.
func Identity(e Entry) Entry {
	return e
}

// Path is an entry produced when stats are not requested. The directory flag is not kept.
type Path string

// Path implements Entry.
func (p Path) Path() string {
	return string(p)
}

// IsDir implements Entry. A Path does not carry file information, so it always returns false.
func (Path) IsDir() bool {
	return false
}

func (Path) entry() {}

// Stat is an entry produced when stats are requested.
type Stat struct {
	os.FileInfo
	RelPath string
}

// NewStat returns a stat entry for the given relative path.
func NewStat(path string, info os.FileInfo) *Stat {
	return &Stat{FileInfo: info, RelPath: path}
}

// Path implements Entry.
func (s *Stat) Path() string {
	return s.RelPath
}

func (*Stat) entry() {}

// New returns a Stat when withStats is set and a Path otherwise.
func New(path string, info os.FileInfo, withStats bool) Entry {
	if withStats {
		return NewStat(path, info)
	}

	return Path(path)
}

// Paths returns the paths of the given entries.
func Paths(entries []Entry) []string {
	paths := make([]string, len(entries))

	for i, e := range entries {
		paths[i] = e.Path()
	}

	return paths
}
