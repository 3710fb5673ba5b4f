// Package task turns a mixed list of positive and negative glob patterns into the independent directory walks
// needed to evaluate them.
//
// Patterns are grouped by their base directory; every group with at least one positive pattern becomes a
// Task. Negative patterns are attached to tasks by base directory: a negative pattern without a static
// prefix (base ".") applies to every task, any other negative pattern only to the task with exactly the same
// base directory. Entries of the ignore list behave like negative patterns.
package task

import (
	"fmt"
	"slices"

	"github.com/gruntwork-io/fglob/internal/errors"
	"github.com/gruntwork-io/fglob/internal/pattern"
)

// EmptyPatternError is returned for patterns that are empty, or become empty once the negation marker is
// removed.
type EmptyPatternError struct {
	Pattern string
	Ignore  bool
}

func (err EmptyPatternError) Error() string {
	if err.Ignore {
		return "ignore patterns must not be empty"
	}

	if err.Pattern == "" {
		return "patterns must not be empty"
	}

	return fmt.Sprintf("pattern %q is empty once negation is removed", err.Pattern)
}

// Task is one directory walk together with the patterns it evaluates.
type Task struct {
	// Base is the directory the walk starts from, relative to the working directory.
	Base string
	// Patterns holds the positive patterns followed by the `!`-prefixed exclusions applied to this task.
	Patterns []string
	// Positive holds the patterns of Patterns without a negation marker.
	Positive []string
	// Negative holds the bare exclusions of this task, `/**` suffixes removed, used to prune directories.
	Negative []string
}

// Generate plans the tasks for the given patterns and ignore list. It returns no tasks when there is no
// positive pattern.
func Generate(patterns, ignore []string) ([]*Task, error) {
	if err := validate(patterns, ignore); err != nil {
		return nil, err
	}

	positive := Positive(patterns)
	negative := append(Negative(patterns), ignore...)

	groups := combine(groupByBase(positive), groupByBase(negative))

	tasks := make([]*Task, 0, len(groups))

	for _, group := range groups {
		tasks = append(tasks, &Task{
			Base:     group.base,
			Patterns: group.patterns,
			Positive: Positive(group.patterns),
			Negative: Negative(group.patterns),
		})
	}

	return tasks, nil
}

// Positive returns the patterns without a negation marker.
//
//	[**/*, !**/*.txt] -> [**/*]
func Positive(patterns []string) []string {
	var out []string

	for _, p := range patterns {
		if !pattern.IsNegative(p) {
			out = append(out, p)
		}
	}

	return out
}

// Negative returns the patterns with a negation marker, stripped of the marker and trailing `/**` suffixes.
//
//	[**/*, !**/*.txt]   -> [**/*.txt]
//	[**/*, !**/.git/**] -> [**/.git]
func Negative(patterns []string) []string {
	var out []string

	for _, p := range patterns {
		if pattern.IsNegative(p) {
			out = append(out, pattern.StripNegation(p))
		}
	}

	return out
}

// String returns a short description used in logs.
func (task *Task) String() string {
	return task.Base
}

func validate(patterns, ignore []string) error {
	for _, p := range patterns {
		if p == "" || pattern.IsNegative(p) && pattern.StripNegation(p) == "" {
			return errors.New(EmptyPatternError{Pattern: p})
		}
	}

	for _, p := range ignore {
		if p == "" {
			return errors.New(EmptyPatternError{Pattern: p, Ignore: true})
		}
	}

	return nil
}

// group is the list of patterns sharing one base directory.
type group struct {
	base     string
	patterns []string
}

// groupByBase groups patterns by base directory, keeping the first-seen order of base directories and the
// input order of patterns within a group.
//
//	[**/*, a/**/*, **/*.md] -> [{. [**/*, **/*.md]}, {a [a/**/*]}]
func groupByBase(patterns []string) []group {
	var groups []group

	for _, p := range patterns {
		base := pattern.BaseDirectory(p)

		index := slices.IndexFunc(groups, func(g group) bool { return g.base == base })
		if index < 0 {
			groups = append(groups, group{base: base})
			index = len(groups) - 1
		}

		groups[index].patterns = append(groups[index].patterns, p)
	}

	return groups
}

// combine appends every negative group, converted back to `!` patterns, to the positive groups it applies
// to. The positive groups are copied, the inputs are left untouched.
//
//	positive: [{. [**/*]}, {a [a/**/*]}]
//	negative: [{. [**/*.txt]}, {a [a/**/*.md]}]
//	result:   [{. [**/*, !**/*.txt]}, {a [a/**/*, !**/*.txt, !a/**/*.md]}]
func combine(positive, negative []group) []group {
	combined := make([]group, len(positive))

	for i, g := range positive {
		combined[i] = group{base: g.base, patterns: slices.Clone(g.patterns)}
	}

	for _, neg := range negative {
		negated := make([]string, len(neg.patterns))
		for i, p := range neg.patterns {
			negated[i] = pattern.ToNegative(p)
		}

		for i := range combined {
			if neg.base == combined[i].base || neg.base == pattern.CurrentDir {
				combined[i].patterns = append(combined[i].patterns, negated...)
			}
		}
	}

	return combined
}
