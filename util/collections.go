// Package util provides generic helpers for slices of patterns and entries.
package util

// RemoveDuplicatesFromList returns a copy of the given list with all duplicates removed (keeping the first encountered).
func RemoveDuplicatesFromList[S ~[]E, E comparable](list S) S {
	return RemoveDuplicatesByKey(list, func(value E) E { return value })
}

// RemoveDuplicatesByKey returns a copy of the given list without the elements whose key was already seen,
// keeping the first encountered.
func RemoveDuplicatesByKey[S ~[]E, E any, K comparable](list S, key func(E) K) S {
	out := make(S, 0, len(list))
	present := make(map[K]struct{}, len(list))

	for _, value := range list {
		k := key(value)

		if _, ok := present[k]; ok {
			continue
		}

		out = append(out, value)
		present[k] = struct{}{}
	}

	return out
}

// RemoveEmptyElements returns a copy of the given list without empty elements.
func RemoveEmptyElements[S ~[]E, E comparable](list S) S {
	var (
		out   S
		empty E
	)

	for _, item := range list {
		if item != empty {
			out = append(out, item)
		}
	}

	return out
}

// Flatten concatenates the given lists in order.
func Flatten[S ~[]E, E any](lists []S) S {
	var size int

	for _, list := range lists {
		size += len(list)
	}

	out := make(S, 0, size)

	for _, list := range lists {
		out = append(out, list...)
	}

	return out
}

// MergeStringSlices combines two string slices removing duplicates
func MergeStringSlices(a, b []string) []string {
	return RemoveDuplicatesFromList(append(append(make([]string, 0, len(a)+len(b)), a...), b...))
}
