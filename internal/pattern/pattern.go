// Package pattern classifies glob patterns: negation detection and stripping, and the static base directory
// a pattern's traversal starts from.
package pattern

import "strings"

const (
	// NegationMarker marks a pattern whose matches are excluded.
	NegationMarker = "!"

	// globstarSuffix is the "directory and everything under it" suffix dropped from negative patterns.
	globstarSuffix = "/**"

	// CurrentDir is the base directory of patterns without a static prefix.
	CurrentDir = "."
)

// metaChars are the characters that make a path segment dynamic for the matchers in this module.
const metaChars = "*?[]{}"

// extglobOpeners start extended glob groups such as `@(a|b)`.
var extglobOpeners = []string{"!(", "@(", "+("}

// IsNegative returns true if the pattern starts with the negation marker.
//
//	**/*     -> false
//	!**/*.md -> true
func IsNegative(pattern string) bool {
	return strings.HasPrefix(pattern, NegationMarker)
}

// ToNegative prefixes the pattern with the negation marker.
func ToNegative(pattern string) string {
	return NegationMarker + pattern
}

// StripNegation removes the leading negation marker. When what remains ends with one or more `/**`
// suffixes, they are removed too, leaving a directory token used to prune whole subtrees.
//
//	!**/*.txt    -> **/*.txt
//	!**/.git/**  -> **/.git
//	!a/**/**     -> a
func StripNegation(pattern string) string {
	pattern = strings.TrimPrefix(pattern, NegationMarker)

	for strings.HasSuffix(pattern, globstarSuffix) {
		pattern = strings.TrimSuffix(pattern, globstarSuffix)
	}

	return pattern
}

// IsDynamic returns true if the pattern contains glob metacharacters. Characters escaped with a backslash
// do not count.
func IsDynamic(pattern string) bool {
	for i := 0; i < len(pattern); i++ {
		switch {
		case pattern[i] == '\\':
			i++
		case strings.IndexByte(metaChars, pattern[i]) >= 0:
			return true
		case i+1 < len(pattern) && pattern[i+1] == '(' && isExtglobAt(pattern, i):
			return true
		}
	}

	return false
}

func isExtglobAt(pattern string, i int) bool {
	for _, opener := range extglobOpeners {
		if strings.HasPrefix(pattern[i:], opener) {
			return true
		}
	}

	return false
}

// BaseDirectory returns the static directory a pattern's matches live under: the leading path segments
// free of glob metacharacters. A fully static pattern yields its parent directory unless it ends with a
// slash. Patterns without a static prefix yield ".".
//
//	**/*.js        -> .
//	src/**/*.js    -> src
//	src/lib/a.js   -> src/lib
//	src/lib/       -> src/lib
//	/abs/*.go      -> /abs
func BaseDirectory(pattern string) string {
	segments := strings.Split(pattern, "/")

	static := len(segments) - 1

	for i, segment := range segments {
		if IsDynamic(segment) {
			static = i
			break
		}
	}

	base := strings.Join(segments[:static], "/")

	switch {
	case base == "" && strings.HasPrefix(pattern, "/"):
		return "/"
	case base == "":
		return CurrentDir
	}

	return base
}
