package matcher

import (
	"strings"

	"github.com/gobwas/glob"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	separator = '/'
	globstar  = "**"

	// maxGlobstars bounds the number of compiled variants of a single pattern.
	maxGlobstars = 6
)

type compiledGlob struct {
	variants []glob.Glob
	err      error
}

func (compiled compiledGlob) match(name string) bool {
	for _, g := range compiled.variants {
		if g.Match(name) {
			return true
		}
	}

	return false
}

// Compiled matches with github.com/gobwas/glob. Every pattern is compiled once and cached, which pays off
// when the same few patterns are checked against every entry of a large tree.
type Compiled struct {
	cache *xsync.MapOf[string, compiledGlob]
}

// NewCompiled returns a matcher with an empty compilation cache. It is safe for concurrent use.
func NewCompiled() *Compiled {
	return &Compiled{
		cache: xsync.NewMapOf[string, compiledGlob](),
	}
}

// Match implements Matcher.
func (m *Compiled) Match(pattern, name string) bool {
	compiled := m.compile(pattern)
	if compiled.err != nil {
		return false
	}

	return compiled.match(name)
}

// Validate implements Matcher.
func (m *Compiled) Validate(pattern string) error {
	if compiled := m.compile(pattern); compiled.err != nil {
		return InvalidPatternError{Pattern: pattern, Err: compiled.err}
	}

	return nil
}

// Len returns the number of cached patterns.
func (m *Compiled) Len() int {
	return m.cache.Size()
}

func (m *Compiled) compile(pattern string) compiledGlob {
	compiled, _ := m.cache.LoadOrCompute(pattern, func() compiledGlob {
		var compiled compiledGlob

		for _, variant := range globstarVariants(pattern) {
			g, err := glob.Compile(variant, separator)
			if err != nil {
				return compiledGlob{err: err}
			}

			compiled.variants = append(compiled.variants, g)
		}

		return compiled
	})

	return compiled
}

// globstarVariants returns the pattern with every combination of its `**` segments kept or removed. In
// gobwas/glob `**` needs the separators around it to be present, so `a/**/b` never matches `a/b` unless the
// `a/b` variant is compiled as well.
//
//	a/**/b -> a/**/b, a/b
//	**/b   -> **/b, b
func globstarVariants(pattern string) []string {
	var (
		segments  []string
		globstars []int
	)

	for _, segment := range strings.Split(pattern, "/") {
		if segment == globstar && len(segments) > 0 && segments[len(segments)-1] == globstar {
			continue
		}

		if segment == globstar {
			globstars = append(globstars, len(segments))
		}

		segments = append(segments, segment)
	}

	if len(globstars) == 0 || len(globstars) > maxGlobstars {
		return []string{pattern}
	}

	variants := make([]string, 0, 1<<len(globstars))

	for mask := 0; mask < 1<<len(globstars); mask++ {
		dropped := make(map[int]bool, len(globstars))

		for bit, index := range globstars {
			if mask&(1<<bit) != 0 {
				dropped[index] = true
			}
		}

		kept := make([]string, 0, len(segments))

		for i, segment := range segments {
			if !dropped[i] {
				kept = append(kept, segment)
			}
		}

		if variant := strings.Join(kept, "/"); variant != "" {
			variants = append(variants, variant)
		}
	}

	return variants
}
