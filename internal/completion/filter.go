package completion

import (
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/gobwas/glob"
)

// ErrInvalidPattern is returned when a filter pattern cannot be compiled.
var ErrInvalidPattern = errors.New("invalid pattern")

// Filter narrows a candidate sequence by prefix and by glob pattern.
//
// A candidate survives when it starts with the prefix and, if a pattern is
// set, when whether it matches equals keep. The pattern removes matches by
// default; a leading "!" on the pattern text keeps only the matches instead.
type Filter struct {
	prefix  string
	pattern glob.Glob
	keep    bool
}

// NewFilter builds a filter from a prefix and an optional pattern.
func NewFilter(prefix, pattern string) (*Filter, error) {
	f := &Filter{prefix: prefix}
	if pattern == "" {
		return f, nil
	}

	text := pattern
	if strings.HasPrefix(text, "!") {
		f.keep = true
		text = text[1:]
	}

	g, err := glob.Compile(text)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrInvalidPattern, pattern, err)
	}
	f.pattern = g
	return f, nil
}

// Match reports whether candidate passes the filter.
func (f *Filter) Match(candidate string) bool {
	if !strings.HasPrefix(candidate, f.prefix) {
		return false
	}
	if f.pattern == nil {
		return true
	}
	return f.pattern.Match(candidate) == f.keep
}

// Apply returns the candidates of seq that pass the filter, in order.
func (f *Filter) Apply(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for c := range seq {
			if f.Match(c) && !yield(c) {
				return
			}
		}
	}
}
