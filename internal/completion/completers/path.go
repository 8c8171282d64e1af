package completers

import (
	"iter"
	"os"
	"strings"
)

// PathSegments returns the directories listed in a PATH value, left to right.
// Empty segments, including the one a trailing separator would produce, are
// skipped. Each range over the result starts again from the first segment.
func PathSegments(path string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := path
		for rest != "" {
			var dir string
			dir, rest, _ = strings.Cut(rest, string(os.PathListSeparator))
			if dir == "" {
				continue
			}
			if !yield(dir) {
				return
			}
		}
	}
}
