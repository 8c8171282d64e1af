package completers

import (
	"iter"
	"strings"

	"github.com/samber/lo"
)

// Named is a record that completes to a single display name.
type Named interface {
	DisplayName() string
}

// Aliased is a record that completes to every one of its names.
type Aliased interface {
	Names() []string
}

// EnvNames yields the variable names of KEY=VALUE pairs, in order.
func EnvNames(environ []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, kv := range environ {
			name, _, _ := strings.Cut(kv, "=")
			if name == "" {
				continue
			}
			if !yield(name) {
				return
			}
		}
	}
}

// Records yields the display name of each record in list order. Duplicates
// are kept.
func Records[T Named](records []T) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, r := range records {
			if !yield(r.DisplayName()) {
				return
			}
		}
	}
}

// NameSet folds the names of all records into a set and yields each name
// once. A name shared by two records, or repeated as an alias, appears a
// single time.
func NameSet[T Aliased](records []T) iter.Seq[string] {
	names := lo.Uniq(lo.FlatMap(records, func(r T, _ int) []string {
		return r.Names()
	}))

	return func(yield func(string) bool) {
		for _, name := range names {
			if !yield(name) {
				return
			}
		}
	}
}

// Words splits list on runs of whitespace and yields every token, duplicates
// included.
func Words(list string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, w := range strings.Fields(list) {
			if !yield(w) {
				return
			}
		}
	}
}
