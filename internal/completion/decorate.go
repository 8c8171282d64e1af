package completion

import (
	"iter"

	"mvdan.cc/sh/v3/syntax"
)

// Decorator wraps every candidate in a fixed prefix and suffix.
type Decorator struct {
	Prepend string
	Append  string
	// Quote shell-quotes the candidate before it is wrapped.
	Quote bool
}

// Decorate renders a single candidate.
func (d Decorator) Decorate(candidate string) string {
	if d.Quote {
		// strings bash cannot represent are emitted as-is
		if quoted, err := syntax.Quote(candidate, syntax.LangBash); err == nil {
			candidate = quoted
		}
	}
	return d.Prepend + candidate + d.Append
}

// Apply decorates every candidate of seq, preserving order.
func (d Decorator) Apply(seq iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for c := range seq {
			if !yield(d.Decorate(c)) {
				return
			}
		}
	}
}

// Chain yields the candidates of each sequence in turn.
func Chain(seqs ...iter.Seq[string]) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, seq := range seqs {
			for c := range seq {
				if !yield(c) {
					return
				}
			}
		}
	}
}

// Take stops after n candidates. n <= 0 means no limit.
func Take(seq iter.Seq[string], n int) iter.Seq[string] {
	if n <= 0 {
		return seq
	}
	return func(yield func(string) bool) {
		count := 0
		for c := range seq {
			if !yield(c) {
				return
			}
			count++
			if count >= n {
				return
			}
		}
	}
}
