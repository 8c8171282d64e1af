package completers

import (
	"fmt"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Glob yields the paths matching a shell filename pattern. Relative patterns
// are resolved against the base directory and matches are reported relative
// to it. A malformed pattern is reported before anything is read.
func Glob(fsys afero.Fs, pattern string, opts ...Option) (iter.Seq[string], error) {
	if _, err := filepath.Match(pattern, ""); err != nil {
		return nil, fmt.Errorf("%q: %w", pattern, err)
	}
	o := buildOptions(opts)

	return func(yield func(string) bool) {
		resolved := o.resolve(pattern)
		matches, err := afero.Glob(fsys, resolved)
		if err != nil {
			o.logger.Debug("glob failed", zap.String("pattern", pattern), zap.Error(err))
			return
		}

		for _, m := range matches {
			if resolved != pattern {
				if rel, err := filepath.Rel(o.baseDir, m); err == nil {
					m = rel
				}
			}
			if !yield(m) {
				return
			}
		}
	}, nil
}
