package completers

import (
	"errors"
	"io"
	"iter"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// ExecutableScanner streams the names of executable files found in the
// directories of a PATH value.
type ExecutableScanner struct {
	fs   afero.Fs
	path string
	opts options
}

// NewExecutableScanner creates a scanner over the given PATH value. The value
// is captured once; later changes to the environment are not observed.
func NewExecutableScanner(fsys afero.Fs, path string, opts ...Option) *ExecutableScanner {
	return &ExecutableScanner{
		fs:   fsys,
		path: path,
		opts: buildOptions(opts),
	}
}

// All yields the base name of every executable in PATH order, then in
// directory listing order. A name present in several directories is yielded
// once per directory. Directories that cannot be opened or listed are skipped.
func (s *ExecutableScanner) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		for dir := range PathSegments(s.path) {
			if !s.scanDir(dir, yield) {
				return
			}
		}
	}
}

// scanDir yields the executables of a single directory and reports whether
// the consumer wants more. At most one directory is open at a time.
func (s *ExecutableScanner) scanDir(dir string, yield func(string) bool) bool {
	resolved := s.opts.resolve(dir)

	f, err := s.fs.Open(resolved)
	if err != nil {
		s.opts.logger.Debug("skipping PATH entry", zap.String("dir", dir), zap.Error(err))
		return true
	}
	defer f.Close()

	for {
		names, err := f.Readdirnames(1)
		for _, name := range names {
			if !isExecutable(s.fs, filepath.Join(resolved, name)) {
				continue
			}
			if !yield(name) {
				return false
			}
		}

		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.opts.logger.Debug("abandoning PATH entry", zap.String("dir", dir), zap.Error(err))
			}
			return true
		}
	}
}
