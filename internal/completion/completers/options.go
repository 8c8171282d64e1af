// Package completers produces raw completion candidates from the sources a
// shell completes against: PATH executables, directory entries, environment
// variables, system records and literal word lists.
//
// Every source is an iter.Seq[string]. Nothing is collected up front, so a
// consumer that stops early never pays for the rest of the scan, and any
// handle a source holds is released as soon as the consumer stops.
package completers

import (
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Option configures a filesystem-backed source.
type Option func(*options)

type options struct {
	logger  *zap.Logger
	baseDir string
}

// WithLogger sets the logger used to report skipped directories and entries.
func WithLogger(logger *zap.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithBaseDir resolves relative paths against dir instead of the process
// working directory. Candidates keep the spelling the caller supplied.
func WithBaseDir(dir string) Option {
	return func(o *options) {
		o.baseDir = dir
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (o options) resolve(name string) string {
	if o.baseDir == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(o.baseDir, name)
}

// isExecutable reports whether name resolves to a regular file with any
// execute bit set. Symlinks are followed.
func isExecutable(fsys afero.Fs, name string) bool {
	info, err := fsys.Stat(name)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode().Perm()&0o111 != 0
}

// isDir reports whether name resolves to a directory. A failed lookup counts
// as "not a directory".
func isDir(fsys afero.Fs, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}
