package completers

import (
	"errors"
	"io"
	"iter"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// EntryKind selects which directory entries a DirScanner yields.
type EntryKind uint8

const (
	// Files selects everything that is not a directory.
	Files EntryKind = 1 << iota
	// Dirs selects directories.
	Dirs
)

const separator = string(filepath.Separator)

// DirScanner lists the entries of the directory a partial path refers to.
//
//	""        scans "."
//	"src/"    scans "src" itself
//	"src/ma"  scans "src", the parent of the input
//
// Names are yielded with the directory part of the input in front of them,
// exactly as the caller spelled it, so "src/" yields "src/util". An input with
// no directory part yields bare names.
type DirScanner struct {
	fs      afero.Fs
	dir     string
	display string
	kind    EntryKind
	ok      bool
	opts    options
}

// NewDirScanner resolves the directory to scan for input. When that directory
// does not exist or is not a directory the scanner is empty; construction
// never fails.
func NewDirScanner(fsys afero.Fs, input string, kind EntryKind, opts ...Option) *DirScanner {
	s := &DirScanner{
		fs:   fsys,
		kind: kind,
		opts: buildOptions(opts),
	}

	switch {
	case input == "":
		s.dir = "."
	case strings.HasSuffix(input, separator):
		s.dir = input
	default:
		s.dir = filepath.Dir(input)
	}

	if i := strings.LastIndex(input, separator); i >= 0 {
		s.display = input[:i+1]
	}

	s.ok = isDir(fsys, s.opts.resolve(s.dir))
	if !s.ok {
		s.opts.logger.Debug("nothing to scan", zap.String("input", input), zap.String("dir", s.dir))
	}
	return s
}

// All yields matching entries in listing order. When directories are
// requested and the scanned directory is "." or "..", the entries "." and
// ".." come first.
func (s *DirScanner) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if !s.ok {
			return
		}

		if s.kind&Dirs != 0 {
			if clean := filepath.Clean(s.dir); clean == "." || clean == ".." {
				for _, name := range []string{".", ".."} {
					if !yield(s.display + name) {
						return
					}
				}
			}
		}

		resolved := s.opts.resolve(s.dir)
		f, err := s.fs.Open(resolved)
		if err != nil {
			s.opts.logger.Debug("cannot open directory", zap.String("dir", s.dir), zap.Error(err))
			return
		}
		defer f.Close()

		for {
			names, err := f.Readdirnames(1)
			for _, name := range names {
				if !s.wants(filepath.Join(resolved, name)) {
					continue
				}
				if !yield(s.display + name) {
					return
				}
			}

			if err != nil {
				if !errors.Is(err, io.EOF) {
					s.opts.logger.Debug("directory listing failed", zap.String("dir", s.dir), zap.Error(err))
				}
				return
			}
		}
	}
}

func (s *DirScanner) wants(name string) bool {
	if isDir(s.fs, name) {
		return s.kind&Dirs != 0
	}
	return s.kind&Files != 0
}
