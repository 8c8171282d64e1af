package completion

import (
	"fmt"
	"iter"

	"github.com/atinylittleshell/compy/internal/completion/completers"
	"github.com/atinylittleshell/compy/internal/sysdb"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

// Request describes one completion run.
type Request struct {
	// Actions select the sources, in output order.
	Actions []Action
	// Word is the partial word being completed. Candidates must start with it.
	Word string
	// WordList is a whitespace separated list of literal candidates (-W).
	WordList string
	// GlobPattern adds the filenames matching a pattern (-G).
	GlobPattern string
	// Prefix and Suffix are added around every candidate (-P, -S).
	Prefix string
	Suffix string
	// FilterPattern removes matching candidates, or keeps only the matching
	// ones when it starts with "!" (-X).
	FilterPattern string
	// Quote shell-quotes candidates before decoration.
	Quote bool
	// Limit caps the number of candidates. Zero means no limit.
	Limit int
}

// RecordSource provides the system databases name completion reads.
type RecordSource interface {
	Groups() ([]sysdb.Group, error)
	Users() ([]sysdb.User, error)
	Hosts() ([]sysdb.Host, error)
	Services() ([]sysdb.Service, error)
}

// Env holds everything a request reads from the outside world. Nothing is
// taken from process state directly, so the same request can be served for
// the CLI, for an embedded shell, or for a test.
type Env struct {
	FS afero.Fs
	// Dir resolves relative paths. Empty means the process working directory.
	Dir string
	// Path is the PATH value to search for commands.
	Path string
	// Environ holds the exported variables as KEY=VALUE pairs.
	Environ []string
	// Variables holds every shell variable as KEY=VALUE pairs. When nil,
	// Environ is used.
	Variables []string
	Records   RecordSource
	Logger    *zap.Logger
}

// Generate validates req and returns the lazy sequence of decorated
// candidates. Every configuration error is reported here, before any
// candidate is produced; failures while scanning are skipped silently.
func Generate(req Request, env Env) (iter.Seq[string], error) {
	if len(req.Actions) == 0 && req.WordList == "" && req.GlobPattern == "" {
		return nil, ErrNoAction
	}
	if env.FS == nil {
		env.FS = afero.NewOsFs()
	}
	if env.Logger == nil {
		env.Logger = zap.NewNop()
	}

	filter, err := NewFilter(req.Word, req.FilterPattern)
	if err != nil {
		return nil, err
	}

	opts := []completers.Option{
		completers.WithLogger(env.Logger),
		completers.WithBaseDir(env.Dir),
	}

	var sources []iter.Seq[string]
	for _, action := range req.Actions {
		source, err := env.source(action, req.Word, opts)
		if err != nil {
			return nil, err
		}
		sources = append(sources, source)
	}

	if req.GlobPattern != "" {
		source, err := completers.Glob(env.FS, req.GlobPattern, opts...)
		if err != nil {
			return nil, fmt.Errorf("%w %w", ErrInvalidPattern, err)
		}
		sources = append(sources, source)
	}

	if req.WordList != "" {
		sources = append(sources, completers.Words(req.WordList))
	}

	decorator := Decorator{Prepend: req.Prefix, Append: req.Suffix, Quote: req.Quote}
	return Take(decorator.Apply(filter.Apply(Chain(sources...))), req.Limit), nil
}

func (env Env) source(action Action, word string, opts []completers.Option) (iter.Seq[string], error) {
	switch action {
	case ActionCommand:
		return completers.NewExecutableScanner(env.FS, env.Path, opts...).All(), nil
	case ActionFile:
		return completers.NewDirScanner(env.FS, word, completers.Files|completers.Dirs, opts...).All(), nil
	case ActionDirectory:
		return completers.NewDirScanner(env.FS, word, completers.Dirs, opts...).All(), nil
	case ActionExport:
		return completers.EnvNames(env.Environ), nil
	case ActionVariable:
		if env.Variables == nil {
			return completers.EnvNames(env.Environ), nil
		}
		return completers.EnvNames(env.Variables), nil
	case ActionGroup:
		return records(env, "group", func(db RecordSource) (iter.Seq[string], error) {
			groups, err := db.Groups()
			return completers.Records(groups), err
		}), nil
	case ActionUser:
		return records(env, "passwd", func(db RecordSource) (iter.Seq[string], error) {
			users, err := db.Users()
			return completers.Records(users), err
		}), nil
	case ActionHostname:
		return records(env, "hosts", func(db RecordSource) (iter.Seq[string], error) {
			hosts, err := db.Hosts()
			return completers.NameSet(hosts), err
		}), nil
	case ActionService:
		return records(env, "services", func(db RecordSource) (iter.Seq[string], error) {
			services, err := db.Services()
			return completers.NameSet(services), err
		}), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
}

// records defers reading a database until the sequence is consumed. A
// database that cannot be read yields nothing.
func records(env Env, name string, load func(RecordSource) (iter.Seq[string], error)) iter.Seq[string] {
	return func(yield func(string) bool) {
		if env.Records == nil {
			return
		}
		seq, err := load(env.Records)
		if err != nil {
			env.Logger.Debug("skipping database", zap.String("db", name), zap.Error(err))
			return
		}
		for c := range seq {
			if !yield(c) {
				return
			}
		}
	}
}
