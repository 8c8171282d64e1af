// Package shell runs bash scripts in an embedded mvdan.cc/sh interpreter
// that provides compy's compgen builtin.
package shell

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/atinylittleshell/compy/internal/completion"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// DefaultKillTimeout is how long an external command gets to exit after an
// interrupt before it is killed.
const DefaultKillTimeout = 2 * time.Second

// ExecMiddleware wraps an ExecHandlerFunc, for example to intercept a
// builtin before the command is looked up on PATH.
type ExecMiddleware = func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc

// Config describes the shell a Runner starts with.
type Config struct {
	// Environ holds the initial exported variables. Nil means os.Environ().
	Environ []string
	// Dir is the initial working directory. Empty means the process one.
	Dir string
	// Params are the positional parameters $1, $2 and so on.
	Params []string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	Compgen     completion.HandlerConfig
	KillTimeout time.Duration
	Logger      *zap.Logger
	// Middlewares run after the compgen builtin, in order.
	Middlewares []ExecMiddleware
}

// Runner runs scripts in one shell session. Variables, functions and the
// working directory persist from one Run to the next.
type Runner struct {
	runner *interp.Runner
	logger *zap.Logger
}

// New creates a Runner for cfg.
func New(cfg Config) (*Runner, error) {
	if cfg.Environ == nil {
		cfg.Environ = os.Environ()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Compgen.Logger == nil {
		cfg.Compgen.Logger = cfg.Logger
	}
	if cfg.KillTimeout == 0 {
		cfg.KillTimeout = DefaultKillTimeout
	}

	middlewares := append([]ExecMiddleware{completion.NewCompgenCommandHandler(cfg.Compgen)}, cfg.Middlewares...)

	opts := []interp.RunnerOption{
		interp.Env(expand.ListEnviron(cfg.Environ...)),
		interp.StdIO(cfg.Stdin, cfg.Stdout, cfg.Stderr),
		interp.ExecHandlers(append(middlewares, func(interp.ExecHandlerFunc) interp.ExecHandlerFunc {
			return interp.DefaultExecHandler(cfg.KillTimeout)
		})...),
	}
	if cfg.Dir != "" {
		opts = append(opts, interp.Dir(cfg.Dir))
	}
	if len(cfg.Params) > 0 {
		opts = append(opts, interp.Params(append([]string{"--"}, cfg.Params...)...))
	}

	runner, err := interp.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create shell runner: %w", err)
	}

	return &Runner{runner: runner, logger: cfg.Logger}, nil
}

// Run parses a script from r and runs it in the session. A script that
// exits non-zero returns an exit status error; see ExitCode.
func (r *Runner) Run(ctx context.Context, src io.Reader, name string) error {
	prog, err := syntax.NewParser().Parse(src, name)
	if err != nil {
		return err
	}

	r.logger.Debug("running script", zap.String("name", name))
	return r.runner.Run(ctx, prog)
}

// RunFile parses and runs the script at path.
func (r *Runner) RunFile(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Run(ctx, f, path)
}

// Exited reports whether the last script ran the exit builtin.
func (r *Runner) Exited() bool {
	return r.runner.Exited()
}

// ExitCode extracts the status of a script that exited non-zero.
func ExitCode(err error) (int, bool) {
	if status, ok := interp.IsExitStatus(err); ok {
		return int(status), true
	}
	return 0, false
}
