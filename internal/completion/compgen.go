// Package completion generates shell completion candidates. It selects the
// sources a request asks for, narrows them with a prefix and glob filter and
// decorates what survives. The same engine backs the compy CLI and a
// `compgen` builtin for embedded mvdan.cc/sh shells.
package completion

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/afero"
	"go.uber.org/zap"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
)

// HandlerConfig holds the collaborators of the compgen builtin that do not
// come from the shell itself.
type HandlerConfig struct {
	FS      afero.Fs
	Records RecordSource
	Logger  *zap.Logger
}

// NewCompgenCommandHandler creates a new ExecHandler for the compgen command.
// PATH, variables and the working directory are read from the running shell.
func NewCompgenCommandHandler(cfg HandlerConfig) func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
	return func(next interp.ExecHandlerFunc) interp.ExecHandlerFunc {
		return func(ctx context.Context, args []string) error {
			if len(args) == 0 || args[0] != "compgen" {
				return next(ctx, args)
			}

			return handleCompgenCommand(ctx, cfg, args[1:])
		}
	}
}

func handleCompgenCommand(ctx context.Context, cfg HandlerConfig, args []string) error {
	hc := interp.HandlerCtx(ctx)

	req, err := ParseArgs(args)
	if err != nil {
		fmt.Fprintf(hc.Stderr, "compgen: %v\n", err)
		return interp.NewExitStatus(2)
	}

	env := Env{
		FS:      cfg.FS,
		Dir:     hc.Dir,
		Path:    hc.Env.Get("PATH").String(),
		Records: cfg.Records,
		Logger:  cfg.Logger,
	}
	hc.Env.Each(func(name string, vr expand.Variable) bool {
		if !vr.IsSet() {
			return true
		}
		entry := name + "=" + vr.String()
		env.Variables = append(env.Variables, entry)
		if vr.Exported {
			env.Environ = append(env.Environ, entry)
		}
		return true
	})

	candidates, err := Generate(req, env)
	if err != nil {
		fmt.Fprintf(hc.Stderr, "compgen: %v\n", err)
		return interp.NewExitStatus(1)
	}

	w := bufio.NewWriter(hc.Stdout)
	for c := range candidates {
		fmt.Fprintln(w, c)
	}
	return w.Flush()
}

// ParseArgs parses bash-style compgen options:
//
//	compgen [-cdefgsuv] [-A action] [-G globpat] [-W wordlist]
//	        [-P prefix] [-S suffix] [-X filterpat] [word]
//
// Action letters may be combined, as in -df.
func ParseArgs(args []string) (Request, error) {
	var (
		req   Request
		words []string
	)

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			words = append(words, args[i+1:]...)
			break
		}
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			words = append(words, arg)
			continue
		}

		switch arg {
		case "-A", "-G", "-W", "-P", "-S", "-X":
			if i+1 >= len(args) {
				return Request{}, fmt.Errorf("option %s requires an argument", arg)
			}
			i++
			if err := req.setOption(arg[1], args[i]); err != nil {
				return Request{}, err
			}
		default:
			for j := 1; j < len(arg); j++ {
				action, ok := shortActions[arg[j]]
				if !ok {
					return Request{}, fmt.Errorf("unknown option: -%c", arg[j])
				}
				req.Actions = append(req.Actions, action)
			}
		}
	}

	if len(req.Actions) > 0 {
		req.Actions = lo.Uniq(req.Actions)
	}

	switch len(words) {
	case 0:
	case 1:
		req.Word = words[0]
	default:
		return Request{}, errors.New("too many arguments")
	}

	return req, nil
}

func (r *Request) setOption(opt byte, value string) error {
	switch opt {
	case 'A':
		action, err := ParseAction(value)
		if err != nil {
			return err
		}
		r.Actions = append(r.Actions, action)
	case 'G':
		r.GlobPattern = value
	case 'W':
		r.WordList = value
	case 'P':
		r.Prefix = value
	case 'S':
		r.Suffix = value
	case 'X':
		r.FilterPattern = value
	}
	return nil
}
