// Command compysh runs bash scripts in an embedded shell that provides the
// compgen builtin, for platforms and shells that lack one.
package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/atinylittleshell/compy/internal/completion"
	"github.com/atinylittleshell/compy/internal/config"
	"github.com/atinylittleshell/compy/internal/core"
	"github.com/atinylittleshell/compy/internal/shell"
	"github.com/atinylittleshell/compy/internal/sysdb"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	status := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(status)
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := config.Load(core.ConfigFile())
	if err != nil {
		fmt.Fprintf(stderr, "compysh: %v\n", err)
		return 1
	}

	logger, err := core.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "compysh: %v\n", err)
		return 1
	}
	defer logger.Sync() // Flush any buffered log entries

	fs := afero.NewOsFs()
	base := shell.Config{
		Stdin:  stdin,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
		Compgen: completion.HandlerConfig{
			FS:      fs,
			Records: sysdb.NewDB(fs, cfg.SysDB.Root),
			Logger:  logger,
		},
	}

	cmd := newRootCmd(base)
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err = cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}
	if status, ok := shell.ExitCode(err); ok {
		return status
	}
	logger.Debug("script failed", zap.Error(err))
	fmt.Fprintf(stderr, "compysh: %v\n", err)
	return 1
}

func newRootCmd(base shell.Config) *cobra.Command {
	var command string
	if base.Logger == nil {
		base.Logger = zap.NewNop()
	}

	cmd := &cobra.Command{
		Use:   "compysh [-c script | file] [args...]",
		Short: "Run bash scripts with a compgen builtin",
		Long: `compysh runs a bash script in an embedded shell whose compgen builtin is
served by compy. Without -c or a file, the script is read from stdin.`,
		Version:       BUILD_VERSION,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := base
			var (
				script []byte
				file   string
			)

			switch {
			case cmd.Flags().Changed("command"):
				cfg.Params = args
				script = []byte(command)
			case len(args) == 0:
				// read the whole script before the shell starts reading stdin
				var err error
				if script, err = io.ReadAll(cmd.InOrStdin()); err != nil {
					return err
				}
			default:
				file = args[0]
				cfg.Params = args[1:]
			}

			runner, err := shell.New(cfg)
			if err != nil {
				return err
			}

			if file != "" {
				err = runner.RunFile(cmd.Context(), file)
			} else {
				err = runner.Run(cmd.Context(), bytes.NewReader(script), "")
			}
			base.Logger.Debug("script finished", zap.Bool("exited", runner.Exited()), zap.Error(err))
			return err
		},
	}

	cmd.Flags().StringVarP(&command, "command", "c", "", "run the given script instead of a file")
	// Everything after the script file belongs to the script
	cmd.Flags().SetInterspersed(false)

	return cmd
}
