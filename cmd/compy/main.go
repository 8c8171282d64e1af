package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atinylittleshell/compy/internal/completion"
	"github.com/atinylittleshell/compy/internal/config"
	"github.com/atinylittleshell/compy/internal/core"
	"github.com/atinylittleshell/compy/internal/sysdb"
	"github.com/spf13/afero"
	"go.uber.org/zap"
)

var BUILD_VERSION = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one completion and returns the process exit status.
func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load(core.ConfigFile())
	if err != nil {
		fmt.Fprintf(stderr, "compy: %v\n", err)
		return 1
	}

	logger, err := core.NewLogger(cfg)
	if err != nil {
		fmt.Fprintf(stderr, "compy: %v\n", err)
		return 1
	}
	defer logger.Sync() // Flush any buffered log entries

	logger.Debug("-------- new compy run --------", zap.Strings("args", args))

	// PATH and the environment are captured once, here
	fs := afero.NewOsFs()
	env := completion.Env{
		FS:      fs,
		Path:    os.Getenv("PATH"),
		Environ: os.Environ(),
		Records: sysdb.NewDB(fs, cfg.SysDB.Root),
		Logger:  logger,
	}

	cmd := newRootCmd(cfg, env)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		logger.Debug("completion failed", zap.Error(err))
		fmt.Fprintf(stderr, "compy: %v\n", err)
		return 1
	}
	return 0
}
