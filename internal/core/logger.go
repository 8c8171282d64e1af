package core

import (
	"fmt"
	"os"

	"github.com/atinylittleshell/compy/internal/config"
	"go.uber.org/zap"
	"golang.org/x/term"
)

// NewLogger builds the logger described by cfg. Stdout is never a log
// destination because it carries the candidates.
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	logLevel, err := zap.ParseAtomicLevel(cfg.Log.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var loggerConfig zap.Config
	switch {
	case cfg.Log.ToFile:
		logFile := cfg.Log.File
		if logFile == "" {
			logFile = LogFile()
		}
		if err := EnsureDir(logFile); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		loggerConfig = zap.NewProductionConfig()
		loggerConfig.OutputPaths = []string{logFile}
	case term.IsTerminal(int(os.Stderr.Fd())):
		// Interactive use: readable logs on stderr
		loggerConfig = zap.NewDevelopmentConfig()
		loggerConfig.OutputPaths = []string{"stderr"}
	default:
		// Shells capture stderr of completion helpers, keep it quiet
		return zap.NewNop(), nil
	}

	loggerConfig.Level = logLevel
	return loggerConfig.Build()
}
