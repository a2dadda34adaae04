// Package logging builds the zap logger for the binary.
package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects level and destination.
type Options struct {
	Production bool
	Level      string
	// File receives the logs. Empty means stderr, unless Quiet is set.
	File string
	// Quiet drops logs that have no File, for when the terminal is owned
	// by the TUI.
	Quiet bool
}

// New builds a logger. The caller must Sync it before exiting.
func New(opts Options) (*zap.Logger, error) {
	if opts.File == "" && opts.Quiet {
		return zap.NewNop(), nil
	}

	var cfg zap.Config
	if opts.Production {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	level := zapcore.InfoLevel
	if opts.Level != "" {
		if err := level.Set(opts.Level); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
	}
	cfg.Level = zap.NewAtomicLevelAt(level)

	if opts.File != "" {
		// Fail early with a readable error instead of zap's sink error.
		f, err := os.OpenFile(opts.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		f.Close()
		cfg.OutputPaths = []string{opts.File}
		cfg.ErrorOutputPaths = []string{opts.File}
	} else {
		cfg.OutputPaths = []string{"stderr"}
		cfg.ErrorOutputPaths = []string{"stderr"}
	}

	return cfg.Build()
}
