// Package logging builds the zap logger used by the fathom CLI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level resolves the effective level. debug overrides the configured level.
func Level(level string, debug bool) (zapcore.Level, error) {
	if debug {
		return zapcore.DebugLevel, nil
	}
	if level == "" {
		return zapcore.WarnLevel, nil
	}
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	return lvl, nil
}

// New builds a production logger writing JSON lines to stderr.
func New(level string, debug bool) (*zap.Logger, error) {
	lvl, err := Level(level, debug)
	if err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	if debug {
		config.Development = true
		config.Sampling = nil
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger.Named("fathom"), nil
}
