package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the diagnostic logger. It writes to stderr so it never
// mixes with command output, and stays at warn level unless verbose is set.
func NewLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	cfg.DisableStacktrace = true
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("error building logger: %w", err)
	}

	return logger.Named("hop"), nil
}

// MustLogger falls back to a no-op logger so a broken stderr never stops the CLI.
func MustLogger(verbose bool) *zap.Logger {
	logger, err := NewLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger disabled: %v\n", err)
		return zap.NewNop()
	}

	return logger
}
