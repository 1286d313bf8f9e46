// Package logging builds the zap logger used by oasis.
// The terminal belongs to the TUI, so logs only ever go to a file.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// FileName is the log file created inside the config directory.
const FileName = "oasis.log"

// New returns a JSON file logger at dir/FileName.
// Debug level is enabled when verbose is set, info otherwise.
func New(dir string, verbose bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	config := zap.NewProductionConfig()
	if verbose {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	path := filepath.Join(dir, FileName)
	config.OutputPaths = []string{path}
	config.ErrorOutputPaths = []string{path}
	config.EncoderConfig.TimeKey = "ts"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// NewOrNop is New, falling back to a no-op logger when the file cannot be opened.
func NewOrNop(dir string, verbose bool) *zap.Logger {
	logger, err := New(dir, verbose)
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
