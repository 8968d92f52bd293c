// Package logging builds the process logger. The terminal belongs to the
// prompts, so logs only go to a file and are off when none is configured.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options selects where and how much to log.
type Options struct {
	File    string
	Level   string
	Verbose bool
}

// New returns a production zap logger writing to o.File, or a no-op logger
// when o.File is empty.
func New(o Options) (*zap.Logger, error) {
	if o.File == "" {
		return zap.NewNop(), nil
	}

	config := zap.NewProductionConfig()
	level := zapcore.InfoLevel
	if o.Level != "" {
		if err := level.UnmarshalText([]byte(o.Level)); err != nil {
			return nil, fmt.Errorf("logging: level %q: %w", o.Level, err)
		}
	}
	if o.Verbose {
		level = zapcore.DebugLevel
	}
	config.Level = zap.NewAtomicLevelAt(level)

	if err := os.MkdirAll(filepath.Dir(o.File), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	config.OutputPaths = []string{o.File}
	config.ErrorOutputPaths = []string{o.File}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build: %w", err)
	}
	return logger, nil
}
