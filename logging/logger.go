// Package logging is a thin wrapper around zap for the CLI/driver
// boundary's own operational logging — startup, config problems, skipped
// input lines, shutdown. The matching core never imports this package: its
// only observable output is the report list and, optionally, the trace log
// (internal/trace), both governed by their own formats.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a *zap.SugaredLogger with a couple of domain-shaped helpers.
type Logger struct {
	*zap.SugaredLogger
}

// Config controls the underlying zap core.
type Config struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// DefaultConfig returns a reasonable default for local runs.
func DefaultConfig() Config {
	return Config{Level: "info", Format: "console"}
}

// New builds a Logger writing to stderr, zap's default output path for both
// its production and development configs.
func New(cfg Config) (*Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("logging: invalid level %q: %w", cfg.Level, err)
	}

	zapCfg := zap.NewProductionConfig()
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	base, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build core: %w", err)
	}

	return &Logger{SugaredLogger: base.Sugar()}, nil
}

// LogIngestError records a skipped input line without aborting the run,
// mirroring the fault-tolerant ingest contract at the CSV boundary.
func (l *Logger) LogIngestError(line int, err error) {
	l.Warnw("skipped malformed input line", "line", line, "error", err)
}

// LogEngineFatal records an engine invariant violation immediately before
// the process exits; there is no recovery path for this class of error.
func (l *Logger) LogEngineFatal(err error) {
	l.Errorw("engine invariant violation", "error", err)
}

// Close flushes any buffered log entries.
func (l *Logger) Close() error {
	return l.Sync()
}
