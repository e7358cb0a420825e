// Package logging provides zerolog-based structured logging for tcdev.
//
// Loggers are constructed once per invocation, tagged with a trace ID, and
// carried through context.Context so every component logs with the same
// correlation fields.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	maxLogSizeMB  = 10
	maxLogBackups = 3
	maxLogAgeDays = 28
)

// Config describes the desired logger output.
type Config struct {
	// Level is a zerolog level name ("debug", "info", ...). Invalid values
	// fall back to info.
	Level string
	// Format selects "console" (human-readable, default) or "json".
	Format string
	// File, when non-empty, appends JSON log lines to the given path with
	// size-based rotation, in addition to the console stream.
	File string
}

// Result reports how the logger was actually constructed.
type Result struct {
	Logger zerolog.Logger
	// UsingFile is true when log lines are also written to Result.FilePath.
	UsingFile bool
	FilePath  string
	// FallbackUsed is true when file logging was requested but could not be
	// set up; FallbackReason explains why.
	FallbackUsed   bool
	FallbackReason string
}

// New constructs a logger per cfg. File-output failures never fail the
// invocation; the logger falls back to console-only and records the reason.
func New(cfg Config) Result {
	lvl, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		lvl = zerolog.InfoLevel
	}

	var writers []io.Writer
	if cfg.Format == "json" {
		writers = append(writers, os.Stderr)
	} else {
		writers = append(writers, zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}

	result := Result{}
	if cfg.File != "" {
		// Probe writability up front; lumberjack defers file creation until
		// the first write, which would hide permission errors.
		f, openErr := os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
		if openErr != nil {
			result.FallbackUsed = true
			result.FallbackReason = openErr.Error()
		} else {
			_ = f.Close()
			writers = append(writers, &lumberjack.Logger{
				Filename:   cfg.File,
				MaxSize:    maxLogSizeMB,
				MaxBackups: maxLogBackups,
				MaxAge:     maxLogAgeDays,
			})
			result.UsingFile = true
			result.FilePath = cfg.File
		}
	}

	result.Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return result
}

// ComponentLogger returns a child logger tagged with a component name.
func ComponentLogger(logger zerolog.Logger, component string) zerolog.Logger {
	return logger.With().Str("component", component).Logger()
}

// FromContext returns the logger stored in ctx. When no logger was attached
// zerolog returns a disabled logger, so callers can log unconditionally.
func FromContext(ctx context.Context) *zerolog.Logger {
	return zerolog.Ctx(ctx)
}
