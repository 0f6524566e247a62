package mirrormap

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with mirrormap-specific context.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithName adds the backing object name to the logger.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("name", name),
	}
}

// WithLength adds a mirror length field to the logger.
func (l *Logger) WithLength(length int) *Logger {
	return &Logger{
		Logger: l.Logger.With("length", length),
	}
}

// WithBacking adds a backing mechanism field to the logger.
func (l *Logger) WithBacking(backing Backing) *Logger {
	return &Logger{
		Logger: l.Logger.With("backing", backing.String()),
	}
}

// LogEstablish logs a mirror establish operation.
func (l *Logger) LogEstablish(ctx context.Context, name string, length int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "establish failed",
			"name", name,
			"length", length,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "mirror established",
			"name", name,
			"length", length,
		)
	}
}

// LogRelease logs a mirror release operation.
func (l *Logger) LogRelease(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "release failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "mirror released",
			"name", name,
		)
	}
}

// LogWipe logs a wipe operation.
func (l *Logger) LogWipe(ctx context.Context, bytes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "wipe failed",
			"bytes", bytes,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "wipe completed",
			"bytes", bytes,
		)
	}
}
