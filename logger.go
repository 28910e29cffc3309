package forestsum

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with forestsum-specific helpers.
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
func NoopLogger() *Logger {
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	})
	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithTrees adds a tree count field to the logger.
func (l *Logger) WithTrees(trees int) *Logger {
	return &Logger{
		Logger: l.Logger.With("trees", trees),
	}
}

// WithFeatures adds a feature count field to the logger.
func (l *Logger) WithFeatures(features int) *Logger {
	return &Logger{
		Logger: l.Logger.With("features", features),
	}
}
