package polyvec

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with polyvec-specific context.
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
// This is the default for every container.
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithContainer tags the logger with the container kind ("vec" or "slices")
// and the element type name.
func (l *Logger) WithContainer(kind, elem string) *Logger {
	return &Logger{
		Logger: l.Logger.With("container", kind, "elem", elem),
	}
}

// WithBacking adds the arena backing ("heap" or "off-heap") to the logger.
func (l *Logger) WithBacking(offHeap bool) *Logger {
	backing := "heap"
	if offHeap {
		backing = "off-heap"
	}
	return &Logger{
		Logger: l.Logger.With("backing", backing),
	}
}

// LogResize logs an arena capacity change. Growth and shrinking both
// relocate the arena; a new capacity of zero means the memory was released.
func (l *Logger) LogResize(ctx context.Context, oldCap, newCap int) {
	switch {
	case newCap == 0:
		l.DebugContext(ctx, "arena released",
			"old_cap", oldCap,
		)
	case newCap > oldCap:
		l.DebugContext(ctx, "arena grown",
			"old_cap", oldCap,
			"new_cap", newCap,
		)
	default:
		l.DebugContext(ctx, "arena shrunk",
			"old_cap", oldCap,
			"new_cap", newCap,
		)
	}
}

// LogAllocFailure logs a capacity request that could not be served.
func (l *Logger) LogAllocFailure(ctx context.Context, requested int, err error) {
	l.WarnContext(ctx, "arena allocation failed",
		"requested", requested,
		"error", err,
	)
}

// LogFree logs the release of a container.
func (l *Logger) LogFree(ctx context.Context, length, capacity int) {
	l.DebugContext(ctx, "container freed",
		"len", length,
		"cap", capacity,
	)
}
