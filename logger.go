package slicemap

import (
	"context"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with slicemap-specific context.
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
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithName adds a container name field, useful when several containers
// share one handler.
func (l *Logger) WithName(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("slicemap", name),
	}
}

// LogAdd logs an add operation. Failures are logged at warn level since
// they are ordinary capacity or key conditions, not faults.
func (l *Logger) LogAdd(key any, r Range, err error) {
	ctx := context.Background()
	if err != nil {
		l.WarnContext(ctx, "add failed",
			"error", err,
		)
		return
	}
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "slice added",
		"key", key,
		"start", r.Start,
		"end", r.End,
	)
}

// LogRemove logs a remove operation and the compaction work it caused.
func (l *Logger) LogRemove(key any, stats CompactionStats, found bool) {
	ctx := context.Background()
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	if !found {
		l.DebugContext(ctx, "remove: key not found",
			"key", key,
		)
		return
	}
	l.DebugContext(ctx, "slice removed",
		"key", key,
		"start", stats.Removed.Start,
		"end", stats.Removed.End,
		"items_shifted", stats.ItemsShifted,
		"slices_rebased", stats.SlicesRebased,
	)
}

// LogEvict logs the eviction of an older-generation slice by a pre-keyed add.
func (l *Logger) LogEvict(key any, stats CompactionStats) {
	ctx := context.Background()
	if !l.Enabled(ctx, slog.LevelDebug) {
		return
	}
	l.DebugContext(ctx, "stale slice evicted",
		"key", key,
		"start", stats.Removed.Start,
		"end", stats.Removed.End,
		"items_shifted", stats.ItemsShifted,
	)
}

// LogClear logs a clear operation.
func (l *Logger) LogClear(items, slices int) {
	l.DebugContext(context.Background(), "slicemap cleared",
		"items", items,
		"slices", slices,
	)
}
