package geoquad

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/geoquad/geo"
)

// Logger wraps slog.Logger with geoquad-specific context.
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

// LogBuild logs a tree construction.
func (l *Logger) LogBuild(ctx context.Context, points int, bounds geo.Box, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"points", points,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "build completed",
			"points", points,
			"bounds", bounds.String(),
		)
	}
}

// LogDegenerateBounds warns that the computed bounding box has zero
// width or height (collinear or identical input points). The tree is
// still valid; subdivision stops at the depth cap.
func (l *Logger) LogDegenerateBounds(ctx context.Context, bounds geo.Box) {
	l.WarnContext(ctx, "degenerate bounding box",
		"bounds", bounds.String(),
	)
}

// LogQuery logs an overlap query.
func (l *Logger) LogQuery(ctx context.Context, op string, matched int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "query failed",
			"op", op,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "query completed",
			"op", op,
			"matched", matched,
		)
	}
}

// LogBatch logs a batch of overlap queries.
func (l *Logger) LogBatch(ctx context.Context, features int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "batch query failed",
			"features", features,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch query completed",
			"features", features,
		)
	}
}
