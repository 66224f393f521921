package quadgrid

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with quadgrid-specific context.
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

// WithKind adds the index kind (KindQuadTree or KindGrid) to the logger.
// Each index logs through a logger carrying its kind.
func (l *Logger) WithKind(kind string) *Logger {
	return &Logger{
		Logger: l.Logger.With("kind", kind),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogBuild logs an index construction over count input elements.
func (l *Logger) LogBuild(ctx context.Context, count int, duration time.Duration, err error) {
	l = l.WithCount(count)
	if err != nil {
		l.ErrorContext(ctx, "build failed",
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "build completed",
			"duration", duration,
		)
	}
}

// LogQuery logs a single query.
func (l *Logger) LogQuery(ctx context.Context, results int, duration time.Duration) {
	l.DebugContext(ctx, "query completed",
		"results", results,
		"duration", duration,
	)
}

// LogBatch logs a batch of count queries.
func (l *Logger) LogBatch(ctx context.Context, count int, duration time.Duration, err error) {
	l = l.WithCount(count)
	if err != nil {
		l.ErrorContext(ctx, "batch failed",
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "batch completed",
			"duration", duration,
		)
	}
}
