package particlestore

import (
	"context"
	"log/slog"
	"os"
	"time"
)

// Logger wraps slog.Logger with particlestore-specific context.
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
func NoopLogger() *Logger {
	return &Logger{
		Logger: slog.New(slog.DiscardHandler),
	}
}

// WithType adds a particle type field to the logger.
func (l *Logger) WithType(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("type", name),
	}
}

// WithBlock adds a block ID field to the logger.
func (l *Logger) WithBlock(id uint64) *Logger {
	return &Logger{
		Logger: l.Logger.With("block", id),
	}
}

// WithCount adds a count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// LogRegister logs a particle type registration.
func (l *Logger) LogRegister(ctx context.Context, name string, attributes int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "register type failed",
			"type", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "type registered",
			"type", name,
			"attributes", attributes,
		)
	}
}

// LogAdd logs particle activation.
func (l *Logger) LogAdd(ctx context.Context, name string, count, blocks int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "add particles failed",
			"type", name,
			"count", count,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "particles added",
			"type", name,
			"count", count,
			"blocks", blocks,
		)
	}
}

// LogStep logs a per-block step over one particle type.
func (l *Logger) LogStep(ctx context.Context, name string, blocks, particles int, elapsed time.Duration, err error) {
	if err != nil {
		l.ErrorContext(ctx, "step failed",
			"type", name,
			"blocks", blocks,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "step completed",
			"type", name,
			"blocks", blocks,
			"particles", particles,
			"elapsed", elapsed,
		)
	}
}

// LogSnapshot logs a snapshot operation.
func (l *Logger) LogSnapshot(ctx context.Context, name string, bytes int64, err error) {
	if err != nil {
		l.ErrorContext(ctx, "snapshot failed",
			"type", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot saved",
			"type", name,
			"bytes", bytes,
		)
	}
}

// LogRestore logs a snapshot restore.
func (l *Logger) LogRestore(ctx context.Context, name string, particles int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "restore failed",
			"type", name,
			"error", err,
		)
	} else {
		l.InfoContext(ctx, "snapshot restored",
			"type", name,
			"particles", particles,
		)
	}
}
