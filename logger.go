package respool

import (
	"context"
	"log/slog"
	"os"
	"strings"

	"github.com/hupe1980/respool/resource"
)

// Logger wraps slog.Logger with pool-specific context.
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
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
// Use this to disable logging entirely.
func NoopLogger() *Logger {
	return NewLogger(slog.DiscardHandler)
}

// ParseLevel parses "debug", "info", "warn" or "error". Anything else is info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo
	}
	return level
}

// WithPool adds a pool field to the logger.
func (l *Logger) WithPool(pool string) *Logger {
	return &Logger{
		Logger: l.Logger.With("pool", pool),
	}
}

// LogPut logs a put operation.
func (l *Logger) LogPut(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "put failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "put completed",
			"name", name,
		)
	}
}

// LogGet logs a lookup and where it was answered.
func (l *Logger) LogGet(ctx context.Context, name string, lookup Lookup) {
	l.DebugContext(ctx, "get completed",
		"name", name,
		"lookup", lookup.String(),
	)
}

// LogRemove logs a remove operation.
func (l *Logger) LogRemove(ctx context.Context, name string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "remove failed",
			"name", name,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "remove completed",
			"name", name,
		)
	}
}

// LogRemoteFailure logs a failed or timed-out remote call. Remote failures
// never surface to callers, so this is the only trace they leave.
func (l *Logger) LogRemoteFailure(ctx context.Context, op string, id resource.ID, err error) {
	l.WarnContext(ctx, "remote call failed",
		"op", op,
		"remote_pool", id.Pool,
		"name", id.Name,
		"error", err,
	)
}
