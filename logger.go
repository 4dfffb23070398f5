package fastbump

import (
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with arena-specific context.
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

// WithArena adds the arena name to every record.
func (l *Logger) WithArena(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("arena", name),
	}
}

// LogGrow logs a grow operation.
func (l *Logger) LogGrow(oldCap, newCap, length int, err error) {
	if err != nil {
		l.Error("grow failed",
			"old_capacity", oldCap,
			"requested_capacity", newCap,
			"len", length,
			"error", err,
		)
	} else {
		l.Debug("grow completed",
			"old_capacity", oldCap,
			"capacity", newCap,
			"len", length,
		)
	}
}

// LogRollback logs a rollback to a checkpoint.
func (l *Logger) LogRollback(from, to int) {
	l.Debug("rollback completed",
		"from", from,
		"to", to,
		"dropped", from-to,
	)
}

// LogReset logs a reset.
func (l *Logger) LogReset(dropped int) {
	l.Debug("reset completed",
		"dropped", dropped,
	)
}

// LogDrain logs a drain.
func (l *Logger) LogDrain(count int) {
	l.Debug("drain completed",
		"count", count,
	)
}

// LogFree logs arena teardown.
func (l *Logger) LogFree(dropped int, releasedBytes int64) {
	l.Debug("arena freed",
		"dropped", dropped,
		"released_bytes", releasedBytes,
	)
}

// LogPressure logs that claims crossed the pressure threshold.
func (l *Logger) LogPressure(claimed, capacity int) {
	l.Warn("arena nearing capacity",
		"claimed", claimed,
		"capacity", capacity,
		"hint", "call Grow under exclusive access before the arena fills",
	)
}
