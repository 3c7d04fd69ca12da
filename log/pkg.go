package log

import (
	"context"
	"log/slog"
	"os"
	"sync/atomic"
)

// DefaultContextProvider returns the context used by context-unaware logging
// functions.
var DefaultContextProvider = context.TODO

// defaultLog is the package-level logger. It writes to stderr, leaving
// stdout for command output.
var defaultLog atomic.Pointer[Logger]

func init() {
	SetDefault(Make(os.Stderr))
}

// Default returns the package-level logger.
func Default() Logger { return *defaultLog.Load() }

// SetDefault replaces the package-level logger.
func SetDefault(l Logger) { defaultLog.Store(&l) }

// Config updates the package-level logger with the given options.
func Config(opts ...Option) {
	SetDefault(Default().Wrap(opts...))
}

// With returns the package-level logger with the given attributes added.
func With(attrs ...slog.Attr) Logger {
	return Default().With(attrs...)
}

// TraceContext logs a message at Trace level using the package-level logger.
func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelTrace, msg, attrs...)
}

// Trace logs a message at Trace level using the package-level logger.
func Trace(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelTrace, msg, attrs...)
}

// DebugContext logs a message at Debug level using the package-level logger.
func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelDebug, msg, attrs...)
}

// Debug logs a message at Debug level using the package-level logger.
func Debug(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelDebug, msg, attrs...)
}

// InfoContext logs a message at Info level using the package-level logger.
func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelInfo, msg, attrs...)
}

// Info logs a message at Info level using the package-level logger.
func Info(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelInfo, msg, attrs...)
}

// WarnContext logs a message at Warn level using the package-level logger.
func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelWarn, msg, attrs...)
}

// Warn logs a message at Warn level using the package-level logger.
func Warn(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelWarn, msg, attrs...)
}

// ErrorContext logs a message at Error level using the package-level logger.
func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	Default().log(ctx, LevelError, msg, attrs...)
}

// Error logs a message at Error level using the package-level logger.
func Error(msg string, attrs ...slog.Attr) {
	Default().log(DefaultContextProvider(), LevelError, msg, attrs...)
}
