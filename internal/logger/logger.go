package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger wraps slog with a scope chain so call sites read as
// logger.New("resolver").Function("Resolve").
type Logger struct {
	handler *slog.Logger
	scope   string
}

func New(scope string) Logger {
	return Logger{
		handler: slog.Default(),
		scope:   scope,
	}
}

// Init installs the process-wide slog handler. Called once from main.
func Init(level string, json bool) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	if json {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func (l Logger) Function(name string) Logger {
	return Logger{
		handler: l.handler,
		scope:   l.scope + "." + name,
	}
}

func (l Logger) File(name string) Logger {
	return Logger{
		handler: l.handler,
		scope:   l.scope + "/" + name,
	}
}

func (l Logger) With(args ...any) Logger {
	return Logger{
		handler: l.handler.With(args...),
		scope:   l.scope,
	}
}

func (l Logger) attrs(args []any) []any {
	return append([]any{"scope", l.scope}, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.handler.Info(msg, l.attrs(args)...)
}

func (l Logger) Debug(msg string, args ...any) {
	l.handler.Debug(msg, l.attrs(args)...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.handler.Warn(msg, l.attrs(args)...)
}

// Er logs an error without returning one, for paths that already have an
// error value in hand.
func (l Logger) Er(msg string, err error, args ...any) {
	l.handler.Error(msg, l.attrs(append(args, "error", err))...)
}

func (l Logger) ErMsg(msg string, args ...any) {
	l.handler.Error(msg, l.attrs(args)...)
}

// Err logs and returns a wrapped error so call sites can
// `return log.Err("context", err)`.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.Er(msg, err, args...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Error logs and returns a new error from msg alone.
func (l Logger) Error(msg string, args ...any) error {
	l.ErMsg(msg, args...)
	return fmt.Errorf("%s", msg)
}

func (l Logger) ErrMsg(msg string, args ...any) error {
	return l.Error(msg, args...)
}
