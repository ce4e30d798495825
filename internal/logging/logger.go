// Package logging holds the process-wide slog logger used by vecmem and
// carries per-operation loggers through context.Context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultLevel is the level of the logger in use before Configure runs.
const DefaultLevel = slog.LevelWarn

type ctxLoggerKey struct{}

var current atomic.Pointer[slog.Logger]

// ParseLevel converts a level name (debug, info, warn, warning, error; any
// case) to slog.Level. Empty selects DefaultLevel.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "":
		return DefaultLevel, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return DefaultLevel, goerr.New("unknown log level", goerr.V("level", level))
	}
}

// New returns a console logger writing to w, or stderr when w is nil.
// goerr values logged as attributes are expanded with their stack values.
func New(level slog.Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return slog.New(clog.New(
		clog.WithWriter(w),
		clog.WithLevel(level),
		clog.WithTimeFmt("15:04:05"),
		clog.WithSource(false),
		clog.WithAttrHook(clog.GoerrHook),
	))
}

// Configure builds a logger for the named level and installs it as the
// default, so code without a context logger honours the same level.
func Configure(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	logger := New(lvl, w)
	SetDefault(logger)
	return logger, nil
}

// Default returns the process-wide logger.
func Default() *slog.Logger {
	if logger := current.Load(); logger != nil {
		return logger
	}
	current.CompareAndSwap(nil, New(DefaultLevel, os.Stderr))
	return current.Load()
}

// SetDefault replaces the process-wide logger. A nil logger is ignored.
func SetDefault(logger *slog.Logger) {
	if logger != nil {
		current.Store(logger)
	}
}

// With returns ctx carrying logger.
func With(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxLoggerKey{}, logger)
}

// From returns the logger carried by ctx, or Default.
func From(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(ctxLoggerKey{}).(*slog.Logger); ok {
		return logger
	}
	return Default()
}
