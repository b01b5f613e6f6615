// Package log provides categorized structured logging for wonderland.
// Entries go through a log/slog text handler to a file or writer and are
// dropped unless logging was enabled with --debug or --log-file.
package log

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Level represents log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) slog() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// ParseLevel parses a level name. Unknown names map to LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// Category groups related log messages.
type Category string

const (
	CatDispatch Category = "dispatch" // Command routing and handler execution
	CatConfig   Category = "config"   // Configuration loading and reloads
	CatServer   Category = "server"   // JSON-lines protocol
	CatPlugin   Category = "plugin"   // Lua rewrites
	CatCLI      Category = "cli"      // Command line entry points
	CatApp      Category = "app"      // Edit batches and clipboard writes
)

type logger struct {
	mu      sync.Mutex
	file    *os.File
	handler slog.Handler
	level   *slog.LevelVar
	enabled bool
}

var defaultLogger struct {
	mu sync.RWMutex
	l  *logger
}

// Init opens path for appending and routes all log output to it.
// Returns a cleanup function that closes the file.
func Init(path string, level Level) (func(), error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644) //nolint:gosec // user-chosen log path
	if err != nil {
		return nil, err
	}
	l := newLogger(f, level)
	l.file = f
	install(l)
	return func() {
		install(nil)
		_ = f.Close()
	}, nil
}

// InitWriter routes all log output to w.
func InitWriter(w io.Writer, level Level) {
	install(newLogger(w, level))
}

// Reset disables logging and releases the current writer.
func Reset() {
	install(nil)
}

func newLogger(w io.Writer, level Level) *logger {
	lv := new(slog.LevelVar)
	lv.Set(level.slog())
	return &logger{
		handler: slog.NewTextHandler(w, &slog.HandlerOptions{Level: lv}),
		level:   lv,
		enabled: true,
	}
}

func install(l *logger) {
	defaultLogger.mu.Lock()
	defaultLogger.l = l
	defaultLogger.mu.Unlock()
}

func current() *logger {
	defaultLogger.mu.RLock()
	defer defaultLogger.mu.RUnlock()
	return defaultLogger.l
}

// SetEnabled toggles logging on/off.
func SetEnabled(enabled bool) {
	if l := current(); l != nil {
		l.mu.Lock()
		l.enabled = enabled
		l.mu.Unlock()
	}
}

// SetMinLevel sets the minimum log level.
func SetMinLevel(level Level) {
	if l := current(); l != nil {
		l.level.Set(level.slog())
	}
}

// Debug logs at debug level.
func Debug(cat Category, msg string, fields ...any) {
	write(LevelDebug, cat, msg, fields...)
}

// Info logs at info level.
func Info(cat Category, msg string, fields ...any) {
	write(LevelInfo, cat, msg, fields...)
}

// Warn logs at warning level.
func Warn(cat Category, msg string, fields ...any) {
	write(LevelWarn, cat, msg, fields...)
}

// Error logs at error level.
func Error(cat Category, msg string, fields ...any) {
	write(LevelError, cat, msg, fields...)
}

// ErrorErr logs an error with the error value.
func ErrorErr(cat Category, msg string, err error, fields ...any) {
	if err != nil {
		fields = append(fields, "error", err.Error())
	} else {
		fields = append(fields, "error", "<nil>")
	}
	write(LevelError, cat, msg, fields...)
}

func write(level Level, cat Category, msg string, fields ...any) {
	l := current()
	if l == nil {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.enabled || !l.handler.Enabled(context.Background(), level.slog()) {
		return
	}
	// odd field counts are reported by slog as !BADKEY
	slog.New(l.handler).Log(context.Background(), level.slog(), msg, append([]any{"cat", string(cat)}, fields...)...)
}

// Logger logs every message under one category. It satisfies the small
// Debug/Info/Error interfaces that hooks and plugins accept.
type Logger struct {
	cat Category
}

// For returns a Logger for a category.
func For(cat Category) Logger {
	return Logger{cat: cat}
}

// Debug logs at debug level.
func (l Logger) Debug(msg string, fields ...any) { Debug(l.cat, msg, fields...) }

// Info logs at info level.
func (l Logger) Info(msg string, fields ...any) { Info(l.cat, msg, fields...) }

// Warn logs at warning level.
func (l Logger) Warn(msg string, fields ...any) { Warn(l.cat, msg, fields...) }

// Error logs at error level.
func (l Logger) Error(msg string, fields ...any) { Error(l.cat, msg, fields...) }
