// Package debug provides the process-wide structured logger using log/slog
package debug

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

// Options configures the logger.
type Options struct {
	// Level is one of debug, info, warn, error or off.
	Level string
	// Format is text or json.
	Format string
	// Writer defaults to os.Stderr.
	Writer io.Writer
}

var (
	// logger is the global logger instance
	logger = newLogger(slog.LevelError+1, "text", os.Stderr)
	// enabled indicates if debug logging is enabled
	enabled bool
	// mu protects the logger and enabled flag
	mu sync.RWMutex
)

// ParseLevel converts a level name to a slog level. "off" maps to a level above
// every real one.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	case "off", "none":
		return slog.LevelError + 1, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

func newLogger(level slog.Level, format string, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Init replaces the global logger. Until Init is called logging is discarded.
func Init(opts Options) error {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return err
	}
	format := strings.ToLower(opts.Format)
	if format != "" && format != "text" && format != "json" {
		return fmt.Errorf("unknown log format %q", opts.Format)
	}
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	mu.Lock()
	defer mu.Unlock()
	logger = newLogger(level, format, w)
	enabled = level <= slog.LevelDebug
	return nil
}

// Enabled returns whether debug logging is enabled
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Debug logs a debug message
func Debug(msg string, args ...any) {
	Logger().Debug(msg, args...)
}

// Info logs an info message
func Info(msg string, args ...any) {
	Logger().Info(msg, args...)
}

// Warn logs a warning message
func Warn(msg string, args ...any) {
	Logger().Warn(msg, args...)
}

// Error logs an error message
func Error(msg string, args ...any) {
	Logger().Error(msg, args...)
}

// With returns a logger with the given attributes
func With(args ...any) *slog.Logger {
	return Logger().With(args...)
}

// Logger returns the underlying slog.Logger instance
func Logger() *slog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
