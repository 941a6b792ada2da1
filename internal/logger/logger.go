// Package logger provides the process-wide structured logger for sercha-ocr.
// Messages take slog-style key/value pairs. Debug output is only emitted
// when verbose mode is enabled via the --verbose flag.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
)

// Output formats.
const (
	FormatAuto = "auto"
	FormatText = "text"
	FormatJSON = "json"
)

var (
	mu      sync.RWMutex
	verbose bool
	format  = FormatAuto
	output  io.Writer = os.Stderr
	level   = new(slog.LevelVar)
	log     *slog.Logger
)

func init() {
	rebuild()
}

// rebuild must be called with mu held.
func rebuild() {
	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if resolveFormat(format, output) == FormatJSON {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}
	log = slog.New(handler)
}

// resolveFormat picks text for terminals and JSON otherwise when format is auto.
func resolveFormat(f string, w io.Writer) string {
	if f == FormatText || f == FormatJSON {
		return f
	}
	if file, ok := w.(interface{ Fd() uintptr }); ok {
		fd := file.Fd()
		if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
			return FormatText
		}
	}
	return FormatJSON
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		level.Set(slog.LevelDebug)
	} else {
		level.Set(slog.LevelInfo)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer for logs.
// Defaults to os.Stderr. Useful for testing.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	rebuild()
}

// SetFormat selects "auto", "text" or "json" output.
func SetFormat(f string) error {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "" {
		f = FormatAuto
	}
	switch f {
	case FormatAuto, FormatText, FormatJSON:
	default:
		return fmt.Errorf("log format: unsupported value %q", f)
	}
	mu.Lock()
	defer mu.Unlock()
	format = f
	rebuild()
	return nil
}

// Debug logs a message if verbose mode is enabled.
func Debug(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Debug(msg, args...)
}

// Section prints a section header if verbose mode is enabled.
func Section(name string) {
	mu.RLock()
	defer mu.RUnlock()
	if !verbose {
		return
	}
	if resolveFormat(format, output) == FormatText {
		fmt.Fprintf(output, "\n=== %s ===\n", name)
		return
	}
	log.Debug("section", "name", name)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Info(msg, args...)
}

// Warn logs a warning.
func Warn(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Warn(msg, args...)
}

// Error logs an error.
func Error(msg string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	log.Error(msg, args...)
}
