// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/npmwrap/internal/core/ports"
	"go.trai.ch/npmwrap/internal/ui/output"
)

// messager describes an error that can report its own message without the chain.
// zerr.Error provides it.
type messager interface {
	Message() string
}

// metadataer describes an error that carries structured metadata.
// zerr.Error provides it.
type metadataer interface {
	Metadata() map[string]any
}

// ErrorEntry is one link of an error chain as shown to the user.
type ErrorEntry struct {
	Message  string
	Metadata map[string]any
}

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger   *slog.Logger
	mu       sync.RWMutex
	jsonMode bool
	ciMode   bool
	output   io.Writer
}

// New creates a new Logger instance writing pretty output to stderr.
func New() ports.Logger {
	return &Logger{
		logger: slog.New(newHandler(os.Stderr, false, false)),
		output: os.Stderr,
	}
}

func newHandler(w io.Writer, jsonMode, ciMode bool) slog.Handler {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	switch {
	case jsonMode:
		return slog.NewJSONHandler(w, opts)
	case ciMode:
		return NewPrettyHandlerWithProfile(w, opts, output.ColorProfileANSI)
	default:
		return NewPrettyHandler(w, opts)
	}
}

// SetOutput updates the logger's output destination, preserving the JSON mode.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if w == nil {
		w = os.Stderr
	}
	l.output = w
	l.logger = slog.New(newHandler(w, l.jsonMode, l.ciMode))
}

// SetJSON switches between JSON and pretty logging, preserving the output.
func (l *Logger) SetJSON(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.jsonMode = enable
	l.rebuild()
}

// SetCI limits pretty output to basic ANSI colors for CI log viewers.
func (l *Logger) SetCI(enable bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.ciMode = enable
	l.rebuild()
}

// rebuild recreates the handler for the current settings. Callers hold mu.
func (l *Logger) rebuild() {
	w := l.output
	if w == nil {
		w = os.Stderr
	}
	l.logger = slog.New(newHandler(w, l.jsonMode, l.ciMode))
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error with its full cause chain.
func (l *Logger) Error(err error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if err == nil {
		return
	}

	if l.jsonMode {
		l.logger.Error("operation failed", "error", err.Error())
		return
	}

	l.logger.Error(formatErrorEntries(collectErrorEntries(err)))
}

// collectErrorEntries walks the chain of zerr errors. A standard error ends
// the walk, since its Error() already includes whatever it wraps.
func collectErrorEntries(err error) []ErrorEntry {
	var entries []ErrorEntry
	current := err

	for current != nil {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, ErrorEntry{Message: current.Error()})
			break
		}

		entry := ErrorEntry{Message: m.Message()}
		if md, ok := current.(metadataer); ok {
			entry.Metadata = md.Metadata()
		}
		entries = append(entries, entry)
		current = errors.Unwrap(current)
	}

	return entries
}

// formatErrorEntries renders entries as "Error: ..." followed by an indented
// "Caused by:" list. Metadata keys are printed in sorted order.
func formatErrorEntries(entries []ErrorEntry) string {
	var lines []string

	for i, entry := range entries {
		msgLines := strings.Split(entry.Message, "\n")

		var head, indent string
		if i == 0 {
			head, indent = "Error: ", "       "
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			head, indent = "    → ", "      "
		}

		lines = append(lines, head+msgLines[0])
		for _, line := range msgLines[1:] {
			lines = append(lines, indent+line)
		}
		for _, key := range slices.Sorted(maps.Keys(entry.Metadata)) {
			lines = append(lines, fmt.Sprintf("%s%s: %v", indent, key, entry.Metadata[key]))
		}
	}

	return strings.Join(lines, "\n")
}
