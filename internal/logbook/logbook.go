// Package logbook is the client's logging sink. The terminal itself belongs
// to the TUI, so structured logs go to a file under .questify/logs, and a
// bounded in-memory tail of human-readable lines feeds the log panel at the
// bottom of the screen.
package logbook

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

const tailCapacity = 64

// Logbook wraps a zerolog logger writing to a file plus a tail ring.
type Logbook struct {
	path   string
	file   *os.File
	logger zerolog.Logger

	mu    sync.Mutex
	lines []string
}

// New opens (or creates) the log file at path. Environment "production"
// raises the level filter to info.
func New(path, environment string) (*Logbook, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logbook: ensure log dir: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logbook: open log file: %w", err)
	}

	book := &Logbook{path: path, file: file}

	level := zerolog.DebugLevel
	if environment == "production" {
		level = zerolog.InfoLevel
	}
	tail := zerolog.ConsoleWriter{
		Out:        (*tailWriter)(book),
		NoColor:    true,
		TimeFormat: "15:04:05",
	}
	book.logger = zerolog.New(zerolog.MultiLevelWriter(file, tail)).
		Level(level).
		With().
		Timestamp().
		Logger()
	return book, nil
}

// Logger exposes the underlying zerolog logger for components that log
// structured fields (the HTTP client, mainly).
func (l *Logbook) Logger() zerolog.Logger {
	if l == nil {
		return zerolog.Nop()
	}
	return l.logger
}

// Path returns the file backing this logbook.
func (l *Logbook) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Info appends an informational entry.
func (l *Logbook) Info(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Info().Msgf(format, args...)
}

// Warn appends a warning entry.
func (l *Logbook) Warn(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Warn().Msgf(format, args...)
}

// Error appends an error entry.
func (l *Logbook) Error(format string, args ...any) {
	if l == nil {
		return
	}
	l.logger.Error().Msgf(format, args...)
}

// Tail returns up to maxLines of the most recent entries, oldest first.
func (l *Logbook) Tail(maxLines int) []string {
	if l == nil || maxLines <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.lines) <= maxLines {
		return append([]string(nil), l.lines...)
	}
	return append([]string(nil), l.lines[len(l.lines)-maxLines:]...)
}

// Close releases the file handle.
func (l *Logbook) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}

// tailWriter receives the console-formatted rendering of each event and
// appends it to the bounded ring.
type tailWriter Logbook

func (w *tailWriter) Write(p []byte) (int, error) {
	line := strings.TrimRight(string(p), "\n")
	if line == "" {
		return len(p), nil
	}
	w.mu.Lock()
	w.lines = append(w.lines, line)
	if len(w.lines) > tailCapacity {
		w.lines = w.lines[len(w.lines)-tailCapacity:]
	}
	w.mu.Unlock()
	return len(p), nil
}
