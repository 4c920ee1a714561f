// Package logger writes screenctl's structured log to a file so it never
// interferes with the terminal UI.
package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var (
	mu       sync.Mutex
	levelVar = new(slog.LevelVar)
	logFile  *os.File
	current  = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// DefaultPath returns $XDG_STATE_HOME/screenctl/screenctl.log, falling back
// to ~/.local/state.
func DefaultPath() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "screenctl.log")
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "screenctl", "screenctl.log")
}

// Init opens the log file at path (DefaultPath when empty) and makes it the
// slog default. Calling Init again replaces the previous file.
func Init(path string, debug bool) (*slog.Logger, error) {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file %s: %w", path, err)
	}

	SetDebug(debug)
	l := New(f)

	mu.Lock()
	if logFile != nil {
		logFile.Close()
	}
	logFile = f
	current = l
	mu.Unlock()

	slog.SetDefault(l)
	l.Info("logger initialized", "path", path, "debug", debug)
	return l, nil
}

// New returns a text logger writing to w at the shared level.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: levelVar}))
}

// SetDebug switches between debug and info level.
func SetDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
	} else {
		levelVar.Set(slog.LevelInfo)
	}
}

// Get returns the logger set up by Init, or a discarding logger.
func Get() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// Close closes the log file.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	current = slog.New(slog.NewTextHandler(io.Discard, nil))
	return err
}
