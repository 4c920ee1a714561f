// Package notify delivers the user-visible messages produced by session
// actions: to the console, to the desktop, or both.
package notify

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/gen2brain/beeep"
)

const appName = "screenctl"

var (
	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#116620", Dark: "#50FA7B"})

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#B31D28", Dark: "#FF5555"}).
			Bold(true)
)

// Console prints info messages to Out and errors to Err.
type Console struct {
	mu  sync.Mutex
	Out io.Writer
	Err io.Writer
}

// NewConsole writes to stdout and stderr.
func NewConsole() *Console {
	return &Console{Out: os.Stdout, Err: os.Stderr}
}

func (c *Console) Info(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.Out, infoStyle.Render(msg))
}

func (c *Console) Error(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintln(c.Err, errorStyle.Render(msg))
}

// Desktop sends messages as desktop notifications through beeep.
type Desktop struct {
	Logger *slog.Logger

	// notify is beeep.Notify; replaced in tests.
	notify func(title, message string, icon any) error
}

// NewDesktop returns a desktop notifier.
func NewDesktop(logger *slog.Logger) *Desktop {
	return &Desktop{Logger: logger, notify: beeep.Notify}
}

func (d *Desktop) Info(msg string)  { d.send(appName, msg) }
func (d *Desktop) Error(msg string) { d.send(appName+" error", msg) }

func (d *Desktop) send(title, msg string) {
	notify := d.notify
	if notify == nil {
		notify = beeep.Notify
	}
	if err := notify(title, msg, ""); err != nil && d.Logger != nil {
		d.Logger.Warn("desktop notification failed", "title", title, "error", err)
	}
}

// Notifier is the message sink shared by every implementation here.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// Multi fans each message out to several notifiers.
type Multi []Notifier

func (m Multi) Info(msg string) {
	for _, n := range m {
		n.Info(msg)
	}
}

func (m Multi) Error(msg string) {
	for _, n := range m {
		n.Error(msg)
	}
}

// Logged records every message before passing it on.
type Logged struct {
	Next   Notifier
	Logger *slog.Logger
}

func (l Logged) Info(msg string) {
	l.Logger.Info("notify", "level", "info", "text", msg)
	l.Next.Info(msg)
}

func (l Logged) Error(msg string) {
	l.Logger.Warn("notify", "level", "error", "text", msg)
	l.Next.Error(msg)
}
