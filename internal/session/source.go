// Package session turns screen listings into sidebar items and implements the
// open/create/kill/rename actions against a host UI.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/simon/screenctl/internal/screen"
	"github.com/simon/screenctl/internal/telemetry"
)

var (
	ErrUnsupported = errors.New("the system doesn't support screen")
	ErrNotFound    = errors.New("session not found")
	ErrAmbiguous   = errors.New("session reference is ambiguous")
)

// Icon is the visual state of an item.
type Icon int

const (
	IconClosed      Icon = iota // detached session
	IconOpen                    // attached session
	IconUnsupported             // screen is not installed
)

func (i Icon) String() string {
	switch i {
	case IconOpen:
		return "issue-opened"
	case IconUnsupported:
		return "warning"
	default:
		return "issue-closed"
	}
}

// Item is one row of the sidebar. It is either a SessionItem or the
// UnsupportedItem sentinel.
type Item interface {
	Label() string
	Key() string
	Icon() Icon
	// Actionable reports whether open/kill/rename apply to the item.
	Actionable() bool

	isItem()
}

// SessionItem wraps a listed session. Its default action is open.
type SessionItem struct {
	Session screen.Session
}

func (s SessionItem) Label() string    { return s.Session.Name }
func (s SessionItem) Key() string      { return s.Session.ID }
func (s SessionItem) Actionable() bool { return true }
func (SessionItem) isItem()            {}

func (s SessionItem) Icon() Icon {
	if s.Session.Attached {
		return IconOpen
	}
	return IconClosed
}

const (
	UnsupportedKey   = "screen_no_support"
	UnsupportedLabel = "The system doesn't support screen"
)

// UnsupportedItem is shown instead of sessions when screen is not installed.
type UnsupportedItem struct{}

func (UnsupportedItem) Label() string    { return UnsupportedLabel }
func (UnsupportedItem) Key() string      { return UnsupportedKey }
func (UnsupportedItem) Icon() Icon       { return IconUnsupported }
func (UnsupportedItem) Actionable() bool { return false }
func (UnsupportedItem) isItem()          {}

// Source lists sessions for the sidebar and owns the change channel the UI
// subscribes to. Every call lists from scratch; nothing is cached.
type Source struct {
	Runner    Runner
	Commands  screen.Commands
	Logger    *slog.Logger
	Telemetry *telemetry.Telemetry

	// Available reports whether screen is installed. Defaults to running
	// Commands.Probe through Runner.Exec.
	Available func(ctx context.Context) bool

	changes     *Changes
	disposeOnce sync.Once
}

// NewSource creates a Source that runs commands through runner.
func NewSource(runner Runner, cmds screen.Commands) *Source {
	return &Source{
		Runner:   runner,
		Commands: cmds,
		changes:  NewChanges(),
	}
}

// Children returns the current items: one per session, or the unsupported
// sentinel alone.
func (s *Source) Children(ctx context.Context) []Item {
	sessions, err := s.Sessions(ctx)
	if errors.Is(err, ErrUnsupported) {
		return []Item{UnsupportedItem{}}
	}

	items := make([]Item, 0, len(sessions))
	for _, sess := range sessions {
		items = append(items, SessionItem{Session: sess})
	}
	return items
}

// Sessions runs the listing and parses it. It returns ErrUnsupported when
// screen is not installed; a failed listing yields no sessions.
func (s *Source) Sessions(ctx context.Context) ([]screen.Session, error) {
	if !s.available(ctx) {
		s.logger().Info("screen not found on PATH", "bin", s.Commands.Bin)
		return nil, ErrUnsupported
	}

	out := s.Runner.Output(ctx, s.Commands.List())
	sessions := screen.ParseList(out)
	s.Telemetry.RecordListing(ctx, len(sessions))
	s.logger().Debug("listed sessions", "count", len(sessions))
	return sessions, nil
}

// Lookup resolves ref to a session by exact ID, then display name, then pid.
func (s *Source) Lookup(ctx context.Context, ref string) (*screen.Session, error) {
	ref = strings.TrimSpace(ref)
	sessions, err := s.Sessions(ctx)
	if err != nil {
		return nil, err
	}

	for i := range sessions {
		if sessions[i].ID == ref {
			return &sessions[i], nil
		}
	}

	var matches []screen.Session
	for _, sess := range sessions {
		if sess.Name == ref || sess.PID() == ref {
			matches = append(matches, sess)
		}
	}
	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNotFound, ref)
	case 1:
		return &matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		return nil, fmt.Errorf("%w: %q matches %s", ErrAmbiguous, ref, strings.Join(ids, ", "))
	}
}

// Refresh tells subscribers that previously returned items are stale.
func (s *Source) Refresh() {
	s.changes.Notify()
}

// Subscribe registers a handler for Refresh signals.
func (s *Source) Subscribe(handler func()) (unsubscribe func()) {
	return s.changes.Subscribe(handler)
}

// Dispose releases the change channel. Call once, at shutdown.
func (s *Source) Dispose() {
	s.disposeOnce.Do(s.changes.Close)
}

func (s *Source) available(ctx context.Context) bool {
	if s.Available != nil {
		return s.Available(ctx)
	}
	_, err := s.Runner.Exec(ctx, s.Commands.Probe())
	return err == nil
}

func (s *Source) logger() *slog.Logger {
	if s.Logger == nil {
		return slog.Default()
	}
	return s.Logger
}
