package session

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/simon/screenctl/internal/screen"
)

// Refresher is told when an action changed the set of sessions.
type Refresher interface {
	Refresh()
}

// Actions composes screen commands with host terminals so the visible
// terminals follow the sessions. Failures are reported through Notifier and
// never returned.
type Actions struct {
	Runner    Runner
	Commands  screen.Commands
	Refresher Refresher
	Notifier  Notifier
	Prompter  Prompter
	Terminals Terminals
	Logger    *slog.Logger

	// Detached makes Create leave new sessions unopened.
	Detached bool
}

// Open shows the terminal named after the session, creating one that
// reattaches to it when none exists.
func (a *Actions) Open(ctx context.Context, sess *screen.Session) {
	if sess == nil {
		a.Notifier.Error("No session ID provided.")
		return
	}
	a.Notifier.Info(fmt.Sprintf("Opening Screen session %s:", sess.ID))

	term, ok := a.Terminals.Find(sess.Name)
	if !ok {
		bin := a.Commands.Bin
		if bin == "" {
			bin = screen.DefaultBin
		}
		term = a.Terminals.Create(TerminalOptions{
			Name: sess.Name,
			Path: bin,
			Args: a.Commands.AttachArgs(sess.ID),
		})
		a.logger().Debug("created terminal", "name", sess.Name, "id", sess.ID)
	}

	if err := term.Show(); err != nil {
		a.Notifier.Error(fmt.Sprintf("Failed to open session %s: %v", sess.ID, err))
	}
}

// PromptCreate asks for a name and creates the session. A cancelled or
// empty prompt runs nothing.
func (a *Actions) PromptCreate(ctx context.Context) {
	name, ok := a.Prompter.Input(ctx, InputOptions{
		Prompt:      "Enter a name for the new screen session",
		Placeholder: "screen-session-name",
	})
	if !ok || name == "" {
		return
	}
	a.Create(ctx, name)
}

// Create starts a detached session and opens it.
//
// The new session is opened by its name: the pid screen assigned is not
// known yet, so screen resolves the name itself. With duplicate names the
// wrong session may be attached.
func (a *Actions) Create(ctx context.Context, name string) {
	if name == "" {
		return
	}

	if _, err := a.Runner.Exec(ctx, a.Commands.Create(name)); err != nil {
		a.logger().Warn("create failed", "name", name, "error", err)
		a.Notifier.Error(fmt.Sprintf("Error creating screen session: %v", err))
		return
	}

	if !a.Detached {
		a.Open(ctx, &screen.Session{ID: name, Name: name})
	}
	a.Notifier.Info(fmt.Sprintf("Screen session '%s' created.", name))
	a.Refresher.Refresh()
}

// Kill quits the session and closes its terminal once screen confirms.
func (a *Actions) Kill(ctx context.Context, sess *screen.Session) {
	if sess == nil {
		a.Notifier.Error("No session ID provided.")
		return
	}
	a.Notifier.Info(fmt.Sprintf("Killing Screen session %s", sess.ID))

	// Look the terminal up before quitting; quitting may change its state.
	term, hasTerm := a.Terminals.Find(sess.Name)

	if _, err := a.Runner.Exec(ctx, a.Commands.Quit(sess.ID)); err != nil {
		a.logger().Warn("kill failed", "id", sess.ID, "error", err)
		a.Notifier.Error(fmt.Sprintf("Failed to kill session %s: %v", sess.ID, err))
		return
	}

	a.Notifier.Info(fmt.Sprintf("Screen session %s has been killed.", sess.ID))
	if hasTerm {
		if err := term.Dispose(); err != nil {
			a.logger().Warn("dispose terminal", "name", term.Name(), "error", err)
		}
	}
	a.Refresher.Refresh()
}

// ValidateSessionName rejects blank names.
func ValidateSessionName(input string) string {
	if strings.TrimSpace(input) == "" {
		return "Session name cannot be empty"
	}
	return ""
}

// Rename prompts for a new name, pre-filled with the current one, and
// renames the session when it changed.
func (a *Actions) Rename(ctx context.Context, sess *screen.Session) {
	if sess == nil {
		a.Notifier.Error("No session ID provided.")
		return
	}

	newName, ok := a.Prompter.Input(ctx, InputOptions{
		Prompt:   "Enter the new name for the screen session",
		Value:    sess.Name,
		Validate: ValidateSessionName,
	})
	if !ok || strings.TrimSpace(newName) == "" || newName == sess.Name {
		return
	}

	if _, err := a.Runner.Exec(ctx, a.Commands.Rename(sess.ID, newName)); err != nil {
		a.logger().Warn("rename failed", "id", sess.ID, "new_name", newName, "error", err)
		a.Notifier.Error(fmt.Sprintf("Failed to rename session: %v", err))
		return
	}
	a.logger().Info("renamed session", "id", sess.ID, "new_name", newName)
	a.Refresher.Refresh()
}

// RemoveAll quits every session after the user confirms.
func (a *Actions) RemoveAll(ctx context.Context) {
	if !a.Prompter.Confirm(ctx, "Are you sure you want to remove all screen sessions?") {
		return
	}

	if _, err := a.Runner.Exec(ctx, a.Commands.QuitAll()); err != nil {
		a.logger().Warn("remove all failed", "error", err)
		a.Notifier.Error(fmt.Sprintf("Failed to remove all screen sessions: %v", err))
		return
	}
	a.Notifier.Info("All screen sessions have been removed.")
	a.Refresher.Refresh()
}

// Send types text plus Enter into the session.
func (a *Actions) Send(ctx context.Context, sess *screen.Session, text string) {
	if sess == nil {
		a.Notifier.Error("No session ID provided.")
		return
	}
	if _, err := a.Runner.Exec(ctx, a.Commands.Stuff(sess.ID, text)); err != nil {
		a.Notifier.Error(fmt.Sprintf("Failed to send to session %s: %v", sess.ID, err))
		return
	}
	a.Notifier.Info(fmt.Sprintf("Sent to %s: %s", sess.ID, text))
}

func (a *Actions) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}
