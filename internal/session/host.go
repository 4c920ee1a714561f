package session

import "context"

// Notifier shows user-visible messages.
type Notifier interface {
	Info(msg string)
	Error(msg string)
}

// InputOptions configures a text prompt.
type InputOptions struct {
	Prompt      string
	Placeholder string
	Value       string // pre-filled text

	// Validate returns a message explaining why the input is rejected, or "".
	Validate func(input string) string
}

// Prompter asks the user for input.
type Prompter interface {
	// Input returns the entered text; ok is false when the prompt was cancelled.
	Input(ctx context.Context, opts InputOptions) (text string, ok bool)
	// Confirm asks a yes/no question.
	Confirm(ctx context.Context, msg string) bool
}

// Terminal is a host terminal attached to one session.
type Terminal interface {
	Name() string
	// Show brings the terminal to the foreground, starting its process if needed.
	Show() error
	Dispose() error
}

// TerminalOptions describes the process a new terminal runs.
type TerminalOptions struct {
	Name string
	Path string
	Args []string
}

// Terminals is the host's set of open terminals, keyed by display name.
type Terminals interface {
	Find(name string) (Terminal, bool)
	Create(opts TerminalOptions) Terminal
}

// Runner runs screen command lines. Output swallows failures (after
// reporting them) and Exec returns them.
type Runner interface {
	Output(ctx context.Context, command string) string
	Exec(ctx context.Context, command string) (string, error)
}
