package screen

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/simon/screenctl/internal/telemetry"
)

// DefaultShell runs every command line.
const DefaultShell = "/bin/sh"

// maxStderrLen caps the stderr kept in a CommandError.
const maxStderrLen = 4096

// ErrorNotifier receives the user-visible message for a failed lenient command.
type ErrorNotifier interface {
	Error(msg string)
}

// CommandError is returned by Runner.Exec when a command fails to spawn or
// exits non-zero.
type CommandError struct {
	Command string
	Stderr  string
	Err     error
}

// Error returns the stderr text when there is any, otherwise the process error.
func (e *CommandError) Error() string {
	if e.Stderr != "" {
		return e.Stderr
	}
	return e.Err.Error()
}

func (e *CommandError) Unwrap() error { return e.Err }

// ExitCode returns the process exit code, or -1 if the process never ran.
func (e *CommandError) ExitCode() int {
	var exitErr *exec.ExitError
	if errors.As(e.Err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Runner executes command lines through a shell. It holds no locks: any
// number of commands may run at once and complete in any order.
type Runner struct {
	Shell     string
	Notifier  ErrorNotifier
	Logger    *slog.Logger
	Telemetry *telemetry.Telemetry
}

// Output runs command and returns its stdout verbatim. A failure is reported
// to the notifier and yields "", so callers treat it like empty output.
func (r *Runner) Output(ctx context.Context, command string) string {
	out, err := r.run(ctx, "lenient", command)
	if err != nil {
		if r.Notifier != nil {
			r.Notifier.Error(fmt.Sprintf("Error executing command: %v", err))
		}
		return ""
	}
	return out
}

// Exec runs command and returns its stdout, or a *CommandError carrying the
// failure detail. Nothing is reported to the notifier.
func (r *Runner) Exec(ctx context.Context, command string) (string, error) {
	return r.run(ctx, "strict", command)
}

func (r *Runner) run(ctx context.Context, variant, command string) (string, error) {
	ctx, span := r.Telemetry.StartCommand(ctx, variant, command)
	defer span.End()

	shell := r.Shell
	if shell == "" {
		shell = DefaultShell
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, shell, "-c", command)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	r.logger().Debug("running command", "variant", variant, "command", command)
	err := cmd.Run()
	r.Telemetry.RecordCommand(ctx, variant, err == nil)
	if err != nil {
		cerr := &CommandError{
			Command: command,
			Stderr:  truncate(strings.TrimSpace(stderr.String()), maxStderrLen),
			Err:     err,
		}
		span.RecordError(cerr)
		r.logger().Warn("command failed", "variant", variant, "command", command, "exit_code", cerr.ExitCode(), "error", cerr)
		return "", cerr
	}

	r.logger().Debug("command finished", "variant", variant, "command", command, "bytes", stdout.Len())
	return stdout.String(), nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "...(truncated)"
}
