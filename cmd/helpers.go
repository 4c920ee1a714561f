package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/simon/screenctl/internal/config"
	"github.com/simon/screenctl/internal/logger"
	"github.com/simon/screenctl/internal/notify"
	"github.com/simon/screenctl/internal/screen"
	"github.com/simon/screenctl/internal/session"
	"github.com/simon/screenctl/internal/telemetry"
	"github.com/simon/screenctl/internal/terminal"
)

// app is everything a command needs, built from the loaded config.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	telemetry *telemetry.Telemetry
	source    *session.Source
	terminals *terminal.Manager
	actions   *session.Actions
	failures  *failureCounter
}

// newApp loads the config and wires the session layer to the given host.
// Warnings about optional parts (log file, telemetry) go to stderr.
func newApp(ctx context.Context, host session.Notifier, prompter session.Prompter, launch terminal.Launcher) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if screenBin != "" {
		cfg.Screen = screenBin
	}

	log, err := logger.Init(cfg.LogFile, debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %v\n", err)
		log = logger.Get()
	}

	telemetry.Version = versionString
	tel, err := telemetry.Init(ctx, telemetry.Config{
		Endpoint: cfg.OTELEndpoint,
		Headers:  cfg.OTELHeaders,
	})
	if err != nil {
		log.Warn("telemetry disabled", "error", err)
		tel = nil
	}

	var notifier notify.Notifier = host
	if cfg.DesktopNotifications {
		notifier = notify.Multi{host, notify.NewDesktop(log)}
	}
	failures := &failureCounter{next: notify.Logged{Next: notifier, Logger: log}}

	cmds := screen.Commands{Bin: cfg.Screen}
	runner := &screen.Runner{
		Shell:     cfg.Shell,
		Notifier:  failures,
		Logger:    log,
		Telemetry: tel,
	}

	source := session.NewSource(runner, cmds)
	source.Logger = log
	source.Telemetry = tel

	terminals := terminal.NewManager(launch)
	terminals.OnChange(func(t *terminal.Terminal) {
		log.Debug("terminal changed", "name", t.Name(), "state", t.State())
		source.Refresh()
	})

	actions := &session.Actions{
		Runner:    runner,
		Commands:  cmds,
		Refresher: source,
		Notifier:  failures,
		Prompter:  prompter,
		Terminals: terminals,
		Logger:    log,
	}

	log.Debug("app ready", "config", cfg.ConfigFile, "screen", cfg.Screen, "shell", cfg.Shell)
	return &app{
		cfg:       cfg,
		logger:    log,
		telemetry: tel,
		source:    source,
		terminals: terminals,
		actions:   actions,
		failures:  failures,
	}, nil
}

// Close tears down the change channel and flushes telemetry and the log.
func (a *app) Close() {
	a.source.Dispose()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	a.telemetry.Shutdown(ctx)

	_ = logger.Close()
}

// lookup resolves a session reference for commands that take one.
func (a *app) lookup(ctx context.Context, ref string) (*screen.Session, error) {
	sess, err := a.source.Lookup(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve %q: %w", ref, err)
	}
	return sess, nil
}

// done turns reported action failures into a command error.
func (a *app) done(action string) error {
	if n := a.failures.Count(); n > 0 {
		return fmt.Errorf("%s failed", action)
	}
	return nil
}

// failureCounter forwards notifications and counts the errors.
type failureCounter struct {
	next session.Notifier
	n    atomic.Int32
}

func (f *failureCounter) Info(msg string) { f.next.Info(msg) }

func (f *failureCounter) Error(msg string) {
	f.n.Add(1)
	f.next.Error(msg)
}

func (f *failureCounter) Count() int { return int(f.n.Load()) }

// linePrompter asks questions on a terminal, one line per answer.
type linePrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newLinePrompter(in io.Reader, out io.Writer) *linePrompter {
	return &linePrompter{in: bufio.NewReader(in), out: out}
}

func (p *linePrompter) readLine() (string, bool) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", false
	}
	return strings.TrimRight(line, "\r\n"), true
}

// Input shows the prompt with the prefilled value in brackets. An empty
// answer keeps that value; end of input cancels.
func (p *linePrompter) Input(ctx context.Context, opts session.InputOptions) (string, bool) {
	for {
		if ctx.Err() != nil {
			return "", false
		}
		hint := opts.Value
		if hint == "" {
			hint = opts.Placeholder
		}
		if hint != "" {
			fmt.Fprintf(p.out, "%s [%s]: ", opts.Prompt, hint)
		} else {
			fmt.Fprintf(p.out, "%s: ", opts.Prompt)
		}

		answer, ok := p.readLine()
		if !ok {
			fmt.Fprintln(p.out)
			return "", false
		}
		if answer == "" {
			answer = opts.Value
		}
		if opts.Validate != nil {
			if invalid := opts.Validate(answer); invalid != "" {
				fmt.Fprintln(p.out, invalid)
				continue
			}
		}
		return answer, true
	}
}

func (p *linePrompter) Confirm(ctx context.Context, msg string) bool {
	if ctx.Err() != nil {
		return false
	}
	fmt.Fprintf(p.out, "%s [y/N] ", msg)
	answer, _ := p.readLine()
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(answer)), "y")
}

// answerPrompter answers every question up front, for arguments and -y flags.
type answerPrompter struct {
	answer string
}

func (p answerPrompter) Input(context.Context, session.InputOptions) (string, bool) {
	return p.answer, true
}

func (p answerPrompter) Confirm(context.Context, string) bool { return true }

// newCLIApp builds an app that reports to the console and asks on stdin.
func newCLIApp(ctx context.Context, prompter session.Prompter) (*app, error) {
	if prompter == nil {
		prompter = newLinePrompter(os.Stdin, os.Stdout)
	}
	return newApp(ctx, notify.NewConsole(), prompter, terminal.ForegroundLauncher)
}
