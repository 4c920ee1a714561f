package tui

import (
	"context"
	"os/exec"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/simon/screenctl/internal/session"
)

type noticeMsg struct {
	Text    string
	IsError bool
}

// staleMsg means the listed items must be fetched again.
type staleMsg struct{}

type promptReply struct {
	Text string
	OK   bool
}

type promptRequestMsg struct {
	Opts  session.InputOptions
	Reply chan promptReply
}

type confirmRequestMsg struct {
	Text  string
	Reply chan bool
}

type execRequestMsg struct {
	Cmd  *exec.Cmd
	Done chan error
}

// Bridge lets code running outside the event loop (session actions, the
// change channel, terminals) talk to the running program. It implements
// session.Notifier and session.Prompter, and Launch is a terminal.Launcher.
//
// Bridge methods block on Program.Send, so they must never be called from
// Update; run them inside a tea.Cmd.
type Bridge struct {
	mu   sync.Mutex
	send func(tea.Msg)
}

func NewBridge() *Bridge {
	return &Bridge{}
}

// Attach routes messages to p.
func (b *Bridge) Attach(p *tea.Program) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.send = p.Send
}

func (b *Bridge) post(msg tea.Msg) bool {
	b.mu.Lock()
	send := b.send
	b.mu.Unlock()
	if send == nil {
		return false
	}
	send(msg)
	return true
}

func (b *Bridge) Info(msg string)  { b.post(noticeMsg{Text: msg}) }
func (b *Bridge) Error(msg string) { b.post(noticeMsg{Text: msg, IsError: true}) }

// Stale asks the model to reload its items.
func (b *Bridge) Stale() { b.post(staleMsg{}) }

// Input shows a prompt and waits for the answer.
func (b *Bridge) Input(ctx context.Context, opts session.InputOptions) (string, bool) {
	reply := make(chan promptReply, 1)
	if !b.post(promptRequestMsg{Opts: opts, Reply: reply}) {
		return "", false
	}
	select {
	case r := <-reply:
		return r.Text, r.OK
	case <-ctx.Done():
		return "", false
	}
}

// Confirm shows a yes/no question and waits for the answer.
func (b *Bridge) Confirm(ctx context.Context, text string) bool {
	reply := make(chan bool, 1)
	if !b.post(confirmRequestMsg{Text: text, Reply: reply}) {
		return false
	}
	select {
	case ok := <-reply:
		return ok
	case <-ctx.Done():
		return false
	}
}

// Launch suspends the UI, runs cmd on the terminal and waits for it to exit.
func (b *Bridge) Launch(cmd *exec.Cmd) error {
	done := make(chan error, 1)
	if !b.post(execRequestMsg{Cmd: cmd, Done: done}) {
		return cmd.Run()
	}
	return <-done
}
