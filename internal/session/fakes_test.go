package session

import (
	"context"
	"errors"
	"sync"
)

type fakeRunner struct {
	mu       sync.Mutex
	commands []string
	outputs  map[string]string
	failures map[string]error
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{outputs: map[string]string{}, failures: map[string]error{}}
}

func (f *fakeRunner) Output(ctx context.Context, command string) string {
	out, err := f.Exec(ctx, command)
	if err != nil {
		return ""
	}
	return out
}

func (f *fakeRunner) Exec(_ context.Context, command string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.commands = append(f.commands, command)
	if err, ok := f.failures[command]; ok {
		return "", err
	}
	return f.outputs[command], nil
}

func (f *fakeRunner) ran() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.commands...)
}

type fakeNotifier struct {
	infos  []string
	errors []string
}

func (n *fakeNotifier) Info(msg string)  { n.infos = append(n.infos, msg) }
func (n *fakeNotifier) Error(msg string) { n.errors = append(n.errors, msg) }

type fakePrompter struct {
	answer    string
	ok        bool
	confirm   bool
	lastInput InputOptions
	inputs    int
	confirms  int
}

func (p *fakePrompter) Input(_ context.Context, opts InputOptions) (string, bool) {
	p.inputs++
	p.lastInput = opts
	return p.answer, p.ok
}

func (p *fakePrompter) Confirm(context.Context, string) bool {
	p.confirms++
	return p.confirm
}

type fakeTerminal struct {
	name     string
	opts     TerminalOptions
	shows    int
	disposed bool
	showErr  error
	events   *[]string
}

func (t *fakeTerminal) Name() string { return t.name }

func (t *fakeTerminal) Show() error {
	t.shows++
	return t.showErr
}

func (t *fakeTerminal) Dispose() error {
	t.disposed = true
	if t.events != nil {
		*t.events = append(*t.events, "dispose:"+t.name)
	}
	return nil
}

type fakeTerminals struct {
	byName  map[string]*fakeTerminal
	created []*fakeTerminal
}

func newFakeTerminals(names ...string) *fakeTerminals {
	f := &fakeTerminals{byName: map[string]*fakeTerminal{}}
	for _, n := range names {
		f.byName[n] = &fakeTerminal{name: n}
	}
	return f
}

func (f *fakeTerminals) Find(name string) (Terminal, bool) {
	t, ok := f.byName[name]
	if !ok {
		return nil, false
	}
	return t, true
}

func (f *fakeTerminals) Create(opts TerminalOptions) Terminal {
	t := &fakeTerminal{name: opts.Name, opts: opts}
	f.byName[opts.Name] = t
	f.created = append(f.created, t)
	return t
}

type countingRefresher struct{ n int }

func (r *countingRefresher) Refresh() { r.n++ }

var errBoom = errors.New("No screen session found.")
