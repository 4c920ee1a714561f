// Package terminal keeps the named terminals screenctl opens onto sessions.
//
// A terminal is registered when created and stays registered until disposed.
// Showing it runs its process in the foreground through a Launcher and
// returns once the process exits (for screen: when the user detaches).
// Showing it again starts a fresh process.
package terminal

import (
	"os"
	"os/exec"
	"sync"

	"github.com/simon/screenctl/internal/screen"
	"github.com/simon/screenctl/internal/session"
)

// Launcher runs cmd in the foreground and waits for it.
type Launcher func(cmd *exec.Cmd) error

// ForegroundLauncher hands the current stdio to cmd.
func ForegroundLauncher(cmd *exec.Cmd) error {
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// State is the lifecycle state of a terminal.
type State int

const (
	Idle State = iota
	Running
	Exited
	Disposed
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Exited:
		return "exited"
	case Disposed:
		return "disposed"
	default:
		return "idle"
	}
}

// Manager is the registry of open terminals. It implements session.Terminals.
type Manager struct {
	mu        sync.Mutex
	terminals []*Terminal
	launch    Launcher
	listeners []func(*Terminal)
}

// NewManager returns an empty registry. A nil launcher means ForegroundLauncher.
func NewManager(launch Launcher) *Manager {
	if launch == nil {
		launch = ForegroundLauncher
	}
	return &Manager{launch: launch}
}

// OnChange registers fn to be called whenever a terminal changes state.
func (m *Manager) OnChange(fn func(*Terminal)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// Find returns the first registered terminal with the given name.
func (m *Manager) Find(name string) (session.Terminal, bool) {
	if t := m.find(name); t != nil {
		return t, true
	}
	return nil, false
}

func (m *Manager) find(name string) *Terminal {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, t := range m.terminals {
		if t.name == name {
			return t
		}
	}
	return nil
}

// Has reports whether a terminal with the given name is registered.
func (m *Manager) Has(name string) bool {
	return m.find(name) != nil
}

// Create registers a terminal. Its process starts on the first Show.
func (m *Manager) Create(opts session.TerminalOptions) session.Terminal {
	t := &Terminal{
		name: opts.Name,
		path: opts.Path,
		args: append([]string(nil), opts.Args...),
		mgr:  m,
	}
	m.mu.Lock()
	m.terminals = append(m.terminals, t)
	m.mu.Unlock()
	return t
}

// Len returns the number of registered terminals.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.terminals)
}

func (m *Manager) remove(t *Terminal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, other := range m.terminals {
		if other == t {
			m.terminals = append(m.terminals[:i], m.terminals[i+1:]...)
			return
		}
	}
}

func (m *Manager) changed(t *Terminal) {
	m.mu.Lock()
	listeners := append([]func(*Terminal){}, m.listeners...)
	m.mu.Unlock()
	for _, fn := range listeners {
		fn(t)
	}
}

// Terminal is one named terminal running screen against a session.
type Terminal struct {
	name string
	path string
	args []string
	mgr  *Manager

	mu    sync.Mutex
	cmd   *exec.Cmd
	state State
}

func (t *Terminal) Name() string { return t.name }

// State returns the current lifecycle state.
func (t *Terminal) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Show runs the terminal's process in the foreground and waits for it.
// Showing a running or disposed terminal does nothing.
func (t *Terminal) Show() error {
	t.mu.Lock()
	if t.state == Running || t.state == Disposed {
		t.mu.Unlock()
		return nil
	}
	cmd := exec.Command(t.path, t.args...)
	cmd.Env = screen.FilterSTY(os.Environ())
	t.cmd = cmd
	t.state = Running
	t.mu.Unlock()
	t.mgr.changed(t)

	err := t.mgr.launch(cmd)

	t.mu.Lock()
	if t.state == Running {
		t.state = Exited
	}
	t.cmd = nil
	t.mu.Unlock()
	t.mgr.changed(t)
	return err
}

// Dispose kills a running process and unregisters the terminal.
func (t *Terminal) Dispose() error {
	t.mu.Lock()
	if t.state == Disposed {
		t.mu.Unlock()
		return nil
	}
	var err error
	if t.cmd != nil && t.cmd.Process != nil {
		err = t.cmd.Process.Kill()
	}
	t.state = Disposed
	t.mu.Unlock()

	t.mgr.remove(t)
	t.mgr.changed(t)
	return err
}
