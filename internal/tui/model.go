package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/simon/screenctl/internal/screen"
	"github.com/simon/screenctl/internal/session"
)

// Lister provides the sidebar items. *session.Source implements it.
type Lister interface {
	Children(ctx context.Context) []session.Item
	Refresh()
}

// Performer runs the session actions. *session.Actions implements it.
type Performer interface {
	Open(ctx context.Context, sess *screen.Session)
	PromptCreate(ctx context.Context)
	Kill(ctx context.Context, sess *screen.Session)
	Rename(ctx context.Context, sess *screen.Session)
	RemoveAll(ctx context.Context)
}

// TerminalIndex reports which sessions have a terminal opened by us.
type TerminalIndex interface {
	Has(name string) bool
}

type Options struct {
	Source    Lister
	Actions   Performer
	Terminals TerminalIndex
	// Refresh is the poll interval; zero disables polling.
	Refresh time.Duration
}

type tickMsg time.Time

type itemsMsg []session.Item

type actionDoneMsg struct{}

type promptState struct {
	opts    session.InputOptions
	input   textinput.Model
	invalid string
	reply   chan promptReply
}

type Model struct {
	ctx  context.Context
	opts Options

	items        []session.Item
	loaded       bool
	cursor       int
	scrollOffset int
	pending      int

	notice      *noticeMsg
	prompt      *promptState
	confirm     *confirmRequestMsg
	confirmKill *screen.Session

	width, height int
	quitting      bool
}

func NewModel(ctx context.Context, opts Options) Model {
	return Model{ctx: ctx, opts: opts}
}

func (m Model) tick() tea.Cmd {
	if m.opts.Refresh <= 0 {
		return nil
	}
	return tea.Tick(m.opts.Refresh, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadItems, m.tick())
}

func (m Model) loadItems() tea.Msg {
	return itemsMsg(m.opts.Source.Children(m.ctx))
}

// run executes an action off the event loop.
func (m *Model) run(action func(ctx context.Context)) tea.Cmd {
	m.pending++
	ctx := m.ctx
	return func() tea.Msg {
		action(ctx)
		return actionDoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case itemsMsg:
		m.items = msg
		m.loaded = true
		if m.cursor >= len(m.items) {
			m.cursor = max(0, len(m.items)-1)
		}
		m.ensureCursorVisible()
		return m, nil

	case staleMsg:
		return m, m.loadItems

	case tickMsg:
		return m, tea.Batch(m.loadItems, m.tick())

	case noticeMsg:
		m.notice = &msg
		return m, nil

	case actionDoneMsg:
		if m.pending > 0 {
			m.pending--
		}
		return m, nil

	case promptRequestMsg:
		if m.prompt != nil || m.confirm != nil {
			msg.Reply <- promptReply{}
			return m, nil
		}
		m.prompt = newPromptState(msg, m.width)
		return m, textinput.Blink

	case confirmRequestMsg:
		if m.prompt != nil || m.confirm != nil {
			msg.Reply <- false
			return m, nil
		}
		m.confirm = &msg
		return m, nil

	case execRequestMsg:
		done := msg.Done
		return m, tea.ExecProcess(msg.Cmd, func(err error) tea.Msg {
			done <- err
			return nil
		})

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.prompt != nil {
			m.prompt.input.Width = inputWidth(msg.Width)
		}
		m.ensureCursorVisible()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.prompt != nil {
		var cmd tea.Cmd
		m.prompt.input, cmd = m.prompt.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func newPromptState(req promptRequestMsg, width int) *promptState {
	ti := textinput.New()
	ti.Placeholder = req.Opts.Placeholder
	ti.Prompt = ""
	ti.CharLimit = 256
	ti.Width = inputWidth(width)
	ti.SetValue(req.Opts.Value)
	ti.Focus()
	return &promptState{opts: req.Opts, input: ti, reply: req.Reply}
}

func inputWidth(width int) int {
	if width <= 8 {
		return 60
	}
	return width - 8
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Ctrl+C always quits
	if key.Matches(msg, keys.CtrlC) {
		return m.quit()
	}

	if m.prompt != nil {
		return m.handlePromptKey(msg)
	}

	if m.confirm != nil {
		m.confirm.Reply <- key.Matches(msg, keys.Yes) || key.Matches(msg, keys.Open)
		m.confirm = nil
		return m, nil
	}

	// If kill confirmation is pending, only Enter proceeds
	if m.confirmKill != nil {
		sess := m.confirmKill
		m.confirmKill = nil
		if key.Matches(msg, keys.Open) {
			return m, m.run(func(ctx context.Context) { m.opts.Actions.Kill(ctx, sess) })
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Escape):
		m.notice = nil
		return m, nil

	case key.Matches(msg, keys.Quit):
		return m.quit()

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
			m.ensureCursorVisible()
		}
		return m, nil

	case key.Matches(msg, keys.Open):
		sess := m.selectedSession()
		if sess == nil {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) { m.opts.Actions.Open(ctx, sess) })

	case key.Matches(msg, keys.New):
		return m, m.run(m.opts.Actions.PromptCreate)

	case key.Matches(msg, keys.Rename):
		sess := m.selectedSession()
		if sess == nil {
			return m, nil
		}
		return m, m.run(func(ctx context.Context) { m.opts.Actions.Rename(ctx, sess) })

	case key.Matches(msg, keys.Kill):
		m.confirmKill = m.selectedSession()
		return m, nil

	case key.Matches(msg, keys.RemoveAll):
		return m, m.run(m.opts.Actions.RemoveAll)

	case key.Matches(msg, keys.Refresh):
		source := m.opts.Source
		return m, func() tea.Msg {
			source.Refresh()
			return nil
		}
	}

	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	p := m.prompt

	switch {
	case key.Matches(msg, keys.Escape):
		p.reply <- promptReply{}
		m.prompt = nil
		return m, nil

	case key.Matches(msg, keys.Open):
		value := p.input.Value()
		if p.opts.Validate != nil {
			if invalid := p.opts.Validate(value); invalid != "" {
				p.invalid = invalid
				return m, nil
			}
		}
		p.reply <- promptReply{Text: value, OK: true}
		m.prompt = nil
		return m, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if p.opts.Validate != nil {
		p.invalid = p.opts.Validate(p.input.Value())
	}
	return m, cmd
}

// quit answers any open question with a cancel so the waiting action can
// finish, then stops the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.prompt != nil {
		m.prompt.reply <- promptReply{}
		m.prompt = nil
	}
	if m.confirm != nil {
		m.confirm.Reply <- false
		m.confirm = nil
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) maxVisibleItems() int {
	if m.height <= 0 {
		return len(m.items)
	}
	// title(2) + gap(1) + question(2) + status(1) + help(1) + safety(1)
	return max(3, m.height-8)
}

func (m *Model) ensureCursorVisible() {
	maxVis := m.maxVisibleItems()
	if maxVis <= 0 {
		m.scrollOffset = 0
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+maxVis {
		m.scrollOffset = m.cursor - maxVis + 1
	}
	maxOffset := max(0, len(m.items)-maxVis)
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
}

// selectedSession returns the session under the cursor, or nil when the
// cursor is on nothing or on the unsupported sentinel.
func (m Model) selectedSession() *screen.Session {
	if m.cursor < 0 || m.cursor >= len(m.items) {
		return nil
	}
	item, ok := m.items[m.cursor].(session.SessionItem)
	if !ok || !item.Actionable() {
		return nil
	}
	sess := item.Session
	return &sess
}
