package tui

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/simon/screenctl/internal/screen"
	"github.com/simon/screenctl/internal/session"
)

type fakeLister struct {
	items     []session.Item
	refreshed int
}

func (f *fakeLister) Children(context.Context) []session.Item { return f.items }
func (f *fakeLister) Refresh()                                { f.refreshed++ }

type fakePerformer struct {
	calls []string
}

func (f *fakePerformer) Open(_ context.Context, s *screen.Session) {
	f.calls = append(f.calls, "open "+s.ID)
}

func (f *fakePerformer) PromptCreate(context.Context) {
	f.calls = append(f.calls, "create")
}

func (f *fakePerformer) Kill(_ context.Context, s *screen.Session) {
	f.calls = append(f.calls, "kill "+s.ID)
}

func (f *fakePerformer) Rename(_ context.Context, s *screen.Session) {
	f.calls = append(f.calls, "rename "+s.ID)
}

func (f *fakePerformer) RemoveAll(context.Context) {
	f.calls = append(f.calls, "remove-all")
}

type fakeIndex map[string]bool

func (f fakeIndex) Has(name string) bool { return f[name] }

func sessionItems() []session.Item {
	return []session.Item{
		session.SessionItem{Session: screen.Session{ID: "12345.work", Name: "work", Attached: true}},
		session.SessionItem{Session: screen.Session{ID: "67890.play", Name: "play"}},
	}
}

// newTestModel returns a loaded model with two sessions, cursor on the first.
func newTestModel(items []session.Item) (Model, *fakeLister, *fakePerformer) {
	lister := &fakeLister{items: items}
	performer := &fakePerformer{}
	m := NewModel(context.Background(), Options{
		Source:    lister,
		Actions:   performer,
		Terminals: fakeIndex{"work": true},
	})
	m = update(m, itemsMsg(items))
	m.width, m.height = 100, 40
	return m, lister, performer
}

func update(m Model, msg tea.Msg) Model {
	next, _ := m.Update(msg)
	return next.(Model)
}

func updateCmd(m Model, msg tea.Msg) (Model, tea.Cmd) {
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// --- List ---

func TestView_RendersItemsWithIcons(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	view := m.View()

	for _, want := range []string{"work", "12345.work", "●", "play", "○", "terminal"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestView_EmptyAndLoading(t *testing.T) {
	m := NewModel(context.Background(), Options{Source: &fakeLister{}, Actions: &fakePerformer{}})
	if !strings.Contains(m.View(), "Loading sessions") {
		t.Errorf("expected loading text before first listing")
	}

	m = update(m, itemsMsg(nil))
	if !strings.Contains(m.View(), "No screen sessions") {
		t.Errorf("expected empty text after an empty listing")
	}
}

func TestView_UnsupportedSentinel(t *testing.T) {
	m, _, _ := newTestModel([]session.Item{session.UnsupportedItem{}})
	view := m.View()
	if !strings.Contains(view, session.UnsupportedLabel) {
		t.Errorf("view missing sentinel label:\n%s", view)
	}
	if !strings.Contains(view, "!") {
		t.Errorf("view missing warning icon")
	}
	if strings.Contains(view, session.UnsupportedKey) {
		t.Errorf("sentinel key should not be rendered")
	}
}

func TestView_UnsupportedSentinelNotTruncated(t *testing.T) {
	long := session.SessionItem{Session: screen.Session{ID: "1.x", Name: strings.Repeat("x", 40)}}
	m, _, _ := newTestModel([]session.Item{session.UnsupportedItem{}, long})

	view := m.View()
	if !strings.Contains(view, "The system doesn't support screen") {
		t.Errorf("sentinel label cut:\n%s", view)
	}
	if strings.Contains(view, strings.Repeat("x", 40)) {
		t.Errorf("long session name not truncated:\n%s", view)
	}
}

func TestView_MultiByteNamesTruncatedByWidth(t *testing.T) {
	name := strings.Repeat("日本語", 7)
	item := session.SessionItem{Session: screen.Session{ID: "42.jp", Name: name}}
	m, _, _ := newTestModel([]session.Item{item})
	m.opts.Terminals = nil

	view := m.View()
	if !utf8.ValidString(view) {
		t.Fatalf("view is not valid UTF-8:\n%q", view)
	}
	if !strings.Contains(view, strings.Repeat("日本語", 4)+"日本...") {
		t.Errorf("expected name cut on a character boundary:\n%s", view)
	}

	label := itemLabel(item)
	if w := lipgloss.Width(label); w > maxLabelWidth {
		t.Errorf("label width = %d, want <= %d", w, maxLabelWidth)
	}
	if !strings.HasSuffix(label, "...") {
		t.Errorf("label = %q, want a trailing ellipsis", label)
	}
}

func TestListKey_UpDownNavigation(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())

	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Fatalf("cursor = %d after down, want 1", m.cursor)
	}
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor moved past the last item: %d", m.cursor)
	}
	m = update(m, runes("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d after k, want 0", m.cursor)
	}
}

func TestItemsMsg_ClampsCursor(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	m.cursor = 1

	m = update(m, itemsMsg(sessionItems()[:1]))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0 after list shrank", m.cursor)
	}
}

// --- Actions ---

func TestListKey_EnterOpensSelected(t *testing.T) {
	m, _, performer := newTestModel(sessionItems())
	m = update(m, tea.KeyMsg{Type: tea.KeyDown})

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected an action command")
	}
	if m.pending != 1 {
		t.Errorf("pending = %d, want 1", m.pending)
	}

	msg := cmd()
	if _, ok := msg.(actionDoneMsg); !ok {
		t.Fatalf("cmd returned %T, want actionDoneMsg", msg)
	}
	if len(performer.calls) != 1 || performer.calls[0] != "open 67890.play" {
		t.Errorf("calls = %v", performer.calls)
	}

	m = update(m, msg)
	if m.pending != 0 {
		t.Errorf("pending = %d after done, want 0", m.pending)
	}
}

func TestListKey_SentinelIsNotActionable(t *testing.T) {
	m, _, performer := newTestModel([]session.Item{session.UnsupportedItem{}})

	for _, msg := range []tea.KeyMsg{{Type: tea.KeyEnter}, runes("r"), {Type: tea.KeyCtrlK}} {
		var cmd tea.Cmd
		m, cmd = updateCmd(m, msg)
		if cmd != nil {
			t.Errorf("%s on sentinel returned a command", msg)
		}
	}
	if m.confirmKill != nil {
		t.Error("kill confirmation opened for sentinel")
	}
	if len(performer.calls) != 0 {
		t.Errorf("calls = %v, want none", performer.calls)
	}
}

func TestListKey_NewRenameRemoveAll(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{runes("n"), "create"},
		{runes("r"), "rename 12345.work"},
		{runes("X"), "remove-all"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			m, _, performer := newTestModel(sessionItems())
			_, cmd := updateCmd(m, tt.key)
			if cmd == nil {
				t.Fatal("expected an action command")
			}
			cmd()
			if len(performer.calls) != 1 || performer.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", performer.calls, tt.want)
			}
		})
	}
}

func TestListKey_KillNeedsConfirmation(t *testing.T) {
	m, _, performer := newTestModel(sessionItems())

	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	if m.confirmKill == nil || m.confirmKill.ID != "12345.work" {
		t.Fatalf("confirmKill = %+v", m.confirmKill)
	}
	if !strings.Contains(m.View(), "Kill 'work'?") {
		t.Errorf("view missing kill confirmation")
	}

	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.confirmKill != nil {
		t.Error("confirmation still open after enter")
	}
	if cmd == nil {
		t.Fatal("expected kill command")
	}
	cmd()
	if len(performer.calls) != 1 || performer.calls[0] != "kill 12345.work" {
		t.Errorf("calls = %v", performer.calls)
	}
}

func TestListKey_KillCancelledByOtherKey(t *testing.T) {
	m, _, performer := newTestModel(sessionItems())

	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlK})
	m, cmd := updateCmd(m, tea.KeyMsg{Type: tea.KeyEsc})
	if cmd != nil || m.confirmKill != nil {
		t.Error("esc should cancel the kill")
	}
	if len(performer.calls) != 0 {
		t.Errorf("calls = %v, want none", performer.calls)
	}
}

func TestListKey_RefreshFiresChangeChannel(t *testing.T) {
	m, lister, _ := newTestModel(sessionItems())

	_, cmd := updateCmd(m, runes("R"))
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	if lister.refreshed != 0 {
		t.Fatal("refresh must not run inside Update")
	}
	cmd()
	if lister.refreshed != 1 {
		t.Errorf("refreshed = %d, want 1", lister.refreshed)
	}
}

func TestStaleMsg_ReloadsItems(t *testing.T) {
	m, lister, _ := newTestModel(sessionItems())
	lister.items = sessionItems()[1:]

	m, cmd := updateCmd(m, staleMsg{})
	if cmd == nil {
		t.Fatal("expected reload command")
	}
	m = update(m, cmd())
	if len(m.items) != 1 || m.items[0].Label() != "play" {
		t.Errorf("items = %v", m.items)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	m, cmd := updateCmd(m, runes("q"))
	if !m.quitting || cmd == nil {
		t.Error("q should quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

// --- Questions from actions ---

func TestPrompt_ValidatesAndReplies(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	reply := make(chan promptReply, 1)

	m = update(m, promptRequestMsg{
		Opts: session.InputOptions{
			Prompt:   "Enter the new name for the screen session",
			Value:    "",
			Validate: session.ValidateSessionName,
		},
		Reply: reply,
	})
	if !strings.Contains(m.View(), "Enter the new name") {
		t.Fatalf("view missing prompt:\n%s", m.View())
	}

	m = update(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")})
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompt == nil {
		t.Fatal("blank input should keep the prompt open")
	}
	if !strings.Contains(m.View(), "Session name cannot be empty") {
		t.Errorf("view missing validation message")
	}
	select {
	case r := <-reply:
		t.Fatalf("unexpected reply %+v", r)
	default:
	}

	m = update(m, runes("dev"))
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.prompt != nil {
		t.Error("prompt still open after valid enter")
	}
	r := <-reply
	if !r.OK || r.Text != " dev" {
		t.Errorf("reply = %+v, want {\" dev\" true}", r)
	}
}

func TestPrompt_PrefilledValue(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	reply := make(chan promptReply, 1)

	m = update(m, promptRequestMsg{Opts: session.InputOptions{Value: "work"}, Reply: reply})
	m = update(m, tea.KeyMsg{Type: tea.KeyEnter})

	if r := <-reply; !r.OK || r.Text != "work" {
		t.Errorf("reply = %+v", r)
	}
}

func TestPrompt_EscCancels(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	reply := make(chan promptReply, 1)

	m = update(m, promptRequestMsg{Reply: reply})
	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.prompt != nil {
		t.Error("prompt still open after esc")
	}
	if r := <-reply; r.OK {
		t.Errorf("reply = %+v, want cancelled", r)
	}
}

func TestPrompt_SecondRequestIsCancelled(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	first := make(chan promptReply, 1)
	second := make(chan promptReply, 1)

	m = update(m, promptRequestMsg{Reply: first})
	m = update(m, promptRequestMsg{Reply: second})

	if r := <-second; r.OK {
		t.Errorf("second prompt reply = %+v, want cancelled", r)
	}
	if m.prompt == nil || m.prompt.reply != first {
		t.Error("first prompt should stay open")
	}
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		name string
		key  tea.KeyMsg
		want bool
	}{
		{"yes", runes("y"), true},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, true},
		{"no", runes("n"), false},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, _, performer := newTestModel(sessionItems())
			reply := make(chan bool, 1)

			m = update(m, confirmRequestMsg{
				Text:  "Are you sure you want to remove all screen sessions?",
				Reply: reply,
			})
			if !strings.Contains(m.View(), "Are you sure") {
				t.Fatalf("view missing question")
			}

			m = update(m, tt.key)
			if m.confirm != nil {
				t.Error("confirmation still open")
			}
			if got := <-reply; got != tt.want {
				t.Errorf("reply = %v, want %v", got, tt.want)
			}
			if len(performer.calls) != 0 {
				t.Errorf("answering must not trigger actions: %v", performer.calls)
			}
		})
	}
}

func TestQuit_CancelsOpenPrompt(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())
	reply := make(chan promptReply, 1)

	m = update(m, promptRequestMsg{Reply: reply})
	m = update(m, tea.KeyMsg{Type: tea.KeyCtrlC})

	if !m.quitting {
		t.Error("ctrl+c should quit")
	}
	if r := <-reply; r.OK {
		t.Errorf("reply = %+v, want cancelled", r)
	}
}

func TestNotice_ShownInStatusLine(t *testing.T) {
	m, _, _ := newTestModel(sessionItems())

	m = update(m, noticeMsg{Text: "Failed to kill session 1.a: boom", IsError: true})
	if !strings.Contains(m.View(), "Failed to kill session 1.a: boom") {
		t.Errorf("view missing notice")
	}

	m = update(m, tea.KeyMsg{Type: tea.KeyEsc})
	if strings.Contains(m.View(), "Failed to kill") {
		t.Errorf("esc should clear the notice")
	}
}
