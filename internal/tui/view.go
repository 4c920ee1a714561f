package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/simon/screenctl/internal/session"
)

var (
	// Adaptive colors for light/dark terminal backgrounds
	accentColor = lipgloss.AdaptiveColor{Light: "#D6249F", Dark: "#FF79C6"}
	greenColor  = lipgloss.AdaptiveColor{Light: "#116620", Dark: "#50FA7B"}
	redColor    = lipgloss.AdaptiveColor{Light: "#B31D28", Dark: "#FF5555"}
	dimColor    = lipgloss.AdaptiveColor{Light: "#777777", Dark: "#6272A4"}
	hlBgColor   = lipgloss.AdaptiveColor{Light: "#E8E8E8", Dark: "#333333"}
	cyanColor   = lipgloss.AdaptiveColor{Light: "#0E7490", Dark: "#8BE9FD"}

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			PaddingLeft(1)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	selectedRowStyle = lipgloss.NewStyle().
				Background(hlBgColor)

	iconOpenStyle = lipgloss.NewStyle().
			Foreground(greenColor)

	iconClosedStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	iconUnsupportedStyle = lipgloss.NewStyle().
				Foreground(redColor).
				Bold(true)

	keyStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	terminalStyle = lipgloss.NewStyle().
			Foreground(cyanColor)

	confirmLabelStyle = lipgloss.NewStyle().
				Foreground(redColor).
				Bold(true).
				PaddingLeft(1)

	confirmKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}).
			Background(redColor).
			Bold(true).
			Padding(0, 1)

	confirmDimStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(dimColor).
			PaddingLeft(1)

	inputLabelStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	invalidStyle = lipgloss.NewStyle().
			Foreground(redColor).
			PaddingLeft(3)

	infoStyle = lipgloss.NewStyle().
			Foreground(greenColor).
			PaddingLeft(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(redColor).
			PaddingLeft(1)
)

// pad right-pads s to width with spaces (based on visual width, not byte count).
func pad(s string, width int) string {
	visual := lipgloss.Width(s)
	if visual >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visual)
}

func renderIcon(icon session.Icon) string {
	switch icon {
	case session.IconOpen:
		return iconOpenStyle.Render("●")
	case session.IconUnsupported:
		return iconUnsupportedStyle.Render("!")
	default:
		return iconClosedStyle.Render("○")
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := "screenctl"
	if m.pending > 0 {
		title += " …"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")

	switch {
	case !m.loaded:
		b.WriteString("  Loading sessions...\n\n")
	case len(m.items) == 0:
		b.WriteString("  No screen sessions. Press n to create one.\n\n")
	default:
		m.renderItems(&b)
	}

	m.renderQuestion(&b)

	if m.notice != nil {
		if m.notice.IsError {
			b.WriteString(errorStyle.Render(m.notice.Text))
		} else {
			b.WriteString(infoStyle.Render(m.notice.Text))
		}
		b.WriteString("\n")
	}

	b.WriteString(m.renderHelp())
	b.WriteString("\n")

	return b.String()
}

// maxLabelWidth is the display width session names are cut to.
const maxLabelWidth = 32

// itemLabel returns the label as shown in the list. Session names are cut by
// display width; the sentinel is always shown in full.
func itemLabel(item session.Item) string {
	if !item.Actionable() {
		return item.Label()
	}
	return ansi.Truncate(item.Label(), maxLabelWidth, "...")
}

func (m Model) renderItems(b *strings.Builder) {
	maxVis := m.maxVisibleItems()
	end := min(m.scrollOffset+maxVis, len(m.items))

	labelWidth := 4
	for _, item := range m.items[m.scrollOffset:end] {
		if item.Actionable() {
			labelWidth = max(labelWidth, lipgloss.Width(itemLabel(item)))
		}
	}

	if m.scrollOffset > 0 {
		b.WriteString(helpStyle.Render(fmt.Sprintf("    ↑ %d more", m.scrollOffset)))
		b.WriteString("\n")
	}

	for i := m.scrollOffset; i < end; i++ {
		item := m.items[i]
		row := " " + renderIcon(item.Icon()) + " " + pad(itemLabel(item), labelWidth)
		if item.Actionable() {
			row += "  " + keyStyle.Render(item.Key())
			if m.opts.Terminals != nil && m.opts.Terminals.Has(item.Label()) {
				row += "  " + terminalStyle.Render("terminal")
			}
		}

		if i == m.cursor {
			b.WriteString(cursorStyle.Render(" >"))
			b.WriteString(selectedRowStyle.Render(row))
		} else {
			b.WriteString("  ")
			b.WriteString(row)
		}
		b.WriteString("\n")
	}

	if end < len(m.items) {
		b.WriteString(helpStyle.Render(fmt.Sprintf("    ↓ %d more", len(m.items)-end)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
}

// renderQuestion draws the open prompt or confirmation, if any.
func (m Model) renderQuestion(b *strings.Builder) {
	switch {
	case m.prompt != nil:
		b.WriteString(helpStyle.Render(m.prompt.opts.Prompt))
		b.WriteString("\n")
		b.WriteString(inputLabelStyle.Render(" > "))
		b.WriteString(m.prompt.input.View())
		b.WriteString("\n")
		if m.prompt.invalid != "" {
			b.WriteString(invalidStyle.Render(m.prompt.invalid))
			b.WriteString("\n")
		}

	case m.confirm != nil:
		b.WriteString(confirmLabelStyle.Render(m.confirm.Text))
		b.WriteString("  ")
		b.WriteString(confirmKeyStyle.Render("y"))
		b.WriteString(confirmDimStyle.Render("yes"))
		b.WriteString("  ")
		b.WriteString(confirmKeyStyle.Render("n"))
		b.WriteString(confirmDimStyle.Render("no"))
		b.WriteString("\n")

	case m.confirmKill != nil:
		b.WriteString(confirmLabelStyle.Render(fmt.Sprintf("Kill '%s'?", m.confirmKill.Name)))
		b.WriteString("  ")
		b.WriteString(confirmKeyStyle.Render("Enter"))
		b.WriteString(confirmDimStyle.Render("confirm"))
		b.WriteString("  ")
		b.WriteString(confirmKeyStyle.Render("Esc"))
		b.WriteString(confirmDimStyle.Render("cancel"))
		b.WriteString("\n")
	}
}

func (m Model) renderHelp() string {
	switch {
	case m.prompt != nil:
		return helpStyle.Render("enter submit  esc cancel")
	case m.confirm != nil, m.confirmKill != nil:
		return ""
	case m.selectedSession() == nil:
		return helpStyle.Render("n new  X remove all  R refresh  q quit")
	default:
		return helpStyle.Render("enter open  n new  r rename  ctrl+k kill  X remove all  R refresh  q quit")
	}
}
