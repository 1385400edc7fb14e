package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const resetDelay = time.Second

var (
	clockStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#89b4fa")).Bold(true)
	keyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#cdd6f4"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#a6adc8"))
)

type keyMap struct {
	Quit key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

type tickMsg time.Time

// resetMsg carries the sequence number of the countdown that scheduled it.
// A stale sequence means a later key press superseded the countdown, which
// is how re-arming cancels the previous timer in bubbletea terms.
type resetMsg struct {
	seq int
}

type model struct {
	now      time.Time
	lastKey  string
	notice   string
	resetSeq int
	keys     keyMap
	quitting bool
}

func newModel() model {
	return model{
		now:    time.Now(),
		notice: "No key pressed yet",
		keys:   newKeyMap(),
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func resetCmd(seq int) tea.Cmd {
	return tea.Tick(resetDelay, func(time.Time) tea.Msg {
		return resetMsg{seq: seq}
	})
}

func (m model) Init() tea.Cmd {
	return tickCmd()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.now = time.Time(msg)
		return m, tickCmd()

	case tea.KeyMsg:
		if key.Matches(msg, m.keys.Quit) {
			m.quitting = true
			return m, tea.Quit
		}
		m.lastKey = fmt.Sprintf("Last key pressed: %d", keyCode(msg))
		m.notice = ""
		m.resetSeq++
		return m, resetCmd(m.resetSeq)

	case resetMsg:
		if msg.seq != m.resetSeq {
			// Superseded countdown; ignore.
			return m, nil
		}
		m.notice = fmt.Sprintf("No key pressed in the last %v", resetDelay)
		return m, nil
	}
	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(clockStyle.Render("Current time " + m.now.Format("15:04:05")))
	b.WriteString(strings.Repeat("\n", 10))
	if m.notice != "" {
		b.WriteString(noticeStyle.Render(m.notice))
	} else {
		b.WriteString(keyStyle.Render(m.lastKey))
	}
	b.WriteString("\n")
	return b.String()
}

// keyCode reduces a key message to the code the classic variant would show:
// the rune's codepoint, or the key type for specials.
func keyCode(msg tea.KeyMsg) int {
	if len(msg.Runes) > 0 {
		return int(msg.Runes[0])
	}
	return int(msg.Type)
}
