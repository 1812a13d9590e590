package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/san-kum/lifesim/internal/session"
)

const (
	glyphAlive = "#"
	glyphDead  = " "
)

type frameMsg time.Time

// Model is the Bubble Tea frontend for a session. Bubble Tea owns raw mode
// and cursor visibility and restores both when the program exits.
type Model struct {
	machine       *session.Machine
	delay         time.Duration
	interruptible bool
	interrupted   bool
}

// NewModel wraps a machine in the Editing phase.
func NewModel(m *session.Machine, delay time.Duration, interruptible bool) Model {
	return Model{
		machine:       m,
		delay:         delay,
		interruptible: interruptible,
	}
}

// Machine returns the session driven by the model.
func (m Model) Machine() *session.Machine { return m.machine }

func (m Model) Init() tea.Cmd { return nil }

func (m Model) frame() tea.Cmd {
	return tea.Tick(m.delay, func(t time.Time) tea.Msg { return frameMsg(t) })
}

// Update routes keys to the machine while editing and advances one
// generation per frame while simulating.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case frameMsg:
		if m.machine.Phase() != session.Simulating {
			return m, nil
		}
		if m.machine.Done() {
			m.machine.Stop()
			return m, tea.Quit
		}
		m.machine.Advance()
		return m, m.frame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.machine.Phase() {
	case session.Editing:
		switch m.machine.HandleKey(translateKey(msg)) {
		case session.Simulating:
			return m, m.frame()
		case session.Terminated:
			return m, tea.Quit
		}
	case session.Simulating:
		if m.interruptible {
			m.interrupted = true
			m.machine.Stop()
			return m, tea.Quit
		}
	}
	return m, nil
}

func translateKey(msg tea.KeyMsg) session.Key {
	switch msg.Type {
	case tea.KeyUp:
		return session.Key{Code: session.KeyUp}
	case tea.KeyDown:
		return session.Key{Code: session.KeyDown}
	case tea.KeyLeft:
		return session.Key{Code: session.KeyLeft}
	case tea.KeyRight:
		return session.Key{Code: session.KeyRight}
	case tea.KeySpace:
		return session.Key{Code: session.KeySpace, Rune: ' '}
	case tea.KeyEnter:
		return session.Key{Code: session.KeyEnter}
	case tea.KeyRunes:
		if len(msg.Runes) == 1 && msg.Runes[0] == ' ' {
			return session.Key{Code: session.KeySpace, Rune: ' '}
		}
		if len(msg.Runes) > 0 {
			return session.Key{Code: session.KeyOther, Rune: msg.Runes[0]}
		}
	}
	return session.Key{Code: session.KeyOther}
}

// View renders the grid, highlighting the cursor only while editing.
func (m Model) View() string {
	if m.machine.Phase() == session.Terminated {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		headerStyle.Render("LIFESIM"),
		boardStyle.Render(m.board()),
		m.status(),
	)
}

func (m Model) board() string {
	g := m.machine.Grid()
	c := m.machine.Cursor()
	showCursor := m.machine.Phase() == session.Editing
	n := g.Size()

	var b strings.Builder
	for y := 0; y < n; y++ {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < n; x++ {
			glyph := glyphDead
			if g.Alive(y, x) {
				glyph = glyphAlive
			}
			if showCursor && c.X == x && c.Y == y {
				b.WriteString(cursorStyle.Render(glyph))
			} else {
				b.WriteString(cellStyle.Render(glyph))
			}
		}
	}
	return b.String()
}

func (m Model) status() string {
	if m.machine.Phase() == session.Simulating {
		return valueStyle.Render(fmt.Sprintf("Generation: %d", m.machine.Generation())) + "\n" +
			labelStyle.Render("Population:") +
			valueStyle.Render(fmt.Sprintf("%d", m.machine.Grid().Population()))
	}
	return helpStyle.Render("←↑↓→:Move  SPACE:Paint  ENTER:Run  other:Quit")
}

// Interrupted reports whether a key press cut the simulation short.
func (m Model) Interrupted() bool { return m.interrupted }
