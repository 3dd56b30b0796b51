// Package toast shows overlay toasts until they expire.
package toast

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/overlay"
)

// ExpiredMsg removes toast ID.
type ExpiredMsg struct{ ID int }

var style = lipgloss.NewStyle().
	Foreground(lipgloss.Color("255")).
	Background(lipgloss.Color("45")).
	Padding(0, 2)

type entry struct {
	id    int
	toast overlay.Toast
}

// Model keeps the visible toasts, oldest first.
type Model struct {
	// Max caps the number of visible toasts; 0 means 3.
	Max int

	nextID  int
	entries []entry
}

// Push shows t and returns the command that expires it.
func (m Model) Push(t overlay.Toast) (Model, tea.Cmd) {
	m.nextID++
	id := m.nextID
	m.entries = append(m.entries, entry{id: id, toast: t})
	limit := m.Max
	if limit <= 0 {
		limit = 3
	}
	if len(m.entries) > limit {
		m.entries = m.entries[len(m.entries)-limit:]
	}
	d := t.Duration
	if d <= 0 {
		d = overlay.DefaultToastDuration
	}
	return m, tea.Tick(d, func(time.Time) tea.Msg { return ExpiredMsg{ID: id} })
}

// Update handles expiry.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if e, ok := msg.(ExpiredMsg); ok {
		kept := m.entries[:0:0]
		for _, en := range m.entries {
			if en.id != e.ID {
				kept = append(kept, en)
			}
		}
		m.entries = kept
	}
	return m, nil
}

// Len reports how many toasts are visible.
func (m Model) Len() int { return len(m.entries) }

// View renders the visible toasts, one per line, aligned by their style class.
func (m Model) View(width int) string {
	if len(m.entries) == 0 {
		return ""
	}
	lines := make([]string, len(m.entries))
	for i, en := range m.entries {
		line := style.Render(en.toast.Message)
		lines[i] = lipgloss.PlaceHorizontal(width, align(en.toast.StyleClass), line)
	}
	return strings.Join(lines, "\n")
}

func align(class string) lipgloss.Position {
	switch class {
	case "rtl":
		return lipgloss.Right
	case "ltr":
		return lipgloss.Left
	}
	return lipgloss.Center
}
