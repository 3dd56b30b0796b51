// Package confirm is the Bubble Tea view of an overlay dialog: a title, a
// message and a row of buttons with one focused.
//
// The model never dismisses itself. Choosing a button produces a ChosenMsg and
// the host decides how to dismiss. Escape does nothing because overlay dialogs
// cannot be dismissed from the backdrop.
package confirm

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/overlay"
	"github.com/tmc/overlay/ui/keymap"
)

// ChosenMsg reports the button chosen on dialog ID.
type ChosenMsg struct {
	ID    string
	Index int
}

// Model displays one dialog handle.
type Model struct {
	Handle *overlay.DialogHandle
	Focus  int
	Fading bool

	keys      keymap.KeyMap
	lineBreak string
}

// New returns a Model for h. lineBreak is the marker the host's DialogRenderer
// hands to the coordinator.
func New(h *overlay.DialogHandle, keys keymap.KeyMap, lineBreak string) Model {
	return Model{Handle: h, keys: keys, lineBreak: lineBreak}
}

// RTL reports whether the dialog is laid out right to left.
func (m Model) RTL() bool {
	return m.Handle.StyleClass == "rtl"
}

// Update handles focus movement and selection. Keys are ignored while the
// dialog is fading out.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok || m.Fading {
		return m, nil
	}
	n := len(m.Handle.Labels())
	if n == 0 {
		return m, nil
	}
	next, prev := m.keys.DialogNext, m.keys.DialogPrev
	if m.RTL() {
		next, prev = prev, next
	}
	switch {
	case key.Matches(km, next):
		m.Focus = (m.Focus + 1) % n
	case key.Matches(km, prev):
		m.Focus = (m.Focus + n - 1) % n
	case key.Matches(km, m.keys.DialogChoose):
		return m, m.choose(m.Focus)
	case km.Type == tea.KeyRunes && len(km.Runes) == 1:
		if i := int(km.Runes[0] - '1'); i >= 0 && i < n {
			m.Focus = i
			return m, m.choose(i)
		}
	}
	return m, nil
}

func (m Model) choose(i int) tea.Cmd {
	id := m.Handle.ID
	return func() tea.Msg { return ChosenMsg{ID: id, Index: i} }
}

// View renders the dialog card.
func (m Model) View() string {
	var b strings.Builder
	if m.Handle.Title != "" {
		b.WriteString(titleStyle.Render(m.Handle.Title))
		b.WriteString("\n\n")
	}
	msg := m.Handle.Message
	if m.lineBreak != "" && m.lineBreak != "\n" {
		msg = strings.ReplaceAll(msg, m.lineBreak, "\n")
	}
	b.WriteString(bodyStyle.Render(msg))

	labels := m.Handle.Labels()
	if len(labels) > 0 {
		buttons := make([]string, len(labels))
		for i, l := range labels {
			style := buttonStyle
			if i == m.Focus {
				style = buttonFocusedStyle
			}
			buttons[i] = style.Render(l)
		}
		if m.RTL() {
			for i, j := 0, len(buttons)-1; i < j; i, j = i+1, j-1 {
				buttons[i], buttons[j] = buttons[j], buttons[i]
			}
		}
		b.WriteString("\n\n")
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, spaced(buttons)...))
	}

	card := cardStyle
	if m.RTL() {
		card = card.Align(lipgloss.Right)
	}
	out := card.Render(b.String())
	if m.Fading {
		out = fadingStyle.Render(out)
	}
	return out
}

func spaced(parts []string) []string {
	out := make([]string, 0, 2*len(parts))
	for i, p := range parts {
		if i > 0 {
			out = append(out, " ")
		}
		out = append(out, p)
	}
	return out
}
