package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tmc/overlay/ui/keymap"
)

// Ensure Model implements help.KeyMap
var _ help.KeyMap = (*Model)(nil)

// Model wraps the bubbles/help model for integration.
type Model struct {
	inner  help.Model
	keyMap keymap.KeyMap
	Show   bool // Whether the help view is currently visible

	// DialogOpen switches the short help to the dialog bindings.
	DialogOpen bool
}

// New creates a new help model.
func New(mainKeyMap keymap.KeyMap) Model {
	h := help.New()
	h.ShowAll = false
	return Model{
		inner:  h,
		keyMap: mainKeyMap,
		Show:   true,
	}
}

// Init does nothing.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update toggles visibility and the full view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.ToggleHelp) {
			m.inner.ShowAll = !m.inner.ShowAll
		}
	case tea.WindowSizeMsg:
		m.inner.Width = msg.Width
	}
	return m, nil
}

// View renders the help.
func (m Model) View() string {
	if !m.Show {
		return ""
	}
	return m.inner.View(m)
}

// ShortHelp returns the bindings for the short help view.
func (m Model) ShortHelp() []key.Binding {
	if m.DialogOpen {
		return []key.Binding{
			m.keyMap.DialogPrev,
			m.keyMap.DialogNext,
			m.keyMap.DialogChoose,
		}
	}
	return []key.Binding{
		m.keyMap.Submit,
		m.keyMap.Interrupt,
		m.keyMap.ToggleHelp,
	}
}

// FullHelp returns the bindings for the full help view.
func (m Model) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{m.keyMap.Submit, m.keyMap.HistoryPrev, m.keyMap.HistoryNext, m.keyMap.ScrollUp, m.keyMap.ScrollDown},
		{m.keyMap.DialogPrev, m.keyMap.DialogNext, m.keyMap.DialogChoose},
		{m.keyMap.Interrupt, m.keyMap.Quit, m.keyMap.ToggleHelp, m.keyMap.ToggleDebug},
	}
}
