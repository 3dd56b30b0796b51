// Package viewport is the scrollback of command output in the Bubble Tea
// session.
package viewport

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// DefaultMaxLines bounds the scrollback when New is given no limit.
const DefaultMaxLines = 500

// Model keeps output lines and shows the window selected by the user. It
// follows new output while scrolled to the bottom.
type Model struct {
	vp    viewport.Model
	lines []string
	max   int
}

// New returns an empty scrollback that pages with up and down.
func New(up, down key.Binding, maxLines int) Model {
	if maxLines <= 0 {
		maxLines = DefaultMaxLines
	}
	vp := viewport.New(0, 0)
	// Only paging: the arrow keys belong to the command line.
	vp.KeyMap = viewport.KeyMap{PageUp: up, PageDown: down}
	return Model{vp: vp, max: maxLines}
}

// Append adds lines, splitting on newlines.
func (m *Model) Append(s string) {
	follow := m.vp.AtBottom()
	m.lines = append(m.lines, strings.Split(s, "\n")...)
	if len(m.lines) > m.max {
		m.lines = m.lines[len(m.lines)-m.max:]
	}
	m.vp.SetContent(strings.Join(m.lines, "\n"))
	if follow {
		m.vp.GotoBottom()
	}
}

// Lines returns the kept lines, oldest first.
func (m Model) Lines() []string { return m.lines }

// SetSize resizes the window and keeps the newest lines in view.
func (m *Model) SetSize(width, height int) {
	if m.vp.Width == width && m.vp.Height == height {
		return
	}
	m.vp.Width, m.vp.Height = width, height
	m.vp.GotoBottom()
}

// Update handles the paging keys.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

// View renders exactly the window height, padding with blank lines.
func (m Model) View() string {
	if m.vp.Height <= 0 {
		return ""
	}
	v := m.vp.View()
	if n := strings.Count(v, "\n") + 1; n < m.vp.Height {
		v += strings.Repeat("\n", m.vp.Height-n)
	}
	return v
}
