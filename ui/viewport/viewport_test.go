package viewport

import (
	"fmt"
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
)

func newTestModel(limit int) Model {
	return New(
		key.NewBinding(key.WithKeys("pgup")),
		key.NewBinding(key.WithKeys("pgdown")),
		limit,
	)
}

func TestAppendFollowsBottom(t *testing.T) {
	m := newTestModel(0)
	m.SetSize(20, 3)
	for i := range 5 {
		m.Append(fmt.Sprintf("line %d", i))
	}
	v := m.View()
	if !strings.Contains(v, "line 4") || strings.Contains(v, "line 1") {
		t.Errorf("View() = %q, want the newest lines", v)
	}
	if got := strings.Count(v, "\n") + 1; got != 3 {
		t.Errorf("View() has %d lines, want 3", got)
	}
}

func TestPaging(t *testing.T) {
	m := newTestModel(0)
	m.SetSize(20, 2)
	for i := range 6 {
		m.Append(fmt.Sprintf("line %d", i))
	}
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyPgUp})
	if v := m.View(); !strings.Contains(v, "line 2") {
		t.Errorf("after pgup View() = %q", v)
	}
	// Arrow keys are not for the scrollback.
	before := m.View()
	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	if m.View() != before {
		t.Errorf("down arrow scrolled the output")
	}
	// Not at the bottom: new output does not move the window.
	m.Append("line 6")
	if v := m.View(); strings.Contains(v, "line 6") {
		t.Errorf("View() jumped to new output while scrolled back: %q", v)
	}
}

func TestAppendLimit(t *testing.T) {
	m := newTestModel(3)
	m.Append("a\nb")
	m.Append("c\nd")
	if diff := cmp.Diff([]string{"b", "c", "d"}, m.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}
	if v := m.View(); v != "" {
		t.Errorf("View() with no height = %q, want empty", v)
	}
}
