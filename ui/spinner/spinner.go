// Package spinner renders overlay spinner handles with bubbles/spinner.
package spinner

import (
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/overlay"
)

// TickMsg is the bubbles spinner tick message.
type TickMsg = spinner.TickMsg

// Crescent is a rotating arc, the variant dialogs default to.
var Crescent = spinner.Spinner{
	Frames: []string{"◜", "◠", "◝", "◞", "◡", "◟"},
	FPS:    time.Second / 10,
}

var variants = map[string]spinner.Spinner{
	"line":      spinner.Line,
	"dot":       spinner.Dot,
	"minidot":   spinner.MiniDot,
	"jump":      spinner.Jump,
	"pulse":     spinner.Pulse,
	"points":    spinner.Points,
	"globe":     spinner.Globe,
	"moon":      spinner.Moon,
	"monkey":    spinner.Monkey,
	"meter":     spinner.Meter,
	"hamburger": spinner.Hamburger,
	"ellipsis":  spinner.Ellipsis,

	overlay.DialogSpinnerVariant: Crescent,
}

// Variant returns the frames for a variant name. Unknown names fall back to
// spinner.Dot and report false.
func Variant(name string) (spinner.Spinner, bool) {
	s, ok := variants[name]
	if !ok {
		return spinner.Dot, false
	}
	return s, true
}

// Names lists the known variant names in order.
func Names() []string {
	names := make([]string, 0, len(variants))
	for n := range variants {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

var (
	frameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	messageStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	cardStyle    = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 2)
	fadingStyle = lipgloss.NewStyle().Faint(true)
)

// Model displays one spinner handle.
type Model struct {
	Handle *overlay.SpinnerHandle
	Fading bool

	inner spinner.Model
}

// New returns a Model for h using the handle's variant.
func New(h *overlay.SpinnerHandle) Model {
	s, _ := Variant(h.Variant)
	return Model{
		Handle: h,
		inner:  spinner.New(spinner.WithSpinner(s), spinner.WithStyle(frameStyle)),
	}
}

// Init starts the animation.
func (m Model) Init() tea.Cmd {
	return m.inner.Tick
}

// Update advances the animation. Ticks for other spinners are ignored.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inner, cmd = m.inner.Update(msg)
	return m, cmd
}

// Transparent reports whether the handle asked for the borderless style.
func (m Model) Transparent() bool {
	return slices.Contains(strings.Fields(m.Handle.StyleClass), overlay.TransparentStyleClass)
}

// View renders the spinner card.
func (m Model) View() string {
	line := m.inner.View()
	if m.Handle.Message != "" {
		line += " " + messageStyle.Render(m.Handle.Message)
	}
	if !m.Transparent() {
		line = cardStyle.Render(line)
	}
	if m.Fading {
		line = fadingStyle.Render(line)
	}
	return line
}
