package confirm

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("212")
	border  = lipgloss.Color("240")
)

var (
	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("238")).
			Padding(0, 2)

	buttonFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("255")).
				Background(primary).
				Bold(true).
				Padding(0, 2)
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true)
	bodyStyle   = lipgloss.NewStyle()
	fadingStyle = lipgloss.NewStyle().Faint(true)
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2)
)
