package statusbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Style definitions for the status bar
var (
	statusBarStyle = lipgloss.NewStyle().
			Reverse(true)

	statusTextStyle = lipgloss.NewStyle().Inherit(statusBarStyle)

	separatorStyle = statusTextStyle.Foreground(lipgloss.Color("240"))

	stateStyle = statusTextStyle.Bold(true)
)

// StatusData holds the information for the status bar
type StatusData struct {
	State          string // coordinator state: idle, spinner, dialog
	Mode           string // renderer mode
	Parked         bool   // a spinner is waiting behind the dialog
	CustomMessages []string
}

// Render creates the status bar string
func Render(width int, data StatusData) string {
	if width <= 0 {
		return ""
	}

	sep := separatorStyle.Render(" │ ")

	state := data.State
	if data.Parked {
		state += " (spinner parked)"
	}
	stateStr := stateStyle.Render(fmt.Sprintf(" %s ", state))
	modeStr := fmt.Sprintf(" %s ", data.Mode)
	customStr := strings.Join(data.CustomMessages, sep)

	left := stateStr
	right := modeStr

	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	customWidth := lipgloss.Width(customStr)

	fixedWidth := leftWidth + rightWidth
	if customWidth > 0 {
		fixedWidth += lipgloss.Width(sep) + customWidth
	}

	paddingWidth := max(width-fixedWidth, 0)

	var middle string
	if customWidth > 0 {
		middle = sep + customStr + strings.Repeat(" ", paddingWidth)
	} else {
		middle = strings.Repeat(" ", paddingWidth)
	}

	return statusBarStyle.Width(width).Render(left + middle + right)
}
