package debug

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/overlay"
)

// DebugView is an event trace panel fed by the coordinator's event stream.
type DebugView struct {
	log           strings.Builder
	events        []string
	eventCounter  int
	maxEvents     int
	ignoredEvents map[overlay.EventKind]bool
	width         int
	columnWidth   int
	Visible       bool // Control visibility externally
}

// NewView creates a new debug view component.
func NewView(visible bool) *DebugView {
	return &DebugView{
		maxEvents:     8,
		ignoredEvents: map[overlay.EventKind]bool{},
		width:         80,
		columnWidth:   35,
		Visible:       visible,
	}
}

// Ignore hides events of the given kinds.
func (dv *DebugView) Ignore(kinds ...overlay.EventKind) {
	for _, k := range kinds {
		dv.ignoredEvents[k] = true
	}
}

// AddEvent records e. Events are recorded while hidden so the trace is
// complete when the panel is toggled on.
func (dv *DebugView) AddEvent(e overlay.Event) {
	if dv.ignoredEvents[e.Kind] {
		return
	}

	eventStr := e.String()
	if dv.columnWidth > 3 && lipgloss.Width(eventStr) > dv.columnWidth {
		runes := []rune(eventStr)
		if len(runes) > dv.columnWidth-3 {
			eventStr = string(runes[:dv.columnWidth-3]) + "..."
		}
	}

	dv.eventCounter++
	dv.events = append(dv.events, fmt.Sprintf("%04d:%s", dv.eventCounter, eventStr))
	if len(dv.events) > dv.maxEvents {
		dv.events = dv.events[len(dv.events)-dv.maxEvents:]
	}
}

// Events returns the recorded trace, oldest first.
func (dv *DebugView) Events() []string {
	return append([]string(nil), dv.events...)
}

// Log adds a log entry.
func (dv *DebugView) Log(format string, args ...interface{}) {
	if !dv.Visible {
		return
	}
	logEntry := fmt.Sprintf(format, args...)
	dv.log.WriteString(logEntry)
	if !strings.HasSuffix(logEntry, "\n") {
		dv.log.WriteString("\n")
	}
}

// UpdateDimensions updates the width parameters.
func (dv *DebugView) UpdateDimensions(width int) {
	if width <= 0 {
		return
	}
	dv.width = width
	dv.columnWidth = width/2 - 4
	if dv.columnWidth < 20 {
		dv.columnWidth = 20
	}
}

// View renders the debug view if visible.
func (dv *DebugView) View() string {
	if !dv.Visible || dv.width < 40 {
		return ""
	}

	logSection := ""
	eventsSection := ""
	logStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Width(dv.columnWidth).Align(lipgloss.Left).Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")).Padding(0, 1)

	if dv.log.Len() > 0 {
		allLogLines := strings.Split(strings.TrimRight(dv.log.String(), "\n"), "\n")
		maxLogLines := 10
		startIdx := 0
		if len(allLogLines) > maxLogLines {
			startIdx = len(allLogLines) - maxLogLines
		}
		var formattedLines []string
		for _, line := range allLogLines[startIdx:] {
			if dv.columnWidth > 3 && lipgloss.Width(line) > dv.columnWidth {
				runes := []rune(line)
				line = string(runes[:dv.columnWidth-3]) + "..."
			}
			formattedLines = append(formattedLines, line)
		}
		logSection = logStyle.Render("Logs:\n" + strings.Join(formattedLines, "\n"))
	}

	if len(dv.events) > 0 {
		eventsSection = logStyle.Render("Events:\n" + strings.Join(dv.events, "\n"))
	}

	if logSection != "" && eventsSection != "" {
		return lipgloss.JoinHorizontal(lipgloss.Top, logSection, "  ", eventsSection)
	}
	return logSection + eventsSection
}
