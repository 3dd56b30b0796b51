package keymap

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the demo's keybindings.
// Using bubbles/key allows for help generation and context-aware enabling.
type KeyMap struct {
	// Command line
	Submit      key.Binding // Enter runs the typed command
	HistoryPrev key.Binding
	HistoryNext key.Binding
	ScrollUp    key.Binding
	ScrollDown  key.Binding

	// Dialog
	DialogNext   key.Binding
	DialogPrev   key.Binding
	DialogChoose key.Binding

	// Application Control
	Quit        key.Binding // Ctrl+D
	Interrupt   key.Binding // Ctrl+C clears the line, quits on an empty one
	ToggleHelp  key.Binding
	ToggleDebug key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
		HistoryPrev: key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "previous command")),
		HistoryNext: key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "next command")),
		ScrollUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "scroll up")),
		ScrollDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "scroll down")),

		DialogNext:   key.NewBinding(key.WithKeys("right", "tab", "l"), key.WithHelp("→/tab", "next button")),
		DialogPrev:   key.NewBinding(key.WithKeys("left", "shift+tab", "h"), key.WithHelp("←/shift+tab", "previous button")),
		DialogChoose: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter/1-9", "press button")),

		Interrupt:   key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "clear / quit")),
		Quit:        key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "quit")),
		ToggleHelp:  key.NewBinding(key.WithKeys("f1"), key.WithHelp("f1", "toggle help")),
		ToggleDebug: key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "toggle event trace")),
	}
}
