package interactive

import (
	"fmt"
	"strings"
	"time"

	"github.com/tmc/overlay"
)

// Command is one parsed input line.
type Command struct {
	Name string
	Arg  string
}

type commandSpec struct {
	name, usage, help string
}

var commands = []commandSpec{
	{"spin", "spin [message]", "show a spinner"},
	{"trans", "trans [variant] [message]", "show a borderless spinner"},
	{"hide", "hide", "hide the spinner"},
	{"work", "work [message]", "show a spinner and hide it when the work is done"},
	{"toast", "toast <message>", "show a toast (dropped while busy)"},
	{"ask", "ask <message>", "show a message with OK and Cancel"},
	{"error", "error <message>", "show an error acknowledgement"},
	{"unsaved", "unsaved", "show the unsaved changes prompt"},
	{"dialog", "dialog <message> [| button]...", "show a dialog with custom buttons"},
	{"state", "state", "print the coordinator state"},
	{"help", "help", "list commands"},
	{"quit", "quit", "exit"},
}

// Help lists the commands, one per line.
func Help() string {
	var b strings.Builder
	for _, c := range commands {
		fmt.Fprintf(&b, "  %-32s %s\n", c.usage, c.help)
	}
	return b.String()
}

// ParseCommand splits line into a command name and its argument.
func ParseCommand(line string) (Command, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Command{}, ErrEmptyInput
	}
	name, arg, _ := strings.Cut(line, " ")
	name = strings.ToLower(name)
	for _, c := range commands {
		if c.name == name {
			return Command{Name: name, Arg: strings.TrimSpace(arg)}, nil
		}
	}
	return Command{}, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
}

// host is what a session offers the shell.
type host interface {
	// Println writes a line of output.
	Println(s string)
	// After runs fn on the session's loop once d has passed.
	After(d time.Duration, fn func())
	Quit()
}

// shell turns commands into coordinator calls.
type shell struct {
	c    *overlay.Coordinator
	cfg  Config
	host host
}

// Execute parses and runs line.
func (sh *shell) Execute(line string) error {
	cmd, err := ParseCommand(line)
	if err != nil {
		return err
	}
	return sh.Run(cmd)
}

// Run executes cmd.
func (sh *shell) Run(cmd Command) error {
	c, arg := sh.c, cmd.Arg
	switch cmd.Name {
	case "spin":
		c.ShowSpinner(arg, overlay.WithSpinnerVariant(sh.cfg.SpinnerVariant))
	case "trans":
		variant, msg, _ := strings.Cut(arg, " ")
		if variant == "" {
			variant = sh.cfg.SpinnerVariant
		}
		c.ShowTransparentSpinner(variant, strings.TrimSpace(msg))
	case "hide":
		c.HideSpinner(func() { sh.host.Println("spinner hidden") })
	case "work":
		if arg == "" {
			arg = "Working"
		}
		c.ShowSpinner(arg, overlay.WithSpinnerVariant(sh.cfg.SpinnerVariant))
		sh.host.After(sh.cfg.WorkDuration, func() {
			c.HideSpinner(func() { sh.host.Println("done: " + arg) })
		})
	case "toast":
		if arg == "" {
			return fmt.Errorf("toast: %w", ErrEmptyInput)
		}
		c.ShowToast(arg)
	case "ask", "error":
		if arg == "" {
			return fmt.Errorf("%s: %w", cmd.Name, ErrEmptyInput)
		}
		c.ShowAcknowledgement(cmd.Name == "error", arg, sh.said("approved"), sh.said("cancelled"))
	case "unsaved":
		c.ShowUnsavedChangesPrompt(sh.said("saved"), sh.said("discarded"))
	case "dialog":
		msg, buttons := parseDialog(arg)
		specs := make([]overlay.ButtonSpec, len(buttons))
		for i, b := range buttons {
			specs[i] = overlay.ButtonSpec{Label: b, OnActivate: sh.said("pressed " + b)}
		}
		c.ShowDialog(msg, specs)
	case "state":
		sh.host.Println(describe(c))
	case "help":
		sh.host.Println(strings.TrimRight(Help(), "\n"))
	case "quit":
		sh.host.Quit()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Name)
	}
	return nil
}

func (sh *shell) said(s string) func() {
	return func() { sh.host.Println(s) }
}

// parseDialog splits "message | a | b" into the message and button labels.
// Without buttons a single OK button is used.
func parseDialog(arg string) (string, []string) {
	parts := strings.Split(arg, "|")
	msg := strings.TrimSpace(parts[0])
	var buttons []string
	for _, p := range parts[1:] {
		if p = strings.TrimSpace(p); p != "" {
			buttons = append(buttons, p)
		}
	}
	if len(buttons) == 0 {
		buttons = []string{"OK"}
	}
	return msg, buttons
}

func describe(c *overlay.Coordinator) string {
	s := "state: " + c.State().String()
	if h := c.Spinner(); h != nil {
		s += fmt.Sprintf(" spinner=%s %q", h.ID, h.Message)
	}
	if h := c.Dialog(); h != nil {
		s += fmt.Sprintf(" dialog=%s %q", h.ID, h.Message)
	}
	return s
}
