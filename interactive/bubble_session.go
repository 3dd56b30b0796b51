package interactive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tmc/overlay"
	"github.com/tmc/overlay/ui/confirm"
	"github.com/tmc/overlay/ui/debug"
	"github.com/tmc/overlay/ui/help"
	"github.com/tmc/overlay/ui/history"
	"github.com/tmc/overlay/ui/keymap"
	"github.com/tmc/overlay/ui/layer"
	"github.com/tmc/overlay/ui/spinner"
	"github.com/tmc/overlay/ui/statusbar"
	"github.com/tmc/overlay/ui/toast"
	"github.com/tmc/overlay/ui/viewport"
)

// --- Compile-time checks ---
var (
	_ Session                 = (*BubbleSession)(nil)
	_ overlay.SpinnerRenderer = (*bubbleModel)(nil)
	_ overlay.DialogRenderer  = (*bubbleModel)(nil)
	_ overlay.ToastRenderer   = (*bubbleModel)(nil)
)

// BubbleSession implements the Session interface using Bubble Tea.
type BubbleSession struct {
	config  Config
	model   *bubbleModel
	program *tea.Program
}

// NewBubbleSession creates a new Bubble Tea based session. Command history is
// loaded from cfg.HistoryFile when it is set.
func NewBubbleSession(cfg Config) (*BubbleSession, error) {
	cfg.setDefaults()
	historyPath, err := expandTilde(cfg.HistoryFile)
	if err != nil {
		cfg.Logger.Warnf("Could not expand history file path '%s': %v", cfg.HistoryFile, err)
		historyPath = ""
	}
	cfg.HistoryFile = historyPath

	var entries []string
	if cfg.HistoryFile != "" {
		if entries, err = history.Load(cfg.HistoryFile); err != nil {
			cfg.Logger.Warnf("Could not load history: %v", err)
		}
	}
	s := &BubbleSession{config: cfg}
	s.model = newBubbleModel(s, history.New(entries, 0))
	return s, nil
}

// Coordinator returns the coordinator driven by the session. It must only be
// called from the Bubble Tea loop, for example inside a tea.Cmd result.
func (s *BubbleSession) Coordinator() *overlay.Coordinator {
	return s.model.coord
}

// Run starts the Bubble Tea application loop.
func (s *BubbleSession) Run(ctx context.Context) error {
	options := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if s.config.Stdin != nil {
		if f, ok := s.config.Stdin.(*os.File); ok {
			options = append(options, tea.WithInput(f))
		}
	}
	if s.config.Stdout != nil {
		options = append(options, tea.WithOutput(s.config.Stdout))
	}

	s.program = tea.NewProgram(s.model, options...)
	_, err := s.program.Run()
	if s.config.HistoryFile != "" {
		if herr := history.Save(s.model.history.Entries(), s.config.HistoryFile); herr != nil {
			s.config.Logger.Warnf("Could not save history: %v", herr)
		}
	}
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

// Quit signals the Bubble Tea program to quit.
func (s *BubbleSession) Quit() {
	if s.program != nil {
		s.program.Quit()
	}
}

// --- Messages ---

type (
	// spinnerGoneMsg ends the fade of spinner ID.
	spinnerGoneMsg struct{ id string }
	// dialogGoneMsg ends the fade of dialog ID.
	dialogGoneMsg struct{ id string }
	// afterMsg runs fn on the loop.
	afterMsg struct{ fn func() }
)

// --- Model ---

// bubbleModel is the Bubble Tea model. It is also the coordinator's renderer:
// the coordinator only calls it from inside Update, so renderer methods can
// change the model and queue commands that Update returns.
type bubbleModel struct {
	session *BubbleSession
	coord   *overlay.Coordinator
	shell   *shell

	input   textinput.Model
	history *history.History
	keys    keymap.KeyMap
	help    help.Model
	debug   *debug.DebugView
	toasts  toast.Model

	spinners    []spinner.Model // presented, oldest first; the last one is drawn
	dialogs     []confirm.Model // stack; the last one has focus
	dismissals  map[string]*overlay.Completion
	pending     []tea.Cmd
	output      viewport.Model
	lastCommand string

	width, height int
	quitting      bool
}

func newBubbleModel(s *BubbleSession, hist *history.History) *bubbleModel {
	in := textinput.New()
	in.Prompt = s.config.Prompt
	in.CharLimit = 200
	in.Focus()

	keys := keymap.DefaultKeyMap()
	m := &bubbleModel{
		session:    s,
		input:      in,
		history:    hist,
		keys:       keys,
		help:       help.New(keys),
		debug:      debug.NewView(s.config.ShowEvents),
		output:     viewport.New(keys.ScrollUp, keys.ScrollDown, 0),
		dismissals: make(map[string]*overlay.Completion),
		width:      80,
		height:     24,
	}
	m.coord = overlay.New(overlay.Renderers{Spinner: m, Dialog: m, Toast: m}, s.config.coordinatorOptions()...)
	m.coord.Subscribe(m.debug.AddEvent)
	m.shell = &shell{c: m.coord, cfg: s.config, host: m}
	m.layout()
	return m
}

func (m *bubbleModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *bubbleModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.input.Width = msg.Width - lipgloss.Width(m.input.Prompt) - 1
		m.debug.UpdateDimensions(msg.Width)
		m.help, _ = m.help.Update(msg)

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	case confirm.ChosenMsg:
		m.choose(msg)

	case dialogGoneMsg:
		m.removeDialog(msg.id)

	case spinnerGoneMsg:
		m.removeSpinner(msg.id)

	case afterMsg:
		msg.fn()

	case toast.ExpiredMsg:
		m.toasts, cmd = m.toasts.Update(msg)
		cmds = append(cmds, cmd)

	case spinner.TickMsg:
		for i := range m.spinners {
			m.spinners[i], cmd = m.spinners[i].Update(msg)
			cmds = append(cmds, cmd)
		}

	default:
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	cmds = append(cmds, m.pending...)
	m.pending = nil
	m.layout()
	if m.quitting {
		cmds = append(cmds, tea.Quit)
	}
	return m, tea.Batch(cmds...)
}

func (m *bubbleModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Interrupt):
		if m.input.Value() == "" {
			m.quitting = true
			return nil
		}
		m.input.Reset()
		return nil
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return nil
	case key.Matches(msg, m.keys.ToggleDebug):
		m.debug.Visible = !m.debug.Visible
		return nil
	case key.Matches(msg, m.keys.ToggleHelp):
		m.help, _ = m.help.Update(msg)
		return nil
	}

	// An open dialog is modal.
	if n := len(m.dialogs); n > 0 {
		var cmd tea.Cmd
		m.dialogs[n-1], cmd = m.dialogs[n-1].Update(msg)
		return cmd
	}

	if key.Matches(msg, m.keys.ScrollUp, m.keys.ScrollDown) {
		var cmd tea.Cmd
		m.output, cmd = m.output.Update(msg)
		return cmd
	}

	if key.Matches(msg, m.keys.Submit) {
		line := m.input.Value()
		m.input.Reset()
		line = strings.TrimSpace(line)
		if line == "" {
			return nil
		}
		m.lastCommand = line
		m.history.Add(line)
		if err := m.shell.Execute(line); err != nil {
			m.Println("error: " + err.Error())
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.HistoryPrev):
		if line, ok := m.history.Prev(m.input.Value()); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return nil
	case key.Matches(msg, m.keys.HistoryNext):
		if line, ok := m.history.Next(); ok {
			m.input.SetValue(line)
			m.input.CursorEnd()
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

// choose activates the button and starts the dialog's fade. The dismissal
// completes when the fade ends.
func (m *bubbleModel) choose(msg confirm.ChosenMsg) {
	i := m.dialogIndex(msg.ID)
	if i < 0 || m.dialogs[i].Fading {
		return
	}
	h := m.dialogs[i].Handle
	m.dialogs[i].Fading = true
	m.session.config.Logger.Debugw("dialog button", "dialog", h.ID, "index", msg.Index)
	h.Activate(msg.Index)
	m.fade(dialogGoneMsg{id: h.ID})
}

func (m *bubbleModel) removeDialog(id string) {
	i := m.dialogIndex(id)
	if i < 0 {
		return
	}
	h := m.dialogs[i].Handle
	m.dialogs = append(m.dialogs[:i], m.dialogs[i+1:]...)
	m.help.DialogOpen = len(m.dialogs) > 0
	h.Dismissed().Resolve()
}

func (m *bubbleModel) removeSpinner(id string) {
	for i, sp := range m.spinners {
		if sp.Handle.ID == id {
			m.spinners = append(m.spinners[:i], m.spinners[i+1:]...)
			break
		}
	}
	if c, ok := m.dismissals[id]; ok {
		delete(m.dismissals, id)
		c.Resolve()
	}
}

func (m *bubbleModel) dialogIndex(id string) int {
	for i, d := range m.dialogs {
		if d.Handle.ID == id {
			return i
		}
	}
	return -1
}

func (m *bubbleModel) fade(msg tea.Msg) {
	d := m.session.config.Fade
	if d <= 0 {
		m.pending = append(m.pending, func() tea.Msg { return msg })
		return
	}
	m.pending = append(m.pending, tea.Tick(d, func(time.Time) tea.Msg { return msg }))
}

// --- Renderers ---

func (m *bubbleModel) PresentSpinner(h *overlay.SpinnerHandle) {
	sp := spinner.New(h)
	m.spinners = append(m.spinners, sp)
	m.pending = append(m.pending, sp.Init())
}

func (m *bubbleModel) DismissSpinner(h *overlay.SpinnerHandle) *overlay.Completion {
	for i := range m.spinners {
		if m.spinners[i].Handle == h {
			m.spinners[i].Fading = true
			c := overlay.NewCompletion()
			m.dismissals[h.ID] = c
			m.fade(spinnerGoneMsg{id: h.ID})
			return c
		}
	}
	return overlay.Resolved()
}

func (m *bubbleModel) PresentDialog(h *overlay.DialogHandle) {
	m.dialogs = append(m.dialogs, confirm.New(h, m.keys, m.LineBreak()))
	m.help.DialogOpen = true
}

func (m *bubbleModel) LineBreak() string { return "\n" }

func (m *bubbleModel) PresentToast(t overlay.Toast) {
	var cmd tea.Cmd
	m.toasts, cmd = m.toasts.Push(t)
	m.pending = append(m.pending, cmd)
}

// --- host ---

func (m *bubbleModel) Println(s string) {
	m.output.Append(s)
}

func (m *bubbleModel) After(d time.Duration, fn func()) {
	m.pending = append(m.pending, tea.Tick(d, func(time.Time) tea.Msg { return afterMsg{fn: fn} }))
}

func (m *bubbleModel) Quit() { m.quitting = true }

// --- View ---

func (m *bubbleModel) View() string {
	if m.quitting {
		return ""
	}

	canvas := m.footer()
	if body := m.output.View(); body != "" {
		canvas = body + "\n" + canvas
	}

	if n := len(m.spinners); n > 0 {
		sp := m.spinners[n-1]
		if sp.Handle.Backdrop && !sp.Fading {
			canvas = layer.Backdrop(canvas)
		}
		canvas = layer.Place(canvas, sp.View(), m.width, m.height, layer.Center)
	}
	if n := len(m.dialogs); n > 0 {
		canvas = layer.Backdrop(canvas)
		canvas = layer.Place(canvas, m.dialogs[n-1].View(), m.width, m.height, layer.Center)
	}
	if m.toasts.Len() > 0 {
		canvas = layer.Place(canvas, m.toasts.View(m.width), m.width, m.height, layer.Top)
	}
	return canvas
}

// footer renders the input line, status bar, help and event trace.
func (m *bubbleModel) footer() string {
	status := statusbar.Render(m.width, statusbar.StatusData{
		State:          m.coord.State().String(),
		Mode:           "tui",
		Parked:         m.coord.Dialog() != nil && m.coord.Spinner() != nil,
		CustomMessages: m.statusMessages(),
	})
	parts := []string{m.input.View(), status}
	if h := m.help.View(); h != "" {
		parts = append(parts, h)
	}
	if d := m.debug.View(); d != "" {
		parts = append(parts, d)
	}
	return strings.Join(parts, "\n")
}

// layout gives the output whatever height the footer leaves.
func (m *bubbleModel) layout() {
	m.output.SetSize(m.width, max(m.height-lipgloss.Height(m.footer()), 0))
}

func (m *bubbleModel) statusMessages() []string {
	var msgs []string
	if m.lastCommand != "" {
		msgs = append(msgs, fmt.Sprintf("last: %s", m.lastCommand))
	}
	if n := len(m.dialogs); n > 1 {
		msgs = append(msgs, fmt.Sprintf("%d dialogs", n))
	}
	return msgs
}
