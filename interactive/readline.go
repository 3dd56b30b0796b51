package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chzyer/readline"
	"github.com/tmc/spinner"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/tmc/overlay"
)

// ReadlineSession implements a line-oriented session using chzyer/readline.
//
// Overlays are printed: a spinner is a status line (animated on stderr when it
// is a terminal), a dialog is a numbered menu answered on the next input line,
// and a toast is a single line. Dismissals complete immediately.
type ReadlineSession struct {
	config Config
	log    *zap.SugaredLogger
	coord  *overlay.Coordinator
	shell  *shell

	// mu serialises coordinator calls from the input loop and from timers.
	mu         sync.Mutex
	reader     *readline.Instance
	dialogs    []*overlay.DialogHandle // stack; the last one is answered next
	stopSpin   func()
	spinHandle *overlay.SpinnerHandle
	quitting   bool

	timers sync.WaitGroup // After callbacks not yet run
}

// Compile-time checks
var (
	_ Session                 = (*ReadlineSession)(nil)
	_ overlay.SpinnerRenderer = (*ReadlineSession)(nil)
	_ overlay.DialogRenderer  = (*ReadlineSession)(nil)
	_ overlay.ToastRenderer   = (*ReadlineSession)(nil)
)

// NewReadlineSession creates a readline session. The terminal is not touched
// until Run.
func NewReadlineSession(cfg Config) (*ReadlineSession, error) {
	cfg.setDefaults()
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	historyPath, err := expandTilde(cfg.HistoryFile)
	if err != nil {
		cfg.Logger.Warnf("Could not expand history file path '%s': %v", cfg.HistoryFile, err)
		historyPath = cfg.HistoryFile
	}
	cfg.HistoryFile = historyPath

	s := &ReadlineSession{config: cfg, log: cfg.Logger.Named("readline")}
	s.coord = overlay.New(overlay.Renderers{Spinner: s, Dialog: s, Toast: s}, cfg.coordinatorOptions()...)
	if cfg.ShowEvents {
		s.coord.Subscribe(func(e overlay.Event) { s.printf("· %s\n", e) })
	}
	s.shell = &shell{c: s.coord, cfg: cfg, host: s}
	return s, nil
}

// Coordinator returns the coordinator driven by the session. Callers outside
// the session must not use it concurrently with Run.
func (s *ReadlineSession) Coordinator() *overlay.Coordinator { return s.coord }

// Quit closes the readline instance.
func (s *ReadlineSession) Quit() {
	s.quitting = true
	if s.reader != nil {
		s.reader.Close()
	}
}

func (s *ReadlineSession) newReader() (*readline.Instance, error) {
	items := make([]readline.PrefixCompleterInterface, len(commands))
	for i, c := range commands {
		items[i] = readline.PcItem(c.name)
	}
	rlConfig := &readline.Config{
		Prompt:                 s.config.Prompt,
		InterruptPrompt:        "^C",
		EOFPrompt:              "exit",
		HistoryFile:            s.config.HistoryFile,
		HistoryLimit:           1000,
		HistorySearchFold:      true,
		AutoComplete:           readline.NewPrefixCompleter(items...),
		DisableAutoSaveHistory: false,
		Stdout:                 s.config.Stdout,
		Stderr:                 s.config.Stderr,
	}
	if s.config.Stdin != nil {
		rlConfig.Stdin = s.config.Stdin
	}
	if f, ok := s.config.Stdin.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		rlConfig.FuncIsTerminal = func() bool { return false }
	}
	reader, err := readline.NewEx(rlConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize readline: %w", err)
	}
	return reader, nil
}

// Run reads commands until quit, EOF or ctx is done.
func (s *ReadlineSession) Run(ctx context.Context) error {
	reader, err := s.newReader()
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.reader = reader
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		s.stopSpinner()
		s.reader.Close()
		s.mu.Unlock()
	}()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.log.Infof("context cancelled (%v), closing readline", ctx.Err())
			reader.Close()
		case <-done:
		}
	}()

	s.printf("Type \"help\" for commands.\n")
	for {
		line, err := reader.Readline()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		s.mu.Lock()
		if err := s.HandleLine(line); err != nil && !errors.Is(err, ErrEmptyInput) {
			s.printf("error: %v\n", err)
		}
		quit := s.quitting
		s.mu.Unlock()
		if quit {
			return nil
		}
	}
}

// RunScript runs lines as if typed, without a terminal, then waits for
// scheduled work to finish. Answers to dialogs are lines too.
func (s *ReadlineSession) RunScript(ctx context.Context, lines []string) error {
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mu.Lock()
		s.printf("%s%s\n", s.prompt(), line)
		if err := s.HandleLine(line); err != nil && !errors.Is(err, ErrEmptyInput) {
			s.printf("error: %v\n", err)
		}
		quit := s.quitting
		s.mu.Unlock()
		if quit {
			return nil
		}
	}

	done := make(chan struct{})
	go func() {
		s.timers.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if n := len(s.dialogs); n > 0 {
		return fmt.Errorf("script ended with %d open dialog(s)", n)
	}
	return nil
}

// HandleLine answers the open dialog or runs a command. The caller holds mu
// when Run is active.
func (s *ReadlineSession) HandleLine(line string) error {
	if n := len(s.dialogs); n > 0 {
		return s.answer(s.dialogs[n-1], strings.TrimSpace(line))
	}
	return s.shell.Execute(line)
}

func (s *ReadlineSession) answer(h *overlay.DialogHandle, line string) error {
	labels := h.Labels()
	i, err := strconv.Atoi(line)
	if err != nil || i < 1 || i > len(labels) {
		s.printf("choose 1-%d\n", len(labels))
		return nil
	}
	s.dialogs = s.dialogs[:len(s.dialogs)-1]
	s.updatePrompt()
	h.Activate(i - 1)
	h.Dismissed().Resolve()
	return nil
}

// --- Renderers ---

func (s *ReadlineSession) PresentSpinner(h *overlay.SpinnerHandle) {
	s.stopSpinner()
	s.spinHandle = h
	s.printf("… %s\n", h.Message)
	if f, ok := s.config.Stderr.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		sp := spinner.New(
			spinner.WithFrames(spinner.Dots8),
			spinner.WithWriter(f),
			spinner.WithIntervalFunc(
				spinner.SpeedupInterval(90*time.Millisecond, 40*time.Millisecond, 5*time.Second),
			),
			spinner.WithColorFunc(spinner.GreyPulse(15*time.Millisecond)),
		)
		sp.Start()
		s.stopSpin = sp.Stop
	}
}

func (s *ReadlineSession) DismissSpinner(h *overlay.SpinnerHandle) *overlay.Completion {
	if s.spinHandle == h {
		s.stopSpinner()
	}
	return overlay.Resolved()
}

func (s *ReadlineSession) stopSpinner() {
	if s.stopSpin != nil {
		s.stopSpin()
		s.stopSpin = nil
	}
	s.spinHandle = nil
}

func (s *ReadlineSession) PresentDialog(h *overlay.DialogHandle) {
	var b strings.Builder
	b.WriteString("┌ ")
	if h.Title != "" {
		b.WriteString(h.Title)
	}
	b.WriteString("\n")
	for _, line := range strings.Split(h.Message, s.LineBreak()) {
		fmt.Fprintf(&b, "│ %s\n", line)
	}
	for i, l := range h.Labels() {
		fmt.Fprintf(&b, "│  %d) %s\n", i+1, l)
	}
	b.WriteString("└\n")
	s.printf("%s", b.String())
	s.dialogs = append(s.dialogs, h)
	s.updatePrompt()
}

func (s *ReadlineSession) LineBreak() string { return "\n" }

func (s *ReadlineSession) PresentToast(t overlay.Toast) {
	s.printf("» %s\n", t.Message)
}

// --- host ---

func (s *ReadlineSession) Println(line string) {
	s.printf("%s\n", line)
}

// After runs fn under mu once d has passed.
func (s *ReadlineSession) After(d time.Duration, fn func()) {
	s.timers.Add(1)
	time.AfterFunc(d, func() {
		defer s.timers.Done()
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.quitting {
			return
		}
		fn()
		if s.reader != nil {
			s.reader.Refresh()
		}
	})
}

func (s *ReadlineSession) printf(format string, args ...any) {
	var w io.Writer = s.config.Stdout
	if s.reader != nil {
		w = s.reader.Stdout()
	}
	fmt.Fprintf(w, format, args...)
}

func (s *ReadlineSession) prompt() string {
	if len(s.dialogs) > 0 {
		return DialogPrompt
	}
	return s.config.Prompt
}

func (s *ReadlineSession) updatePrompt() {
	if s.reader != nil {
		s.reader.SetPrompt(s.prompt())
	}
}

// Expand tilde in file paths
func expandTilde(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	sep := string(os.PathSeparator)
	if path == "~" || strings.HasPrefix(path, "~"+sep) {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("get home directory: %w", err)
		}
		if path == "~" {
			return homeDir, nil
		}
		return strings.Replace(path, "~", homeDir, 1), nil
	}
	return path, nil
}
