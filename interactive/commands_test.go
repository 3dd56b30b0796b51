package interactive

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap/zaptest"

	"github.com/tmc/overlay"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line    string
		want    Command
		wantErr error
	}{
		{"spin Loading files", Command{Name: "spin", Arg: "Loading files"}, nil},
		{"  HIDE  ", Command{Name: "hide"}, nil},
		{"dialog Go? | Yes | No", Command{Name: "dialog", Arg: "Go? | Yes | No"}, nil},
		{"", Command{}, ErrEmptyInput},
		{"   ", Command{}, ErrEmptyInput},
		{"launch rockets", Command{}, ErrUnknownCommand},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			got, err := ParseCommand(tt.line)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseCommand(%q) error = %v, want %v", tt.line, err, tt.wantErr)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseCommand(%q) mismatch (-want +got):\n%s", tt.line, diff)
			}
		})
	}
}

func TestParseDialog(t *testing.T) {
	tests := []struct {
		arg         string
		wantMsg     string
		wantButtons []string
	}{
		{"Proceed?", "Proceed?", []string{"OK"}},
		{"Proceed? | Yes | No", "Proceed?", []string{"Yes", "No"}},
		{"Proceed? | | Later", "Proceed?", []string{"Later"}},
	}
	for _, tt := range tests {
		msg, buttons := parseDialog(tt.arg)
		if msg != tt.wantMsg {
			t.Errorf("parseDialog(%q) message = %q, want %q", tt.arg, msg, tt.wantMsg)
		}
		if diff := cmp.Diff(tt.wantButtons, buttons); diff != "" {
			t.Errorf("parseDialog(%q) buttons mismatch (-want +got):\n%s", tt.arg, diff)
		}
	}
}

func TestHelpListsEveryCommand(t *testing.T) {
	h := Help()
	for _, c := range commands {
		if !strings.Contains(h, c.usage) {
			t.Errorf("Help() missing %q", c.usage)
		}
	}
}

// fakeHost records output and holds scheduled functions until run.
type fakeHost struct {
	lines []string
	after []func()
	waits []time.Duration
	quit  bool
}

func (h *fakeHost) Println(s string) { h.lines = append(h.lines, s) }
func (h *fakeHost) After(d time.Duration, fn func()) {
	h.waits = append(h.waits, d)
	h.after = append(h.after, fn)
}
func (h *fakeHost) Quit() { h.quit = true }

func (h *fakeHost) runAfter() {
	fns := h.after
	h.after = nil
	for _, fn := range fns {
		fn()
	}
}

// instantRenderer completes every dismissal at once and keeps the open dialogs.
type instantRenderer struct {
	spinners []*overlay.SpinnerHandle
	dialogs  []*overlay.DialogHandle
	toasts   []overlay.Toast
}

func (r *instantRenderer) PresentSpinner(h *overlay.SpinnerHandle) { r.spinners = append(r.spinners, h) }
func (r *instantRenderer) DismissSpinner(*overlay.SpinnerHandle) *overlay.Completion {
	return overlay.Resolved()
}
func (r *instantRenderer) PresentDialog(h *overlay.DialogHandle) { r.dialogs = append(r.dialogs, h) }
func (r *instantRenderer) LineBreak() string                     { return "\n" }
func (r *instantRenderer) PresentToast(t overlay.Toast)          { r.toasts = append(r.toasts, t) }

func (r *instantRenderer) press(t *testing.T, i int) {
	t.Helper()
	n := len(r.dialogs)
	if n == 0 {
		t.Fatal("no dialog to press")
	}
	h := r.dialogs[n-1]
	r.dialogs = r.dialogs[:n-1]
	if !h.Activate(i) {
		t.Fatalf("button %d out of range for %v", i, h.Labels())
	}
	h.Dismissed().Resolve()
}

func newTestShell(t *testing.T) (*shell, *fakeHost, *instantRenderer) {
	t.Helper()
	r := &instantRenderer{}
	h := &fakeHost{}
	cfg := Config{Logger: zaptest.NewLogger(t).Sugar(), SpinnerVariant: "line", WorkDuration: time.Minute}
	cfg.setDefaults()
	c := overlay.New(overlay.Renderers{Spinner: r, Dialog: r, Toast: r}, cfg.coordinatorOptions()...)
	return &shell{c: c, cfg: cfg, host: h}, h, r
}

func TestShellCommands(t *testing.T) {
	sh, h, r := newTestShell(t)
	run := func(line string) {
		t.Helper()
		if err := sh.Execute(line); err != nil {
			t.Fatalf("Execute(%q): %v", line, err)
		}
	}

	run("spin Loading")
	if got := r.spinners[0]; got.Message != "Loading" || got.Variant != "line" {
		t.Errorf("spinner = %+v, want Loading with the configured variant", got)
	}
	run("hide")
	run("trans moon Saving")
	if got := r.spinners[1]; got.Variant != "moon" || !strings.HasPrefix(got.StyleClass, overlay.TransparentStyleClass) || got.Message != "Saving" {
		t.Errorf("transparent spinner = %+v", got)
	}
	run("hide")
	run("toast Saved")
	run("ask Sure?")
	r.press(t, 0)
	run("error Broken")
	r.press(t, 0)
	run("ask Really?")
	r.press(t, 1)
	run("unsaved")
	r.press(t, 1)
	run("dialog Pick | Red | Blue")
	r.press(t, 1)
	run("state")
	run("quit")

	want := []string{
		"spinner hidden",
		"spinner hidden",
		"approved",
		"cancelled",
		"discarded",
		"pressed Blue",
		"state: idle",
	}
	if diff := cmp.Diff(want, h.lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
	if len(r.toasts) != 1 || r.toasts[0].Message != "Saved" {
		t.Errorf("toasts = %+v, want one Saved toast", r.toasts)
	}
	if !h.quit {
		t.Errorf("quit did not reach the host")
	}
}

func TestShellWork(t *testing.T) {
	sh, h, r := newTestShell(t)
	if err := sh.Execute("work"); err != nil {
		t.Fatal(err)
	}
	if len(r.spinners) != 1 || r.spinners[0].Message != "Working" {
		t.Fatalf("spinners = %+v, want one Working spinner", r.spinners)
	}
	if diff := cmp.Diff([]time.Duration{time.Minute}, h.waits); diff != "" {
		t.Errorf("waits mismatch (-want +got):\n%s", diff)
	}

	// A dialog arrives while working; the spinner is pre-empted. A new spin
	// request is parked and comes back once the dialog closes.
	if err := sh.Execute("ask Continue?"); err != nil {
		t.Fatal(err)
	}
	if err := sh.Execute("spin Again"); err != nil {
		t.Fatal(err)
	}
	r.press(t, 0)
	if got := sh.c.State(); got != overlay.SpinnerActive {
		t.Fatalf("State() = %v, want spinner", got)
	}

	h.runAfter()
	if got := sh.c.State(); got != overlay.Idle {
		t.Errorf("State() after work = %v, want idle", got)
	}
	if diff := cmp.Diff([]string{"approved", "done: Working"}, h.lines); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestShellErrors(t *testing.T) {
	sh, _, _ := newTestShell(t)
	tests := []struct {
		line string
		want error
	}{
		{"toast", ErrEmptyInput},
		{"ask", ErrEmptyInput},
		{"error   ", ErrEmptyInput},
		{"fly", ErrUnknownCommand},
	}
	for _, tt := range tests {
		if err := sh.Execute(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Execute(%q) = %v, want %v", tt.line, err, tt.want)
		}
	}
}
