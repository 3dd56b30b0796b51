package overlay

import (
	"fmt"
	"strconv"
	"testing"

	"go.uber.org/zap/zaptest"
)

// fakeRenderer records every renderer call and holds spinner dismissals until
// the test resolves them.
type fakeRenderer struct {
	calls     []string
	spinners  []*SpinnerHandle // presented, in order
	dialogs   []*DialogHandle  // presented, in order
	toasts    []Toast
	pending   []*Completion // spinner dismissals not yet resolved
	dismissed []*SpinnerHandle

	autoResolve bool
	record      func(string)

	// coord, when set, is checked on every present call; mismatches are
	// collected in violations.
	coord      *Coordinator
	violations []string
}

func (f *fakeRenderer) note(format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	f.calls = append(f.calls, line)
	if f.record != nil {
		f.record("render: " + line)
	}
}

func (f *fakeRenderer) PresentSpinner(h *SpinnerHandle) {
	f.note("present-spinner %s %q", h.ID, h.Message)
	if c := f.coord; c != nil {
		if d := c.Dialog(); d != nil {
			f.violations = append(f.violations, fmt.Sprintf("spinner %s presented while dialog %s is tracked", h.ID, d.ID))
		}
		if c.Spinner() != h {
			f.violations = append(f.violations, fmt.Sprintf("untracked spinner %s presented", h.ID))
		}
	}
	f.spinners = append(f.spinners, h)
}

func (f *fakeRenderer) DismissSpinner(h *SpinnerHandle) *Completion {
	f.note("dismiss-spinner %s", h.ID)
	f.dismissed = append(f.dismissed, h)
	if f.autoResolve {
		return Resolved()
	}
	c := NewCompletion()
	f.pending = append(f.pending, c)
	return c
}

func (f *fakeRenderer) PresentDialog(h *DialogHandle) {
	f.note("present-dialog %s %q %q %q", h.ID, h.Title, h.Message, h.Labels())
	if c := f.coord; c != nil && c.Dialog() != h {
		f.violations = append(f.violations, fmt.Sprintf("untracked dialog %s presented", h.ID))
	}
	f.dialogs = append(f.dialogs, h)
}

func (f *fakeRenderer) LineBreak() string { return "<br>" }

func (f *fakeRenderer) PresentToast(t Toast) {
	f.note("toast %q %s %s %s", t.Message, t.Duration, t.Position, t.StyleClass)
	f.toasts = append(f.toasts, t)
}

// shown reports whether h was presented.
func (f *fakeRenderer) shown(h *SpinnerHandle) bool {
	for _, s := range f.spinners {
		if s == h {
			return true
		}
	}
	return false
}

// completeSpinner resolves the oldest pending spinner dismissal.
func (f *fakeRenderer) completeSpinner(t *testing.T) {
	t.Helper()
	if len(f.pending) == 0 {
		t.Fatalf("no pending spinner dismissal")
	}
	c := f.pending[0]
	f.pending = f.pending[1:]
	c.Resolve()
}

// press activates button i of the newest open dialog and completes its
// dismissal, the way an interactive renderer would.
func (f *fakeRenderer) press(t *testing.T, i int) {
	t.Helper()
	for j := len(f.dialogs) - 1; j >= 0; j-- {
		h := f.dialogs[j]
		if h.Dismissed().Done() {
			continue
		}
		if !h.Activate(i) {
			t.Fatalf("dialog %s has no button %d", h.ID, i)
		}
		h.Dismissed().Resolve()
		return
	}
	t.Fatalf("no open dialog")
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return "h" + strconv.Itoa(n)
	}
}

func newTestCoordinator(t *testing.T, opts ...CoordinatorOption) (*Coordinator, *fakeRenderer) {
	t.Helper()
	f := &fakeRenderer{}
	base := []CoordinatorOption{
		WithIDGenerator(sequentialIDs()),
		WithLogger(zaptest.NewLogger(t).Sugar()),
	}
	c := New(Renderers{Spinner: f, Dialog: f, Toast: f}, append(base, opts...)...)
	f.coord = c
	return c, f
}
