// Package overlay coordinates the three transient surfaces of an interactive
// UI: a blocking spinner, a modal dialog and a toast.
//
// The rules are:
//
//   - at most one spinner and one dialog are tracked at a time;
//   - a dialog pre-empts a visible spinner, which is dismissed before the
//     dialog is shown;
//   - a spinner requested while a dialog is tracked is parked and shown when
//     the dialog's dismissal completes;
//   - a toast is dropped whenever a spinner or dialog is tracked.
//
// The Coordinator tracks intent, not rendered state: handles are cleared as
// soon as a dismissal is requested, before the renderer reports that the
// overlay is gone.
package overlay

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultToastDuration is used when no toast duration is configured.
const DefaultToastDuration = time.Second

// State is the combined state of the tracked handles.
type State int

const (
	Idle          State = iota // no spinner, no dialog
	SpinnerActive              // spinner tracked, no dialog
	DialogActive               // dialog tracked; a spinner may be parked
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case SpinnerActive:
		return "spinner"
	case DialogActive:
		return "dialog"
	}
	return "unknown"
}

var lineBreaks = regexp.MustCompile(`\r\n|\n|\r`)

// Coordinator arbitrates between spinner, dialog and toast requests.
//
// A Coordinator is not safe for concurrent use. All calls, and the resolution
// of every Completion handed out by its renderers, must happen on one
// goroutine, typically the UI event loop.
type Coordinator struct {
	renderers     Renderers
	constants     Constants
	log           *zap.SugaredLogger
	toastDuration time.Duration
	newID         func() string

	spinner *SpinnerHandle
	dialog  *DialogHandle

	observers    []observer
	nextObserver int
}

// CoordinatorOption configures a Coordinator.
type CoordinatorOption func(*Coordinator)

// WithConstants sets the label provider. The default is DefaultLabels.
func WithConstants(c Constants) CoordinatorOption {
	return func(co *Coordinator) { co.constants = c }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(log *zap.SugaredLogger) CoordinatorOption {
	return func(co *Coordinator) { co.log = log }
}

// WithToastDuration sets the duration ShowToast uses.
func WithToastDuration(d time.Duration) CoordinatorOption {
	return func(co *Coordinator) {
		if d > 0 {
			co.toastDuration = d
		}
	}
}

// WithIDGenerator replaces the UUID generator used for handle IDs.
func WithIDGenerator(fn func() string) CoordinatorOption {
	return func(co *Coordinator) { co.newID = fn }
}

// New returns an idle Coordinator driving r.
func New(r Renderers, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{
		renderers:     r,
		constants:     StaticLabels(DefaultLabels()),
		log:           zap.NewNop().Sugar(),
		toastDuration: DefaultToastDuration,
		newID:         uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Spinner returns the tracked spinner, parked or shown, or nil.
func (c *Coordinator) Spinner() *SpinnerHandle { return c.spinner }

// Dialog returns the tracked dialog or nil.
func (c *Coordinator) Dialog() *DialogHandle { return c.dialog }

// State reports the combined state.
func (c *Coordinator) State() State {
	switch {
	case c.dialog != nil:
		return DialogActive
	case c.spinner != nil:
		return SpinnerActive
	}
	return Idle
}

func (c *Coordinator) labels() Labels {
	if c.constants == nil {
		return DefaultLabels()
	}
	return c.constants.Labels()
}

// ShowToast presents message for the configured toast duration.
func (c *Coordinator) ShowToast(message string) {
	c.ShowToastFor(message, c.toastDuration)
}

// ShowToastFor presents message for d. The toast is dropped, not queued, when
// a spinner or dialog is tracked.
func (c *Coordinator) ShowToastFor(message string, d time.Duration) {
	if d <= 0 {
		d = c.toastDuration
	}
	if c.spinner != nil || c.dialog != nil {
		c.log.Debugw("toast dropped", "state", c.State(), "message", message)
		c.emit(ToastDropped, "", message)
		return
	}
	c.renderers.Toast.PresentToast(Toast{
		Message:    message,
		Duration:   d,
		Position:   ToastTop,
		StyleClass: c.labels().toastClass(),
	})
	c.emit(ToastPresented, "", message)
}

// ShowSpinner requests a spinner showing message.
//
// The new handle replaces any tracked one. It is presented only when no
// dialog is tracked and no spinner was tracked before the call. While a dialog
// is tracked the handle is parked and presented once the dialog is dismissed.
//
// A spinner that is already on screen is replaced without being dismissed;
// the renderer keeps showing the old one until it is told otherwise.
func (c *Coordinator) ShowSpinner(message string, opts ...Option) {
	o := spinnerDefaults(c.labels()).with(opts)
	prev := c.spinner
	h := &SpinnerHandle{
		ID:         c.newID(),
		Message:    message,
		Variant:    o.SpinnerVariant,
		Backdrop:   o.Backdrop,
		StyleClass: o.StyleClass,
	}
	c.spinner = h

	switch {
	case c.dialog != nil:
		c.log.Debugw("spinner parked", "spinner", h.ID, "dialog", c.dialog.ID)
		c.emit(SpinnerParked, h.ID, message)
	case prev != nil:
		c.log.Debugw("spinner replaced without dismissal", "spinner", h.ID, "previous", prev.ID)
		c.emit(SpinnerReplaced, h.ID, message)
	default:
		c.log.Debugw("spinner presented", "spinner", h.ID)
		c.renderers.Spinner.PresentSpinner(h)
		c.emit(SpinnerPresented, h.ID, message)
	}
}

// ShowTransparentSpinner shows a spinner without an opaque backdrop class.
func (c *Coordinator) ShowTransparentSpinner(variant, message string) {
	c.ShowSpinner(message,
		WithStyleClass(TransparentStyleClass+" "+c.labels().Direction),
		WithSpinnerVariant(variant),
	)
}

// HideSpinner clears the tracked spinner and asks the renderer to dismiss it.
// afterDismiss, if non-nil, runs when the dismissal completes, or immediately
// when no spinner is tracked.
func (c *Coordinator) HideSpinner(afterDismiss func()) {
	h := c.spinner
	c.spinner = nil
	if h == nil {
		if afterDismiss != nil {
			afterDismiss()
		}
		return
	}
	c.dismissSpinner(h).Then(func() {
		if afterDismiss != nil {
			afterDismiss()
		}
	})
}

func (c *Coordinator) dismissSpinner(h *SpinnerHandle) *Completion {
	c.log.Debugw("spinner dismissing", "spinner", h.ID)
	c.emit(SpinnerDismissing, h.ID, h.Message)
	done := c.renderers.Spinner.DismissSpinner(h)
	if done == nil {
		done = Resolved()
	}
	done.Then(func() {
		c.emit(SpinnerDismissed, h.ID, h.Message)
	})
	return done
}

// ShowAcknowledgement shows an error or a warning.
//
// Errors get a single accept button that closes the dialog without calling
// onApprove. Warnings get accept and cancel buttons bound to onApprove and
// onCancel. WithButtonLabels overrides both labels.
func (c *Coordinator) ShowAcknowledgement(isError bool, message string, onApprove, onCancel func(), opts ...Option) {
	o := PresentationOptions{}.with(opts)
	accept, cancel := o.acceptCancel(c.labels())

	ok := ButtonSpec{Label: accept, OnActivate: func() {
		if !isError && onApprove != nil {
			onApprove()
		}
	}}
	if isError {
		c.ShowDialog(message, []ButtonSpec{ok}, opts...)
		return
	}
	c.ShowDialog(message, []ButtonSpec{ok, {Label: cancel, OnActivate: onCancel}}, opts...)
}

// ShowUnsavedChangesPrompt asks whether to save or discard pending changes
// before continuing. Its cancel button calls neither callback.
func (c *Coordinator) ShowUnsavedChangesPrompt(onSaveAndContinue, onDiscardAndContinue func()) {
	l := c.labels()
	c.ShowDialog(l.UnsavedChanges, []ButtonSpec{
		{Label: l.SaveAndContinue, OnActivate: onSaveAndContinue},
		{Label: l.DiscardAndContinue, OnActivate: onDiscardAndContinue},
		{Label: l.Cancel},
	}, WithTitle(l.WarningTitle), WithStyleClass(l.Direction))
}

// ShowDialog shows message with buttons, pre-empting any tracked spinner.
func (c *Coordinator) ShowDialog(message string, buttons []ButtonSpec, opts ...Option) {
	c.ShowDialogMessage(&message, buttons, opts...)
}

// ShowDialogMessage is ShowDialog for an optional message. A nil message is a
// no-op.
func (c *Coordinator) ShowDialogMessage(message *string, buttons []ButtonSpec, opts ...Option) {
	if message == nil {
		c.log.Debug("dialog without message ignored")
		c.emit(DialogIgnored, "", "")
		return
	}
	o := dialogDefaults(c.labels()).with(opts)

	h := &DialogHandle{
		ID:              c.newID(),
		Title:           o.Title,
		Message:         lineBreaks.ReplaceAllLiteralString(*message, c.renderers.Dialog.LineBreak()),
		StyleClass:      o.StyleClass,
		BackdropDismiss: false,
		dismissed:       NewCompletion(),
	}
	h.buttons = make([]Button, len(buttons))
	for i, b := range buttons {
		h.buttons[i] = Button{Label: b.Label, handler: func() {
			c.emit(DialogButton, h.ID, b.Label)
			if b.OnActivate != nil {
				b.OnActivate()
			}
		}}
	}
	h.dismissed.Then(func() { c.dialogDismissed(h) })
	c.dialog = h

	if s := c.spinner; s != nil {
		c.spinner = nil
		c.log.Debugw("dialog waiting for spinner", "dialog", h.ID, "spinner", s.ID)
		c.emit(DialogQueued, h.ID, h.Message)
		c.dismissSpinner(s).Then(func() {
			if c.dialog != h {
				c.log.Debugw("superseded dialog not presented", "dialog", h.ID)
				return
			}
			c.presentDialog(h)
		})
		return
	}
	c.presentDialog(h)
}

func (c *Coordinator) presentDialog(h *DialogHandle) {
	c.log.Debugw("dialog presented", "dialog", h.ID)
	c.renderers.Dialog.PresentDialog(h)
	c.emit(DialogPresented, h.ID, h.Message)
}

func (c *Coordinator) dialogDismissed(h *DialogHandle) {
	c.emit(DialogDismissed, h.ID, h.Message)
	if c.dialog != h {
		// A newer dialog owns the slot and will resume any parked spinner.
		c.log.Debugw("stale dialog dismissed", "dialog", h.ID)
		return
	}
	c.dialog = nil
	if s := c.spinner; s != nil {
		c.log.Debugw("resuming parked spinner", "spinner", s.ID, "dialog", h.ID)
		c.renderers.Spinner.PresentSpinner(s)
		c.emit(SpinnerPresented, s.ID, s.Message)
	}
}
