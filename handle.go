package overlay

// SpinnerHandle references a requested spinner. A nil *SpinnerHandle means no
// spinner is pending or shown.
type SpinnerHandle struct {
	ID         string
	Message    string
	Variant    string // spinner style name, "" for the renderer default
	Backdrop   bool
	StyleClass string
}

// ButtonSpec describes a dialog button as supplied by a caller.
type ButtonSpec struct {
	Label      string
	OnActivate func()
}

// Button is a ButtonSpec once it has been attached to a DialogHandle.
type Button struct {
	Label   string
	handler func()
}

// DialogHandle references a dialog requested through the Coordinator.
// Renderers call Activate when the user picks a button and resolve Dismissed
// once the dialog has left the screen.
type DialogHandle struct {
	ID              string
	Title           string
	Message         string
	StyleClass      string
	BackdropDismiss bool // always false; dialogs close only through a button

	buttons   []Button
	dismissed *Completion
}

// Buttons returns a copy of the dialog's buttons in display order.
func (h *DialogHandle) Buttons() []Button {
	out := make([]Button, len(h.buttons))
	copy(out, h.buttons)
	return out
}

// Labels returns the button labels in display order.
func (h *DialogHandle) Labels() []string {
	labels := make([]string, len(h.buttons))
	for i, b := range h.buttons {
		labels[i] = b.Label
	}
	return labels
}

// Activate runs the callback bound to the i'th button.
// It reports false when i does not name a button.
func (h *DialogHandle) Activate(i int) bool {
	if i < 0 || i >= len(h.buttons) {
		return false
	}
	if fn := h.buttons[i].handler; fn != nil {
		fn()
	}
	return true
}

// Dismissed is the one-shot signal the renderer resolves when the dialog's
// dismissal has finished.
func (h *DialogHandle) Dismissed() *Completion {
	return h.dismissed
}
