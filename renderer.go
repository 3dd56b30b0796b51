package overlay

import "time"

// ToastPosition is where a toast is anchored.
type ToastPosition string

// ToastTop is the only position the Coordinator requests.
const ToastTop ToastPosition = "top"

// Toast is a fire-and-forget notice. The Coordinator does not track toasts
// once presented.
type Toast struct {
	Message    string
	Duration   time.Duration
	Position   ToastPosition
	StyleClass string
}

// SpinnerRenderer draws spinners.
type SpinnerRenderer interface {
	// PresentSpinner begins showing h.
	PresentSpinner(h *SpinnerHandle)
	// DismissSpinner begins hiding h and returns the signal fired when it is
	// gone. h may never have been presented. A nil return is treated as an
	// already resolved Completion.
	DismissSpinner(h *SpinnerHandle) *Completion
}

// DialogRenderer draws dialogs. A dialog is closed by the renderer itself
// after the user activates a button: it calls DialogHandle.Activate and later
// resolves DialogHandle.Dismissed.
type DialogRenderer interface {
	PresentDialog(h *DialogHandle)
	// LineBreak is the marker that replaces line breaks in dialog messages.
	LineBreak() string
}

// ToastRenderer draws toasts.
type ToastRenderer interface {
	PresentToast(t Toast)
}

// Renderers bundles the three collaborators a Coordinator drives.
type Renderers struct {
	Spinner SpinnerRenderer
	Dialog  DialogRenderer
	Toast   ToastRenderer
}
