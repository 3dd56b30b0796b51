package overlay

import (
	"fmt"
	"strconv"
)

// EventKind identifies a Coordinator transition.
type EventKind int

const (
	SpinnerPresented  EventKind = iota // spinner handed to the renderer
	SpinnerParked                      // spinner stored while a dialog is tracked
	SpinnerReplaced                    // spinner overwritten while one was already tracked
	SpinnerDismissing                  // renderer asked to hide the spinner
	SpinnerDismissed                   // spinner dismissal completed
	DialogQueued                       // dialog waiting for a spinner to go away
	DialogPresented                    // dialog handed to the renderer
	DialogButton                       // dialog button activated
	DialogDismissed                    // dialog dismissal completed
	DialogIgnored                      // dialog requested without a message
	ToastPresented                     // toast handed to the renderer
	ToastDropped                       // toast suppressed by an active overlay
)

var eventKindNames = [...]string{
	SpinnerPresented:  "spinner-presented",
	SpinnerParked:     "spinner-parked",
	SpinnerReplaced:   "spinner-replaced",
	SpinnerDismissing: "spinner-dismissing",
	SpinnerDismissed:  "spinner-dismissed",
	DialogQueued:      "dialog-queued",
	DialogPresented:   "dialog-presented",
	DialogButton:      "dialog-button",
	DialogDismissed:   "dialog-dismissed",
	DialogIgnored:     "dialog-ignored",
	ToastPresented:    "toast-presented",
	ToastDropped:      "toast-dropped",
}

func (k EventKind) String() string {
	if k >= 0 && int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "EventKind(" + strconv.Itoa(int(k)) + ")"
}

// Event describes one Coordinator transition.
type Event struct {
	Kind    EventKind
	ID      string // handle ID, empty for toasts
	Message string // spinner/toast message, dialog message or button label
}

func (e Event) String() string {
	if e.ID == "" {
		return fmt.Sprintf("%s %q", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s %s %q", e.Kind, e.ID, e.Message)
}

type observer struct {
	id int
	fn func(Event)
}

// Subscribe registers fn to receive every Event and returns a function that
// removes it. Events are delivered synchronously, in subscription order, on
// the goroutine that drives the Coordinator.
func (c *Coordinator) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := c.nextObserver
	c.nextObserver++
	c.observers = append(c.observers, observer{id: id, fn: fn})
	return func() {
		for i, o := range c.observers {
			if o.id == id {
				c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
				return
			}
		}
	}
}

func (c *Coordinator) emit(kind EventKind, id, message string) {
	if len(c.observers) == 0 {
		return
	}
	ev := Event{Kind: kind, ID: id, Message: message}
	// Snapshot so observers may unsubscribe while being notified.
	snapshot := append([]observer(nil), c.observers...)
	for _, o := range snapshot {
		o.fn(ev)
	}
}
