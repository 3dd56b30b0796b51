package overlay

// TransparentStyleClass is prepended to the direction class by
// ShowTransparentSpinner.
const TransparentStyleClass = "transparentBlock"

// DialogSpinnerVariant is the spinner variant carried in dialog options.
const DialogSpinnerVariant = "crescent"

// PresentationOptions holds the per-call presentation settings. Callers do not
// build it directly; they pass Options, which override only the fields they
// name.
type PresentationOptions struct {
	StyleClass     string
	Backdrop       bool
	SpinnerVariant string
	Title          string
	ButtonLabels   []string // honoured only when it holds exactly two labels
}

// Option overrides a single presentation setting.
type Option func(*PresentationOptions)

// WithStyleClass sets the style class passed to the renderer.
func WithStyleClass(class string) Option {
	return func(o *PresentationOptions) { o.StyleClass = class }
}

// WithBackdrop sets whether the spinner draws a backdrop.
func WithBackdrop(show bool) Option {
	return func(o *PresentationOptions) { o.Backdrop = show }
}

// WithSpinnerVariant selects the spinner style.
func WithSpinnerVariant(variant string) Option {
	return func(o *PresentationOptions) { o.SpinnerVariant = variant }
}

// WithTitle sets the dialog title.
func WithTitle(title string) Option {
	return func(o *PresentationOptions) { o.Title = title }
}

// WithButtonLabels overrides the accept and cancel labels of an
// acknowledgement dialog. Any count other than two is ignored.
func WithButtonLabels(labels ...string) Option {
	return func(o *PresentationOptions) {
		o.ButtonLabels = append([]string(nil), labels...)
	}
}

func (o PresentationOptions) with(opts []Option) PresentationOptions {
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	return o
}

// acceptCancel resolves the acknowledgement labels.
func (o PresentationOptions) acceptCancel(l Labels) (accept, cancel string) {
	if len(o.ButtonLabels) == 2 {
		return o.ButtonLabels[0], o.ButtonLabels[1]
	}
	return l.OK, l.Cancel
}

func spinnerDefaults(l Labels) PresentationOptions {
	return PresentationOptions{
		StyleClass: l.Direction,
		Backdrop:   true,
	}
}

func dialogDefaults(l Labels) PresentationOptions {
	return PresentationOptions{
		StyleClass:     l.Direction,
		Backdrop:       true,
		SpinnerVariant: DialogSpinnerVariant,
		Title:          l.MessageTitle,
	}
}
