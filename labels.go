package overlay

// Labels are the application-wide strings the Coordinator reads when it builds
// overlays.
type Labels struct {
	Direction          string `yaml:"direction"` // locale direction style class, e.g. "ltr" or "rtl"
	OK                 string `yaml:"ok"`
	Cancel             string `yaml:"cancel"`
	MessageTitle       string `yaml:"messageTitle"`
	WarningTitle       string `yaml:"warningTitle"`
	SaveAndContinue    string `yaml:"saveAndContinue"`
	DiscardAndContinue string `yaml:"discardAndContinue"`
	UnsavedChanges     string `yaml:"unsavedChanges"`
}

// Constants supplies Labels. The Coordinator calls Labels on every operation
// and never caches the result, so providers may change their values at runtime.
type Constants interface {
	Labels() Labels
}

// StaticLabels is a Constants provider with fixed values.
type StaticLabels Labels

// Labels implements Constants.
func (s StaticLabels) Labels() Labels { return Labels(s) }

// DefaultLabels returns the built-in English labels.
func DefaultLabels() Labels {
	return Labels{
		Direction:          "ltr",
		OK:                 "OK",
		Cancel:             "Cancel",
		MessageTitle:       "Message",
		WarningTitle:       "Warning",
		SaveAndContinue:    "Save and continue",
		DiscardAndContinue: "Discard and continue",
		UnsavedChanges:     "You have unsaved changes. What would you like to do?",
	}
}

// toastClass is the toast style class: the direction, or "center" when no
// direction is configured.
func (l Labels) toastClass() string {
	if l.Direction == "" {
		return "center"
	}
	return l.Direction
}
