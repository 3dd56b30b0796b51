// Package options holds the run options of the overlay demo command.
package options

import (
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tmc/overlay"
	"github.com/tmc/overlay/config"
	"github.com/tmc/overlay/interactive"
)

// RunOptions contains all the options that are relevant to run overlay-demo.
type RunOptions struct {
	// Config options
	*config.Config `json:"config,omitempty" yaml:"config,omitempty"`

	ConfigPath string `json:"configPath,omitempty" yaml:"configPath,omitempty"`

	// Exec runs these lines in plain mode instead of reading a terminal.
	Exec         []string      `json:"exec,omitempty" yaml:"exec,omitempty"`
	ShowEvents   bool          `json:"showEvents,omitempty" yaml:"showEvents,omitempty"`
	WorkDuration time.Duration `json:"workDuration,omitempty" yaml:"workDuration,omitempty"`
	HistoryFile  string        `json:"historyFile,omitempty" yaml:"historyFile,omitempty"`
	PrintUsage   bool

	// --- I/O handles passed in ---
	Stdout io.Writer `json:"-" yaml:"-"`
	Stderr io.Writer `json:"-" yaml:"-"`
	Stdin  io.Reader `json:"-" yaml:"-"` // Passed during initFlags
}

// SessionConfig builds the interactive session configuration for opts.
// constants may be nil.
func (opts RunOptions) SessionConfig(constants overlay.Constants, log *zap.SugaredLogger) interactive.Config {
	cfg := interactive.Config{
		HistoryFile:  opts.HistoryFile,
		WorkDuration: opts.WorkDuration,
		ShowEvents:   opts.ShowEvents,
		Stdout:       opts.Stdout,
		Stderr:       opts.Stderr,
		Logger:       log,
		Constants:    constants,
	}
	if opts.Config != nil {
		cfg.ToastDuration = opts.ToastDuration
		cfg.SpinnerVariant = opts.SpinnerVariant
		cfg.Fade = opts.Fade
	}
	if rc, ok := opts.Stdin.(io.ReadCloser); ok {
		cfg.Stdin = rc
	} else if opts.Stdin != nil {
		cfg.Stdin = io.NopCloser(opts.Stdin)
	}
	return cfg
}
