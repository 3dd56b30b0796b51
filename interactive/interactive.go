// Package interactive hosts an overlay Coordinator in a terminal session.
//
// Two hosts are provided: BubbleSession draws overlays with Bubble Tea and
// ReadlineSession prints them line by line. Both read the same small command
// language (see Help) and route every coordinator call through one goroutine.
package interactive

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/tmc/overlay"
)

var (
	ErrEmptyInput     = errors.New("empty input")
	ErrUnknownCommand = errors.New("unknown command")
)

// Config defines parameters for creating an interactive session.
type Config struct {
	Prompt      string
	HistoryFile string // readline only

	Constants      overlay.Constants // labels; nil means overlay.DefaultLabels
	ToastDuration  time.Duration
	SpinnerVariant string        // variant for "spin" and "work"
	Fade           time.Duration // dismissal animation, Bubble Tea only
	WorkDuration   time.Duration // how long "work" keeps its spinner up

	// ShowEvents prints or displays the coordinator event trace.
	ShowEvents bool

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.SugaredLogger
}

// Defaults
var (
	DefaultPrompt       = "overlay> "
	DefaultWorkDuration = 2 * time.Second
	DialogPrompt        = "choose> "
)

func (cfg *Config) setDefaults() {
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.WorkDuration <= 0 {
		cfg.WorkDuration = DefaultWorkDuration
	}
	if cfg.SpinnerVariant == "" {
		cfg.SpinnerVariant = "dot"
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop().Sugar()
	}
}

func (cfg Config) coordinatorOptions() []overlay.CoordinatorOption {
	opts := []overlay.CoordinatorOption{
		overlay.WithLogger(cfg.Logger.Named("coordinator")),
		overlay.WithToastDuration(cfg.ToastDuration),
	}
	if cfg.Constants != nil {
		opts = append(opts, overlay.WithConstants(cfg.Constants))
	}
	return opts
}

// Session defines the interface for an interactive session implementation.
type Session interface {
	Run(ctx context.Context) error
	Coordinator() *overlay.Coordinator
	Quit()
}
