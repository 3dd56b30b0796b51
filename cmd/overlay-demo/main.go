// Command overlay-demo drives an overlay coordinator from the terminal.
//
// Usage:
//
//	overlay-demo [flags]
//
// Flags:
//
//	    --config string            Path to the configuration file
//	-m, --mode string              Renderer mode: "tui" or "plain"
//	    --direction string         Locale direction style class (ltr or rtl)
//	    --toast-duration duration  How long toasts stay up
//	    --spinner-variant string   Spinner variant for the spin and work commands
//	    --fade duration            Dismissal animation length in tui mode
//	    --work-duration duration   How long the work command keeps its spinner up (default 2s)
//	-e, --exec stringArray         Run a command line instead of reading the terminal (repeatable, implies plain mode)
//	    --events                   Show the coordinator event trace
//	-v, --verbose                  Verbose output
//	    --debug                    Debug output
//	-h, --help                     Display help information
//
// In tui mode overlays are drawn over a Bubble Tea view. In plain mode they are
// printed line by line and dialogs are answered by number.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tmc/overlay"
	"github.com/tmc/overlay/config"
	"github.com/tmc/overlay/interactive"
	"github.com/tmc/overlay/options"
)

func main() {
	opts, fs, err := initFlags(os.Args, os.Stdin)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := run(ctx, opts, fs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initFlags(args []string, stdin io.Reader) (options.RunOptions, *flag.FlagSet, error) {
	opts := options.RunOptions{
		Stdin:  stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	name := "overlay-demo"
	if len(args) > 0 {
		name, args = args[0], args[1:]
	}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SortFlags = false

	fs.StringVar(&opts.ConfigPath, "config", "", "Path to the configuration file")
	fs.StringP("mode", "m", "", `Renderer mode: "tui" or "plain"`)
	fs.String("direction", "", "Locale direction style class (ltr or rtl)")
	fs.Duration("toast-duration", 0, "How long toasts stay up")
	fs.String("spinner-variant", "", "Spinner variant for the spin and work commands")
	fs.Duration("fade", 0, "Dismissal animation length in tui mode")
	fs.DurationVar(&opts.WorkDuration, "work-duration", interactive.DefaultWorkDuration, "How long the work command keeps its spinner up")
	fs.StringArrayVarP(&opts.Exec, "exec", "e", nil, "Run a command line instead of reading the terminal (repeatable, implies plain mode)")
	fs.BoolVar(&opts.ShowEvents, "events", false, "Show the coordinator event trace")
	fs.BoolP("verbose", "v", false, "Verbose output")
	fs.Bool("debug", false, "Debug output")
	fs.BoolVarP(&opts.PrintUsage, "help", "h", false, "Display help information")

	// hidden flags
	fs.StringVar(&opts.HistoryFile, "history-file", "~/.overlay_history", "File to store readline history in")
	fs.MarkHidden("history-file")

	fs.Usage = func() { printUsage(os.Stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return opts, fs, err
	}
	return opts, fs, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "overlay-demo shows spinners, dialogs and toasts through one coordinator")
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Usage of %s:\n", fs.Name())
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, "\nCommands:\n%s", interactive.Help())
	fmt.Fprintln(w, `
Examples:
	$ overlay-demo
	$ overlay-demo -m plain --direction rtl
	$ overlay-demo -e "spin Loading" -e "ask Continue?" -e 1`)
}

func run(ctx context.Context, opts options.RunOptions, fs *flag.FlagSet) error {
	if opts.PrintUsage {
		printUsage(opts.Stderr, fs)
		return nil
	}
	if opts.Stdout == nil || opts.Stderr == nil {
		return errors.New("run: stdout and stderr are required")
	}

	cfg, err := config.LoadConfig(opts.ConfigPath, opts.Stderr, fs)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	opts.Config = cfg

	log, err := NewLogger(opts.Stderr, cfg.Verbose, cfg.Debug)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	labels := cfg.Constants(log.Named("config"))
	scripted := len(opts.Exec) > 0
	if !scripted {
		labels.Watch(func(l overlay.Labels) {
			log.Infow("labels reloaded", "direction", l.Direction)
		})
	}

	sessionCfg := opts.SessionConfig(labels, log)
	if scripted || cfg.Mode == config.ModePlain {
		return runPlain(ctx, sessionCfg, opts.Exec, log)
	}

	s, err := interactive.NewBubbleSession(sessionCfg)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return ignoreCanceled(s.Run(ctx))
}

func runPlain(ctx context.Context, cfg interactive.Config, script []string, log *zap.SugaredLogger) error {
	s, err := interactive.NewReadlineSession(cfg)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if len(script) == 0 {
		return ignoreCanceled(s.Run(ctx))
	}
	start := time.Now()
	defer func() { log.Debugw("script finished", "lines", len(script), "elapsed", time.Since(start)) }()
	return s.RunScript(ctx, script)
}

func ignoreCanceled(err error) error {
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
