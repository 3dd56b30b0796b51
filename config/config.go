// Package config provides configuration management for the overlay demo and
// for hosts that want their overlay labels in a config file.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tmc/overlay"
)

// Renderer modes.
const (
	ModeTUI   = "tui"   // Bubble Tea renderers
	ModePlain = "plain" // line-oriented renderers
)

// DefaultFade is how long the TUI renderers take to dismiss an overlay.
var DefaultFade = 150 * time.Millisecond

// Config holds the overlay configuration.
type Config struct {
	Labels         overlay.Labels `yaml:"labels"`
	ToastDuration  time.Duration  `yaml:"toastDuration"`
	SpinnerVariant string         `yaml:"spinnerVariant"` // variant used by the demo's "spin" command
	Mode           string         `yaml:"mode"`
	Fade           time.Duration  `yaml:"fade"`

	Verbose bool `yaml:"verbose"`
	Debug   bool `yaml:"debug"`

	v *viper.Viper
}

// LoadConfig loads the configuration from various sources in the following order of precedence:
// 1. Command-line flags (highest priority)
// 2. Environment variables (OVERLAY_ prefix, dots become underscores)
// 3. Configuration file
// 4. Default values (lowest priority)
//
// If a config file is not found, it falls back to using defaults and flags.
// The --verbose flag prints the final configuration to stderr.
func LoadConfig(path string, stderr io.Writer, flagSet *pflag.FlagSet) (*Config, error) {
	if flagSet == nil {
		flagSet = pflag.CommandLine
	}
	if stderr == nil {
		stderr = io.Discard
	}
	cfg := &Config{}
	v := viper.New()

	SetupViper(v, flagSet)
	if path != "" {
		v.SetConfigFile(path)
	}
	SetupFlagNormalization(flagSet)

	// Read config file first
	if err := HandleConfigFile(v, stderr, flagSet); err != nil {
		return nil, err
	}

	// Then bind flags (so they override config)
	if err := v.BindPFlags(flagSet); err != nil {
		return nil, fmt.Errorf("unable to bind flags: %w", err)
	}
	if f := flagSet.Lookup("direction"); f != nil {
		if err := v.BindPFlag("labels.direction", f); err != nil {
			return nil, fmt.Errorf("unable to bind direction flag: %w", err)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.v = v

	LogConfig(cfg, stderr, flagSet)
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Mode {
	case ModeTUI, ModePlain:
	default:
		return fmt.Errorf("invalid mode %q: want %q or %q", c.Mode, ModeTUI, ModePlain)
	}
	if c.ToastDuration <= 0 {
		return fmt.Errorf("toast duration must be positive, got %v", c.ToastDuration)
	}
	return nil
}

// SetupViper configures viper with default values and settings
func SetupViper(v *viper.Viper, flagSet *pflag.FlagSet) {
	d := overlay.DefaultLabels()
	v.SetDefault("labels.direction", d.Direction)
	v.SetDefault("labels.ok", d.OK)
	v.SetDefault("labels.cancel", d.Cancel)
	v.SetDefault("labels.messageTitle", d.MessageTitle)
	v.SetDefault("labels.warningTitle", d.WarningTitle)
	v.SetDefault("labels.saveAndContinue", d.SaveAndContinue)
	v.SetDefault("labels.discardAndContinue", d.DiscardAndContinue)
	v.SetDefault("labels.unsavedChanges", d.UnsavedChanges)
	v.SetDefault("toastDuration", overlay.DefaultToastDuration)
	v.SetDefault("spinnerVariant", "dot")
	v.SetDefault("mode", ModeTUI)
	v.SetDefault("fade", DefaultFade)

	// Setup paths and env
	v.AddConfigPath("/etc/overlay/")
	v.AddConfigPath("$HOME/.overlay")
	v.AddConfigPath(".")
	v.SetConfigName("config")

	// Setup env vars
	v.SetEnvPrefix("OVERLAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set config file if specified in flags
	if flagConfigFilePath := flagSet.Lookup("config"); flagConfigFilePath != nil && flagConfigFilePath.Changed {
		v.SetConfigFile(flagConfigFilePath.Value.String())
	}
}

// SetupFlagNormalization configures flag normalization to handle dashes in flag names
func SetupFlagNormalization(flagSet *pflag.FlagSet) {
	normalizeFunc := flagSet.GetNormalizeFunc()
	flagSet.SetNormalizeFunc(func(fs *pflag.FlagSet, name string) pflag.NormalizedName {
		result := normalizeFunc(fs, name)
		name = strings.ReplaceAll(string(result), "-", "")
		return pflag.NormalizedName(name)
	})
}

// HandleConfigFile handles loading the configuration file
func HandleConfigFile(v *viper.Viper, stderr io.Writer, flagSet *pflag.FlagSet) error {
	verbose, _ := flagSet.GetBool("verbose")
	if configFlag := flagSet.Lookup("config"); configFlag != nil && configFlag.Changed {
		configFile := configFlag.Value.String()
		if verbose {
			fmt.Fprintf(stderr, "overlay: trying to read config file: %s\n", configFile)
		}

		// Check if file exists and is readable
		if _, err := os.Stat(configFile); err != nil {
			if verbose {
				fmt.Fprintf(stderr, "overlay: config file %s not accessible: %v\n", configFile, err)
			}
			return nil
		}

		v.SetConfigFile(configFile)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if verbose {
				fmt.Fprintln(stderr, "overlay: config file not found, using defaults")
			}
			return nil
		}
		if os.IsNotExist(err) {
			if verbose {
				fmt.Fprintf(stderr, "overlay: config file %s does not exist, using defaults\n", v.ConfigFileUsed())
			}
			return nil
		}
		return fmt.Errorf("unable to read config file: %w", err)
	}

	if verbose {
		fmt.Fprintf(stderr, "overlay: successfully read config from %s\n", v.ConfigFileUsed())
	}
	return nil
}

// LogConfig logs the final configuration
func LogConfig(cfg *Config, stderr io.Writer, flagSet *pflag.FlagSet) {
	if verbose, _ := flagSet.GetBool("verbose"); verbose {
		fmt.Fprint(stderr, "overlay-config: ")
		json.NewEncoder(stderr).Encode(cfg)
	}
}
