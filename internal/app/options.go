package app

import (
	"fmt"
	"io"
	"os"

	"github.com/dshills/mentions/internal/config"
	"github.com/dshills/mentions/internal/logging"
)

// Options configures the application. Zero fields leave the configured
// value alone.
type Options struct {
	// ConfigPath is the config file. Empty uses config.DefaultPath.
	ConfigPath string

	// File is the document to edit. Empty starts an unnamed document.
	File string

	// LogLevel overrides log.level.
	LogLevel string

	// Trigger overrides mention.trigger.
	Trigger string

	// MinChars overrides mention.min_chars when non-nil.
	MinChars *int

	// ScriptPath overrides script.path.
	ScriptPath string

	// LogOutput receives logs when log.file is not set. Nil discards them,
	// which keeps log lines off the terminal the composer draws on.
	LogOutput io.Writer
}

// configPath returns the config file to load.
func (o Options) configPath() string {
	if o.ConfigPath != "" {
		return o.ConfigPath
	}
	return config.DefaultPath()
}

// ResolveConfig loads the config file and applies the command line
// overrides on top of it.
func ResolveConfig(opts Options) (config.Config, error) {
	cfg, err := config.Load(opts.configPath())
	if err != nil {
		return config.Config{}, err
	}
	return opts.override(cfg)
}

// override applies the command line overrides to cfg and validates the
// result. It also runs on every reloaded config.
func (o Options) override(cfg config.Config) (config.Config, error) {
	if o.LogLevel != "" {
		cfg.Log.Level = o.LogLevel
	}
	if o.Trigger != "" {
		cfg.Mention.Trigger = o.Trigger
	}
	if o.MinChars != nil {
		cfg.Mention.MinChars = *o.MinChars
	}
	if o.ScriptPath != "" {
		cfg.Script.Path = o.ScriptPath
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// NewLogger builds the logger described by cfg. The returned closer is
// non-nil when a log file was opened.
func NewLogger(cfg config.Config, fallback io.Writer) (*logging.Logger, io.Closer, error) {
	out := fallback
	var closer io.Closer
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, f
	}
	if out == nil {
		return logging.Discard(), nil, nil
	}

	lc := logging.DefaultLoggerConfig()
	lc.Level = cfg.LogLevel()
	lc.Output = out
	return logging.NewLogger(lc), closer, nil
}
