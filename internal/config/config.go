package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dshills/mentions/internal/logging"
	"github.com/dshills/mentions/internal/mention"
)

// Style classes the terminal composer draws besides decoration classes.
const (
	ClassText          = "text"
	ClassLeaf          = "leaf"
	ClassPopup         = "popup"
	ClassPopupSelected = "popup.selected"
	ClassStatus        = "status"
)

// Config is the complete application configuration.
type Config struct {
	Mention MentionConfig `toml:"mention" yaml:"mention"`
	Editor  EditorConfig  `toml:"editor" yaml:"editor"`
	Script  ScriptConfig  `toml:"script" yaml:"script"`
	Log     LogConfig     `toml:"log" yaml:"log"`

	// Users are the candidates offered by the suggestion popup.
	Users []string `toml:"users" yaml:"users"`
}

// MentionConfig configures trigger detection.
type MentionConfig struct {
	// Trigger is a single character that starts a mention.
	Trigger string `toml:"trigger" yaml:"trigger"`

	// MinChars is the minimum number of characters after the trigger.
	MinChars int `toml:"min_chars" yaml:"min_chars"`

	// SuggestionClass is the decoration class of the active span.
	SuggestionClass string `toml:"suggestion_class" yaml:"suggestion_class"`

	// MaxSuggestions caps the popup length.
	MaxSuggestions int `toml:"max_suggestions" yaml:"max_suggestions"`
}

// EditorConfig configures the terminal composer.
type EditorConfig struct {
	// Styles maps decoration and UI classes to styles.
	Styles map[string]Style `toml:"styles" yaml:"styles"`
}

// Style is a terminal text style. Colors are names or #rrggbb values;
// empty means the terminal default.
type Style struct {
	Foreground string `toml:"fg" yaml:"fg"`
	Background string `toml:"bg" yaml:"bg"`
	Bold       bool   `toml:"bold" yaml:"bold"`
	Underline  bool   `toml:"underline" yaml:"underline"`
	Reverse    bool   `toml:"reverse" yaml:"reverse"`
}

// ScriptConfig configures the optional Lua callback script.
type ScriptConfig struct {
	Path      string `toml:"path" yaml:"path"`
	TimeoutMS int    `toml:"timeout_ms" yaml:"timeout_ms"`
}

// Timeout returns the script call timeout.
func (s ScriptConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutMS) * time.Millisecond
}

// LogConfig configures logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level"`

	// File receives log output. Empty means stderr.
	File string `toml:"file" yaml:"file"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Mention: MentionConfig{
			Trigger:         "@",
			MinChars:        0,
			SuggestionClass: mention.DefaultSuggestionClass,
			MaxSuggestions:  8,
		},
		Editor: EditorConfig{
			Styles: map[string]Style{
				mention.DefaultSuggestionClass: {Foreground: "aqua", Underline: true},
				ClassLeaf:                      {Foreground: "black", Background: "teal"},
				ClassPopup:                     {Foreground: "white", Background: "navy"},
				ClassPopupSelected:             {Foreground: "navy", Background: "white", Bold: true},
				ClassStatus:                    {Reverse: true},
			},
		},
		Script: ScriptConfig{TimeoutMS: 250},
		Log:    LogConfig{Level: "info"},
	}
}

var logLevels = map[string]bool{
	"debug": true, "info": true, "warn": true, "warning": true, "error": true,
}

// Validate checks the configuration for semantic errors.
func (c Config) Validate() error {
	var errs []error

	if utf8.RuneCountInString(c.Mention.Trigger) != 1 {
		errs = append(errs, invalid("mention.trigger", "must be a single character, got %q", c.Mention.Trigger))
	} else if _, err := c.Matcher(); err != nil {
		errs = append(errs, invalid("mention", "%v", err))
	}
	if c.Mention.MaxSuggestions < 1 {
		errs = append(errs, invalid("mention.max_suggestions", "must be positive, got %d", c.Mention.MaxSuggestions))
	}
	if c.Script.TimeoutMS < 0 {
		errs = append(errs, invalid("script.timeout_ms", "must not be negative, got %d", c.Script.TimeoutMS))
	}
	if !logLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, invalid("log.level", "unknown level %q", c.Log.Level))
	}
	for i, u := range c.Users {
		if strings.TrimSpace(u) == "" {
			errs = append(errs, invalid("users", "entry %d is empty", i))
		}
	}

	return errors.Join(errs...)
}

// TriggerRune returns the trigger character, or utf8.RuneError if the
// trigger is not a single character.
func (c Config) TriggerRune() rune {
	if utf8.RuneCountInString(c.Mention.Trigger) != 1 {
		return utf8.RuneError
	}
	r, _ := utf8.DecodeRuneInString(c.Mention.Trigger)
	return r
}

// Matcher builds the trigger matcher described by the mention settings.
func (c Config) Matcher() (mention.Matcher, error) {
	return mention.TriggerCharacters(c.TriggerRune(), c.Mention.MinChars)
}

// LogLevel returns the configured log level.
func (c Config) LogLevel() logging.LogLevel {
	return logging.ParseLogLevel(c.Log.Level)
}

// Style returns the style for class and whether one is configured.
func (c Config) Style(class string) (Style, bool) {
	s, ok := c.Editor.Styles[class]
	return s, ok
}

// DefaultPath returns the default config file location, or "" if the user
// config directory cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "mentions", "config.toml")
}
