package config

import (
	"fmt"
	"strconv"
	"strings"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "MENTIONS_"

// LookupFunc looks up an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// envSetters maps environment variables to the setting they override.
var envSetters = map[string]func(*Config, string) error{
	EnvPrefix + "TRIGGER": func(c *Config, v string) error {
		c.Mention.Trigger = v
		return nil
	},
	EnvPrefix + "MIN_CHARS": func(c *Config, v string) error {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return err
		}
		c.Mention.MinChars = n
		return nil
	},
	EnvPrefix + "LOG_LEVEL": func(c *Config, v string) error {
		c.Log.Level = v
		return nil
	},
	EnvPrefix + "LOG_FILE": func(c *Config, v string) error {
		c.Log.File = v
		return nil
	},
	EnvPrefix + "SCRIPT": func(c *Config, v string) error {
		c.Script.Path = v
		return nil
	},
	EnvPrefix + "USERS": func(c *Config, v string) error {
		c.Users = nil
		for _, u := range strings.Split(v, ",") {
			if u = strings.TrimSpace(u); u != "" {
				c.Users = append(c.Users, u)
			}
		}
		return nil
	},
}

// ApplyEnv applies MENTIONS_* overrides found through lookup.
func ApplyEnv(cfg *Config, lookup LookupFunc) error {
	for name, set := range envSetters {
		v, ok := lookup(name)
		if !ok {
			continue
		}
		if err := set(cfg, v); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, name, err)
		}
	}
	return nil
}
