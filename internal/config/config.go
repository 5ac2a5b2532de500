package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/dshills/hspace/internal/logging"
)

// DefaultDeleteHorizontalSpaceKey is the binding used when none is configured.
const DefaultDeleteHorizontalSpaceKey = "alt+\\"

// Config holds hspace startup settings.
type Config struct {
	Log     LogConfig     `toml:"log" yaml:"log" mapstructure:"log"`
	Keys    KeysConfig    `toml:"keys" yaml:"keys" mapstructure:"keys"`
	Plugins PluginsConfig `toml:"plugins" yaml:"plugins" mapstructure:"plugins"`
}

// LogConfig configures the shared logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level" yaml:"level" mapstructure:"level"`
	// File receives log lines when set. Empty means stderr.
	File string `toml:"file" yaml:"file" mapstructure:"file"`
}

// KeysConfig holds key bindings for the terminal UI.
type KeysConfig struct {
	// DeleteHorizontalSpace triggers editor.deleteHorizontalSpace.
	DeleteHorizontalSpace string `toml:"delete_horizontal_space" yaml:"delete_horizontal_space" mapstructure:"delete_horizontal_space"`
}

// PluginsConfig lists Lua scripts run after activation.
type PluginsConfig struct {
	Scripts []string `toml:"scripts" yaml:"scripts" mapstructure:"scripts"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Log:  LogConfig{Level: "info"},
		Keys: KeysConfig{DeleteHorizontalSpace: DefaultDeleteHorizontalSpaceKey},
	}
}

// Validate checks every setting and joins all problems into one error.
func (c Config) Validate() error {
	var errs []error

	if _, ok := logging.ParseLevel(c.Log.Level); !ok {
		errs = append(errs, &ValidationError{
			Path:    "log.level",
			Message: "must be debug, info, warn or error",
			Value:   c.Log.Level,
		})
	}
	if strings.TrimSpace(c.Keys.DeleteHorizontalSpace) == "" {
		errs = append(errs, &ValidationError{
			Path:    "keys.delete_horizontal_space",
			Message: "binding must not be empty",
			Value:   c.Keys.DeleteHorizontalSpace,
		})
	}
	for _, s := range c.Plugins.Scripts {
		if filepath.Ext(s) != ".lua" {
			errs = append(errs, &ValidationError{
				Path:    "plugins.scripts",
				Message: "script must be a .lua file",
				Value:   s,
			})
		}
	}

	return errors.Join(errs...)
}

// LogLevel returns the parsed log level, falling back to info.
func (c Config) LogLevel() logging.Level {
	level, _ := logging.ParseLevel(c.Log.Level)
	return level
}

// resolveScripts makes relative script paths relative to dir.
func (c *Config) resolveScripts(dir string) {
	for i, s := range c.Plugins.Scripts {
		if s != "" && !filepath.IsAbs(s) {
			c.Plugins.Scripts[i] = filepath.Join(dir, s)
		}
	}
}
