// Package config reads the taskboard TOML configuration file.
package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"

	"github.com/Makepad-fr/taskboard/internal/errors"
)

// DefaultPath is the configuration file read when no -config flag is given.
const DefaultPath = "~/.config/taskboard/config.toml"

// Themes lists the accepted ui.theme values.
var Themes = []string{"classic", "neon", "mono"}

// Config holds the application configuration
type Config struct {
	UI   UIConfig   `toml:"ui"`
	Log  LogConfig  `toml:"log"`
	Seed SeedConfig `toml:"seed"`
}

// UIConfig selects the look of the CLI and board.
type UIConfig struct {
	Theme string `toml:"theme"`
	Group bool   `toml:"group"`
}

// LogConfig holds the logrus level name.
type LogConfig struct {
	Level string `toml:"level"`
}

// SeedConfig names a JSON file loaded into the store at start-up.
type SeedConfig struct {
	Path string `toml:"path"`
}

// Default returns the default configuration
func Default() *Config {
	return &Config{
		UI:  UIConfig{Theme: "classic"},
		Log: LogConfig{Level: "warn"},
	}
}

// LoadFrom loads configuration from a specific path. A missing file yields
// the defaults.
func LoadFrom(configPath string) (*Config, error) {
	cfg := Default()

	p, err := homedir.Expand(configPath)
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "expanding config path")
	}

	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, errors.WithStackTraceAndPrefix(err, "reading config file")
	}

	if _, err := toml.Decode(string(data), cfg); err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "parsing config file %s", filepath.Base(p))
	}

	if cfg.Seed.Path != "" {
		if cfg.Seed.Path, err = homedir.Expand(cfg.Seed.Path); err != nil {
			return nil, errors.WithStackTraceAndPrefix(err, "expanding seed path")
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Overrides holds root command-line flags that take precedence over the file.
// Empty strings leave the file value alone.
type Overrides struct {
	Theme    string
	SeedPath string
	Group    bool
}

// Apply merges o into c. Group can only be switched on.
func (c *Config) Apply(o Overrides) error {
	if o.Theme != "" {
		c.UI.Theme = o.Theme
	}
	if o.SeedPath != "" {
		p, err := homedir.Expand(o.SeedPath)
		if err != nil {
			return errors.WithStackTraceAndPrefix(err, "expanding seed path")
		}
		c.Seed.Path = p
	}
	c.UI.Group = c.UI.Group || o.Group
	return nil
}

// Validate checks the theme and log level names.
func (c *Config) Validate() error {
	var errs *errors.MultiError

	known := false
	for _, name := range Themes {
		if c.UI.Theme == name {
			known = true
			break
		}
	}
	if !known {
		errs = errs.Append(errors.Errorf("ui.theme: unknown theme %q", c.UI.Theme))
	}

	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = errs.Append(errors.Errorf("log.level: %v", err))
	}

	return errs.ErrorOrNil()
}

// Encode writes c as TOML.
func (c *Config) Encode(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return errors.WithStackTraceAndPrefix(err, "encoding config")
	}
	return nil
}
