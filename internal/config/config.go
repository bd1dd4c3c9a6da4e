// Package config loads helptext settings from a TOML file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// EnvConfig names the variable holding an explicit config file path.
const EnvConfig = "HELPTEXT_CONFIG"

// Server settings for the read-only HTTP view.
type Server struct {
	Addr string `toml:"addr"`
}

// Config is the merged configuration.
type Config struct {
	Theme       string   `toml:"theme"`
	Width       int      `toml:"width"`
	SoftWrap    bool     `toml:"soft_wrap"`
	IconClasses []string `toml:"icon_classes"`
	HelpFile    string   `toml:"help_file"`
	Server      Server   `toml:"server"`

	softWrapSet bool
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Theme:       "default",
		IconClasses: []string{"material-icons"},
		Server: Server{
			Addr: "127.0.0.1:8095",
		},
	}
}

// Path returns the config file to read: explicit wins, then $HELPTEXT_CONFIG,
// then $XDG_CONFIG_HOME/helptext/config.toml (~/.config when unset). An
// empty result means no location could be determined.
func Path(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "helptext", "config.toml")
}

// Load reads the config file at Path(explicit), layers it over the
// defaults and applies environment overrides. A missing file yields the
// defaults unless it was named explicitly.
func Load(explicit string) (*Config, error) {
	cfg := Default()
	path := Path(explicit)
	if path != "" {
		user, err := loadFromTOML(path)
		switch {
		case err == nil:
			cfg = merge(cfg, user)
		case errors.Is(err, fs.ErrNotExist) && explicit == "":
			// defaults only
		default:
			return nil, fmt.Errorf("loading config from %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, nil
}

func loadFromTOML(path string) (*Config, error) {
	var cfg Config
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	if md.IsDefined("soft_wrap") {
		cfg.softWrapSet = true
	}
	return &cfg, nil
}

// merge layers user over defaults. Zero values in user leave the default.
func merge(defaults, user *Config) *Config {
	result := *defaults
	if user.Theme != "" {
		result.Theme = user.Theme
	}
	if user.Width != 0 {
		result.Width = user.Width
	}
	if user.softWrapSet {
		result.SoftWrap = user.SoftWrap
	}
	if user.IconClasses != nil {
		result.IconClasses = append([]string{}, user.IconClasses...)
	}
	if user.HelpFile != "" {
		result.HelpFile = user.HelpFile
	}
	if user.Server.Addr != "" {
		result.Server.Addr = user.Server.Addr
	}
	return &result
}

func applyEnv(cfg *Config) {
	cfg.Theme = envOr("HELPTEXT_THEME", cfg.Theme)
	cfg.Width = envInt("HELPTEXT_WIDTH", cfg.Width)
	cfg.HelpFile = envOr("HELPTEXT_FILE", cfg.HelpFile)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.Width < 0 {
		return fmt.Errorf("width must not be negative, got %d", c.Width)
	}
	return nil
}
