package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the user-tunable editor settings.
type Config struct {
	// Theme names the active color theme.
	Theme string `toml:"theme"`

	// Sidebar shows the activity/file sidebar on startup.
	Sidebar bool `toml:"sidebar"`

	// ShowHidden lists dotfiles in the file tree.
	ShowHidden bool `toml:"show_hidden"`

	// SystemClipboard mirrors copies to the system clipboard.
	SystemClipboard bool `toml:"system_clipboard"`

	// PrefixTimeoutMS is the numeric-prefix expiry in milliseconds.
	PrefixTimeoutMS int `toml:"prefix_timeout_ms"`

	// PluginDir overrides the default plugin directory.
	PluginDir string `toml:"plugin_dir,omitempty"`
}

// Default returns the settings used when no config file exists.
func Default() Config {
	return Config{
		Theme:           "boring",
		Sidebar:         true,
		ShowHidden:      true,
		SystemClipboard: true,
		PrefixTimeoutMS: 500,
	}
}

// PrefixTimeout returns the numeric-prefix expiry as a duration.
func (c Config) PrefixTimeout() time.Duration {
	if c.PrefixTimeoutMS <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.PrefixTimeoutMS) * time.Millisecond
}

// Dir returns the shrimp config directory under the platform user
// config root. The directory is not created.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config dir: %w", err)
	}
	return filepath.Join(base, "shrimp"), nil
}

// DefaultPath returns the config file location.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Plugins returns the plugin directory: the configured override if
// set, otherwise plugins/ under the config directory.
func (c Config) Plugins() (string, error) {
	if c.PluginDir != "" {
		return c.PluginDir, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "plugins"), nil
}

// StatePath returns the plugin enable-state file location.
func StatePath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "plugins.conf"), nil
}

// Load reads the config at path. A missing file is not an error; the
// defaults are returned. Unknown keys are ignored, absent keys keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes the config to path, creating parent directories.
func (c Config) Save(path string) error {
	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
