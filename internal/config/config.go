// Package config loads the one piece of runtime-configurable state
// this window manager exposes beyond its build-time keybinding table:
// border colors, tile gaps, bar height, and the bar's font.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Colors holds the border and bar palette, each an 0xRRGGBB value.
type Colors struct {
	FocusBorder   uint32 `yaml:"focus_border"`
	UnfocusBorder uint32 `yaml:"unfocus_border"`
	BarBackground uint32 `yaml:"bar_background"`
	BarForeground uint32 `yaml:"bar_foreground"`
}

// Config is the effective, validated runtime configuration.
type Config struct {
	Colors    Colors `yaml:"colors"`
	Gap       int    `yaml:"gap"`
	BarHeight int    `yaml:"bar_height"`
	Font      string `yaml:"font"`
}

// ValidationError reports which field of a loaded Config failed
// validation, mirroring the path-plus-cause shape a YAML-configured
// daemon reports to its operator.
type ValidationError struct {
	Path string
	Err  error
}

func (e *ValidationError) Error() string { return fmt.Sprintf("%s: %v", e.Path, e.Err) }
func (e *ValidationError) Unwrap() error { return e.Err }

// Default returns the built-in configuration used when no config file
// is present, so the binary runs with zero configuration.
func Default() *Config {
	return &Config{
		Colors: Colors{
			FocusBorder:   0xf9f5d7,
			UnfocusBorder: 0x282828,
			BarBackground: 0x282828,
			BarForeground: 0xf9f5d7,
		},
		Gap:       10,
		BarHeight: 20,
		Font:      "Iosevka Comfy:size=13",
	}
}

// DefaultConfigPath returns ~/.config/stupidwm/config.yaml.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "stupidwm", "config.yaml"), nil
}

// Load reads the config file at the standard location, overlaying it
// onto Default(). A missing file is not an error: Default() is
// returned unmodified.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFromPath(path)
}

// LoadFromPath reads and validates the config file at path.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	if err := decodeStrictYAML(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes c to the standard location, creating its parent
// directory if needed.
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return err
	}
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate rejects configurations the layout and bar code cannot act
// on sensibly.
func (c *Config) Validate() error {
	if c.Gap < 0 {
		return &ValidationError{Path: "gap", Err: fmt.Errorf("must be >= 0")}
	}
	if c.BarHeight <= 0 {
		return &ValidationError{Path: "bar_height", Err: fmt.Errorf("must be > 0")}
	}
	if c.Font == "" {
		return &ValidationError{Path: "font", Err: fmt.Errorf("must not be empty")}
	}
	return nil
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}
