package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Load reads configuration from the standard config path. Search order:
//
//  1. $XDG_CONFIG_HOME/claude-line/config.toml
//  2. ~/.config/claude-line/config.toml
//
// If no file exists, returns Default().
func Load() (*Config, error) {
	for _, p := range searchPaths() {
		if _, err := os.Stat(p); err == nil {
			return LoadFromFile(p)
		}
	}
	return Default(), nil
}

// LoadFromFile reads configuration from a specific file path. A missing
// file yields Default().
func LoadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader reads configuration from an io.Reader, merging over
// defaults so unset fields keep their default values.
func LoadFromReader(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

// Save writes the configuration as TOML to path, creating parent
// directories as needed.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return nil
}

// DefaultPath returns the preferred config file location.
func DefaultPath() string {
	return searchPaths()[0]
}

// searchPaths returns the ordered list of config file paths to try.
func searchPaths() []string {
	home, _ := os.UserHomeDir()

	xdg := os.Getenv("XDG_CONFIG_HOME")
	if xdg == "" {
		xdg = filepath.Join(home, ".config")
	}

	paths := []string{filepath.Join(xdg, "claude-line", "config.toml")}

	fallback := filepath.Join(home, ".config", "claude-line", "config.toml")
	if paths[0] != fallback {
		paths = append(paths, fallback)
	}
	return paths
}
