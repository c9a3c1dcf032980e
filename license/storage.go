package license

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	keyFile   = "license.key"
	cacheFile = "license-cache.json"
)

// ValidationCache is the locally stored result of the last validation.
type ValidationCache struct {
	Valid       bool      `json:"valid"`
	Tier        Tier      `json:"tier"`
	Features    []string  `json:"features"`
	ValidatedAt time.Time `json:"validated_at"`
}

// Storage reads and writes the license key and validation cache on disk.
type Storage struct {
	dir string
}

// NewStorage returns storage rooted at the default config directory.
func NewStorage() *Storage {
	return &Storage{dir: defaultDir()}
}

// NewStorageAt returns storage rooted at an explicit directory. Used by
// tests and the doctor command.
func NewStorageAt(dir string) *Storage {
	return &Storage{dir: dir}
}

func defaultDir() string {
	if v := os.Getenv("XDG_CONFIG_HOME"); v != "" {
		return filepath.Join(v, "claude-line")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".config", "claude-line")
}

// LoadKey returns the stored license key, or "" when none is saved.
func (s *Storage) LoadKey() string {
	data, err := os.ReadFile(filepath.Join(s.dir, keyFile))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// SaveKey stores a license key with owner-only permissions.
func (s *Storage) SaveKey(key string) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("license: create directory: %w", err)
	}
	path := filepath.Join(s.dir, keyFile)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(key)+"\n"), 0600); err != nil {
		return fmt.Errorf("license: write key: %w", err)
	}
	return nil
}

// RemoveKey deletes the stored key and validation cache.
func (s *Storage) RemoveKey() error {
	if err := os.Remove(filepath.Join(s.dir, keyFile)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("license: remove key: %w", err)
	}
	_ = os.Remove(filepath.Join(s.dir, cacheFile))
	return nil
}

// LoadCache returns the cached validation result, if present and readable.
func (s *Storage) LoadCache() (*ValidationCache, bool) {
	data, err := os.ReadFile(filepath.Join(s.dir, cacheFile))
	if err != nil {
		return nil, false
	}
	var c ValidationCache
	if err := json.Unmarshal(data, &c); err != nil {
		_ = os.Remove(filepath.Join(s.dir, cacheFile))
		return nil, false
	}
	return &c, true
}

// SaveCache stores a validation result for offline reuse.
func (s *Storage) SaveCache(c *ValidationCache) error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("license: create directory: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("license: marshal cache: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, cacheFile), data, 0600); err != nil {
		return fmt.Errorf("license: write cache: %w", err)
	}
	return nil
}
