package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.DefaultSeparator != "|" {
		t.Errorf("DefaultSeparator: got %q, want |", cfg.DefaultSeparator)
	}
	if cfg.DefaultPadding != " " {
		t.Errorf("DefaultPadding: got %q, want single space", cfg.DefaultPadding)
	}
	if cfg.FlexMode != "full-minus-40" {
		t.Errorf("FlexMode: got %q, want full-minus-40", cfg.FlexMode)
	}
	if cfg.Powerline.Enabled {
		t.Error("Powerline.Enabled: got true, want false")
	}
	if len(cfg.Lines) != 1 || len(cfg.Lines[0].Widgets) == 0 {
		t.Fatalf("Lines: got %+v, want one non-empty line", cfg.Lines)
	}
	if cfg.Lines[0].Widgets[0].Type != "model" {
		t.Errorf("first widget: got %q, want model", cfg.Lines[0].Widgets[0].Type)
	}
}

func TestLoadFromReader(t *testing.T) {
	doc := `
theme = "nord"
default_separator = "·"
global_bold = true
flex_mode = "compact"

[powerline]
enabled = true
auto_align = true

[[line]]
  [[line.widget]]
  type = "model"
  color = "cyan"
  bold = false

  [[line.widget]]
  type = "git-branch"
  merge_next = true

  [[line.widget]]
  type = "git-status"

[[line]]
  [[line.widget]]
  type = "session-cost"
  padding = ""
  [line.widget.metadata]
  precision = "3"
`
	cfg, err := LoadFromReader(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}

	if cfg.Theme != "nord" {
		t.Errorf("Theme: got %q, want nord", cfg.Theme)
	}
	if cfg.DefaultSeparator != "·" {
		t.Errorf("DefaultSeparator: got %q, want ·", cfg.DefaultSeparator)
	}
	if !cfg.GlobalBold {
		t.Error("GlobalBold: got false, want true")
	}
	if !cfg.Powerline.Enabled || !cfg.Powerline.AutoAlign {
		t.Errorf("Powerline: got %+v, want enabled with auto_align", cfg.Powerline)
	}
	// The file's [[line]] tables replace the default line.
	if len(cfg.Lines) != 2 {
		t.Fatalf("Lines: got %d, want 2", len(cfg.Lines))
	}

	first := cfg.Lines[0].Widgets
	if len(first) != 3 {
		t.Fatalf("line 1 widgets: got %d, want 3", len(first))
	}
	if first[0].Color != "cyan" {
		t.Errorf("model color: got %q, want cyan", first[0].Color)
	}
	if first[0].Bold == nil || *first[0].Bold {
		t.Errorf("model bold: got %v, want explicit false", first[0].Bold)
	}
	if !first[1].MergeNext {
		t.Error("git-branch merge_next: got false, want true")
	}

	cost := cfg.Lines[1].Widgets[0]
	if cost.Padding == nil || *cost.Padding != "" {
		t.Errorf("cost padding: got %v, want explicit empty string", cost.Padding)
	}
	if cost.Metadata["precision"] != "3" {
		t.Errorf("cost metadata: got %v, want precision=3", cost.Metadata)
	}
}

func TestLoadFromReaderUnsetFieldsKeepDefaults(t *testing.T) {
	cfg, err := LoadFromReader(strings.NewReader(`theme = "dracula"`))
	if err != nil {
		t.Fatalf("LoadFromReader: %v", err)
	}
	if cfg.Theme != "dracula" {
		t.Errorf("Theme: got %q, want dracula", cfg.Theme)
	}
	if cfg.DefaultSeparator != "|" {
		t.Errorf("DefaultSeparator: got %q, want default |", cfg.DefaultSeparator)
	}
	if cfg.FlexMode != "full-minus-40" {
		t.Errorf("FlexMode: got %q, want default", cfg.FlexMode)
	}
}

func TestLoadFromReaderRejectsMalformedTOML(t *testing.T) {
	if _, err := LoadFromReader(strings.NewReader("theme = [broken")); err == nil {
		t.Error("malformed TOML should be rejected at load time")
	}
}

func TestLoadFromFileMissingReturnsDefault(t *testing.T) {
	cfg, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Theme != "default" {
		t.Errorf("Theme: got %q, want default", cfg.Theme)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, _ := Preset("powerline")
	cfg.Theme = "gruvbox"
	if err := Save(cfg, path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Theme != "gruvbox" {
		t.Errorf("Theme: got %q, want gruvbox", loaded.Theme)
	}
	if !loaded.Powerline.Enabled {
		t.Error("Powerline.Enabled lost in round trip")
	}
	if len(loaded.Lines) != len(cfg.Lines) {
		t.Errorf("Lines: got %d, want %d", len(loaded.Lines), len(cfg.Lines))
	}
}

func TestPresets(t *testing.T) {
	for _, name := range PresetNames() {
		cfg, ok := Preset(name)
		if !ok || cfg == nil {
			t.Errorf("Preset(%q): not found", name)
			continue
		}
		if len(cfg.Lines) == 0 {
			t.Errorf("Preset(%q): no lines", name)
		}
	}
	if _, ok := Preset("nope"); ok {
		t.Error("Preset(nope): got ok, want false")
	}
}

func TestSearchPathsHonorXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	paths := searchPaths()
	if paths[0] != filepath.Join("/tmp/xdg-test", "claude-line", "config.toml") {
		t.Errorf("first path: got %q", paths[0])
	}
	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".config", "claude-line", "config.toml")
	if len(paths) != 2 || paths[1] != want {
		t.Errorf("fallback path: got %v, want second entry %q", paths, want)
	}
}
