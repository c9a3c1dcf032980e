package config

// Preset returns a named layout preset, or ok=false for unknown names.
// Presets are starting points for `claude-line -preset`; users refine the
// written file afterwards.
func Preset(name string) (*Config, bool) {
	switch name {
	case "minimal":
		cfg := Default()
		cfg.Lines = []LineConfig{
			{Widgets: []WidgetSlot{
				{Type: "model"},
				{Type: "session-cost"},
			}},
		}
		return cfg, true

	case "full":
		cfg := Default()
		cfg.Lines = []LineConfig{
			{Widgets: []WidgetSlot{
				{Type: "model"},
				{Type: "context-percentage"},
				{Type: "context-length"},
				{Type: "tokens-total"},
				{Type: "git-branch"},
				{Type: "git-status"},
				{Type: "cwd"},
			}},
			{Widgets: []WidgetSlot{
				{Type: "session-cost"},
				{Type: "session-duration"},
				{Type: "api-duration"},
				{Type: "lines-changed"},
				{Type: "version"},
			}},
		}
		return cfg, true

	case "powerline":
		cfg := Default()
		cfg.Powerline = PowerlineConfig{
			Enabled:   true,
			Separator: "",
			StartCap:  "",
			EndCap:    "",
			AutoAlign: true,
		}
		cfg.Lines = []LineConfig{
			{Widgets: []WidgetSlot{
				{Type: "model", Background: "blue", Color: "brightWhite"},
				{Type: "git-branch", Background: "magenta", Color: "brightWhite"},
				{Type: "context-percentage", Background: "brightBlack"},
				{Type: "flex-separator"},
				{Type: "session-cost", Background: "yellow", Color: "black"},
			}},
		}
		return cfg, true

	case "compact":
		cfg := Default()
		cfg.FlexMode = "compact"
		cfg.Lines = []LineConfig{
			{Widgets: []WidgetSlot{
				{Type: "model"},
				{Type: "flex-separator", Metadata: map[string]string{"char": "·"}},
				{Type: "session-cost"},
			}},
		}
		return cfg, true
	}
	return nil, false
}

// PresetNames lists the available presets.
func PresetNames() []string {
	return []string{"minimal", "full", "powerline", "compact"}
}
