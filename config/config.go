// Package config defines the claude-line configuration: per-line widget
// layouts, styling defaults, and the powerline sub-configuration.
//
// Configuration is loaded once per invocation from a TOML file and treated
// as read-only afterwards. Malformed files are rejected at load time; the
// render path itself never validates, it degrades.
package config

// Config is the root configuration.
type Config struct {
	// Theme selects a built-in theme by name. Unknown names fall back
	// to the default theme at resolution time.
	Theme string `toml:"theme"`

	// ColorLevel overrides color depth detection: none, 16, 256,
	// truecolor. Empty or "auto" means detect from the environment.
	ColorLevel string `toml:"color_level"`

	// DefaultSeparator is rendered between widgets unless merge_next
	// suppresses it.
	DefaultSeparator string `toml:"default_separator"`

	// DefaultPadding wraps each widget's text on both sides.
	DefaultPadding string `toml:"default_padding"`

	// GlobalBold applies bold to every widget without its own override.
	GlobalBold bool `toml:"global_bold"`

	// FlexMode controls the width budget: full, full-minus-40, compact.
	// Unknown values behave like full-minus-40.
	FlexMode string `toml:"flex_mode"`

	// Powerline holds powerline rendering settings.
	Powerline PowerlineConfig `toml:"powerline"`

	// Lines are the configured status lines, each an ordered list of
	// widget slots.
	Lines []LineConfig `toml:"line"`
}

// PowerlineConfig holds powerline mode settings.
type PowerlineConfig struct {
	// Enabled switches line assembly to powerline chips.
	Enabled bool `toml:"enabled"`

	// Separator is the transition glyph between chips (default U+E0B0).
	Separator string `toml:"separator"`

	// StartCap is an optional glyph rendered before the first chip.
	StartCap string `toml:"start_cap"`

	// EndCap is an optional glyph rendered after the last chip.
	EndCap string `toml:"end_cap"`

	// AutoAlign right-pads shorter lines so multi-line output forms
	// an even block.
	AutoAlign bool `toml:"auto_align"`
}

// LineConfig is one status line.
type LineConfig struct {
	// Widgets are the slots on this line, in display order.
	Widgets []WidgetSlot `toml:"widget"`
}

// WidgetSlot configures one widget occurrence on a line.
type WidgetSlot struct {
	// Type is the widget type identifier, e.g. "model" or "git-branch".
	Type string `toml:"type"`

	// Color is an explicit foreground color. Highest precedence in the
	// foreground resolution chain.
	Color string `toml:"color"`

	// Background is an explicit background color.
	Background string `toml:"background"`

	// Bold overrides GlobalBold for this slot when set.
	Bold *bool `toml:"bold"`

	// Raw asks the widget for an unadorned value (no label or icon).
	Raw bool `toml:"raw"`

	// Padding overrides DefaultPadding for this slot when set.
	Padding *string `toml:"padding"`

	// MergeNext suppresses the separator between this widget and the
	// next one.
	MergeNext bool `toml:"merge_next"`

	// Metadata carries widget-specific parameters, e.g. the flex fill
	// character or the custom-command command line.
	Metadata map[string]string `toml:"metadata"`
}

// Default returns the default configuration: one line with the widgets
// most sessions care about, pipe separators, and auto-detected color.
func Default() *Config {
	return &Config{
		Theme:            "default",
		ColorLevel:       "auto",
		DefaultSeparator: "|",
		DefaultPadding:   " ",
		FlexMode:         "full-minus-40",
		Powerline: PowerlineConfig{
			Separator: "",
		},
		Lines: []LineConfig{
			{Widgets: []WidgetSlot{
				{Type: "model"},
				{Type: "context-percentage"},
				{Type: "tokens-total"},
				{Type: "git-branch"},
				{Type: "git-status"},
				{Type: "session-cost"},
			}},
		},
	}
}
