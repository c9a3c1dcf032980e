// Package themes holds the built-in color themes for claude-line.
//
// A theme maps semantic roles (model, cost, git_clean, ...) to color
// strings understood by the render package. Themes are the lowest-priority
// source in foreground resolution: an explicit config color or a widget's
// dynamic hint always wins over the theme role.
package themes

// Theme is an immutable role-to-color mapping selected by name at load time.
type Theme struct {
	Name   string
	colors map[string]string
}

// Names lists the available theme names, default first.
func Names() []string {
	return []string{
		"default",
		"solarized",
		"nord",
		"dracula",
		"gruvbox",
		"monokai",
		"light",
		"high-contrast",
		"one-dark",
		"tokyo-night",
		"catppuccin",
	}
}

// Get returns the theme with the given name. Unknown names fall back to
// the default theme; selection never fails.
func Get(name string) Theme {
	if t, ok := registry[name]; ok {
		return t
	}
	return registry["default"]
}

// Color returns the color string for a semantic role, if the theme
// defines one.
func (t Theme) Color(role string) (string, bool) {
	c, ok := t.colors[role]
	return c, ok
}

// RoleForWidget maps a widget type to its theme role. Widget types with no
// themed role return ok=false and inherit no theme color.
func (t Theme) RoleForWidget(widgetType string) (string, bool) {
	role, ok := widgetRoles[widgetType]
	if !ok {
		return "", false
	}
	c, ok := t.colors[role]
	return c, ok
}

var widgetRoles = map[string]string{
	"model":              "model",
	"context-percentage": "context_ok",
	"context-length":     "context_ok",
	"git-branch":         "git_branch",
	"git-status":         "git_clean",
	"git-worktree":       "git_branch",
	"session-cost":       "cost",
	"block-timer":        "cost",
	"session-duration":   "duration",
	"api-duration":       "duration",
	"separator":          "separator_fg",
}

var registry = map[string]Theme{
	"default": {
		Name: "default",
		colors: map[string]string{
			"model":            "cyan",
			"context_ok":       "green",
			"context_warn":     "yellow",
			"context_critical": "red",
			"git_branch":       "magenta",
			"git_clean":        "green",
			"git_dirty":        "yellow",
			"cost":             "yellow",
			"duration":         "white",
			"separator_fg":     "brightBlack",
		},
	},
	"solarized": {
		Name: "solarized",
		colors: map[string]string{
			"model":            "#268bd2",
			"context_ok":       "#859900",
			"context_warn":     "#b58900",
			"context_critical": "#dc322f",
			"git_branch":       "#6c71c4",
			"git_clean":        "#859900",
			"git_dirty":        "#cb4b16",
			"cost":             "#b58900",
			"duration":         "#93a1a1",
			"separator_fg":     "#586e75",
		},
	},
	"nord": {
		Name: "nord",
		colors: map[string]string{
			"model":            "#88c0d0",
			"context_ok":       "#a3be8c",
			"context_warn":     "#ebcb8b",
			"context_critical": "#bf616a",
			"git_branch":       "#b48ead",
			"git_clean":        "#a3be8c",
			"git_dirty":        "#d08770",
			"cost":             "#ebcb8b",
			"duration":         "#d8dee9",
			"separator_fg":     "#4c566a",
		},
	},
	"dracula": {
		Name: "dracula",
		colors: map[string]string{
			"model":            "#8be9fd",
			"context_ok":       "#50fa7b",
			"context_warn":     "#f1fa8c",
			"context_critical": "#ff5555",
			"git_branch":       "#bd93f9",
			"git_clean":        "#50fa7b",
			"git_dirty":        "#ffb86c",
			"cost":             "#f1fa8c",
			"duration":         "#f8f8f2",
			"separator_fg":     "#6272a4",
		},
	},
	"gruvbox": {
		Name: "gruvbox",
		colors: map[string]string{
			"model":            "#83a598",
			"context_ok":       "#b8bb26",
			"context_warn":     "#fabd2f",
			"context_critical": "#fb4934",
			"git_branch":       "#d3869b",
			"git_clean":        "#b8bb26",
			"git_dirty":        "#fe8019",
			"cost":             "#fabd2f",
			"duration":         "#ebdbb2",
			"separator_fg":     "#665c54",
		},
	},
	"monokai": {
		Name: "monokai",
		colors: map[string]string{
			"model":            "#66d9ef",
			"context_ok":       "#a6e22e",
			"context_warn":     "#e6db74",
			"context_critical": "#f92672",
			"git_branch":       "#ae81ff",
			"git_clean":        "#a6e22e",
			"git_dirty":        "#fd971f",
			"cost":             "#e6db74",
			"duration":         "#f8f8f2",
			"separator_fg":     "#75715e",
		},
	},
	"light": {
		Name: "light",
		colors: map[string]string{
			"model":            "#0550ae",
			"context_ok":       "#116329",
			"context_warn":     "#9a6700",
			"context_critical": "#cf222e",
			"git_branch":       "#8250df",
			"git_clean":        "#116329",
			"git_dirty":        "#bc4c00",
			"cost":             "#9a6700",
			"duration":         "#24292f",
			"separator_fg":     "#656d76",
		},
	},
	"high-contrast": {
		Name: "high-contrast",
		colors: map[string]string{
			"model":            "#71b7ff",
			"context_ok":       "#3fb950",
			"context_warn":     "#d29922",
			"context_critical": "#ff7b72",
			"git_branch":       "#d2a8ff",
			"git_clean":        "#3fb950",
			"git_dirty":        "#f0883e",
			"cost":             "#d29922",
			"duration":         "#f0f6fc",
			"separator_fg":     "#8b949e",
		},
	},
	"one-dark": {
		Name: "one-dark",
		colors: map[string]string{
			"model":            "#61afef",
			"context_ok":       "#98c379",
			"context_warn":     "#e5c07b",
			"context_critical": "#e06c75",
			"git_branch":       "#c678dd",
			"git_clean":        "#98c379",
			"git_dirty":        "#d19a66",
			"cost":             "#e5c07b",
			"duration":         "#abb2bf",
			"separator_fg":     "#5c6370",
		},
	},
	"tokyo-night": {
		Name: "tokyo-night",
		colors: map[string]string{
			"model":            "#7aa2f7",
			"context_ok":       "#9ece6a",
			"context_warn":     "#e0af68",
			"context_critical": "#f7768e",
			"git_branch":       "#bb9af7",
			"git_clean":        "#9ece6a",
			"git_dirty":        "#ff9e64",
			"cost":             "#e0af68",
			"duration":         "#c0caf5",
			"separator_fg":     "#565f89",
		},
	},
	"catppuccin": {
		Name: "catppuccin",
		colors: map[string]string{
			"model":            "#89b4fa",
			"context_ok":       "#a6e3a1",
			"context_warn":     "#f9e2af",
			"context_critical": "#f38ba8",
			"git_branch":       "#cba6f7",
			"git_clean":        "#a6e3a1",
			"git_dirty":        "#fab387",
			"cost":             "#f9e2af",
			"duration":         "#cdd6f4",
			"separator_fg":     "#585b70",
		},
	},
}
