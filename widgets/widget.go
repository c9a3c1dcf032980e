// Package widgets defines the widget contract consumed by the layout
// engine and the built-in widget implementations.
//
// A widget is a pure function from (session data, slot config) to an
// Output. Widgets decide their own visibility: missing data, an unmet
// threshold, or a licensing gate all surface as Visible=false, and the
// layout engine skips such outputs without asking why.
package widgets

import (
	"github.com/mattn/go-runewidth"
)

// Output is one widget's rendered result for a single render pass.
type Output struct {
	// Text is the display text, free of ANSI escapes.
	Text string

	// Width is the Unicode cell width of Text.
	Width int

	// Priority is reserved for future drop-ordering. The layout engine
	// does not consult it.
	Priority int

	// Visible excludes the widget from the line entirely when false.
	Visible bool

	// ColorHint is a dynamic foreground color suggested by the widget,
	// e.g. "red" when a burn-rate widget is critical. Overridden by an
	// explicit config color, overrides the theme role.
	ColorHint string
}

// Config is the per-slot configuration a widget renders against.
type Config struct {
	// Type is the widget type identifier.
	Type string

	// ID distinguishes multiple slots of the same type, if configured.
	ID string

	// Color is the slot's explicit foreground color ("" = unset).
	Color string

	// Background is the slot's explicit background color ("" = unset).
	Background string

	// Bold overrides the global bold default when non-nil.
	Bold *bool

	// Raw asks for an unadorned value: no label, icon, or unit.
	Raw bool

	// Padding overrides the global padding when non-nil.
	Padding *string

	// MergeNext suppresses the separator after this widget.
	MergeNext bool

	// Metadata carries widget-specific parameters.
	Metadata map[string]string
}

// Meta returns a metadata value, or fallback when absent or empty.
func (c Config) Meta(key, fallback string) string {
	if v, ok := c.Metadata[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Widget is the contract between the layout engine and an implementation.
type Widget interface {
	// Name returns the widget type identifier this widget registers as.
	Name() string

	// Render produces the widget's output for one session snapshot.
	// Render must be pure: same inputs, same output, no mutation
	// observable by the caller.
	Render(data *SessionData, cfg Config) Output
}

// hidden returns an invisible output at the given priority.
func hidden(priority int) Output {
	return Output{Priority: priority}
}

// textOutput returns a visible output with its width measured.
func textOutput(text string, priority int) Output {
	return Output{
		Text:     text,
		Width:    runewidth.StringWidth(text),
		Priority: priority,
		Visible:  true,
	}
}

// hintedOutput is textOutput with a dynamic color hint attached.
func hintedOutput(text string, priority int, hint string) Output {
	out := textOutput(text, priority)
	out.ColorHint = hint
	return out
}
