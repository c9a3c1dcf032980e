package widgets

import "strings"

// ModelWidget shows the active model. Prefers the display name the host
// sends; falls back to a tier inferred from the model id.
type ModelWidget struct{}

func (ModelWidget) Name() string { return "model" }

func (ModelWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.Model == nil {
		return hidden(50)
	}
	m := data.Model

	if cfg.Raw {
		if m.ID != nil && *m.ID != "" {
			return textOutput(*m.ID, 50)
		}
	}

	if m.DisplayName != nil && *m.DisplayName != "" {
		return textOutput(*m.DisplayName, 50)
	}
	if m.ID != nil && *m.ID != "" {
		switch modelTier(*m.ID) {
		case "opus":
			return textOutput("Opus", 50)
		case "sonnet":
			return textOutput("Sonnet", 50)
		case "haiku":
			return textOutput("Haiku", 50)
		}
		return textOutput(*m.ID, 50)
	}
	return hidden(50)
}

// modelTier extracts the model family from an id like
// "claude-opus-4-20250514". Empty for unrecognized ids.
func modelTier(id string) string {
	lower := strings.ToLower(id)
	switch {
	case strings.Contains(lower, "opus"):
		return "opus"
	case strings.Contains(lower, "sonnet"):
		return "sonnet"
	case strings.Contains(lower, "haiku"):
		return "haiku"
	}
	return ""
}
