package widgets

import (
	"fmt"
	"strconv"

	"gitlab.com/tinyland/lab/claude-line/internal/format"
)

// ContextPercentageWidget shows how much of the context window is used,
// turning yellow past the warn threshold and red past the critical one.
// Thresholds are percentages, overridable via metadata.
type ContextPercentageWidget struct{}

func (ContextPercentageWidget) Name() string { return "context-percentage" }

func (ContextPercentageWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.ContextWindow == nil || data.ContextWindow.UsedPercentage == nil {
		return hidden(50)
	}
	pct := *data.ContextWindow.UsedPercentage

	warn := metaFloat(cfg, "warn_threshold", 70)
	critical := metaFloat(cfg, "critical_threshold", 90)

	var hint string
	switch {
	case pct >= critical:
		hint = "red"
	case pct >= warn:
		hint = "yellow"
	}

	text := fmt.Sprintf("%.0f%%", pct)
	if !cfg.Raw {
		text = "Ctx: " + text
	}
	return hintedOutput(text, 50, hint)
}

// ContextLengthWidget shows the used context size in tokens. Derived from
// window size and used percentage when both are present, otherwise from
// the raw input token total.
type ContextLengthWidget struct{}

func (ContextLengthWidget) Name() string { return "context-length" }

func (ContextLengthWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.ContextWindow == nil {
		return hidden(50)
	}
	cw := data.ContextWindow

	var used uint64
	switch {
	case cw.ContextWindowSize != nil && cw.UsedPercentage != nil:
		used = uint64(float64(*cw.ContextWindowSize) * *cw.UsedPercentage / 100)
	case cw.TotalInputTokens != nil:
		used = *cw.TotalInputTokens
	default:
		return hidden(50)
	}

	if cfg.Raw {
		return textOutput(strconv.FormatUint(used, 10), 50)
	}
	return textOutput(format.Tokens(used), 50)
}

// ExceedsTokensWidget flags sessions that blew past the 200K context
// boundary. Invisible otherwise.
type ExceedsTokensWidget struct{}

func (ExceedsTokensWidget) Name() string { return "exceeds-tokens" }

func (ExceedsTokensWidget) Render(data *SessionData, _ Config) Output {
	if data == nil || data.Exceeds200K == nil || !*data.Exceeds200K {
		return hidden(95)
	}
	return textOutput("!200K", 95)
}

// metaFloat parses a float metadata value, falling back on absence or a
// parse failure.
func metaFloat(cfg Config, key string, fallback float64) float64 {
	v, ok := cfg.Metadata[key]
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

// metaInt is metaFloat for integers.
func metaInt(cfg Config, key string, fallback int) int {
	v, ok := cfg.Metadata[key]
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
