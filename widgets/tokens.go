package widgets

import (
	"strconv"

	"gitlab.com/tinyland/lab/claude-line/internal/format"
)

// TokensKind selects which token counter a TokensWidget reports.
type TokensKind int

const (
	TokensInput TokensKind = iota
	TokensOutput
	TokensCached
	TokensTotal
)

// TokensWidget shows one of the session token counters with a metric
// suffix ("50.0k"). Raw mode yields the bare number.
type TokensWidget struct {
	Kind TokensKind
}

func (w TokensWidget) Name() string {
	switch w.Kind {
	case TokensInput:
		return "tokens-input"
	case TokensOutput:
		return "tokens-output"
	case TokensCached:
		return "tokens-cached"
	default:
		return "tokens-total"
	}
}

func (w TokensWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.ContextWindow == nil {
		return hidden(50)
	}
	cw := data.ContextWindow

	var n uint64
	switch w.Kind {
	case TokensInput:
		if cw.TotalInputTokens == nil {
			return hidden(50)
		}
		n = *cw.TotalInputTokens
	case TokensOutput:
		if cw.TotalOutputTokens == nil {
			return hidden(50)
		}
		n = *cw.TotalOutputTokens
	case TokensCached:
		if cw.CurrentUsage == nil {
			return hidden(50)
		}
		cu := cw.CurrentUsage
		if cu.CacheReadInputTokens == nil && cu.CacheCreationInputTokens == nil {
			return hidden(50)
		}
		if cu.CacheReadInputTokens != nil {
			n += *cu.CacheReadInputTokens
		}
		if cu.CacheCreationInputTokens != nil {
			n += *cu.CacheCreationInputTokens
		}
	case TokensTotal:
		in, out, ok := data.totalTokens()
		if !ok {
			return hidden(50)
		}
		n = in + out
	}

	if cfg.Raw {
		return textOutput(strconv.FormatUint(n, 10), 50)
	}
	return textOutput(w.label()+format.Tokens(n), 50)
}

func (w TokensWidget) label() string {
	switch w.Kind {
	case TokensInput:
		return "In: "
	case TokensOutput:
		return "Out: "
	case TokensCached:
		return "Cache: "
	default:
		return "Tokens: "
	}
}
