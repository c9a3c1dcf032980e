package widgets

import (
	"encoding/json"
	"fmt"
	"io"
)

// SessionData is the JSON payload Claude Code pipes to a statusline
// command on stdin. Every field is optional; widgets treat absence as
// "hide yourself", never as an error.
type SessionData struct {
	Cwd            *string        `json:"cwd"`
	SessionID      *string        `json:"session_id"`
	TranscriptPath *string        `json:"transcript_path"`
	Model          *Model         `json:"model"`
	Workspace      *Workspace     `json:"workspace"`
	Version        *string        `json:"version"`
	OutputStyle    *OutputStyle   `json:"output_style"`
	Cost           *Cost          `json:"cost"`
	ContextWindow  *ContextWindow `json:"context_window"`
	Exceeds200K    *bool          `json:"exceeds_200k_tokens"`
	Vim            *Vim           `json:"vim"`
	Agent          *Agent         `json:"agent"`
}

// Model identifies the active model.
type Model struct {
	ID          *string `json:"id"`
	DisplayName *string `json:"display_name"`
}

// Workspace holds the working directories of the session.
type Workspace struct {
	CurrentDir *string `json:"current_dir"`
	ProjectDir *string `json:"project_dir"`
}

// OutputStyle is the active output style, if any.
type OutputStyle struct {
	Name *string `json:"name"`
}

// Cost accumulates session spend and activity counters.
type Cost struct {
	TotalCostUSD       *float64 `json:"total_cost_usd"`
	TotalDurationMs    *uint64  `json:"total_duration_ms"`
	TotalAPIDurationMs *uint64  `json:"total_api_duration_ms"`
	TotalLinesAdded    *uint64  `json:"total_lines_added"`
	TotalLinesRemoved  *uint64  `json:"total_lines_removed"`
}

// ContextWindow describes context usage for the session.
type ContextWindow struct {
	TotalInputTokens    *uint64       `json:"total_input_tokens"`
	TotalOutputTokens   *uint64       `json:"total_output_tokens"`
	ContextWindowSize   *uint64       `json:"context_window_size"`
	UsedPercentage      *float64      `json:"used_percentage"`
	RemainingPercentage *float64      `json:"remaining_percentage"`
	CurrentUsage        *CurrentUsage `json:"current_usage"`
}

// CurrentUsage breaks down the most recent request's token usage.
type CurrentUsage struct {
	InputTokens              *uint64 `json:"input_tokens"`
	OutputTokens             *uint64 `json:"output_tokens"`
	CacheCreationInputTokens *uint64 `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     *uint64 `json:"cache_read_input_tokens"`
}

// Vim reports the editor mode when vim keybindings are active.
type Vim struct {
	Mode *string `json:"mode"`
}

// Agent identifies a running subagent, if any.
type Agent struct {
	Name *string `json:"name"`
}

// ReadSessionData decodes a SessionData payload from r. Unknown fields
// are ignored so newer Claude Code versions stay compatible.
func ReadSessionData(r io.Reader) (*SessionData, error) {
	var data SessionData
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("widgets: decode session data: %w", err)
	}
	return &data, nil
}

// totalTokens returns input+output token totals, ok=false when the
// context window block is absent entirely.
func (d *SessionData) totalTokens() (in, out uint64, ok bool) {
	if d == nil || d.ContextWindow == nil {
		return 0, 0, false
	}
	cw := d.ContextWindow
	if cw.TotalInputTokens != nil {
		in = *cw.TotalInputTokens
	}
	if cw.TotalOutputTokens != nil {
		out = *cw.TotalOutputTokens
	}
	return in, out, cw.TotalInputTokens != nil || cw.TotalOutputTokens != nil
}
