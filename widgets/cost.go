package widgets

import (
	"fmt"
	"time"

	"gitlab.com/tinyland/lab/claude-line/internal/format"
)

// blockLength is the length of one usage billing block.
const blockLength = 5 * time.Hour

// SessionCostWidget shows the session spend in USD. The decimal precision
// is overridable via the "precision" metadata key.
type SessionCostWidget struct{}

func (SessionCostWidget) Name() string { return "session-cost" }

func (SessionCostWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.Cost == nil || data.Cost.TotalCostUSD == nil {
		return hidden(50)
	}
	cost := *data.Cost.TotalCostUSD

	precision := metaInt(cfg, "precision", 2)
	if precision < 0 {
		precision = 2
	}

	if cfg.Raw {
		return textOutput(fmt.Sprintf("%.*f", precision, cost), 50)
	}
	return textOutput(fmt.Sprintf("$%.*f", precision, cost), 50)
}

// SessionDurationWidget shows total wall-clock session time.
type SessionDurationWidget struct{}

func (SessionDurationWidget) Name() string { return "session-duration" }

func (SessionDurationWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.Cost == nil || data.Cost.TotalDurationMs == nil {
		return hidden(50)
	}
	d := time.Duration(*data.Cost.TotalDurationMs) * time.Millisecond

	if cfg.Raw {
		return textOutput(fmt.Sprintf("%d", int(d.Seconds())), 50)
	}
	return textOutput(format.Duration(d), 50)
}

// APIDurationWidget shows the share of session time spent waiting on the
// API, as a truncated percentage.
type APIDurationWidget struct{}

func (APIDurationWidget) Name() string { return "api-duration" }

func (APIDurationWidget) Render(data *SessionData, cfg Config) Output {
	if data == nil || data.Cost == nil {
		return hidden(35)
	}
	c := data.Cost
	if c.TotalDurationMs == nil || *c.TotalDurationMs == 0 || c.TotalAPIDurationMs == nil {
		return hidden(35)
	}

	pct := uint64(float64(*c.TotalAPIDurationMs) / float64(*c.TotalDurationMs) * 100)
	text := fmt.Sprintf("%d%%", pct)
	if !cfg.Raw {
		text = "API: " + text
	}
	return textOutput(text, 35)
}

// LinesChangedWidget shows lines added and removed as "+A/-R".
type LinesChangedWidget struct{}

func (LinesChangedWidget) Name() string { return "lines-changed" }

func (LinesChangedWidget) Render(data *SessionData, _ Config) Output {
	if data == nil || data.Cost == nil {
		return hidden(50)
	}
	c := data.Cost
	if c.TotalLinesAdded == nil && c.TotalLinesRemoved == nil {
		return hidden(50)
	}

	var added, removed uint64
	if c.TotalLinesAdded != nil {
		added = *c.TotalLinesAdded
	}
	if c.TotalLinesRemoved != nil {
		removed = *c.TotalLinesRemoved
	}
	return textOutput(fmt.Sprintf("+%d/-%d", added, removed), 50)
}

// BlockTimerWidget shows time remaining in the current usage block,
// counted from the session start recorded in history.
type BlockTimerWidget struct {
	costs CostSource
	now   func() time.Time
}

// NewBlockTimerWidget builds a block timer over the given cost source.
func NewBlockTimerWidget(costs CostSource) *BlockTimerWidget {
	return &BlockTimerWidget{costs: costs, now: time.Now}
}

func (*BlockTimerWidget) Name() string { return "block-timer" }

func (w *BlockTimerWidget) Render(data *SessionData, cfg Config) Output {
	if w.costs == nil || data == nil || data.SessionID == nil {
		return hidden(50)
	}
	start, ok := w.costs.SessionStart(*data.SessionID)
	if !ok {
		return hidden(50)
	}

	elapsed := w.now().Sub(start)
	if elapsed < 0 {
		return hidden(50)
	}
	remaining := blockLength - elapsed%blockLength

	if cfg.Raw {
		return textOutput(fmt.Sprintf("%d", int(remaining.Minutes())), 50)
	}
	return textOutput("Block: "+format.CompactDuration(remaining), 50)
}
