package widgets

import (
	"fmt"
	"math"
	"time"

	"gitlab.com/tinyland/lab/claude-line/history"
	"gitlab.com/tinyland/lab/claude-line/license"
)

// workHoursPerWeek converts a weekly budget into a sustainable hourly
// rate: 7 days at 8 working hours.
const workHoursPerWeek = 56.0

// burnStatus classifies an hourly spend rate against the safe rate.
type burnStatus int

const (
	burnVeryLow burnStatus = iota
	burnSafe
	burnModerate
	burnHigh
	burnCritical
)

func (s burnStatus) colorHint() string {
	switch s {
	case burnVeryLow, burnSafe:
		return "green"
	case burnModerate:
		return "yellow"
	default:
		return "red"
	}
}

func classifyBurn(rate, safeRate float64) burnStatus {
	switch {
	case rate < safeRate*0.5:
		return burnVeryLow
	case rate < safeRate:
		return burnSafe
	case rate < safeRate*1.5:
		return burnModerate
	case rate < safeRate*2.0:
		return burnHigh
	default:
		return burnCritical
	}
}

// BurnRateWidget shows the hourly spend rate over a sliding window and,
// when the pace would exhaust the weekly budget inside a week, the time
// until the limit. Pro only.
type BurnRateWidget struct {
	costs CostSource
	now   func() time.Time
}

// NewBurnRateWidget builds a burn-rate widget over the given cost source.
func NewBurnRateWidget(costs CostSource) *BurnRateWidget {
	return &BurnRateWidget{costs: costs, now: time.Now}
}

func (*BurnRateWidget) Name() string { return "burn-rate" }

func (w *BurnRateWidget) Render(_ *SessionData, cfg Config) Output {
	if !license.IsPro() || w.costs == nil {
		return hidden(65)
	}

	windowMinutes := metaInt(cfg, "window_minutes", 60)
	if windowMinutes <= 0 {
		windowMinutes = 60
	}
	weeklyLimit := metaFloat(cfg, "weekly_limit", 200)

	since := w.now().Add(-time.Duration(windowMinutes) * time.Minute)
	total := w.costs.TotalCostSince(since)

	rate := 0.0
	hoursLeft := math.Inf(1)
	if total > 0 {
		rate = total / (float64(windowMinutes) / 60.0)
		hoursLeft = weeklyLimit / rate
	}
	status := classifyBurn(rate, weeklyLimit/workHoursPerWeek)
	if total <= 0 {
		status = burnVeryLow
	}

	var text string
	switch {
	case cfg.Raw:
		text = fmt.Sprintf("%.2f", rate)
	case rate < 0.01:
		text = "Burn: idle"
	case math.IsInf(hoursLeft, 1) || hoursLeft > 168:
		text = fmt.Sprintf("Burn: $%.2f/hr", rate)
	default:
		hours := int(hoursLeft)
		mins := int((hoursLeft - float64(hours)) * 60)
		text = fmt.Sprintf("Burn: $%.2f/hr -> limit in %dh %dm", rate, hours, mins)
	}
	return hintedOutput(text, 65, status.colorHint())
}

// CostWarningWidget warns when weekly spend crosses the configured
// thresholds. Invisible below the warn threshold. Pro only.
type CostWarningWidget struct {
	costs CostSource
	now   func() time.Time
}

// NewCostWarningWidget builds a cost-warning widget over the given cost
// source.
func NewCostWarningWidget(costs CostSource) *CostWarningWidget {
	return &CostWarningWidget{costs: costs, now: time.Now}
}

func (*CostWarningWidget) Name() string { return "cost-warning" }

func (w *CostWarningWidget) Render(_ *SessionData, cfg Config) Output {
	if !license.IsPro() || w.costs == nil {
		return hidden(75)
	}

	weeklyLimit := metaFloat(cfg, "weekly_limit", 200)
	warn := metaFloat(cfg, "warn_threshold", 0.7)
	critical := metaFloat(cfg, "critical_threshold", 0.9)

	spent := w.costs.TotalCostSince(history.WeekStart(w.now()))
	fraction := 0.0
	if weeklyLimit > 0 {
		fraction = spent / weeklyLimit
	}
	if fraction < warn {
		return hidden(75)
	}

	icon, hint := "⚠️", "yellow"
	if fraction >= critical {
		icon, hint = "\U0001f534", "red"
	}
	text := fmt.Sprintf("%s %.0f%% of weekly limit ($%.0f/$%.0f)",
		icon, fraction*100, spent, weeklyLimit)
	return hintedOutput(text, 75, hint)
}

// ModelSuggestWidget suggests a cheaper model tier when the session's
// complexity signals say the current one is overkill. Pro only.
type ModelSuggestWidget struct{}

func (ModelSuggestWidget) Name() string { return "model-suggest" }

func (ModelSuggestWidget) Render(data *SessionData, cfg Config) Output {
	if !license.IsPro() {
		return hidden(60)
	}
	if data == nil || data.Model == nil || data.Model.ID == nil {
		return hidden(60)
	}
	tier := modelTier(*data.Model.ID)
	if tier == "" {
		return hidden(60)
	}

	minSavings := metaFloat(cfg, "min_savings", 0.10)

	suggestion, savings, ok := suggestModel(tier, analyzeComplexity(data))
	if !ok || savings < minSavings {
		return hidden(60)
	}

	var text string
	if cfg.Raw {
		text = fmt.Sprintf("%s:%.2f", suggestion, savings)
	} else {
		text = fmt.Sprintf("\U0001f4a1 Try %s -> Save $%.2f", suggestion, savings)
	}
	return hintedOutput(text, 60, "cyan")
}

// complexity grades a session by its context and output signals.
type complexity int

const (
	complexitySimple complexity = iota
	complexityMedium
	complexityHigh
)

func analyzeComplexity(data *SessionData) complexity {
	var contextPct float64
	var outputTokens uint64
	if cw := data.ContextWindow; cw != nil {
		if cw.UsedPercentage != nil {
			contextPct = *cw.UsedPercentage
		}
		if cw.TotalOutputTokens != nil {
			outputTokens = *cw.TotalOutputTokens
		}
	}

	if contextPct > 60 || outputTokens > 10_000 {
		return complexityHigh
	}
	if outputTokens > 3_000 || contextPct > 30 {
		return complexityMedium
	}
	return complexitySimple
}

// suggestModel maps (current tier, complexity) to a cheaper tier and the
// estimated savings per typical request.
func suggestModel(tier string, c complexity) (string, float64, bool) {
	switch {
	case tier == "opus" && c != complexityHigh:
		return "Sonnet", 0.32, true
	case tier == "sonnet" && c == complexitySimple:
		return "Haiku", 0.09, true
	}
	return "", 0, false
}
