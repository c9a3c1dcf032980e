package widgets

import (
	"sort"
	"time"
)

// CostSource supplies persisted cost history to the widgets that need it.
// *history.Tracker satisfies this. A nil CostSource simply hides those
// widgets.
type CostSource interface {
	TotalCostSince(since time.Time) float64
	SessionStart(id string) (time.Time, bool)
}

// Registry maps widget type names to implementations.
type Registry struct {
	widgets map[string]Widget
}

// NewRegistry builds a registry with every built-in widget. costs may be
// nil when no history file is available; history-backed widgets then
// render invisible.
func NewRegistry(costs CostSource) *Registry {
	r := &Registry{widgets: make(map[string]Widget)}

	for _, w := range []Widget{
		ModelWidget{},
		ContextPercentageWidget{},
		ContextLengthWidget{},
		ExceedsTokensWidget{},
		TokensWidget{Kind: TokensInput},
		TokensWidget{Kind: TokensOutput},
		TokensWidget{Kind: TokensCached},
		TokensWidget{Kind: TokensTotal},
		SessionCostWidget{},
		SessionDurationWidget{},
		APIDurationWidget{},
		LinesChangedWidget{},
		GitBranchWidget{},
		GitStatusWidget{},
		GitWorktreeWidget{},
		CwdWidget{},
		VersionWidget{},
		SessionIDWidget{},
		VimModeWidget{},
		AgentNameWidget{},
		OutputStyleWidget{},
		CustomTextWidget{},
		CustomCommandWidget{},
		SeparatorWidget{},
		FlexSeparatorWidget{},
		TerminalWidthWidget{},
		NewBlockTimerWidget(costs),
		NewBurnRateWidget(costs),
		NewCostWarningWidget(costs),
		ModelSuggestWidget{},
	} {
		r.Register(w)
	}
	return r
}

// Register adds (or replaces) a widget under its Name.
func (r *Registry) Register(w Widget) {
	r.widgets[w.Name()] = w
}

// Lookup returns the widget registered under name.
func (r *Registry) Lookup(name string) (Widget, bool) {
	w, ok := r.widgets[name]
	return w, ok
}

// Names lists registered widget types in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.widgets))
	for name := range r.widgets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
