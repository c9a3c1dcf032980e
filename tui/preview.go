package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/claude-line/config"
	"gitlab.com/tinyland/lab/claude-line/layout"
	"gitlab.com/tinyland/lab/claude-line/render"
	"gitlab.com/tinyland/lab/claude-line/widgets"
)

// Run starts the editor over the given config and blocks until exit.
func Run(cfg *config.Config, path string, registry *widgets.Registry) error {
	p := tea.NewProgram(NewModel(cfg, path, registry), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// previewLines renders the current config against canned session data so
// the preview reflects exactly what a real invocation would print.
func previewLines(cfg *config.Config, registry *widgets.Registry, width int) []string {
	if width < 20 {
		width = 20
	}

	engine := layout.New(cfg, render.Detect(cfg.ColorLevel))
	engine.Term = layout.FixedTerminal(width)
	return engine.Render(sampleData(), registry)
}

// sampleData is a representative payload for previews.
func sampleData() *widgets.SessionData {
	strp := func(s string) *string { return &s }
	u64p := func(n uint64) *uint64 { return &n }
	f64p := func(f float64) *float64 { return &f }

	return &widgets.SessionData{
		SessionID: strp("preview-session"),
		Cwd:       strp("/home/user/src/claude-line"),
		Version:   strp("2.0.14"),
		Model: &widgets.Model{
			ID:          strp("claude-opus-4"),
			DisplayName: strp("Opus 4.1"),
		},
		Workspace: &widgets.Workspace{
			CurrentDir: strp("/home/user/src/claude-line"),
		},
		Cost: &widgets.Cost{
			TotalCostUSD:       f64p(1.42),
			TotalDurationMs:    u64p(8_100_000),
			TotalAPIDurationMs: u64p(2_900_000),
			TotalLinesAdded:    u64p(120),
			TotalLinesRemoved:  u64p(14),
		},
		ContextWindow: &widgets.ContextWindow{
			TotalInputTokens:  u64p(48_200),
			TotalOutputTokens: u64p(6_400),
			ContextWindowSize: u64p(200_000),
			UsedPercentage:    f64p(27.3),
		},
	}
}
