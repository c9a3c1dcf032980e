package widgets

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gitlab.com/tinyland/lab/claude-line/license"
)

func strp(s string) *string   { return &s }
func u64p(n uint64) *uint64   { return &n }
func f64p(f float64) *float64 { return &f }
func boolp(b bool) *bool      { return &b }

// fakeCosts is a canned CostSource for history-backed widgets.
type fakeCosts struct {
	total float64
	start time.Time
	known bool
}

func (f fakeCosts) TotalCostSince(time.Time) float64 { return f.total }

func (f fakeCosts) SessionStart(string) (time.Time, bool) { return f.start, f.known }

func forcePro(t *testing.T, on bool) {
	t.Helper()
	license.SetGate(func() bool { return on })
	t.Cleanup(func() { license.SetGate(nil) })
}

func TestModelWidget(t *testing.T) {
	w := ModelWidget{}

	tests := []struct {
		name string
		data *SessionData
		cfg  Config
		want string
		vis  bool
	}{
		{"display name wins", &SessionData{Model: &Model{ID: strp("claude-opus-4"), DisplayName: strp("Opus 4.1")}}, Config{}, "Opus 4.1", true},
		{"tier from id", &SessionData{Model: &Model{ID: strp("claude-sonnet-4-20250514")}}, Config{}, "Sonnet", true},
		{"unknown id passes through", &SessionData{Model: &Model{ID: strp("gpt-x")}}, Config{}, "gpt-x", true},
		{"raw prefers id", &SessionData{Model: &Model{ID: strp("claude-opus-4"), DisplayName: strp("Opus")}}, Config{Raw: true}, "claude-opus-4", true},
		{"no model hidden", &SessionData{}, Config{}, "", false},
		{"nil data hidden", nil, Config{}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := w.Render(tt.data, tt.cfg)
			if out.Visible != tt.vis || out.Text != tt.want {
				t.Errorf("got %q visible=%v, want %q visible=%v", out.Text, out.Visible, tt.want, tt.vis)
			}
		})
	}
}

func TestContextPercentageHints(t *testing.T) {
	w := ContextPercentageWidget{}

	tests := []struct {
		pct      float64
		wantHint string
	}{
		{10, ""},
		{69.9, ""},
		{70, "yellow"},
		{89, "yellow"},
		{90, "red"},
		{99, "red"},
	}

	for _, tt := range tests {
		data := &SessionData{ContextWindow: &ContextWindow{UsedPercentage: f64p(tt.pct)}}
		out := w.Render(data, Config{})
		if !out.Visible {
			t.Fatalf("pct %v: widget hidden", tt.pct)
		}
		if out.ColorHint != tt.wantHint {
			t.Errorf("pct %v: hint %q, want %q", tt.pct, out.ColorHint, tt.wantHint)
		}
	}

	out := w.Render(&SessionData{ContextWindow: &ContextWindow{UsedPercentage: f64p(42.4)}}, Config{})
	if out.Text != "Ctx: 42%" {
		t.Errorf("text: got %q, want Ctx: 42%%", out.Text)
	}
	if raw := w.Render(&SessionData{ContextWindow: &ContextWindow{UsedPercentage: f64p(42.4)}}, Config{Raw: true}); raw.Text != "42%" {
		t.Errorf("raw text: got %q, want 42%%", raw.Text)
	}

	custom := Config{Metadata: map[string]string{"warn_threshold": "50"}}
	if out := w.Render(&SessionData{ContextWindow: &ContextWindow{UsedPercentage: f64p(55)}}, custom); out.ColorHint != "yellow" {
		t.Errorf("custom threshold: hint %q, want yellow", out.ColorHint)
	}
}

func TestContextLengthWidget(t *testing.T) {
	w := ContextLengthWidget{}

	derived := &SessionData{ContextWindow: &ContextWindow{
		ContextWindowSize: u64p(200_000),
		UsedPercentage:    f64p(25),
	}}
	if out := w.Render(derived, Config{}); out.Text != "50.0k" {
		t.Errorf("derived: got %q, want 50.0k", out.Text)
	}

	fallback := &SessionData{ContextWindow: &ContextWindow{TotalInputTokens: u64p(1234)}}
	if out := w.Render(fallback, Config{Raw: true}); out.Text != "1234" {
		t.Errorf("fallback raw: got %q, want 1234", out.Text)
	}

	if out := w.Render(&SessionData{ContextWindow: &ContextWindow{}}, Config{}); out.Visible {
		t.Error("empty context window should hide")
	}
}

func TestTokensWidgets(t *testing.T) {
	data := &SessionData{ContextWindow: &ContextWindow{
		TotalInputTokens:  u64p(50_000),
		TotalOutputTokens: u64p(1_200),
		CurrentUsage: &CurrentUsage{
			CacheReadInputTokens:     u64p(3_000),
			CacheCreationInputTokens: u64p(500),
		},
	}}

	tests := []struct {
		kind TokensKind
		name string
		want string
	}{
		{TokensInput, "tokens-input", "In: 50.0k"},
		{TokensOutput, "tokens-output", "Out: 1.2k"},
		{TokensCached, "tokens-cached", "Cache: 3.5k"},
		{TokensTotal, "tokens-total", "Tokens: 51.2k"},
	}

	for _, tt := range tests {
		w := TokensWidget{Kind: tt.kind}
		if w.Name() != tt.name {
			t.Errorf("Name: got %q, want %q", w.Name(), tt.name)
		}
		out := w.Render(data, Config{})
		if out.Text != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, out.Text, tt.want)
		}
	}

	if out := (TokensWidget{Kind: TokensInput}).Render(data, Config{Raw: true}); out.Text != "50000" {
		t.Errorf("raw input: got %q, want 50000", out.Text)
	}
	if out := (TokensWidget{Kind: TokensCached}).Render(&SessionData{ContextWindow: &ContextWindow{}}, Config{}); out.Visible {
		t.Error("cached with no current usage should hide")
	}
}

func TestSessionCostWidget(t *testing.T) {
	w := SessionCostWidget{}
	data := &SessionData{Cost: &Cost{TotalCostUSD: f64p(0.4234)}}

	if out := w.Render(data, Config{}); out.Text != "$0.42" {
		t.Errorf("default: got %q, want $0.42", out.Text)
	}
	prec := Config{Metadata: map[string]string{"precision": "3"}}
	if out := w.Render(data, prec); out.Text != "$0.423" {
		t.Errorf("precision 3: got %q, want $0.423", out.Text)
	}
	if out := w.Render(data, Config{Raw: true}); out.Text != "0.42" {
		t.Errorf("raw: got %q, want 0.42", out.Text)
	}
	if out := w.Render(&SessionData{}, Config{}); out.Visible {
		t.Error("no cost should hide")
	}
}

func TestDurationWidgets(t *testing.T) {
	data := &SessionData{Cost: &Cost{
		TotalDurationMs:    u64p(8_100_000), // 2h15m
		TotalAPIDurationMs: u64p(3_000_000),
	}}

	if out := (SessionDurationWidget{}).Render(data, Config{}); out.Text != "2h 15m" {
		t.Errorf("duration: got %q, want 2h 15m", out.Text)
	}

	// 3_000_000 / 8_100_000 = 37.03%, truncated
	if out := (APIDurationWidget{}).Render(data, Config{}); out.Text != "API: 37%" {
		t.Errorf("api duration: got %q, want API: 37%%", out.Text)
	}
	if out := (APIDurationWidget{}).Render(data, Config{Raw: true}); out.Text != "37%" {
		t.Errorf("api duration raw: got %q, want 37%%", out.Text)
	}

	zero := &SessionData{Cost: &Cost{TotalDurationMs: u64p(0), TotalAPIDurationMs: u64p(5)}}
	if out := (APIDurationWidget{}).Render(zero, Config{}); out.Visible {
		t.Error("zero total duration should hide")
	}
}

func TestLinesChangedWidget(t *testing.T) {
	w := LinesChangedWidget{}

	data := &SessionData{Cost: &Cost{TotalLinesAdded: u64p(120), TotalLinesRemoved: u64p(7)}}
	if out := w.Render(data, Config{}); out.Text != "+120/-7" {
		t.Errorf("got %q, want +120/-7", out.Text)
	}

	onlyAdd := &SessionData{Cost: &Cost{TotalLinesAdded: u64p(3)}}
	if out := w.Render(onlyAdd, Config{}); out.Text != "+3/-0" {
		t.Errorf("got %q, want +3/-0", out.Text)
	}

	if out := w.Render(&SessionData{Cost: &Cost{}}, Config{}); out.Visible {
		t.Error("no counters should hide")
	}
}

func TestExceedsTokensWidget(t *testing.T) {
	w := ExceedsTokensWidget{}
	if out := w.Render(&SessionData{Exceeds200K: boolp(true)}, Config{}); out.Text != "!200K" || !out.Visible {
		t.Errorf("got %q visible=%v, want !200K visible", out.Text, out.Visible)
	}
	if out := w.Render(&SessionData{Exceeds200K: boolp(false)}, Config{}); out.Visible {
		t.Error("false flag should hide")
	}
	if out := w.Render(&SessionData{}, Config{}); out.Visible {
		t.Error("absent flag should hide")
	}
}

func TestSessionWidgets(t *testing.T) {
	if out := (VimModeWidget{}).Render(&SessionData{Vim: &Vim{Mode: strp("INSERT")}}, Config{}); out.Text != "INSERT" {
		t.Errorf("vim mode: got %q, want INSERT", out.Text)
	}
	if out := (VimModeWidget{}).Render(&SessionData{Vim: &Vim{}}, Config{}); out.Text != "NORMAL" {
		t.Errorf("vim default: got %q, want NORMAL", out.Text)
	}
	if out := (VimModeWidget{}).Render(&SessionData{}, Config{}); out.Visible {
		t.Error("no vim block should hide")
	}

	if out := (OutputStyleWidget{}).Render(&SessionData{OutputStyle: &OutputStyle{Name: strp("Explanatory")}}, Config{}); out.Text != "Explanatory" {
		t.Errorf("output style: got %q, want Explanatory", out.Text)
	}
	if out := (OutputStyleWidget{}).Render(&SessionData{OutputStyle: &OutputStyle{Name: strp("default")}}, Config{}); out.Visible {
		t.Error("default style should hide")
	}

	if out := (SessionIDWidget{}).Render(&SessionData{SessionID: strp("abcdef1234567890")}, Config{}); out.Text != "abcdef12" {
		t.Errorf("session id: got %q, want abcdef12", out.Text)
	}
	if out := (SessionIDWidget{}).Render(&SessionData{SessionID: strp("abcdef1234567890")}, Config{Raw: true}); out.Text != "abcdef1234567890" {
		t.Errorf("session id raw: got %q", out.Text)
	}

	if out := (VersionWidget{}).Render(&SessionData{Version: strp("2.0.14")}, Config{}); out.Text != "v2.0.14" {
		t.Errorf("version: got %q, want v2.0.14", out.Text)
	}
	if out := (VersionWidget{}).Render(&SessionData{Version: strp("2.0.14")}, Config{Raw: true}); out.Text != "2.0.14" {
		t.Errorf("version raw: got %q, want 2.0.14", out.Text)
	}

	if out := (AgentNameWidget{}).Render(&SessionData{Agent: &Agent{Name: strp("reviewer")}}, Config{}); out.Text != "reviewer" {
		t.Errorf("agent: got %q, want reviewer", out.Text)
	}
}

func TestCwdWidget(t *testing.T) {
	w := CwdWidget{}
	data := &SessionData{Workspace: &Workspace{CurrentDir: strp("/srv/projects/claude-line")}}

	if out := w.Render(data, Config{}); out.Text != "claude-line" {
		t.Errorf("basename: got %q, want claude-line", out.Text)
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		inHome := &SessionData{Cwd: strp(filepath.Join(home, "src", "demo"))}
		out := w.Render(inHome, Config{Raw: true})
		if !strings.HasPrefix(out.Text, "~"+string(filepath.Separator)) {
			t.Errorf("raw home path: got %q, want ~ prefix", out.Text)
		}
	}

	if out := w.Render(&SessionData{}, Config{}); out.Visible {
		t.Error("no directory should hide")
	}
}

func TestCustomWidgets(t *testing.T) {
	if out := (CustomTextWidget{}).Render(nil, Config{Metadata: map[string]string{"text": "hello"}}); out.Text != "hello" {
		t.Errorf("custom text: got %q, want hello", out.Text)
	}
	if out := (CustomTextWidget{}).Render(nil, Config{}); out.Visible {
		t.Error("custom text without metadata should hide")
	}

	if out := (SeparatorWidget{}).Render(nil, Config{}); out.Text != "|" {
		t.Errorf("separator default: got %q, want |", out.Text)
	}
	if out := (SeparatorWidget{}).Render(nil, Config{Metadata: map[string]string{"char": "·"}}); out.Text != "·" {
		t.Errorf("separator custom: got %q, want ·", out.Text)
	}

	flex := (FlexSeparatorWidget{}).Render(nil, Config{})
	if !flex.Visible || flex.Width != 0 || flex.Text != " " {
		t.Errorf("flex separator: got %+v, want visible zero-width space fill", flex)
	}
	dotted := (FlexSeparatorWidget{}).Render(nil, Config{Metadata: map[string]string{"char": "·"}})
	if dotted.Text != "·" || dotted.Width != 0 {
		t.Errorf("flex separator fill: got %+v, want · with width 0", dotted)
	}
}

func TestCustomCommandWidget(t *testing.T) {
	w := CustomCommandWidget{}

	out := w.Render(nil, Config{Metadata: map[string]string{"command": "printf 'one\\ntwo\\n'"}})
	if out.Text != "one" {
		t.Errorf("first line: got %q, want one", out.Text)
	}

	if out := w.Render(nil, Config{Metadata: map[string]string{"command": "exit 3"}}); out.Visible {
		t.Error("failing command should hide")
	}
	if out := w.Render(nil, Config{}); out.Visible {
		t.Error("missing command should hide")
	}
}

func TestGitWidgetsOutsideRepo(t *testing.T) {
	dir := t.TempDir()
	data := &SessionData{Cwd: strp(dir)}

	if out := (GitBranchWidget{}).Render(data, Config{}); out.Visible {
		t.Error("git-branch outside a repo should hide")
	}
	if out := (GitStatusWidget{}).Render(data, Config{}); out.Visible {
		t.Error("git-status outside a repo should hide")
	}
	if out := (GitWorktreeWidget{}).Render(data, Config{}); out.Visible {
		t.Error("git-worktree outside a repo should hide")
	}
}

func TestGitWorktreeDetection(t *testing.T) {
	dir := t.TempDir()
	gitFile := filepath.Join(dir, ".git")
	if err := os.WriteFile(gitFile, []byte("gitdir: /somewhere/else\n"), 0644); err != nil {
		t.Fatal(err)
	}

	out := (GitWorktreeWidget{}).Render(&SessionData{Cwd: strp(dir)}, Config{})
	if !out.Visible || out.Text != filepath.Base(dir) {
		t.Errorf("got %+v, want visible %q", out, filepath.Base(dir))
	}
}

func TestBurnRateWidget(t *testing.T) {
	forcePro(t, true)

	w := NewBurnRateWidget(fakeCosts{total: 5})
	w.now = func() time.Time { return time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC) }

	out := w.Render(nil, Config{})
	if !out.Visible {
		t.Fatal("burn rate should be visible")
	}
	// $5 over 60m = $5/hr; safe rate $200/56 = $3.57; 1x..1.5x is moderate.
	if out.ColorHint != "yellow" {
		t.Errorf("hint: got %q, want yellow", out.ColorHint)
	}
	if out.Text != "Burn: $5.00/hr -> limit in 40h 0m" {
		t.Errorf("text: got %q", out.Text)
	}

	idle := NewBurnRateWidget(fakeCosts{total: 0})
	if out := idle.Render(nil, Config{}); out.Text != "Burn: idle" || out.ColorHint != "green" {
		t.Errorf("idle: got %q hint %q, want Burn: idle green", out.Text, out.ColorHint)
	}

	raw := NewBurnRateWidget(fakeCosts{total: 5})
	if out := raw.Render(nil, Config{Raw: true}); out.Text != "5.00" {
		t.Errorf("raw: got %q, want 5.00", out.Text)
	}
}

func TestBurnRateHiddenWithoutPro(t *testing.T) {
	forcePro(t, false)
	w := NewBurnRateWidget(fakeCosts{total: 5})
	if out := w.Render(nil, Config{}); out.Visible {
		t.Error("burn rate should hide without a Pro license")
	}
}

func TestCostWarningWidget(t *testing.T) {
	forcePro(t, true)

	tests := []struct {
		spent    float64
		vis      bool
		wantHint string
		wantText string
	}{
		{100, false, "", ""},
		{150, true, "yellow", "⚠️ 75% of weekly limit ($150/$200)"},
		{190, true, "red", "\U0001f534 95% of weekly limit ($190/$200)"},
	}

	for _, tt := range tests {
		w := NewCostWarningWidget(fakeCosts{total: tt.spent})
		out := w.Render(nil, Config{})
		if out.Visible != tt.vis {
			t.Errorf("spent %v: visible=%v, want %v", tt.spent, out.Visible, tt.vis)
			continue
		}
		if !tt.vis {
			continue
		}
		if out.Text != tt.wantText || out.ColorHint != tt.wantHint {
			t.Errorf("spent %v: got %q hint %q, want %q hint %q",
				tt.spent, out.Text, out.ColorHint, tt.wantText, tt.wantHint)
		}
	}
}

func TestModelSuggestWidget(t *testing.T) {
	forcePro(t, true)
	w := ModelSuggestWidget{}

	opusSimple := &SessionData{Model: &Model{ID: strp("claude-opus-4")}}
	out := w.Render(opusSimple, Config{})
	if out.Text != "\U0001f4a1 Try Sonnet -> Save $0.32" || out.ColorHint != "cyan" {
		t.Errorf("opus simple: got %q hint %q", out.Text, out.ColorHint)
	}

	opusBusy := &SessionData{
		Model:         &Model{ID: strp("claude-opus-4")},
		ContextWindow: &ContextWindow{UsedPercentage: f64p(75)},
	}
	if out := w.Render(opusBusy, Config{}); out.Visible {
		t.Error("high complexity should not suggest a downgrade")
	}

	sonnetSimple := &SessionData{Model: &Model{ID: strp("claude-sonnet-4")}}
	if out := w.Render(sonnetSimple, Config{}); out.Text != "\U0001f4a1 Try Haiku -> Save $0.09" {
		t.Errorf("sonnet simple: got %q", out.Text)
	}

	// Haiku savings fall below the default min_savings floor.
	sonnetHighBar := Config{Metadata: map[string]string{"min_savings": "0.50"}}
	if out := w.Render(opusSimple, sonnetHighBar); out.Visible {
		t.Error("savings under min_savings should hide")
	}

	if out := w.Render(&SessionData{Model: &Model{ID: strp("claude-haiku-3")}}, Config{}); out.Visible {
		t.Error("haiku has no cheaper tier")
	}
}

func TestBlockTimerWidget(t *testing.T) {
	start := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	w := NewBlockTimerWidget(fakeCosts{start: start, known: true})
	w.now = func() time.Time { return start.Add(2 * time.Hour) }

	data := &SessionData{SessionID: strp("s1")}
	if out := w.Render(data, Config{}); out.Text != "Block: 3h0m" {
		t.Errorf("got %q, want Block: 3h0m", out.Text)
	}

	unknown := NewBlockTimerWidget(fakeCosts{})
	if out := unknown.Render(data, Config{}); out.Visible {
		t.Error("unknown session should hide")
	}
	if out := NewBlockTimerWidget(nil).Render(data, Config{}); out.Visible {
		t.Error("nil cost source should hide")
	}
}

func TestRegistry(t *testing.T) {
	r := NewRegistry(nil)

	for _, name := range []string{
		"model", "context-percentage", "context-length", "tokens-total",
		"git-branch", "git-status", "git-worktree", "session-cost",
		"session-duration", "api-duration", "lines-changed", "cwd",
		"version", "session-id", "vim-mode", "agent-name", "output-style",
		"exceeds-tokens", "custom-text", "custom-command", "separator",
		"flex-separator", "terminal-width", "block-timer", "burn-rate",
		"cost-warning", "model-suggest",
	} {
		if _, ok := r.Lookup(name); !ok {
			t.Errorf("Lookup(%q): not registered", name)
		}
	}
	if _, ok := r.Lookup("nope"); ok {
		t.Error("Lookup(nope): got ok, want false")
	}

	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("Names not sorted: %v", names)
		}
	}
}

func TestReadSessionData(t *testing.T) {
	payload := `{
		"session_id": "abc",
		"model": {"id": "claude-opus-4", "display_name": "Opus"},
		"cost": {"total_cost_usd": 1.5},
		"context_window": {"total_input_tokens": 10, "total_output_tokens": 5},
		"some_future_field": {"x": 1}
	}`
	data, err := ReadSessionData(strings.NewReader(payload))
	if err != nil {
		t.Fatalf("ReadSessionData: %v", err)
	}
	if data.SessionID == nil || *data.SessionID != "abc" {
		t.Errorf("SessionID: got %v", data.SessionID)
	}
	in, out, ok := data.totalTokens()
	if !ok || in != 10 || out != 5 {
		t.Errorf("totalTokens: got %d/%d ok=%v", in, out, ok)
	}

	if _, err := ReadSessionData(strings.NewReader("{broken")); err == nil {
		t.Error("malformed JSON should error")
	}
}
