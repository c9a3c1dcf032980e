package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"gitlab.com/tinyland/lab/claude-line/config"
	"gitlab.com/tinyland/lab/claude-line/widgets"
)

func testModel() Model {
	return NewModel(config.Default(), "/tmp/unused.toml", widgets.NewRegistry(nil))
}

// isQuitCmd executes a tea.Cmd and returns true if it produces a tea.QuitMsg.
func isQuitCmd(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	msg := cmd()
	_, ok := msg.(tea.QuitMsg)
	return ok
}

func TestNewModel(t *testing.T) {
	m := testModel()

	if m.activeTab != TabWidgets {
		t.Errorf("expected activeTab to be TabWidgets, got %d", m.activeTab)
	}
	if m.ready {
		t.Error("expected ready to be false")
	}
	if m.dirty {
		t.Error("expected dirty to be false")
	}
	if m.themeCursor != 0 {
		t.Errorf("expected theme cursor on default theme, got %d", m.themeCursor)
	}
}

func TestModel_Update_Quit(t *testing.T) {
	m := testModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if !isQuitCmd(cmd) {
		t.Error("expected 'q' key to produce tea.Quit command")
	}
}

func TestModel_Update_TabCycle(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.activeTab != TabTheme {
		t.Errorf("expected TabTheme after first tab, got %d", m.activeTab)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.activeTab != TabPreview {
		t.Errorf("expected TabPreview after second tab, got %d", m.activeTab)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = updated.(Model)
	if m.activeTab != TabWidgets {
		t.Errorf("expected wrap back to TabWidgets, got %d", m.activeTab)
	}

	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = updated.(Model)
	if m.activeTab != TabPreview {
		t.Errorf("expected backward wrap to TabPreview, got %d", m.activeTab)
	}
}

func TestModel_Update_WindowSize(t *testing.T) {
	m := testModel()

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = updated.(Model)

	if !m.ready {
		t.Error("expected ready to be true after WindowSizeMsg")
	}
	if m.width != 120 || m.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", m.width, m.height)
	}
}

func TestModel_DeleteWidget(t *testing.T) {
	m := testModel()
	before := len(m.cfg.Lines[0].Widgets)

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	m = updated.(Model)

	if got := len(m.cfg.Lines[0].Widgets); got != before-1 {
		t.Errorf("expected %d widgets after delete, got %d", before-1, got)
	}
	if !m.dirty {
		t.Error("expected dirty after delete")
	}
}

func TestModel_ReorderWidget(t *testing.T) {
	m := testModel()
	first := m.cfg.Lines[0].Widgets[0].Type
	second := m.cfg.Lines[0].Widgets[1].Type

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'J'}})
	m = updated.(Model)

	if m.cfg.Lines[0].Widgets[0].Type != second || m.cfg.Lines[0].Widgets[1].Type != first {
		t.Errorf("expected %s and %s to swap, got %v", first, second, m.cfg.Lines[0].Widgets[:2])
	}
	if m.cursor != 1 {
		t.Errorf("expected cursor to follow the moved widget, got %d", m.cursor)
	}
}

func TestModel_AddWidgetFromAvailable(t *testing.T) {
	m := testModel()
	slots := m.slotRefs()
	adds := m.addableTypes()
	if len(adds) == 0 {
		t.Fatal("expected some addable widget types")
	}
	m.cursor = len(slots) // first entry of the available section
	wantType := adds[0]

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	last := m.cfg.Lines[len(m.cfg.Lines)-1].Widgets
	if last[len(last)-1].Type != wantType {
		t.Errorf("expected %q appended, got %q", wantType, last[len(last)-1].Type)
	}
	if !m.dirty {
		t.Error("expected dirty after add")
	}
}

func TestModel_ThemeSelection(t *testing.T) {
	m := testModel()
	m.activeTab = TabTheme

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	m = updated.(Model)
	updated, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = updated.(Model)

	if m.cfg.Theme != "solarized" {
		t.Errorf("expected solarized selected, got %q", m.cfg.Theme)
	}
	if !m.dirty {
		t.Error("expected dirty after theme change")
	}
}

func TestModel_SaveWritesConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	m := NewModel(config.Default(), path, widgets.NewRegistry(nil))
	m.cfg.Theme = "nord"
	m.dirty = true

	updated, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'s'}})
	m = updated.(Model)

	if m.dirty {
		t.Error("expected dirty cleared after save")
	}
	loaded, err := config.LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if loaded.Theme != "nord" {
		t.Errorf("expected saved theme nord, got %q", loaded.Theme)
	}
}

func TestModel_View(t *testing.T) {
	m := testModel()
	if m.View() != "Initializing..." {
		t.Errorf("expected 'Initializing...' before WindowSizeMsg, got %q", m.View())
	}

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = updated.(Model)

	view := m.View()
	for _, want := range []string{"Widgets", "Theme", "Preview", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected view to contain %q", want)
		}
	}
}

func TestPreviewLines(t *testing.T) {
	cfg := config.Default()
	cfg.ColorLevel = "none"
	lines := previewLines(cfg, widgets.NewRegistry(nil), 120)

	if len(lines) == 0 {
		t.Fatal("expected at least one preview line")
	}
	if !strings.Contains(lines[0], "Opus 4.1") {
		t.Errorf("expected preview to show the sample model, got %q", lines[0])
	}
}
