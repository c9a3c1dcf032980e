// Package tui is the interactive claude-line configuration editor.
//
// It edits a Config in memory across three tabs (widget layout, theme,
// live preview) and writes TOML back out on save. The preview renders
// through the same layout engine as a real invocation, against canned
// session data.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"gitlab.com/tinyland/lab/claude-line/config"
	"gitlab.com/tinyland/lab/claude-line/themes"
	"gitlab.com/tinyland/lab/claude-line/widgets"
)

// Tab identifies which tab is currently active.
type Tab int

const (
	TabWidgets Tab = iota
	TabTheme
	TabPreview
	tabCount // sentinel for wrapping
)

// tabNames maps each Tab value to its display label.
var tabNames = map[Tab]string{
	TabWidgets: "Widgets",
	TabTheme:   "Theme",
	TabPreview: "Preview",
}

// slotRef addresses one widget slot in the config.
type slotRef struct {
	line, slot int
}

// Model is the top-level Bubbletea model for the config editor.
type Model struct {
	cfg  *config.Config
	path string

	activeTab   Tab
	cursor      int
	themeCursor int
	width       int
	height      int
	ready       bool
	dirty       bool
	status      string

	registry *widgets.Registry
}

// NewModel builds an editor for cfg, saving to path.
func NewModel(cfg *config.Config, path string, registry *widgets.Registry) Model {
	m := Model{
		cfg:      cfg,
		path:     path,
		registry: registry,
	}
	for i, name := range themes.Names() {
		if name == cfg.Theme {
			m.themeCursor = i
		}
	}
	return m
}

// Init implements tea.Model. No initial commands are needed.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. It handles key presses and window resize events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.NextTab):
			m.activeTab = (m.activeTab + 1) % tabCount
			m.cursor = 0
		case key.Matches(msg, keys.PrevTab):
			m.activeTab = (m.activeTab - 1 + tabCount) % tabCount
			m.cursor = 0
		case key.Matches(msg, keys.Tab1):
			m.activeTab = TabWidgets
		case key.Matches(msg, keys.Tab2):
			m.activeTab = TabTheme
		case key.Matches(msg, keys.Tab3):
			m.activeTab = TabPreview
		case key.Matches(msg, keys.Save):
			m = m.save()
		default:
			m = m.updateTab(msg)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
	}

	return m, nil
}

// updateTab routes navigation keys to the active tab.
func (m Model) updateTab(msg tea.KeyMsg) Model {
	switch m.activeTab {
	case TabWidgets:
		return m.updateWidgetsTab(msg)
	case TabTheme:
		return m.updateThemeTab(msg)
	}
	return m
}

func (m Model) updateWidgetsTab(msg tea.KeyMsg) Model {
	slots := m.slotRefs()
	adds := m.addableTypes()
	total := len(slots) + len(adds)
	if total == 0 {
		return m
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < total-1 {
			m.cursor++
		}

	case key.Matches(msg, keys.Delete):
		if m.cursor < len(slots) {
			ref := slots[m.cursor]
			ws := m.cfg.Lines[ref.line].Widgets
			m.cfg.Lines[ref.line].Widgets = append(ws[:ref.slot], ws[ref.slot+1:]...)
			m.dirty = true
			if m.cursor > 0 {
				m.cursor--
			}
		}

	case key.Matches(msg, keys.MoveUp):
		if m.cursor < len(slots) {
			ref := slots[m.cursor]
			if ref.slot > 0 {
				ws := m.cfg.Lines[ref.line].Widgets
				ws[ref.slot-1], ws[ref.slot] = ws[ref.slot], ws[ref.slot-1]
				m.dirty = true
				m.cursor--
			}
		}
	case key.Matches(msg, keys.MoveDn):
		if m.cursor < len(slots) {
			ref := slots[m.cursor]
			ws := m.cfg.Lines[ref.line].Widgets
			if ref.slot < len(ws)-1 {
				ws[ref.slot], ws[ref.slot+1] = ws[ref.slot+1], ws[ref.slot]
				m.dirty = true
				m.cursor++
			}
		}

	case key.Matches(msg, keys.Select):
		// Selecting an entry in the "available" section appends it to
		// the last line.
		if m.cursor >= len(slots) {
			typ := adds[m.cursor-len(slots)]
			if len(m.cfg.Lines) == 0 {
				m.cfg.Lines = []config.LineConfig{{}}
			}
			last := len(m.cfg.Lines) - 1
			m.cfg.Lines[last].Widgets = append(
				m.cfg.Lines[last].Widgets,
				config.WidgetSlot{Type: typ},
			)
			m.dirty = true
		}
	}
	return m
}

func (m Model) updateThemeTab(msg tea.KeyMsg) Model {
	names := themes.Names()
	switch {
	case key.Matches(msg, keys.Up):
		if m.themeCursor > 0 {
			m.themeCursor--
		}
	case key.Matches(msg, keys.Down):
		if m.themeCursor < len(names)-1 {
			m.themeCursor++
		}
	case key.Matches(msg, keys.Select):
		m.cfg.Theme = names[m.themeCursor]
		m.dirty = true
	}
	return m
}

func (m Model) save() Model {
	if err := config.Save(m.cfg, m.path); err != nil {
		m.status = fmt.Sprintf("save failed: %v", err)
		return m
	}
	m.status = fmt.Sprintf("saved to %s", m.path)
	m.dirty = false
	return m
}

// slotRefs flattens the configured slots in display order.
func (m Model) slotRefs() []slotRef {
	var refs []slotRef
	for li, line := range m.cfg.Lines {
		for si := range line.Widgets {
			refs = append(refs, slotRef{line: li, slot: si})
		}
	}
	return refs
}

// addableTypes lists registered widget types not yet placed on any line.
func (m Model) addableTypes() []string {
	used := make(map[string]bool)
	for _, line := range m.cfg.Lines {
		for _, slot := range line.Widgets {
			used[slot.Type] = true
		}
	}
	var out []string
	for _, name := range m.registry.Names() {
		if !used[name] {
			out = append(out, name)
		}
	}
	return out
}

// View implements tea.Model. It renders the header, active tab content, and footer.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	header := m.renderHeader()
	content := m.renderTabContent()
	footer := m.renderFooter()

	return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
}

// renderHeader renders the tab bar with the active tab highlighted.
func (m Model) renderHeader() string {
	var tabs []string
	for i := Tab(0); i < tabCount; i++ {
		name := tabNames[i]
		if i == m.activeTab {
			tabs = append(tabs, styleActiveTab.Render(name))
		} else {
			tabs = append(tabs, styleInactiveTab.Render(name))
		}
	}

	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	return styleHeader.Width(m.width).Render(tabBar)
}

// renderTabContent delegates to the appropriate tab renderer.
func (m Model) renderTabContent() string {
	var content string
	switch m.activeTab {
	case TabWidgets:
		content = m.renderWidgetsTab()
	case TabTheme:
		content = m.renderThemeTab()
	case TabPreview:
		content = m.renderPreviewTab()
	}
	return styleContent.Width(m.width).Render(content)
}

func (m Model) renderWidgetsTab() string {
	slots := m.slotRefs()
	adds := m.addableTypes()

	out := styleTitle.Render("Configured widgets") + "\n"
	for i, ref := range slots {
		slot := m.cfg.Lines[ref.line].Widgets[ref.slot]
		label := fmt.Sprintf("line %d  %s", ref.line+1, slot.Type)
		if slot.MergeNext {
			label += "  (merge)"
		}
		out += m.listRow(i, label) + "\n"
	}

	out += "\n" + styleTitle.Render("Available") + "\n"
	for i, typ := range adds {
		out += m.listRow(len(slots)+i, typ) + "\n"
	}
	return out
}

func (m Model) renderThemeTab() string {
	out := styleTitle.Render("Theme") + "\n"
	for i, name := range themes.Names() {
		row := name
		if name == m.cfg.Theme {
			row = styleSelected.Render(name + "  (active)")
		}
		if i == m.themeCursor {
			out += styleCursor.Render("> ") + row + "\n"
		} else {
			out += "  " + row + "\n"
		}
	}
	return out
}

func (m Model) renderPreviewTab() string {
	out := styleTitle.Render("Preview") + "\n\n"
	for _, line := range previewLines(m.cfg, m.registry, m.width-4) {
		out += line + "\n"
	}
	return out
}

func (m Model) listRow(index int, label string) string {
	if index == m.cursor && m.activeTab == TabWidgets {
		return styleCursor.Render("> ") + label
	}
	return "  " + label
}

// renderFooter renders the help text, save state, and status message.
func (m Model) renderFooter() string {
	help := "q: quit | tab: switch | enter: select | d: remove | s: save"

	state := ""
	if m.dirty {
		state = "  " + styleDirty.Render("unsaved changes")
	}
	if m.status != "" {
		state += "  " + m.status
	}
	return styleFooter.Width(m.width).Render(help + state)
}
