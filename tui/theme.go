package tui

import "github.com/charmbracelet/lipgloss"

// Color palette for the config editor theme.
const (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorAccent  = lipgloss.Color("#06B6D4") // Cyan
	colorOK      = lipgloss.Color("#22C55E") // Green
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

// Styles used throughout the editor.
var (
	styleActiveTab   lipgloss.Style
	styleInactiveTab lipgloss.Style
	styleHeader      lipgloss.Style
	styleFooter      lipgloss.Style
	styleContent     lipgloss.Style
	styleTitle       lipgloss.Style
	styleCursor      lipgloss.Style
	styleSelected    lipgloss.Style
	styleDirty       lipgloss.Style
)

func init() {
	styleActiveTab = lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF")).
		Background(colorPrimary).
		Padding(0, 2)

	styleInactiveTab = lipgloss.NewStyle().
		Foreground(colorMuted).
		Padding(0, 2)

	styleHeader = lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderBottom(true).
		BorderForeground(colorMuted).
		MarginBottom(1)

	styleFooter = lipgloss.NewStyle().
		Foreground(colorMuted).
		MarginTop(1)

	styleContent = lipgloss.NewStyle().
		Padding(1, 2)

	styleTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent)

	styleCursor = lipgloss.NewStyle().
		Bold(true).
		Foreground(colorAccent)

	styleSelected = lipgloss.NewStyle().
		Foreground(colorOK)

	styleDirty = lipgloss.NewStyle().
		Foreground(lipgloss.Color("#EAB308"))
}
