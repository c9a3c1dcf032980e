package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings for the config editor.
// It implements the help.KeyMap interface for bubbles/help integration.
type keyMap struct {
	Quit    key.Binding
	NextTab key.Binding
	PrevTab key.Binding
	Tab1    key.Binding
	Tab2    key.Binding
	Tab3    key.Binding
	Up      key.Binding
	Down    key.Binding
	MoveUp  key.Binding
	MoveDn  key.Binding
	Select  key.Binding
	Delete  key.Binding
	Save    key.Binding
	Help    key.Binding
}

// ShortHelp returns the compact set of keybindings shown by default in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.NextTab, k.Select, k.Save, k.Quit}
}

// FullHelp returns the expanded keybinding groups shown when help is toggled.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextTab, k.PrevTab, k.Tab1, k.Tab2, k.Tab3},
		{k.Up, k.Down, k.MoveUp, k.MoveDn, k.Select, k.Delete},
		{k.Save, k.Help, k.Quit},
	}
}

// keys holds the default key bindings used by the editor.
var keys = keyMap{
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	NextTab: key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next tab")),
	PrevTab: key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev tab")),
	Tab1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "widgets")),
	Tab2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "theme")),
	Tab3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "preview")),
	Up:      key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "move cursor up")),
	Down:    key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/dn", "move cursor down")),
	MoveUp:  key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move widget up")),
	MoveDn:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move widget down")),
	Select:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select/toggle")),
	Delete:  key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "remove widget")),
	Save:    key.NewBinding(key.WithKeys("s", "ctrl+s"), key.WithHelp("s", "save config")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
}
