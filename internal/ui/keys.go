package ui

import (
	"github.com/charmbracelet/bubbles/key"
)

// keyMap holds the key bindings of the gallery view
type keyMap struct {
	SelectAll key.Binding
	Cancel    key.Binding
	Move      key.Binding
	Trash     key.Binding
	Favorite  key.Binding
	Copy      key.Binding
	Page      key.Binding
	Rescan    key.Binding
	ScrollUp  key.Binding
	ScrollDn  key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		SelectAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "select all")),
		Cancel:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear")),
		Move:      key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move")),
		Trash:     key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "trash")),
		Favorite:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "favorite")),
		Copy:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy paths")),
		Page:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "list selection")),
		Rescan:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "rescan")),
		ScrollUp:  key.NewBinding(key.WithKeys("up", "k", "pgup"), key.WithHelp("↑/k", "scroll up")),
		ScrollDn:  key.NewBinding(key.WithKeys("down", "j", "pgdown"), key.WithHelp("↓/j", "scroll down")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.SelectAll, k.Cancel, k.Move, k.Trash, k.Favorite, k.Copy, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.SelectAll, k.Cancel},
		{k.Move, k.Trash, k.Favorite, k.Copy, k.Page},
		{k.ScrollUp, k.ScrollDn, k.Rescan, k.Help, k.Quit},
	}
}
