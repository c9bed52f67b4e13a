package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	reload  key.Binding
	sortBy  key.Binding
	order   key.Binding
	suggest key.Binding
	remove  key.Binding
	back    key.Binding
	yes     key.Binding
	no      key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		reload:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		sortBy:  key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "sort by")),
		order:   key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "order")),
		suggest: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "suggest category")),
		remove:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		yes:     key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "yes")),
		no:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "no")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.reload, k.sortBy, k.order, k.suggest, k.remove, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down},
		{k.reload, k.sortBy, k.order},
		{k.suggest, k.remove},
		{k.back, k.yes, k.no, k.quit},
	}
}
