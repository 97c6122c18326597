package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	prevPage   key.Binding
	nextPage   key.Binding
	enter      key.Binding
	back       key.Binding
	filter     key.Binding
	search     key.Binding
	developers key.Binding
	refresh    key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		prevPage:   key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		nextPage:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		filter:     key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "genre")),
		search:     key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		developers: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "developers")),
		refresh:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.prevPage, k.nextPage, k.back},
		{k.filter, k.search, k.developers},
		{k.refresh, k.quit},
	}
}
