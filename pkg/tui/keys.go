package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the global bindings. Everything else goes to the focused
// widget.
type keyMap struct {
	Next     key.Binding
	Prev     key.Binding
	Expand   key.Binding
	Collapse key.Binding
	Help     key.Binding
	Search   key.Binding
	Theme    key.Binding
	Quit     key.Binding
	ForceQ   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
		Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous panel")),
		Expand:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "expand/collapse")),
		Collapse: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "collapse/close")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter panels")),
		Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next theme")),
		Quit:     key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		ForceQ:   key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Expand, k.Help, k.Search, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Expand, k.Collapse},
		{k.Help, k.Search, k.Theme, k.Quit},
		widgetBindings,
	}
}

// widgetBindings documents the keys the built-in panels understand.
var widgetBindings = []key.Binding{
	key.NewBinding(key.WithKeys("0"), key.WithHelp("0-9 ↑ ↓", "edit user count")),
	key.NewBinding(key.WithKeys("t"), key.WithHelp("t/space", "hide/show clock")),
	key.NewBinding(key.WithKeys("i"), key.WithHelp("i/+", "prepend to list")),
}
