package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Status   key.Binding
	Priority key.Binding
	Recent   key.Binding
	Complete key.Binding
	Start    key.Binding
	Reload   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
		Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k", "up")),
		Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j", "down")),
		Status:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "cycle status filter")),
		Priority: key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle priority filter")),
		Recent:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "toggle recent view")),
		Complete: key.NewBinding(key.WithKeys("x", " "), key.WithHelp("x", "toggle completed")),
		Start:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "start")),
		Reload:   key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reload")),
	}
}
