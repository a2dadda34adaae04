package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Add       key.Binding
	Edit      key.Binding
	Toggle    key.Binding
	Delete    key.Binding
	Image     key.Binding
	Filter    key.Binding
	All       key.Binding
	Pending   key.Binding
	Completed key.Binding
	SignOut   key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Image:     key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "image")),
		Filter:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "filter")),
		All:       key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "all")),
		Pending:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "pending")),
		Completed: key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "completed")),
		SignOut:   key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "sign out")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) short() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Image, k.Filter}
}

func (k keyMap) full() []key.Binding {
	return []key.Binding{k.Add, k.Edit, k.Toggle, k.Delete, k.Image, k.Filter, k.All, k.Pending, k.Completed, k.SignOut}
}
