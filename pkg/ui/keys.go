package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	Quit        key.Binding
	Help        key.Binding
	NextPane    key.Binding
	PrevPane    key.Binding
	Up          key.Binding
	Down        key.Binding
	PrevTeam    key.Binding
	NextTeam    key.Binding
	Select      key.Binding
	Remove      key.Binding
	Restructure key.Binding
	PostJune1   key.Binding
	Simulate    key.Binding
	Accept      key.Binding
	Decline     key.Binding
	Search      key.Binding
	Escape      key.Binding
	Reset       key.Binding
	ClearErrors key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		NextPane:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next pane")),
		PrevPane:    key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev pane")),
		Up:          key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:        key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		PrevTeam:    key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev team")),
		NextTeam:    key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next team")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "stage/load")),
		Remove:      key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "unstage")),
		Restructure: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "restructure")),
		PostJune1:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "post-June-1")),
		Simulate:    key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "simulate")),
		Accept:      key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "accept counter")),
		Decline:     key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "decline counter")),
		Search:      key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Escape:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "leave search")),
		Reset:       key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
		ClearErrors: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "clear errors")),
	}
}

// ShortHelp returns keybindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPane, k.Select, k.Simulate, k.Search, k.Help, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPane, k.PrevPane, k.Up, k.Down, k.PrevTeam, k.NextTeam},
		{k.Select, k.Remove, k.Restructure, k.PostJune1, k.Reset},
		{k.Simulate, k.Accept, k.Decline, k.Search, k.Escape},
		{k.ClearErrors, k.Help, k.Quit},
	}
}
