package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// BuilderKeyMap defines key bindings for the level builder.
type BuilderKeyMap struct {
	Toggle   key.Binding
	Generate key.Binding
	Save     key.Binding
	Upload   key.Binding
	Edit     key.Binding
	Next     key.Binding
	Done     key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// ShortHelp returns keybindings to show in the mini help view.
func (k BuilderKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Generate, k.Save, k.Upload, k.Edit, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k BuilderKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Generate},
		{k.Save, k.Upload},
		{k.Edit, k.Next, k.Done},
		{k.Help, k.Quit},
	}
}

// DefaultBuilderKeyMap returns the default key bindings.
func DefaultBuilderKeyMap() BuilderKeyMap {
	return BuilderKeyMap{
		Toggle: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "toggle feature"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g", "enter"),
			key.WithHelp("g", "generate"),
		),
		Save: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "save"),
		),
		Upload: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "upload"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "tab"),
			key.WithHelp("e", "edit fields"),
		),
		Next: key.NewBinding(
			key.WithKeys("tab", "down"),
			key.WithHelp("tab", "next field"),
		),
		Done: key.NewBinding(
			key.WithKeys("esc", "enter"),
			key.WithHelp("esc", "done editing"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// featureForKey maps the number keys to features in catalogue order.
func featureForKey(k string) (int, bool) {
	if len(k) != 1 || k[0] < '1' || k[0] > '8' {
		return 0, false
	}
	return int(k[0] - '1'), true
}
