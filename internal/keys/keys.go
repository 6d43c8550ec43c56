// Package keys contains keybinding definitions.
package keys

import "github.com/charmbracelet/bubbles/key"

// EditorKeyMap defines the editor keybindings. Bindings that also have a
// plain-editing meaning (up, down, enter, tab) act on the completion popup
// only while it is open.
type EditorKeyMap struct {
	// Popup
	Up       key.Binding
	Down     key.Binding
	Commit   key.Binding
	Cancel   key.Binding
	Complete key.Binding

	// Cursor
	Left  key.Binding
	Right key.Binding
	Home  key.Binding
	End   key.Binding

	// Editing
	Newline   key.Binding
	Tab       key.Binding
	Backspace key.Binding
	Delete    key.Binding

	// General
	Save          key.Binding
	TogglePreview key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// Editor holds the default editor keybindings.
var Editor = EditorKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑/ctrl+p", "previous"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓/ctrl+n", "next"),
	),
	Commit: key.NewBinding(
		key.WithKeys("enter", "tab"),
		key.WithHelp("enter/tab", "insert"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc", "ctrl+c"),
		key.WithHelp("esc/ctrl+c", "dismiss"),
	),
	Complete: key.NewBinding(
		key.WithKeys("ctrl+@"),
		key.WithHelp("ctrl+space", "complete"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "ctrl+b"),
		key.WithHelp("←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "ctrl+f"),
		key.WithHelp("→", "right"),
	),
	Home: key.NewBinding(
		key.WithKeys("home", "ctrl+a"),
		key.WithHelp("home", "line start"),
	),
	End: key.NewBinding(
		key.WithKeys("end", "ctrl+e"),
		key.WithHelp("end", "line end"),
	),
	Newline: key.NewBinding(
		key.WithKeys("enter"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
	),
	Backspace: key.NewBinding(
		key.WithKeys("backspace"),
	),
	Delete: key.NewBinding(
		key.WithKeys("delete", "ctrl+d"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	TogglePreview: key.NewBinding(
		key.WithKeys("ctrl+t"),
		key.WithHelp("ctrl+t", "preview"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1"),
		key.WithHelp("f1", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("ctrl+x"),
		key.WithHelp("ctrl+x", "quit"),
	),
}

// ShortHelp returns keybindings for the short help view.
func (k EditorKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Complete, k.Save, k.TogglePreview, k.Help, k.Quit}
}

// FullHelp returns keybindings for the full help view.
func (k EditorKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Commit, k.Cancel, k.Complete},
		{k.Left, k.Right, k.Home, k.End},
		{k.Save, k.TogglePreview, k.Help, k.Quit},
	}
}
