package editor

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the editor's key bindings.
type KeyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Left   key.Binding
	Right  key.Binding
	Reset  key.Binding
	Render key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the standard bindings. Printable keys are left free
// for the text fields.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next:   key.NewBinding(key.WithKeys("down", "tab"), key.WithHelp("↓/tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("up", "shift+tab"), key.WithHelp("↑/shift+tab", "previous field")),
		Left:   key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous option")),
		Right:  key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
		Reset:  key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset accent to theme")),
		Render: key.NewBinding(key.WithKeys("ctrl+s", "enter"), key.WithHelp("enter", "render")),
		Quit:   key.NewBinding(key.WithKeys("esc", "ctrl+c"), key.WithHelp("esc", "quit")),
	}
}

func (k KeyMap) help() []key.Binding {
	return []key.Binding{k.Next, k.Left, k.Right, k.Reset, k.Render, k.Quit}
}
