package board

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Left, Right   key.Binding
	Up, Down      key.Binding
	Forward, Back key.Binding
	Raise, Lower  key.Binding
	Add, Edit     key.Binding
	Delete, Undo  key.Binding
	Help, Quit    key.Binding

	// input mode
	Submit, Cancel key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev column")),
		Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next column")),
		Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Forward: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "advance")),
		Back:    key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move back")),
		Raise:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "raise priority")),
		Lower:   key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "lower priority")),
		Add:     key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:    key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Undo:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "undo")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:    key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),

		Submit: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Forward, k.Back, k.Add, k.Delete, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down},
		{k.Forward, k.Back, k.Raise, k.Lower},
		{k.Add, k.Edit, k.Delete, k.Undo},
		{k.Help, k.Quit},
	}
}
