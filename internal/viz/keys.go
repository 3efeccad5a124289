package viz

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit     key.Binding
	Pause    key.Binding
	Help     key.Binding
	Theme    key.Binding
	Globe    key.Binding
	Snapshot key.Binding
	Clear    key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	In       key.Binding
	Out      key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Pause: key.NewBinding(
		key.WithKeys(" "),
		key.WithHelp("space", "pause"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Theme: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "theme"),
	),
	Globe: key.NewBinding(
		key.WithKeys("g"),
		key.WithHelp("g", "globe"),
	),
	Snapshot: key.NewBinding(
		key.WithKeys("s"),
		key.WithHelp("s", "snapshot"),
	),
	Clear: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "clear hover"),
	),
	Left: key.NewBinding(
		key.WithKeys("left", "h"),
		key.WithHelp("←/h", "orbit left"),
	),
	Right: key.NewBinding(
		key.WithKeys("right", "l"),
		key.WithHelp("→/l", "orbit right"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "orbit up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "orbit down"),
	),
	In: key.NewBinding(
		key.WithKeys("+", "="),
		key.WithHelp("+", "dolly in"),
	),
	Out: key.NewBinding(
		key.WithKeys("-", "_"),
		key.WithHelp("-", "dolly out"),
	),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.Up, k.Down, k.In, k.Out, k.Clear},
		{k.Pause, k.Theme, k.Globe, k.Snapshot, k.Help, k.Quit},
	}
}
