package viz

import "github.com/charmbracelet/bubbles/key"

// PlayKeyMap is the key bindings of the play screen.
type PlayKeyMap struct {
	Hit    key.Binding
	Pause  key.Binding
	Next   key.Binding
	Faster key.Binding
	Slower key.Binding
	Theme  key.Binding
	Quit   key.Binding
}

func (k PlayKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Hit, k.Pause, k.Next, k.Faster, k.Slower, k.Theme, k.Quit}
}

func (k PlayKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Hit, k.Pause, k.Next},
		{k.Faster, k.Slower, k.Theme, k.Quit},
	}
}

// DefaultPlayKeyMap returns the default bindings. Hit is disabled when a
// policy is playing.
func DefaultPlayKeyMap(manual bool) PlayKeyMap {
	k := PlayKeyMap{
		Hit: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hit"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Next: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "next episode"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "_"),
			key.WithHelp("-", "slower"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
	k.Hit.SetEnabled(manual)
	return k
}
