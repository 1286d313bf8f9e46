package views

import "github.com/charmbracelet/bubbles/key"

type startKeyMap struct {
	Water key.Binding
	Quit  key.Binding
}

func (k startKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.Water, k.Quit} }

func (k startKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var startKeys = startKeyMap{
	Water: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "浇水")),
	Quit:  key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

type resultKeyMap struct {
	Save key.Binding
	Copy key.Binding
	Back key.Binding
	Quit key.Binding
}

func (k resultKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Copy, k.Back, k.Quit}
}

func (k resultKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

var resultKeys = resultKeyMap{
	Save: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "保存图片")),
	Copy: key.NewBinding(key.WithKeys("c", "y"), key.WithHelp("c", "复制")),
	Back: key.NewBinding(key.WithKeys("esc", "r", "backspace"), key.WithHelp("esc", "再来一次")),
	Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}
