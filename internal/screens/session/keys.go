package session

import "charm.land/bubbles/v2/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Toggle   key.Binding
	Label    key.Binding
	Submit   key.Binding
	Next     key.Binding
	Previous key.Binding
	Overview key.Binding
	Finish   key.Binding
	Quit     key.Binding
	Yes      key.Binding
	No       key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑↓", "move")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	Toggle:   key.NewBinding(key.WithKeys("space", " ", "x"), key.WithHelp("Space", "pick")),
	Label:    key.NewBinding(key.WithKeys("a", "b", "c", "d", "e", "A", "B", "C", "D", "E"), key.WithHelp("A-E", "pick")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "submit")),
	Next:     key.NewBinding(key.WithKeys("n", "right"), key.WithHelp("N", "next")),
	Previous: key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("P", "prev")),
	Overview: key.NewBinding(key.WithKeys("o"), key.WithHelp("O", "overview")),
	Finish:   key.NewBinding(key.WithKeys("f"), key.WithHelp("F", "finish")),
	Quit:     key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("Esc", "quit")),
	Yes:      key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("Y", "yes")),
	No:       key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("N", "no")),
}

func hint(b key.Binding) (string, string) {
	h := b.Help()
	return h.Key, h.Desc
}
