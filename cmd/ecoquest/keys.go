package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	StartMission  key.Binding
	Quiz          key.Binding
	Reforestation key.Binding
	Recycling     key.Binding
	Answer        key.Binding
	Dismiss       key.Binding
	NextSection   key.Binding
	PrevSection   key.Binding
	Register      key.Binding
	LearnMore     key.Binding
	Copy          key.Binding
	Quit          key.Binding
}

// answerKeys maps quiz option keys to option indexes.
var answerKeys = map[string]int{"a": 0, "b": 1, "c": 2, "d": 3}

func newKeyMap() keyMap {
	return keyMap{
		StartMission:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "start mission")),
		Quiz:          key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "eco quiz")),
		Reforestation: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "reforestation")),
		Recycling:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "recycling")),
		Answer:        key.NewBinding(key.WithKeys("a", "b", "c", "d"), key.WithHelp("a-d", "answer")),
		Dismiss:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close quiz")),
		NextSection:   key.NewBinding(key.WithKeys("tab", "right"), key.WithHelp("tab", "next section")),
		PrevSection:   key.NewBinding(key.WithKeys("shift+tab", "left"), key.WithHelp("shift+tab", "prev section")),
		Register:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "register")),
		LearnMore:     key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "learn more")),
		Copy:          key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy score")),
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) mainHelp() []key.Binding {
	return []key.Binding{k.StartMission, k.Quiz, k.Reforestation, k.Recycling, k.NextSection, k.Copy, k.Quit}
}

func (k keyMap) quizHelp() []key.Binding {
	return []key.Binding{k.Answer, k.Dismiss, k.Quit}
}
