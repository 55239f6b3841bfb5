package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	up          key.Binding
	down        key.Binding
	left        key.Binding
	right       key.Binding
	open        key.Binding
	add         key.Binding
	remove      key.Binding
	toggleRead  key.Binding
	sync        key.Binding
	copyLink    key.Binding
	toggleDebug key.Binding
	toggleHelp  key.Binding
	quit        key.Binding
	popupSubmit key.Binding
	popupClose  key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up: key.NewBinding(
			key.WithKeys("k", "up", "ctrl+p"),
			key.WithHelp("j/k", "navigate"),
		),
		down: key.NewBinding(
			key.WithKeys("j", "down", "ctrl+n"),
			key.WithHelp("j/k", "navigate"),
		),
		left: key.NewBinding(
			key.WithKeys("h", "left", "ctrl+h"),
			key.WithHelp("h/l", "switch pane"),
		),
		right: key.NewBinding(
			key.WithKeys("l", "right", "ctrl+l"),
			key.WithHelp("h/l", "switch pane"),
		),
		open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add channel"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete channel"),
		),
		toggleRead: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "toggle read"),
		),
		sync: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "sync channel"),
		),
		copyLink: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy link"),
		),
		toggleDebug: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "debug"),
		),
		toggleHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		popupSubmit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add"),
		),
		popupClose: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.down, k.right, k.open, k.add, k.toggleHelp, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.down, k.right, k.open},
		{k.add, k.remove, k.sync},
		{k.toggleRead, k.copyLink},
		{k.toggleDebug, k.toggleHelp, k.quit},
	}
}

type popupKeyMap struct {
	submit key.Binding
	close  key.Binding
}

func (k popupKeyMap) ShortHelp() []key.Binding { return []key.Binding{k.submit, k.close} }

func (k popupKeyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }
