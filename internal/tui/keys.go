package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit        key.Binding
	Back        key.Binding
	Help        key.Binding
	Dashboard   key.Binding
	Sensitivity key.Binding
	Optimize    key.Binding
	RateUp      key.Binding
	RateDown    key.Binding
	RateReset   key.Binding
	Reload      key.Binding
}

var keys = keyMap{
	Quit:        key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Dashboard:   key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "goals")),
	Sensitivity: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "sensitivity")),
	Optimize:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "allocate")),
	RateUp:      key.NewBinding(key.WithKeys("right", "l", "+"), key.WithHelp("→", "rate +0.25")),
	RateDown:    key.NewBinding(key.WithKeys("left", "h", "-"), key.WithHelp("←", "rate -0.25")),
	RateReset:   key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "reset rate")),
	Reload:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
}

// statusBindings are the shortcuts listed in the status bar
func (k keyMap) statusBindings() []key.Binding {
	return []key.Binding{k.Dashboard, k.Sensitivity, k.Optimize, k.RateDown, k.RateUp, k.RateReset, k.Reload, k.Help, k.Quit}
}
