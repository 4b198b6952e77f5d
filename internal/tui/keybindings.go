package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// keyMap defines the dashboard key bindings.
type keyMap struct {
	Quit          key.Binding
	Refresh       key.Binding
	RunMonitoring key.Binding
	Dismiss       key.Binding
	ToggleHelp    key.Binding
	Close         key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "refresh"),
	),
	RunMonitoring: key.NewBinding(
		key.WithKeys("m"),
		key.WithHelp("m", "run monitoring"),
	),
	Dismiss: key.NewBinding(
		key.WithKeys("x"),
		key.WithHelp("x", "dismiss"),
	),
	ToggleHelp: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
}

// ShortHelp returns the bindings shown in the footer.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Refresh, k.RunMonitoring, k.ToggleHelp}
}

// FullHelp returns the bindings shown in the help overlay, grouped by row.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.RunMonitoring, k.Refresh},
		{k.Dismiss, k.ToggleHelp, k.Close},
		{k.Quit},
	}
}

// HandleKeyMsg processes keyboard input. Returns true if the key was handled.
//
// Anything that reaches the controller or the presenter runs inside a
// command: their change hooks call program.Send, which would block if called
// from Update.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	if key.Matches(msg, keys.ToggleHelp) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, keys.Close) {
		m.showHelp = false
		return true, nil
	}

	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return true, tea.Quit

	case key.Matches(msg, keys.Refresh):
		return true, m.refreshDataCmd()

	case key.Matches(msg, keys.RunMonitoring):
		return true, m.runMonitoringCmd()

	case key.Matches(msg, keys.Dismiss):
		return true, m.dismissCmd()
	}

	return false, nil
}
