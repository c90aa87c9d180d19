package monitor

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/HamzaOussama/plantX/internal/api"
)

// KeyMap holds the dashboard key bindings.
type KeyMap struct {
	Water     key.Binding
	LightOn   key.Binding
	Reset     key.Binding
	AutoWater key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Water: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", api.CommandWater.Label()),
		),
		LightOn: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", api.CommandLightOn.Label()),
		),
		Reset: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", api.CommandReset.Label()),
		),
		AutoWater: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Toggle auto watering"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "Force refresh"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Close help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "Quit"),
		),
	}
}

// ShortHelp implements help.KeyMap for the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Water, k.LightOn, k.Reset, k.AutoWater, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap for the overlay.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Water, k.LightOn, k.Reset},
		{k.AutoWater, k.Refresh},
		{k.Help, k.Close, k.Quit},
	}
}

// setCommandsEnabled toggles the dispatch bindings. Disabled bindings never
// match and are hidden from the footer.
func (k *KeyMap) setCommandsEnabled(enabled bool) {
	k.Water.SetEnabled(enabled)
	k.LightOn.SetEnabled(enabled)
	k.Reset.SetEnabled(enabled)
}

// commandFor maps a key to the command it dispatches.
func (k KeyMap) commandFor(msg tea.KeyMsg) (api.Command, bool) {
	switch {
	case key.Matches(msg, k.Water):
		return api.CommandWater, true
	case key.Matches(msg, k.LightOn):
		return api.CommandLightOn, true
	case key.Matches(msg, k.Reset):
		return api.CommandReset, true
	}
	return "", false
}

// HandleKeyMsg processes keyboard input and returns updated model state and command.
// Returns true if the key was handled, false otherwise.
func (m *Model) HandleKeyMsg(msg tea.KeyMsg) (bool, tea.Cmd) {
	// Help toggle takes priority
	if key.Matches(msg, m.keys.Help) {
		m.showHelp = !m.showHelp
		return true, nil
	}

	if m.showHelp && key.Matches(msg, m.keys.Close) {
		m.showHelp = false
		return true, nil
	}

	if cmd, ok := m.keys.commandFor(msg); ok {
		return true, m.dispatch(cmd)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return true, m.quit()

	case key.Matches(msg, m.keys.Refresh):
		return true, m.fetchCmd()

	case key.Matches(msg, m.keys.AutoWater):
		on := m.state.ToggleAutoWater()
		m.log.Debug("auto watering set to %t", on)
		return true, nil
	}

	return false, nil
}
