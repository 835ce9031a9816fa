package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// LobbyKeyMap defines the key bindings for the lobby.
type LobbyKeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding
	Bomb  key.Binding
	Ready key.Binding
	Help  key.Binding
	Quit  key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LobbyKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Bomb, k.Ready, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LobbyKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Bomb, k.Ready},
		{k.Help, k.Quit},
	}
}

// DefaultLobbyKeyMap returns default key bindings.
// w/a/s/d and space match the tokens the game server understands.
func DefaultLobbyKeyMap() LobbyKeyMap {
	return LobbyKeyMap{
		Up: key.NewBinding(
			key.WithKeys("w", "up"),
			key.WithHelp("w/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("s", "down"),
			key.WithHelp("s/↓", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("a", "left"),
			key.WithHelp("a/←", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("d", "right"),
			key.WithHelp("d/→", "right"),
		),
		Bomb: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "bomb"),
		),
		Ready: key.NewBinding(
			key.WithKeys("enter", "r"),
			key.WithHelp("enter", "ready"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a game action.
// Help and unbound keys yield ActionNone.
func (k LobbyKeyMap) Action(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Up):
		return core.ActionMoveUp
	case key.Matches(msg, k.Down):
		return core.ActionMoveDown
	case key.Matches(msg, k.Left):
		return core.ActionMoveLeft
	case key.Matches(msg, k.Right):
		return core.ActionMoveRight
	case key.Matches(msg, k.Bomb):
		return core.ActionPlaceBomb
	case key.Matches(msg, k.Ready):
		return core.ActionReady
	}
	return core.ActionNone
}
