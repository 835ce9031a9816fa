package core

// Action is a semantic player intent, abstracted from physical keys.
// Each action corresponds to one client message in the bomber protocol.
type Action int

const (
	ActionNone      Action = iota
	ActionMoveUp           // W, Up arrow
	ActionMoveDown         // S, Down arrow
	ActionMoveLeft         // A, Left arrow
	ActionMoveRight        // D, Right arrow
	ActionPlaceBomb        // Space
	ActionReady            // Enter, activates the ready control
	ActionQuit             // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionMoveUp:
		return "Up"
	case ActionMoveDown:
		return "Down"
	case ActionMoveLeft:
		return "Left"
	case ActionMoveRight:
		return "Right"
	case ActionPlaceBomb:
		return "PlaceBomb"
	case ActionReady:
		return "Ready"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// IsMove reports whether the action is one of the four movement intents.
func (a Action) IsMove() bool {
	return a >= ActionMoveUp && a <= ActionMoveRight
}

// ParseAction maps a wire token to an action. The game server understands
// "w", "a", "s", "d" and "space".
func ParseAction(token string) Action {
	switch token {
	case "w":
		return ActionMoveUp
	case "a":
		return ActionMoveLeft
	case "s":
		return ActionMoveDown
	case "d":
		return ActionMoveRight
	case "space":
		return ActionPlaceBomb
	case "ready":
		return ActionReady
	default:
		return ActionNone
	}
}
