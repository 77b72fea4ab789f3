package core

// Key codes shared by the renderer and the game configuration.
// Arrow codes are the values existing configuration files store for the
// arrow keys; printable keys use their rune value.
const (
	NoKey        = -1 // Input wait timed out without a key press
	KeyBackspace = 8
	KeyTab       = 9
	KeyEnter     = 13
	KeyEscape    = 27
	KeySpace     = ' '
	KeyLeft      = 81
	KeyUp        = 82
	KeyRight     = 83
	KeyDown      = 84
	KeyQuit      = 'q'
)

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the engine to work with high-level intents rather than raw codes.
type Action int

const (
	ActionNone  Action = iota
	ActionLeft         // Step the player left
	ActionRight        // Step the player right
	ActionQuit         // End the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyBindings maps configured key codes to actions.
// The codes are opaque integers; they are only compared, never interpreted.
type KeyBindings struct {
	Left  int
	Right int
	Quit  int
}

// DefaultKeyBindings returns arrow keys for movement and 'q' to quit.
func DefaultKeyBindings() KeyBindings {
	return KeyBindings{Left: KeyLeft, Right: KeyRight, Quit: KeyQuit}
}

// Action resolves a key code. Unbound codes and NoKey map to ActionNone.
func (k KeyBindings) Action(code int) Action {
	if code == NoKey {
		return ActionNone
	}
	switch code {
	case k.Left:
		return ActionLeft
	case k.Right:
		return ActionRight
	case k.Quit:
		return ActionQuit
	}
	return ActionNone
}
