package core

// Action represents a semantic request from the input source, abstracted
// from physical key presses. Drivers translate keys into actions and then
// into engine calls.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // Arrow up, W
	ActionDown           // Arrow down, S
	ActionLeft           // Arrow left, A
	ActionRight          // Arrow right, D
	ActionConfirm        // Enter, Space - start a session / toggle pause
	ActionPause          // P, Escape - pause/resume
	ActionReset          // R - discard the session and return to the welcome screen
	ActionHistory        // Tab - toggle the history modal
	ActionQuit           // Q, Ctrl+C
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionUp:
		return "Up"
	case ActionDown:
		return "Down"
	case ActionLeft:
		return "Left"
	case ActionRight:
		return "Right"
	case ActionConfirm:
		return "Confirm"
	case ActionPause:
		return "Pause"
	case ActionReset:
		return "Reset"
	case ActionHistory:
		return "History"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Direction maps a steering action to its direction.
// ok is false for actions that do not steer.
func (a Action) Direction() (d Direction, ok bool) {
	switch a {
	case ActionUp:
		return DirUp, true
	case ActionDown:
		return DirDown, true
	case ActionLeft:
		return DirLeft, true
	case ActionRight:
		return DirRight, true
	default:
		return DirRight, false
	}
}
