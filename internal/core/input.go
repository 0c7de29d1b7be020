package core

// Action represents a logical game action, abstracted from physical keys.
// Platforms map their own keys and gestures onto this fixed set; anything
// that does not map is dropped before it reaches a game.
type Action int

const (
	ActionNone    Action = iota
	ActionLeft           // Left arrow, A - move paddle left
	ActionRight          // Right arrow, D - move paddle right
	ActionLaunch         // Space - launch the docked ball
	ActionStart          // Enter - start a game
	ActionPause          // P - pause/unpause
	ActionAbandon        // Escape - abandon the game in progress
	ActionRestart        // R - restart after game over
	ActionQuit           // Q, Ctrl+C - exit
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
	case ActionLaunch:
		return "Launch"
	case ActionStart:
		return "Start"
	case ActionPause:
		return "Pause"
	case ActionAbandon:
		return "Abandon"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// EventKind distinguishes key transitions from pointer gestures.
type EventKind int

const (
	EventPress EventKind = iota
	EventRelease
	EventTap
	EventDoubleTap
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	case EventTap:
		return "tap"
	case EventDoubleTap:
		return "double-tap"
	default:
		return "unknown"
	}
}

// InputEvent is a single discrete input delivered between ticks.
// Gesture events carry ActionNone.
type InputEvent struct {
	Kind   EventKind
	Action Action
}

// Press returns a key-press event for the action.
func Press(a Action) InputEvent {
	return InputEvent{Kind: EventPress, Action: a}
}

// Release returns a key-release event for the action.
func Release(a Action) InputEvent {
	return InputEvent{Kind: EventRelease, Action: a}
}

// Tap returns a single tap gesture.
func Tap() InputEvent {
	return InputEvent{Kind: EventTap}
}

// DoubleTap returns a double tap gesture.
func DoubleTap() InputEvent {
	return InputEvent{Kind: EventDoubleTap}
}

// String formats the event for logs.
func (e InputEvent) String() string {
	if e.Action == ActionNone {
		return e.Kind.String()
	}
	return e.Kind.String() + ":" + e.Action.String()
}
