package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows games to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionUp             // W, Up arrow
	ActionDown           // S, Down arrow
	ActionLeft           // A, Left arrow
	ActionRight          // D, Right arrow
	ActionBomb           // Space - place a bomb / primary action
	ActionConfirm        // Enter - confirm selection in menu
	ActionBack           // B, Escape - go back to menu
	ActionRestart        // R key - restart game after game over
	ActionQuit           // Q, Ctrl+C - exit game/session
	ActionPause          // P - pause/unpause game
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
	case ActionBomb:
		return "Bomb"
	case ActionConfirm:
		return "Confirm"
	case ActionBack:
		return "Back"
	case ActionRestart:
		return "Restart"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// ParseAction is the inverse of Action.String (case sensitive).
func ParseAction(s string) (Action, bool) {
	for a := ActionUp; a <= ActionPause; a++ {
		if a.String() == s {
			return a, true
		}
	}
	return ActionNone, false
}

// PlayerID identifies a side in a match.
// Player1 is always the local human player, Player2 can be CPU or remote player.
type PlayerID int

const (
	PlayerNone PlayerID = iota
	Player1
	Player2
)

// InputFrame represents the input state for a single player during one simulation tick.
//
// Pressed holds actions whose key went down during this frame; Held holds
// actions whose key is considered down. Grid movement reads Pressed so a
// key moves one cell per press, paddles read Has so they keep moving while
// the key is down.
type InputFrame struct {
	Pressed map[Action]bool
	Held    map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Pressed: make(map[Action]bool),
		Held:    make(map[Action]bool),
	}
}

// Set marks an action as pressed (and therefore held) for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Pressed == nil {
		f.Pressed = make(map[Action]bool)
	}
	f.Pressed[a] = true
	f.Hold(a)
}

// Hold marks an action as held without a new press.
func (f *InputFrame) Hold(a Action) {
	if f.Held == nil {
		f.Held = make(map[Action]bool)
	}
	f.Held[a] = true
}

// Has returns true if the action is pressed or held this frame.
func (f InputFrame) Has(a Action) bool {
	return f.Pressed[a] || f.Held[a]
}

// JustPressed returns true only if the key went down this frame.
func (f InputFrame) JustPressed(a Action) bool {
	return f.Pressed[a]
}

// Empty reports whether no action is set.
func (f InputFrame) Empty() bool {
	return len(f.Pressed) == 0 && len(f.Held) == 0
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Pressed {
		delete(f.Pressed, k)
	}
	for k := range f.Held {
		delete(f.Held, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Pressed {
		clone.Pressed[k] = v
	}
	for k, v := range f.Held {
		clone.Held[k] = v
	}
	return clone
}
