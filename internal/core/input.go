package core

// Action represents a semantic game action, abstracted from physical key presses.
// This allows the simulation to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone         Action = iota
	ActionSteerLeft           // A, Left arrow - carve toward -X
	ActionSteerRight          // D, Right arrow - carve toward +X
	ActionStart               // Enter, Space - start a run from the menu
	ActionBack                // Escape, B - abandon the run and return to menu
	ActionReset               // R - restart the run immediately
	ActionToggleCamera        // C - switch first/third person view
	ActionToggleDebug         // F1 - debug overlay
	ActionQuit                // Q, Ctrl+C - exit game/session
	ActionPause               // P - pause/unpause
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionSteerLeft:
		return "SteerLeft"
	case ActionSteerRight:
		return "SteerRight"
	case ActionStart:
		return "Start"
	case ActionBack:
		return "Back"
	case ActionReset:
		return "Reset"
	case ActionToggleCamera:
		return "ToggleCamera"
	case ActionToggleDebug:
		return "ToggleDebug"
	case ActionQuit:
		return "Quit"
	case ActionPause:
		return "Pause"
	default:
		return "Unknown"
	}
}

// InputFrame represents the player's input for a single simulation tick.
type InputFrame struct {
	// Actions maps action types to whether they were triggered this frame.
	Actions map[Action]bool
}

// NewInputFrame creates an empty input frame.
func NewInputFrame() InputFrame {
	return InputFrame{
		Actions: make(map[Action]bool),
	}
}

// Set marks an action as triggered for this frame.
func (f *InputFrame) Set(a Action) {
	if f.Actions == nil {
		f.Actions = make(map[Action]bool)
	}
	f.Actions[a] = true
}

// Has returns true if the given action was triggered this frame.
func (f InputFrame) Has(a Action) bool {
	if f.Actions == nil {
		return false
	}
	return f.Actions[a]
}

// Steer collapses the steering actions into an intent in {-1, 0, +1}.
// Holding both directions cancels out.
func (f InputFrame) Steer() float64 {
	var s float64
	if f.Has(ActionSteerLeft) {
		s--
	}
	if f.Has(ActionSteerRight) {
		s++
	}
	return s
}

// Clear resets all actions for the next frame.
func (f *InputFrame) Clear() {
	for k := range f.Actions {
		delete(f.Actions, k)
	}
}

// Clone creates a copy of this input frame.
func (f InputFrame) Clone() InputFrame {
	clone := NewInputFrame()
	for k, v := range f.Actions {
		clone.Actions[k] = v
	}
	return clone
}
