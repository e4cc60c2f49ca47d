package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ski-arcade/internal/core"
)

// SteerHold is how long one steering key press keeps carving. Terminals only
// report key presses and auto-repeat, never releases.
const SteerHold = 250 * time.Millisecond

// KeyMapper translates Bubble Tea key messages to game actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to a game action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case "a", "left", "h":
		return core.ActionSteerLeft, false
	case "d", "right", "l":
		return core.ActionSteerRight, false
	case "enter", " ":
		return core.ActionStart, false
	case "b", "esc":
		return core.ActionBack, false
	case "r":
		return core.ActionReset, false
	case "c":
		return core.ActionToggleCamera, false
	case "f1", "`":
		return core.ActionToggleDebug, false
	case "p":
		return core.ActionPause, false
	}
	return core.ActionNone, false
}

// MenuAction represents a menu-specific action derived from input.
type MenuAction int

const (
	MenuActionNone MenuAction = iota
	MenuActionUp
	MenuActionDown
	MenuActionSelect
	MenuActionBack
	MenuActionQuit
)

// MapKeyToMenuAction translates a key to a menu action.
func (km *KeyMapper) MapKeyToMenuAction(msg tea.KeyMsg) MenuAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return MenuActionQuit
	case "w", "up", "k": // vim-style k for up
		return MenuActionUp
	case "s", "down", "j": // vim-style j for down
		return MenuActionDown
	case "enter", " ":
		return MenuActionSelect
	case "b", "esc":
		return MenuActionBack
	}
	return MenuActionNone
}

// steerLatch turns discrete key presses into held steering for a few ticks.
type steerLatch struct {
	action core.Action
	left   int // ticks of steering remaining
}

// press latches a steering action for hold ticks. The opposite direction
// replaces the current one immediately.
func (s *steerLatch) press(a core.Action, hold int) {
	s.action = a
	s.left = hold
}

// apply sets the latched action on frame and counts down one tick.
func (s *steerLatch) apply(frame *core.InputFrame) {
	if s.left <= 0 {
		return
	}
	frame.Set(s.action)
	s.left--
}

// holdTicks converts SteerHold into ticks at the given rate.
func holdTicks(tickRate int) int {
	if tickRate <= 0 {
		tickRate = 60
	}
	return max(1, int(SteerHold.Seconds()*float64(tickRate)))
}
