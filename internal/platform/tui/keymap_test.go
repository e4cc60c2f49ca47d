package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/ski-arcade/internal/core"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"a steers left", runeKey('a'), core.ActionSteerLeft, false},
		{"left arrow", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionSteerLeft, false},
		{"d steers right", runeKey('d'), core.ActionSteerRight, false},
		{"right arrow", tea.KeyMsg{Type: tea.KeyRight}, core.ActionSteerRight, false},
		{"enter starts", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart, false},
		{"space starts", tea.KeyMsg{Type: tea.KeySpace}, core.ActionStart, false},
		{"esc goes back", tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack, false},
		{"r resets", runeKey('r'), core.ActionReset, false},
		{"c toggles camera", runeKey('c'), core.ActionToggleCamera, false},
		{"f1 toggles debug", tea.KeyMsg{Type: tea.KeyF1}, core.ActionToggleDebug, false},
		{"p pauses", runeKey('p'), core.ActionPause, false},
		{"q quits", runeKey('q'), core.ActionQuit, true},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey('z'), core.ActionNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; expected %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToMenuAction(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want MenuAction
	}{
		{tea.KeyMsg{Type: tea.KeyUp}, MenuActionUp},
		{runeKey('k'), MenuActionUp},
		{tea.KeyMsg{Type: tea.KeyDown}, MenuActionDown},
		{runeKey('j'), MenuActionDown},
		{tea.KeyMsg{Type: tea.KeyEnter}, MenuActionSelect},
		{tea.KeyMsg{Type: tea.KeyEsc}, MenuActionBack},
		{runeKey('q'), MenuActionQuit},
		{runeKey('x'), MenuActionNone},
	}
	for _, tt := range tests {
		if got := km.MapKeyToMenuAction(tt.msg); got != tt.want {
			t.Errorf("MapKeyToMenuAction(%q) = %v, expected %v", tt.msg.String(), got, tt.want)
		}
	}
}

func TestSteerLatch(t *testing.T) {
	hold := holdTicks(60)
	if hold != 15 {
		t.Fatalf("holdTicks(60) = %d, expected 15", hold)
	}

	var latch steerLatch
	latch.press(core.ActionSteerLeft, hold)
	for i := 0; i < hold; i++ {
		frame := core.NewInputFrame()
		latch.apply(&frame)
		if !frame.Has(core.ActionSteerLeft) {
			t.Fatalf("tick %d: steering released early", i)
		}
	}
	frame := core.NewInputFrame()
	latch.apply(&frame)
	if frame.Has(core.ActionSteerLeft) {
		t.Error("steering should release after the hold")
	}

	latch.press(core.ActionSteerLeft, hold)
	latch.press(core.ActionSteerRight, hold)
	frame = core.NewInputFrame()
	latch.apply(&frame)
	if frame.Has(core.ActionSteerLeft) || !frame.Has(core.ActionSteerRight) {
		t.Error("opposite press should replace the latched direction")
	}
}
