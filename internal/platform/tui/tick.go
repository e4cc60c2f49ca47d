// Package tui provides the Bubble Tea host for the ski arcade.
// It handles the terminal UI loop, input mapping, and screen orchestration.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick. Gen ties the tick to the
// game model that scheduled it; ticks from an older loop are dropped.
type TickMsg struct {
	Time time.Time
	Gen  uint64
}

var tickGenerations atomic.Uint64

// nextTickGen returns a fresh tick loop generation.
func nextTickGen() uint64 {
	return tickGenerations.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, gen uint64) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Gen: gen}
	})
}
