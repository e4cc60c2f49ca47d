package main

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
)

// steerScript produces the steering input for headless runs.
type steerScript struct {
	mode        string
	periodTicks int
	rng         *rand.Rand
	current     float64
}

var scriptModes = []string{"straight", "left", "right", "weave", "random", "slalom"}

// newSteerScript builds a script by name. period is the number of ticks
// between direction changes for weave and random.
func newSteerScript(mode string, periodTicks int, seed int64) (*steerScript, error) {
	mode = strings.ToLower(mode)
	known := false
	for _, m := range scriptModes {
		if m == mode {
			known = true
			break
		}
	}
	if !known {
		return nil, fmt.Errorf("unknown steer script %q (want one of %s)", mode, strings.Join(scriptModes, ", "))
	}
	if periodTicks < 1 {
		periodTicks = 1
	}
	return &steerScript{
		mode:        mode,
		periodTicks: periodTicks,
		rng:         rand.New(rand.NewSource(seed)),
	}, nil
}

// Frame returns the input for the given tick.
func (s *steerScript) Frame(tick int, ctx *sim.SimulationContext) core.InputFrame {
	frame := core.NewInputFrame()
	switch dir := s.direction(tick, ctx); {
	case dir < 0:
		frame.Set(core.ActionSteerLeft)
	case dir > 0:
		frame.Set(core.ActionSteerRight)
	}
	return frame
}

func (s *steerScript) direction(tick int, ctx *sim.SimulationContext) float64 {
	switch s.mode {
	case "left":
		return -1
	case "right":
		return 1
	case "weave":
		if (tick/s.periodTicks)%2 == 0 {
			return -1
		}
		return 1
	case "random":
		if tick%s.periodTicks == 0 {
			s.current = float64(s.rng.Intn(3) - 1)
		}
		return s.current
	case "slalom":
		return chaseGate(ctx)
	default:
		return 0
	}
}

// chaseGate steers toward the passing side of the next unvisited left or
// right gate ahead of the skier, and back to the fall line otherwise.
func chaseGate(ctx *sim.SimulationContext) float64 {
	if ctx == nil || ctx.Course == nil {
		return 0
	}
	p := ctx.Player.Position
	target := 0.0
	for i := range ctx.Course.Gates {
		g := &ctx.Course.Gates[i]
		if g.Visited || g.Position.Z <= p.Z {
			continue
		}
		if g.Type == sim.GateLeft {
			target = -2
		} else if g.Type == sim.GateRight {
			target = 2
		} else {
			continue
		}
		break
	}
	const deadband = 0.5
	switch {
	case p.X < target-deadband:
		return 1
	case p.X > target+deadband:
		return -1
	default:
		return 0
	}
}
