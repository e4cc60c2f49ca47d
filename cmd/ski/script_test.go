package main

import (
	"testing"

	"github.com/vovakirdan/ski-arcade/internal/core"
	"github.com/vovakirdan/ski-arcade/internal/games/ski/sim"
)

func TestNewSteerScriptRejectsUnknown(t *testing.T) {
	if _, err := newSteerScript("zigzag", 10, 1); err == nil {
		t.Fatal("expected error for unknown script")
	}
	if _, err := newSteerScript("WEAVE", 10, 1); err != nil {
		t.Fatalf("mode should be case-insensitive: %v", err)
	}
}

func TestSteerScriptFixedModes(t *testing.T) {
	tests := []struct {
		mode  string
		left  bool
		right bool
	}{
		{"straight", false, false},
		{"left", true, false},
		{"right", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			s, err := newSteerScript(tt.mode, 10, 1)
			if err != nil {
				t.Fatal(err)
			}
			for tick := 0; tick < 50; tick++ {
				f := s.Frame(tick, nil)
				if f.Has(core.ActionSteerLeft) != tt.left || f.Has(core.ActionSteerRight) != tt.right {
					t.Fatalf("tick %d: got left=%v right=%v", tick, f.Has(core.ActionSteerLeft), f.Has(core.ActionSteerRight))
				}
			}
		})
	}
}

func TestSteerScriptWeave(t *testing.T) {
	s, err := newSteerScript("weave", 5, 1)
	if err != nil {
		t.Fatal(err)
	}
	for tick := 0; tick < 20; tick++ {
		want := (tick/5)%2 == 0
		if got := s.Frame(tick, nil).Has(core.ActionSteerLeft); got != want {
			t.Errorf("tick %d: left = %v, want %v", tick, got, want)
		}
	}
}

func TestSteerScriptRandomDeterministic(t *testing.T) {
	a, _ := newSteerScript("random", 3, 42)
	b, _ := newSteerScript("random", 3, 42)
	for tick := 0; tick < 100; tick++ {
		if a.Frame(tick, nil).Steer() != b.Frame(tick, nil).Steer() {
			t.Fatalf("tick %d: scripts diverged", tick)
		}
	}
}

func TestChaseGate(t *testing.T) {
	ctx := &sim.SimulationContext{
		Course: &sim.Course{Gates: []sim.SlalomGate{
			{Position: core.Vec3{Z: 5}, Type: sim.GateStart},
			{Position: core.Vec3{Z: 10}, Type: sim.GateLeft},
			{Position: core.Vec3{Z: 20}, Type: sim.GateRight},
		}},
	}

	if got := chaseGate(ctx); got != -1 {
		t.Errorf("heading for left gate: got %v, want -1", got)
	}

	ctx.Course.Gates[1].Visited = true
	if got := chaseGate(ctx); got != 1 {
		t.Errorf("heading for right gate: got %v, want 1", got)
	}

	ctx.Player.Position = core.Vec3{X: 2, Z: 25}
	if got := chaseGate(ctx); got != -1 {
		t.Errorf("past all gates: got %v, want -1 back to center", got)
	}

	if got := chaseGate(nil); got != 0 {
		t.Errorf("nil context: got %v", got)
	}
}
