package config

import "math"

// SpeedRamp computes the progressive speed ceiling from travelled distance.
type SpeedRamp struct {
	cfg          DifficultyConfig
	base, peak   float64
	initialLevel float64
}

// NewSpeedRamp creates a ramp between the physics base and peak ceilings.
func NewSpeedRamp(physics PhysicsConfig, cfg DifficultyConfig) *SpeedRamp {
	return &SpeedRamp{
		cfg:          cfg,
		base:         physics.BaseMaxSpeed,
		peak:         physics.PeakMaxSpeed,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether the ceiling grows with distance.
func (r *SpeedRamp) IsEnabled() bool {
	return r.cfg.Enabled && r.cfg.Progression.Type != "none"
}

// Level returns the difficulty level (0.0 to 1.0) reached at distance.
func (r *SpeedRamp) Level(distance float64) float64 {
	if !r.IsEnabled() {
		return r.initialLevel
	}

	maxAt := r.cfg.Progression.MaxAt
	if maxAt <= 0 {
		maxAt = 1
	}
	progress := clampF(math.Max(distance, 0)/maxAt, 0.0, 1.0)
	return r.initialLevel + progress*(1.0-r.initialLevel)
}

// Ceiling returns the maximum permitted speed at distance.
// It never decreases as distance grows.
func (r *SpeedRamp) Ceiling(distance float64) float64 {
	return r.base + r.Level(distance)*(r.peak-r.base)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
