// Package config provides YAML-based tuning for the ski simulation and the
// difficulty presets that adjust it.
package config

import (
	"errors"
	"fmt"
	"math"
)

// SkiConfig contains every tunable constant of the simulation.
type SkiConfig struct {
	World      WorldConfig      `yaml:"world"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Steering   SteeringConfig   `yaml:"steering"`
	Population PopulationConfig `yaml:"population"`
	Slalom     SlalomConfig     `yaml:"slalom"`
	Session    SessionConfig    `yaml:"session"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// WorldConfig describes the slope surface and the skiable corridor.
type WorldConfig struct {
	SlopeAngleDeg  float64 `yaml:"slope_angle_deg"`
	BaseHeight     float64 `yaml:"base_height"`
	PisteHalfWidth float64 `yaml:"piste_half_width"`
	EdgeMargin     float64 `yaml:"edge_margin"`   // obstacle-free strip along each piste edge
	FlankInner     float64 `yaml:"flank_inner"`   // half-width of the free center lane inside slalom zones
	PlayerMargin   float64 `yaml:"player_margin"` // player keeps this far from the edge
	ParkedX        float64 `yaml:"parked_x"`      // lateral park position for unplaceable entities
}

// SlopeAngle returns the slope angle in radians.
func (w WorldConfig) SlopeAngle() float64 {
	return w.SlopeAngleDeg * math.Pi / 180
}

// PhysicsConfig defines the along-slope speed model.
type PhysicsConfig struct {
	Gravity       float64 `yaml:"gravity"`
	SnowFriction  float64 `yaml:"snow_friction"` // fraction of gravity that survives friction
	AccelScale    float64 `yaml:"accel_scale"`
	AirResistance float64 `yaml:"air_resistance"` // per-second multiplicative decay
	InitialSpeed  float64 `yaml:"initial_speed"`
	BaseMaxSpeed  float64 `yaml:"base_max_speed"`
	PeakMaxSpeed  float64 `yaml:"peak_max_speed"`
	MinStepHz     float64 `yaml:"min_step_hz"` // dt is clamped to 1/min_step_hz
}

// MaxDT returns the largest time step a single tick may integrate.
func (p PhysicsConfig) MaxDT() float64 {
	if p.MinStepHz <= 0 {
		return 1.0 / 30.0
	}
	return 1.0 / p.MinStepHz
}

// SteeringConfig defines lateral carving dynamics and visual lean.
type SteeringConfig struct {
	Power       float64 `yaml:"power"`
	Response    float64 `yaml:"response"`
	Damping     float64 `yaml:"damping"`
	BrakeFactor float64 `yaml:"brake_factor"`
	RollFactor  float64 `yaml:"roll_factor"`
	RollBlend   float64 `yaml:"roll_blend"`
	MaxRoll     float64 `yaml:"max_roll"`
	YawFactor   float64 `yaml:"yaw_factor"`
	YawBlend    float64 `yaml:"yaw_blend"`
	MaxYaw      float64 `yaml:"max_yaw"`
}

// Extents are half sizes of a bounding volume. Y is measured from the ground.
type Extents struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

// PopulationConfig defines pool sizes, spawn bands and placement limits.
type PopulationConfig struct {
	Trees              int     `yaml:"trees"`
	NearFraction       float64 `yaml:"near_fraction"`
	NearMin            float64 `yaml:"near_min"`
	NearSpan           float64 `yaml:"near_span"`
	FarMin             float64 `yaml:"far_min"`
	FarSpan            float64 `yaml:"far_span"`
	Decoratives        int     `yaml:"decoratives"`
	DecorativeMinX     float64 `yaml:"decorative_min_x"`
	DecorativeSpanX    float64 `yaml:"decorative_span_x"`
	DecorativeMinZ     float64 `yaml:"decorative_min_z"`
	DecorativeSpanZ    float64 `yaml:"decorative_span_z"`
	DecorativeStride   float64 `yaml:"decorative_stride"`
	DecorativesCollide bool    `yaml:"decoratives_collide"`
	Huts               int     `yaml:"huts"`
	HutMinX            float64 `yaml:"hut_min_x"`
	HutSpanX           float64 `yaml:"hut_span_x"`
	HutMinZ            float64 `yaml:"hut_min_z"`
	HutStride          float64 `yaml:"hut_stride"`
	HutRecycleSpan     float64 `yaml:"hut_recycle_span"`
	SpectatorsPerZone  int     `yaml:"spectators_per_zone"`
	SpectatorMinX      float64 `yaml:"spectator_min_x"`
	SpectatorSpanX     float64 `yaml:"spectator_span_x"`
	SpectatorInset     float64 `yaml:"spectator_inset"`
	TrailingMargin     float64 `yaml:"trailing_margin"`
	RecycleMin         float64 `yaml:"recycle_min"`
	RecycleSpan        float64 `yaml:"recycle_span"`
	MinSeparation      float64 `yaml:"min_separation"`
	PlacementAttempts  int     `yaml:"placement_attempts"`
	ReseedAttempts     int     `yaml:"reseed_attempts"`
	ReseedMinAhead     float64 `yaml:"reseed_min_ahead"`
	ReseedMinSpan      float64 `yaml:"reseed_min_span"`
	ReseedOpenSpan     float64 `yaml:"reseed_open_span"` // reseed window when no zones exist
	ReseedZoneLead     float64 `yaml:"reseed_zone_lead"` // reseeded trees stop this far before the next zone
	ReseedHutMin       float64 `yaml:"reseed_hut_min"`
	ReseedHutSpan      float64 `yaml:"reseed_hut_span"`
	ReseedDecoMin      float64 `yaml:"reseed_decorative_min"`
	ReseedDecoSpan     float64 `yaml:"reseed_decorative_span"`
	ZoneBuffer         float64 `yaml:"zone_buffer"`
	ClearRadius        float64 `yaml:"clear_radius"`
	TreeBounds         Extents `yaml:"tree_bounds"`
	HutBounds          Extents `yaml:"hut_bounds"`
	DecorativeBounds   Extents `yaml:"decorative_bounds"`
	SpectatorBounds    Extents `yaml:"spectator_bounds"`
	PlayerBounds       Extents `yaml:"player_bounds"`
}

// SlalomConfig defines the fixed slalom course layout and its rewards.
type SlalomConfig struct {
	Sections          int     `yaml:"sections"`
	FirstStart        float64 `yaml:"first_start"`
	Spacing           float64 `yaml:"spacing"`
	Length            float64 `yaml:"length"`
	GatesPerSection   int     `yaml:"gates_per_section"`
	GateSpacingMin    float64 `yaml:"gate_spacing_min"`
	GateSpacingJitter float64 `yaml:"gate_spacing_jitter"`
	ProximityRadius   float64 `yaml:"proximity_radius"`
	GateBonus         int     `yaml:"gate_bonus"`
	CompletionBonus   int     `yaml:"completion_bonus"`
}

// SessionConfig defines run lifecycle timings (seconds).
type SessionConfig struct {
	CrashDuration   float64 `yaml:"crash_duration"`
	CrashSpin       float64 `yaml:"crash_spin"`       // roll turns (in pi) over the crash
	CrashSlide      float64 `yaml:"crash_slide"`      // fraction of speed kept while sliding
	CrashDrift      float64 `yaml:"crash_drift"`      // fraction of steering kept while sliding
	MenuReturnDelay float64 `yaml:"menu_return_delay"`
	MessageDuration float64 `yaml:"message_duration"`
}

// DifficultyConfig defines how the speed ceiling ramps with distance.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = base ceiling, 1.0 = peak ceiling
	Progression  ProgressionConfig `yaml:"progression"`
}

// ProgressionConfig defines what drives the difficulty level.
type ProgressionConfig struct {
	Type  string  `yaml:"type"`   // "distance" or "none"
	MaxAt float64 `yaml:"max_at"` // distance at which the peak is reached
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyHard:
		return 0.25
	default:
		return 0.0
	}
}

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the values the simulation relies on for its invariants.
func (c SkiConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidConfig}, args...)...))
		}
	}

	check(c.World.SlopeAngleDeg > 0 && c.World.SlopeAngleDeg < 90, "world.slope_angle_deg must be in (0, 90), got %v", c.World.SlopeAngleDeg)
	check(c.World.PisteHalfWidth > c.World.EdgeMargin+c.World.FlankInner, "world.piste_half_width must exceed edge_margin + flank_inner")
	check(c.World.PlayerMargin >= 0 && c.World.PlayerMargin < c.World.PisteHalfWidth, "world.player_margin out of range")
	check(c.World.ParkedX > c.World.PisteHalfWidth, "world.parked_x must lie outside the piste")
	check(c.Physics.InitialSpeed >= 0, "physics.initial_speed must be >= 0")
	check(c.Physics.BaseMaxSpeed > 0 && c.Physics.PeakMaxSpeed >= c.Physics.BaseMaxSpeed, "physics max speeds must satisfy 0 < base <= peak")
	check(c.Physics.AirResistance > 0 && c.Physics.AirResistance <= 1, "physics.air_resistance must be in (0, 1]")
	check(c.Steering.Damping > 0 && c.Steering.Damping <= 1, "steering.damping must be in (0, 1]")
	check(c.Steering.BrakeFactor > 0 && c.Steering.BrakeFactor <= 1, "steering.brake_factor must be in (0, 1]")
	check(c.Population.Trees >= 0 && c.Population.Decoratives >= 0 && c.Population.Huts >= 0, "population counts must be >= 0")
	check(c.Population.PlacementAttempts > 0 && c.Population.ReseedAttempts > 0, "population attempts must be > 0")
	check(c.Population.TrailingMargin > 0, "population.trailing_margin must be > 0")
	check(c.Slalom.Sections >= 0, "slalom.sections must be >= 0")
	if c.Slalom.Sections > 0 {
		check(c.Slalom.Length > 0, "slalom.length must be > 0")
		check(c.Slalom.Spacing > c.Slalom.Length, "slalom.spacing must exceed slalom.length so zones stay disjoint")
		check(c.Slalom.GatesPerSection >= 0, "slalom.gates_per_section must be >= 0")
		check(c.Slalom.ProximityRadius > 0, "slalom.proximity_radius must be > 0")
	}
	check(c.Session.CrashDuration > 0, "session.crash_duration must be > 0")

	return errors.Join(errs...)
}
