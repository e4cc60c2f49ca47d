package config

import (
	_ "embed"
)

//go:embed defaults/ski.yaml
var defaultSkiYAML []byte

// DefaultSkiConfig returns the built-in ski configuration.
// It mirrors defaults/ski.yaml and is used when the embedded file cannot be parsed.
func DefaultSkiConfig() SkiConfig {
	return SkiConfig{
		World: WorldConfig{
			SlopeAngleDeg:  30,
			BaseHeight:     2,
			PisteHalfWidth: 120,
			EdgeMargin:     15,
			FlankInner:     20,
			PlayerMargin:   4,
			ParkedX:        300,
		},
		Physics: PhysicsConfig{
			Gravity:       9.81,
			SnowFriction:  0.98,
			AccelScale:    0.4,
			AirResistance: 0.998,
			InitialSpeed:  45,
			BaseMaxSpeed:  50,
			PeakMaxSpeed:  200,
			MinStepHz:     30,
		},
		Steering: SteeringConfig{
			Power:       20,
			Response:    10,
			Damping:     0.8,
			BrakeFactor: 0.98,
			RollFactor:  0.08,
			RollBlend:   0.15,
			MaxRoll:     0.5,
			YawFactor:   0.15,
			YawBlend:    0.12,
			MaxYaw:      0.8,
		},
		Population: PopulationConfig{
			Trees:              200,
			NearFraction:       0.3,
			NearMin:            30,
			NearSpan:           600,
			FarMin:             600,
			FarSpan:            2500,
			Decoratives:        18,
			DecorativeMinX:     18,
			DecorativeSpanX:    12,
			DecorativeMinZ:     60,
			DecorativeSpanZ:    360,
			DecorativeStride:   8,
			DecorativesCollide: true,
			Huts:               8,
			HutMinX:            70,
			HutSpanX:           30,
			HutMinZ:            150,
			HutStride:          180,
			HutRecycleSpan:     600,
			SpectatorsPerZone:  6,
			SpectatorMinX:      22,
			SpectatorSpanX:     14,
			SpectatorInset:     60,
			TrailingMargin:     60,
			RecycleMin:         60,
			RecycleSpan:        480,
			MinSeparation:      3,
			PlacementAttempts:  20,
			ReseedAttempts:     40,
			ReseedMinAhead:     120,
			ReseedMinSpan:      100,
			ReseedOpenSpan:     1400,
			ReseedZoneLead:     60,
			ReseedHutMin:       500,
			ReseedHutSpan:      1800,
			ReseedDecoMin:      300,
			ReseedDecoSpan:     600,
			ZoneBuffer:         80,
			ClearRadius:        140,
			TreeBounds:         Extents{X: 0.9, Y: 1.3, Z: 0.9},
			HutBounds:          Extents{X: 1.9, Y: 2.0, Z: 1.6},
			DecorativeBounds:   Extents{X: 0.35, Y: 0.9, Z: 0.25},
			SpectatorBounds:    Extents{X: 0.35, Y: 0.9, Z: 0.25},
			PlayerBounds:       Extents{X: 0.4, Y: 0.9, Z: 0.9},
		},
		Slalom: SlalomConfig{
			Sections:          8,
			FirstStart:        600,
			Spacing:           1600,
			Length:            800,
			GatesPerSection:   12,
			GateSpacingMin:    55,
			GateSpacingJitter: 15,
			ProximityRadius:   12,
			GateBonus:         25,
			CompletionBonus:   200,
		},
		Session: SessionConfig{
			CrashDuration:   1.4,
			CrashSpin:       1.4,
			CrashSlide:      0.25,
			CrashDrift:      0.3,
			MenuReturnDelay: 0.18,
			MessageDuration: 2.0,
		},
		Difficulty: DifficultyConfig{
			Enabled:      true,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "distance",
				MaxAt: 15000,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultSkiYAML
}
