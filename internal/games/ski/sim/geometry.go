// Package sim implements the ski run simulation: slope geometry, world
// streaming, slalom scoring, skier kinematics, collisions and the session
// state machine. It has no rendering or terminal dependencies; hosts drive it
// by calling Session.Tick.
package sim

import (
	"math"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
)

// Geometry is the slope: an inclined plane descending along +Z.
type Geometry struct {
	SlopeAngle     float64 // radians
	BaseHeight     float64
	PisteHalfWidth float64
	EdgeMargin     float64
	FlankInner     float64
	PlayerMargin   float64
	ParkedX        float64

	tan     float64
	forward core.Vec3
}

// NewGeometry derives the slope from world config.
func NewGeometry(cfg config.WorldConfig) Geometry {
	angle := cfg.SlopeAngle()
	return Geometry{
		SlopeAngle:     angle,
		BaseHeight:     cfg.BaseHeight,
		PisteHalfWidth: cfg.PisteHalfWidth,
		EdgeMargin:     cfg.EdgeMargin,
		FlankInner:     cfg.FlankInner,
		PlayerMargin:   cfg.PlayerMargin,
		ParkedX:        cfg.ParkedX,
		tan:            math.Tan(angle),
		forward:        core.V3(0, -math.Sin(angle), math.Cos(angle)),
	}
}

// HeightAt returns the surface height at distance z along the slope.
func (g Geometry) HeightAt(z float64) float64 {
	return g.BaseHeight - g.tan*z
}

// Surface returns the point on the slope at (x, z).
func (g Geometry) Surface(x, z float64) core.Vec3 {
	return core.V3(x, g.HeightAt(z), z)
}

// Forward is the downhill unit vector tilted by the slope angle.
func (g Geometry) Forward() core.Vec3 {
	return g.forward
}

// LateralLimit is the largest |x| the skier may reach.
func (g Geometry) LateralLimit() float64 {
	return g.PisteHalfWidth - g.PlayerMargin
}

// ClampLateral applies the piste wall to x.
func (g Geometry) ClampLateral(x float64) float64 {
	lim := g.LateralLimit()
	return core.ClampF(x, -lim, lim)
}

// PlaceableHalfWidth is the largest |x| for obstacles on the piste.
func (g Geometry) PlaceableHalfWidth() float64 {
	return g.PisteHalfWidth - g.EdgeMargin
}
