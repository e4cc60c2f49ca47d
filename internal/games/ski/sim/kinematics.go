package sim

import (
	"math"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
)

// Player is the skier's physical state. Only Kinematics and the crash
// sequence mutate it.
type Player struct {
	Position      core.Vec3
	Speed         float64
	SteerVelocity float64
	Yaw           float64
	Roll          float64
	StartZ        float64
}

// Distance returns the distance travelled along the slope since the start.
func (p *Player) Distance() float64 {
	return p.Position.Z - p.StartZ
}

// Bounds returns the skier's bounding box for the given half extents.
func (p *Player) Bounds(half core.Vec3) core.Box {
	return boundsAt(p.Position, half)
}

// Kinematics integrates the skier model.
type Kinematics struct {
	geo   Geometry
	phys  config.PhysicsConfig
	steer config.SteeringConfig
	ramp  *config.SpeedRamp

	netAccel float64
}

// NewKinematics precomputes the along-slope acceleration.
func NewKinematics(geo Geometry, phys config.PhysicsConfig, steer config.SteeringConfig, ramp *config.SpeedRamp) *Kinematics {
	gAlong := phys.Gravity * math.Sin(geo.SlopeAngle)
	friction := (1 - phys.SnowFriction) * gAlong
	return &Kinematics{
		geo:      geo,
		phys:     phys,
		steer:    steer,
		ramp:     ramp,
		netAccel: (gAlong - friction) * phys.AccelScale,
	}
}

// NetAccel returns the along-slope acceleration before any cap or drag.
func (k *Kinematics) NetAccel() float64 {
	return k.netAccel
}

// ClampDT bounds a frame time to the largest step the model integrates.
func (k *Kinematics) ClampDT(dt float64) float64 {
	return core.ClampF(dt, 0, k.phys.MaxDT())
}

// Ceiling returns the current speed cap for p.
func (k *Kinematics) Ceiling(p *Player) float64 {
	return k.ramp.Ceiling(p.Distance())
}

// Reset places the skier at the top of the run.
func (k *Kinematics) Reset(p *Player, startZ float64) {
	*p = Player{
		Position: k.geo.Surface(0, startZ),
		Speed:    math.Min(k.phys.InitialSpeed, k.ramp.Ceiling(0)),
		StartZ:   startZ,
	}
}

// Step advances p by dt seconds under steering intent in {-1, 0, +1}.
// Negative intent carves toward -X.
func (k *Kinematics) Step(p *Player, intent, dt float64) {
	dt = k.ClampDT(dt)
	intent = core.Sign(intent)
	s := k.steer

	// 1-3. Accelerate, cap to the progressive ceiling, then air drag.
	p.Speed = math.Min(k.Ceiling(p), p.Speed+k.netAccel*dt)
	p.Speed *= math.Pow(k.phys.AirResistance, dt)

	// 4. Advance along the tilted forward vector.
	p.Position = p.Position.Add(k.geo.Forward().Scale(p.Speed * dt))

	// 5. Steering velocity approaches the target without overshoot.
	target := intent * s.Power
	p.SteerVelocity += (target - p.SteerVelocity) * math.Min(1, s.Response*dt)

	// 6. Carving bleeds speed.
	if intent != 0 && s.Power > 0 {
		intensity := math.Abs(p.SteerVelocity) / s.Power
		p.Speed *= math.Pow(s.BrakeFactor, dt*intensity*2)
	}

	p.SteerVelocity *= math.Pow(s.Damping, dt)
	p.Position.X += p.SteerVelocity * dt

	// 7. Visual lean.
	p.Roll = core.ClampF(core.Lerp(p.Roll, p.SteerVelocity*s.RollFactor, s.RollBlend), -s.MaxRoll, s.MaxRoll)
	p.Yaw = core.ClampF(core.Lerp(p.Yaw, p.SteerVelocity*s.YawFactor, s.YawBlend), -s.MaxYaw, s.MaxYaw)

	// 8-9. Piste wall and surface height.
	p.Position.X = k.geo.ClampLateral(p.Position.X)
	p.Position.Y = k.geo.HeightAt(p.Position.Z)
	p.Speed = math.Max(p.Speed, 0)
}
