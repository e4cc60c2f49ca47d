package sim

import "github.com/vovakirdan/ski-arcade/internal/core"

// GateType identifies the role of a slalom gate.
type GateType int

const (
	GateStart GateType = iota
	GateLeft           // pass with x < 0
	GateRight          // pass with x > 0
	GateEnd
)

// String returns a human-readable name for the gate type.
func (g GateType) String() string {
	switch g {
	case GateStart:
		return "start"
	case GateLeft:
		return "left"
	case GateRight:
		return "right"
	case GateEnd:
		return "end"
	default:
		return "unknown"
	}
}

// SlalomZone is one slalom section of the course.
type SlalomZone struct {
	Index        int
	Start        float64
	End          float64
	Center       float64
	ExcludeStart float64
	ExcludeEnd   float64

	StartGatePassed bool
	EndGatePassed   bool
}

// Contains reports whether z lies in the exclusion interval (inclusive).
func (z *SlalomZone) Contains(d float64) bool {
	return d >= z.ExcludeStart && d <= z.ExcludeEnd
}

// Overlaps reports whether [lo, hi] touches the exclusion interval.
func (z *SlalomZone) Overlaps(lo, hi float64) bool {
	return hi >= z.ExcludeStart && lo <= z.ExcludeEnd
}

// SlalomGate is a single scoring gate.
type SlalomGate struct {
	Position core.Vec3
	Type     GateType
	Section  int
	Zone     *SlalomZone
	Visited  bool
}

// GateOutcome is a single gate transition produced by CheckGates.
type GateOutcome struct {
	Gate   *SlalomGate
	Points int  // added to the bonus pot
	Flush  bool // the pot (including Points) moves into the score
}

// CheckGates evaluates every unvisited gate against the player position,
// applies the transitions and appends them to dst.
//
//  1. A gate is reached when the player is within ProximityRadius of it.
//  2. Start gate: reached and passed along the slope marks the zone started.
//  3. Left/right gate: reached, passed and on the correct side adds GateBonus.
//     A wrong-side pass leaves the gate eligible.
//  4. End gate: reached, passed and the zone started adds CompletionBonus,
//     flushes the pot and re-arms the zone.
func (c *Course) CheckGates(player core.Vec3, dst []GateOutcome) []GateOutcome {
	r := c.cfg.ProximityRadius
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Visited {
			continue
		}
		dz := player.Z - g.Position.Z
		if dz <= 0 || dz >= r {
			// Not yet past, or too far behind to be within reach.
			continue
		}
		if player.DistanceTo(g.Position) >= r {
			continue
		}

		switch g.Type {
		case GateStart:
			g.Visited = true
			g.Zone.StartGatePassed = true
			g.Zone.EndGatePassed = false
			dst = append(dst, GateOutcome{Gate: g})
		case GateLeft, GateRight:
			if (g.Type == GateLeft && player.X >= 0) || (g.Type == GateRight && player.X <= 0) {
				continue
			}
			g.Visited = true
			dst = append(dst, GateOutcome{Gate: g, Points: c.cfg.GateBonus})
		case GateEnd:
			if !g.Zone.StartGatePassed {
				continue
			}
			g.Visited = true
			g.Zone.EndGatePassed = true
			g.Zone.StartGatePassed = false
			dst = append(dst, GateOutcome{Gate: g, Points: c.cfg.CompletionBonus, Flush: true})
		}
	}
	return dst
}
