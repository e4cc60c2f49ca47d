package sim

import (
	"math/rand"

	"github.com/vovakirdan/ski-arcade/internal/config"
)

// Course holds the fixed slalom zones and their gates. Zones are laid out
// once and never move; the state machine only flips flags.
type Course struct {
	cfg   config.SlalomConfig
	Zones []*SlalomZone
	Gates []SlalomGate
}

// BuildCourse lays out every slalom section along the slope.
//
// Section i spans [FirstStart + i*Spacing, +Length]. Each section has a start
// gate, GatesPerSection alternating left/right gates with jittered spacing
// and an end gate. If the jittered spacing would run past the end gate the
// gates are compressed to fit.
func BuildCourse(geo Geometry, cfg config.SlalomConfig, rng *rand.Rand) *Course {
	c := &Course{cfg: cfg}
	if cfg.Sections <= 0 {
		return c
	}

	c.Zones = make([]*SlalomZone, cfg.Sections)
	c.Gates = make([]SlalomGate, 0, cfg.Sections*(cfg.GatesPerSection+2))

	spacings := make([]float64, cfg.GatesPerSection)
	for s := 0; s < cfg.Sections; s++ {
		start := cfg.FirstStart + float64(s)*cfg.Spacing
		end := start + cfg.Length
		zone := &SlalomZone{
			Index:        s,
			Start:        start,
			End:          end,
			Center:       (start + end) / 2,
			ExcludeStart: start,
			ExcludeEnd:   end,
		}
		c.Zones[s] = zone

		c.Gates = append(c.Gates, SlalomGate{
			Position: geo.Surface(0, start),
			Type:     GateStart,
			Section:  s,
			Zone:     zone,
		})

		total := 0.0
		for i := range spacings {
			spacings[i] = cfg.GateSpacingMin + rng.Float64()*cfg.GateSpacingJitter
			total += spacings[i]
		}
		// Keep at least half a minimum spacing before the end gate.
		scale := 1.0
		if room := cfg.Length - cfg.GateSpacingMin/2; total > room && total > 0 {
			scale = room / total
		}

		z := start
		for i, sp := range spacings {
			z += sp * scale
			gt := GateLeft
			if i%2 == 1 {
				gt = GateRight
			}
			c.Gates = append(c.Gates, SlalomGate{
				Position: geo.Surface(0, z),
				Type:     gt,
				Section:  s,
				Zone:     zone,
			})
		}

		c.Gates = append(c.Gates, SlalomGate{
			Position: geo.Surface(0, end),
			Type:     GateEnd,
			Section:  s,
			Zone:     zone,
		})
	}
	return c
}

// Reset clears every visited flag and zone flag.
func (c *Course) Reset() {
	for i := range c.Gates {
		c.Gates[i].Visited = false
	}
	for _, z := range c.Zones {
		z.StartGatePassed = false
		z.EndGatePassed = false
	}
}

// ZoneAt returns the zone whose exclusion interval contains z, or nil.
func (c *Course) ZoneAt(z float64) *SlalomZone {
	for _, zone := range c.Zones {
		if zone.Contains(z) {
			return zone
		}
	}
	return nil
}

// NextZone returns the first zone that starts after z, or nil.
func (c *Course) NextZone(z float64) *SlalomZone {
	for _, zone := range c.Zones {
		if zone.ExcludeStart > z {
			return zone
		}
	}
	return nil
}
