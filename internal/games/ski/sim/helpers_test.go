package sim

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
)

// emptySlope returns a config with no obstacles so runs never crash.
func emptySlope() config.SkiConfig {
	cfg := config.DefaultSkiConfig()
	cfg.Population.Trees = 0
	cfg.Population.Decoratives = 0
	cfg.Population.Huts = 0
	return cfg
}

func newTestSession(t *testing.T, cfg config.SkiConfig, opts ...func(*Options)) *Session {
	t.Helper()
	o := Options{Config: cfg, Seed: 42}
	for _, fn := range opts {
		fn(&o)
	}
	s, err := NewSession(o)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	return s
}

func newTestWorld(cfg config.SkiConfig, seed int64) (Geometry, *Course, *Population) {
	rng := rand.New(rand.NewSource(seed))
	geo := NewGeometry(cfg.World)
	course := BuildCourse(geo, cfg.Slalom, rng)
	pop := NewPopulation(geo, cfg.Population, course, rng, nil)
	return geo, course, pop
}

func input(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// checkZoneGaps fails if any entity sits in a slalom zone's center gap.
func checkZoneGaps(t *testing.T, geo Geometry, course *Course, pop *Population) {
	t.Helper()
	pop.Each(func(e *Entity) {
		for _, z := range course.Zones {
			if z.Contains(e.Position.Z) && abs(e.Position.X) < geo.FlankInner {
				t.Fatalf("%s %d at (%.2f, %.2f) lies in the center gap of zone %d", e.Category, e.ID, e.Position.X, e.Position.Z, z.Index)
			}
		}
	})
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func newTestRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
