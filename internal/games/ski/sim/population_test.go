package sim

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
)

func populate(pop *Population, cfg config.SkiConfig) {
	c := cfg.Population
	pop.PopulateInitial(0, c.Trees, c.Decoratives, c.Huts, c.SpectatorsPerZone)
}

func TestPopulateInitialCounts(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	_, course, pop := newTestWorld(cfg, 11)
	populate(pop, cfg)

	if len(pop.Trees) != 200 || len(pop.Decoratives) != 18 || len(pop.Huts) != 8 {
		t.Fatalf("pool sizes %d/%d/%d, expected 200/18/8", len(pop.Trees), len(pop.Decoratives), len(pop.Huts))
	}
	if want := 6 * len(course.Zones); len(pop.Spectators) != want {
		t.Errorf("got %d spectators, expected %d", len(pop.Spectators), want)
	}

	ids := make(map[int]bool)
	pop.Each(func(e *Entity) {
		if ids[e.ID] {
			t.Fatalf("duplicate entity id %d", e.ID)
		}
		ids[e.ID] = true
	})

	for _, s := range pop.Spectators {
		if s.Collidable {
			t.Fatal("spectators must not be collidable")
		}
	}
}

func TestPopulateInitialNearFarSplit(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	_, _, pop := newTestWorld(cfg, 12)
	populate(pop, cfg)

	near := 0
	for i, tr := range pop.Trees {
		if tr.Parked {
			continue
		}
		z := tr.Position.Z
		if i < 60 {
			if z < 30 || z >= 630 {
				t.Errorf("near tree %d at z=%v outside [30, 630)", i, z)
			}
			near++
		} else if z < 600 || z >= 3100 {
			t.Errorf("far tree %d at z=%v outside [600, 3100)", i, z)
		}
	}
	if near == 0 {
		t.Error("expected some trees in the near band")
	}
}

func TestZoneExclusivityInitial(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	for seed := int64(1); seed <= 5; seed++ {
		geo, course, pop := newTestWorld(cfg, seed)
		populate(pop, cfg)
		checkZoneGaps(t, geo, course, pop)
	}
}

func TestZoneExclusivityRecycle(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	geo, course, pop := newTestWorld(cfg, 21)
	populate(pop, cfg)

	treesBefore := &pop.Trees[0]
	moved := 0
	for z := 0.0; z < 14000; z += 4 {
		moved += pop.RecycleBehindPlayer(z)
		if int(z)%400 == 0 {
			checkZoneGaps(t, geo, course, pop)
		}
	}
	checkZoneGaps(t, geo, course, pop)

	if moved == 0 {
		t.Fatal("nothing was recycled")
	}
	if &pop.Trees[0] != treesBefore || len(pop.Trees) != 200 {
		t.Error("recycling must reuse the existing pool")
	}

	// Everything recyclable should now be ahead of the trailing margin.
	cutoff := 14000 - 4 - cfg.Population.TrailingMargin
	for _, pool := range [][]Entity{pop.Trees, pop.Huts, pop.Decoratives} {
		for _, e := range pool {
			if e.Position.Z < cutoff {
				t.Fatalf("%s %d left behind at z=%v", e.Category, e.ID, e.Position.Z)
			}
		}
	}
}

func TestPlacementStaysOnPiste(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	geo, _, pop := newTestWorld(cfg, 31)
	populate(pop, cfg)
	for z := 0.0; z < 3000; z += 10 {
		pop.RecycleBehindPlayer(z)
	}

	pop.Each(func(e *Entity) {
		if e.Parked {
			if math.Abs(e.Position.X) != geo.ParkedX {
				t.Fatalf("parked %s %d at x=%v, expected ±%v", e.Category, e.ID, e.Position.X, geo.ParkedX)
			}
			return
		}
		if math.Abs(e.Position.X)+e.Half.X > geo.PisteHalfWidth {
			t.Fatalf("%s %d at x=%v leaves the piste", e.Category, e.ID, e.Position.X)
		}
		if e.Position.Y != geo.HeightAt(e.Position.Z) {
			t.Fatalf("%s %d is not on the surface", e.Category, e.ID)
		}
	})
}

func TestReseedNearClearsPlayer(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	geo, course, pop := newTestWorld(cfg, 41)
	populate(pop, cfg)

	player := geo.Surface(0, 0)
	pop.ReseedNear(player)

	c := cfg.Population
	for _, tr := range pop.Trees {
		if tr.Parked {
			continue
		}
		if d := math.Hypot(tr.Position.X-player.X, tr.Position.Z-player.Z); d < c.ClearRadius {
			t.Fatalf("tree %d only %.1f from the player", tr.ID, d)
		}
		if tr.Position.Z < c.ReseedMinAhead || tr.Position.Z >= course.Zones[0].ExcludeStart-c.ReseedZoneLead {
			t.Fatalf("tree %d at z=%v outside the reseed window", tr.ID, tr.Position.Z)
		}
	}
	for _, h := range pop.Huts {
		if h.Position.Z < c.ReseedHutMin {
			t.Errorf("hut %d at z=%v too close after reseed", h.ID, h.Position.Z)
		}
	}
	checkZoneGaps(t, geo, course, pop)

	// The first tick of a fresh run must not collide.
	box := boundsAt(player, halfExtents(c.PlayerBounds))
	if DetectCollision(box, pop.Colliders(nil)) {
		t.Error("reseeded world collides with the player at the start")
	}
}

func TestReseedWithoutZones(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	cfg.Slalom.Sections = 0
	geo, _, pop := newTestWorld(cfg, 42)
	populate(pop, cfg)

	pop.ReseedNear(geo.Surface(0, 0))
	for _, tr := range pop.Trees {
		if !tr.Parked && tr.Position.Z >= cfg.Population.ReseedOpenSpan {
			t.Fatalf("tree %d at z=%v beyond the open reseed window", tr.ID, tr.Position.Z)
		}
	}
	if len(pop.Spectators) != 0 {
		t.Errorf("no zones means no spectators, got %d", len(pop.Spectators))
	}
}

func TestPlacementExhaustionParks(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	cfg.Population.MinSeparation = 1e6 // only one tree can ever be valid

	var buf bytes.Buffer
	geo, course, _ := newTestWorld(cfg, 51)
	pop := NewPopulation(geo, cfg.Population, course, newTestRand(51), log.New(&buf))
	pop.PopulateInitial(0, 10, 0, 0, 0)

	parked := 0
	for _, tr := range pop.Trees {
		if tr.Parked {
			parked++
			if math.Abs(tr.Position.X) != geo.ParkedX {
				t.Errorf("parked tree at x=%v", tr.Position.X)
			}
		}
	}
	if parked != 9 {
		t.Errorf("parked = %d, expected 9", parked)
	}
	if pop.ParkedCount() != 9 {
		t.Errorf("ParkedCount() = %d, expected 9", pop.ParkedCount())
	}
	if !strings.Contains(buf.String(), "Placement exhausted") {
		t.Errorf("expected a warning, log was %q", buf.String())
	}
	if n := len(pop.Colliders(nil)); n != 1 {
		t.Errorf("parked trees should not collide, got %d colliders", n)
	}
}

func TestPopulationDeterministic(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	positions := func() []core.Vec3 {
		_, _, pop := newTestWorld(cfg, 99)
		populate(pop, cfg)
		for z := 0.0; z < 2000; z += 7 {
			pop.RecycleBehindPlayer(z)
		}
		var out []core.Vec3
		pop.Each(func(e *Entity) { out = append(out, e.Position) })
		return out
	}

	a, b := positions(), positions()
	if len(a) != len(b) {
		t.Fatalf("entity counts differ: %d vs %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("entity %d differs: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestDecorativesCollideSwitch(t *testing.T) {
	cfg := config.DefaultSkiConfig()
	cfg.Population.Trees = 0
	cfg.Population.Huts = 0

	_, _, pop := newTestWorld(cfg, 61)
	populate(pop, cfg)
	if got := len(pop.Colliders(nil)); got != cfg.Population.Decoratives {
		t.Errorf("decoratives collide by default: got %d colliders, expected %d", got, cfg.Population.Decoratives)
	}

	cfg.Population.DecorativesCollide = false
	_, _, pop = newTestWorld(cfg, 61)
	populate(pop, cfg)
	if got := len(pop.Colliders(nil)); got != 0 {
		t.Errorf("decoratives_collide=false left %d colliders", got)
	}
}
