package sim

import (
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
)

// Population owns the finite entity pools that stream the endless slope.
type Population struct {
	geo    Geometry
	cfg    config.PopulationConfig
	course *Course
	rng    *rand.Rand
	log    *log.Logger

	Trees       []Entity
	Decoratives []Entity
	Huts        []Entity
	Spectators  []Entity

	nextID int
	parked int
}

// NewPopulation creates empty pools. Call PopulateInitial to fill them.
func NewPopulation(geo Geometry, cfg config.PopulationConfig, course *Course, rng *rand.Rand, logger *log.Logger) *Population {
	return &Population{
		geo:    geo,
		cfg:    cfg,
		course: course,
		rng:    rng,
		log:    logger,
	}
}

// ParkedCount returns how many placements fell back to the parked position.
func (p *Population) ParkedCount() int {
	return p.parked
}

// PopulateInitial allocates and places every pool relative to playerZ.
// Trees are split between a near band and a far band so the slope right in
// front of the player is never sparse. Spectators line the slalom zones and
// stay where they are for the rest of the process.
func (p *Population) PopulateInitial(playerZ float64, obstacleCount, decorativeCount, hutCount, spectatorsPerZone int) {
	c := p.cfg
	p.nextID = 0
	p.Trees = p.allocate(obstacleCount, CategoryTree, halfExtents(c.TreeBounds), true)
	p.Decoratives = p.allocate(decorativeCount, CategoryDecorative, halfExtents(c.DecorativeBounds), c.DecorativesCollide)
	p.Huts = p.allocate(hutCount, CategoryHut, halfExtents(c.HutBounds), true)

	nearCount := int(math.Round(float64(obstacleCount) * c.NearFraction))
	for i := range p.Trees {
		minZ, span := c.FarMin, c.FarSpan
		if i < nearCount {
			minZ, span = c.NearMin, c.NearSpan
		}
		p.placeTree(i, func() float64 { return playerZ + minZ + p.rng.Float64()*span }, nil)
	}

	for i := range p.Huts {
		z := playerZ + c.HutMinZ + float64(i)*c.HutStride
		p.placeBanded(p.Huts, i, c.HutMinX, c.HutSpanX, func() float64 { return z }, nil)
	}

	for i := range p.Decoratives {
		offset := float64(i) * c.DecorativeStride
		p.placeBanded(p.Decoratives, i, c.DecorativeMinX, c.DecorativeSpanX, func() float64 {
			return playerZ + c.DecorativeMinZ + p.rng.Float64()*c.DecorativeSpanZ + offset
		}, nil)
	}

	p.Spectators = p.Spectators[:0]
	half := halfExtents(c.SpectatorBounds)
	for _, zone := range p.course.Zones {
		inner := zone.End - zone.Start - 2*c.SpectatorInset
		for i := 0; i < spectatorsPerZone; i++ {
			p.Spectators = append(p.Spectators, Entity{ID: p.nextID, Category: CategorySpectator, Half: half, Parked: true})
			p.nextID++
			idx := len(p.Spectators) - 1
			p.placeBanded(p.Spectators, idx, c.SpectatorMinX, c.SpectatorSpanX, func() float64 {
				return zone.Start + c.SpectatorInset + p.rng.Float64()*math.Max(inner, 0)
			}, nil)
		}
	}
}

func (p *Population) allocate(n int, cat Category, half core.Vec3, collidable bool) []Entity {
	pool := make([]Entity, n)
	for i := range pool {
		// Unplaced entities count as parked so they never block placement.
		pool[i] = Entity{ID: p.nextID, Category: cat, Half: half, Collidable: collidable, Parked: true}
		p.nextID++
	}
	return pool
}

// RecycleBehindPlayer moves every entity more than the trailing margin
// behind playerZ to a fresh spot ahead. Returns the number moved.
func (p *Population) RecycleBehindPlayer(playerZ float64) int {
	c := p.cfg
	cutoff := playerZ - c.TrailingMargin
	moved := 0

	for i := range p.Trees {
		if p.Trees[i].Position.Z < cutoff {
			p.placeTree(i, func() float64 { return playerZ + c.RecycleMin + p.rng.Float64()*c.RecycleSpan }, nil)
			moved++
		}
	}
	for i := range p.Huts {
		if p.Huts[i].Position.Z < cutoff {
			p.placeBanded(p.Huts, i, c.HutMinX, c.HutSpanX, func() float64 {
				return playerZ + c.HutMinZ + p.rng.Float64()*c.HutRecycleSpan
			}, nil)
			moved++
		}
	}
	for i := range p.Decoratives {
		if p.Decoratives[i].Position.Z < cutoff {
			p.placeBanded(p.Decoratives, i, c.DecorativeMinX, c.DecorativeSpanX, func() float64 {
				return playerZ + c.DecorativeMinZ + p.rng.Float64()*c.DecorativeSpanZ
			}, nil)
			moved++
		}
	}
	return moved
}

// ReseedNear redistributes the recyclable pools into the stretch right ahead
// of the player. Trees stay clear of every zone (widened by ZoneBuffer) and of
// a ClearRadius circle around the player, so a fresh run never starts inside
// an obstacle.
func (p *Population) ReseedNear(player core.Vec3) {
	c := p.cfg
	minZ := player.Z + c.ReseedMinAhead
	maxZ := player.Z + c.ReseedOpenSpan
	if next := p.course.NextZone(player.Z); next != nil {
		maxZ = math.Max(player.Z+c.ReseedMinAhead+c.ReseedMinSpan, next.ExcludeStart-c.ReseedZoneLead)
	} else if len(p.course.Zones) > 0 {
		maxZ = player.Z + c.ReseedMinAhead + c.ReseedMinSpan
	}

	clearOfStart := func(e *Entity, x, z float64) bool {
		if math.Hypot(x-player.X, z-player.Z) < c.ClearRadius {
			return false
		}
		for _, zone := range p.course.Zones {
			if zone.Overlaps(z-e.Half.Z-c.ZoneBuffer, z+e.Half.Z+c.ZoneBuffer) {
				return false
			}
		}
		return true
	}

	for i := range p.Trees {
		p.placeTreeAttempts(i, c.ReseedAttempts, func() float64 { return minZ + p.rng.Float64()*(maxZ-minZ) }, clearOfStart)
	}

	for i := range p.Huts {
		p.placeBanded(p.Huts, i, p.geo.PisteHalfWidth-40, 20, func() float64 {
			return player.Z + c.ReseedHutMin + p.rng.Float64()*c.ReseedHutSpan
		}, nil)
	}

	for i := range p.Decoratives {
		offset := float64(i) * c.DecorativeStride
		p.placeBanded(p.Decoratives, i, c.DecorativeMinX, c.DecorativeSpanX, func() float64 {
			return player.Z + c.ReseedDecoMin + p.rng.Float64()*c.ReseedDecoSpan + offset
		}, nil)
	}
}

// placeTree places a tree anywhere on the piste, or on a zone flank when the
// candidate z falls inside a slalom zone.
func (p *Population) placeTree(i int, pickZ func() float64, extra func(*Entity, float64, float64) bool) {
	p.placeTreeAttempts(i, p.cfg.PlacementAttempts, pickZ, extra)
}

func (p *Population) placeTreeAttempts(i, attempts int, pickZ func() float64, extra func(*Entity, float64, float64) bool) {
	e := &p.Trees[i]
	limit := p.geo.PlaceableHalfWidth()
	pickX := func(z float64) float64 {
		if p.zoneFor(e, z) != nil {
			return p.flankX(e)
		}
		return -limit + p.rng.Float64()*2*limit
	}
	p.place(p.Trees, i, attempts, pickZ, pickX, extra)
}

// placeBanded places pool[i] at side*(minAbs + [0, span)). Inside a zone the
// band is pushed outward past the center gap.
func (p *Population) placeBanded(pool []Entity, i int, minAbs, span float64, pickZ func() float64, extra func(*Entity, float64, float64) bool) {
	e := &pool[i]
	pickX := func(z float64) float64 {
		lo, hi := minAbs, minAbs+span
		if p.zoneFor(e, z) != nil {
			lo = math.Max(lo, p.geo.FlankInner+e.Half.X)
			hi = math.Max(hi, lo)
		}
		side := 1.0
		if p.rng.Float64() < 0.5 {
			side = -1
		}
		return side * (lo + p.rng.Float64()*(hi-lo))
	}
	p.place(pool, i, p.cfg.PlacementAttempts, pickZ, pickX, extra)
}

// place draws candidates until one is valid or attempts run out, then parks
// the entity off-piste at the last candidate z.
func (p *Population) place(pool []Entity, i, attempts int, pickZ func() float64, pickX func(float64) float64, extra func(*Entity, float64, float64) bool) {
	e := &pool[i]
	z := e.Position.Z
	for a := 0; a < attempts; a++ {
		z = pickZ()
		x := pickX(z)
		if !p.valid(pool, i, x, z) {
			continue
		}
		if extra != nil && !extra(e, x, z) {
			continue
		}
		e.Position = p.geo.Surface(x, z)
		e.Parked = false
		return
	}

	side := 1.0
	if e.ID%2 == 0 {
		side = -1
	}
	e.Position = p.geo.Surface(side*p.geo.ParkedX, z)
	e.Parked = true
	p.parked++
	if p.log != nil {
		p.log.Warn("Placement exhausted, parking entity", "category", e.Category, "id", e.ID, "z", z, "attempts", attempts)
	}
}

// valid enforces the placement rules shared by every pool: stay on the
// piste, keep the zone center gap free, keep apart from pool mates.
func (p *Population) valid(pool []Entity, i int, x, z float64) bool {
	e := &pool[i]
	if math.Abs(x)+e.Half.X > p.geo.PisteHalfWidth {
		return false
	}
	if p.zoneFor(e, z) != nil && math.Abs(x)-e.Half.X < p.geo.FlankInner {
		return false
	}
	sep := p.cfg.MinSeparation
	if sep <= 0 {
		return true
	}
	for j := range pool {
		if j == i || pool[j].Parked {
			continue
		}
		o := pool[j].Position
		if math.Abs(o.X-x) < sep && math.Abs(o.Z-z) < sep {
			return false
		}
	}
	return true
}

// zoneFor returns the zone an entity centered at z would touch.
func (p *Population) zoneFor(e *Entity, z float64) *SlalomZone {
	for _, zone := range p.course.Zones {
		if zone.Overlaps(z-e.Half.Z, z+e.Half.Z) {
			return zone
		}
	}
	return nil
}

// flankX picks a lateral position in one of the two corridors beside a zone.
func (p *Population) flankX(e *Entity) float64 {
	lo := p.geo.FlankInner + e.Half.X
	hi := p.geo.PlaceableHalfWidth()
	x := lo + p.rng.Float64()*math.Max(hi-lo, 0)
	if p.rng.Float64() < 0.5 {
		return -x
	}
	return x
}

// Colliders appends the bounding box of every collidable, unparked entity.
func (p *Population) Colliders(dst []core.Box) []core.Box {
	for _, pool := range [][]Entity{p.Trees, p.Huts, p.Decoratives} {
		for i := range pool {
			if pool[i].Collidable && !pool[i].Parked {
				dst = append(dst, pool[i].Bounds())
			}
		}
	}
	return dst
}

// Each calls fn for every entity in every pool.
func (p *Population) Each(fn func(*Entity)) {
	for _, pool := range [][]Entity{p.Trees, p.Huts, p.Decoratives, p.Spectators} {
		for i := range pool {
			fn(&pool[i])
		}
	}
}
