package sim

import (
	"github.com/vovakirdan/ski-arcade/internal/config"
	"github.com/vovakirdan/ski-arcade/internal/core"
)

// Category classifies placed entities.
type Category int

const (
	CategoryTree Category = iota
	CategoryHut
	CategoryDecorative
	CategorySpectator
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryTree:
		return "tree"
	case CategoryHut:
		return "hut"
	case CategoryDecorative:
		return "decorative"
	case CategorySpectator:
		return "spectator"
	default:
		return "unknown"
	}
}

// Entity is a world object owned by one population pool. Entities are
// repositioned in place when recycled and never reallocated.
type Entity struct {
	ID       int
	Category Category
	// Position is the ground contact point. The bounding volume rises from it.
	Position   core.Vec3
	Half       core.Vec3
	Collidable bool
	// Parked is set when placement gave up and the entity was moved off-piste.
	Parked bool
}

// Bounds returns the entity's world-space bounding box.
func (e *Entity) Bounds() core.Box {
	return boundsAt(e.Position, e.Half)
}

func boundsAt(ground, half core.Vec3) core.Box {
	return core.Box{
		Min: core.V3(ground.X-half.X, ground.Y, ground.Z-half.Z),
		Max: core.V3(ground.X+half.X, ground.Y+2*half.Y, ground.Z+half.Z),
	}
}

func halfExtents(e config.Extents) core.Vec3 {
	return core.V3(e.X, e.Y, e.Z)
}
