package cosmetics

import "github.com/vovakirdan/ski-arcade/internal/core"

// Part is one piece of the skier avatar.
type Part struct {
	ID   string
	Slot string // material slot the part is drawn with
	// CosmeticTarget marks parts recolored by the equipped skin.
	CosmeticTarget bool
}

// AvatarParts lists the skier's parts in draw order.
var AvatarParts = []Part{
	{ID: "helmet", Slot: "head", CosmeticTarget: true},
	{ID: "goggles", Slot: "face"},
	{ID: "jacket", Slot: "body", CosmeticTarget: true},
	{ID: "pants", Slot: "legs", CosmeticTarget: true},
	{ID: "poles", Slot: "poles"},
	{ID: "skis", Slot: "skis"},
}

// MaterialBinding pairs a cosmetic target part with its material slot.
type MaterialBinding struct {
	PartID string
	Slot   string
}

// ResolveBindings extracts the cosmetic targets from parts once, so painting
// iterates a flat list instead of inspecting every part.
func ResolveBindings(parts []Part) []MaterialBinding {
	out := make([]MaterialBinding, 0, len(parts))
	for _, p := range parts {
		if p.CosmeticTarget {
			out = append(out, MaterialBinding{PartID: p.ID, Slot: p.Slot})
		}
	}
	return out
}

// Painter colors the bound slots with a skin.
type Painter struct {
	skin     Skin
	bindings []MaterialBinding
	colors   map[string]core.Color
}

// NewPainter creates a painter for the given skin and bindings.
func NewPainter(skin Skin, bindings []MaterialBinding) *Painter {
	return &Painter{
		skin:     skin,
		bindings: bindings,
		colors:   make(map[string]core.Color, len(bindings)),
	}
}

// Skin returns the skin being painted.
func (p *Painter) Skin() Skin {
	return p.skin
}

// Paint returns the slot colors at elapsed seconds. Animated skins spread the
// hue evenly across bindings. The returned map is reused between calls.
func (p *Painter) Paint(elapsed float64) map[string]core.Color {
	step := 0.0
	if n := len(p.bindings); n > 0 {
		step = 360 / float64(n)
	}
	for i, b := range p.bindings {
		p.colors[b.Slot] = p.skin.ColorAt(elapsed, float64(i)*step)
	}
	return p.colors
}
