// Package cosmetics holds the catalog of unlockable skier skins.
// Skins register themselves in init(), allowing the shop and the renderer to
// discover them without hardcoded lists.
package cosmetics

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/vovakirdan/ski-arcade/internal/core"
)

// DefaultID is the skin every player owns.
const DefaultID = "default"

// ErrUnknownCosmetic is returned when a skin ID is not in the catalog.
var ErrUnknownCosmetic = errors.New("cosmetics: unknown cosmetic")

// Skin is a purchasable color scheme for the skier.
type Skin struct {
	ID    string
	Name  string
	Price int
	// Colors holds a single color for static skins or the hue cycle for
	// animated ones.
	Colors []core.Color
	// HueSpeed is the animation rate in degrees per second. Zero means static.
	HueSpeed float64
}

// Animated reports whether the skin cycles colors over time.
func (s Skin) Animated() bool {
	return s.HueSpeed > 0 && len(s.Colors) > 1
}

// ColorAt returns the color shown at elapsed seconds, with the hue shifted by
// offsetDeg so neighbouring parts do not share a color.
func (s Skin) ColorAt(elapsed, offsetDeg float64) core.Color {
	if len(s.Colors) == 0 {
		return core.ColorDefault
	}
	if !s.Animated() {
		return s.Colors[0]
	}
	hue := math.Mod(elapsed*s.HueSpeed+offsetDeg, 360)
	if hue < 0 {
		hue += 360
	}
	idx := int(hue / 360 * float64(len(s.Colors)))
	return s.Colors[idx%len(s.Colors)]
}

var (
	skins = make(map[string]Skin)
	mu    sync.RWMutex
)

// Register adds a skin to the catalog.
// Panics if a skin with the same ID is already registered.
func Register(s Skin) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := skins[s.ID]; exists {
		panic(fmt.Sprintf("cosmetics: skin %q already registered", s.ID))
	}
	skins[s.ID] = s
}

// List returns all registered skins ordered by price, then ID.
func List() []Skin {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]Skin, 0, len(skins))
	for _, s := range skins {
		result = append(result, s)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Price != result[j].Price {
			return result[i].Price < result[j].Price
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// Get looks up a skin by ID.
func Get(id string) (Skin, error) {
	mu.RLock()
	defer mu.RUnlock()

	s, ok := skins[id]
	if !ok {
		return Skin{}, fmt.Errorf("%w %q", ErrUnknownCosmetic, id)
	}
	return s, nil
}

// Exists checks if a skin with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := skins[id]
	return ok
}

func init() {
	Register(Skin{ID: DefaultID, Name: "Classic Red", Price: 0, Colors: []core.Color{core.ColorBrightRed}})
	Register(Skin{ID: "blue", Name: "Ocean Blue", Price: 500, Colors: []core.Color{core.ColorBrightBlue}})
	Register(Skin{ID: "green", Name: "Forest Green", Price: 750, Colors: []core.Color{core.ColorBrightGreen}})
	Register(Skin{ID: "gold", Name: "Golden", Price: 1500, Colors: []core.Color{core.ColorGold}})
	Register(Skin{ID: "purple", Name: "Royal Purple", Price: 2000, Colors: []core.Color{core.ColorPurple}})
	Register(Skin{ID: "rainbow", Name: "Rainbow", Price: 5000, Colors: core.RainbowCycle, HueSpeed: 180})
}
