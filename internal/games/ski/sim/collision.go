package sim

import "github.com/vovakirdan/ski-arcade/internal/core"

// DetectCollision reports whether player overlaps any of volumes.
func DetectCollision(player core.Box, volumes []core.Box) bool {
	for i := range volumes {
		if player.Intersects(volumes[i]) {
			return true
		}
	}
	return false
}
