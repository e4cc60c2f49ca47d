// Package progress persists the player's meta-progression: banked score,
// best run and owned skins.
package progress

import (
	"errors"
	"fmt"
	"slices"

	"github.com/vovakirdan/ski-arcade/internal/cosmetics"
)

// Shop errors.
var (
	ErrInsufficientScore = errors.New("progress: not enough score")
	ErrNotOwned          = errors.New("progress: skin not owned")
)

// Progress is the whole persisted structure. It is always written in one piece.
type Progress struct {
	TotalScore         int      `yaml:"totalScore"`
	BestScore          int      `yaml:"bestScore"`
	EquippedCosmeticID string   `yaml:"equippedCosmeticId"`
	OwnedCosmeticIDs   []string `yaml:"ownedCosmeticIds"`
}

// Default returns the progress of a brand new player.
func Default() Progress {
	return Progress{
		EquippedCosmeticID: cosmetics.DefaultID,
		OwnedCosmeticIDs:   []string{cosmetics.DefaultID},
	}
}

// Normalize repairs values a hand-edited or partially written save may hold:
// negative scores, a missing default skin, duplicates and an equipped skin
// that is not owned.
func (p *Progress) Normalize() {
	p.TotalScore = max(p.TotalScore, 0)
	p.BestScore = max(p.BestScore, 0)

	owned := []string{cosmetics.DefaultID}
	for _, id := range p.OwnedCosmeticIDs {
		if id != "" && !slices.Contains(owned, id) {
			owned = append(owned, id)
		}
	}
	slices.Sort(owned)
	p.OwnedCosmeticIDs = owned

	if !p.Owns(p.EquippedCosmeticID) {
		p.EquippedCosmeticID = cosmetics.DefaultID
	}
}

// Owns reports whether id is in the owned set.
func (p Progress) Owns(id string) bool {
	return slices.Contains(p.OwnedCosmeticIDs, id)
}

// Commit banks a finished run: the score is added to the spendable total and
// the best score is raised if beaten.
func (p *Progress) Commit(score int) {
	if score < 0 {
		score = 0
	}
	p.TotalScore += score
	p.BestScore = max(p.BestScore, score)
}

// Buy purchases and equips a skin. Owned skins are equipped for free.
func (p *Progress) Buy(id string) error {
	skin, err := cosmetics.Get(id)
	if err != nil {
		return err
	}
	if p.Owns(id) {
		p.EquippedCosmeticID = id
		return nil
	}
	if p.TotalScore < skin.Price {
		return fmt.Errorf("%w: %s costs %d, have %d", ErrInsufficientScore, skin.Name, skin.Price, p.TotalScore)
	}

	p.TotalScore -= skin.Price
	p.OwnedCosmeticIDs = append(p.OwnedCosmeticIDs, id)
	slices.Sort(p.OwnedCosmeticIDs)
	p.EquippedCosmeticID = id
	return nil
}

// Equip switches to an already owned skin.
func (p *Progress) Equip(id string) error {
	if !cosmetics.Exists(id) {
		return fmt.Errorf("%w %q", cosmetics.ErrUnknownCosmetic, id)
	}
	if !p.Owns(id) {
		return fmt.Errorf("%w: %q", ErrNotOwned, id)
	}
	p.EquippedCosmeticID = id
	return nil
}
