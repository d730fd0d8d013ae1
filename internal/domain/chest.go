package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ChestType is the rarity tier of a chest.
type ChestType string

const (
	ChestCommon    ChestType = "common"
	ChestRare      ChestType = "rare"
	ChestEpic      ChestType = "epic"
	ChestLegendary ChestType = "legendary"
)

// ChestEntryType enumerates the prizes a chest can yield.
type ChestEntryType string

const (
	ChestEntryPoints   ChestEntryType = "points"
	ChestEntryGems     ChestEntryType = "gems"
	ChestEntryCosmetic ChestEntryType = "cosmetic"
)

// ChestEntry is one weighted prize in a chest's lottery table.
type ChestEntry struct {
	Type         ChestEntryType `json:"type"`
	Amount       int            `json:"amount,omitempty"`
	CosmeticType string         `json:"cosmetic_type,omitempty"`
	CosmeticID   string         `json:"cosmetic_id,omitempty"`
	Weight       float64        `json:"weight"`
}

// Chest is a weighted-lottery container, authored externally.
type Chest struct {
	ID       uuid.UUID    `json:"id"`
	Type     ChestType    `json:"type"`
	Entries  []ChestEntry `json:"entries"`
	IsActive bool         `json:"is_active"`
}

// TotalWeight sums the entry weights. Must be > 0 for a usable chest.
func (c Chest) TotalWeight() float64 {
	var total float64
	for _, e := range c.Entries {
		total += e.Weight
	}
	return total
}

// PickChestEntry selects the entry for a draw in [0, totalWeight). The draw
// walks the entries in declared order, subtracting each weight; the entry
// where the remainder first drops to ≤ 0 wins. A numerical-edge miss falls
// back to the first entry.
func PickChestEntry(entries []ChestEntry, draw float64) (int, error) {
	if len(entries) == 0 {
		return 0, ErrConfiguration("chest has no entries")
	}
	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	if total <= 0 {
		return 0, ErrConfiguration(fmt.Sprintf("chest weight sum must be positive, got %v", total))
	}
	r := draw
	for i, e := range entries {
		r -= e.Weight
		if r <= 0 {
			return i, nil
		}
	}
	return 0, nil
}

// ChestReward is the audit record of one opened chest outcome.
type ChestReward struct {
	ID           uuid.UUID      `json:"id"`
	UserID       uuid.UUID      `json:"user_id"`
	ChestID      uuid.UUID      `json:"chest_id"`
	RewardType   ChestEntryType `json:"reward_type"`
	Amount       int            `json:"amount,omitempty"`
	CosmeticType string         `json:"cosmetic_type,omitempty"`
	CosmeticID   string         `json:"cosmetic_id,omitempty"`
	Claimed      bool           `json:"claimed"`
	ClaimedAt    *time.Time     `json:"claimed_at,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}
