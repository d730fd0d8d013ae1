package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The standard seven-entry table used in the catalog seeds.
func lotteryEntries() []ChestEntry {
	return []ChestEntry{
		{Type: ChestEntryPoints, Amount: 10, Weight: 30},
		{Type: ChestEntryPoints, Amount: 25, Weight: 20},
		{Type: ChestEntryPoints, Amount: 50, Weight: 20},
		{Type: ChestEntryGems, Amount: 1, Weight: 12},
		{Type: ChestEntryGems, Amount: 5, Weight: 5},
		{Type: ChestEntryGems, Amount: 10, Weight: 2},
		{Type: ChestEntryCosmetic, CosmeticType: "avatar_frame", CosmeticID: "gold", Weight: 1},
	}
}

func TestPickChestEntryWalksBuckets(t *testing.T) {
	entries := lotteryEntries()

	// Cumulative weights: 30, 50, 70, 82, 87, 89, 90. A draw landing exactly
	// on a cumulative boundary belongs to the earlier bucket: the walk stops
	// where the remainder first drops to ≤ 0.
	cases := []struct {
		draw float64
		want int
	}{
		{0, 0},
		{29.9, 0},
		{30, 0},
		{50, 1},
		{69.9, 2},
		{82, 3},
		{85, 4},
		{87, 4},
		{89.5, 6},
		{90, 6},
	}
	for _, tc := range cases {
		idx, err := PickChestEntry(entries, tc.draw)
		require.NoError(t, err)
		assert.Equal(t, tc.want, idx, "draw %v", tc.draw)
	}
}

func TestPickChestEntryCosmeticTail(t *testing.T) {
	entries := lotteryEntries()
	idx, err := PickChestEntry(entries, 89.5)
	require.NoError(t, err)
	assert.Equal(t, ChestEntryCosmetic, entries[idx].Type)
}

func TestPickChestEntryEmptyTable(t *testing.T) {
	_, err := PickChestEntry(nil, 0)
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIGURATION_ERROR", appErr.Code)
}

func TestPickChestEntryZeroTotalWeight(t *testing.T) {
	entries := []ChestEntry{
		{Type: ChestEntryPoints, Amount: 10, Weight: 0},
		{Type: ChestEntryGems, Amount: 1, Weight: 0},
	}
	_, err := PickChestEntry(entries, 0)
	require.Error(t, err)

	var appErr *AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "CONFIGURATION_ERROR", appErr.Code)
}

func TestPickChestEntryDistribution(t *testing.T) {
	entries := []ChestEntry{
		{Type: ChestEntryPoints, Amount: 10, Weight: 50},
		{Type: ChestEntryPoints, Amount: 25, Weight: 30},
		{Type: ChestEntryGems, Amount: 1, Weight: 15},
		{Type: ChestEntryGems, Amount: 5, Weight: 4},
		{Type: ChestEntryCosmetic, CosmeticID: "rare", Weight: 1},
	}
	var total float64
	for _, e := range entries {
		total += e.Weight
	}

	rng := rand.New(rand.NewPCG(42, 0))
	const draws = 100_000
	counts := make([]int, len(entries))
	for i := 0; i < draws; i++ {
		idx, err := PickChestEntry(entries, rng.Float64()*total)
		require.NoError(t, err)
		counts[idx]++
	}

	for i, e := range entries {
		observed := float64(counts[i]) / draws
		expected := e.Weight / total
		assert.InDelta(t, expected, observed, 0.02, "entry %d", i)
	}
}

func TestChestTotalWeight(t *testing.T) {
	chest := Chest{Entries: lotteryEntries()}
	assert.InDelta(t, 90.0, chest.TotalWeight(), 1e-9)
	assert.Zero(t, Chest{}.TotalWeight())
}
