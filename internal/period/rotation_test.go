package period

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisia/progression/internal/domain"
)

func makeQuests(n int) []domain.Quest {
	quests := make([]domain.Quest, n)
	for i := range quests {
		quests[i] = domain.Quest{
			ID:   uuid.New(),
			Slug: fmt.Sprintf("quest-%02d", i),
			Type: domain.PeriodDaily,
		}
	}
	return quests
}

func TestDateSeedStable(t *testing.T) {
	day := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, DateSeed(day), DateSeed(day))
	assert.NotEqual(t, DateSeed(day), DateSeed(day.AddDate(0, 0, 1)))
}

func TestDateSeedNonNegative(t *testing.T) {
	day := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 4000; i++ {
		assert.GreaterOrEqual(t, DateSeed(day.AddDate(0, 0, i)), int64(0))
	}
}

func TestDailyRotationDeterministic(t *testing.T) {
	quests := makeQuests(10)
	day := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	first := DailyRotation(quests, day)
	second := DailyRotation(quests, day)

	require.Len(t, first, DailyRotationSize)
	assert.Equal(t, first, second)
}

func TestDailyRotationSmallCatalogPassesThrough(t *testing.T) {
	day := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	for n := 0; n <= DailyRotationSize; n++ {
		quests := makeQuests(n)
		assert.Equal(t, quests, DailyRotation(quests, day))
	}
}

func TestDailyRotationSelectsDistinctSubset(t *testing.T) {
	quests := makeQuests(8)
	day := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	selected := DailyRotation(quests, day)
	require.Len(t, selected, DailyRotationSize)

	byID := make(map[uuid.UUID]bool, len(quests))
	for _, q := range quests {
		byID[q.ID] = true
	}
	seen := make(map[uuid.UUID]bool)
	for _, q := range selected {
		assert.True(t, byID[q.ID], "rotation produced a quest outside the catalog")
		assert.False(t, seen[q.ID], "rotation produced a duplicate quest")
		seen[q.ID] = true
	}
}

func TestDailyRotationDoesNotMutateInput(t *testing.T) {
	quests := makeQuests(10)
	snapshot := make([]domain.Quest, len(quests))
	copy(snapshot, quests)

	DailyRotation(quests, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, snapshot, quests)
}

func TestDailyRotationVariesAcrossDays(t *testing.T) {
	// Not every pair of days differs, but across a month at least one must.
	quests := makeQuests(12)
	base := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	reference := DailyRotation(quests, base)

	varied := false
	for i := 1; i < 31; i++ {
		if !assert.ObjectsAreEqual(reference, DailyRotation(quests, base.AddDate(0, 0, i))) {
			varied = true
			break
		}
	}
	assert.True(t, varied, "rotation never changed over a month")
}
