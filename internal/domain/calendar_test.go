package domain

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDay(t *testing.T) {
	in := time.Date(2026, 3, 17, 23, 45, 12, 999, time.FixedZone("CET", 3600))
	got := NormalizeDay(in)

	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, got, NormalizeDay(got))
}

func TestNormalDayRewardDeterministic(t *testing.T) {
	day := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, NormalDayReward(day), NormalDayReward(day))
	// Any instant of the same day produces the same reward.
	assert.Equal(t, NormalDayReward(day), NormalDayReward(day.Add(17*time.Hour)))
}

func TestNormalDayRewardRanges(t *testing.T) {
	// Sweep a year: points stay within 5..10, gem days pay exactly 1.
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	gemDays := 0
	for i := 0; i < 365; i++ {
		r := NormalDayReward(start.AddDate(0, 0, i))
		switch r.Type {
		case CalendarRewardPoints:
			assert.GreaterOrEqual(t, r.Amount, 5)
			assert.LessOrEqual(t, r.Amount, 10)
		case CalendarRewardGems:
			assert.Equal(t, 1, r.Amount)
			gemDays++
		default:
			t.Fatalf("unexpected reward type %q", r.Type)
		}
	}
	// Roughly 5% of days override to a gem; a year should see at least a few
	// and nowhere near a majority.
	assert.Greater(t, gemDays, 0)
	assert.Less(t, gemDays, 80)
}

func TestNormalDayRewardMatchesFormula(t *testing.T) {
	day := time.Date(2026, 7, 4, 0, 0, 0, 0, time.UTC)
	ts := float64(day.Unix())

	r := NormalDayReward(day)
	if math.Abs(math.Sin(ts*0.3))*100 < 5 {
		assert.Equal(t, CalendarReward{Type: CalendarRewardGems, Amount: 1}, r)
	} else {
		want := int(math.Floor(5 + math.Abs(math.Sin(ts*0.1))*5))
		assert.Equal(t, CalendarReward{Type: CalendarRewardPoints, Amount: want}, r)
	}
}

func TestDefaultSpecialDaysWellFormed(t *testing.T) {
	specials := DefaultSpecialDays()
	assert.NotEmpty(t, specials)

	seen := make(map[string]bool)
	for _, sp := range specials {
		key := sp.Month.String() + "-" + string(rune('0'+sp.Day/10)) + string(rune('0'+sp.Day%10))
		assert.False(t, seen[key], "duplicate special day %s", key)
		seen[key] = true

		assert.NotEmpty(t, sp.Name)
		assert.Positive(t, sp.Reward.Amount)
		assert.Contains(t, []CalendarRewardType{CalendarRewardPoints, CalendarRewardGems}, sp.Reward.Type)
	}
}
