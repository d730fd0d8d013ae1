package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/revisia/progression/internal/domain"
)

func TestDailyBounds(t *testing.T) {
	ref := time.Date(2026, 3, 17, 14, 32, 9, 0, time.UTC)
	start, end := Bounds(domain.PeriodDaily, ref)

	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), end)
}

func TestWeeklyBoundsStartMonday(t *testing.T) {
	// 2026-03-18 is a Wednesday; its week starts Monday 2026-03-16.
	ref := time.Date(2026, 3, 18, 10, 0, 0, 0, time.UTC)
	start, end := Bounds(domain.PeriodWeekly, ref)

	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC), end)
	assert.Equal(t, time.Monday, start.Weekday())
}

func TestWeeklyBoundsSundayBelongsToPrecedingWeek(t *testing.T) {
	// 2026-03-22 is a Sunday; it still belongs to the week of Monday 03-16.
	ref := time.Date(2026, 3, 22, 23, 59, 0, 0, time.UTC)
	start, _ := Bounds(domain.PeriodWeekly, ref)

	assert.Equal(t, time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC), start)
}

func TestWeeklyBoundsMondayStartsNewWeek(t *testing.T) {
	ref := time.Date(2026, 3, 23, 0, 0, 0, 0, time.UTC)
	start, _ := Bounds(domain.PeriodWeekly, ref)

	assert.Equal(t, ref, start)
}

func TestMonthlyBounds(t *testing.T) {
	ref := time.Date(2026, 1, 31, 23, 0, 0, 0, time.UTC)
	start, end := Bounds(domain.PeriodMonthly, ref)

	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestMonthlyBoundsDecemberRollsYear(t *testing.T) {
	ref := time.Date(2025, 12, 15, 12, 0, 0, 0, time.UTC)
	start, end := Bounds(domain.PeriodMonthly, ref)

	assert.Equal(t, time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestBoundsStableWithinPeriod(t *testing.T) {
	// Every instant of the same week maps to the same window.
	base := time.Date(2026, 3, 16, 0, 0, 0, 0, time.UTC)
	wantStart, wantEnd := Bounds(domain.PeriodWeekly, base)

	for hours := 0; hours < 7*24; hours += 13 {
		start, end := Bounds(domain.PeriodWeekly, base.Add(time.Duration(hours)*time.Hour))
		assert.Equal(t, wantStart, start)
		assert.Equal(t, wantEnd, end)
	}
}

func TestContains(t *testing.T) {
	start := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 1)

	assert.True(t, Contains(start, end, start))
	assert.True(t, Contains(start, end, start.Add(12*time.Hour)))
	assert.False(t, Contains(start, end, end))
	assert.False(t, Contains(start, end, start.Add(-time.Nanosecond)))
}

func TestUnknownCadenceFallsBackToDaily(t *testing.T) {
	ref := time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC)
	start, end := Bounds(domain.PeriodType("fortnightly"), ref)
	wantStart, wantEnd := Bounds(domain.PeriodDaily, ref)

	assert.Equal(t, wantStart, start)
	assert.Equal(t, wantEnd, end)
}
