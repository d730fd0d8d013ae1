package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revisia/progression/internal/domain"
)

func TestValidateClaimDateAcceptsToday(t *testing.T) {
	now := time.Date(2026, 3, 17, 15, 30, 0, 0, time.UTC)

	day, err := validateClaimDate(now, now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), day)

	// Any instant of the same day normalizes to the same claim key.
	day2, err := validateClaimDate(time.Date(2026, 3, 17, 0, 0, 1, 0, time.UTC), now)
	require.NoError(t, err)
	assert.Equal(t, day, day2)
}

func TestValidateClaimDateRejectsOtherDays(t *testing.T) {
	now := time.Date(2026, 3, 17, 15, 30, 0, 0, time.UTC)

	for _, requested := range []time.Time{
		now.AddDate(0, 0, -1),
		now.AddDate(0, 0, 1),
		now.AddDate(0, -1, 0),
	} {
		_, err := validateClaimDate(requested, now)
		require.Error(t, err)

		var appErr *domain.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "OUT_OF_WINDOW", appErr.Code)
	}
}

func TestBuildDaySpecialOverridesFormula(t *testing.T) {
	svc := &CalendarService{specials: domain.DefaultSpecialDays()}

	christmas := svc.buildDay(time.Date(2026, 12, 25, 0, 0, 0, 0, time.UTC))
	assert.True(t, christmas.IsSpecial)
	assert.Equal(t, "christmas", christmas.Theme)
	assert.Equal(t, domain.CalendarRewardGems, christmas.Reward.Type)
	assert.Equal(t, 10, christmas.Reward.Amount)

	ordinary := svc.buildDay(time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC))
	assert.False(t, ordinary.IsSpecial)
	assert.Equal(t, "default", ordinary.Theme)
	assert.Equal(t, domain.NormalDayReward(ordinary.Day), ordinary.Reward)
}

func TestValidateClaimDateMidnightBoundary(t *testing.T) {
	// One nanosecond before midnight still belongs to the closing day.
	now := time.Date(2026, 3, 17, 23, 59, 59, 999999999, time.UTC)

	_, err := validateClaimDate(time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC), now)
	assert.NoError(t, err)

	_, err = validateClaimDate(time.Date(2026, 3, 18, 0, 0, 0, 0, time.UTC), now)
	assert.Error(t, err)
}
