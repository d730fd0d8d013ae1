package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBadgeConditionMet(t *testing.T) {
	c := BadgeCondition{Type: CondForumAnswers, Value: 10}

	assert.False(t, c.Met(9))
	assert.True(t, c.Met(10))
	assert.True(t, c.Met(11))
}

func TestEventBadgesNeverAutoGrant(t *testing.T) {
	c := BadgeCondition{Type: CondEvent, Value: 0}
	assert.False(t, c.Met(0))
	assert.False(t, c.Met(1e9))
}

func TestAccountAgeYears(t *testing.T) {
	now := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	assert.InDelta(t, 1.0, AccountAgeYears(now.AddDate(0, 0, -365), now), 0.01)
	assert.InDelta(t, 0.5, AccountAgeYears(now.Add(-365*12*time.Hour), now), 0.01)
	assert.Zero(t, AccountAgeYears(now, now))
}

func TestAccountAgeCondition(t *testing.T) {
	c := BadgeCondition{Type: CondAccountAge, Value: 1}
	now := time.Date(2026, 3, 17, 0, 0, 0, 0, time.UTC)

	assert.False(t, c.Met(AccountAgeYears(now.AddDate(0, 0, -300), now)))
	assert.True(t, c.Met(AccountAgeYears(now.AddDate(0, 0, -400), now)))
}
