package period

import (
	"time"

	"github.com/revisia/progression/internal/domain"
)

// DailyRotationSize is how many daily quests are live on any given day when
// the catalog offers more.
const DailyRotationSize = 3

// DateSeed hashes a period start date into the rotation seed: a 32-bit
// polynomial string hash of the YYYY-MM-DD form (hash = hash*31 + charCode,
// truncated to signed 32 bits), then its absolute value.
func DateSeed(day time.Time) int64 {
	key := day.Format("2006-01-02")
	var h int32
	for _, c := range key {
		h = h*31 + int32(c)
	}
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return v
}

// DailyRotation selects the day's active subset from the ordered candidate
// list. With DailyRotationSize or fewer candidates all are active. Otherwise
// exactly DailyRotationSize are chosen by an in-place reverse Fisher–Yates
// driven by a linear-congruential generator seeded from the date, so the
// same date and the same ordered list always produce the same set.
func DailyRotation(quests []domain.Quest, periodStart time.Time) []domain.Quest {
	if len(quests) <= DailyRotationSize {
		return quests
	}
	shuffled := make([]domain.Quest, len(quests))
	copy(shuffled, quests)

	seed := DateSeed(periodStart)
	for i := len(shuffled) - 1; i > 0; i-- {
		seed = (seed*9301 + 49297) % 233280
		j := int(seed % int64(i+1))
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	}
	return shuffled[:DailyRotationSize]
}
