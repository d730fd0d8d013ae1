package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// CalendarRewardType is what a calendar day pays out.
type CalendarRewardType string

const (
	CalendarRewardPoints CalendarRewardType = "points"
	CalendarRewardGems   CalendarRewardType = "gems"
)

// CalendarReward is the payout attached to one calendar day.
type CalendarReward struct {
	Type   CalendarRewardType `json:"type"`
	Amount int                `json:"amount"`
}

// CalendarDay is the per-date singleton in the login-reward calendar.
type CalendarDay struct {
	Day         time.Time      `json:"day"`
	Reward      CalendarReward `json:"reward"`
	Theme       string         `json:"theme"`
	IsSpecial   bool           `json:"is_special"`
	SpecialName string         `json:"special_name,omitempty"`
	Description string         `json:"description,omitempty"`
}

// CalendarDayView is a calendar day with the requesting user's claim state.
type CalendarDayView struct {
	CalendarDay
	Claimed bool `json:"claimed"`
}

// CalendarClaim records one fulfilled daily claim. At most one exists per
// (user, day).
type CalendarClaim struct {
	UserID    uuid.UUID `json:"user_id"`
	Day       time.Time `json:"day"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultDayPoints is the reward of a lazily-created calendar day.
const DefaultDayPoints = 5

// NormalizeDay truncates an instant to its calendar date at midnight UTC,
// the canonical storage key for calendar days and claims.
func NormalizeDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// NormalDayReward computes the deterministic reward for a non-special day.
// With T the Unix-second timestamp of the normalized day, base points are
// floor(5 + |sin(T·0.1)|·5) (always 5–10); independently, when
// |sin(T·0.3)|·100 < 5 the whole day is overridden to exactly 1 gem, which
// lands on roughly 5% of days.
func NormalDayReward(day time.Time) CalendarReward {
	t := float64(NormalizeDay(day).Unix())
	if math.Abs(math.Sin(t*0.3))*100 < 5 {
		return CalendarReward{Type: CalendarRewardGems, Amount: 1}
	}
	points := int(math.Floor(5 + math.Abs(math.Sin(t*0.1))*5))
	return CalendarReward{Type: CalendarRewardPoints, Amount: points}
}

// SpecialDay is one externally curated holiday entry with a fixed reward.
type SpecialDay struct {
	Month       time.Month
	Day         int
	Reward      CalendarReward
	Theme       string
	Name        string
	Description string
}

// DefaultSpecialDays is the curated holiday table applied by the calendar
// generator. The catalog is maintained outside this core; this is its
// injection point.
func DefaultSpecialDays() []SpecialDay {
	return []SpecialDay{
		{Month: time.January, Day: 1, Reward: CalendarReward{Type: CalendarRewardGems, Amount: 5}, Theme: "new_year", Name: "Nouvel An", Description: "Bonne année !"},
		{Month: time.February, Day: 14, Reward: CalendarReward{Type: CalendarRewardPoints, Amount: 20}, Theme: "valentine", Name: "Saint-Valentin", Description: "Un petit bonus pour la Saint-Valentin."},
		{Month: time.June, Day: 21, Reward: CalendarReward{Type: CalendarRewardPoints, Amount: 15}, Theme: "summer", Name: "Fête de la Musique", Description: "L'été commence en musique."},
		{Month: time.October, Day: 31, Reward: CalendarReward{Type: CalendarRewardGems, Amount: 2}, Theme: "halloween", Name: "Halloween", Description: "Des gemmes plutôt que des bonbons."},
		{Month: time.December, Day: 25, Reward: CalendarReward{Type: CalendarRewardGems, Amount: 10}, Theme: "christmas", Name: "Noël", Description: "Joyeux Noël !"},
		{Month: time.December, Day: 31, Reward: CalendarReward{Type: CalendarRewardPoints, Amount: 25}, Theme: "new_year_eve", Name: "Réveillon", Description: "Dernier jour de l'année."},
	}
}
