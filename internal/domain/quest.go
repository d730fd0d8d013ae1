package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// PeriodType is the cadence of a quest.
type PeriodType string

const (
	PeriodDaily   PeriodType = "daily"
	PeriodWeekly  PeriodType = "weekly"
	PeriodMonthly PeriodType = "monthly"
)

// AllPeriodTypes lists every cadence, in initialization order.
var AllPeriodTypes = []PeriodType{PeriodDaily, PeriodWeekly, PeriodMonthly}

// ParsePeriodType validates a wire-format period string.
func ParsePeriodType(s string) (PeriodType, error) {
	switch PeriodType(s) {
	case PeriodDaily, PeriodWeekly, PeriodMonthly:
		return PeriodType(s), nil
	}
	return "", ErrValidation(fmt.Sprintf("unknown period type: %s", s))
}

// QuestRewardType enumerates what a quest pays out.
type QuestRewardType string

const (
	RewardPoints QuestRewardType = "points"
	RewardGems   QuestRewardType = "gems"
	RewardChest  QuestRewardType = "chest"
)

// ConditionMetadata holds the optional guards on a quest condition.
type ConditionMetadata struct {
	MinScore int    `json:"min_score,omitempty"` // quiz_score quests
	Subject  string `json:"subject,omitempty"`   // subject-scoped fiche_create quests
}

// QuestCondition is the action a quest counts and how many times.
type QuestCondition struct {
	Action   ActionType         `json:"action"`
	Target   int                `json:"target"`
	Metadata *ConditionMetadata `json:"metadata,omitempty"`
}

// QuestReward is one configured payout. Rewards are applied in declared order.
type QuestReward struct {
	Type      QuestRewardType `json:"type"`
	Amount    int             `json:"amount,omitempty"`
	ChestType ChestType       `json:"chest_type,omitempty"`
}

// Quest is an immutable catalog entry, authored externally.
type Quest struct {
	ID        uuid.UUID      `json:"id"`
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	Type      PeriodType     `json:"type"`
	Condition QuestCondition `json:"condition"`
	Rewards   []QuestReward  `json:"rewards"`
	IsActive  bool           `json:"is_active"`
	StartsAt  *time.Time     `json:"starts_at,omitempty"`
	EndsAt    *time.Time     `json:"ends_at,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}

// ValidAt reports whether the quest's optional validity window contains t.
func (q Quest) ValidAt(t time.Time) bool {
	if q.StartsAt != nil && t.Before(*q.StartsAt) {
		return false
	}
	if q.EndsAt != nil && t.After(*q.EndsAt) {
		return false
	}
	return true
}

// ValidForPeriod reports whether the quest's validity window overlaps the
// [start, end) period: startsAt ≤ end and endsAt ≥ start, unset bounds pass.
func (q Quest) ValidForPeriod(start, end time.Time) bool {
	if q.StartsAt != nil && q.StartsAt.After(end) {
		return false
	}
	if q.EndsAt != nil && q.EndsAt.Before(start) {
		return false
	}
	return true
}

// AcceptsAction applies the metadata guards for a matching action event.
// A quiz_score quest requires the score to reach the configured minimum;
// a subject-scoped fiche_create quest requires an exact subject match.
func (q Quest) AcceptsAction(action ActionType, md ActionMetadata) bool {
	if q.Condition.Action != action {
		return false
	}
	if q.Condition.Metadata == nil {
		return true
	}
	switch action {
	case ActionQuizScore:
		return md.Score >= q.Condition.Metadata.MinScore
	case ActionFicheCreate:
		if q.Condition.Metadata.Subject != "" {
			return md.Subject == q.Condition.Metadata.Subject
		}
		return true
	case ActionForumAnswer, ActionForumAnswerValidated, ActionQuizComplete,
		ActionCourseComplete, ActionFicheLikeReceived:
		return true
	}
	return true
}

// ProgressStatus is the lifecycle of a QuestProgress row. It only advances:
// in_progress → completed → claimed.
type ProgressStatus string

const (
	StatusInProgress ProgressStatus = "in_progress"
	StatusCompleted  ProgressStatus = "completed"
	StatusClaimed    ProgressStatus = "claimed"
)

// QuestProgress tracks one user's progress on one quest for one period.
// Exactly one row exists per (user, quest, periodStart).
type QuestProgress struct {
	ID          uuid.UUID      `json:"id"`
	UserID      uuid.UUID      `json:"user_id"`
	QuestID     uuid.UUID      `json:"quest_id"`
	PeriodStart time.Time      `json:"period_start"`
	PeriodEnd   time.Time      `json:"period_end"`
	Progress    int            `json:"progress"`
	Status      ProgressStatus `json:"status"`
	CompletedAt *time.Time     `json:"completed_at,omitempty"`
	ClaimedAt   *time.Time     `json:"claimed_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}

// QuestProgressDetail is a progress row joined with its static quest fields,
// the projection returned to the UI layer.
type QuestProgressDetail struct {
	QuestProgress
	Slug    string        `json:"slug"`
	Name    string        `json:"name"`
	Type    PeriodType    `json:"type"`
	Action  ActionType    `json:"action"`
	Target  int           `json:"target"`
	Rewards []QuestReward `json:"rewards"`
}
