package domain

import (
	"time"

	"github.com/google/uuid"
)

// BadgeConditionType is the closed set of aggregate predicates a badge can
// use. New members must be handled in the evaluator's dispatch switch.
type BadgeConditionType string

const (
	CondForumAnswers     BadgeConditionType = "forum_answers"
	CondValidatedAnswers BadgeConditionType = "validated_answers"
	CondQuizSuccess      BadgeConditionType = "quiz_success"
	CondFichesCreated    BadgeConditionType = "fiches_created"
	CondFicheLikes       BadgeConditionType = "fiche_likes"
	CondFicheBookmarks   BadgeConditionType = "fiche_bookmarks"
	CondDistinctSubjects BadgeConditionType = "distinct_subjects"
	CondAccountAge       BadgeConditionType = "account_age"
	// CondEvent badges are granted manually; the evaluator never awards them.
	CondEvent BadgeConditionType = "event"
)

// BadgeCondition pairs a predicate type with its threshold.
type BadgeCondition struct {
	Type  BadgeConditionType `json:"type"`
	Value float64            `json:"value"`
}

// Met reports whether an observed aggregate satisfies the condition.
// Every predicate is observed ≥ value; event conditions never auto-grant.
func (c BadgeCondition) Met(observed float64) bool {
	if c.Type == CondEvent {
		return false
	}
	return observed >= c.Value
}

// Badge is a permanent achievement from the static catalog.
type Badge struct {
	ID        uuid.UUID      `json:"id"`
	Slug      string         `json:"slug"`
	Name      string         `json:"name"`
	Condition BadgeCondition `json:"condition"`
	Category  string         `json:"category"`
	Rarity    string         `json:"rarity"`
}

// AccountAgeYears converts account seniority to fractional years, the unit
// used by account_age conditions.
func AccountAgeYears(createdAt, now time.Time) float64 {
	return now.Sub(createdAt).Hours() / (365 * 24)
}
