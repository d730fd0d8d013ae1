package domain

import (
	"time"

	"github.com/google/uuid"
)

// EntryType is the direction of a ledger entry. The wire values match the
// labels used by the surrounding application.
type EntryType string

const (
	EntryGain  EntryType = "gain"
	EntryPerte EntryType = "perte"
)

// LedgerAction labels why points moved. Free-form for external writers; the
// engine uses these constants.
const (
	LedgerActionQuestReward    = "quest_reward"
	LedgerActionChestReward    = "chest_reward"
	LedgerActionCalendarReward = "calendar_reward"
)

// PointTransaction is one append-only ledger entry. Entries are never
// mutated or deleted; they are the audit source of truth for balances.
type PointTransaction struct {
	ID         uuid.UUID  `json:"id"`
	UserID     uuid.UUID  `json:"user_id"`
	Action     string     `json:"action"`
	Type       EntryType  `json:"type"`
	Points     int        `json:"points"`
	EntityType string     `json:"entity_type,omitempty"`
	EntityID   *uuid.UUID `json:"entity_id,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Gem is the per-user gem wallet singleton. Balance never goes negative.
type Gem struct {
	UserID      uuid.UUID `json:"user_id"`
	Balance     int       `json:"balance"`
	TotalEarned int       `json:"total_earned"`
	TotalSpent  int       `json:"total_spent"`
}
