package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EventType enumerates all domain event types.
type EventType string

const (
	EventQuestCompleted EventType = "progression.quest.completed"
	EventQuestClaimed   EventType = "progression.quest.claimed"
	EventLedgerPosted   EventType = "progression.ledger.posted"
	EventGemsAdjusted   EventType = "progression.gems.adjusted"
	EventChestOpened    EventType = "progression.chest.opened"
	EventBadgeGranted   EventType = "progression.badge.granted"
	EventCalendarClaim  EventType = "progression.calendar.claimed"
)

// AggregateType enumerates the aggregate root types for outbox events.
type AggregateType string

const (
	AggregateQuest    AggregateType = "quest"
	AggregateWallet   AggregateType = "wallet"
	AggregateChest    AggregateType = "chest"
	AggregateBadge    AggregateType = "badge"
	AggregateCalendar AggregateType = "calendar"
)

// OutboxDraft is the payload written to the event_outbox table. Events are
// inserted in the same transaction as the state change they describe, so a
// failed notification can never roll back the write it reports.
type OutboxDraft struct {
	EventID       uuid.UUID       `json:"eventId"`
	AggregateType AggregateType   `json:"aggregateType"`
	AggregateID   string          `json:"aggregateId"`
	EventType     EventType       `json:"eventType"`
	PartitionKey  string          `json:"partitionKey"`
	Headers       json.RawMessage `json:"headers"`
	Payload       json.RawMessage `json:"payload"`
	OccurredAt    time.Time       `json:"occurredAt"`
}
