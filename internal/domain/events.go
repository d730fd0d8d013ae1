package domain

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// QuestCompletedPayload is the notification contract consumed by the
// notifier: notify(userId, questId, questName).
type QuestCompletedPayload struct {
	UserID    uuid.UUID `json:"user_id"`
	QuestID   uuid.UUID `json:"quest_id"`
	QuestName string    `json:"quest_name"`
}

// NewQuestCompletedEvent fires exactly once, on the in_progress → completed
// transition.
func NewQuestCompletedEvent(userID uuid.UUID, quest Quest) OutboxDraft {
	payload, _ := json.Marshal(QuestCompletedPayload{
		UserID:    userID,
		QuestID:   quest.ID,
		QuestName: quest.Name,
	})
	return newDraft(AggregateQuest, quest.ID.String(), EventQuestCompleted, userID.String(), payload)
}

// NewQuestClaimedEvent records a fulfilled quest claim.
func NewQuestClaimedEvent(userID, questID uuid.UUID) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"user_id":  userID.String(),
		"quest_id": questID.String(),
	})
	return newDraft(AggregateQuest, questID.String(), EventQuestClaimed, userID.String(), payload)
}

// NewLedgerPostedEvent is the standard wallet event for a point ledger entry.
func NewLedgerPostedEvent(entry *PointTransaction) OutboxDraft {
	payload, _ := json.Marshal(entry)
	return newDraft(AggregateWallet, entry.UserID.String(), EventLedgerPosted, entry.UserID.String(), payload)
}

// NewGemsAdjustedEvent records a gem balance change.
func NewGemsAdjustedEvent(userID uuid.UUID, delta int, action string, gem *Gem) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"user_id": userID.String(),
		"delta":   delta,
		"action":  action,
		"balance": gem.Balance,
	})
	return newDraft(AggregateWallet, userID.String(), EventGemsAdjusted, userID.String(), payload)
}

// NewChestOpenedEvent records one chest lottery outcome.
func NewChestOpenedEvent(reward *ChestReward) OutboxDraft {
	payload, _ := json.Marshal(reward)
	return newDraft(AggregateChest, reward.ChestID.String(), EventChestOpened, reward.UserID.String(), payload)
}

// NewBadgeGrantedEvent records a newly earned badge.
func NewBadgeGrantedEvent(userID uuid.UUID, badge Badge) OutboxDraft {
	payload, _ := json.Marshal(map[string]string{
		"user_id":    userID.String(),
		"badge_slug": badge.Slug,
		"badge_name": badge.Name,
	})
	return newDraft(AggregateBadge, badge.Slug, EventBadgeGranted, userID.String(), payload)
}

// NewCalendarClaimedEvent records a fulfilled daily calendar claim.
func NewCalendarClaimedEvent(userID uuid.UUID, day time.Time, reward CalendarReward) OutboxDraft {
	payload, _ := json.Marshal(map[string]interface{}{
		"user_id":       userID.String(),
		"day":           day.Format("2006-01-02"),
		"reward_type":   reward.Type,
		"reward_amount": reward.Amount,
	})
	return newDraft(AggregateCalendar, day.Format("2006-01-02"), EventCalendarClaim, userID.String(), payload)
}

func newDraft(agg AggregateType, aggID string, evt EventType, partitionKey string, payload json.RawMessage) OutboxDraft {
	return OutboxDraft{
		EventID:       uuid.New(),
		AggregateType: agg,
		AggregateID:   aggID,
		EventType:     evt,
		PartitionKey:  partitionKey,
		Headers:       json.RawMessage(`{}`),
		Payload:       payload,
		OccurredAt:    time.Now(),
	}
}
