package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/guard"
	"github.com/revisia/progression/internal/ledger"
	"github.com/revisia/progression/internal/period"
	"github.com/revisia/progression/internal/repository"
)

// ClaimService fulfills completed quests: rewards post in declared order,
// atomically with the completed → claimed transition.
type ClaimService struct {
	pool     *pgxpool.Pool
	quests   repository.QuestRepository
	progress repository.QuestProgressRepository
	chests   repository.ChestRepository
	chestSvc *ChestService
	engine   *ledger.Engine
	outbox   repository.OutboxRepository
	locks    *guard.KeyedLocks
	logger   *slog.Logger
	now      func() time.Time
}

// NewClaimService creates a ClaimService.
func NewClaimService(
	pool *pgxpool.Pool,
	quests repository.QuestRepository,
	progress repository.QuestProgressRepository,
	chests repository.ChestRepository,
	chestSvc *ChestService,
	engine *ledger.Engine,
	outbox repository.OutboxRepository,
	locks *guard.KeyedLocks,
	logger *slog.Logger,
) *ClaimService {
	return &ClaimService{
		pool:     pool,
		quests:   quests,
		progress: progress,
		chests:   chests,
		chestSvc: chestSvc,
		engine:   engine,
		outbox:   outbox,
		locks:    locks,
		logger:   logger,
		now:      time.Now,
	}
}

// AppliedReward reports one fulfilled reward line of a claim.
type AppliedReward struct {
	Type   domain.QuestRewardType `json:"type"`
	Amount int                    `json:"amount,omitempty"`
	Chest  *domain.ChestReward    `json:"chest,omitempty"`
}

// ClaimResult is the outcome of a successful claim.
type ClaimResult struct {
	QuestID   uuid.UUID       `json:"quest_id"`
	QuestName string          `json:"quest_name"`
	Rewards   []AppliedReward `json:"rewards"`
	ClaimedAt time.Time       `json:"claimed_at"`
}

// Claim fulfills one completed quest for the current period. The keyed lock
// serializes same-process duplicates; the row lock and the status guard on
// the claimed transition make the claim safe across processes.
func (s *ClaimService) Claim(ctx context.Context, userID, questID uuid.UUID) (*ClaimResult, error) {
	unlock := s.locks.Lock(guard.QuestClaimKey(userID, questID))
	defer unlock()

	quest, err := s.quests.FindByID(ctx, s.pool, questID)
	if err != nil {
		return nil, err
	}
	if quest == nil {
		return nil, domain.ErrNotFound("quest", questID.String())
	}
	if len(quest.Rewards) == 0 {
		return nil, domain.ErrConfiguration(fmt.Sprintf("quest %s has no rewards", quest.Slug))
	}

	now := s.now()
	start, _ := period.Bounds(quest.Type, now)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	row, err := s.progress.LockForUpdate(ctx, tx, userID, questID, start)
	if err != nil {
		return nil, err
	}
	if row == nil {
		return nil, domain.ErrNotFound("quest progress", questID.String())
	}
	switch row.Status {
	case domain.StatusClaimed:
		return nil, domain.ErrInvalidState("quest reward already claimed")
	case domain.StatusCompleted:
	default:
		return nil, domain.ErrInvalidState("quest is not completed")
	}

	result := &ClaimResult{QuestID: quest.ID, QuestName: quest.Name, ClaimedAt: now}
	for _, reward := range quest.Rewards {
		applied, err := s.applyReward(ctx, tx, userID, quest, reward)
		if err != nil {
			return nil, err
		}
		result.Rewards = append(result.Rewards, *applied)
	}

	if err := s.progress.MarkClaimed(ctx, tx, row.ID, now); err != nil {
		return nil, err
	}
	if err := s.outbox.Insert(ctx, tx, domain.NewQuestClaimedEvent(userID, quest.ID)); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}
	s.logger.Info("quest claimed", "user_id", userID, "quest", quest.Slug)
	return result, nil
}

func (s *ClaimService) applyReward(ctx context.Context, tx pgx.Tx, userID uuid.UUID, quest *domain.Quest, reward domain.QuestReward) (*AppliedReward, error) {
	switch reward.Type {
	case domain.RewardPoints:
		questID := quest.ID
		_, _, err := s.engine.CreditPoints(ctx, tx, ledger.PointEntryParams{
			UserID:     userID,
			Amount:     reward.Amount,
			Action:     domain.LedgerActionQuestReward,
			EntityType: "quest",
			EntityID:   &questID,
		})
		if err != nil {
			return nil, err
		}
		return &AppliedReward{Type: reward.Type, Amount: reward.Amount}, nil

	case domain.RewardGems:
		if _, err := s.engine.CreditGems(ctx, tx, userID, reward.Amount, domain.LedgerActionQuestReward); err != nil {
			return nil, err
		}
		return &AppliedReward{Type: reward.Type, Amount: reward.Amount}, nil

	case domain.RewardChest:
		chest, err := s.chests.FindActiveByType(ctx, tx, reward.ChestType)
		if err != nil {
			return nil, err
		}
		if chest == nil {
			return nil, domain.ErrConfiguration(fmt.Sprintf("no active %s chest", reward.ChestType))
		}
		opened, err := s.chestSvc.Open(ctx, tx, userID, chest)
		if err != nil {
			return nil, err
		}
		return &AppliedReward{Type: reward.Type, Chest: opened}, nil

	default:
		return nil, domain.ErrConfiguration(fmt.Sprintf("unknown reward type %q on quest %s", reward.Type, quest.Slug))
	}
}
