package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/ledger"
	"github.com/revisia/progression/internal/repository"
)

// ChestService rolls the weighted lottery and applies the result through the
// ledger engine. The draw function is injectable so tests can pin the roll.
type ChestService struct {
	chests  repository.ChestRepository
	rewards repository.ChestRewardRepository
	engine  *ledger.Engine
	outbox  repository.OutboxRepository
	logger  *slog.Logger
	draw    func(total float64) float64
	now     func() time.Time
}

// NewChestService creates a ChestService with a uniform random draw.
func NewChestService(chests repository.ChestRepository, rewards repository.ChestRewardRepository, engine *ledger.Engine, outbox repository.OutboxRepository, logger *slog.Logger) *ChestService {
	return &ChestService{
		chests:  chests,
		rewards: rewards,
		engine:  engine,
		outbox:  outbox,
		logger:  logger,
		draw:    func(total float64) float64 { return rand.Float64() * total },
		now:     time.Now,
	}
}

// Roll draws one entry from the chest's weight table and records it as an
// unclaimed outcome. The audit row is written through the caller's db handle,
// so when a claim transaction aborts, the roll rolls back with it and the
// user never loses an outcome they were not paid for.
func (s *ChestService) Roll(ctx context.Context, db repository.DBTX, userID uuid.UUID, chest *domain.Chest) (*domain.ChestReward, error) {
	total := chest.TotalWeight()
	if total <= 0 {
		return nil, domain.ErrConfiguration(fmt.Sprintf("chest %s has no positive weights", chest.ID))
	}

	idx, err := domain.PickChestEntry(chest.Entries, s.draw(total))
	if err != nil {
		return nil, err
	}
	entry := chest.Entries[idx]

	reward := &domain.ChestReward{
		ID:           uuid.New(),
		UserID:       userID,
		ChestID:      chest.ID,
		RewardType:   entry.Type,
		Amount:       entry.Amount,
		CosmeticType: entry.CosmeticType,
		CosmeticID:   entry.CosmeticID,
		CreatedAt:    s.now(),
	}
	if err := s.rewards.Insert(ctx, db, reward); err != nil {
		return nil, fmt.Errorf("record chest roll: %w", err)
	}
	return reward, nil
}

// ClaimReward applies a rolled outcome to the wallet and marks it claimed.
// Cosmetics have no wallet effect; the audit row is the grant.
func (s *ChestService) ClaimReward(ctx context.Context, tx pgx.Tx, reward *domain.ChestReward) error {
	switch reward.RewardType {
	case domain.ChestEntryPoints:
		rewardID := reward.ID
		_, _, err := s.engine.CreditPoints(ctx, tx, ledger.PointEntryParams{
			UserID:     reward.UserID,
			Amount:     reward.Amount,
			Action:     domain.LedgerActionChestReward,
			EntityType: "chest_reward",
			EntityID:   &rewardID,
		})
		if err != nil {
			return err
		}
	case domain.ChestEntryGems:
		if _, err := s.engine.CreditGems(ctx, tx, reward.UserID, reward.Amount, domain.LedgerActionChestReward); err != nil {
			return err
		}
	case domain.ChestEntryCosmetic:
		s.logger.Info("cosmetic granted",
			"user_id", reward.UserID,
			"cosmetic_type", reward.CosmeticType,
			"cosmetic_id", reward.CosmeticID)
	default:
		return domain.ErrConfiguration(fmt.Sprintf("unknown chest entry type %q", reward.RewardType))
	}

	now := s.now()
	if err := s.rewards.MarkClaimed(ctx, tx, reward.ID, now); err != nil {
		return err
	}
	reward.Claimed = true
	reward.ClaimedAt = &now
	return s.outbox.Insert(ctx, tx, domain.NewChestOpenedEvent(reward))
}

// Open rolls and claims in one step, inside the caller's transaction.
func (s *ChestService) Open(ctx context.Context, tx pgx.Tx, userID uuid.UUID, chest *domain.Chest) (*domain.ChestReward, error) {
	reward, err := s.Roll(ctx, tx, userID, chest)
	if err != nil {
		return nil, err
	}
	if err := s.ClaimReward(ctx, tx, reward); err != nil {
		return nil, err
	}
	return reward, nil
}

// History lists the user's chest outcomes, newest first.
func (s *ChestService) History(ctx context.Context, db repository.DBTX, userID uuid.UUID, limit int) ([]domain.ChestReward, error) {
	return s.rewards.ListByUser(ctx, db, userID, limit)
}
