package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
)

type chestRepo struct{}

// NewChestRepository returns a pgx-backed ChestRepository.
func NewChestRepository() ChestRepository {
	return &chestRepo{}
}

func (r *chestRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Chest, error) {
	row := db.QueryRow(ctx,
		`SELECT id, type, entries, is_active FROM chests WHERE id = $1`, id)
	return scanChest(row)
}

func (r *chestRepo) FindActiveByType(ctx context.Context, db DBTX, ct domain.ChestType) (*domain.Chest, error) {
	row := db.QueryRow(ctx,
		`SELECT id, type, entries, is_active FROM chests WHERE type = $1 AND is_active = true LIMIT 1`,
		string(ct))
	return scanChest(row)
}

func scanChest(row pgx.Row) (*domain.Chest, error) {
	var c domain.Chest
	var entries []byte
	err := row.Scan(&c.ID, &c.Type, &entries, &c.IsActive)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan chest: %w", err)
	}
	if err := json.Unmarshal(entries, &c.Entries); err != nil {
		return nil, fmt.Errorf("decode chest entries: %w", err)
	}
	return &c, nil
}

type chestRewardRepo struct{}

// NewChestRewardRepository returns a pgx-backed ChestRewardRepository.
func NewChestRewardRepository() ChestRewardRepository {
	return &chestRewardRepo{}
}

func (r *chestRewardRepo) Insert(ctx context.Context, db DBTX, reward *domain.ChestReward) error {
	_, err := db.Exec(ctx, `
		INSERT INTO chest_rewards
		  (id, user_id, chest_id, reward_type, amount, cosmetic_type, cosmetic_id, claimed, claimed_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		reward.ID, reward.UserID, reward.ChestID, string(reward.RewardType),
		reward.Amount, reward.CosmeticType, reward.CosmeticID,
		reward.Claimed, reward.ClaimedAt, reward.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert chest reward: %w", err)
	}
	return nil
}

func (r *chestRewardRepo) MarkClaimed(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error {
	_, err := db.Exec(ctx,
		`UPDATE chest_rewards SET claimed = true, claimed_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark chest reward claimed: %w", err)
	}
	return nil
}

func (r *chestRewardRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.ChestReward, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, chest_id, reward_type, amount, cosmetic_type, cosmetic_id, claimed, claimed_at, created_at
		FROM chest_rewards
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list chest rewards: %w", err)
	}
	defer rows.Close()

	var rewards []domain.ChestReward
	for rows.Next() {
		var cr domain.ChestReward
		err := rows.Scan(&cr.ID, &cr.UserID, &cr.ChestID, &cr.RewardType, &cr.Amount,
			&cr.CosmeticType, &cr.CosmeticID, &cr.Claimed, &cr.ClaimedAt, &cr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan chest reward: %w", err)
		}
		rewards = append(rewards, cr)
	}
	return rewards, rows.Err()
}
