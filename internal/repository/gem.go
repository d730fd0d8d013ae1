package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
)

type gemRepo struct{}

// NewGemRepository returns a pgx-backed GemRepository.
func NewGemRepository() GemRepository {
	return &gemRepo{}
}

func (r *gemRepo) Get(ctx context.Context, db DBTX, userID uuid.UUID) (*domain.Gem, error) {
	row := db.QueryRow(ctx,
		`SELECT user_id, balance, total_earned, total_spent FROM gems WHERE user_id = $1`, userID)
	return scanGem(row)
}

// Credit upserts the singleton, creating it on first earn.
func (r *gemRepo) Credit(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int) (*domain.Gem, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO gems (user_id, balance, total_earned, total_spent)
		VALUES ($1, $2, $2, 0)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = gems.balance + $2,
		    total_earned = gems.total_earned + $2
		RETURNING user_id, balance, total_earned, total_spent`,
		userID, amount)
	return scanGem(row)
}

// Debit floors the balance at zero; total_spent records what was actually
// deducted. All column references read the pre-update row, so the LEAST and
// GREATEST expressions are consistent with each other.
func (r *gemRepo) Debit(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int) (*domain.Gem, error) {
	row := tx.QueryRow(ctx, `
		INSERT INTO gems (user_id, balance, total_earned, total_spent)
		VALUES ($1, 0, 0, 0)
		ON CONFLICT (user_id) DO UPDATE
		SET balance = GREATEST(gems.balance - $2, 0),
		    total_spent = gems.total_spent + LEAST(gems.balance, $2)
		RETURNING user_id, balance, total_earned, total_spent`,
		userID, amount)
	return scanGem(row)
}

func scanGem(row pgx.Row) (*domain.Gem, error) {
	var g domain.Gem
	err := row.Scan(&g.UserID, &g.Balance, &g.TotalEarned, &g.TotalSpent)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan gem wallet: %w", err)
	}
	return &g, nil
}
