package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
)

type userRepo struct{}

// NewUserRepository returns a pgx-backed UserRepository.
func NewUserRepository() UserRepository {
	return &userRepo{}
}

func (r *userRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error) {
	row := db.QueryRow(ctx,
		`SELECT id, points, created_at FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *userRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error) {
	row := tx.QueryRow(ctx,
		`SELECT id, points, created_at FROM users WHERE id = $1 FOR UPDATE`, id)
	return scanUser(row)
}

// AddPoints uses server-side arithmetic so concurrent ledger posts never
// lose an update.
func (r *userRepo) AddPoints(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (*domain.User, error) {
	row := tx.QueryRow(ctx, `
		UPDATE users SET points = points + $2
		WHERE id = $1
		RETURNING id, points, created_at`, id, delta)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Points, &u.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}
