package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
)

type transactionRepo struct{}

// NewTransactionRepository returns a pgx-backed TransactionRepository.
func NewTransactionRepository() TransactionRepository {
	return &transactionRepo{}
}

// Insert appends to the ledger. There is no update or delete path on this
// table anywhere in the codebase; the history is the reconciliation source
// of truth.
func (r *transactionRepo) Insert(ctx context.Context, db DBTX, entry *domain.PointTransaction) (*domain.PointTransaction, error) {
	row := db.QueryRow(ctx, `
		INSERT INTO point_transactions (id, user_id, action, type, points, entity_type, entity_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, now())
		RETURNING id, user_id, action, type, points, entity_type, entity_id, created_at`,
		entry.ID, entry.UserID, entry.Action, string(entry.Type), entry.Points,
		entry.EntityType, entry.EntityID)
	return scanTransaction(row)
}

func (r *transactionRepo) ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.PointTransaction, error) {
	rows, err := db.Query(ctx, `
		SELECT id, user_id, action, type, points, entity_type, entity_id, created_at
		FROM point_transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var entries []domain.PointTransaction
	for rows.Next() {
		var e domain.PointTransaction
		err := rows.Scan(&e.ID, &e.UserID, &e.Action, &e.Type, &e.Points,
			&e.EntityType, &e.EntityID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func scanTransaction(row pgx.Row) (*domain.PointTransaction, error) {
	var e domain.PointTransaction
	err := row.Scan(&e.ID, &e.UserID, &e.Action, &e.Type, &e.Points,
		&e.EntityType, &e.EntityID, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction: %w", err)
	}
	return &e, nil
}
