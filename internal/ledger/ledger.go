// Package ledger is the shared write primitive for every reward path:
// quest claims, chest openings and calendar claims all post through here.
package ledger

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/repository"
)

// Engine provides the foundational ledger operations:
//  1. LockUserForUpdate — row-level pessimistic lock
//  2. CreditPoints / DebitPoints — balance update + append-only entry + outbox event
//  3. CreditGems / DebitGems — gem singleton upsert + outbox event
//
// All writes run within the caller's transaction.
type Engine struct {
	users        repository.UserRepository
	transactions repository.TransactionRepository
	gems         repository.GemRepository
	outbox       repository.OutboxRepository
}

// NewEngine creates a ledger engine with the given repositories.
func NewEngine(
	users repository.UserRepository,
	transactions repository.TransactionRepository,
	gems repository.GemRepository,
	outbox repository.OutboxRepository,
) *Engine {
	return &Engine{
		users:        users,
		transactions: transactions,
		gems:         gems,
		outbox:       outbox,
	}
}

// PointEntryParams describes one point ledger post.
type PointEntryParams struct {
	UserID     uuid.UUID
	Amount     int
	Action     string
	EntityType string
	EntityID   *uuid.UUID
}

// LockUserForUpdate acquires a row-level lock and returns the user.
// Must be called within a transaction.
func (e *Engine) LockUserForUpdate(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (*domain.User, error) {
	user, err := e.users.LockForUpdate(ctx, tx, userID)
	if err != nil {
		return nil, fmt.Errorf("lock user: %w", err)
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}
	return user, nil
}

// CreditPoints adds points to the user's balance and appends a gain entry.
func (e *Engine) CreditPoints(ctx context.Context, tx pgx.Tx, params PointEntryParams) (*domain.PointTransaction, *domain.User, error) {
	return e.postPoints(ctx, tx, params, domain.EntryGain, params.Amount)
}

// DebitPoints removes points from the user's balance and appends a perte entry.
func (e *Engine) DebitPoints(ctx context.Context, tx pgx.Tx, params PointEntryParams) (*domain.PointTransaction, *domain.User, error) {
	return e.postPoints(ctx, tx, params, domain.EntryPerte, -params.Amount)
}

// postPoints is the core write primitive:
//  1. Update the user balance with server-side arithmetic
//  2. Append the ledger entry
//  3. Insert the outbox event (same transaction for atomicity)
func (e *Engine) postPoints(ctx context.Context, tx pgx.Tx, params PointEntryParams, entryType domain.EntryType, delta int) (*domain.PointTransaction, *domain.User, error) {
	if err := domain.ValidatePositiveAmount(params.Amount); err != nil {
		return nil, nil, domain.ErrValidation(err.Error())
	}

	updated, err := e.users.AddPoints(ctx, tx, params.UserID, delta)
	if err != nil {
		return nil, nil, fmt.Errorf("update points: %w", err)
	}
	if updated == nil {
		return nil, nil, domain.ErrNotFound("user", params.UserID.String())
	}

	entry, err := e.transactions.Insert(ctx, tx, &domain.PointTransaction{
		ID:         uuid.New(),
		UserID:     params.UserID,
		Action:     params.Action,
		Type:       entryType,
		Points:     params.Amount,
		EntityType: params.EntityType,
		EntityID:   params.EntityID,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("insert ledger entry: %w", err)
	}

	if err := e.outbox.Insert(ctx, tx, domain.NewLedgerPostedEvent(entry)); err != nil {
		return nil, nil, fmt.Errorf("insert outbox event: %w", err)
	}

	return entry, updated, nil
}

// CreditGems adds gems to the user's wallet, creating it on first earn.
func (e *Engine) CreditGems(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int, action string) (*domain.Gem, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	gem, err := e.gems.Credit(ctx, tx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("credit gems: %w", err)
	}
	if err := e.outbox.Insert(ctx, tx, domain.NewGemsAdjustedEvent(userID, amount, action, gem)); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}
	return gem, nil
}

// DebitGems removes gems from the wallet, flooring the balance at zero.
func (e *Engine) DebitGems(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int, action string) (*domain.Gem, error) {
	if err := domain.ValidatePositiveAmount(amount); err != nil {
		return nil, domain.ErrValidation(err.Error())
	}
	gem, err := e.gems.Debit(ctx, tx, userID, amount)
	if err != nil {
		return nil, fmt.Errorf("debit gems: %w", err)
	}
	if err := e.outbox.Insert(ctx, tx, domain.NewGemsAdjustedEvent(userID, -amount, action, gem)); err != nil {
		return nil, fmt.Errorf("insert outbox event: %w", err)
	}
	return gem, nil
}
