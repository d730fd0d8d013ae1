package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/period"
	"github.com/revisia/progression/internal/repository"
)

// QuestService is the quest progress tracker: it lazily materializes
// per-period progress rows and advances them as action events arrive.
type QuestService struct {
	pool     *pgxpool.Pool
	quests   repository.QuestRepository
	progress repository.QuestProgressRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewQuestService creates a QuestService.
func NewQuestService(pool *pgxpool.Pool, quests repository.QuestRepository, progress repository.QuestProgressRepository, outbox repository.OutboxRepository, logger *slog.Logger) *QuestService {
	return &QuestService{
		pool:     pool,
		quests:   quests,
		progress: progress,
		outbox:   outbox,
		logger:   logger,
		now:      time.Now,
	}
}

// Initialize find-or-creates a zeroed in_progress row for every quest active
// in the user's current period of the given cadence. Daily quests go through
// the rotation first. Safe to call any number of times.
func (s *QuestService) Initialize(ctx context.Context, userID uuid.UUID, pt domain.PeriodType) error {
	start, end := period.Bounds(pt, s.now())

	quests, err := s.quests.ListActiveByType(ctx, s.pool, pt)
	if err != nil {
		return fmt.Errorf("initialize %s quests: %w", pt, err)
	}

	active := make([]domain.Quest, 0, len(quests))
	for _, q := range quests {
		if q.ValidForPeriod(start, end) {
			active = append(active, q)
		}
	}
	if pt == domain.PeriodDaily {
		active = period.DailyRotation(active, start)
	}

	for _, q := range active {
		if err := s.progress.EnsureRow(ctx, s.pool, userID, q.ID, start, end); err != nil {
			return fmt.Errorf("initialize quest %s: %w", q.Slug, err)
		}
	}
	return nil
}

// RecordAction advances every quest counting the given action. Rows that
// already reached completed or claimed are left untouched; the completion
// notification is emitted exactly once, on the transition, through the
// transactional outbox. Returns the rows touched by this call.
func (s *QuestService) RecordAction(ctx context.Context, userID uuid.UUID, action domain.ActionType, md domain.ActionMetadata) ([]domain.QuestProgress, error) {
	now := s.now()

	quests, err := s.quests.ListActiveByAction(ctx, s.pool, action)
	if err != nil {
		return nil, fmt.Errorf("record action %s: %w", action, err)
	}

	var touched []domain.QuestProgress
	for _, q := range quests {
		if !q.ValidAt(now) || !q.AcceptsAction(action, md) {
			continue
		}

		start, end := period.Bounds(q.Type, now)
		if err := s.progress.EnsureRow(ctx, s.pool, userID, q.ID, start, end); err != nil {
			return touched, err
		}

		row, err := s.progress.Find(ctx, s.pool, userID, q.ID, start)
		if err != nil {
			return touched, err
		}
		if row == nil || row.Status != domain.StatusInProgress {
			continue
		}

		updated, err := s.progress.Increment(ctx, s.pool, row.ID)
		if err != nil {
			return touched, err
		}
		if updated == nil {
			// Lost the race against a concurrent completion; the row is frozen.
			continue
		}

		if updated.Progress >= q.Condition.Target {
			completed, err := s.complete(ctx, userID, q, updated.ID, now)
			if err != nil {
				return touched, err
			}
			if completed {
				updated.Status = domain.StatusCompleted
				updated.CompletedAt = &now
			}
		}
		touched = append(touched, *updated)
	}
	return touched, nil
}

// complete performs the in_progress → completed transition and enqueues the
// notification in the same transaction, so delivery failures can never roll
// back the progress write and the event cannot fire twice.
func (s *QuestService) complete(ctx context.Context, userID uuid.UUID, quest domain.Quest, progressID uuid.UUID, at time.Time) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	transitioned, err := s.progress.MarkCompleted(ctx, tx, progressID, at)
	if err != nil {
		return false, err
	}
	if transitioned {
		if err := s.outbox.Insert(ctx, tx, domain.NewQuestCompletedEvent(userID, quest)); err != nil {
			return false, err
		}
		s.logger.Info("quest completed", "user_id", userID, "quest", quest.Slug)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return transitioned, nil
}

// ListForUser ensures initialization, then returns the user's progress rows
// joined with static quest fields. A nil period lists all three cadences.
func (s *QuestService) ListForUser(ctx context.Context, userID uuid.UUID, pt *domain.PeriodType) ([]domain.QuestProgressDetail, error) {
	types := domain.AllPeriodTypes
	if pt != nil {
		types = []domain.PeriodType{*pt}
	}

	var details []domain.QuestProgressDetail
	for _, t := range types {
		if err := s.Initialize(ctx, userID, t); err != nil {
			return nil, err
		}
		start, _ := period.Bounds(t, s.now())
		rows, err := s.progress.ListDetailsByPeriod(ctx, s.pool, userID, t, start)
		if err != nil {
			return nil, err
		}
		details = append(details, rows...)
	}
	return details, nil
}
