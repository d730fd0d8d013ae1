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

type progressRepo struct{}

// NewQuestProgressRepository returns a pgx-backed QuestProgressRepository.
func NewQuestProgressRepository() QuestProgressRepository {
	return &progressRepo{}
}

const progressColumns = `id, user_id, quest_id, period_start, period_end,
	progress, status, completed_at, claimed_at, created_at`

// EnsureRow relies on the UNIQUE(user_id, quest_id, period_start) index so a
// period's row is created exactly once no matter how many callers race.
func (r *progressRepo) EnsureRow(ctx context.Context, db DBTX, userID, questID uuid.UUID, start, end time.Time) error {
	_, err := db.Exec(ctx, `
		INSERT INTO quest_progress (id, user_id, quest_id, period_start, period_end, progress, status, created_at)
		VALUES ($1, $2, $3, $4, $5, 0, $6, now())
		ON CONFLICT (user_id, quest_id, period_start) DO NOTHING`,
		uuid.New(), userID, questID, start, end, string(domain.StatusInProgress))
	if err != nil {
		return fmt.Errorf("ensure progress row: %w", err)
	}
	return nil
}

func (r *progressRepo) Find(ctx context.Context, db DBTX, userID, questID uuid.UUID, start time.Time) (*domain.QuestProgress, error) {
	row := db.QueryRow(ctx, `
		SELECT `+progressColumns+`
		FROM quest_progress
		WHERE user_id = $1 AND quest_id = $2 AND period_start = $3`,
		userID, questID, start)
	return scanProgress(row)
}

func (r *progressRepo) LockForUpdate(ctx context.Context, tx pgx.Tx, userID, questID uuid.UUID, start time.Time) (*domain.QuestProgress, error) {
	row := tx.QueryRow(ctx, `
		SELECT `+progressColumns+`
		FROM quest_progress
		WHERE user_id = $1 AND quest_id = $2 AND period_start = $3
		FOR UPDATE`,
		userID, questID, start)
	return scanProgress(row)
}

// Increment is a conditional update: once a row leaves in_progress its
// counter is frozen, so repeated actions after completion change nothing.
func (r *progressRepo) Increment(ctx context.Context, db DBTX, id uuid.UUID) (*domain.QuestProgress, error) {
	row := db.QueryRow(ctx, `
		UPDATE quest_progress
		SET progress = progress + 1
		WHERE id = $1 AND status = $2
		RETURNING `+progressColumns,
		id, string(domain.StatusInProgress))
	return scanProgress(row)
}

// MarkCompleted is a conditional transition; the boolean result lets the
// caller fire the completion notification exactly once.
func (r *progressRepo) MarkCompleted(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) (bool, error) {
	tag, err := db.Exec(ctx, `
		UPDATE quest_progress
		SET status = $2, completed_at = $3
		WHERE id = $1 AND status = $4`,
		id, string(domain.StatusCompleted), at, string(domain.StatusInProgress))
	if err != nil {
		return false, fmt.Errorf("mark completed: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *progressRepo) MarkClaimed(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error {
	tag, err := db.Exec(ctx, `
		UPDATE quest_progress
		SET status = $2, claimed_at = $3
		WHERE id = $1 AND status = $4`,
		id, string(domain.StatusClaimed), at, string(domain.StatusCompleted))
	if err != nil {
		return fmt.Errorf("mark claimed: %w", err)
	}
	if tag.RowsAffected() != 1 {
		return domain.ErrInvalidState("quest progress is not completed")
	}
	return nil
}

func (r *progressRepo) ListDetailsByPeriod(ctx context.Context, db DBTX, userID uuid.UUID, pt domain.PeriodType, start time.Time) ([]domain.QuestProgressDetail, error) {
	rows, err := db.Query(ctx, `
		SELECT p.id, p.user_id, p.quest_id, p.period_start, p.period_end,
		       p.progress, p.status, p.completed_at, p.claimed_at, p.created_at,
		       q.slug, q.name, q.type, q.condition_action, q.condition_target, q.rewards
		FROM quest_progress p
		JOIN quests q ON q.id = p.quest_id
		WHERE p.user_id = $1 AND q.type = $2 AND p.period_start = $3
		ORDER BY q.slug ASC`,
		userID, string(pt), start)
	if err != nil {
		return nil, fmt.Errorf("list progress details: %w", err)
	}
	defer rows.Close()

	var details []domain.QuestProgressDetail
	for rows.Next() {
		var d domain.QuestProgressDetail
		var rewards []byte
		err := rows.Scan(&d.ID, &d.UserID, &d.QuestID, &d.PeriodStart, &d.PeriodEnd,
			&d.Progress, &d.Status, &d.CompletedAt, &d.ClaimedAt, &d.CreatedAt,
			&d.Slug, &d.Name, &d.Type, &d.Action, &d.Target, &rewards)
		if err != nil {
			return nil, fmt.Errorf("scan progress detail: %w", err)
		}
		if err := json.Unmarshal(rewards, &d.Rewards); err != nil {
			return nil, fmt.Errorf("decode quest rewards: %w", err)
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

func scanProgress(row pgx.Row) (*domain.QuestProgress, error) {
	var p domain.QuestProgress
	err := row.Scan(&p.ID, &p.UserID, &p.QuestID, &p.PeriodStart, &p.PeriodEnd,
		&p.Progress, &p.Status, &p.CompletedAt, &p.ClaimedAt, &p.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("scan quest progress: %w", err)
	}
	return &p, nil
}
