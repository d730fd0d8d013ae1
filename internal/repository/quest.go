package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
)

type questRepo struct{}

// NewQuestRepository returns a pgx-backed QuestRepository.
func NewQuestRepository() QuestRepository {
	return &questRepo{}
}

const questColumns = `id, slug, name, type, condition_action, condition_target,
	condition_metadata, rewards, is_active, starts_at, ends_at, created_at`

func (r *questRepo) FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Quest, error) {
	row := db.QueryRow(ctx, `SELECT `+questColumns+` FROM quests WHERE id = $1`, id)
	return scanQuest(row)
}

func (r *questRepo) ListActiveByType(ctx context.Context, db DBTX, pt domain.PeriodType) ([]domain.Quest, error) {
	rows, err := db.Query(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE is_active = true AND type = $1
		ORDER BY slug ASC`, string(pt))
	if err != nil {
		return nil, fmt.Errorf("list quests by type: %w", err)
	}
	defer rows.Close()
	return collectQuests(rows)
}

func (r *questRepo) ListActiveByAction(ctx context.Context, db DBTX, action domain.ActionType) ([]domain.Quest, error) {
	rows, err := db.Query(ctx, `
		SELECT `+questColumns+`
		FROM quests
		WHERE is_active = true AND condition_action = $1
		ORDER BY slug ASC`, string(action))
	if err != nil {
		return nil, fmt.Errorf("list quests by action: %w", err)
	}
	defer rows.Close()
	return collectQuests(rows)
}

func collectQuests(rows pgx.Rows) ([]domain.Quest, error) {
	var quests []domain.Quest
	for rows.Next() {
		q, err := scanQuestRow(rows)
		if err != nil {
			return nil, err
		}
		quests = append(quests, *q)
	}
	return quests, rows.Err()
}

func scanQuest(row pgx.Row) (*domain.Quest, error) {
	q, err := scanQuestRow(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return q, err
}

func scanQuestRow(row pgx.Row) (*domain.Quest, error) {
	var q domain.Quest
	var condMeta, rewards []byte
	err := row.Scan(&q.ID, &q.Slug, &q.Name, &q.Type, &q.Condition.Action,
		&q.Condition.Target, &condMeta, &rewards, &q.IsActive, &q.StartsAt, &q.EndsAt, &q.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan quest: %w", err)
	}
	if len(condMeta) > 0 {
		if err := json.Unmarshal(condMeta, &q.Condition.Metadata); err != nil {
			return nil, fmt.Errorf("decode quest condition metadata: %w", err)
		}
	}
	if err := json.Unmarshal(rewards, &q.Rewards); err != nil {
		return nil, fmt.Errorf("decode quest rewards: %w", err)
	}
	return &q, nil
}
