package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/revisia/progression/internal/domain"
)

type badgeRepo struct{}

// NewBadgeRepository returns a pgx-backed BadgeRepository.
func NewBadgeRepository() BadgeRepository {
	return &badgeRepo{}
}

func (r *badgeRepo) ListAll(ctx context.Context, db DBTX) ([]domain.Badge, error) {
	rows, err := db.Query(ctx, `
		SELECT id, slug, name, condition_type, condition_value, category, rarity
		FROM badges
		ORDER BY slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("list badges: %w", err)
	}
	defer rows.Close()

	var badges []domain.Badge
	for rows.Next() {
		var b domain.Badge
		err := rows.Scan(&b.ID, &b.Slug, &b.Name, &b.Condition.Type, &b.Condition.Value, &b.Category, &b.Rarity)
		if err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		badges = append(badges, b)
	}
	return badges, rows.Err()
}

func (r *badgeRepo) ListOwnedSlugs(ctx context.Context, db DBTX, userID uuid.UUID) (map[string]bool, error) {
	rows, err := db.Query(ctx,
		`SELECT badge_slug FROM user_badges WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list owned badges: %w", err)
	}
	defer rows.Close()

	owned := make(map[string]bool)
	for rows.Next() {
		var slug string
		if err := rows.Scan(&slug); err != nil {
			return nil, fmt.Errorf("scan owned badge: %w", err)
		}
		owned[slug] = true
	}
	return owned, rows.Err()
}

// Grant appends to the user's badge set. The primary key on
// (user_id, badge_slug) makes duplicates impossible, concurrent sweeps
// included.
func (r *badgeRepo) Grant(ctx context.Context, db DBTX, userID uuid.UUID, slug string) (bool, error) {
	tag, err := db.Exec(ctx, `
		INSERT INTO user_badges (user_id, badge_slug, granted_at)
		VALUES ($1, $2, now())
		ON CONFLICT (user_id, badge_slug) DO NOTHING`,
		userID, slug)
	if err != nil {
		return false, fmt.Errorf("grant badge: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}
