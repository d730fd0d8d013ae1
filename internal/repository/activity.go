package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// activityRepo runs read-only aggregates over the surrounding app's content
// tables. The badge evaluator is a full-catalog sweep: one query per owned
// predicate, O(#badges) per call, which is fine at this scale.
type activityRepo struct{}

// NewActivityRepository returns a pgx-backed ActivityRepository.
func NewActivityRepository() ActivityRepository {
	return &activityRepo{}
}

func (r *activityRepo) CountForumAnswers(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db,
		`SELECT COUNT(*) FROM forum_answers WHERE user_id = $1`, userID)
}

func (r *activityRepo) CountValidatedAnswers(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db, `
		SELECT COUNT(*) FROM forum_answers
		WHERE user_id = $1 AND status IN ('Validée', 'Meilleure Réponse')`, userID)
}

func (r *activityRepo) CountQuizSuccesses(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db,
		`SELECT COUNT(*) FROM quiz_completions WHERE user_id = $1 AND score > 0`, userID)
}

func (r *activityRepo) CountFiches(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db,
		`SELECT COUNT(*) FROM fiches WHERE user_id = $1`, userID)
}

func (r *activityRepo) SumFicheLikes(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db,
		`SELECT COALESCE(SUM(likes), 0) FROM fiches WHERE user_id = $1`, userID)
}

func (r *activityRepo) SumFicheBookmarks(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db,
		`SELECT COALESCE(SUM(bookmarks), 0) FROM fiches WHERE user_id = $1`, userID)
}

func (r *activityRepo) CountDistinctSubjects(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error) {
	return countQuery(ctx, db,
		`SELECT COUNT(DISTINCT subject) FROM fiches WHERE user_id = $1`, userID)
}

func countQuery(ctx context.Context, db DBTX, sql string, userID uuid.UUID) (int64, error) {
	var n int64
	if err := db.QueryRow(ctx, sql, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("activity aggregate: %w", err)
	}
	return n, nil
}
