package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/repository"
)

// BadgeService evaluates the badge catalog against a user's aggregate
// activity and grants whatever newly qualifies. Badges are permanent;
// revocation does not exist.
type BadgeService struct {
	pool     *pgxpool.Pool
	badges   repository.BadgeRepository
	activity repository.ActivityRepository
	users    repository.UserRepository
	outbox   repository.OutboxRepository
	logger   *slog.Logger
	now      func() time.Time
}

// NewBadgeService creates a BadgeService.
func NewBadgeService(pool *pgxpool.Pool, badges repository.BadgeRepository, activity repository.ActivityRepository, users repository.UserRepository, outbox repository.OutboxRepository, logger *slog.Logger) *BadgeService {
	return &BadgeService{
		pool:     pool,
		badges:   badges,
		activity: activity,
		users:    users,
		outbox:   outbox,
		logger:   logger,
		now:      time.Now,
	}
}

// EvaluateAll runs every catalog badge the user does not own yet against the
// current aggregates and returns the newly granted ones. Re-running is free:
// owned badges are skipped up front and the grant is conflict-safe anyway.
func (s *BadgeService) EvaluateAll(ctx context.Context, userID uuid.UUID) ([]domain.Badge, error) {
	user, err := s.users.FindByID(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound("user", userID.String())
	}

	owned, err := s.badges.ListOwnedSlugs(ctx, s.pool, userID)
	if err != nil {
		return nil, err
	}
	catalog, err := s.badges.ListAll(ctx, s.pool)
	if err != nil {
		return nil, err
	}

	var granted []domain.Badge
	for _, badge := range catalog {
		if owned[badge.Slug] {
			continue
		}

		observed, err := s.observe(ctx, userID, user, badge.Condition.Type)
		if err != nil {
			return granted, err
		}
		if !badge.Condition.Met(observed) {
			continue
		}

		inserted, err := s.grant(ctx, userID, badge)
		if err != nil {
			return granted, err
		}
		if inserted {
			granted = append(granted, badge)
			s.logger.Info("badge granted", "user_id", userID, "badge", badge.Slug)
		}
	}
	return granted, nil
}

// observe resolves one condition type to the user's current aggregate value.
func (s *BadgeService) observe(ctx context.Context, userID uuid.UUID, user *domain.User, ct domain.BadgeConditionType) (float64, error) {
	var (
		n   int64
		err error
	)
	switch ct {
	case domain.CondForumAnswers:
		n, err = s.activity.CountForumAnswers(ctx, s.pool, userID)
	case domain.CondValidatedAnswers:
		n, err = s.activity.CountValidatedAnswers(ctx, s.pool, userID)
	case domain.CondQuizSuccess:
		n, err = s.activity.CountQuizSuccesses(ctx, s.pool, userID)
	case domain.CondFichesCreated:
		n, err = s.activity.CountFiches(ctx, s.pool, userID)
	case domain.CondFicheLikes:
		n, err = s.activity.SumFicheLikes(ctx, s.pool, userID)
	case domain.CondFicheBookmarks:
		n, err = s.activity.SumFicheBookmarks(ctx, s.pool, userID)
	case domain.CondDistinctSubjects:
		n, err = s.activity.CountDistinctSubjects(ctx, s.pool, userID)
	case domain.CondAccountAge:
		return domain.AccountAgeYears(user.CreatedAt, s.now()), nil
	case domain.CondEvent:
		return 0, nil
	default:
		return 0, domain.ErrConfiguration(fmt.Sprintf("unknown badge condition type %q", ct))
	}
	if err != nil {
		return 0, fmt.Errorf("observe %s: %w", ct, err)
	}
	return float64(n), nil
}

// grant inserts the badge and its event atomically. Returns false when a
// concurrent evaluation got there first.
func (s *BadgeService) grant(ctx context.Context, userID uuid.UUID, badge domain.Badge) (bool, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted, err := s.badges.Grant(ctx, tx, userID, badge.Slug)
	if err != nil {
		return false, err
	}
	if inserted {
		if err := s.outbox.Insert(ctx, tx, domain.NewBadgeGrantedEvent(userID, badge)); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return false, fmt.Errorf("commit tx: %w", err)
	}
	return inserted, nil
}

// ListCatalog returns the full badge catalog with the user's owned set.
func (s *BadgeService) ListCatalog(ctx context.Context, userID uuid.UUID) ([]domain.Badge, map[string]bool, error) {
	catalog, err := s.badges.ListAll(ctx, s.pool)
	if err != nil {
		return nil, nil, err
	}
	owned, err := s.badges.ListOwnedSlugs(ctx, s.pool, userID)
	if err != nil {
		return nil, nil, err
	}
	return catalog, owned, nil
}
