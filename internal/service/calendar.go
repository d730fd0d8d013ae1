package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/guard"
	"github.com/revisia/progression/internal/ledger"
	"github.com/revisia/progression/internal/repository"
)

// CalendarService manages the daily login-reward calendar: generation of day
// singletons and the once-per-day claim.
type CalendarService struct {
	pool     *pgxpool.Pool
	calendar repository.CalendarRepository
	engine   *ledger.Engine
	outbox   repository.OutboxRepository
	locks    *guard.KeyedLocks
	specials []domain.SpecialDay
	logger   *slog.Logger
	now      func() time.Time
}

// NewCalendarService creates a CalendarService with the given special-day table.
func NewCalendarService(pool *pgxpool.Pool, calendar repository.CalendarRepository, engine *ledger.Engine, outbox repository.OutboxRepository, locks *guard.KeyedLocks, specials []domain.SpecialDay, logger *slog.Logger) *CalendarService {
	return &CalendarService{
		pool:     pool,
		calendar: calendar,
		engine:   engine,
		outbox:   outbox,
		locks:    locks,
		specials: specials,
		logger:   logger,
		now:      time.Now,
	}
}

// GeneratePeriod upserts day singletons for every date in [from, to]. Special
// days come from the curated table, everything else from the deterministic
// formula. Re-generating a range converges on identical rows.
func (s *CalendarService) GeneratePeriod(ctx context.Context, from, to time.Time) (int, error) {
	from = domain.NormalizeDay(from)
	to = domain.NormalizeDay(to)
	if to.Before(from) {
		return 0, domain.ErrValidation("generation range end precedes start")
	}

	count := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		day := s.buildDay(d)
		if err := s.calendar.UpsertDay(ctx, s.pool, day); err != nil {
			return count, err
		}
		count++
	}
	s.logger.Info("calendar generated", "from", from.Format("2006-01-02"), "to", to.Format("2006-01-02"), "days", count)
	return count, nil
}

func (s *CalendarService) buildDay(d time.Time) *domain.CalendarDay {
	for _, sp := range s.specials {
		if d.Month() == sp.Month && d.Day() == sp.Day {
			return &domain.CalendarDay{
				Day:         d,
				Reward:      sp.Reward,
				Theme:       sp.Theme,
				IsSpecial:   true,
				SpecialName: sp.Name,
				Description: sp.Description,
			}
		}
	}
	return &domain.CalendarDay{
		Day:    d,
		Reward: domain.NormalDayReward(d),
		Theme:  "default",
	}
}

// validateClaimDate normalizes the requested date and enforces the claim
// window: only the current day is claimable, never yesterday or tomorrow.
func validateClaimDate(requested, now time.Time) (time.Time, error) {
	day := domain.NormalizeDay(requested)
	if !day.Equal(domain.NormalizeDay(now)) {
		return time.Time{}, domain.ErrOutOfWindow("only the current day can be claimed")
	}
	return day, nil
}

// Claim fulfills the user's daily reward for the given date. The claim token
// insert is the serialization point: a duplicate request loses the unique
// constraint and gets ALREADY_CLAIMED, never a double credit. A missing day
// singleton is created lazily with the default reward.
func (s *CalendarService) Claim(ctx context.Context, userID uuid.UUID, requested time.Time) (*domain.CalendarDay, error) {
	day, err := validateClaimDate(requested, s.now())
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(guard.CalendarClaimKey(userID, day.Format("2006-01-02")))
	defer unlock()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	inserted, err := s.calendar.InsertClaim(ctx, tx, userID, day)
	if err != nil {
		return nil, err
	}
	if !inserted {
		return nil, domain.ErrAlreadyClaimed("daily reward")
	}

	cd, err := s.calendar.FindDay(ctx, tx, day)
	if err != nil {
		return nil, err
	}
	if cd == nil {
		cd = &domain.CalendarDay{
			Day:    day,
			Reward: domain.CalendarReward{Type: domain.CalendarRewardPoints, Amount: domain.DefaultDayPoints},
			Theme:  "default",
		}
		if err := s.calendar.UpsertDay(ctx, tx, cd); err != nil {
			return nil, err
		}
	}

	switch cd.Reward.Type {
	case domain.CalendarRewardPoints:
		_, _, err = s.engine.CreditPoints(ctx, tx, ledger.PointEntryParams{
			UserID:     userID,
			Amount:     cd.Reward.Amount,
			Action:     domain.LedgerActionCalendarReward,
			EntityType: "calendar_day",
		})
	case domain.CalendarRewardGems:
		_, err = s.engine.CreditGems(ctx, tx, userID, cd.Reward.Amount, domain.LedgerActionCalendarReward)
	default:
		err = domain.ErrConfiguration(fmt.Sprintf("unknown calendar reward type %q", cd.Reward.Type))
	}
	if err != nil {
		return nil, err
	}

	if err := s.outbox.Insert(ctx, tx, domain.NewCalendarClaimedEvent(userID, day, cd.Reward)); err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit tx: %w", err)
	}

	s.logger.Info("calendar claimed", "user_id", userID, "day", day.Format("2006-01-02"))
	return cd, nil
}

// ListRange returns the calendar days in [from, to] decorated with the
// user's claim flags.
func (s *CalendarService) ListRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.CalendarDayView, error) {
	days, err := s.calendar.ListRange(ctx, s.pool, from, to)
	if err != nil {
		return nil, err
	}
	claimed, err := s.calendar.ListClaimedDays(ctx, s.pool, userID, from, to)
	if err != nil {
		return nil, err
	}

	views := make([]domain.CalendarDayView, 0, len(days))
	for _, d := range days {
		views = append(views, domain.CalendarDayView{
			CalendarDay: d,
			Claimed:     claimed[domain.NormalizeDay(d.Day)],
		})
	}
	return views, nil
}
