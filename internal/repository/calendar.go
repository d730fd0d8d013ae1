package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/revisia/progression/internal/domain"
)

type calendarRepo struct{}

// NewCalendarRepository returns a pgx-backed CalendarRepository.
func NewCalendarRepository() CalendarRepository {
	return &calendarRepo{}
}

// UpsertDay is idempotent: generating the same period twice converges on
// the same rows.
func (r *calendarRepo) UpsertDay(ctx context.Context, db DBTX, day *domain.CalendarDay) error {
	_, err := db.Exec(ctx, `
		INSERT INTO calendar_days (day, reward_type, reward_amount, theme, is_special, special_name, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (day) DO UPDATE
		SET reward_type = EXCLUDED.reward_type,
		    reward_amount = EXCLUDED.reward_amount,
		    theme = EXCLUDED.theme,
		    is_special = EXCLUDED.is_special,
		    special_name = EXCLUDED.special_name,
		    description = EXCLUDED.description`,
		domain.NormalizeDay(day.Day), string(day.Reward.Type), day.Reward.Amount,
		day.Theme, day.IsSpecial, day.SpecialName, day.Description)
	if err != nil {
		return fmt.Errorf("upsert calendar day: %w", err)
	}
	return nil
}

func (r *calendarRepo) FindDay(ctx context.Context, db DBTX, day time.Time) (*domain.CalendarDay, error) {
	row := db.QueryRow(ctx, `
		SELECT day, reward_type, reward_amount, theme, is_special, special_name, description
		FROM calendar_days WHERE day = $1`,
		domain.NormalizeDay(day))
	return scanCalendarDay(row)
}

func (r *calendarRepo) ListRange(ctx context.Context, db DBTX, from, to time.Time) ([]domain.CalendarDay, error) {
	rows, err := db.Query(ctx, `
		SELECT day, reward_type, reward_amount, theme, is_special, special_name, description
		FROM calendar_days
		WHERE day >= $1 AND day <= $2
		ORDER BY day ASC`,
		domain.NormalizeDay(from), domain.NormalizeDay(to))
	if err != nil {
		return nil, fmt.Errorf("list calendar days: %w", err)
	}
	defer rows.Close()

	var days []domain.CalendarDay
	for rows.Next() {
		d, err := scanCalendarDayRow(rows)
		if err != nil {
			return nil, err
		}
		days = append(days, *d)
	}
	return days, rows.Err()
}

// InsertClaim is the atomic claim token: the (user_id, day) primary key
// turns a duplicate claim into a unique violation instead of a double
// credit.
func (r *calendarRepo) InsertClaim(ctx context.Context, db DBTX, userID uuid.UUID, day time.Time) (bool, error) {
	_, err := db.Exec(ctx, `
		INSERT INTO calendar_claims (user_id, day, created_at)
		VALUES ($1, $2, now())`,
		userID, domain.NormalizeDay(day))
	if err != nil {
		if isUniqueViolation(err) {
			return false, nil
		}
		return false, fmt.Errorf("insert calendar claim: %w", err)
	}
	return true, nil
}

func (r *calendarRepo) ListClaimedDays(ctx context.Context, db DBTX, userID uuid.UUID, from, to time.Time) (map[time.Time]bool, error) {
	rows, err := db.Query(ctx, `
		SELECT day FROM calendar_claims
		WHERE user_id = $1 AND day >= $2 AND day <= $3`,
		userID, domain.NormalizeDay(from), domain.NormalizeDay(to))
	if err != nil {
		return nil, fmt.Errorf("list calendar claims: %w", err)
	}
	defer rows.Close()

	claimed := make(map[time.Time]bool)
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("scan calendar claim: %w", err)
		}
		claimed[domain.NormalizeDay(day)] = true
	}
	return claimed, rows.Err()
}

func scanCalendarDay(row pgx.Row) (*domain.CalendarDay, error) {
	d, err := scanCalendarDayRow(row)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return d, err
}

func scanCalendarDayRow(row pgx.Row) (*domain.CalendarDay, error) {
	var d domain.CalendarDay
	err := row.Scan(&d.Day, &d.Reward.Type, &d.Reward.Amount, &d.Theme,
		&d.IsSpecial, &d.SpecialName, &d.Description)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan calendar day: %w", err)
	}
	d.Day = domain.NormalizeDay(d.Day)
	return &d, nil
}
