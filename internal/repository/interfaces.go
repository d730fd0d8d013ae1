package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/revisia/progression/internal/domain"
)

// DBTX abstracts pgx.Tx and pgxpool.Pool so repositories work with both.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// QuestRepository reads the externally authored quest catalog.
type QuestRepository interface {
	// FindByID returns a quest by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Quest, error)

	// ListActiveByType returns active quests of one cadence, ordered by slug.
	// The stable order matters: the daily rotation is a function of it.
	ListActiveByType(ctx context.Context, db DBTX, pt domain.PeriodType) ([]domain.Quest, error)

	// ListActiveByAction returns active quests counting the given action.
	ListActiveByAction(ctx context.Context, db DBTX, action domain.ActionType) ([]domain.Quest, error)
}

// QuestProgressRepository manages per-user/per-quest/per-period rows.
type QuestProgressRepository interface {
	// EnsureRow creates a zeroed in_progress row if none exists for
	// (user, quest, periodStart). Idempotent under concurrency and retry.
	EnsureRow(ctx context.Context, db DBTX, userID, questID uuid.UUID, start, end time.Time) error

	// Find returns the row for (user, quest, periodStart), nil if absent.
	Find(ctx context.Context, db DBTX, userID, questID uuid.UUID, start time.Time) (*domain.QuestProgress, error)

	// LockForUpdate acquires a row-level lock (SELECT FOR UPDATE) on the
	// progress row. Must be called within a transaction.
	LockForUpdate(ctx context.Context, tx pgx.Tx, userID, questID uuid.UUID, start time.Time) (*domain.QuestProgress, error)

	// Increment adds 1 to progress iff the row is still in_progress.
	// Returns the updated row, or nil when the row was already completed
	// or claimed.
	Increment(ctx context.Context, db DBTX, id uuid.UUID) (*domain.QuestProgress, error)

	// MarkCompleted transitions in_progress → completed. Returns whether
	// this call performed the transition, so the completion notification
	// fires exactly once.
	MarkCompleted(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) (bool, error)

	// MarkClaimed transitions completed → claimed.
	MarkClaimed(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error

	// ListDetailsByPeriod returns the user's rows for one cadence and
	// period start, joined with static quest fields.
	ListDetailsByPeriod(ctx context.Context, db DBTX, userID uuid.UUID, pt domain.PeriodType, start time.Time) ([]domain.QuestProgressDetail, error)
}

// ChestRepository reads the chest catalog.
type ChestRepository interface {
	// FindByID returns a chest by ID, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.Chest, error)

	// FindActiveByType returns an active chest of the given rarity, nil if absent.
	FindActiveByType(ctx context.Context, db DBTX, ct domain.ChestType) (*domain.Chest, error)
}

// ChestRewardRepository persists chest lottery audit records.
type ChestRewardRepository interface {
	// Insert writes a new (unclaimed) audit record.
	Insert(ctx context.Context, db DBTX, reward *domain.ChestReward) error

	// MarkClaimed flips the audit record to claimed.
	MarkClaimed(ctx context.Context, db DBTX, id uuid.UUID, at time.Time) error

	// ListByUser returns a user's chest outcomes, newest first.
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.ChestReward, error)
}

// BadgeRepository reads the badge catalog and manages the per-user set.
type BadgeRepository interface {
	// ListAll returns the full badge catalog.
	ListAll(ctx context.Context, db DBTX) ([]domain.Badge, error)

	// ListOwnedSlugs returns the user's badge set.
	ListOwnedSlugs(ctx context.Context, db DBTX, userID uuid.UUID) (map[string]bool, error)

	// Grant appends a badge to the user's set. Returns false when the user
	// already owned it; duplicates are impossible by constraint.
	Grant(ctx context.Context, db DBTX, userID uuid.UUID, slug string) (bool, error)
}

// ActivityRepository aggregates the surrounding app's user history for the
// badge evaluator. All methods are read-only.
type ActivityRepository interface {
	CountForumAnswers(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
	CountValidatedAnswers(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
	CountQuizSuccesses(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
	CountFiches(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
	SumFicheLikes(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
	SumFicheBookmarks(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
	CountDistinctSubjects(ctx context.Context, db DBTX, userID uuid.UUID) (int64, error)
}

// UserRepository provides the partial user view this core mutates.
type UserRepository interface {
	// FindByID returns a user, nil if absent.
	FindByID(ctx context.Context, db DBTX, id uuid.UUID) (*domain.User, error)

	// LockForUpdate acquires a row-level lock and returns the user.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*domain.User, error)

	// AddPoints adjusts the balance with server-side arithmetic and returns
	// the updated user.
	AddPoints(ctx context.Context, tx pgx.Tx, id uuid.UUID, delta int) (*domain.User, error)
}

// TransactionRepository appends to and reads the point ledger. Entries are
// never updated or deleted.
type TransactionRepository interface {
	// Insert appends one ledger entry and returns the stored row.
	Insert(ctx context.Context, db DBTX, entry *domain.PointTransaction) (*domain.PointTransaction, error)

	// ListByUser returns entries newest first.
	ListByUser(ctx context.Context, db DBTX, userID uuid.UUID, limit int) ([]domain.PointTransaction, error)
}

// GemRepository manages the per-user gem singleton.
type GemRepository interface {
	// Get returns the user's gem wallet, nil if never created.
	Get(ctx context.Context, db DBTX, userID uuid.UUID) (*domain.Gem, error)

	// Credit upserts the singleton, adding to balance and totalEarned.
	Credit(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int) (*domain.Gem, error)

	// Debit subtracts from balance, floored at zero, adding the actually
	// spent amount to totalSpent.
	Debit(ctx context.Context, tx pgx.Tx, userID uuid.UUID, amount int) (*domain.Gem, error)
}

// CalendarRepository manages calendar days and claim tokens.
type CalendarRepository interface {
	// UpsertDay creates or replaces the singleton for a normalized date.
	UpsertDay(ctx context.Context, db DBTX, day *domain.CalendarDay) error

	// FindDay returns the day singleton, nil if absent.
	FindDay(ctx context.Context, db DBTX, day time.Time) (*domain.CalendarDay, error)

	// ListRange returns days in [from, to], ascending.
	ListRange(ctx context.Context, db DBTX, from, to time.Time) ([]domain.CalendarDay, error)

	// InsertClaim writes the claim token for (user, day). Returns false on
	// a duplicate: the unique constraint is the claim-serialization point.
	InsertClaim(ctx context.Context, db DBTX, userID uuid.UUID, day time.Time) (bool, error)

	// ListClaimedDays returns the user's claimed dates within [from, to].
	ListClaimedDays(ctx context.Context, db DBTX, userID uuid.UUID, from, to time.Time) (map[time.Time]bool, error)
}

// OutboxRepository provides access to the event_outbox table.
type OutboxRepository interface {
	// Insert writes an outbox event (within the same transaction as the
	// state change it describes).
	Insert(ctx context.Context, db DBTX, draft domain.OutboxDraft) error

	// FetchUnpublished returns pending events for the poller.
	FetchUnpublished(ctx context.Context, db DBTX, limit int) ([]OutboxRow, error)

	// MarkPublished removes delivered events.
	MarkPublished(ctx context.Context, db DBTX, ids []int64) error
}

// OutboxRow is a pending outbox event with its queue sequence number.
type OutboxRow struct {
	SeqID int64
	domain.OutboxDraft
}
