package app

import (
	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/auth"
	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/guard"
	"github.com/revisia/progression/internal/handler"
	adminhandler "github.com/revisia/progression/internal/handler/admin"
	"github.com/revisia/progression/internal/ledger"
	"github.com/revisia/progression/internal/repository"
	"github.com/revisia/progression/internal/service"
)

// RouterDeps holds all dependencies needed by NewRouter.
type RouterDeps struct {
	Pool   *pgxpool.Pool
	JWTMgr *auth.JWTManager
	Logger *slog.Logger
}

// NewRouter assembles the chi.Router with all routes and middleware.
func NewRouter(deps RouterDeps) chi.Router {
	pool := deps.Pool
	jwtMgr := deps.JWTMgr
	logger := deps.Logger

	// Repositories
	questRepo := repository.NewQuestRepository()
	progressRepo := repository.NewQuestProgressRepository()
	chestRepo := repository.NewChestRepository()
	chestRewardRepo := repository.NewChestRewardRepository()
	badgeRepo := repository.NewBadgeRepository()
	activityRepo := repository.NewActivityRepository()
	userRepo := repository.NewUserRepository()
	txRepo := repository.NewTransactionRepository()
	gemRepo := repository.NewGemRepository()
	calendarRepo := repository.NewCalendarRepository()
	outboxRepo := repository.NewOutboxRepository()

	// Ledger engine and claim serialization
	ledgerEngine := ledger.NewEngine(userRepo, txRepo, gemRepo, outboxRepo)
	locks := guard.NewKeyedLocks()

	// Services
	chestSvc := service.NewChestService(chestRepo, chestRewardRepo, ledgerEngine, outboxRepo, logger)
	questSvc := service.NewQuestService(pool, questRepo, progressRepo, outboxRepo, logger)
	claimSvc := service.NewClaimService(pool, questRepo, progressRepo, chestRepo, chestSvc, ledgerEngine, outboxRepo, locks, logger)
	badgeSvc := service.NewBadgeService(pool, badgeRepo, activityRepo, userRepo, outboxRepo, logger)
	calendarSvc := service.NewCalendarService(pool, calendarRepo, ledgerEngine, outboxRepo, locks, domain.DefaultSpecialDays(), logger)

	// Handlers
	questHandler := handler.NewQuestHandler(questSvc, claimSvc)
	actionHandler := handler.NewActionHandler(questSvc, badgeSvc, logger)
	badgeHandler := handler.NewBadgeHandler(badgeSvc)
	calendarHandler := handler.NewCalendarHandler(calendarSvc)
	walletHandler := handler.NewWalletHandler(pool, userRepo, txRepo, gemRepo)
	chestHandler := handler.NewChestHandler(pool, chestSvc)

	// Admin handlers
	calendarAdmin := adminhandler.NewCalendarAdminHandler(calendarSvc)

	// Router
	r := chi.NewRouter()

	// Global middleware (order matters)
	r.Use(handler.Recovery(logger))
	r.Use(handler.RequestID)
	r.Use(handler.RequestLogger(logger))
	r.Use(handler.CORS)
	r.Use(handler.JSONContentType)

	// Health (no auth)
	r.Get("/health", handler.HealthHandler(pool))

	// User-authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(auth.AuthenticateUser(jwtMgr))

		r.Route("/quests", func(r chi.Router) {
			r.Get("/", questHandler.List)
			r.Post("/{id}/claim", questHandler.Claim)
		})

		r.Post("/actions", actionHandler.Record)

		r.Route("/badges", func(r chi.Router) {
			r.Get("/", badgeHandler.List)
			r.Post("/evaluate", badgeHandler.Evaluate)
		})

		r.Route("/calendar", func(r chi.Router) {
			r.Get("/", calendarHandler.List)
			r.Post("/claim", calendarHandler.Claim)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", walletHandler.GetBalance)
			r.Get("/transactions", walletHandler.GetTransactions)
		})

		r.Get("/chests/rewards", chestHandler.History)
	})

	// Admin-authenticated routes
	r.Route("/admin", func(r chi.Router) {
		r.Use(auth.AuthenticateAdmin(jwtMgr))

		r.Post("/calendar/generate", calendarAdmin.Generate)
	})

	return r
}
