package handler

import (
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/repository"
)

// WalletHandler exposes point and gem balances and the ledger history.
type WalletHandler struct {
	pool         *pgxpool.Pool
	users        repository.UserRepository
	transactions repository.TransactionRepository
	gems         repository.GemRepository
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(pool *pgxpool.Pool, users repository.UserRepository, transactions repository.TransactionRepository, gems repository.GemRepository) *WalletHandler {
	return &WalletHandler{pool: pool, users: users, transactions: transactions, gems: gems}
}

// GetBalance handles GET /wallet — point balance plus the gem wallet.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	user, err := h.users.FindByID(r.Context(), h.pool, userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if user == nil {
		RespondError(w, domain.ErrNotFound("user", userID.String()))
		return
	}

	gem, err := h.gems.Get(r.Context(), h.pool, userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if gem == nil {
		gem = &domain.Gem{UserID: userID}
	}

	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"points": user.Points,
		"gems":   gem,
	})
}

// GetTransactions handles GET /wallet/transactions?limit= — newest first.
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 500 {
			RespondError(w, domain.ErrValidation("limit must be between 1 and 500"))
			return
		}
		limit = n
	}

	entries, err := h.transactions.ListByUser(r.Context(), h.pool, userID, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	if entries == nil {
		entries = []domain.PointTransaction{}
	}
	RespondJSON(w, http.StatusOK, entries)
}
