package handler

import (
	"net/http"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/service"
)

// ChestHandler exposes the user's chest lottery history.
type ChestHandler struct {
	pool   *pgxpool.Pool
	chests *service.ChestService
}

// NewChestHandler creates a new ChestHandler.
func NewChestHandler(pool *pgxpool.Pool, chests *service.ChestService) *ChestHandler {
	return &ChestHandler{pool: pool, chests: chests}
}

// History handles GET /chests/rewards?limit= — past outcomes, newest first.
func (h *ChestHandler) History(w http.ResponseWriter, r *http.Request) {
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

	rewards, err := h.chests.History(r.Context(), h.pool, userID, limit)
	if err != nil {
		RespondError(w, err)
		return
	}
	if rewards == nil {
		rewards = []domain.ChestReward{}
	}
	RespondJSON(w, http.StatusOK, rewards)
}
