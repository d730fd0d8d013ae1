package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/service"
)

// QuestHandler handles quest endpoints.
type QuestHandler struct {
	tracker *service.QuestService
	claims  *service.ClaimService
}

// NewQuestHandler creates a new QuestHandler.
func NewQuestHandler(tracker *service.QuestService, claims *service.ClaimService) *QuestHandler {
	return &QuestHandler{tracker: tracker, claims: claims}
}

// List handles GET /quests?period= — returns the user's quests with progress.
// Without a period filter all three cadences are returned. Listing also
// initializes the current period, so a fresh user sees live rows immediately.
func (h *QuestHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var pt *domain.PeriodType
	if raw := r.URL.Query().Get("period"); raw != "" {
		parsed, err := domain.ParsePeriodType(raw)
		if err != nil {
			RespondError(w, err)
			return
		}
		pt = &parsed
	}

	details, err := h.tracker.ListForUser(r.Context(), userID, pt)
	if err != nil {
		RespondError(w, err)
		return
	}
	if details == nil {
		details = []domain.QuestProgressDetail{}
	}
	RespondJSON(w, http.StatusOK, details)
}

// Claim handles POST /quests/{id}/claim.
func (h *QuestHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}
	questID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		RespondError(w, domain.ErrValidation("invalid quest id"))
		return
	}

	result, err := h.claims.Claim(r.Context(), userID, questID)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, result)
}
