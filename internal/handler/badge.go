package handler

import (
	"net/http"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/service"
)

// BadgeHandler handles badge endpoints.
type BadgeHandler struct {
	badges *service.BadgeService
}

// NewBadgeHandler creates a new BadgeHandler.
func NewBadgeHandler(badges *service.BadgeService) *BadgeHandler {
	return &BadgeHandler{badges: badges}
}

type badgeView struct {
	domain.Badge
	Owned bool `json:"owned"`
}

// List handles GET /badges — the catalog decorated with the user's owned set.
func (h *BadgeHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	catalog, owned, err := h.badges.ListCatalog(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}

	views := make([]badgeView, 0, len(catalog))
	for _, b := range catalog {
		views = append(views, badgeView{Badge: b, Owned: owned[b.Slug]})
	}
	RespondJSON(w, http.StatusOK, views)
}

// Evaluate handles POST /badges/evaluate — an explicit sweep, returning
// whatever was newly granted.
func (h *BadgeHandler) Evaluate(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	granted, err := h.badges.EvaluateAll(r.Context(), userID)
	if err != nil {
		RespondError(w, err)
		return
	}
	if granted == nil {
		granted = []domain.Badge{}
	}
	RespondJSON(w, http.StatusOK, granted)
}
