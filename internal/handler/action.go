package handler

import (
	"log/slog"
	"net/http"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/service"
)

// ActionHandler ingests action events from the surrounding application.
type ActionHandler struct {
	tracker *service.QuestService
	badges  *service.BadgeService
	logger  *slog.Logger
}

// NewActionHandler creates a new ActionHandler.
func NewActionHandler(tracker *service.QuestService, badges *service.BadgeService, logger *slog.Logger) *ActionHandler {
	return &ActionHandler{tracker: tracker, badges: badges, logger: logger}
}

type actionRequest struct {
	Action   string                `json:"action"`
	Metadata domain.ActionMetadata `json:"metadata"`
}

// Record handles POST /actions. Quest progress is the transactional part;
// the badge sweep afterwards is best effort and never fails the request,
// the next sweep re-evaluates the same aggregates anyway.
func (h *ActionHandler) Record(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	var req actionRequest
	if err := DecodeJSON(r, &req); err != nil {
		RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}
	action, err := domain.ParseActionType(req.Action)
	if err != nil {
		RespondError(w, err)
		return
	}

	touched, err := h.tracker.RecordAction(r.Context(), userID, action, req.Metadata)
	if err != nil {
		RespondError(w, err)
		return
	}

	granted, err := h.badges.EvaluateAll(r.Context(), userID)
	if err != nil {
		h.logger.Error("badge sweep failed", "user_id", userID, "error", err)
		granted = nil
	}

	if touched == nil {
		touched = []domain.QuestProgress{}
	}
	RespondJSON(w, http.StatusOK, map[string]interface{}{
		"progress":   touched,
		"new_badges": badgeSlugs(granted),
	})
}

func badgeSlugs(badges []domain.Badge) []string {
	slugs := make([]string, 0, len(badges))
	for _, b := range badges {
		slugs = append(slugs, b.Slug)
	}
	return slugs
}
