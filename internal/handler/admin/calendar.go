// Package admin holds handlers behind admin authentication.
package admin

import (
	"net/http"
	"time"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/handler"
	"github.com/revisia/progression/internal/service"
)

// CalendarAdminHandler handles calendar generation.
type CalendarAdminHandler struct {
	calendar *service.CalendarService
}

// NewCalendarAdminHandler creates a new CalendarAdminHandler.
func NewCalendarAdminHandler(calendar *service.CalendarService) *CalendarAdminHandler {
	return &CalendarAdminHandler{calendar: calendar}
}

type generateRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Generate handles POST /admin/calendar/generate — upserts the day grid for
// an inclusive date range. Idempotent, safe to re-run after table changes.
func (h *CalendarAdminHandler) Generate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := handler.DecodeJSON(r, &req); err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid request body"))
		return
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid from date, expected YYYY-MM-DD"))
		return
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		handler.RespondError(w, domain.ErrValidation("invalid to date, expected YYYY-MM-DD"))
		return
	}

	count, err := h.calendar.GeneratePeriod(r.Context(), from, to)
	if err != nil {
		handler.RespondError(w, err)
		return
	}
	handler.RespondJSON(w, http.StatusOK, map[string]int{"days_generated": count})
}
