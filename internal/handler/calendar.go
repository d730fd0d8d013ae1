package handler

import (
	"net/http"
	"time"

	"github.com/revisia/progression/internal/domain"
	"github.com/revisia/progression/internal/service"
)

const dayFormat = "2006-01-02"

// CalendarHandler handles the daily login-reward calendar.
type CalendarHandler struct {
	calendar *service.CalendarService
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendar *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{calendar: calendar}
}

// List handles GET /calendar?from=&to= — the day grid with the user's claim
// flags. Without bounds it covers the current month.
func (h *CalendarHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	now := time.Now().UTC()
	from := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, -1)

	if raw := r.URL.Query().Get("from"); raw != "" {
		if from, err = time.Parse(dayFormat, raw); err != nil {
			RespondError(w, domain.ErrValidation("invalid from date, expected YYYY-MM-DD"))
			return
		}
	}
	if raw := r.URL.Query().Get("to"); raw != "" {
		if to, err = time.Parse(dayFormat, raw); err != nil {
			RespondError(w, domain.ErrValidation("invalid to date, expected YYYY-MM-DD"))
			return
		}
	}

	views, err := h.calendar.ListRange(r.Context(), userID, from, to)
	if err != nil {
		RespondError(w, err)
		return
	}
	if views == nil {
		views = []domain.CalendarDayView{}
	}
	RespondJSON(w, http.StatusOK, views)
}

type calendarClaimRequest struct {
	Day string `json:"day"`
}

// Claim handles POST /calendar/claim. The day defaults to today; anything
// other than the current day is rejected regardless.
func (h *CalendarHandler) Claim(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r)
	if err != nil {
		RespondError(w, err)
		return
	}

	day := time.Now().UTC()
	var req calendarClaimRequest
	if err := DecodeJSON(r, &req); err == nil && req.Day != "" {
		if day, err = time.Parse(dayFormat, req.Day); err != nil {
			RespondError(w, domain.ErrValidation("invalid day, expected YYYY-MM-DD"))
			return
		}
	}

	claimed, err := h.calendar.Claim(r.Context(), userID, day)
	if err != nil {
		RespondError(w, err)
		return
	}
	RespondJSON(w, http.StatusOK, claimed)
}
