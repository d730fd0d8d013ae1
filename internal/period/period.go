// Package period computes the canonical [start, end) windows for quest
// cadences and the deterministic daily quest rotation. Everything here is
// pure: no I/O, no clock reads.
package period

import (
	"time"

	"github.com/revisia/progression/internal/domain"
)

// Bounds returns the [start, end) window containing ref for the given
// cadence. Daily spans midnight to midnight of the same calendar day.
// Weekly spans Monday 00:00:00 through the following Monday. Monthly spans
// the first of the month through the first of the next month.
func Bounds(pt domain.PeriodType, ref time.Time) (start, end time.Time) {
	switch pt {
	case domain.PeriodDaily:
		start = midnight(ref)
		return start, start.AddDate(0, 0, 1)
	case domain.PeriodWeekly:
		// ISO week, Monday start: dayOfMonth - dayOfWeek + (dayOfWeek==0 ? -6 : 1)
		delta := 1 - int(ref.Weekday())
		if ref.Weekday() == time.Sunday {
			delta = -6
		}
		start = midnight(ref).AddDate(0, 0, delta)
		return start, start.AddDate(0, 0, 7)
	case domain.PeriodMonthly:
		start = time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
		return start, start.AddDate(0, 1, 0)
	}
	// Unknown cadence collapses to daily rather than panicking; catalog
	// validation rejects it upstream.
	start = midnight(ref)
	return start, start.AddDate(0, 0, 1)
}

// Contains reports whether t falls inside [start, end).
func Contains(start, end, t time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
