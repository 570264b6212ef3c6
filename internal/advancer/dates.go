package advancer

import (
	"fmt"
	"math"
	"time"

	"github.com/dogoods/donation-scheduler/internal/models"
)

// dateOnly truncates t to a calendar date at UTC midnight so day arithmetic
// never sees partial-day offsets from the stored timestamps.
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// daysUntil returns the whole calendar days from today until next. Zero means
// due today, negative means overdue.
func daysUntil(today, next time.Time) int {
	d := dateOnly(next).Sub(dateOnly(today))
	return int(math.Ceil(d.Hours() / 24))
}

// NextOccurrence returns date moved forward exactly one cadence step.
//
// Monthly and yearly steps use AddDate, whose overflow normalization is the
// deterministic rule here: Jan 31 plus one month lands in early March
// (2024-01-31 -> 2024-03-02), and Feb 29 plus one year lands on Mar 1.
func NextOccurrence(date time.Time, freq models.Frequency) (time.Time, error) {
	switch freq {
	case models.FrequencyDaily:
		return date.AddDate(0, 0, 1), nil
	case models.FrequencyWeekly:
		return date.AddDate(0, 0, 7), nil
	case models.FrequencyMonthly:
		return date.AddDate(0, 1, 0), nil
	case models.FrequencyYearly:
		return date.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, fmt.Errorf("unknown frequency %q", freq)
	}
}
