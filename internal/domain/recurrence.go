package domain

import (
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/scheduling-service/pkg/types"
)

// RecurrencePattern defines how occurrence dates are spaced
type RecurrencePattern string

const (
	PatternWeekly   RecurrencePattern = "weekly"
	PatternBiweekly RecurrencePattern = "biweekly"
	PatternMonthly  RecurrencePattern = "monthly"
)

var (
	// ErrInvalidPattern возвращается при неизвестном паттерне повторения
	ErrInvalidPattern = errors.New("domain: unknown recurrence pattern")

	// ErrInvalidDateRange возвращается, когда end_date раньше start_date
	ErrInvalidDateRange = errors.New("domain: recurrence end date precedes start date")

	// ErrInvalidDuration возвращается при неположительной длительности
	ErrInvalidDuration = errors.New("domain: duration must be positive")
)

// RecurrenceRule describes a recurring-booking request: the same service at
// the same time of day, repeated over a bounded date range.
type RecurrenceRule struct {
	Pattern         RecurrencePattern
	StartDate       time.Time
	EndDate         time.Time
	StartTime       types.TimeString
	DurationMinutes int
	ServiceID       int64
	StaffID         *int64
	CustomerID      *int64
	ServicePrice    float64
	Notes           *string
}

// Validate checks the rule before any expansion happens (fail fast)
func (r *RecurrenceRule) Validate() error {
	switch r.Pattern {
	case PatternWeekly, PatternBiweekly, PatternMonthly:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidPattern, r.Pattern)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDateRange)
	}
	if dateOnly(r.EndDate).Before(dateOnly(r.StartDate)) {
		return ErrInvalidDateRange
	}
	if r.DurationMinutes <= 0 {
		return ErrInvalidDuration
	}
	if err := r.StartTime.Validate(); err != nil {
		return err
	}
	return nil
}

// OccurrenceDates expands the rule into the ordered list of occurrence dates.
// Expansion is deterministic and bounded by EndDate; the series always
// includes StartDate itself.
//
// Monthly occurrences keep the day-of-month of StartDate; when the target
// month is shorter the date is clamped to the month's last day
// (Jan 31 -> Feb 29 in a leap year, Feb 28 otherwise).
func (r *RecurrenceRule) OccurrenceDates() []time.Time {
	start := dateOnly(r.StartDate)
	end := dateOnly(r.EndDate)

	dates := make([]time.Time, 0, 8)

	switch r.Pattern {
	case PatternWeekly, PatternBiweekly:
		step := 7
		if r.Pattern == PatternBiweekly {
			step = 14
		}
		for d := start; !d.After(end); d = d.AddDate(0, 0, step) {
			dates = append(dates, d)
		}
	case PatternMonthly:
		for i := 0; ; i++ {
			d := addMonthsClamped(start, i)
			if d.After(end) {
				break
			}
			dates = append(dates, d)
		}
	}

	return dates
}

// addMonthsClamped adds months keeping the day-of-month, clamping to the last
// day of the target month. Plain AddDate would overflow Jan 31 + 1 month into
// March 2/3.
func addMonthsClamped(base time.Time, months int) time.Time {
	firstOfTarget := time.Date(base.Year(), base.Month(), 1, 0, 0, 0, 0, base.Location()).
		AddDate(0, months, 0)

	day := base.Day()
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, 0, 0, 0, 0, base.Location())
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
