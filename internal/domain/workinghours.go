package domain

import (
	"time"

	"github.com/salonhq/scheduling-service/pkg/types"
)

// StaffWorkingHours is one weekly-template entry: the working interval of a
// staff member on a given weekday. Owned by staff-schedule management,
// read-only to the scheduling engine.
type StaffWorkingHours struct {
	ID        int64
	StaffID   int64
	Weekday   time.Weekday // 0 = Sunday ... 6 = Saturday
	IsWorking bool
	StartTime types.TimeString // ignored when IsWorking is false
	EndTime   types.TimeString

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Interval returns the working interval of the entry.
// Valid only when IsWorking is true.
func (w *StaffWorkingHours) Interval() WorkingInterval {
	return WorkingInterval{Start: w.StartTime, End: w.EndTime}
}

// WorkingInterval is a half-open [Start, End) time range within a day
type WorkingInterval struct {
	Start types.TimeString
	End   types.TimeString
}

// IsZero returns true for an unset interval
func (i WorkingInterval) IsZero() bool {
	return i.Start.IsZero() && i.End.IsZero()
}

// Contains reports whether [start, end) fits entirely inside the interval.
// A slot ending exactly at the interval end is valid.
func (i WorkingInterval) Contains(start, end types.TimeString) bool {
	return !start.IsBefore(i.Start) && !end.IsAfter(i.End)
}
