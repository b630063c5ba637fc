package domain

import "github.com/salonhq/scheduling-service/pkg/types"

// TimeSlot is a derived, never-persisted projection: a candidate booking
// interval within a working day with its availability flag.
type TimeSlot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}

// Overlaps reports whether the slot intersects [start, end) (half-open)
func (s *TimeSlot) Overlaps(start, end types.TimeString) bool {
	return s.StartTime.IsBefore(end) && s.EndTime.IsAfter(start)
}

// StaffSchedule is the computed day view for one staff member:
// the resolved working interval plus candidate slots.
type StaffSchedule struct {
	StaffID   int64
	IsWorking bool
	Interval  WorkingInterval
	Slots     []TimeSlot
}
