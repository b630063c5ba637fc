package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduling-service/pkg/types"
)

// BookingStatus represents the lifecycle status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCompleted BookingStatus = "completed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus represents the payment state of a booking
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking represents a scheduled appointment in the system.
//
// Core invariant: for a fixed staff member and date no two active bookings
// may have overlapping [start, start+duration) intervals. Cancelled bookings
// are excluded from conflict checks but kept for audit.
type Booking struct {
	ID         int64
	CustomerID *int64
	StaffID    *int64 // nil - услуга без закрепленного мастера
	ServiceID  int64

	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	// Set for bookings created from a recurring request; all occurrences of
	// one series share the same group id.
	RecurrenceGroupID *uuid.UUID

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking participates in conflict checks
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending ||
		b.Status == StatusConfirmed ||
		b.Status == StatusCompleted
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// EndTime returns the exclusive end of the booking interval
func (b *Booking) EndTime() (types.TimeString, error) {
	return b.StartTime.AddMinutes(b.DurationMinutes)
}

// Overlaps reports whether the booking interval intersects [start, end).
// Half-open semantics: touching endpoints do not conflict.
func (b *Booking) Overlaps(start, end types.TimeString) bool {
	bookingEnd, err := b.EndTime()
	if err != nil {
		return false
	}
	return b.StartTime.IsBefore(end) && bookingEnd.IsAfter(start)
}

// IsActiveStatus reports whether the given status participates in conflict checks
func IsActiveStatus(s BookingStatus) bool {
	return s == StatusPending || s == StatusConfirmed || s == StatusCompleted
}
