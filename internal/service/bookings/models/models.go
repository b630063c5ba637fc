package models

import (
	"errors"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Области действия отмены
const (
	// ScopeSingle отменяет только само бронирование
	ScopeSingle = "single"
	// ScopeSeries отменяет все отменяемые бронирования серии
	ScopeSeries = "series"
)

// Request модели

// CancelBookingRequest запрос на отмену бронирования
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
	// Scope определяет область отмены: single (по умолчанию) или series
	Scope string `json:"scope,omitempty"`
}

// UpdateStatusRequest запрос на обновление статуса бронирования
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// UpdatePaymentRequest запрос на обновление статуса оплаты
type UpdatePaymentRequest struct {
	PaymentStatus string `json:"paymentStatus"`
}

// GetCustomerBookingsRequest запрос на получение бронирований клиента
type GetCustomerBookingsRequest struct {
	CustomerID int64   `json:"customerId"`
	Status     *string `json:"status,omitempty"`
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID                 int64    `json:"id"`
	CustomerID         *int64   `json:"customerId,omitempty"`
	StaffID            *int64   `json:"staffId,omitempty"`
	ServiceID          int64    `json:"serviceId"`
	BookingDate        string   `json:"bookingDate"` // "2026-08-28"
	StartTime          string   `json:"startTime"`   // "10:00"
	EndTime            string   `json:"endTime"`     // "11:00"
	DurationMinutes    int      `json:"durationMinutes"`
	Status             string   `json:"status"`
	PaymentStatus      string   `json:"paymentStatus"`
	ServiceName        string   `json:"serviceName"`
	ServicePrice       float64  `json:"servicePrice"`
	Notes              *string  `json:"notes,omitempty"`
	RecurrenceGroupID  *string  `json:"recurrenceGroupId,omitempty"`
	CancellationReason *string  `json:"cancellationReason,omitempty"`
	CancelledAt        *string  `json:"cancelledAt,omitempty"`
	CreatedAt          string   `json:"createdAt"`
	UpdatedAt          string   `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
	Total    int               `json:"total"`
}

// CancelSeriesResponse ответ на отмену серии бронирований
type CancelSeriesResponse struct {
	RecurrenceGroupID string  `json:"recurrenceGroupId"`
	CancelledIDs      []int64 `json:"cancelledIds"`
	SkippedIDs        []int64 `json:"skippedIds"` // уже завершенные или отмененные
}

// FromDomainBooking конвертирует domain.Booking в BookingResponse
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	resp := &BookingResponse{
		ID:                 b.ID,
		CustomerID:         b.CustomerID,
		StaffID:            b.StaffID,
		ServiceID:          b.ServiceID,
		BookingDate:        b.BookingDate.Format(domain.DateFormat),
		StartTime:          string(b.StartTime),
		DurationMinutes:    b.DurationMinutes,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		ServiceName:        b.ServiceName,
		ServicePrice:       b.ServicePrice,
		Notes:              b.Notes,
		CancellationReason: b.CancellationReason,
		CreatedAt:          b.CreatedAt.Format(time.RFC3339),
		UpdatedAt:          b.UpdatedAt.Format(time.RFC3339),
	}

	if end, err := b.EndTime(); err == nil {
		resp.EndTime = string(end)
	}
	if b.RecurrenceGroupID != nil {
		groupID := b.RecurrenceGroupID.String()
		resp.RecurrenceGroupID = &groupID
	}
	if b.CancelledAt != nil {
		cancelledAt := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledAt
	}

	return resp
}

// FromDomainBookingList конвертирует список domain.Booking в BookingListResponse
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
		Total:    len(bookings),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}
	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusPending, domain.StatusConfirmed, domain.StatusCompleted, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// ToDomainPaymentStatus конвертирует строку в domain.PaymentStatus
func ToDomainPaymentStatus(s string) (domain.PaymentStatus, error) {
	switch domain.PaymentStatus(s) {
	case domain.PaymentPending, domain.PaymentPaid, domain.PaymentRefunded:
		return domain.PaymentStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
