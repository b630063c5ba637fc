package create_booking

import (
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	createBooking "github.com/salonhq/scheduling-service/internal/usecase/create_booking"
	"github.com/salonhq/scheduling-service/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	StaffID         *int64  `json:"staffId,omitempty"` // nil - услуга без мастера
	ServiceID       int64   `json:"serviceId"`
	BookingDate     string  `json:"bookingDate"` // "2026-08-28"
	StartTime       string  `json:"startTime"`   // "10:00"
	DurationMinutes int     `json:"durationMinutes,omitempty"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID                int64   `json:"id"`
	CustomerID        *int64  `json:"customerId,omitempty"`
	StaffID           *int64  `json:"staffId,omitempty"`
	ServiceID         int64   `json:"serviceId"`
	BookingDate       string  `json:"bookingDate"`
	StartTime         string  `json:"startTime"`
	DurationMinutes   int     `json:"durationMinutes"`
	Status            string  `json:"status"`
	PaymentStatus     string  `json:"paymentStatus"`
	ServiceName       string  `json:"serviceName"`
	ServicePrice      float64 `json:"servicePrice"`
	Notes             *string `json:"notes,omitempty"`
	RecurrenceGroupID *string `json:"recurrenceGroupId,omitempty"`
	CreatedAt         string  `json:"createdAt"`
	UpdatedAt         string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(customerID int64) (*createBooking.Request, error) {
	// Парсим дату
	bookingDate, err := time.Parse(domain.DateFormat, r.BookingDate)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		CustomerID:      &customerID,
		StaffID:         r.StaffID,
		ServiceID:       r.ServiceID,
		Date:            bookingDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		ServiceName:     r.ServiceName,
		ServicePrice:    r.ServicePrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	out := &BookingResponse{
		ID:              resp.ID,
		CustomerID:      resp.CustomerID,
		StaffID:         resp.StaffID,
		ServiceID:       resp.ServiceID,
		BookingDate:     resp.BookingDate.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		PaymentStatus:   resp.PaymentStatus,
		ServiceName:     resp.ServiceName,
		ServicePrice:    resp.ServicePrice,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}

	if resp.RecurrenceGroupID != nil {
		groupID := resp.RecurrenceGroupID.String()
		out.RecurrenceGroupID = &groupID
	}

	return out
}
