package create_recurring_booking

import (
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	createRecurring "github.com/salonhq/scheduling-service/internal/usecase/create_recurring_booking"
	"github.com/salonhq/scheduling-service/pkg/types"
)

// CreateRecurringBookingRequest HTTP request model
type CreateRecurringBookingRequest struct {
	StaffID         *int64  `json:"staffId,omitempty"`
	ServiceID       int64   `json:"serviceId"`
	Pattern         string  `json:"pattern"`   // weekly | biweekly | monthly
	StartDate       string  `json:"startDate"` // "2026-08-28"
	EndDate         string  `json:"endDate"`
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes int     `json:"durationMinutes"`
	ServiceName     string  `json:"serviceName"`
	ServicePrice    float64 `json:"servicePrice"`
	Notes           *string `json:"notes,omitempty"`
}

// CreatedOccurrenceResponse созданное вхождение серии
type CreatedOccurrenceResponse struct {
	BookingID int64  `json:"bookingId"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	Status    string `json:"status"`
}

// SkippedOccurrenceResponse пропущенное вхождение серии
type SkippedOccurrenceResponse struct {
	Date   string `json:"date"`
	Reason string `json:"reason"`
}

// RecurringBookingResponse HTTP response model
type RecurringBookingResponse struct {
	RecurrenceGroupID string                      `json:"recurrenceGroupId"`
	Created           []CreatedOccurrenceResponse `json:"created"`
	Skipped           []SkippedOccurrenceResponse `json:"skipped"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateRecurringBookingRequest) ToUseCaseRequest(customerID int64) (*createRecurring.Request, error) {
	startDate, err := time.Parse(domain.DateFormat, r.StartDate)
	if err != nil {
		return nil, err
	}

	endDate, err := time.Parse(domain.DateFormat, r.EndDate)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createRecurring.Request{
		CustomerID:      &customerID,
		StaffID:         r.StaffID,
		ServiceID:       r.ServiceID,
		Pattern:         r.Pattern,
		StartDate:       startDate,
		EndDate:         endDate,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Notes:           r.Notes,
		ServiceName:     r.ServiceName,
		ServicePrice:    r.ServicePrice,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createRecurring.Response) *RecurringBookingResponse {
	out := &RecurringBookingResponse{
		RecurrenceGroupID: resp.RecurrenceGroupID.String(),
		Created:           make([]CreatedOccurrenceResponse, 0, len(resp.Created)),
		Skipped:           make([]SkippedOccurrenceResponse, 0, len(resp.Skipped)),
	}

	for _, occurrence := range resp.Created {
		out.Created = append(out.Created, CreatedOccurrenceResponse{
			BookingID: occurrence.BookingID,
			Date:      occurrence.Date.Format(domain.DateFormat),
			StartTime: occurrence.StartTime.String(),
			Status:    occurrence.Status,
		})
	}

	for _, occurrence := range resp.Skipped {
		out.Skipped = append(out.Skipped, SkippedOccurrenceResponse{
			Date:   occurrence.Date.Format(domain.DateFormat),
			Reason: occurrence.Reason,
		})
	}

	return out
}
