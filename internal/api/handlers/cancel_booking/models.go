package cancel_booking

import (
	"github.com/salonhq/scheduling-service/internal/service/bookings/models"
)

// CancelBookingRequest HTTP request model
type CancelBookingRequest struct {
	CancellationReason string `json:"cancellationReason"`
	// Scope области отмены: single (по умолчанию) или series - вся серия
	Scope string `json:"scope,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *CancelBookingRequest) ToServiceRequest() *models.CancelBookingRequest {
	scope := r.Scope
	if scope == "" {
		scope = models.ScopeSingle
	}

	return &models.CancelBookingRequest{
		CancellationReason: r.CancellationReason,
		Scope:              scope,
	}
}
