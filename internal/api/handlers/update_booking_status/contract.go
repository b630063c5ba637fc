package update_booking_status

import (
	"context"

	"github.com/salonhq/scheduling-service/internal/service/bookings/models"
)

type BookingService interface {
	UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error
	UpdatePaymentStatus(ctx context.Context, bookingID int64, req *models.UpdatePaymentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
