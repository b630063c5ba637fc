package create_recurring_booking

import (
	"context"

	"github.com/salonhq/scheduling-service/internal/usecase/create_booking"
)

// BookingScheduler интерфейс планировщика одиночных бронирований.
// Реализуется create_booking.UseCase: каждое вхождение серии проходит
// ту же транзакционную проверку, что и обычное бронирование.
type BookingScheduler interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
