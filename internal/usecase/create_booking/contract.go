package create_booking

import (
	"context"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error)
}

// WorkingHoursRepository интерфейс репозитория расписаний мастеров
type WorkingHoursRepository interface {
	GetByStaffAndWeekday(ctx context.Context, staffID int64, weekday time.Weekday) (*domain.StaffWorkingHours, error)
	HasSchedule(ctx context.Context, staffID int64) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Send(ctx context.Context, intent notifier.Intent) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
