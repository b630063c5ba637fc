package bookings

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/internal/integrations/notifier"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByCustomerID(ctx context.Context, customerID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetActiveByStaffAndDate(ctx context.Context, staffID int64, date time.Time) ([]*domain.Booking, error)
	GetByRecurrenceGroup(ctx context.Context, groupID uuid.UUID) ([]*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	UpdatePaymentStatus(ctx context.Context, id int64, status domain.PaymentStatus) error
	Cancel(ctx context.Context, id int64, reason string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// NotifierClient интерфейс клиента сервиса уведомлений
type NotifierClient interface {
	Send(ctx context.Context, intent notifier.Intent) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
