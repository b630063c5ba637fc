package create_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/pkg/types"
)

// Options параметры движка, приходят из конфигурации
type Options struct {
	// Длительность услуги по умолчанию, если не передана в запросе
	DefaultDurationMinutes int

	// Рабочий интервал по умолчанию (см. get_availability.Options)
	DefaultInterval domain.WorkingInterval

	// Таймаут на выполнение бронирующей транзакции; по истечении
	// возвращается ErrBusy
	ScheduleTimeout time.Duration
}

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      *int64           // ID клиента (опционально)
	StaffID         *int64           // ID мастера; nil - услуга без мастера
	ServiceID       int64            // ID услуги
	Date            time.Time        // Дата бронирования (без времени)
	StartTime       types.TimeString // Время начала (например, "10:00")
	DurationMinutes int              // Длительность; 0 - использовать дефолт
	Notes           *string          // Дополнительные заметки (опционально)

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64

	// Заполняется только RecurrenceExpander'ом
	RecurrenceGroupID *uuid.UUID
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64
	CustomerID      *int64
	StaffID         *int64
	ServiceID       int64
	BookingDate     time.Time
	StartTime       types.TimeString
	DurationMinutes int
	Status          string
	PaymentStatus   string

	ServiceName  string
	ServicePrice float64
	Notes        *string

	RecurrenceGroupID *uuid.UUID

	CreatedAt time.Time
	UpdatedAt time.Time
}

func fromDomain(b *domain.Booking) *Response {
	return &Response{
		ID:                b.ID,
		CustomerID:        b.CustomerID,
		StaffID:           b.StaffID,
		ServiceID:         b.ServiceID,
		BookingDate:       b.BookingDate,
		StartTime:         b.StartTime,
		DurationMinutes:   b.DurationMinutes,
		Status:            string(b.Status),
		PaymentStatus:     string(b.PaymentStatus),
		ServiceName:       b.ServiceName,
		ServicePrice:      b.ServicePrice,
		Notes:             b.Notes,
		RecurrenceGroupID: b.RecurrenceGroupID,
		CreatedAt:         b.CreatedAt,
		UpdatedAt:         b.UpdatedAt,
	}
}
