package create_recurring_booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduling-service/pkg/types"
)

// Request модель запроса на создание серии бронирований
type Request struct {
	CustomerID      *int64           // ID клиента (опционально)
	StaffID         *int64           // ID мастера; nil - услуга без мастера
	ServiceID       int64            // ID услуги
	Pattern         string           // Паттерн повторения: weekly | biweekly | monthly
	StartDate       time.Time        // Первая дата серии
	EndDate         time.Time        // Последняя возможная дата (включительно)
	StartTime       types.TimeString // Время начала каждого вхождения
	DurationMinutes int              // Длительность каждого вхождения
	Notes           *string          // Дополнительные заметки (опционально)

	// Денормализованные данные услуги для истории
	ServiceName  string
	ServicePrice float64
}

// CreatedOccurrence успешно созданное вхождение серии
type CreatedOccurrence struct {
	BookingID int64
	Date      time.Time
	StartTime types.TimeString
	Status    string
}

// SkippedOccurrence вхождение, пропущенное по бизнес-причине
type SkippedOccurrence struct {
	Date   time.Time
	Reason string // slot_conflict | outside_working_hours | busy
}

// Причины пропуска вхождений
const (
	ReasonSlotConflict        = "slot_conflict"
	ReasonOutsideWorkingHours = "outside_working_hours"
	ReasonBusy                = "busy"
)

// Response модель ответа с результатом разворачивания серии.
// Серия создается в режиме частичного успеха: конфликтные вхождения
// пропускаются, остальные создаются.
type Response struct {
	RecurrenceGroupID uuid.UUID
	Created           []CreatedOccurrence
	Skipped           []SkippedOccurrence
}
