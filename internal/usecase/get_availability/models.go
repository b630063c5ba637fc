package get_availability

import (
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/pkg/types"
)

// Options параметры движка, приходят из конфигурации
type Options struct {
	// Шаг генерации слотов в минутах
	SlotStepMinutes int

	// Длительность услуги по умолчанию, если не передана в запросе
	DefaultDurationMinutes int

	// Рабочий интервал по умолчанию для мастеров без настроенного расписания
	// и услуг без мастера; нулевое значение - дефолт не задан
	DefaultInterval domain.WorkingInterval
}

// Request модель запроса доступных слотов
type Request struct {
	Date            time.Time // Дата (без времени)
	ServiceID       int64     // ID услуги
	StaffID         *int64    // ID мастера; nil - услуга без закрепленного мастера
	DurationMinutes int       // Длительность услуги; 0 - использовать дефолт
}

// Response модель ответа со слотами на день
// Возвращаются ВСЕ кандидаты с флагом доступности, чтобы вызывающая сторона
// могла показать и занятые слоты
type Response struct {
	Date      time.Time
	ServiceID int64
	StaffID   *int64
	Slots     []Slot
}

// Slot вычисленный временной слот
type Slot struct {
	StartTime   types.TimeString
	EndTime     types.TimeString
	IsAvailable bool
}
