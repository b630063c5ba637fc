package get_staff_schedule

import (
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
)

// Options параметры движка, приходят из конфигурации
type Options struct {
	// Шаг генерации слотов в минутах
	SlotStepMinutes int

	// Длительность слота по умолчанию
	DefaultDurationMinutes int

	// Рабочий интервал по умолчанию для мастеров без настроенного расписания;
	// нулевое значение - дефолт не задан
	DefaultInterval domain.WorkingInterval
}

// Request модель запроса расписания мастеров на день
type Request struct {
	Date            time.Time // Дата (без времени)
	StaffID         *int64    // ID мастера; nil - все мастера, работающие в этот день
	DurationMinutes int       // Длительность слота; 0 - использовать дефолт
}

// Response модель ответа с расписаниями на день
type Response struct {
	Date      time.Time
	Schedules []domain.StaffSchedule
}
