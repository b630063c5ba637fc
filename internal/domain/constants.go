package domain

// Default scheduling parameters, overridable through [scheduling] config
const (
	DefaultSlotStepMinutes        = 30
	DefaultServiceDurationMinutes = 60
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 480 // 8 hours
	MaxNotesLength     = 500

	MaxCancellationReasonLength = 500

	// Верхняя граница количества вхождений одной повторяющейся серии;
	// при monthly это почти 9 лет, при weekly - чуть меньше двух
	MaxRecurrenceOccurrences = 100
)

// DateFormat is the wire and log format of calendar dates
const DateFormat = "2006-01-02"

// ActiveStatuses список статусов, участвующих в проверке пересечений
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusCompleted,
}
