package notifier

// Intent kinds supported by the notification service
const (
	KindConfirmation = "confirmation"
	KindCancellation = "cancellation"
)

// Intent намерение отправить уведомление - движок только формирует его,
// доставка (email/SMS) выполняется внешним сервисом уведомлений
type Intent struct {
	Kind      string `json:"kind"`
	BookingID int64  `json:"bookingId"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
