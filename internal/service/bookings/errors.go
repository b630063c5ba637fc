package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrCannotCancel возвращается, когда бронирование не может быть отменено
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrNotRecurring возвращается при попытке отменить серию у одиночного
	// бронирования
	ErrNotRecurring = errors.New("booking does not belong to a recurrence group")

	// ErrSlotConflict возвращается, когда восстановление бронирования
	// пересекается с существующим активным бронированием
	ErrSlotConflict = errors.New("slot conflicts with an existing booking")

	// ErrBusy возвращается, когда транзакция не успела выполниться
	// из-за конкуренции; вызывающий может повторить запрос
	ErrBusy = errors.New("scheduling is busy, retry later")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
