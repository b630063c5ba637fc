package create_booking

import "errors"

var (
	// ErrOutsideWorkingHours возвращается, когда запрошенное время вне
	// рабочего интервала мастера (или мастер не работает в этот день)
	ErrOutsideWorkingHours = errors.New("create_booking: requested time is outside working hours")

	// ErrSlotConflict возвращается, когда интервал пересекается с существующим
	// активным бронированием
	ErrSlotConflict = errors.New("create_booking: slot conflicts with an existing booking")

	// ErrBusy возвращается, когда транзакция бронирования не успела выполниться
	// из-за конкуренции; вызывающий может повторить запрос
	ErrBusy = errors.New("create_booking: scheduling is busy, retry later")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
