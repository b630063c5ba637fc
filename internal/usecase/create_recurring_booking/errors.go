package create_recurring_booking

import "errors"

var (
	// ErrInvalidRule возвращается при некорректном правиле повторения;
	// ни одно бронирование при этом не создается
	ErrInvalidRule = errors.New("create_recurring_booking: invalid recurrence rule")

	// ErrTooManyOccurrences возвращается, когда правило разворачивается
	// в слишком длинную серию
	ErrTooManyOccurrences = errors.New("create_recurring_booking: too many occurrences in the series")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_recurring_booking: internal error")
)
