package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	workingHoursRepo "github.com/salonhq/scheduling-service/internal/infra/storage/workinghours"
	"github.com/salonhq/scheduling-service/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: serviceID must be positive", ErrInvalidInput)
	}

	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}

	if req.CustomerID != nil && *req.CustomerID <= 0 {
		return fmt.Errorf("%w: customerID must be positive", ErrInvalidInput)
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}

	if req.DurationMinutes > 0 &&
		(req.DurationMinutes < domain.MinDurationMinutes || req.DurationMinutes > domain.MaxDurationMinutes) {
		return fmt.Errorf("%w: durationMinutes must be between %d and %d",
			ErrInvalidInput, domain.MinDurationMinutes, domain.MaxDurationMinutes)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(bookingDate, now time.Time) error {
	if isDateInPast(bookingDate, now) {
		return ErrInvalidDate
	}
	return nil
}

// resolveWorkingInterval определяет эффективный рабочий интервал мастера.
// Та же резолюция, что и в get_availability: запись на день недели, затем
// проверка "расписание настроено вообще", затем системный дефолт.
func resolveWorkingInterval(
	ctx context.Context,
	repo WorkingHoursRepository,
	staffID *int64,
	date time.Time,
	defaultInterval domain.WorkingInterval,
) (domain.WorkingInterval, bool, error) {
	if staffID == nil {
		if defaultInterval.IsZero() {
			return domain.WorkingInterval{}, false, nil
		}
		return defaultInterval, true, nil
	}

	record, err := repo.GetByStaffAndWeekday(ctx, *staffID, date.Weekday())
	if err != nil {
		if !errors.Is(err, workingHoursRepo.ErrNotFound) {
			return domain.WorkingInterval{}, false, err
		}

		hasSchedule, err := repo.HasSchedule(ctx, *staffID)
		if err != nil {
			return domain.WorkingInterval{}, false, err
		}
		if hasSchedule || defaultInterval.IsZero() {
			return domain.WorkingInterval{}, false, nil
		}
		return defaultInterval, true, nil
	}

	if !record.IsWorking {
		return domain.WorkingInterval{}, false, nil
	}

	return record.Interval(), true, nil
}

// hasOverlap проверяет пересечение кандидата с активными бронированиями.
// Полуоткрытые интервалы: бронирование, заканчивающееся ровно в начале
// кандидата (или наоборот), не конфликтует.
func hasOverlap(start, end types.TimeString, bookings []*domain.Booking) bool {
	for _, booking := range bookings {
		// Пропускаем неактивные бронирования
		if !booking.IsActive() {
			continue
		}
		if booking.Overlaps(start, end) {
			return true
		}
	}
	return false
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}
