package get_availability

import (
	"context"
	"errors"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	workingHoursRepo "github.com/salonhq/scheduling-service/internal/infra/storage/workinghours"
	"github.com/salonhq/scheduling-service/pkg/types"
)

// resolveWorkingInterval определяет эффективный рабочий интервал мастера на дату.
//
// Правила резолюции:
//   - услуга без мастера (staffID == nil) → системный дефолтный интервал;
//   - есть запись на этот день недели и is_working=false → не работает;
//   - есть запись и is_working=true → интервал записи;
//   - записи на этот день нет, но расписание у мастера настроено → выходной;
//   - расписание не настроено вообще → системный дефолтный интервал.
//
// Отсутствие и записи, и дефолта - валидный исход "не работает", не ошибка.
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
		if hasSchedule {
			// Расписание есть, но на этот день недели записи нет - выходной
			return domain.WorkingInterval{}, false, nil
		}
		if defaultInterval.IsZero() {
			return domain.WorkingInterval{}, false, nil
		}
		return defaultInterval, true, nil
	}

	if !record.IsWorking {
		return domain.WorkingInterval{}, false, nil
	}

	return record.Interval(), true, nil
}

// generateSlots генерирует кандидатов в рабочем интервале: слот i начинается
// в interval.Start + i*step и длится durationMinutes.
//
// Генерация останавливается, как только конец слота выходит за interval.End;
// слот, заканчивающийся ровно в interval.End, валиден (полуоткрытые интервалы).
// Чистая функция: повторный вызов с теми же аргументами дает тот же результат.
func generateSlots(interval domain.WorkingInterval, durationMinutes, stepMinutes int) ([]Slot, error) {
	slots := make([]Slot, 0)

	current := interval.Start
	for current.IsBefore(interval.End) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break // вышли за пределы суток
		}
		if slotEnd.IsAfter(interval.End) {
			break
		}

		slots = append(slots, Slot{
			StartTime:   current,
			EndTime:     slotEnd,
			IsAvailable: true,
		})

		current, err = current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
	}

	return slots, nil
}

// markAvailability проставляет флаг доступности: слот занят, только если его
// интервал действительно пересекается с активным бронированием.
// Граничащие интервалы (конец одного равен началу другого) не пересекаются.
func markAvailability(slots []Slot, bookings []*domain.Booking) []Slot {
	for i := range slots {
		if isSlotTaken(slots[i].StartTime, slots[i].EndTime, bookings) {
			slots[i].IsAvailable = false
		}
	}
	return slots
}

func isSlotTaken(start, end types.TimeString, bookings []*domain.Booking) bool {
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
