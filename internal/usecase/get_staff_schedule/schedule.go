package get_staff_schedule

import (
	"context"
	"errors"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	workingHoursRepo "github.com/salonhq/scheduling-service/internal/infra/storage/workinghours"
)

// resolveWorkingInterval определяет эффективный рабочий интервал мастера на дату.
// Правила те же, что при вычислении доступности: запись на день недели,
// иначе выходной при настроенном расписании, иначе системный дефолт.
func resolveWorkingInterval(
	ctx context.Context,
	repo WorkingHoursRepository,
	staffID int64,
	date time.Time,
	defaultInterval domain.WorkingInterval,
) (domain.WorkingInterval, bool, error) {
	record, err := repo.GetByStaffAndWeekday(ctx, staffID, date.Weekday())
	if err != nil {
		if !errors.Is(err, workingHoursRepo.ErrNotFound) {
			return domain.WorkingInterval{}, false, err
		}

		hasSchedule, err := repo.HasSchedule(ctx, staffID)
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

// buildSlots генерирует кандидатов в рабочем интервале и помечает занятые.
// Слот, заканчивающийся ровно в конец интервала, валиден; граничащие
// с бронированиями слоты свободны (полуоткрытые интервалы).
func buildSlots(interval domain.WorkingInterval, durationMinutes, stepMinutes int, bookings []*domain.Booking) []domain.TimeSlot {
	slots := make([]domain.TimeSlot, 0)

	current := interval.Start
	for current.IsBefore(interval.End) {
		slotEnd, err := current.AddMinutes(durationMinutes)
		if err != nil {
			break // вышли за пределы суток
		}
		if slotEnd.IsAfter(interval.End) {
			break
		}

		slot := domain.TimeSlot{
			StartTime:   current,
			EndTime:     slotEnd,
			IsAvailable: true,
		}
		for _, booking := range bookings {
			if !booking.IsActive() {
				continue
			}
			if booking.Overlaps(slot.StartTime, slot.EndTime) {
				slot.IsAvailable = false
				break
			}
		}

		slots = append(slots, slot)

		current, err = current.AddMinutes(stepMinutes)
		if err != nil {
			break
		}
	}

	return slots
}
