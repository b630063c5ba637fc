package get_staff_schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
)

// UseCase use case для построения дневного расписания мастеров:
// кто работает, в каком интервале и какие слоты еще свободны
type UseCase struct {
	bookingRepo      BookingRepository
	workingHoursRepo WorkingHoursRepository
	opts             Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workingHoursRepo WorkingHoursRepository,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.SlotStepMinutes <= 0 {
		opts.SlotStepMinutes = domain.DefaultSlotStepMinutes
	}
	if opts.DefaultDurationMinutes <= 0 {
		opts.DefaultDurationMinutes = domain.DefaultServiceDurationMinutes
	}

	return &UseCase{
		bookingRepo:      bookingRepo,
		workingHoursRepo: workingHoursRepo,
		opts:             opts,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute строит расписания мастеров на дату.
// Без staffID возвращаются все мастера, у которых на этот день недели
// настроен рабочий интервал.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetStaffSchedule: staff=%v, date=%s", staffLog(req.StaffID), req.Date.Format(domain.DateFormat))

	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetStaffSchedule: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:      req.Date,
		Schedules: []domain.StaffSchedule{},
	}

	// Даты в прошлом - валидный запрос с пустым результатом
	if isDateInPast(req.Date, uc.timeProvider.Now()) {
		return resp, nil
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.opts.DefaultDurationMinutes
	}

	if req.StaffID != nil {
		schedule, err := uc.buildStaffSchedule(ctx, *req.StaffID, req.Date, duration)
		if err != nil {
			return nil, err
		}
		resp.Schedules = append(resp.Schedules, *schedule)
		return resp, nil
	}

	// Все мастера с рабочим интервалом на этот день недели
	records, err := uc.workingHoursRepo.ListStaffForWeekday(ctx, req.Date.Weekday())
	if err != nil {
		uc.logger.Error("GetStaffSchedule: failed to list staff: %v", err)
		return nil, fmt.Errorf("%w: failed to list staff: %v", ErrInternal, err)
	}

	for _, record := range records {
		schedule, err := uc.buildStaffSchedule(ctx, record.StaffID, req.Date, duration)
		if err != nil {
			return nil, err
		}
		resp.Schedules = append(resp.Schedules, *schedule)
	}

	uc.logger.Info("GetStaffSchedule: built %d schedules for date=%s", len(resp.Schedules), req.Date.Format(domain.DateFormat))
	return resp, nil
}

func (uc *UseCase) buildStaffSchedule(ctx context.Context, staffID int64, date time.Time, duration int) (*domain.StaffSchedule, error) {
	interval, working, err := resolveWorkingInterval(ctx, uc.workingHoursRepo, staffID, date, uc.opts.DefaultInterval)
	if err != nil {
		uc.logger.Error("GetStaffSchedule: failed to resolve working hours for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
	}

	schedule := &domain.StaffSchedule{
		StaffID:   staffID,
		IsWorking: working,
		Interval:  interval,
		Slots:     []domain.TimeSlot{},
	}
	if !working {
		return schedule, nil
	}

	bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(ctx, staffID, date)
	if err != nil {
		uc.logger.Error("GetStaffSchedule: failed to get bookings for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	schedule.Slots = buildSlots(interval, duration, uc.opts.SlotStepMinutes, bookings)
	return schedule, nil
}

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if req.StaffID != nil && *req.StaffID <= 0 {
		return fmt.Errorf("%w: staffID must be positive", ErrInvalidInput)
	}
	if req.DurationMinutes < 0 {
		return fmt.Errorf("%w: durationMinutes must not be negative", ErrInvalidInput)
	}
	return nil
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date, now time.Time) bool {
	dateOnly := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	nowOnly := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return dateOnly.Before(nowOnly)
}

func staffLog(staffID *int64) interface{} {
	if staffID == nil {
		return "all"
	}
	return *staffID
}
