package get_availability

import (
	"context"
	"fmt"

	"github.com/salonhq/scheduling-service/internal/domain"
)

// UseCase use case для вычисления доступных слотов на день
//
// Чтения не требуют блокировок: availability - это консистентный снимок,
// окончательная проверка все равно выполняется при создании бронирования.
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

// Execute вычисляет слоты: рабочий интервал → кандидаты → фильтр по занятости
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: service=%d, staff=%v, date=%s",
		req.ServiceID, staffLog(req.StaffID), req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	resp := &Response{
		Date:      req.Date,
		ServiceID: req.ServiceID,
		StaffID:   req.StaffID,
		Slots:     []Slot{},
	}

	// 2. Даты в прошлом - валидный запрос с пустым результатом
	now := uc.timeProvider.Now()
	if isDateInPast(req.Date, now) {
		return resp, nil
	}

	// 3. Резолвим рабочий интервал
	interval, working, err := resolveWorkingInterval(ctx, uc.workingHoursRepo, req.StaffID, req.Date, uc.opts.DefaultInterval)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to resolve working hours: %v", err)
		return nil, fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
	}
	if !working {
		// Нет расписания и нет дефолта - день без слотов, не ошибка
		uc.logger.Info("GetAvailability: staff=%v not working on %s",
			staffLog(req.StaffID), req.Date.Format(domain.DateFormat))
		return resp, nil
	}

	// 4. Генерируем кандидатов
	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.opts.DefaultDurationMinutes
	}

	slots, err := generateSlots(interval, duration, uc.opts.SlotStepMinutes)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate slots: %v", ErrInternal, err)
	}

	// 5. Фильтруем по существующим бронированиям
	// Для услуг без мастера проверка пересечений пропускается - все слоты доступны
	if req.StaffID != nil {
		bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(ctx, *req.StaffID, req.Date)
		if err != nil {
			uc.logger.Error("GetAvailability: failed to get bookings: %v", err)
			return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}
		slots = markAvailability(slots, bookings)
	}

	uc.logger.Info("GetAvailability: computed %d slots for service=%d, staff=%v, date=%s",
		len(slots), req.ServiceID, staffLog(req.StaffID), req.Date.Format(domain.DateFormat))

	resp.Slots = slots
	return resp, nil
}

func staffLog(staffID *int64) interface{} {
	if staffID == nil {
		return "none"
	}
	return *staffID
}
