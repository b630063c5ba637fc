package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/internal/integrations/notifier"
	"github.com/salonhq/scheduling-service/pkg/txmanager"
)

// UseCase use case создания бронирования
//
// Валидация и вставка выполняются в одной SERIALIZABLE транзакции: проверка
// доступности всегда идет по последнему зафиксированному состоянию, снимок
// доступности, полученный клиентом ранее, не имеет значения.
type UseCase struct {
	bookingRepo      BookingRepository
	workingHoursRepo WorkingHoursRepository
	txManager        TransactionManager
	notifierClient   NotifierClient
	opts             Options
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	workingHoursRepo WorkingHoursRepository,
	txManager TransactionManager,
	notifierClient NotifierClient,
	opts Options,
	logger Logger,
) *UseCase {
	if opts.DefaultDurationMinutes <= 0 {
		opts.DefaultDurationMinutes = domain.DefaultServiceDurationMinutes
	}
	if opts.ScheduleTimeout <= 0 {
		opts.ScheduleTimeout = 5 * time.Second
	}

	return &UseCase{
		bookingRepo:      bookingRepo,
		workingHoursRepo: workingHoursRepo,
		txManager:        txManager,
		notifierClient:   notifierClient,
		opts:             opts,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: customer=%v, staff=%v, service=%d, date=%s, time=%s",
		idLog(req.CustomerID), idLog(req.StaffID), req.ServiceID,
		req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = uc.opts.DefaultDurationMinutes
	}

	slotEnd, err := req.StartTime.AddMinutes(duration)
	if err != nil {
		uc.logger.Warn("CreateBooking: slot end out of day range: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверка доступности и вставка атомарно, по живому состоянию.
	// Таймаут ограничивает ожидание критической секции: по истечении
	// вызывающий получает ErrBusy и может повторить.
	txCtx, cancel := context.WithTimeout(ctx, uc.opts.ScheduleTimeout)
	defer cancel()

	var result *domain.Booking

	err = uc.txManager.DoSerializable(txCtx, func(txCtx context.Context) error {
		// 2.1. Перерезолвливаем рабочие часы - не доверяем клиентскому снимку
		interval, working, err := resolveWorkingInterval(txCtx, uc.workingHoursRepo, req.StaffID, req.Date, uc.opts.DefaultInterval)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to resolve working hours: %v", err)
			return fmt.Errorf("%w: failed to resolve working hours: %v", ErrInternal, err)
		}
		if !working {
			uc.logger.Warn("CreateBooking: staff=%v not working on %s",
				idLog(req.StaffID), req.Date.Format(domain.DateFormat))
			return ErrOutsideWorkingHours
		}

		// 2.2. Слот должен целиком лежать в рабочем интервале;
		// конец ровно в закрытие валиден
		if !interval.Contains(req.StartTime, slotEnd) {
			uc.logger.Warn("CreateBooking: slot %s-%s outside working interval %s-%s",
				req.StartTime, slotEnd, interval.Start, interval.End)
			return ErrOutsideWorkingHours
		}

		// 2.3. Проверяем пересечения по актуальному состоянию (FOR UPDATE).
		// Для услуг без мастера проверка пропускается.
		if req.StaffID != nil {
			bookings, err := uc.bookingRepo.GetActiveByStaffAndDate(txCtx, *req.StaffID, req.Date)
			if err != nil {
				uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
				return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
			}

			if hasOverlap(req.StartTime, slotEnd, bookings) {
				uc.logger.Warn("CreateBooking: slot %s-%s conflicts for staff=%d on %s",
					req.StartTime, slotEnd, *req.StaffID, req.Date.Format(domain.DateFormat))
				return ErrSlotConflict
			}
		}

		// 2.4. Вставляем бронирование
		booking := &domain.Booking{
			CustomerID:        req.CustomerID,
			StaffID:           req.StaffID,
			ServiceID:         req.ServiceID,
			BookingDate:       req.Date,
			StartTime:         req.StartTime,
			DurationMinutes:   duration,
			Status:            domain.StatusPending,
			PaymentStatus:     domain.PaymentPending,
			ServiceName:       req.ServiceName,
			ServicePrice:      req.ServicePrice,
			Notes:             req.Notes,
			RecurrenceGroupID: req.RecurrenceGroupID,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrTxBusy) {
			uc.logger.Warn("CreateBooking: transaction busy: %v", err)
			return nil, fmt.Errorf("%w: %v", ErrBusy, err)
		}
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d", result.ID)

	// 3. Уведомление отправляется после коммита и никогда его не откатывает
	uc.emitConfirmation(result.ID)

	return fromDomain(result), nil
}

// emitConfirmation отправляет намерение уведомления fire-and-forget.
// Отдельный контекст: запрос клиента к этому моменту уже завершен.
func (uc *UseCase) emitConfirmation(bookingID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		intent := notifier.Intent{Kind: notifier.KindConfirmation, BookingID: bookingID}
		if err := uc.notifierClient.Send(ctx, intent); err != nil {
			uc.logger.Error("CreateBooking: failed to emit notification intent for booking id=%d: %v", bookingID, err)
		}
	}()
}

func idLog(id *int64) interface{} {
	if id == nil {
		return "none"
	}
	return *id
}
