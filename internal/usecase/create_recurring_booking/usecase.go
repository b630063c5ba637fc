package create_recurring_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/internal/usecase/create_booking"
)

// UseCase use case создания серии повторяющихся бронирований
type UseCase struct {
	scheduler BookingScheduler
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(scheduler BookingScheduler, logger Logger) *UseCase {
	return &UseCase{
		scheduler: scheduler,
		logger:    logger,
	}
}

// Execute выполняет use case создания серии бронирований.
//
// Вхождения планируются последовательно в хронологическом порядке, каждое
// в собственной транзакции. Бизнес-отказы (конфликт слота, нерабочее время,
// занятость планировщика) переводят вхождение в skipped; инфраструктурная
// ошибка прерывает разворачивание, уже созданные вхождения остаются.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateRecurringBooking: pattern=%s, range=%s..%s, time=%s, staff=%v",
		req.Pattern,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat),
		req.StartTime, staffLog(req.StaffID))

	// 1. Валидация правила целиком до первого бронирования (fail fast)
	rule := &domain.RecurrenceRule{
		Pattern:         domain.RecurrencePattern(req.Pattern),
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		ServiceID:       req.ServiceID,
		StaffID:         req.StaffID,
		CustomerID:      req.CustomerID,
		ServicePrice:    req.ServicePrice,
		Notes:           req.Notes,
	}

	if err := rule.Validate(); err != nil {
		uc.logger.Warn("CreateRecurringBooking: rule validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
	}

	// 2. Детерминированное разворачивание правила в даты
	dates := rule.OccurrenceDates()
	if len(dates) > domain.MaxRecurrenceOccurrences {
		uc.logger.Warn("CreateRecurringBooking: series of %d occurrences exceeds limit %d",
			len(dates), domain.MaxRecurrenceOccurrences)
		return nil, fmt.Errorf("%w: %d > %d", ErrTooManyOccurrences, len(dates), domain.MaxRecurrenceOccurrences)
	}

	// 3. Общий идентификатор серии, единый для всех вхождений
	groupID := uuid.New()

	resp := &Response{
		RecurrenceGroupID: groupID,
		Created:           make([]CreatedOccurrence, 0, len(dates)),
		Skipped:           make([]SkippedOccurrence, 0),
	}

	// 4. Планируем вхождения по одному через обычный путь бронирования
	for _, date := range dates {
		bookingReq := &create_booking.Request{
			CustomerID:        req.CustomerID,
			StaffID:           req.StaffID,
			ServiceID:         req.ServiceID,
			Date:              date,
			StartTime:         req.StartTime,
			DurationMinutes:   req.DurationMinutes,
			Notes:             req.Notes,
			ServiceName:       req.ServiceName,
			ServicePrice:      req.ServicePrice,
			RecurrenceGroupID: &groupID,
		}

		created, err := uc.scheduler.Execute(ctx, bookingReq)
		if err != nil {
			// Некорректные данные всплывают на первом же вхождении -
			// это дефект правила, а не конфликт расписания
			if errors.Is(err, create_booking.ErrInvalidDate) || errors.Is(err, create_booking.ErrInvalidInput) {
				uc.logger.Warn("CreateRecurringBooking: occurrence %s rejected: %v",
					date.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: %v", ErrInvalidRule, err)
			}

			reason, skippable := skipReason(err)
			if !skippable {
				uc.logger.Error("CreateRecurringBooking: occurrence %s failed: %v",
					date.Format(domain.DateFormat), err)
				return nil, fmt.Errorf("%w: occurrence %s: %v",
					ErrInternal, date.Format(domain.DateFormat), err)
			}

			uc.logger.Warn("CreateRecurringBooking: occurrence %s skipped: %s",
				date.Format(domain.DateFormat), reason)
			resp.Skipped = append(resp.Skipped, SkippedOccurrence{Date: date, Reason: reason})
			continue
		}

		resp.Created = append(resp.Created, CreatedOccurrence{
			BookingID: created.ID,
			Date:      created.BookingDate,
			StartTime: created.StartTime,
			Status:    created.Status,
		})
	}

	uc.logger.Info("CreateRecurringBooking: group=%s created=%d skipped=%d",
		groupID, len(resp.Created), len(resp.Skipped))

	return resp, nil
}

// skipReason переводит бизнес-отказ планировщика в причину пропуска.
// Прочие ошибки считаются инфраструктурными и прерывают серию.
func skipReason(err error) (string, bool) {
	switch {
	case errors.Is(err, create_booking.ErrSlotConflict):
		return ReasonSlotConflict, true
	case errors.Is(err, create_booking.ErrOutsideWorkingHours):
		return ReasonOutsideWorkingHours, true
	case errors.Is(err, create_booking.ErrBusy):
		return ReasonBusy, true
	default:
		return "", false
	}
}

func staffLog(id *int64) interface{} {
	if id == nil {
		return "none"
	}
	return *id
}
