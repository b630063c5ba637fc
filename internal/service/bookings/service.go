package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	bookingRepo "github.com/salonhq/scheduling-service/internal/infra/storage/booking"
	"github.com/salonhq/scheduling-service/internal/integrations/notifier"
	"github.com/salonhq/scheduling-service/internal/service/bookings/models"
	"github.com/salonhq/scheduling-service/pkg/txmanager"
)

// Service сервис для работы с существующими бронированиями:
// чтение, отмена и переводы статусов. Создание живет в usecase-слое.
type Service struct {
	bookingRepo    BookingRepository
	txManager      TransactionManager
	notifierClient NotifierClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	txManager TransactionManager,
	notifierClient NotifierClient,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		txManager:      txManager,
		notifierClient: notifierClient,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// GetCustomerBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetCustomerBookings(ctx context.Context, req *models.GetCustomerBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetCustomerBookings: fetching bookings for customer=%d, status=%v", req.CustomerID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetCustomerBookings: invalid status=%s for customer=%d", *req.Status, req.CustomerID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByCustomerID(ctx, req.CustomerID, domainStatus)
	if err != nil {
		s.logger.Error("GetCustomerBookings: repository error for customer=%d: %v", req.CustomerID, err)
		return nil, fmt.Errorf("%w: GetCustomerBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetCustomerBookings: fetched %d bookings for customer=%d", len(bookings), req.CustomerID)
	return models.FromDomainBookingList(bookings), nil
}

// GetStaffBookings получает активные бронирования мастера на дату
func (s *Service) GetStaffBookings(ctx context.Context, staffID int64, date time.Time) (*models.BookingListResponse, error) {
	s.logger.Info("GetStaffBookings: fetching bookings for staff=%d, date=%s", staffID, date.Format(domain.DateFormat))

	bookings, err := s.bookingRepo.GetActiveByStaffAndDate(ctx, staffID, date)
	if err != nil {
		s.logger.Error("GetStaffBookings: repository error for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: GetStaffBookings - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
// Отмененное бронирование сохраняется с причиной и временем отмены и больше
// не участвует в проверках конфликтов. При scope=series отменяются все
// отменяемые бронирования серии.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) (*models.CancelSeriesResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d, scope=%s", bookingID, req.Scope)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if req.Scope == models.ScopeSeries {
		return s.cancelSeries(ctx, booking, req.CancellationReason)
	}

	// Проверяем, можно ли отменить бронирование
	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	if err := s.bookingRepo.Cancel(ctx, bookingID, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d", bookingID)
	s.emitCancellation(bookingID)

	return &models.CancelSeriesResponse{CancelledIDs: []int64{bookingID}, SkippedIDs: []int64{}}, nil
}

// cancelSeries отменяет все отменяемые бронирования серии.
// Завершенные и уже отмененные вхождения пропускаются.
func (s *Service) cancelSeries(ctx context.Context, booking *domain.Booking, reason string) (*models.CancelSeriesResponse, error) {
	if booking.RecurrenceGroupID == nil {
		s.logger.Warn("Cancel: booking id=%d is not part of a recurrence group", booking.ID)
		return nil, ErrNotRecurring
	}

	groupID := *booking.RecurrenceGroupID
	series, err := s.bookingRepo.GetByRecurrenceGroup(ctx, groupID)
	if err != nil {
		s.logger.Error("Cancel: failed to fetch recurrence group %s: %v", groupID, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	resp := &models.CancelSeriesResponse{
		RecurrenceGroupID: groupID.String(),
		CancelledIDs:      make([]int64, 0, len(series)),
		SkippedIDs:        make([]int64, 0),
	}

	for _, b := range series {
		if !b.CanBeCancelled() {
			resp.SkippedIDs = append(resp.SkippedIDs, b.ID)
			continue
		}
		if err := s.bookingRepo.Cancel(ctx, b.ID, reason); err != nil {
			s.logger.Error("Cancel: failed to cancel booking id=%d in group %s: %v", b.ID, groupID, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
		resp.CancelledIDs = append(resp.CancelledIDs, b.ID)
		s.emitCancellation(b.ID)
	}

	s.logger.Info("Cancel: cancelled %d of %d bookings in group %s",
		len(resp.CancelledIDs), len(series), groupID)
	return resp, nil
}

// UpdateStatus обновляет статус бронирования
//
// Перевод из cancelled обратно в активный статус повторно проверяет
// отсутствие пересечений в SERIALIZABLE транзакции: за время отмены слот
// мог быть занят другим бронированием. Переводы между активными статусами
// и в cancelled инвариант не ослабляют и выполняются без транзакции.
func (s *Service) UpdateStatus(ctx context.Context, bookingID int64, req *models.UpdateStatusRequest) error {
	s.logger.Info("UpdateStatus: updating booking id=%d to status=%s", bookingID, req.Status)

	newStatus, err := models.ToDomainBookingStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for booking id=%d", req.Status, bookingID)
		return fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdateStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if booking.IsCancelled() && domain.IsActiveStatus(newStatus) {
		return s.reactivate(ctx, booking, newStatus)
	}

	if err := s.bookingRepo.UpdateStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		s.logger.Error("UpdateStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if newStatus == domain.StatusCancelled {
		s.emitCancellation(bookingID)
	}

	s.logger.Info("UpdateStatus: successfully updated booking id=%d to status=%s", bookingID, newStatus)
	return nil
}

// reactivate возвращает отмененное бронирование в активный статус,
// заново проверяя инвариант отсутствия пересечений
func (s *Service) reactivate(ctx context.Context, booking *domain.Booking, newStatus domain.BookingStatus) error {
	end, err := booking.EndTime()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - invalid booking interval: %v", ErrInternal, err)
	}

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Для услуг без мастера конфликтов быть не может
		if booking.StaffID != nil {
			active, err := s.bookingRepo.GetActiveByStaffAndDate(txCtx, *booking.StaffID, booking.BookingDate)
			if err != nil {
				return fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
			}
			for _, other := range active {
				if other.ID == booking.ID {
					continue
				}
				if other.Overlaps(booking.StartTime, end) {
					s.logger.Warn("UpdateStatus: reactivation of booking id=%d conflicts with booking id=%d",
						booking.ID, other.ID)
					return ErrSlotConflict
				}
			}
		}

		return s.bookingRepo.UpdateStatus(txCtx, booking.ID, newStatus)
	})

	if err != nil {
		if errors.Is(err, txmanager.ErrTxBusy) {
			s.logger.Warn("UpdateStatus: transaction busy for booking id=%d: %v", booking.ID, err)
			return fmt.Errorf("%w: %v", ErrBusy, err)
		}
		if errors.Is(err, ErrSlotConflict) {
			return err
		}
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			return ErrBookingNotFound
		}
		if errors.Is(err, ErrInternal) {
			return err
		}
		return fmt.Errorf("%w: UpdateStatus - transaction error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateStatus: successfully reactivated booking id=%d to status=%s", booking.ID, newStatus)
	return nil
}

// UpdatePaymentStatus обновляет статус оплаты бронирования
func (s *Service) UpdatePaymentStatus(ctx context.Context, bookingID int64, req *models.UpdatePaymentRequest) error {
	s.logger.Info("UpdatePaymentStatus: updating booking id=%d to payment=%s", bookingID, req.PaymentStatus)

	newStatus, err := models.ToDomainPaymentStatus(req.PaymentStatus)
	if err != nil {
		s.logger.Warn("UpdatePaymentStatus: invalid payment status=%s for booking id=%d", req.PaymentStatus, bookingID)
		return fmt.Errorf("%w: invalid payment status", ErrInvalidInput)
	}

	if err := s.bookingRepo.UpdatePaymentStatus(ctx, bookingID, newStatus); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("UpdatePaymentStatus: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("UpdatePaymentStatus: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: UpdatePaymentStatus - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdatePaymentStatus: successfully updated booking id=%d to payment=%s", bookingID, newStatus)
	return nil
}

// emitCancellation отправляет намерение уведомления об отмене fire-and-forget
func (s *Service) emitCancellation(bookingID int64) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		intent := notifier.Intent{Kind: notifier.KindCancellation, BookingID: bookingID}
		if err := s.notifierClient.Send(ctx, intent); err != nil {
			s.logger.Error("emitCancellation: failed to emit intent for booking id=%d: %v", bookingID, err)
		}
	}()
}
