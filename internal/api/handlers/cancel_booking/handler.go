package cancel_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhq/scheduling-service/internal/api/handlers"
	"github.com/salonhq/scheduling-service/internal/domain"
	"github.com/salonhq/scheduling-service/internal/service/bookings"
	"github.com/salonhq/scheduling-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidScope       = "некорректная область отмены, ожидается single или series"
	msgReasonTooLong      = "причина отмены слишком длинная"
	msgNotFound           = "бронирование не найдено"
	msgCannotCancel       = "бронирование не может быть отменено"
	msgNotRecurring       = "бронирование не входит в серию"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/bookings/{bookingId}/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req CancelBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq := req.ToServiceRequest()
	if serviceReq.Scope != models.ScopeSingle && serviceReq.Scope != models.ScopeSeries {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Invalid scope: %s", req.Scope)
		handlers.RespondBadRequest(w, msgInvalidScope)
		return
	}
	if len(serviceReq.CancellationReason) > domain.MaxCancellationReasonLength {
		h.logger.Warn("PATCH /bookings/{id}/cancel - Reason too long: booking_id=%d, len=%d",
			bookingID, len(serviceReq.CancellationReason))
		handlers.RespondBadRequest(w, msgReasonTooLong)
		return
	}

	result, err := h.service.Cancel(r.Context(), bookingID, serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrBookingNotFound):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, bookings.ErrCannotCancel):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Cannot cancel: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgCannotCancel)

		case errors.Is(err, bookings.ErrNotRecurring):
			h.logger.Warn("PATCH /bookings/{id}/cancel - Not a recurring booking: booking_id=%d", bookingID)
			handlers.RespondBadRequest(w, msgNotRecurring)

		default:
			h.logger.Error("PATCH /bookings/{id}/cancel - Failed to cancel booking: booking_id=%d, error=%v",
				bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /bookings/{id}/cancel - Cancelled successfully: booking_id=%d, cancelled=%d",
		bookingID, len(result.CancelledIDs))
	handlers.RespondJSON(w, http.StatusOK, result)
}
