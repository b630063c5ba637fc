package update_booking_status

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/salonhq/scheduling-service/internal/api/handlers"
	"github.com/salonhq/scheduling-service/internal/service/bookings"
	"github.com/salonhq/scheduling-service/internal/service/bookings/models"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingStatus      = "не указан новый статус"
	msgInvalidStatus      = "некорректный статус"
	msgNotFound           = "бронирование не найдено"
	msgSlotConflict       = "слот уже занят другим бронированием"
	msgSchedulingBusy     = "планировщик занят, повторите запрос"
)

// UpdateStatusRequest HTTP request model: хотя бы одно из полей обязательно
type UpdateStatusRequest struct {
	Status        *string `json:"status,omitempty"`
	PaymentStatus *string `json:"paymentStatus,omitempty"`
}

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

// Handle PATCH /api/v1/bookings/{bookingId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем bookingId из URL
	vars := mux.Vars(r)
	bookingIDStr := vars["bookingId"]

	bookingID, err := strconv.ParseInt(bookingIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	// Декодируем body
	var req UpdateStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	if req.Status == nil && req.PaymentStatus == nil {
		h.logger.Warn("PATCH /bookings/{id}/status - Empty request: booking_id=%d", bookingID)
		handlers.RespondBadRequest(w, msgMissingStatus)
		return
	}

	if req.Status != nil {
		serviceReq := &models.UpdateStatusRequest{Status: *req.Status}
		if err := h.service.UpdateStatus(r.Context(), bookingID, serviceReq); err != nil {
			h.respondServiceError(w, bookingID, err)
			return
		}
	}

	if req.PaymentStatus != nil {
		serviceReq := &models.UpdatePaymentRequest{PaymentStatus: *req.PaymentStatus}
		if err := h.service.UpdatePaymentStatus(r.Context(), bookingID, serviceReq); err != nil {
			h.respondServiceError(w, bookingID, err)
			return
		}
	}

	h.logger.Info("PATCH /bookings/{id}/status - Updated successfully: booking_id=%d", bookingID)
	handlers.RespondJSON(w, http.StatusOK, nil)
}

func (h *Handler) respondServiceError(w http.ResponseWriter, bookingID int64, err error) {
	switch {
	case errors.Is(err, bookings.ErrBookingNotFound):
		h.logger.Warn("PATCH /bookings/{id}/status - Booking not found: booking_id=%d", bookingID)
		handlers.RespondNotFound(w, msgNotFound)

	case errors.Is(err, bookings.ErrInvalidInput):
		h.logger.Warn("PATCH /bookings/{id}/status - Invalid status: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondBadRequest(w, msgInvalidStatus)

	case errors.Is(err, bookings.ErrSlotConflict):
		h.logger.Warn("PATCH /bookings/{id}/status - Slot conflict on reactivation: booking_id=%d", bookingID)
		handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

	case errors.Is(err, bookings.ErrBusy):
		h.logger.Warn("PATCH /bookings/{id}/status - Scheduling busy: booking_id=%d", bookingID)
		handlers.RespondServiceUnavailable(w, msgSchedulingBusy)

	default:
		h.logger.Error("PATCH /bookings/{id}/status - Failed to update: booking_id=%d, error=%v", bookingID, err)
		handlers.RespondInternalError(w)
	}
}
