package create_booking

import (
	"errors"
	"net/http"

	"github.com/salonhq/scheduling-service/internal/api/handlers"
	"github.com/salonhq/scheduling-service/internal/api/middleware"
	createBooking "github.com/salonhq/scheduling-service/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateFormat   = "некорректный формат даты бронирования, ожидается YYYY-MM-DD"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotConflict        = "выбранный временной слот уже занят"
	msgOutsideWorkingHours = "выбранное время вне рабочих часов"
	msgSchedulingBusy      = "планировщик занят, повторите запрос"
	msgInvalidBookingDate  = "некорректная дата бронирования"
	msgInvalidInput        = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateFormat)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrSlotConflict):
			h.logger.Warn("POST /bookings - Slot conflict: customer_id=%d, date=%s, time=%s",
				customerID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgSlotConflict)

		case errors.Is(err, createBooking.ErrOutsideWorkingHours):
			h.logger.Warn("POST /bookings - Outside working hours: customer_id=%d, date=%s, time=%s",
				customerID, req.BookingDate, req.StartTime)
			handlers.RespondError(w, http.StatusConflict, msgOutsideWorkingHours)

		case errors.Is(err, createBooking.ErrBusy):
			h.logger.Warn("POST /bookings - Scheduling busy: customer_id=%d, date=%s", customerID, req.BookingDate)
			handlers.RespondServiceUnavailable(w, msgSchedulingBusy)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid booking date: customer_id=%d, date=%s", customerID, req.BookingDate)
			handlers.RespondBadRequest(w, msgInvalidBookingDate)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, customer_id=%d",
		result.ID, customerID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
