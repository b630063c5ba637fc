package create_recurring_booking

import (
	"errors"
	"net/http"

	"github.com/salonhq/scheduling-service/internal/api/handlers"
	"github.com/salonhq/scheduling-service/internal/api/middleware"
	createRecurring "github.com/salonhq/scheduling-service/internal/usecase/create_recurring_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректный формат даты или времени"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgInvalidRule        = "некорректное правило повторения"
	msgTooManyOccurrences = "серия содержит слишком много вхождений"
)

type Handler struct {
	useCase CreateRecurringBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateRecurringBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/recurring
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Получаем userID из контекста (через middleware Auth)
	customerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/recurring - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateRecurringBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/recurring - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(customerID)
	if err != nil {
		h.logger.Warn("POST /bookings/recurring - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createRecurring.ErrInvalidRule):
			h.logger.Warn("POST /bookings/recurring - Invalid rule: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgInvalidRule)

		case errors.Is(err, createRecurring.ErrTooManyOccurrences):
			h.logger.Warn("POST /bookings/recurring - Too many occurrences: customer_id=%d, error=%v", customerID, err)
			handlers.RespondBadRequest(w, msgTooManyOccurrences)

		default:
			h.logger.Error("POST /bookings/recurring - Failed to create series: customer_id=%d, error=%v", customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings/recurring - Series created: group=%s, customer_id=%d, created=%d, skipped=%d",
		response.RecurrenceGroupID, customerID, len(response.Created), len(response.Skipped))
	handlers.RespondJSON(w, http.StatusCreated, response)
}
