package get_customer_bookings

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
	msgInvalidCustomerID = "некорректный ID клиента"
	msgInvalidStatus     = "некорректный статус"
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

// Handle GET /api/v1/customers/{customerId}/bookings
// Query params: status (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем customerId из URL
	vars := mux.Vars(r)
	customerIDStr := vars["customerId"]

	customerID, err := strconv.ParseInt(customerIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /customers/{id}/bookings - Invalid customer ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidCustomerID)
		return
	}

	// Извлекаем status из query параметров (опционально)
	var status *string
	if statusStr := r.URL.Query().Get("status"); statusStr != "" {
		status = &statusStr
	}

	serviceReq := &models.GetCustomerBookingsRequest{
		CustomerID: customerID,
		Status:     status,
	}

	result, err := h.service.GetCustomerBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /customers/{id}/bookings - Invalid status: customer_id=%d", customerID)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /customers/{id}/bookings - Failed to get bookings: customer_id=%d, error=%v",
				customerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /customers/{id}/bookings - Bookings retrieved: customer_id=%d, count=%d",
		customerID, result.Total)
	handlers.RespondJSON(w, http.StatusOK, result)
}
