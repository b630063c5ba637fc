package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/salonhq/scheduling-service/internal/api/handlers"
	getAvailability "github.com/salonhq/scheduling-service/internal/usecase/get_availability"
)

const (
	msgMissingServiceID = "ID услуги обязателен"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidStaffID   = "некорректный ID мастера"
	msgMissingDate      = "дата обязательна"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration  = "некорректная длительность услуги"
	msgInvalidRequest   = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability
// Query params: date (required, YYYY-MM-DD), serviceId (required),
// staffId (optional), durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем serviceId
	serviceIDStr := query.Get("serviceId")
	if serviceIDStr == "" {
		h.logger.Warn("GET /availability - Missing service ID")
		handlers.RespondBadRequest(w, msgMissingServiceID)
		return
	}
	serviceID, err := strconv.ParseInt(serviceIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	// Извлекаем staffId (опционально)
	var staffID *int64
	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	// Извлекаем date
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /availability - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем durationMinutes (опционально)
	durationMinutes := 0
	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(serviceID, staffID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid request: service_id=%d, error=%v", serviceID, err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /availability - Failed to compute slots: service_id=%d, error=%v", serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /availability - Slots computed successfully: service_id=%d, date=%s, slots_count=%d",
		serviceID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
