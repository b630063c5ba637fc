package get_staff_schedule

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/salonhq/scheduling-service/internal/api/handlers"
	getStaffSchedule "github.com/salonhq/scheduling-service/internal/usecase/get_staff_schedule"
)

const (
	msgInvalidStaffID  = "некорректный ID мастера"
	msgMissingDate     = "дата обязательна"
	msgInvalidDate     = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration = "некорректная длительность слота"
	msgInvalidRequest  = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetStaffScheduleUseCase
	logger  Logger
}

func NewHandler(useCase GetStaffScheduleUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/staff-schedule
// Query params: date (required, YYYY-MM-DD), staffId (optional),
// durationMinutes (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// Извлекаем staffId (опционально)
	var staffID *int64
	if staffIDStr := query.Get("staffId"); staffIDStr != "" {
		id, err := strconv.ParseInt(staffIDStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /staff-schedule - Invalid staff ID: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStaffID)
			return
		}
		staffID = &id
	}

	// Извлекаем date
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /staff-schedule - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Извлекаем durationMinutes (опционально)
	durationMinutes := 0
	if durationStr := query.Get("durationMinutes"); durationStr != "" {
		var err error
		durationMinutes, err = strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /staff-schedule - Invalid duration: %v", err)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
	}

	useCaseReq, err := ToUseCaseRequest(staffID, dateStr, durationMinutes)
	if err != nil {
		h.logger.Warn("GET /staff-schedule - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getStaffSchedule.ErrInvalidInput):
			h.logger.Warn("GET /staff-schedule - Invalid request: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequest)

		default:
			h.logger.Error("GET /staff-schedule - Failed to build schedules: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	response := FromUseCaseResponse(result)

	h.logger.Info("GET /staff-schedule - Schedules built successfully: date=%s, count=%d",
		dateStr, len(result.Schedules))
	handlers.RespondJSON(w, http.StatusOK, response)
}
