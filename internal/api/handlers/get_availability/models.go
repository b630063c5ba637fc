package get_availability

import (
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	getAvailability "github.com/salonhq/scheduling-service/internal/usecase/get_availability"
)

// SlotResponse HTTP модель вычисленного слота
type SlotResponse struct {
	StartTime   string `json:"startTime"` // "10:00"
	EndTime     string `json:"endTime"`   // "11:00"
	IsAvailable bool   `json:"isAvailable"`
}

// AvailabilityResponse HTTP модель ответа со слотами на день
type AvailabilityResponse struct {
	Date      string         `json:"date"` // "2026-08-28"
	ServiceID int64          `json:"serviceId"`
	StaffID   *int64         `json:"staffId,omitempty"`
	Slots     []SlotResponse `json:"slots"`
}

// ToUseCaseRequest собирает запрос use case из распарсенных параметров
func ToUseCaseRequest(serviceID int64, staffID *int64, dateStr string, durationMinutes int) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		Date:            date,
		ServiceID:       serviceID,
		StaffID:         staffID,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	out := &AvailabilityResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		ServiceID: resp.ServiceID,
		StaffID:   resp.StaffID,
		Slots:     make([]SlotResponse, 0, len(resp.Slots)),
	}

	for _, slot := range resp.Slots {
		out.Slots = append(out.Slots, SlotResponse{
			StartTime:   slot.StartTime.String(),
			EndTime:     slot.EndTime.String(),
			IsAvailable: slot.IsAvailable,
		})
	}

	return out
}
