package get_staff_schedule

import (
	"time"

	"github.com/salonhq/scheduling-service/internal/domain"
	getStaffSchedule "github.com/salonhq/scheduling-service/internal/usecase/get_staff_schedule"
)

// SlotResponse HTTP модель вычисленного слота
type SlotResponse struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
}

// StaffScheduleResponse HTTP модель расписания одного мастера на день
type StaffScheduleResponse struct {
	StaffID   int64          `json:"staffId"`
	IsWorking bool           `json:"isWorking"`
	StartTime *string        `json:"startTime,omitempty"` // начало рабочего интервала
	EndTime   *string        `json:"endTime,omitempty"`   // конец рабочего интервала
	Slots     []SlotResponse `json:"slots"`
}

// ScheduleResponse HTTP модель ответа с расписаниями на день
type ScheduleResponse struct {
	Date      string                  `json:"date"` // "2026-08-28"
	Schedules []StaffScheduleResponse `json:"schedules"`
}

// ToUseCaseRequest собирает запрос use case из распарсенных параметров
func ToUseCaseRequest(staffID *int64, dateStr string, durationMinutes int) (*getStaffSchedule.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getStaffSchedule.Request{
		Date:            date,
		StaffID:         staffID,
		DurationMinutes: durationMinutes,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getStaffSchedule.Response) *ScheduleResponse {
	out := &ScheduleResponse{
		Date:      resp.Date.Format(domain.DateFormat),
		Schedules: make([]StaffScheduleResponse, 0, len(resp.Schedules)),
	}

	for _, schedule := range resp.Schedules {
		entry := StaffScheduleResponse{
			StaffID:   schedule.StaffID,
			IsWorking: schedule.IsWorking,
			Slots:     make([]SlotResponse, 0, len(schedule.Slots)),
		}

		if schedule.IsWorking {
			start := schedule.Interval.Start.String()
			end := schedule.Interval.End.String()
			entry.StartTime = &start
			entry.EndTime = &end
		}

		for _, slot := range schedule.Slots {
			entry.Slots = append(entry.Slots, SlotResponse{
				StartTime:   slot.StartTime.String(),
				EndTime:     slot.EndTime.String(),
				IsAvailable: slot.IsAvailable,
			})
		}

		out.Schedules = append(out.Schedules, entry)
	}

	return out
}
