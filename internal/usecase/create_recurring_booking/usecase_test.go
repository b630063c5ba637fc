package create_recurring_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduling-service/internal/usecase/create_booking"
	"github.com/salonhq/scheduling-service/pkg/ptr"
)

// fakeScheduler программируемый планировщик: ошибки по датам,
// остальные вхождения создаются
type fakeScheduler struct {
	nextID   int64
	failures map[string]error // date -> error
	requests []*create_booking.Request
}

func (f *fakeScheduler) Execute(_ context.Context, req *create_booking.Request) (*create_booking.Response, error) {
	f.requests = append(f.requests, req)

	if err, ok := f.failures[req.Date.Format("2006-01-02")]; ok {
		return nil, err
	}

	f.nextID++
	return &create_booking.Response{
		ID:              f.nextID,
		CustomerID:      req.CustomerID,
		StaffID:         req.StaffID,
		ServiceID:       req.ServiceID,
		BookingDate:     req.Date,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Status:          "pending",
	}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func weeklyRequest() *Request {
	return &Request{
		CustomerID:      ptr.Ptr(int64(7)),
		StaffID:         ptr.Ptr(int64(1)),
		ServiceID:       1,
		Pattern:         "weekly",
		StartDate:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		EndDate:         time.Date(2024, time.January, 22, 0, 0, 0, 0, time.UTC),
		StartTime:       "10:00",
		DurationMinutes: 60,
		ServiceName:     "Haircut",
		ServicePrice:    35,
	}
}

func TestExecute_CreatesAllOccurrences(t *testing.T) {
	scheduler := &fakeScheduler{}
	uc := NewUseCase(scheduler, nopLogger{})

	resp, err := uc.Execute(context.Background(), weeklyRequest())
	require.NoError(t, err)

	require.Len(t, resp.Created, 4)
	assert.Empty(t, resp.Skipped)
	assert.NotEqual(t, "00000000-0000-0000-0000-000000000000", resp.RecurrenceGroupID.String())

	// Вхождения в хронологическом порядке
	assert.Equal(t, "2024-01-01", resp.Created[0].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-01-08", resp.Created[1].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-01-15", resp.Created[2].Date.Format("2006-01-02"))
	assert.Equal(t, "2024-01-22", resp.Created[3].Date.Format("2006-01-02"))

	// Все вхождения несут один и тот же идентификатор серии
	for _, req := range scheduler.requests {
		require.NotNil(t, req.RecurrenceGroupID)
		assert.Equal(t, resp.RecurrenceGroupID, *req.RecurrenceGroupID)
	}
}

func TestExecute_PartialSuccess(t *testing.T) {
	// Конфликт на одном вхождении не ломает серию
	scheduler := &fakeScheduler{
		failures: map[string]error{
			"2024-01-08": create_booking.ErrSlotConflict,
		},
	}
	uc := NewUseCase(scheduler, nopLogger{})

	resp, err := uc.Execute(context.Background(), weeklyRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Created, 3)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "2024-01-08", resp.Skipped[0].Date.Format("2006-01-02"))
	assert.Equal(t, ReasonSlotConflict, resp.Skipped[0].Reason)
}

func TestExecute_SkipReasons(t *testing.T) {
	scheduler := &fakeScheduler{
		failures: map[string]error{
			"2024-01-08": create_booking.ErrOutsideWorkingHours,
			"2024-01-15": create_booking.ErrBusy,
		},
	}
	uc := NewUseCase(scheduler, nopLogger{})

	resp, err := uc.Execute(context.Background(), weeklyRequest())
	require.NoError(t, err)

	assert.Len(t, resp.Created, 2)
	require.Len(t, resp.Skipped, 2)
	assert.Equal(t, ReasonOutsideWorkingHours, resp.Skipped[0].Reason)
	assert.Equal(t, ReasonBusy, resp.Skipped[1].Reason)
}

func TestExecute_InvalidRuleFailsFast(t *testing.T) {
	scheduler := &fakeScheduler{}
	uc := NewUseCase(scheduler, nopLogger{})

	req := weeklyRequest()
	req.Pattern = "daily"
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRule)

	req = weeklyRequest()
	req.EndDate = req.StartDate.AddDate(0, 0, -7)
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRule)

	req = weeklyRequest()
	req.DurationMinutes = 0
	_, err = uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidRule)

	// Ни одно бронирование не создается при невалидном правиле
	assert.Empty(t, scheduler.requests)
}

func TestExecute_TooManyOccurrences(t *testing.T) {
	scheduler := &fakeScheduler{}
	uc := NewUseCase(scheduler, nopLogger{})

	req := weeklyRequest()
	req.EndDate = req.StartDate.AddDate(3, 0, 0) // ~156 недель
	_, err := uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrTooManyOccurrences)
	assert.Empty(t, scheduler.requests)
}

func TestExecute_InternalErrorAborts(t *testing.T) {
	// Инфраструктурная ошибка прерывает серию; созданные вхождения остаются
	scheduler := &fakeScheduler{
		failures: map[string]error{
			"2024-01-15": errors.New("database is down"),
		},
	}
	uc := NewUseCase(scheduler, nopLogger{})

	_, err := uc.Execute(context.Background(), weeklyRequest())
	assert.ErrorIs(t, err, ErrInternal)

	// Планировщик был вызван для 01-01, 01-08 и 01-15, но не для 01-22
	assert.Len(t, scheduler.requests, 3)
}

func TestExecute_InvalidDateFromSchedulerIsRuleError(t *testing.T) {
	scheduler := &fakeScheduler{
		failures: map[string]error{
			"2024-01-01": create_booking.ErrInvalidDate,
		},
	}
	uc := NewUseCase(scheduler, nopLogger{})

	_, err := uc.Execute(context.Background(), weeklyRequest())
	assert.ErrorIs(t, err, ErrInvalidRule)
}
