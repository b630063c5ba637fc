package get_availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduling-service/internal/domain"
	workingHoursRepo "github.com/salonhq/scheduling-service/internal/infra/storage/workinghours"
	"github.com/salonhq/scheduling-service/pkg/ptr"
	"github.com/salonhq/scheduling-service/pkg/types"
)

type fakeBookingRepo struct {
	bookings []*domain.Booking
	err      error
}

func (f *fakeBookingRepo) GetActiveByStaffAndDate(_ context.Context, _ int64, _ time.Time) ([]*domain.Booking, error) {
	return f.bookings, f.err
}

type fakeWorkingHoursRepo struct {
	records     map[time.Weekday]*domain.StaffWorkingHours
	hasSchedule bool
}

func (f *fakeWorkingHoursRepo) GetByStaffAndWeekday(_ context.Context, _ int64, weekday time.Weekday) (*domain.StaffWorkingHours, error) {
	record, ok := f.records[weekday]
	if !ok {
		return nil, workingHoursRepo.ErrNotFound
	}
	return record, nil
}

func (f *fakeWorkingHoursRepo) HasSchedule(_ context.Context, _ int64) (bool, error) {
	return f.hasSchedule, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time {
	return f.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// 2024-01-08 - понедельник
var testDate = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

func newTestUseCase(bookings *fakeBookingRepo, hours *fakeWorkingHoursRepo, opts Options) *UseCase {
	uc := NewUseCase(bookings, hours, opts, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testDate}
	return uc
}

func workingDay(start, end string) map[time.Weekday]*domain.StaffWorkingHours {
	return map[time.Weekday]*domain.StaffWorkingHours{
		testDate.Weekday(): {
			StaffID:   1,
			Weekday:   testDate.Weekday(),
			IsWorking: true,
			StartTime: types.TimeString(start),
			EndTime:   types.TimeString(end),
		},
	}
}

func TestExecute_SlotGeneration(t *testing.T) {
	// Рабочие часы 09:00-17:00, услуга 30 минут, шаг 30 минут:
	// первый слот 09:00-09:30, последний 16:30-17:00
	hours := &fakeWorkingHoursRepo{records: workingDay("09:00", "17:00"), hasSchedule: true}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		ServiceID:       1,
		StaffID:         ptr.Ptr(int64(1)),
		DurationMinutes: 30,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 16)

	assert.Equal(t, "09:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "09:30", resp.Slots[0].EndTime.String())

	last := resp.Slots[len(resp.Slots)-1]
	assert.Equal(t, "16:30", last.StartTime.String())
	assert.Equal(t, "17:00", last.EndTime.String())

	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_SlotEndingAtCloseIsValid(t *testing.T) {
	// Слот, заканчивающийся ровно в закрытие, входит в выдачу
	hours := &fakeWorkingHoursRepo{records: workingDay("10:00", "12:00"), hasSchedule: true}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		ServiceID:       1,
		StaffID:         ptr.Ptr(int64(1)),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	assert.Equal(t, "11:00", resp.Slots[2].StartTime.String())
	assert.Equal(t, "12:00", resp.Slots[2].EndTime.String())
}

func TestExecute_BookingConflictMarksSlots(t *testing.T) {
	// Бронирование 10:00-10:30: пересекающиеся слоты заняты,
	// граничащий слот 10:30 свободен
	hours := &fakeWorkingHoursRepo{records: workingDay("09:00", "12:00"), hasSchedule: true}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			StaffID:         ptr.Ptr(int64(1)),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(bookings, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		ServiceID:       1,
		StaffID:         ptr.Ptr(int64(1)),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	availability := make(map[string]bool, len(resp.Slots))
	for _, slot := range resp.Slots {
		availability[slot.StartTime.String()] = slot.IsAvailable
	}

	assert.False(t, availability["10:00"])
	assert.True(t, availability["09:30"]) // заканчивается ровно в 10:00
	assert.True(t, availability["10:30"]) // начинается ровно в конец бронирования
}

func TestExecute_CancelledBookingIgnored(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: workingDay("09:00", "12:00"), hasSchedule: true}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			StaffID:         ptr.Ptr(int64(1)),
			StartTime:       "10:00",
			DurationMinutes: 30,
			Status:          domain.StatusCancelled,
		},
	}}
	uc := newTestUseCase(bookings, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		ServiceID:       1,
		StaffID:         ptr.Ptr(int64(1)),
		DurationMinutes: 30,
	})
	require.NoError(t, err)

	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable, "slot %s", slot.StartTime)
	}
}

func TestExecute_NoScheduleNoDefault(t *testing.T) {
	// Нет ни расписания, ни системного дефолта - пустой список, не ошибка
	hours := &fakeWorkingHoursRepo{records: map[time.Weekday]*domain.StaffWorkingHours{}, hasSchedule: false}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		ServiceID: 1,
		StaffID:   ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoScheduleWithDefault(t *testing.T) {
	// Расписание не настроено, но есть системный дефолт
	hours := &fakeWorkingHoursRepo{records: map[time.Weekday]*domain.StaffWorkingHours{}, hasSchedule: false}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{
		SlotStepMinutes: 30,
		DefaultInterval: domain.WorkingInterval{Start: "10:00", End: "12:00"},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		ServiceID:       1,
		StaffID:         ptr.Ptr(int64(1)),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 3)
}

func TestExecute_DayOffWhenScheduleConfigured(t *testing.T) {
	// Расписание настроено, но записи на этот день недели нет - выходной,
	// дефолт не применяется
	hours := &fakeWorkingHoursRepo{records: map[time.Weekday]*domain.StaffWorkingHours{}, hasSchedule: true}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{
		SlotStepMinutes: 30,
		DefaultInterval: domain.WorkingInterval{Start: "09:00", End: "18:00"},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		ServiceID: 1,
		StaffID:   ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NotWorkingDay(t *testing.T) {
	hours := &fakeWorkingHoursRepo{
		records: map[time.Weekday]*domain.StaffWorkingHours{
			testDate.Weekday(): {StaffID: 1, Weekday: testDate.Weekday(), IsWorking: false},
		},
		hasSchedule: true,
	}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate,
		ServiceID: 1,
		StaffID:   ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_StaffLessServiceSkipsConflicts(t *testing.T) {
	// Услуга без мастера: дефолтный интервал, проверка занятости пропускается
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeWorkingHoursRepo{}, Options{
		SlotStepMinutes: 30,
		DefaultInterval: domain.WorkingInterval{Start: "09:00", End: "11:00"},
	})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:            testDate,
		ServiceID:       1,
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	require.Len(t, resp.Slots, 3)
	for _, slot := range resp.Slots {
		assert.True(t, slot.IsAvailable)
	}
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: workingDay("09:00", "17:00"), hasSchedule: true}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:      testDate.AddDate(0, 0, -1),
		ServiceID: 1,
		StaffID:   ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeWorkingHoursRepo{}, Options{})

	_, err := uc.Execute(context.Background(), &Request{Date: testDate})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{ServiceID: 1})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{
		Date: testDate, ServiceID: 1, DurationMinutes: -10,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Deterministic(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: workingDay("09:00", "17:00"), hasSchedule: true}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30})

	req := &Request{Date: testDate, ServiceID: 1, StaffID: ptr.Ptr(int64(1)), DurationMinutes: 30}

	first, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	second, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Slots, second.Slots)
}
