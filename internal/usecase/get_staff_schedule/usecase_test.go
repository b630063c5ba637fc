package get_staff_schedule

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
}

func (f *fakeBookingRepo) GetActiveByStaffAndDate(_ context.Context, staffID int64, date time.Time) ([]*domain.Booking, error) {
	var result []*domain.Booking
	for _, b := range f.bookings {
		if b.StaffID != nil && *b.StaffID == staffID && b.BookingDate.Equal(date) && b.IsActive() {
			result = append(result, b)
		}
	}
	return result, nil
}

type fakeWorkingHoursRepo struct {
	records map[int64]map[time.Weekday]*domain.StaffWorkingHours
}

func (f *fakeWorkingHoursRepo) GetByStaffAndWeekday(_ context.Context, staffID int64, weekday time.Weekday) (*domain.StaffWorkingHours, error) {
	if record, ok := f.records[staffID][weekday]; ok {
		return record, nil
	}
	return nil, workingHoursRepo.ErrNotFound
}

func (f *fakeWorkingHoursRepo) HasSchedule(_ context.Context, staffID int64) (bool, error) {
	return len(f.records[staffID]) > 0, nil
}

func (f *fakeWorkingHoursRepo) ListStaffForWeekday(_ context.Context, weekday time.Weekday) ([]*domain.StaffWorkingHours, error) {
	var result []*domain.StaffWorkingHours
	for _, byWeekday := range f.records {
		if record, ok := byWeekday[weekday]; ok && record.IsWorking {
			result = append(result, record)
		}
	}
	return result, nil
}

type fakeTimeProvider struct {
	now time.Time
}

func (f *fakeTimeProvider) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Понедельник
var testDate = time.Date(2024, time.January, 8, 0, 0, 0, 0, time.UTC)

func workingDay(staffID int64, start, end string) *domain.StaffWorkingHours {
	return &domain.StaffWorkingHours{
		StaffID:   staffID,
		Weekday:   testDate.Weekday(),
		IsWorking: true,
		StartTime: types.TimeString(start),
		EndTime:   types.TimeString(end),
	}
}

func newTestUseCase(bookings *fakeBookingRepo, hours *fakeWorkingHoursRepo, opts Options) *UseCase {
	uc := NewUseCase(bookings, hours, opts, nopLogger{})
	uc.timeProvider = &fakeTimeProvider{now: testDate}
	return uc
}

func TestExecute_SingleStaff(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: map[int64]map[time.Weekday]*domain.StaffWorkingHours{
		1: {testDate.Weekday(): workingDay(1, "09:00", "12:00")},
	}}
	bookings := &fakeBookingRepo{bookings: []*domain.Booking{
		{
			ID:              1,
			StaffID:         ptr.Ptr(int64(1)),
			BookingDate:     testDate,
			StartTime:       "10:00",
			DurationMinutes: 60,
			Status:          domain.StatusConfirmed,
		},
	}}
	uc := newTestUseCase(bookings, hours, Options{SlotStepMinutes: 60, DefaultDurationMinutes: 60})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, StaffID: ptr.Ptr(int64(1))})
	require.NoError(t, err)

	require.Len(t, resp.Schedules, 1)
	schedule := resp.Schedules[0]
	assert.Equal(t, int64(1), schedule.StaffID)
	assert.True(t, schedule.IsWorking)
	assert.Equal(t, types.TimeString("09:00"), schedule.Interval.Start)
	assert.Equal(t, types.TimeString("12:00"), schedule.Interval.End)

	// Часовые слоты 09, 10, 11; занят только слот с бронированием
	require.Len(t, schedule.Slots, 3)
	assert.True(t, schedule.Slots[0].IsAvailable)
	assert.False(t, schedule.Slots[1].IsAvailable)
	assert.True(t, schedule.Slots[2].IsAvailable)
	assert.Equal(t, types.TimeString("12:00"), schedule.Slots[2].EndTime)
}

func TestExecute_AllStaffForWeekday(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: map[int64]map[time.Weekday]*domain.StaffWorkingHours{
		1: {testDate.Weekday(): workingDay(1, "09:00", "12:00")},
		2: {testDate.Weekday(): workingDay(2, "13:00", "17:00")},
		// У третьего мастера понедельник не настроен - в выдачу не попадает
		3: {time.Tuesday: {StaffID: 3, Weekday: time.Tuesday, IsWorking: true, StartTime: "09:00", EndTime: "17:00"}},
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{SlotStepMinutes: 30, DefaultDurationMinutes: 60})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate})
	require.NoError(t, err)

	require.Len(t, resp.Schedules, 2)
	staffIDs := []int64{resp.Schedules[0].StaffID, resp.Schedules[1].StaffID}
	assert.ElementsMatch(t, []int64{1, 2}, staffIDs)
	for _, schedule := range resp.Schedules {
		assert.True(t, schedule.IsWorking)
		assert.NotEmpty(t, schedule.Slots)
	}
}

func TestExecute_NotWorkingDay(t *testing.T) {
	dayOff := workingDay(1, "09:00", "17:00")
	dayOff.IsWorking = false
	hours := &fakeWorkingHoursRepo{records: map[int64]map[time.Weekday]*domain.StaffWorkingHours{
		1: {testDate.Weekday(): dayOff},
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{})

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, StaffID: ptr.Ptr(int64(1))})
	require.NoError(t, err)

	require.Len(t, resp.Schedules, 1)
	assert.False(t, resp.Schedules[0].IsWorking)
	assert.Empty(t, resp.Schedules[0].Slots)
}

func TestExecute_DefaultIntervalFallback(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: map[int64]map[time.Weekday]*domain.StaffWorkingHours{}}
	opts := Options{
		SlotStepMinutes:        60,
		DefaultDurationMinutes: 60,
		DefaultInterval: domain.WorkingInterval{
			Start: "10:00",
			End:   "14:00",
		},
	}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, opts)

	resp, err := uc.Execute(context.Background(), &Request{Date: testDate, StaffID: ptr.Ptr(int64(5))})
	require.NoError(t, err)

	require.Len(t, resp.Schedules, 1)
	assert.True(t, resp.Schedules[0].IsWorking)
	assert.Len(t, resp.Schedules[0].Slots, 4)
}

func TestExecute_PastDateReturnsEmpty(t *testing.T) {
	hours := &fakeWorkingHoursRepo{records: map[int64]map[time.Weekday]*domain.StaffWorkingHours{
		1: {testDate.Weekday(): workingDay(1, "09:00", "17:00")},
	}}
	uc := newTestUseCase(&fakeBookingRepo{}, hours, Options{})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:    testDate.AddDate(0, 0, -7),
		StaffID: ptr.Ptr(int64(1)),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Schedules)
}

func TestExecute_Validation(t *testing.T) {
	uc := newTestUseCase(&fakeBookingRepo{}, &fakeWorkingHoursRepo{}, Options{})

	_, err := uc.Execute(context.Background(), &Request{StaffID: ptr.Ptr(int64(1))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate, StaffID: ptr.Ptr(int64(0))})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{Date: testDate, DurationMinutes: -30})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
