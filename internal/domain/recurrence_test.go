package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestRecurrenceRule_Validate(t *testing.T) {
	valid := RecurrenceRule{
		Pattern:         PatternWeekly,
		StartDate:       date(2026, time.September, 7),
		EndDate:         date(2026, time.September, 28),
		StartTime:       "10:00",
		DurationMinutes: 60,
		ServiceID:       1,
	}
	require.NoError(t, valid.Validate())

	t.Run("unknown pattern", func(t *testing.T) {
		rule := valid
		rule.Pattern = "daily"
		assert.ErrorIs(t, rule.Validate(), ErrInvalidPattern)
	})

	t.Run("end before start", func(t *testing.T) {
		rule := valid
		rule.EndDate = date(2026, time.September, 1)
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDateRange)
	})

	t.Run("missing dates", func(t *testing.T) {
		rule := valid
		rule.EndDate = time.Time{}
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDateRange)
	})

	t.Run("non-positive duration", func(t *testing.T) {
		rule := valid
		rule.DurationMinutes = 0
		assert.ErrorIs(t, rule.Validate(), ErrInvalidDuration)
	})

	t.Run("invalid start time", func(t *testing.T) {
		rule := valid
		rule.StartTime = "25:00"
		assert.Error(t, rule.Validate())
	})

	t.Run("single day range is valid", func(t *testing.T) {
		rule := valid
		rule.EndDate = rule.StartDate
		assert.NoError(t, rule.Validate())
	})
}

func TestRecurrenceRule_OccurrenceDates_Weekly(t *testing.T) {
	rule := RecurrenceRule{
		Pattern:         PatternWeekly,
		StartDate:       date(2026, time.September, 7),
		EndDate:         date(2026, time.September, 28),
		StartTime:       "10:00",
		DurationMinutes: 60,
	}

	dates := rule.OccurrenceDates()
	require.Len(t, dates, 4)
	assert.Equal(t, date(2026, time.September, 7), dates[0])
	assert.Equal(t, date(2026, time.September, 14), dates[1])
	assert.Equal(t, date(2026, time.September, 21), dates[2])
	assert.Equal(t, date(2026, time.September, 28), dates[3])

	// Разворачивание детерминировано
	assert.Equal(t, dates, rule.OccurrenceDates())
}

func TestRecurrenceRule_OccurrenceDates_Biweekly(t *testing.T) {
	rule := RecurrenceRule{
		Pattern:   PatternBiweekly,
		StartDate: date(2026, time.September, 7),
		EndDate:   date(2026, time.September, 28),
	}

	dates := rule.OccurrenceDates()
	require.Len(t, dates, 2)
	assert.Equal(t, date(2026, time.September, 7), dates[0])
	assert.Equal(t, date(2026, time.September, 21), dates[1])
}

func TestRecurrenceRule_OccurrenceDates_MonthlyClamping(t *testing.T) {
	// 31-е число клэмпится к последнему дню короткого месяца
	rule := RecurrenceRule{
		Pattern:   PatternMonthly,
		StartDate: date(2026, time.January, 31),
		EndDate:   date(2026, time.April, 30),
	}

	dates := rule.OccurrenceDates()
	require.Len(t, dates, 4)
	assert.Equal(t, date(2026, time.January, 31), dates[0])
	assert.Equal(t, date(2026, time.February, 28), dates[1])
	assert.Equal(t, date(2026, time.March, 31), dates[2])
	assert.Equal(t, date(2026, time.April, 30), dates[3])
}

func TestRecurrenceRule_OccurrenceDates_MonthlyLeapYear(t *testing.T) {
	rule := RecurrenceRule{
		Pattern:   PatternMonthly,
		StartDate: date(2028, time.January, 31),
		EndDate:   date(2028, time.February, 29),
	}

	dates := rule.OccurrenceDates()
	require.Len(t, dates, 2)
	assert.Equal(t, date(2028, time.February, 29), dates[1])
}

func TestRecurrenceRule_OccurrenceDates_EndBoundaryInclusive(t *testing.T) {
	rule := RecurrenceRule{
		Pattern:   PatternWeekly,
		StartDate: date(2026, time.September, 7),
		EndDate:   date(2026, time.September, 7),
	}

	dates := rule.OccurrenceDates()
	require.Len(t, dates, 1)
	assert.Equal(t, date(2026, time.September, 7), dates[0])
}

func TestBooking_Overlaps(t *testing.T) {
	booking := Booking{
		StartTime:       "10:00",
		DurationMinutes: 60,
		Status:          StatusConfirmed,
	}

	// Пересечение
	assert.True(t, booking.Overlaps("10:30", "11:30"))
	assert.True(t, booking.Overlaps("09:30", "10:30"))
	assert.True(t, booking.Overlaps("10:00", "11:00"))

	// Граничащие интервалы не конфликтуют (полуоткрытая семантика)
	assert.False(t, booking.Overlaps("11:00", "12:00"))
	assert.False(t, booking.Overlaps("09:00", "10:00"))
}

func TestWorkingInterval_Contains(t *testing.T) {
	interval := WorkingInterval{Start: "09:00", End: "18:00"}

	assert.True(t, interval.Contains("09:00", "10:00"))
	// Слот, заканчивающийся ровно в закрытие, валиден
	assert.True(t, interval.Contains("17:00", "18:00"))
	assert.False(t, interval.Contains("17:30", "18:30"))
	assert.False(t, interval.Contains("08:30", "09:30"))
}
