package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "09:00", want: "09:00"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing minutes", input: "09", wantErr: true},
		{name: "out of range hour", input: "25:00", wantErr: true},
		{name: "out of range minutes", input: "09:61", wantErr: true},
		{name: "garbage", input: "morning", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_AddMinutes(t *testing.T) {
	start := TimeString("10:00")

	end, err := start.AddMinutes(90)
	require.NoError(t, err)
	assert.Equal(t, TimeString("11:30"), end)

	// Ровно конец суток - валидное значение
	end, err = TimeString("23:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, TimeString("24:00"), end)

	// За пределами суток
	_, err = TimeString("23:30").AddMinutes(60)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOutOfRange)

	// Отрицательный сдвиг в пределах суток
	end, err = start.AddMinutes(-30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:30"), end)
}

func TestTimeString_Comparison(t *testing.T) {
	assert.True(t, TimeString("09:00").IsBefore("10:00"))
	assert.True(t, TimeString("10:00").IsAfter("09:59"))
	assert.False(t, TimeString("10:00").IsBefore("10:00"))
	assert.False(t, TimeString("10:00").IsAfter("10:00"))

	// Лексикографическое сравнение корректно для HH:MM с ведущими нулями
	assert.True(t, TimeString("02:00").IsBefore("10:00"))
	assert.True(t, TimeString("24:00").IsAfter("23:59"))
}

func TestTimeString_Minutes(t *testing.T) {
	minutes, err := TimeString("01:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 90, minutes)

	_, err = TimeString("bad").Minutes()
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	// Postgres TIME приходит как "HH:MM:SS"
	require.NoError(t, ts.Scan("10:30:00"))
	assert.Equal(t, TimeString("10:30"), ts)

	require.NoError(t, ts.Scan([]byte("18:00:00")))
	assert.Equal(t, TimeString("18:00"), ts)

	require.NoError(t, ts.Scan(time.Date(2026, 3, 10, 14, 15, 0, 0, time.UTC)))
	assert.Equal(t, TimeString("14:15"), ts)

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_Value(t *testing.T) {
	v, err := TimeString("10:00").Value()
	require.NoError(t, err)
	assert.Equal(t, "10:00", v)

	v, err = TimeString("").Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = TimeString("bad").Value()
	assert.Error(t, err)
}
