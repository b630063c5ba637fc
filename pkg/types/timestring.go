package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// TimeString represents a time of day in "HH:MM" format.
// Used for booking start times and working hours boundaries, where only
// the time-of-day within the business day matters.
type TimeString string

const layout = "15:04"

var (
	// ErrInvalidFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidFormat = errors.New("types: invalid time string format, expected HH:MM")

	// ErrOutOfRange возвращается, когда результат операции выходит за пределы суток
	ErrOutOfRange = errors.New("types: time is out of day range")
)

// NewTimeString creates a TimeString from a time.Time, keeping only HH:MM.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(layout))
}

// NewTimeStringFromString parses and validates an "HH:MM" string.
func NewTimeStringFromString(s string) (TimeString, error) {
	t, err := time.Parse(layout, s)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
	return NewTimeString(t), nil
}

// Validate checks that the value is a well-formed HH:MM string.
func (t TimeString) Validate() error {
	if _, err := time.Parse(layout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return nil
}

// IsZero returns true for an empty value.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the HH:MM representation.
func (t TimeString) String() string {
	return string(t)
}

// Minutes returns the number of minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(layout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes returns the time shifted forward by the given number of minutes.
// A result of exactly 24:00 is represented as "24:00" so that interval end
// comparisons against closing time keep working; anything past that is an error.
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := current + minutes
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s + %d minutes", ErrOutOfRange, t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly before other.
// Zero-padded HH:MM strings order correctly lexicographically, so no parsing
// is needed for already-validated values.
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter reports whether t is strictly after other.
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Scan implements sql.Scanner. Postgres TIME columns arrive as
// "HH:MM:SS" strings (or time.Time from some drivers); both are normalized
// to HH:MM.
func (t *TimeString) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("types: cannot scan %T into TimeString", value)
	}
}

func (t *TimeString) scanString(s string) error {
	for _, l := range []string{"15:04:05", layout} {
		if parsed, err := time.Parse(l, s); err == nil {
			*t = NewTimeString(parsed)
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidFormat, s)
}

// Value implements driver.Valuer.
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return string(t), nil
}
