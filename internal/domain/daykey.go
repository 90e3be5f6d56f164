package domain

import (
	"errors"
	"time"
)

// dayKeyLayout is the canonical calendar-day format for DayKey values.
const dayKeyLayout = "2006-01-02"

// ErrInvalidDayKey is returned when a day key is not a valid calendar date.
var ErrInvalidDayKey = errors.New("invalid day key")

// DayKey identifies a calendar day in the application's fixed reference
// timezone. It is the grouping unit for daily activity and streaks. The
// zero value ("") means "no day", e.g. a profile that has never been active.
type DayKey string

// NewDayKey derives the day key for the given instant in the given timezone.
func NewDayKey(t time.Time, loc *time.Location) DayKey {
	return DayKey(t.In(loc).Format(dayKeyLayout))
}

// ParseDayKey validates and returns the given string as a DayKey.
func ParseDayKey(s string) (DayKey, error) {
	if _, err := time.Parse(dayKeyLayout, s); err != nil {
		return "", ErrInvalidDayKey
	}
	return DayKey(s), nil
}

// Valid reports whether the key is a well-formed calendar date.
func (k DayKey) Valid() bool {
	_, err := time.Parse(dayKeyLayout, string(k))
	return err == nil
}

// Prev returns the key for the preceding calendar day. Date arithmetic is
// done on the parsed date in UTC, so DST transitions and leap years cannot
// skew the result. Returns the zero DayKey if k is malformed.
func (k DayKey) Prev() DayKey {
	t, err := time.Parse(dayKeyLayout, string(k))
	if err != nil {
		return ""
	}
	return DayKey(t.AddDate(0, 0, -1).Format(dayKeyLayout))
}

// Next returns the key for the following calendar day.
// Returns the zero DayKey if k is malformed.
func (k DayKey) Next() DayKey {
	t, err := time.Parse(dayKeyLayout, string(k))
	if err != nil {
		return ""
	}
	return DayKey(t.AddDate(0, 0, 1).Format(dayKeyLayout))
}

func (k DayKey) String() string {
	return string(k)
}
