package domain

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidDate is returned when a date string cannot be parsed or a
// zero date is supplied where a calendar date is required
var ErrInvalidDate = errors.New("domain: invalid date")

// NormalizeDate truncates t to midnight UTC. Every calendar date in the
// system goes through this before being stored or compared, so that
// interval comparisons cannot be skewed by time-of-day or timezone.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a UTC-midnight date
func ParseDate(s string) (time.Time, error) {
	parsed, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NormalizeDate(parsed), nil
}

// DaysBetween returns the number of days from start to end, both taken
// at UTC midnight. A dropoff the day after the pickup counts as one day.
func DaysBetween(start, end time.Time) int {
	return int(NormalizeDate(end).Sub(NormalizeDate(start)).Hours() / 24)
}

// IsSameDay reports whether two instants fall on the same calendar day
func IsSameDay(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// HasStarted reports whether date is today or earlier relative to now
func HasStarted(date, now time.Time) bool {
	return !NormalizeDate(date).After(NormalizeDate(now))
}
