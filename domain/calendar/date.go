package calendar

import (
	"fmt"
	"time"
)

// Date is a (year, month, day) triple on the proleptic Gregorian calendar.
// It is an immutable value type and is usable as a map key.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate creates a Date. Out-of-range components are normalized the way
// time.Date normalizes them (Jan 32 becomes Feb 1).
func NewDate(year int, month time.Month, day int) Date {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// Time returns the date at midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Weekday returns the weekday with Monday=0 through Sunday=6.
func (d Date) Weekday() int {
	return (int(d.Time().Weekday()) + 6) % 7
}

// AddDays returns the date n days later, rolling over month and year
// boundaries as needed. Negative n steps backward.
func (d Date) AddDays(n int) Date {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// Before reports whether d is earlier than other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String returns the ISO 8601 form, e.g. "2024-01-15".
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// DaysInMonth returns the number of calendar days in the given month,
// accounting for leap years.
func DaysInMonth(year int, month time.Month) int {
	// Day 0 of the next month is the last day of this one. time.Date
	// normalizes month 13 into January of the following year, so December
	// needs no special case.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
