package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekdayMondayBasedConvention(t *testing.T) {
	tests := []struct {
		name     string
		date     Date
		expected int
	}{
		{"monday", NewDate(2024, time.January, 15), Monday},
		{"friday", NewDate(2024, time.January, 19), Friday},
		{"saturday", NewDate(2024, time.January, 20), Saturday},
		{"sunday", NewDate(2024, time.January, 21), Sunday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.date.Weekday())
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		name     string
		year     int
		month    time.Month
		expected int
	}{
		{"leap february", 2024, time.February, 29},
		{"non-leap february", 2023, time.February, 28},
		{"century non-leap", 1900, time.February, 28},
		{"quadricentennial leap", 2000, time.February, 29},
		{"december", 2024, time.December, 31},
		{"april", 2024, time.April, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DaysInMonth(tt.year, tt.month))
		})
	}
}

func TestNewDateNormalizesOverflow(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.February, 1), NewDate(2024, time.January, 32))
	assert.Equal(t, NewDate(2025, time.January, 1), NewDate(2024, time.December, 32))
}

func TestAddDaysRollsOverBoundaries(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.March, 1), NewDate(2024, time.February, 29).AddDays(1))
	assert.Equal(t, NewDate(2023, time.December, 31), NewDate(2024, time.January, 1).AddDays(-1))
}

func TestDateOfTruncatesClock(t *testing.T) {
	ts := time.Date(2024, time.July, 4, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, NewDate(2024, time.July, 4), DateOf(ts))
}

func TestStringIsISO8601(t *testing.T) {
	assert.Equal(t, "2024-01-05", NewDate(2024, time.January, 5).String())
	assert.Equal(t, "0001-12-25", NewDate(1, time.December, 25).String())
}

func TestBefore(t *testing.T) {
	assert.True(t, NewDate(2023, time.December, 31).Before(NewDate(2024, time.January, 1)))
	assert.True(t, NewDate(2024, time.January, 1).Before(NewDate(2024, time.February, 1)))
	assert.False(t, NewDate(2024, time.January, 1).Before(NewDate(2024, time.January, 1)))
}
