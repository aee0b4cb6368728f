package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildUSHolidays2024(t *testing.T) {
	holidays := BuildUSHolidays(2024)
	require.Len(t, holidays, 10)

	expected := []Date{
		NewDate(2024, time.January, 1),    // New Year's Day
		NewDate(2024, time.January, 15),   // MLK Day, third Monday
		NewDate(2024, time.February, 19),  // Presidents Day, third Monday
		NewDate(2024, time.May, 27),       // Memorial Day, last Monday
		NewDate(2024, time.July, 4),       // Independence Day
		NewDate(2024, time.September, 2),  // Labor Day, first Monday
		NewDate(2024, time.October, 14),   // Columbus Day, second Monday
		NewDate(2024, time.November, 11),  // Veterans Day
		NewDate(2024, time.November, 28),  // Thanksgiving, fourth Thursday
		NewDate(2024, time.December, 25),  // Christmas
	}
	for _, d := range expected {
		assert.True(t, holidays.Contains(d), "expected %s to be a holiday", d)
	}
}

func TestBuildUSHolidaysTenDistinctDatesEveryYear(t *testing.T) {
	for _, year := range []int{1, 1776, 1900, 1999, 2000, 2023, 2024, 2100} {
		holidays := BuildUSHolidays(year)
		assert.Len(t, holidays, 10, "year %d", year)
		for d := range holidays {
			assert.Equal(t, year, d.Year, "holiday %s leaked out of year %d", d, year)
		}
	}
}

func TestFixedHolidaysAreNotObservanceShifted(t *testing.T) {
	// July 4, 2020 fell on a Saturday; the federal observed day was Friday
	// the 3rd. This calendar keeps the actual date.
	holidays := BuildUSHolidays(2020)
	assert.True(t, holidays.Contains(NewDate(2020, time.July, 4)))
	assert.False(t, holidays.Contains(NewDate(2020, time.July, 3)))

	// Christmas 2021 fell on a Saturday.
	holidays2021 := BuildUSHolidays(2021)
	assert.True(t, holidays2021.Contains(NewDate(2021, time.December, 25)))
	assert.False(t, holidays2021.Contains(NewDate(2021, time.December, 24)))
}

func TestNthWeekdayLandsOnRequestedWeekday(t *testing.T) {
	for year := 2020; year <= 2026; year++ {
		for month := time.January; month <= time.December; month++ {
			for n := 1; n <= 4; n++ {
				d := NthWeekday(year, month, Monday, n)
				assert.Equal(t, Monday, d.Weekday())
				assert.Equal(t, month, d.Month)
				assert.GreaterOrEqual(t, d.Day, 1+7*(n-1))
				assert.LessOrEqual(t, d.Day, 7*n)
			}
		}
	}
}

func TestNthWeekdayConcreteCases(t *testing.T) {
	assert.Equal(t, NewDate(2024, time.November, 28), NthWeekday(2024, time.November, Thursday, 4))
	assert.Equal(t, NewDate(2024, time.September, 2), NthWeekday(2024, time.September, Monday, 1))
	assert.Equal(t, NewDate(2026, time.January, 19), NthWeekday(2026, time.January, Monday, 3))
}

func TestLastWeekdayIsTheLastOccurrence(t *testing.T) {
	for year := 2020; year <= 2026; year++ {
		d := LastWeekday(year, time.May, Monday)
		assert.Equal(t, Monday, d.Weekday())
		assert.Equal(t, time.May, d.Month)
		// One more week would leave the month.
		assert.NotEqual(t, time.May, d.AddDays(7).Month)
	}
	assert.Equal(t, NewDate(2024, time.May, 27), LastWeekday(2024, time.May, Monday))
}

func TestCalendarIsHoliday(t *testing.T) {
	cal := Build([]int{2024})

	assert.True(t, cal.IsHoliday(NewDate(2024, time.January, 15)))
	assert.False(t, cal.IsHoliday(NewDate(2024, time.January, 16)))

	// Years the calendar was not built for are simply not holidays.
	assert.False(t, cal.IsHoliday(NewDate(2023, time.December, 25)))
}

func TestBuildDeduplicatesYears(t *testing.T) {
	cal := Build([]int{2024, 2024, 2023})
	require.Len(t, cal, 2)
	assert.Contains(t, cal, 2023)
	assert.Contains(t, cal, 2024)
}
