package calendar

import "time"

// Weekday constants using the Monday=0 convention shared by Date.Weekday.
const (
	Monday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

// HolidaySet holds the observed holidays of a single year.
type HolidaySet map[Date]struct{}

// Contains reports whether the date is in the set.
func (s HolidaySet) Contains(d Date) bool {
	_, ok := s[d]
	return ok
}

// NthWeekday returns the n-th (1-based) occurrence of the given weekday in
// the month: the first date matching the weekday, advanced by n-1 full
// weeks. The result's day is always in [1+7(n-1), 7n].
func NthWeekday(year int, month time.Month, weekday, n int) Date {
	d := NewDate(year, month, 1)
	for d.Weekday() != weekday {
		d = d.AddDays(1)
	}
	return d.AddDays(7 * (n - 1))
}

// LastWeekday returns the last occurrence of the given weekday in the month.
func LastWeekday(year int, month time.Month, weekday int) Date {
	d := NewDate(year, month, DaysInMonth(year, month))
	for d.Weekday() != weekday {
		d = d.AddDays(-1)
	}
	return d
}

// BuildUSHolidays returns the ten rule-based US holidays of a year.
//
// Fixed-date holidays are never shifted to a nearby weekday when they fall
// on a weekend; this calendar intentionally ignores the federal observance
// convention. The function is total: any year, including implausible ones,
// yields a structurally valid set of exactly ten dates.
func BuildUSHolidays(year int) HolidaySet {
	holidays := []Date{
		NewDate(year, time.January, 1),              // New Year's Day
		NewDate(year, time.July, 4),                 // Independence Day
		NewDate(year, time.November, 11),            // Veterans Day
		NewDate(year, time.December, 25),            // Christmas
		NthWeekday(year, time.January, Monday, 3),   // MLK Day
		NthWeekday(year, time.February, Monday, 3),  // Presidents Day
		LastWeekday(year, time.May, Monday),         // Memorial Day
		NthWeekday(year, time.September, Monday, 1), // Labor Day
		NthWeekday(year, time.October, Monday, 2),   // Indigenous Peoples/Columbus Day
		NthWeekday(year, time.November, Thursday, 4), // Thanksgiving
	}

	set := make(HolidaySet, len(holidays))
	for _, d := range holidays {
		set[d] = struct{}{}
	}
	return set
}

// Calendar memoizes holiday sets by year. It is built once from the distinct
// years observed in a dataset and is read-only afterwards.
type Calendar map[int]HolidaySet

// Build constructs a calendar covering the given years.
func Build(years []int) Calendar {
	cal := make(Calendar, len(years))
	for _, y := range years {
		if _, ok := cal[y]; !ok {
			cal[y] = BuildUSHolidays(y)
		}
	}
	return cal
}

// IsHoliday reports whether the date is a holiday. A date whose year has no
// built set is simply not a holiday; lookup never fails.
func (c Calendar) IsHoliday(d Date) bool {
	set, ok := c[d.Year]
	if !ok {
		return false
	}
	return set.Contains(d)
}
