package enrich

import (
	"sort"

	"dataprof/domain/calendar"
	"dataprof/domain/dataset"
)

// Engineered column names appended to every profiled table.
const (
	DayOfWeekColumn = "day_of_week"
	IsHolidayColumn = "is_holiday"
	IsWeekendColumn = "is_weekend"
)

// EngineeredColumns lists the derived columns in the order they are added.
func EngineeredColumns() []string {
	return []string{DayOfWeekColumn, IsHolidayColumn, IsWeekendColumn}
}

// DistinctYears collects the sorted distinct years of the non-missing
// timestamps in a column.
func DistinctYears(col *dataset.Column) []int {
	seen := make(map[int]struct{})
	for _, v := range col.Values {
		if v.IsTimestamp() {
			seen[v.AsTime().Year()] = struct{}{}
		}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

// DeriveCalendarFeatures appends day_of_week, is_holiday and is_weekend
// columns derived from the date column.
//
// Semantics per row:
//   - day_of_week: English day name; missing when the date is missing.
//   - is_holiday: calendar lookup; false when the year is covered but the
//     date is not a holiday; missing when the date is missing.
//   - is_weekend: Saturday or Sunday; false (not missing) when the date is
//     missing.
func DeriveCalendarFeatures(table *dataset.Table, dateColumn string, cal calendar.Calendar) {
	col := table.Column(dateColumn)
	if col == nil {
		return
	}

	rows := len(col.Values)
	dayOfWeek := make([]dataset.Value, rows)
	isHoliday := make([]dataset.Value, rows)
	isWeekend := make([]dataset.Value, rows)

	for i, v := range col.Values {
		if !v.IsTimestamp() {
			dayOfWeek[i] = dataset.NewMissingValue()
			isHoliday[i] = dataset.NewMissingValue()
			isWeekend[i] = dataset.NewBooleanValue(false)
			continue
		}
		t := v.AsTime()
		d := calendar.DateOf(t)
		dayOfWeek[i] = dataset.NewStringValue(t.Weekday().String())
		isHoliday[i] = dataset.NewBooleanValue(cal.IsHoliday(d))
		isWeekend[i] = dataset.NewBooleanValue(d.Weekday() >= calendar.Saturday)
	}

	table.AddColumn(dataset.Column{Name: DayOfWeekColumn, Kind: dataset.KindCategorical, Values: dayOfWeek})
	table.AddColumn(dataset.Column{Name: IsHolidayColumn, Kind: dataset.KindCategorical, Values: isHoliday})
	table.AddColumn(dataset.Column{Name: IsWeekendColumn, Kind: dataset.KindCategorical, Values: isWeekend})
}
