package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprof/domain/calendar"
	"dataprof/domain/dataset"
)

func timestampColumn(name string, dates ...string) dataset.Column {
	values := make([]dataset.Value, len(dates))
	for i, d := range dates {
		if d == "" {
			values[i] = dataset.NewMissingValue()
			continue
		}
		t, err := time.Parse("2006-01-02", d)
		if err != nil {
			panic(err)
		}
		values[i] = dataset.NewTimestampValue(t)
	}
	return dataset.Column{Name: name, Kind: dataset.KindTimestamp, Values: values}
}

func TestDistinctYears(t *testing.T) {
	col := timestampColumn("visit_date", "2024-01-15", "2022-06-01", "", "2024-12-31")
	assert.Equal(t, []int{2022, 2024}, DistinctYears(&col))

	empty := timestampColumn("visit_date", "", "")
	assert.Empty(t, DistinctYears(&empty))
}

func TestDeriveCalendarFeatures(t *testing.T) {
	table := dataset.NewTable()
	// 2024-01-15 is MLK Day (a Monday), 2024-01-20 a Saturday, then a gap.
	table.AddColumn(timestampColumn("visit_date", "2024-01-15", "2024-01-20", ""))

	cal := calendar.Build([]int{2024})
	DeriveCalendarFeatures(table, "visit_date", cal)

	require.Equal(t, []string{"visit_date", DayOfWeekColumn, IsHolidayColumn, IsWeekendColumn}, table.ColumnNames())

	dow := table.Column(DayOfWeekColumn)
	require.Equal(t, dataset.KindCategorical, dow.Kind)
	assert.Equal(t, "Monday", dow.Values[0].Display())
	assert.Equal(t, "Saturday", dow.Values[1].Display())
	assert.True(t, dow.Values[2].IsMissing)

	holiday := table.Column(IsHolidayColumn)
	assert.Equal(t, "true", holiday.Values[0].Display())
	assert.Equal(t, "false", holiday.Values[1].Display())
	assert.True(t, holiday.Values[2].IsMissing)

	// is_weekend stays false on a missing date rather than going missing.
	weekend := table.Column(IsWeekendColumn)
	assert.Equal(t, "false", weekend.Values[0].Display())
	assert.Equal(t, "true", weekend.Values[1].Display())
	assert.False(t, weekend.Values[2].IsMissing)
	assert.Equal(t, "false", weekend.Values[2].Display())
}

func TestDeriveCalendarFeaturesMissingDateColumn(t *testing.T) {
	table := dataset.NewTable()
	table.AddColumn(dataset.Column{Name: "visits", Kind: dataset.KindNumeric})

	DeriveCalendarFeatures(table, "visit_date", calendar.Build(nil))
	assert.Equal(t, []string{"visits"}, table.ColumnNames())
}

func TestEngineeredColumnsOrder(t *testing.T) {
	assert.Equal(t, []string{"day_of_week", "is_holiday", "is_weekend"}, EngineeredColumns())
}
