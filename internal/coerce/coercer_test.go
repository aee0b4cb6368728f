package coerce

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprof/domain/dataset"
	"dataprof/internal/config"
)

func testCoercer() *Coercer {
	return New(config.CoercionConfig{
		MissingTokens: []string{"", "na", "n/a", "nan", "null"},
		DateFormats:   []string{"2006-01-02", "01/02/2006"},
	})
}

func TestIsMissingToken(t *testing.T) {
	c := testCoercer()

	missing := []string{"", "  ", "NA", "na", " n/a ", "NaN", "NULL"}
	for _, tok := range missing {
		assert.True(t, c.IsMissingToken(tok), "%q should be missing", tok)
	}

	present := []string{"0", "none", "-", "n.a."}
	for _, tok := range present {
		assert.False(t, c.IsMissingToken(tok), "%q should not be missing", tok)
	}
}

func TestParseNumeric(t *testing.T) {
	c := testCoercer()

	tests := []struct {
		raw      string
		expected float64
		ok       bool
	}{
		{"3.5", 3.5, true},
		{" 7 ", 7, true},
		{"-0.25", -0.25, true},
		{"1e3", 1000, true},
		{"abc", 0, false},
		{"3.5kg", 0, false},
		{"Inf", 0, false},
		{"-Inf", 0, false},
		{"NaN", 0, false},
	}
	for _, tt := range tests {
		val, ok := c.ParseNumeric(tt.raw)
		assert.Equal(t, tt.ok, ok, "ParseNumeric(%q)", tt.raw)
		if tt.ok {
			assert.Equal(t, tt.expected, val, "ParseNumeric(%q)", tt.raw)
		}
	}
}

func TestParseDateTriesFormatsInOrder(t *testing.T) {
	c := testCoercer()

	parsed, ok := c.ParseDate("2024-01-15")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), parsed)

	parsed, ok = c.ParseDate("01/02/2024")
	require.True(t, ok)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), parsed)

	_, ok = c.ParseDate("15 Jan 2024")
	assert.False(t, ok)
}

func TestResolveTableColumnKinds(t *testing.T) {
	raw := &dataset.RawTable{
		Headers: []string{"visit_date", "visits", "clinic", "empty"},
		Rows: [][]string{
			{"2024-01-15", "12", "north", "na"},
			{"not-a-date", "7", "south", ""},
			{"2024-01-17", "NA", "north", "null"},
		},
	}

	table := testCoercer().ResolveTable(raw, "visit_date")
	require.Equal(t, 4, table.ColumnCount())
	require.Equal(t, 3, table.RowCount())

	dates := table.Column("visit_date")
	require.Equal(t, dataset.KindTimestamp, dates.Kind)
	assert.True(t, dates.Values[0].IsTimestamp())
	assert.True(t, dates.Values[1].IsMissing, "unparseable date degrades to missing")
	assert.True(t, dates.Values[2].IsTimestamp())

	visits := table.Column("visits")
	require.Equal(t, dataset.KindNumeric, visits.Kind)
	assert.Equal(t, []float64{12, 7}, visits.NonMissingFloats())
	assert.True(t, visits.Values[2].IsMissing)

	clinic := table.Column("clinic")
	require.Equal(t, dataset.KindCategorical, clinic.Kind)
	assert.Equal(t, "north", clinic.Values[0].Display())

	// A column with no non-missing cells is vacuously numeric, like an
	// all-gap float column.
	empty := table.Column("empty")
	require.Equal(t, dataset.KindNumeric, empty.Kind)
	assert.Equal(t, 3, empty.MissingCount())
}

func TestResolveTableOneNonNumericCellMakesColumnCategorical(t *testing.T) {
	raw := &dataset.RawTable{
		Headers: []string{"d", "mixed"},
		Rows: [][]string{
			{"2024-01-01", "1"},
			{"2024-01-02", "2"},
			{"2024-01-03", "two"},
		},
	}

	table := testCoercer().ResolveTable(raw, "d")
	mixed := table.Column("mixed")
	require.Equal(t, dataset.KindCategorical, mixed.Kind)
	assert.Equal(t, "1", mixed.Values[0].Display())
	assert.Equal(t, "two", mixed.Values[2].Display())
}

func TestResolveTablePadsShortRows(t *testing.T) {
	raw := &dataset.RawTable{
		Headers: []string{"d", "visits"},
		Rows: [][]string{
			{"2024-01-01", "3"},
			{"2024-01-02"},
		},
	}

	table := testCoercer().ResolveTable(raw, "d")
	visits := table.Column("visits")
	require.Len(t, visits.Values, 2)
	assert.True(t, visits.Values[1].IsMissing)
}
