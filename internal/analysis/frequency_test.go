package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataprof/domain/dataset"
	"dataprof/domain/profile"
)

func categoricalColumn(name string, labels ...string) dataset.Column {
	values := make([]dataset.Value, len(labels))
	for i, label := range labels {
		if label == "" {
			values[i] = dataset.NewMissingValue()
		} else {
			values[i] = dataset.NewStringValue(label)
		}
	}
	return dataset.Column{Name: name, Kind: dataset.KindCategorical, Values: values}
}

func TestTabulateCountsAndOrdering(t *testing.T) {
	col := categoricalColumn("clinic", "b", "a", "a", "b", "c", "")
	ft := Tabulate(&col, 6)

	require.Equal(t, "clinic", ft.Column)
	require.Len(t, ft.Entries, 4)

	// Count descending, label ascending on ties. "<NA>" sorts before "c".
	expected := []profile.FrequencyEntry{
		{Label: "a", Count: 2, Pct: 33.33},
		{Label: "b", Count: 2, Pct: 33.33},
		{Label: MissingLabel, Count: 1, Pct: 16.67},
		{Label: "c", Count: 1, Pct: 16.67},
	}
	assert.Equal(t, expected, ft.Entries)
}

func TestTabulateMissingIsItsOwnBucket(t *testing.T) {
	col := categoricalColumn("clinic", "", "", "", "north")
	ft := Tabulate(&col, 4)

	require.Len(t, ft.Entries, 2)
	assert.Equal(t, MissingLabel, ft.Entries[0].Label)
	assert.Equal(t, 3, ft.Entries[0].Count)
	assert.Equal(t, 75.0, ft.Entries[0].Pct)
}

func TestTabulateBooleanColumnUsesDisplayLabels(t *testing.T) {
	values := []dataset.Value{
		dataset.NewBooleanValue(false),
		dataset.NewBooleanValue(false),
		dataset.NewBooleanValue(true),
	}
	col := dataset.Column{Name: "is_weekend", Kind: dataset.KindCategorical, Values: values}
	ft := Tabulate(&col, 3)

	require.Len(t, ft.Entries, 2)
	assert.Equal(t, "false", ft.Entries[0].Label)
	assert.Equal(t, 2, ft.Entries[0].Count)
	assert.Equal(t, "true", ft.Entries[1].Label)
}

func TestMissingnessPerColumn(t *testing.T) {
	table := dataset.NewTable()
	table.AddColumn(categoricalColumn("clinic", "a", "", "b"))
	table.AddColumn(dataset.Column{Name: "visits", Kind: dataset.KindNumeric, Values: numericValues(1, 2, 3)})

	entries := Missingness(table)
	require.Len(t, entries, 2)

	assert.Equal(t, profile.MissingnessEntry{Column: "clinic", MissingCount: 1, MissingPct: 33.33}, entries[0])
	assert.Equal(t, profile.MissingnessEntry{Column: "visits", MissingCount: 0, MissingPct: 0}, entries[1])
}

func TestMissingnessEmptyTable(t *testing.T) {
	assert.Empty(t, Missingness(dataset.NewTable()))
}
