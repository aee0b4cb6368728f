package analysis

import (
	"dataprof/domain/dataset"
	"dataprof/domain/profile"
)

// Missingness tabulates missing counts and percentages per column, in
// column order, engineered columns included.
func Missingness(table *dataset.Table) []profile.MissingnessEntry {
	total := table.RowCount()
	entries := make([]profile.MissingnessEntry, 0, table.ColumnCount())
	for _, col := range table.Columns() {
		missing := col.MissingCount()
		pct := 0.0
		if total > 0 {
			pct = round2(float64(missing) / float64(total) * 100)
		}
		entries = append(entries, profile.MissingnessEntry{
			Column:       col.Name,
			MissingCount: missing,
			MissingPct:   pct,
		})
	}
	return entries
}
