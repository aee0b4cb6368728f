package csvfile

import (
	"encoding/csv"
	"math"
	"os"
	"strconv"

	"dataprof/domain/dataset"
	"dataprof/domain/profile"
	"dataprof/internal/errors"
)

// WriteEnriched writes the full table, engineered columns included, back to
// CSV. Missing values become empty cells.
func WriteEnriched(path string, table *dataset.Table) error {
	records := make([][]string, 0, table.RowCount()+1)
	records = append(records, table.ColumnNames())

	cols := table.Columns()
	for i := 0; i < table.RowCount(); i++ {
		row := make([]string, len(cols))
		for j := range cols {
			row[j] = cols[j].Values[i].Display()
		}
		records = append(records, row)
	}

	return writeRecords(path, records)
}

// WriteMissingness writes the missingness summary CSV.
func WriteMissingness(path string, entries []profile.MissingnessEntry) error {
	records := [][]string{{"column", "missing_count", "missing_pct"}}
	for _, e := range entries {
		records = append(records, []string{
			e.Column,
			strconv.Itoa(e.MissingCount),
			formatFloat(e.MissingPct),
		})
	}
	return writeRecords(path, records)
}

// WriteNumericSummaries writes the numeric summary CSV with IQR fences.
// Undefined statistics (NaN) become empty cells.
func WriteNumericSummaries(path string, summaries []profile.NumericSummary) error {
	records := [][]string{{
		"variable", "count", "mean", "std", "min", "q1", "median", "q3",
		"max", "iqr", "lower_fence", "upper_fence", "outlier_pct",
	}}
	for _, s := range summaries {
		records = append(records, []string{
			s.Variable,
			strconv.Itoa(s.Count),
			formatFloat(s.Mean),
			formatFloat(s.Std),
			formatFloat(s.Min),
			formatFloat(s.Q1),
			formatFloat(s.Median),
			formatFloat(s.Q3),
			formatFloat(s.Max),
			formatFloat(s.IQR),
			formatFloat(s.LowerFence),
			formatFloat(s.UpperFence),
			formatFloat(s.OutlierPct),
		})
	}
	return writeRecords(path, records)
}

// WriteFrequencyTable writes one categorical frequency CSV. The first
// header field carries the column's own name.
func WriteFrequencyTable(path string, table profile.FrequencyTable) error {
	records := [][]string{{table.Column, "count", "pct"}}
	for _, e := range table.Entries {
		records = append(records, []string{
			e.Label,
			strconv.Itoa(e.Count),
			formatFloat(e.Pct),
		})
	}
	return writeRecords(path, records)
}

func writeRecords(path string, records [][]string) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.ExportFailed(path, err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	if err := w.WriteAll(records); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

// formatFloat renders a float at full precision, with NaN as an empty cell.
func formatFloat(x float64) string {
	if math.IsNaN(x) {
		return ""
	}
	return strconv.FormatFloat(x, 'g', -1, 64)
}
