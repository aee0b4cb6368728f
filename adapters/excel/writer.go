package excel

import (
	"math"

	"github.com/xuri/excelize/v2"

	"dataprof/domain/profile"
	"dataprof/internal/errors"
)

// WorkbookWriter exports the whole profile report as a single XLSX
// workbook: one sheet each for types, missingness and numeric summaries,
// plus one sheet per categorical frequency table.
type WorkbookWriter struct{}

// NewWorkbookWriter creates a workbook writer.
func NewWorkbookWriter() *WorkbookWriter {
	return &WorkbookWriter{}
}

// Write builds and saves the workbook.
func (w *WorkbookWriter) Write(path string, report *profile.Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Types"); err != nil {
		return errors.ExportFailed(path, err)
	}
	if err := w.writeTypes(f, report.Types); err != nil {
		return errors.ExportFailed(path, err)
	}
	if err := w.writeMissingness(f, report.Missingness); err != nil {
		return errors.ExportFailed(path, err)
	}
	if err := w.writeNumeric(f, report.Numeric); err != nil {
		return errors.ExportFailed(path, err)
	}
	if err := w.writeFrequencies(f, report.Frequencies); err != nil {
		return errors.ExportFailed(path, err)
	}

	if err := f.SaveAs(path); err != nil {
		return errors.ExportFailed(path, err)
	}
	return nil
}

func (w *WorkbookWriter) writeTypes(f *excelize.File, types []profile.ColumnType) error {
	rows := [][]interface{}{{"variable", "kind"}}
	for _, t := range types {
		rows = append(rows, []interface{}{t.Variable, string(t.Kind)})
	}
	return writeSheet(f, "Types", rows, false)
}

func (w *WorkbookWriter) writeMissingness(f *excelize.File, entries []profile.MissingnessEntry) error {
	rows := [][]interface{}{{"column", "missing_count", "missing_pct"}}
	for _, e := range entries {
		rows = append(rows, []interface{}{e.Column, e.MissingCount, e.MissingPct})
	}
	return writeSheet(f, "Missingness", rows, true)
}

func (w *WorkbookWriter) writeNumeric(f *excelize.File, summaries []profile.NumericSummary) error {
	rows := [][]interface{}{{
		"variable", "count", "mean", "std", "min", "q1", "median", "q3",
		"max", "iqr", "lower_fence", "upper_fence", "outlier_pct",
	}}
	for _, s := range summaries {
		rows = append(rows, []interface{}{
			s.Variable, s.Count, cell(s.Mean), cell(s.Std), cell(s.Min),
			cell(s.Q1), cell(s.Median), cell(s.Q3), cell(s.Max), cell(s.IQR),
			cell(s.LowerFence), cell(s.UpperFence), cell(s.OutlierPct),
		})
	}
	return writeSheet(f, "Numeric", rows, true)
}

func (w *WorkbookWriter) writeFrequencies(f *excelize.File, tables []profile.FrequencyTable) error {
	for _, ft := range tables {
		rows := [][]interface{}{{ft.Column, "count", "pct"}}
		for _, e := range ft.Entries {
			rows = append(rows, []interface{}{e.Label, e.Count, e.Pct})
		}
		// Sheet names cap at 31 characters in the XLSX format.
		name := "freq_" + ft.Column
		if len(name) > 31 {
			name = name[:31]
		}
		if err := writeSheet(f, name, rows, true); err != nil {
			return err
		}
	}
	return nil
}

func writeSheet(f *excelize.File, name string, rows [][]interface{}, create bool) error {
	if create {
		if _, err := f.NewSheet(name); err != nil {
			return err
		}
	}
	for r, row := range rows {
		for c, value := range row {
			cellName, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(name, cellName, value); err != nil {
				return err
			}
		}
	}
	return nil
}

// cell maps undefined statistics to empty cells.
func cell(x float64) interface{} {
	if math.IsNaN(x) {
		return ""
	}
	return x
}
