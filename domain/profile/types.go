package profile

import (
	"time"

	"dataprof/domain/core"
	"dataprof/domain/dataset"
)

// ColumnType pairs a variable with its inferred kind for the types table.
type ColumnType struct {
	Variable string
	Kind     dataset.ColumnKind
}

// MissingnessEntry summarizes the gaps in one column. MissingPct is a
// percentage of all rows, rounded to two decimals.
type MissingnessEntry struct {
	Column       string
	MissingCount int
	MissingPct   float64
}

// NumericSummary holds the fence summary of one numeric column. Statistics
// that are undefined (empty column, or sample std of a single value) are
// NaN; exporters render them as empty cells.
//
// OutlierPct is the share of ALL rows, missing included, whose value lies
// strictly outside the Tukey fences. Missing rows can never be outliers but
// stay in the denominator; that reporting choice is intentional.
type NumericSummary struct {
	Variable   string
	Count      int
	Mean       float64
	Std        float64
	Min        float64
	Q1         float64
	Median     float64
	Q3         float64
	Max        float64
	IQR        float64
	LowerFence float64
	UpperFence float64
	OutlierPct float64
}

// FrequencyEntry is one distinct value of a categorical column.
type FrequencyEntry struct {
	Label string
	Count int
	Pct   float64
}

// FrequencyTable lists the distinct values of a categorical column ordered
// by count descending (label ascending on ties). Missing values form their
// own category labeled "<NA>".
type FrequencyTable struct {
	Column  string
	Entries []FrequencyEntry
}

// DistributionShape describes the distribution of a numeric column beyond
// the fence summary: skewness, kurtosis and an approximate normality test.
type DistributionShape struct {
	Variable string
	Skewness float64
	Kurtosis float64
	ShapiroP float64
	IsNormal bool
}

// FileEntry records one expected output file and whether it exists on disk
// after the run.
type FileEntry struct {
	Path    string
	Created bool
}

// Manifest captures the identity and outcome of a single profiling run.
type Manifest struct {
	RunID       core.RunID
	SourceFile  string
	RowCount    int
	ColumnCount int
	StartedAt   time.Time
	Duration    time.Duration
	Files       []FileEntry
}

// RunRecord is the stored form of a past run, as listed by the history
// command.
type RunRecord struct {
	RunID       string    `db:"run_id"`
	SourceFile  string    `db:"source_file"`
	RowCount    int       `db:"row_count"`
	ColumnCount int       `db:"column_count"`
	DurationMs  int64     `db:"duration_ms"`
	CreatedAt   time.Time `db:"created_at"`
}

// Report is the complete result of profiling one dataset.
type Report struct {
	Types       []ColumnType
	Missingness []MissingnessEntry
	Numeric     []NumericSummary
	Frequencies []FrequencyTable
	Shapes      []DistributionShape
	Manifest    Manifest
}
