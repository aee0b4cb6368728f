package dataset

import (
	"strings"
)

// RawTable is the rectangular string form of an input file: a header row
// plus zero or more data rows, before any coercion.
type RawTable struct {
	Headers []string
	Rows    [][]string
}

// ColumnKind classifies a column for profiling purposes.
type ColumnKind string

const (
	// KindNumeric columns feed the fence summarizer.
	KindNumeric ColumnKind = "numeric"
	// KindTimestamp marks the parsed date column.
	KindTimestamp ColumnKind = "timestamp"
	// KindCategorical columns feed the frequency tabulator. The date column
	// and engineered columns are also tabulated as categorical.
	KindCategorical ColumnKind = "categorical"
)

// Column is a named, typed sequence of values.
type Column struct {
	Name   string
	Kind   ColumnKind
	Values []Value
}

// NonMissingFloats returns the non-missing numeric values in order.
func (c *Column) NonMissingFloats() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if v.IsNumeric() {
			out = append(out, *v.NumericVal)
		}
	}
	return out
}

// MissingCount returns the number of missing values.
func (c *Column) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing {
			n++
		}
	}
	return n
}

// Table is an in-memory rectangular dataset. Column order is preserved from
// the source file; engineered columns are appended at the end.
type Table struct {
	columns []Column
	index   map[string]int
}

// NewTable creates an empty table.
func NewTable() *Table {
	return &Table{index: make(map[string]int)}
}

// AddColumn appends a column. A column with a duplicate name replaces the
// existing one in place, keeping its original position.
func (t *Table) AddColumn(c Column) {
	if i, ok := t.index[c.Name]; ok {
		t.columns[i] = c
		return
	}
	t.index[c.Name] = len(t.columns)
	t.columns = append(t.columns, c)
}

// Column returns the named column, or nil when absent.
func (t *Table) Column(name string) *Column {
	if i, ok := t.index[name]; ok {
		return &t.columns[i]
	}
	return nil
}

// Columns returns all columns in order.
func (t *Table) Columns() []Column {
	return t.columns
}

// ColumnNames returns the column names in order.
func (t *Table) ColumnNames() []string {
	names := make([]string, len(t.columns))
	for i, c := range t.columns {
		names[i] = c.Name
	}
	return names
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	if len(t.columns) == 0 {
		return 0
	}
	return len(t.columns[0].Values)
}

// ColumnCount returns the number of columns.
func (t *Table) ColumnCount() int {
	return len(t.columns)
}

// NormalizeHeader canonicalizes a column name: trimmed, lower-cased, with
// spaces replaced by underscores.
func NormalizeHeader(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "_")
}

// DetectDateColumn picks the date column from normalized headers: the first
// name containing the substring "date", falling back to the first column.
func DetectDateColumn(headers []string) string {
	for _, h := range headers {
		if strings.Contains(h, "date") {
			return h
		}
	}
	if len(headers) > 0 {
		return headers[0]
	}
	return ""
}
