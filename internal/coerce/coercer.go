package coerce

import (
	"math"
	"strconv"
	"strings"
	"time"

	"dataprof/domain/dataset"
	"dataprof/internal/config"
)

// Coercer handles deterministic string-to-value coercion and column type
// resolution. Coercion is strict on purpose: a column is only numeric when
// every non-missing cell parses as a number, so that summaries describe the
// column's declared type rather than a lenient best effort.
type Coercer struct {
	missing map[string]struct{}
	formats []string
}

// New creates a coercer from the coercion configuration.
func New(cfg config.CoercionConfig) *Coercer {
	missing := make(map[string]struct{}, len(cfg.MissingTokens))
	for _, tok := range cfg.MissingTokens {
		missing[strings.ToLower(tok)] = struct{}{}
	}
	return &Coercer{missing: missing, formats: cfg.DateFormats}
}

// IsMissingToken reports whether a raw cell should be treated as missing.
func (c *Coercer) IsMissingToken(raw string) bool {
	_, ok := c.missing[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// ParseNumeric attempts a strict numeric parse. Infinities and NaN literals
// are rejected; a numeric column should never smuggle them in as data.
func (c *Coercer) ParseNumeric(raw string) (float64, bool) {
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	return val, true
}

// ParseDate tries the configured date formats in order.
func (c *Coercer) ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	for _, format := range c.formats {
		if t, err := time.Parse(format, trimmed); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ResolveTable coerces a raw string table into a typed table. Headers must
// already be normalized. The named date column becomes a timestamp column
// whose unparseable cells degrade to missing; every other column is numeric
// when all of its non-missing cells parse as numbers (vacuously numeric when
// the whole column is missing, matching an all-gap float column), otherwise
// categorical.
func (c *Coercer) ResolveTable(raw *dataset.RawTable, dateColumn string) *dataset.Table {
	table := dataset.NewTable()

	for idx, header := range raw.Headers {
		cells := make([]string, len(raw.Rows))
		for i, row := range raw.Rows {
			if idx < len(row) {
				cells[i] = row[idx]
			}
		}

		if header == dateColumn {
			table.AddColumn(c.resolveTimestampColumn(header, cells))
			continue
		}
		table.AddColumn(c.resolveColumn(header, cells))
	}

	return table
}

func (c *Coercer) resolveTimestampColumn(name string, cells []string) dataset.Column {
	values := make([]dataset.Value, len(cells))
	for i, cell := range cells {
		if c.IsMissingToken(cell) {
			values[i] = dataset.NewMissingValue()
			continue
		}
		if t, ok := c.ParseDate(cell); ok {
			values[i] = dataset.NewTimestampValue(t)
		} else {
			values[i] = dataset.NewMissingValue()
		}
	}
	return dataset.Column{Name: name, Kind: dataset.KindTimestamp, Values: values}
}

func (c *Coercer) resolveColumn(name string, cells []string) dataset.Column {
	numeric := true
	for _, cell := range cells {
		if c.IsMissingToken(cell) {
			continue
		}
		if _, ok := c.ParseNumeric(cell); !ok {
			numeric = false
			break
		}
	}

	values := make([]dataset.Value, len(cells))
	for i, cell := range cells {
		switch {
		case c.IsMissingToken(cell):
			values[i] = dataset.NewMissingValue()
		case numeric:
			n, _ := c.ParseNumeric(cell)
			values[i] = dataset.NewNumericValue(n)
		default:
			values[i] = dataset.NewStringValue(strings.TrimSpace(cell))
		}
	}

	kind := dataset.KindCategorical
	if numeric {
		kind = dataset.KindNumeric
	}
	return dataset.Column{Name: name, Kind: kind, Values: values}
}
