package dataset

import (
	"strconv"
	"time"
)

// ValueType defines the storage type for cell values.
type ValueType string

const (
	ValueTypeString    ValueType = "string"
	ValueTypeNumeric   ValueType = "numeric"
	ValueTypeBoolean   ValueType = "boolean"
	ValueTypeTimestamp ValueType = "timestamp"
	ValueTypeMissing   ValueType = "missing"
)

// Value represents a typed cell value with deterministic coercion. Missing
// is a first-class state rather than a sentinel inside another type.
type Value struct {
	Type         ValueType
	StringVal    *string
	NumericVal   *float64
	BooleanVal   *bool
	TimestampVal *time.Time
	IsMissing    bool
}

// NewStringValue creates a string value; the empty string is missing.
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Type: ValueTypeString, StringVal: &s}
}

// NewNumericValue creates a numeric value.
func NewNumericValue(n float64) Value {
	return Value{Type: ValueTypeNumeric, NumericVal: &n}
}

// NewBooleanValue creates a boolean value.
func NewBooleanValue(b bool) Value {
	return Value{Type: ValueTypeBoolean, BooleanVal: &b}
}

// NewTimestampValue creates a timestamp value.
func NewTimestampValue(t time.Time) Value {
	return Value{Type: ValueTypeTimestamp, TimestampVal: &t}
}

// NewMissingValue creates a missing value.
func NewMissingValue() Value {
	return Value{Type: ValueTypeMissing, IsMissing: true}
}

// IsNumeric returns true if the value holds a valid number.
func (v Value) IsNumeric() bool {
	return v.Type == ValueTypeNumeric && v.NumericVal != nil
}

// IsTimestamp returns true if the value holds a valid timestamp.
func (v Value) IsTimestamp() bool {
	return v.Type == ValueTypeTimestamp && v.TimestampVal != nil
}

// AsFloat64 returns the numeric value, or 0 when not numeric.
func (v Value) AsFloat64() float64 {
	if v.NumericVal != nil {
		return *v.NumericVal
	}
	return 0
}

// AsTime returns the timestamp value, or the zero time when not a timestamp.
func (v Value) AsTime() time.Time {
	if v.TimestampVal != nil {
		return *v.TimestampVal
	}
	return time.Time{}
}

// Display renders the value for export and frequency labels. Missing values
// render as the empty string; callers that need an explicit missing bucket
// label test IsMissing first. Date-only timestamps render as 2006-01-02,
// timestamps with a clock as RFC 3339.
func (v Value) Display() string {
	switch v.Type {
	case ValueTypeString:
		if v.StringVal != nil {
			return *v.StringVal
		}
	case ValueTypeNumeric:
		if v.NumericVal != nil {
			return strconv.FormatFloat(*v.NumericVal, 'g', -1, 64)
		}
	case ValueTypeBoolean:
		if v.BooleanVal != nil {
			return strconv.FormatBool(*v.BooleanVal)
		}
	case ValueTypeTimestamp:
		if v.TimestampVal != nil {
			t := *v.TimestampVal
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
				return t.Format("2006-01-02")
			}
			return t.Format(time.RFC3339)
		}
	}
	return ""
}
