// Package eda defines the value types consumed and produced by the
// exploratory data analysis engine. All types here are plain data with no
// behavior beyond constructors and small accessors; the engine itself lives
// in internal/eda.
package eda

import (
	"strconv"
)

// ColumnType classifies a column for statistical purposes
type ColumnType string

const (
	TypeNumerical   ColumnType = "numerical"
	TypeCategorical ColumnType = "categorical"
)

// ValueKind defines the storage type for a single cell
type ValueKind string

const (
	ValueNumeric ValueKind = "numeric"
	ValueString  ValueKind = "string"
	ValueMissing ValueKind = "missing"
)

// Value represents one typed cell with an explicit missing state.
// Missing cells are excluded from every statistic but counted into
// MissingCount.
type Value struct {
	Kind ValueKind `json:"kind"`
	Num  float64   `json:"num,omitempty"`
	Str  string    `json:"str,omitempty"`
}

// NewNumericValue creates a numeric value
func NewNumericValue(n float64) Value {
	return Value{Kind: ValueNumeric, Num: n}
}

// NewStringValue creates a string value; empty strings are missing
func NewStringValue(s string) Value {
	if s == "" {
		return NewMissingValue()
	}
	return Value{Kind: ValueString, Str: s}
}

// NewMissingValue creates an explicit missing sentinel
func NewMissingValue() Value {
	return Value{Kind: ValueMissing}
}

// IsMissing reports whether the cell carries no value
func (v Value) IsMissing() bool {
	return v.Kind == ValueMissing
}

// Float returns the numeric content of the cell and whether it has one
func (v Value) Float() (float64, bool) {
	if v.Kind != ValueNumeric {
		return 0, false
	}
	return v.Num, true
}

// Label returns the cell rendered as a grouping label for categorical
// counting. Numeric cells format with minimal digits so 1 and 1.0 group
// together.
func (v Value) Label() string {
	switch v.Kind {
	case ValueNumeric:
		return strconv.FormatFloat(v.Num, 'f', -1, 64)
	case ValueString:
		return v.Str
	default:
		return ""
	}
}

// DataColumn is a named column of raw values. All columns of one dataset
// carry the same number of rows; the analyzer reports a warning for columns
// that break this and keeps them out of correlation.
type DataColumn struct {
	Name   string     `json:"name"`
	Type   ColumnType `json:"type"`
	Values []Value    `json:"values"`
}

// FloatValues returns the non-missing numeric values in row order
func (c DataColumn) FloatValues() []float64 {
	out := make([]float64, 0, len(c.Values))
	for _, v := range c.Values {
		if f, ok := v.Float(); ok {
			out = append(out, f)
		}
	}
	return out
}

// MissingCount returns the number of missing cells
func (c DataColumn) MissingCount() int {
	n := 0
	for _, v := range c.Values {
		if v.IsMissing() {
			n++
		}
	}
	return n
}
