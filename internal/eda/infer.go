package eda

import (
	"math"
	"strconv"

	"datalens/domain/eda"
)

// InferColumnType classifies a column as numerical or categorical from its
// raw values. A column is numerical when at least threshold (a fraction in
// (0,1]) of its non-missing values are numbers or parse as finite numbers;
// everything else is categorical. A column with no non-missing values is
// categorical.
func InferColumnType(values []eda.Value, threshold float64) eda.ColumnType {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultConfig().NumericThreshold
	}

	valid := 0
	numeric := 0
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		valid++
		if isNumeric(v) {
			numeric++
		}
	}

	if valid == 0 {
		return eda.TypeCategorical
	}
	if float64(numeric)/float64(valid) >= threshold {
		return eda.TypeNumerical
	}
	return eda.TypeCategorical
}

func isNumeric(v eda.Value) bool {
	_, ok := numericValue(v)
	return ok
}

// numericValue extracts the numeric content of a cell. String cells that
// parse as finite numbers count, so a column inferred numerical from
// string-encoded numbers profiles the same as a pre-coerced one.
func numericValue(v eda.Value) (float64, bool) {
	if f, ok := v.Float(); ok {
		return f, true
	}
	if v.Kind != eda.ValueString {
		return 0, false
	}
	f, err := strconv.ParseFloat(v.Str, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// floatSlice collects the numeric values of a column in row order
func floatSlice(values []eda.Value) []float64 {
	out := make([]float64, 0, len(values))
	for _, v := range values {
		if f, ok := numericValue(v); ok {
			out = append(out, f)
		}
	}
	return out
}
