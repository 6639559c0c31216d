package tabular

import (
	"math"
	"strconv"
	"strings"

	"datalens/domain/eda"
)

// defaultMissingTokens are the case-insensitive cell contents treated as
// missing sentinels during coercion.
var defaultMissingTokens = []string{"", "na", "n/a", "null", "nil", "none", "-", "nan"}

// Coercer converts raw string cells into typed engine values
type Coercer struct {
	missing map[string]struct{}
}

// NewCoercer creates a coercer with the default missing sentinels
func NewCoercer() *Coercer {
	return NewCoercerWithMissing(defaultMissingTokens)
}

// NewCoercerWithMissing creates a coercer with a custom sentinel list
func NewCoercerWithMissing(tokens []string) *Coercer {
	missing := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		missing[strings.ToLower(t)] = struct{}{}
	}
	return &Coercer{missing: missing}
}

// CoerceCell converts one raw cell. Cells matching a missing sentinel map
// to the missing value; cells that parse as finite numbers become numeric;
// everything else stays a string.
func (c *Coercer) CoerceCell(raw string) eda.Value {
	trimmed := strings.TrimSpace(raw)
	if _, ok := c.missing[strings.ToLower(trimmed)]; ok {
		return eda.NewMissingValue()
	}

	if f, err := strconv.ParseFloat(trimmed, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		return eda.NewNumericValue(f)
	}

	return eda.NewStringValue(trimmed)
}

// CoerceColumn converts a raw string column in row order
func (c *Coercer) CoerceColumn(raw []string) []eda.Value {
	values := make([]eda.Value, len(raw))
	for i, cell := range raw {
		values[i] = c.CoerceCell(cell)
	}
	return values
}
