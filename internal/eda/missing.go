package eda

import (
	"datalens/domain/eda"
)

// MissingPatterns segments each column's rows into chunkCount contiguous
// ranges and counts missing cells per range, so the dashboard can show
// whether missingness clusters in particular row ranges. Chunks are
// near-equal; the last chunk absorbs the remainder.
func MissingPatterns(columns []eda.DataColumn, chunkCount int) []eda.MissingPattern {
	if chunkCount < 1 {
		chunkCount = 1
	}

	patterns := make([]eda.MissingPattern, 0, len(columns))
	for _, col := range columns {
		patterns = append(patterns, missingPattern(col, chunkCount))
	}
	return patterns
}

func missingPattern(col eda.DataColumn, chunkCount int) eda.MissingPattern {
	n := len(col.Values)
	pattern := eda.MissingPattern{
		Feature: col.Name,
		Missing: make([]int, chunkCount),
	}
	if n == 0 {
		return pattern
	}
	if chunkCount > n {
		chunkCount = n
		pattern.Missing = make([]int, chunkCount)
	}

	chunkSize := n / chunkCount
	for i := 0; i < chunkCount; i++ {
		start := i * chunkSize
		end := start + chunkSize
		if i == chunkCount-1 {
			end = n // last chunk absorbs the remainder
		}
		for row := start; row < end; row++ {
			if col.Values[row].IsMissing() {
				pattern.Missing[i]++
			}
		}
		pattern.Total += pattern.Missing[i]
	}
	pattern.Pct = round1(float64(pattern.Total) / float64(n) * 100)

	return pattern
}
