package eda

import (
	"math"
	"sort"

	"datalens/domain/eda"
)

// Correlate computes the Pearson correlation for every unordered pair of
// distinct numerical columns, using pairwise-complete observations: rows
// missing in either column are dropped for that pair only. Pairs where
// either column has zero variance over the overlap (or fewer than two
// overlapping rows) are omitted rather than reported as zero.
//
// The result is sorted by |correlation| descending; ties keep the original
// pair order so callers can take a top-N prefix directly.
func Correlate(columns []eda.DataColumn) []eda.Correlation {
	result := make([]eda.Correlation, 0)

	for i := 0; i < len(columns); i++ {
		for j := i + 1; j < len(columns); j++ {
			xs, ys := pairwiseComplete(columns[i].Values, columns[j].Values)
			r, ok := pearson(xs, ys)
			if !ok {
				continue
			}
			result = append(result, eda.Correlation{
				Feature1:    columns[i].Name,
				Feature2:    columns[j].Name,
				Correlation: r,
				Strength:    eda.ClassifyStrength(r),
				SampleSize:  len(xs),
			})
		}
	}

	sort.SliceStable(result, func(a, b int) bool {
		return math.Abs(result[a].Correlation) > math.Abs(result[b].Correlation)
	})

	return result
}

// TargetCorrelation computes each column's Pearson correlation against the
// target column, keyed by column name. Degenerate pairs are left out of the
// map, which downstream code reads as "relevance unavailable".
func TargetCorrelation(columns []eda.DataColumn, target eda.DataColumn) map[string]eda.TargetRelevance {
	relevance := make(map[string]eda.TargetRelevance, len(columns))

	for _, col := range columns {
		if col.Name == target.Name {
			continue
		}
		xs, ys := pairwiseComplete(col.Values, target.Values)
		r, ok := pearson(xs, ys)
		if !ok {
			continue
		}
		relevance[col.Name] = eda.TargetRelevance{
			TargetCorrelation: r,
			Importance:        math.Abs(r),
		}
	}

	return relevance
}

// pairwiseComplete extracts the rows where both columns carry a numeric
// value. Alignment is by index; iteration stops at the shorter column.
func pairwiseComplete(x, y []eda.Value) ([]float64, []float64) {
	n := len(x)
	if len(y) < n {
		n = len(y)
	}

	xs := make([]float64, 0, n)
	ys := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		xv, xok := numericValue(x[i])
		yv, yok := numericValue(y[i])
		if xok && yok {
			xs = append(xs, xv)
			ys = append(ys, yv)
		}
	}
	return xs, ys
}

// pearson computes the Pearson correlation coefficient, clamped to [-1, 1].
// Returns false when fewer than two observations overlap or either side has
// zero variance.
func pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n < 2 || len(y) != n {
		return 0, false
	}

	meanX, meanY := 0.0, 0.0
	for i := 0; i < n; i++ {
		meanX += x[i]
		meanY += y[i]
	}
	meanX /= float64(n)
	meanY /= float64(n)

	cov, varX, varY := 0.0, 0.0, 0.0
	for i := 0; i < n; i++ {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}

	if varX == 0 || varY == 0 {
		return 0, false
	}

	r := cov / math.Sqrt(varX*varY)
	if r > 1 {
		r = 1
	} else if r < -1 {
		r = -1
	}
	return r, true
}
