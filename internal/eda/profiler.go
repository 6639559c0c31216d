// Package eda implements the exploratory data analysis engine: per-column
// profiling, pairwise correlation, dataset-level orchestration, and the
// histogram and missing-pattern helpers used by the dashboard charts.
//
// The engine is a pure, stateless computation layer. It never raises on
// malformed input; degraded conditions are reported through the report's
// Warnings list so callers can tell an empty dataset from a truncated one.
package eda

import (
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/distuv"

	"datalens/domain/eda"
)

// Config holds the engine's tuning knobs
type Config struct {
	// TopValuesCap bounds the categorical frequency table.
	TopValuesCap int
	// NumericThreshold is the minimum fraction of non-missing values that
	// must parse as finite numbers for type inference to pick numerical.
	NumericThreshold float64
}

// DefaultConfig returns the knobs used by the dashboard
func DefaultConfig() Config {
	return Config{
		TopValuesCap:     10,
		NumericThreshold: 0.95,
	}
}

// Profiler converts one DataColumn into one FeatureStat
type Profiler struct {
	cfg Config
}

// NewProfiler creates a profiler with the given config
func NewProfiler(cfg Config) *Profiler {
	if cfg.TopValuesCap < 1 {
		cfg.TopValuesCap = DefaultConfig().TopValuesCap
	}
	return &Profiler{cfg: cfg}
}

// ProfileColumn computes the univariate profile of a column. Missing cells
// are excluded from every statistic and counted into MissingCount. A column
// with zero non-missing values gets its header filled and no stats block.
func (p *Profiler) ProfileColumn(col eda.DataColumn) eda.FeatureStat {
	total := len(col.Values)
	missing := col.MissingCount()

	stat := eda.FeatureStat{
		Name:         col.Name,
		Type:         col.Type,
		UniqueCount:  countUnique(col.Values),
		MissingCount: missing,
	}
	if total > 0 {
		stat.MissingPct = round1(float64(missing) / float64(total) * 100)
	}

	switch col.Type {
	case eda.TypeNumerical:
		stat.Numerical = p.profileNumerical(col)
	case eda.TypeCategorical:
		stat.Categorical = p.profileCategorical(col, total-missing)
	}

	return stat
}

// profileNumerical computes the numeric block, or nil when the column has
// no non-missing numeric values.
func (p *Profiler) profileNumerical(col eda.DataColumn) *eda.NumericalStats {
	data := floatSlice(col.Values)
	if len(data) == 0 {
		return nil
	}

	mean, _ := stats.Mean(data)
	median, _ := stats.Median(data)
	min, _ := stats.Min(data)
	max, _ := stats.Max(data)

	// Sample (N-1) standard deviation; zero for a single value.
	std := 0.0
	if len(data) > 1 {
		std, _ = stats.StandardDeviationSample(data)
	}

	skewness := calculateSkewness(data, mean)
	kurtosis := calculateKurtosis(data, mean)
	isNormal, normalityP := testNormality(data, skewness, kurtosis)

	ns := &eda.NumericalStats{
		Mean:       mean,
		Median:     median,
		Std:        std,
		Min:        min,
		Max:        max,
		Skewness:   skewness,
		Kurtosis:   kurtosis,
		IsNormal:   isNormal,
		NormalityP: normalityP,
		Quartiles:  computeQuartiles(data),
	}

	hasOutliers := ns.Quartiles != nil && ns.Quartiles.HasOutliers
	ns.RecommendedTransformations = RecommendTransformations(skewness, min, hasOutliers)

	return ns
}

// computeQuartiles derives Q1/Q3/IQR and the Tukey-fence outlier counts.
// stats.Percentile needs at least four observations for the 25th
// percentile; below that the whole block is absent.
func computeQuartiles(data []float64) *eda.Quartiles {
	if len(data) < 4 {
		return nil
	}

	q1, err1 := stats.Percentile(data, 25)
	q3, err3 := stats.Percentile(data, 75)
	if err1 != nil || err3 != nil {
		return nil
	}

	iqr := q3 - q1
	lower := q1 - 1.5*iqr
	upper := q3 + 1.5*iqr

	outliers := 0
	for _, x := range data {
		if x < lower || x > upper {
			outliers++
		}
	}

	return &eda.Quartiles{
		Q1:           q1,
		Q3:           q3,
		IQR:          iqr,
		OutlierCount: outliers,
		HasOutliers:  outliers > 0,
	}
}

// profileCategorical builds the frequency table over non-missing values,
// sorted descending by count (ties keep first-appearance order) and capped.
func (p *Profiler) profileCategorical(col eda.DataColumn, valid int) *eda.CategoricalStats {
	if valid <= 0 {
		return nil
	}

	counts := make(map[string]int)
	order := make(map[string]int)
	next := 0
	for _, v := range col.Values {
		if v.IsMissing() {
			continue
		}
		label := v.Label()
		if _, seen := counts[label]; !seen {
			order[label] = next
			next++
		}
		counts[label]++
	}

	top := make([]eda.ValueCount, 0, len(counts))
	for label, count := range counts {
		top = append(top, eda.ValueCount{
			Value:      label,
			Count:      count,
			Percentage: round1(float64(count) / float64(valid) * 100),
		})
	}
	sort.SliceStable(top, func(i, j int) bool {
		if top[i].Count != top[j].Count {
			return top[i].Count > top[j].Count
		}
		return order[top[i].Value] < order[top[j].Value]
	})

	if len(top) > p.cfg.TopValuesCap {
		top = top[:p.cfg.TopValuesCap]
	}

	return &eda.CategoricalStats{TopValues: top}
}

// calculateSkewness computes the Fisher-Pearson coefficient of skewness
// (third standardized moment, population denominator, no bias correction).
func calculateSkewness(data []float64, mean float64) float64 {
	sigma := populationStd(data, mean)
	if len(data) < 3 || sigma == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / sigma
		sum += d * d * d
	}
	return sum / n
}

// calculateKurtosis computes excess kurtosis (fourth standardized moment
// minus 3, population denominator).
func calculateKurtosis(data []float64, mean float64) float64 {
	sigma := populationStd(data, mean)
	if len(data) < 4 || sigma == 0 {
		return 0
	}

	n := float64(len(data))
	sum := 0.0
	for _, x := range data {
		d := (x - mean) / sigma
		sum += d * d * d * d
	}
	return sum/n - 3
}

func populationStd(data []float64, mean float64) float64 {
	if len(data) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range data {
		d := x - mean
		sum += d * d
	}
	return math.Sqrt(sum / float64(len(data)))
}

// testNormality approximates a normality check from skewness and excess
// kurtosis, with a chi-square p-value. Good enough for a dashboard flag,
// not a substitute for a proper test.
func testNormality(data []float64, skewness, kurtosis float64) (bool, float64) {
	if len(data) < 8 {
		return false, 1.0
	}

	testStat := math.Abs(skewness) + math.Abs(kurtosis)/2
	chiDist := distuv.ChiSquared{K: 2}
	pValue := 1 - chiDist.CDF(testStat*testStat)

	return pValue > 0.05, pValue
}

func countUnique(values []eda.Value) int {
	seen := make(map[string]struct{})
	for _, v := range values {
		if v.IsMissing() {
			continue
		}
		seen[v.Label()] = struct{}{}
	}
	return len(seen)
}

// round1 rounds to one decimal place, matching the dashboard's display
// precision for percentages.
func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
