package eda

import "math"

// NumericalStats holds the univariate statistics of a numerical column.
// All fields are populated together; the block is absent (nil pointer on
// FeatureStat) when the column has no non-missing numeric values.
type NumericalStats struct {
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Std      float64 `json:"std"` // sample (N-1) standard deviation
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"` // excess kurtosis

	// Quartile block requires at least four non-missing values; absent
	// below that, together with the outlier stats that depend on it.
	Quartiles *Quartiles `json:"quartiles,omitempty"`

	// Normality approximation from skewness and kurtosis.
	IsNormal   bool    `json:"is_normal"`
	NormalityP float64 `json:"normality_p"`

	RecommendedTransformations []string `json:"recommended_transformations,omitempty"`
}

// Quartiles holds the order statistics and the Tukey-fence outlier counts
// derived from them.
type Quartiles struct {
	Q1           float64 `json:"q1"`
	Q3           float64 `json:"q3"`
	IQR          float64 `json:"iqr"`
	OutlierCount int     `json:"outlier_count"`
	HasOutliers  bool    `json:"has_outliers"`
}

// ValueCount is one entry of a categorical frequency table
type ValueCount struct {
	Value      string  `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"` // of non-missing values
}

// CategoricalStats holds the frequency profile of a categorical column
type CategoricalStats struct {
	TopValues []ValueCount `json:"top_values"`
}

// TargetRelevance carries a feature's linear relationship with the
// designated target column. Present only on numerical features when a
// numerical (or binary-encoded) target is designated.
type TargetRelevance struct {
	TargetCorrelation float64 `json:"target_correlation"`
	Importance        float64 `json:"importance"` // |TargetCorrelation|
}

// FeatureStat is the profile of one column: a common header plus exactly
// one of the Numerical/Categorical blocks for its type.
type FeatureStat struct {
	Name         string     `json:"name"`
	Type         ColumnType `json:"type"`
	UniqueCount  int        `json:"unique_count"`
	MissingCount int        `json:"missing_count"`
	MissingPct   float64    `json:"missing_pct"` // one decimal place

	Numerical   *NumericalStats   `json:"numerical,omitempty"`
	Categorical *CategoricalStats `json:"categorical,omitempty"`
	Target      *TargetRelevance  `json:"target,omitempty"`
}

// Strength buckets the magnitude of a correlation coefficient
type Strength string

const (
	StrengthVeryStrong Strength = "very_strong" // |r| >= 0.7
	StrengthStrong     Strength = "strong"      // 0.5 <= |r| < 0.7
	StrengthModerate   Strength = "moderate"    // 0.3 <= |r| < 0.5
	StrengthWeak       Strength = "weak"        // |r| < 0.3
)

// ClassifyStrength maps |r| onto a Strength bucket. Lower boundaries are
// inclusive: exactly 0.7 is very_strong, exactly 0.5 is strong.
func ClassifyStrength(r float64) Strength {
	abs := math.Abs(r)
	switch {
	case abs >= 0.7:
		return StrengthVeryStrong
	case abs >= 0.5:
		return StrengthStrong
	case abs >= 0.3:
		return StrengthModerate
	default:
		return StrengthWeak
	}
}

// Correlation is one unordered pair of distinct numerical columns.
// Feature1 always precedes Feature2 in the original column order.
type Correlation struct {
	Feature1    string   `json:"feature1"`
	Feature2    string   `json:"feature2"`
	Correlation float64  `json:"correlation"`
	Strength    Strength `json:"strength"`
	SampleSize  int      `json:"sample_size"` // pairwise-complete rows
}

// Summary aggregates dataset-level quality metrics
type Summary struct {
	TotalRows           int     `json:"total_rows"`
	TotalColumns        int     `json:"total_columns"`
	NumericalFeatures   int     `json:"numerical_features"`
	CategoricalFeatures int     `json:"categorical_features"`
	MissingValues       int     `json:"missing_values"`
	MissingPct          float64 `json:"missing_pct"`
	OverallQuality      float64 `json:"overall_quality"` // 1 - MissingPct/100, clamped to [0,1]
	DuplicateRows       int     `json:"duplicate_rows"`
}

// WarningCode identifies a data-quality problem found during analysis
type WarningCode string

const (
	WarnShapeMismatch    WarningCode = "shape_mismatch"
	WarnTargetNotFound   WarningCode = "target_not_found"
	WarnTargetNotNumeric WarningCode = "target_not_numeric"
	WarnEmptyColumn      WarningCode = "empty_column"
)

// AnalysisWarning surfaces degraded-input conditions that the engine
// tolerates instead of raising, so callers can distinguish an empty dataset
// from a silently truncated one.
type AnalysisWarning struct {
	Code    WarningCode `json:"code"`
	Column  string      `json:"column,omitempty"`
	Message string      `json:"message"`
}

// Report is the immutable result of one analysis invocation
type Report struct {
	Summary      Summary           `json:"summary"`
	Features     []FeatureStat     `json:"features"`
	Correlations []Correlation     `json:"correlations"`
	Target       *FeatureStat      `json:"target,omitempty"` // profile of the designated target column
	Warnings     []AnalysisWarning `json:"warnings,omitempty"`
}

// HistogramBin is one equal-width bucket of a distribution chart
type HistogramBin struct {
	Bin   string `json:"bin"` // "[lower, upper)" label, two decimals
	Count int    `json:"count"`
}

// MissingPattern segments one column's missing cells over the row order
type MissingPattern struct {
	Feature string  `json:"feature"`
	Missing []int   `json:"missing"` // per-chunk missing counts
	Total   int     `json:"total"`
	Pct     float64 `json:"pct"`
}
