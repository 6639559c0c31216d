package eda

import (
	"fmt"
	"strings"

	"datalens/domain/eda"
)

// Analyzer orchestrates the full dataset analysis: profile every column,
// correlate the numerical subset, attach target relevance, and aggregate
// the dataset-level summary.
type Analyzer struct {
	cfg      Config
	profiler *Profiler
}

// NewAnalyzer creates an analyzer with the given config
func NewAnalyzer(cfg Config) *Analyzer {
	if cfg.NumericThreshold <= 0 || cfg.NumericThreshold > 1 {
		cfg.NumericThreshold = DefaultConfig().NumericThreshold
	}
	return &Analyzer{cfg: cfg, profiler: NewProfiler(cfg)}
}

// Analyze produces the combined report for a dataset. It never panics or
// returns an error: malformed input degrades to an empty or partial report
// with the problem recorded in Warnings, because the call sits behind an
// interactive dashboard action. Callers wanting strict validation can check
// Warnings for WarnShapeMismatch before trusting the correlations.
//
// Conventions:
//   - Columns with an empty Type are classified by InferColumnType first.
//   - The designated target column is profiled into Report.Target and
//     excluded from Features and from the pairwise correlation list; its
//     influence shows up as TargetRelevance on the numerical features.
//   - Columns whose row count differs from the first column's are profiled
//     over their own length but excluded from correlation.
func (a *Analyzer) Analyze(columns []eda.DataColumn, targetName string) eda.Report {
	report := eda.Report{
		Features:     []eda.FeatureStat{},
		Correlations: []eda.Correlation{},
	}
	if len(columns) == 0 {
		return report
	}

	totalRows := len(columns[0].Values)
	resolved := a.resolveTypes(columns)

	report.Warnings = append(report.Warnings, a.shapeWarnings(resolved, totalRows)...)

	var target *eda.DataColumn
	if targetName != "" {
		for i := range resolved {
			if resolved[i].Name == targetName {
				target = &resolved[i]
				break
			}
		}
		switch {
		case target == nil:
			report.Warnings = append(report.Warnings, eda.AnalysisWarning{
				Code:    eda.WarnTargetNotFound,
				Column:  targetName,
				Message: fmt.Sprintf("target column %q is not in the dataset", targetName),
			})
		case target.Type != eda.TypeNumerical:
			report.Warnings = append(report.Warnings, eda.AnalysisWarning{
				Code:    eda.WarnTargetNotNumeric,
				Column:  targetName,
				Message: fmt.Sprintf("target column %q is categorical; relevance ranking needs a numerical or binary-encoded target", targetName),
			})
		}
	}

	// Phase 1: univariate profiles, in input order.
	profiles := make([]eda.FeatureStat, len(resolved))
	for i, col := range resolved {
		profiles[i] = a.profiler.ProfileColumn(col)
	}

	// Numerical, well-shaped, non-target columns feed the pairwise pass.
	var numerical []eda.DataColumn
	for _, col := range resolved {
		if col.Type != eda.TypeNumerical || len(col.Values) != totalRows {
			continue
		}
		if target != nil && col.Name == target.Name {
			continue
		}
		numerical = append(numerical, col)
	}
	report.Correlations = Correlate(numerical)

	var relevance map[string]eda.TargetRelevance
	if target != nil && target.Type == eda.TypeNumerical {
		relevance = TargetCorrelation(numerical, *target)
	}

	// Phase 2: merge relevance into fresh feature structs.
	for i, col := range resolved {
		if target != nil && col.Name == target.Name {
			stat := profiles[i]
			report.Target = &stat
			continue
		}
		stat := profiles[i]
		if rel, ok := relevance[col.Name]; ok {
			r := rel
			stat.Target = &r
		}
		report.Features = append(report.Features, stat)
	}

	report.Summary = a.summarize(resolved, profiles, totalRows)
	return report
}

// resolveTypes copies the input columns, inferring the type of any column
// that arrives without one. The caller's slice is never modified.
func (a *Analyzer) resolveTypes(columns []eda.DataColumn) []eda.DataColumn {
	resolved := make([]eda.DataColumn, len(columns))
	for i, col := range columns {
		resolved[i] = col
		if col.Type == "" {
			resolved[i].Type = InferColumnType(col.Values, a.cfg.NumericThreshold)
		}
	}
	return resolved
}

func (a *Analyzer) shapeWarnings(columns []eda.DataColumn, totalRows int) []eda.AnalysisWarning {
	var warnings []eda.AnalysisWarning
	for _, col := range columns {
		if len(col.Values) != totalRows {
			warnings = append(warnings, eda.AnalysisWarning{
				Code:    eda.WarnShapeMismatch,
				Column:  col.Name,
				Message: fmt.Sprintf("column %q has %d rows, expected %d; excluded from correlation", col.Name, len(col.Values), totalRows),
			})
			continue
		}
		if totalRows > 0 && col.MissingCount() == totalRows {
			warnings = append(warnings, eda.AnalysisWarning{
				Code:    eda.WarnEmptyColumn,
				Column:  col.Name,
				Message: fmt.Sprintf("column %q has no non-missing values", col.Name),
			})
		}
	}
	return warnings
}

func (a *Analyzer) summarize(columns []eda.DataColumn, profiles []eda.FeatureStat, totalRows int) eda.Summary {
	summary := eda.Summary{
		TotalRows:    totalRows,
		TotalColumns: len(columns),
	}

	for i, col := range columns {
		if col.Type == eda.TypeNumerical {
			summary.NumericalFeatures++
		} else {
			summary.CategoricalFeatures++
		}
		summary.MissingValues += profiles[i].MissingCount
	}

	cells := totalRows * len(columns)
	if cells > 0 {
		summary.MissingPct = float64(summary.MissingValues) / float64(cells) * 100
	}

	quality := 1 - summary.MissingPct/100
	if quality < 0 {
		quality = 0
	} else if quality > 1 {
		quality = 1
	}
	summary.OverallQuality = quality

	summary.DuplicateRows = countDuplicateRows(columns, totalRows)
	return summary
}

// countDuplicateRows counts rows identical to an earlier row across all
// columns. Skipped (returns 0) when any column is mismatched, since row
// identity is undefined without index alignment.
func countDuplicateRows(columns []eda.DataColumn, totalRows int) int {
	if totalRows == 0 {
		return 0
	}
	for _, col := range columns {
		if len(col.Values) != totalRows {
			return 0
		}
	}

	seen := make(map[string]struct{}, totalRows)
	duplicates := 0
	var sb strings.Builder
	for row := 0; row < totalRows; row++ {
		sb.Reset()
		for _, col := range columns {
			sb.WriteString(col.Values[row].Label())
			sb.WriteByte(0x1f)
		}
		sig := sb.String()
		if _, ok := seen[sig]; ok {
			duplicates++
		} else {
			seen[sig] = struct{}{}
		}
	}
	return duplicates
}
