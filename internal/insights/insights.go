// Package insights turns an analysis report into user-facing cards: plain
// statements of data-quality problems and modeling hints, with suggested
// next steps. Cards are advisory; nothing here feeds back into the engine.
package insights

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"datalens/domain/eda"
)

// Severity ranks a card for display ordering
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Card is one insight shown on the dashboard. Body is markdown.
type Card struct {
	Severity Severity `json:"severity"`
	Title    string   `json:"title"`
	Body     string   `json:"body"`
	Columns  []string `json:"columns,omitempty"`
	Action   string   `json:"action,omitempty"`
}

// Thresholds tunes the insight rules
type Thresholds struct {
	HighMissingPct     float64 // per-column missing percentage
	SkewThreshold      float64 // |skewness| above which a transform is suggested
	MulticollinearityR float64 // |correlation| flagged as redundant
	ImbalanceTopPct    float64 // majority-class share of a categorical target
	OutlierPct         float64 // outlier share of non-missing values
}

// DefaultThresholds returns the rules used by the dashboard
func DefaultThresholds() Thresholds {
	return Thresholds{
		HighMissingPct:     20,
		SkewThreshold:      1,
		MulticollinearityR: 0.7,
		ImbalanceTopPct:    80,
		OutlierPct:         5,
	}
}

// Generator derives insight cards from analysis reports
type Generator struct {
	cfg Thresholds
}

// NewGenerator creates a generator with the given thresholds
func NewGenerator(cfg Thresholds) *Generator {
	if cfg.SkewThreshold <= 0 {
		cfg = DefaultThresholds()
	}
	return &Generator{cfg: cfg}
}

// Generate produces the card list for a report, ordered critical first
func (g *Generator) Generate(report eda.Report) []Card {
	var cards []Card

	cards = append(cards, g.warningCards(report)...)
	for _, f := range report.Features {
		cards = append(cards, g.featureCards(f, report.Summary.TotalRows)...)
	}
	cards = append(cards, g.multicollinearityCards(report)...)
	cards = append(cards, g.targetCards(report)...)
	cards = append(cards, g.importanceCard(report)...)

	rank := map[Severity]int{SeverityCritical: 0, SeverityWarning: 1, SeverityInfo: 2}
	sort.SliceStable(cards, func(i, j int) bool {
		return rank[cards[i].Severity] < rank[cards[j].Severity]
	})
	return cards
}

func (g *Generator) warningCards(report eda.Report) []Card {
	var cards []Card
	for _, w := range report.Warnings {
		severity := SeverityWarning
		if w.Code == eda.WarnShapeMismatch {
			severity = SeverityCritical
		}
		cards = append(cards, Card{
			Severity: severity,
			Title:    "Data quality problem",
			Body:     w.Message,
			Columns:  columnList(w.Column),
		})
	}
	return cards
}

func (g *Generator) featureCards(f eda.FeatureStat, totalRows int) []Card {
	var cards []Card

	if f.MissingPct > g.cfg.HighMissingPct {
		cards = append(cards, Card{
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("High missingness in %s", f.Name),
			Body: fmt.Sprintf("**%.1f%%** of `%s` is missing (%d of %d rows). Models trained on it will lean on imputation.",
				f.MissingPct, f.Name, f.MissingCount, totalRows),
			Columns: columnList(f.Name),
			Action:  "impute_or_drop",
		})
	}

	if f.UniqueCount == 1 {
		cards = append(cards, Card{
			Severity: SeverityInfo,
			Title:    fmt.Sprintf("Constant column %s", f.Name),
			Body:     fmt.Sprintf("`%s` holds a single distinct value and carries no signal.", f.Name),
			Columns:  columnList(f.Name),
			Action:   "drop_column",
		})
	}

	if f.Numerical == nil {
		return cards
	}

	ns := f.Numerical
	if math.Abs(ns.Skewness) > g.cfg.SkewThreshold {
		body := fmt.Sprintf("`%s` is skewed (skewness %.2f).", f.Name, ns.Skewness)
		if len(ns.RecommendedTransformations) > 0 {
			body += fmt.Sprintf(" Consider a **%s** transform.", strings.Join(ns.RecommendedTransformations, "** or **"))
		}
		cards = append(cards, Card{
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("Skewed distribution in %s", f.Name),
			Body:     body,
			Columns:  columnList(f.Name),
			Action:   "transform",
		})
	}

	if ns.Quartiles != nil && ns.Quartiles.HasOutliers {
		valid := totalRows - f.MissingCount
		if valid > 0 {
			pct := float64(ns.Quartiles.OutlierCount) / float64(valid) * 100
			if pct > g.cfg.OutlierPct {
				cards = append(cards, Card{
					Severity: SeverityWarning,
					Title:    fmt.Sprintf("Outliers in %s", f.Name),
					Body: fmt.Sprintf("%d values (%.1f%%) of `%s` fall outside the Tukey fences.",
						ns.Quartiles.OutlierCount, pct, f.Name),
					Columns: columnList(f.Name),
					Action:  "review_outliers",
				})
			}
		}
	}

	return cards
}

func (g *Generator) multicollinearityCards(report eda.Report) []Card {
	var cards []Card
	for _, c := range report.Correlations {
		if math.Abs(c.Correlation) < g.cfg.MulticollinearityR {
			break // sorted by |correlation|, nothing further qualifies
		}
		cards = append(cards, Card{
			Severity: SeverityWarning,
			Title:    fmt.Sprintf("%s and %s are highly correlated", c.Feature1, c.Feature2),
			Body: fmt.Sprintf("Pearson correlation between `%s` and `%s` is **%.2f** (%s). Keeping both adds redundancy.",
				c.Feature1, c.Feature2, c.Correlation, c.Strength),
			Columns: []string{c.Feature1, c.Feature2},
			Action:  "drop_one_of_pair",
		})
	}
	return cards
}

func (g *Generator) targetCards(report eda.Report) []Card {
	target := report.Target
	if target == nil {
		return nil
	}

	// Majority-class share of a categorical target.
	if target.Categorical != nil && len(target.Categorical.TopValues) > 0 {
		top := target.Categorical.TopValues[0]
		if top.Percentage >= g.cfg.ImbalanceTopPct {
			return []Card{{
				Severity: SeverityCritical,
				Title:    "Imbalanced target",
				Body: fmt.Sprintf("Class `%s` covers **%.1f%%** of `%s`. Accuracy will be misleading; consider stratified sampling or class weights.",
					top.Value, top.Percentage, target.Name),
				Columns: columnList(target.Name),
				Action:  "rebalance",
			}}
		}
	}

	// A binary-encoded numeric target with a mean far from 0.5 is the
	// same problem in different clothes.
	if target.Numerical != nil && target.UniqueCount == 2 {
		mean := target.Numerical.Mean
		if mean < 0.2 || mean > 0.8 {
			return []Card{{
				Severity: SeverityCritical,
				Title:    "Imbalanced target",
				Body: fmt.Sprintf("The positive rate of `%s` is **%.1f%%**. Accuracy will be misleading; consider stratified sampling or class weights.",
					target.Name, mean*100),
				Columns: columnList(target.Name),
				Action:  "rebalance",
			}}
		}
	}

	return nil
}

// importanceCard summarizes the strongest target relationships
func (g *Generator) importanceCard(report eda.Report) []Card {
	type ranked struct {
		name       string
		importance float64
	}
	var features []ranked
	for _, f := range report.Features {
		if f.Target != nil {
			features = append(features, ranked{f.Name, f.Target.Importance})
		}
	}
	if len(features) == 0 {
		return nil
	}

	sort.SliceStable(features, func(i, j int) bool {
		return features[i].importance > features[j].importance
	})
	if len(features) > 3 {
		features = features[:3]
	}

	var lines []string
	var columns []string
	for _, f := range features {
		lines = append(lines, fmt.Sprintf("- `%s` (importance %.2f)", f.name, f.importance))
		columns = append(columns, f.name)
	}

	return []Card{{
		Severity: SeverityInfo,
		Title:    "Most relevant features",
		Body:     "Strongest linear relationships with the target:\n\n" + strings.Join(lines, "\n"),
		Columns:  columns,
	}}
}

func columnList(name string) []string {
	if name == "" {
		return nil
	}
	return []string{name}
}

