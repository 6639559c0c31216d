package eda

import (
	"math"
	"testing"

	"datalens/domain/eda"
)

func TestCorrelate_SymmetryAndBounds(t *testing.T) {
	x := numericalColumn("x", numericValues(1, 2, 3, 4, 5, 6))
	y := numericalColumn("y", numericValues(2, 4, 5, 4, 5, 7))

	forward := Correlate([]eda.DataColumn{x, y})
	reversed := Correlate([]eda.DataColumn{y, x})

	if len(forward) != 1 || len(reversed) != 1 {
		t.Fatalf("expected one pair, got %d and %d", len(forward), len(reversed))
	}
	if forward[0].Correlation != reversed[0].Correlation {
		t.Errorf("correlation not symmetric: %v vs %v", forward[0].Correlation, reversed[0].Correlation)
	}
	if r := forward[0].Correlation; r < -1 || r > 1 {
		t.Errorf("correlation %v out of [-1, 1]", r)
	}
}

func TestCorrelate_PerfectCorrelation(t *testing.T) {
	x := numericalColumn("x", numericValues(1, 2, 3, 4))
	double := numericalColumn("double", numericValues(2, 4, 6, 8))

	result := Correlate([]eda.DataColumn{x, double})
	if len(result) != 1 {
		t.Fatalf("expected one pair, got %d", len(result))
	}
	if result[0].Correlation != 1.0 {
		t.Errorf("correlation = %v, want 1.0", result[0].Correlation)
	}
	if result[0].Strength != eda.StrengthVeryStrong {
		t.Errorf("strength = %v, want very_strong", result[0].Strength)
	}
}

func TestCorrelate_PairwiseCompleteObservations(t *testing.T) {
	x := numericalColumn("x", []eda.Value{
		eda.NewNumericValue(1),
		eda.NewNumericValue(2),
		eda.NewMissingValue(),
		eda.NewNumericValue(4),
	})
	y := numericalColumn("y", []eda.Value{
		eda.NewNumericValue(1),
		eda.NewMissingValue(),
		eda.NewNumericValue(3),
		eda.NewNumericValue(4),
	})

	// Only rows 0 and 3 are present in both: [1,4] vs [1,4].
	result := Correlate([]eda.DataColumn{x, y})
	if len(result) != 1 {
		t.Fatalf("expected one pair, got %d", len(result))
	}
	if result[0].Correlation != 1.0 {
		t.Errorf("correlation = %v, want 1.0 over the overlapping rows", result[0].Correlation)
	}
	if result[0].SampleSize != 2 {
		t.Errorf("SampleSize = %d, want 2", result[0].SampleSize)
	}
}

func TestCorrelate_OmitsDegeneratePairs(t *testing.T) {
	x := numericalColumn("x", numericValues(1, 2, 3, 4))
	constant := numericalColumn("constant", numericValues(7, 7, 7, 7))

	result := Correlate([]eda.DataColumn{x, constant})
	if len(result) != 0 {
		t.Errorf("expected zero-variance pair to be omitted, got %+v", result)
	}
}

func TestCorrelate_NoSelfOrReversedPairs(t *testing.T) {
	cols := []eda.DataColumn{
		numericalColumn("a", numericValues(1, 2, 3, 4, 5)),
		numericalColumn("b", numericValues(5, 3, 4, 1, 2)),
		numericalColumn("c", numericValues(2, 2, 3, 5, 8)),
	}

	result := Correlate(cols)
	if len(result) != 3 {
		t.Fatalf("expected 3 pairs for 3 columns, got %d", len(result))
	}

	seen := make(map[string]bool)
	for _, c := range result {
		if c.Feature1 == c.Feature2 {
			t.Errorf("self-pair %q in result", c.Feature1)
		}
		key := c.Feature1 + "|" + c.Feature2
		reverse := c.Feature2 + "|" + c.Feature1
		if seen[key] || seen[reverse] {
			t.Errorf("duplicate or reversed pair %s", key)
		}
		seen[key] = true
	}
}

func TestCorrelate_SortedByAbsoluteValue(t *testing.T) {
	cols := []eda.DataColumn{
		numericalColumn("a", numericValues(1, 2, 3, 4, 5, 6)),
		numericalColumn("b", numericValues(6, 5, 4, 3, 2, 1)),   // r(a,b) = -1
		numericalColumn("c", numericValues(2, 9, 1, 8, 3, 10)),  // noisy
	}

	result := Correlate(cols)
	for i := 1; i < len(result); i++ {
		if math.Abs(result[i].Correlation) > math.Abs(result[i-1].Correlation) {
			t.Errorf("result not sorted by |correlation| at index %d", i)
		}
	}
	if result[0].Feature1 != "a" || result[0].Feature2 != "b" {
		t.Errorf("strongest pair = (%s, %s), want (a, b)", result[0].Feature1, result[0].Feature2)
	}
}

func TestClassifyStrength_Boundaries(t *testing.T) {
	cases := []struct {
		r    float64
		want eda.Strength
	}{
		{1.0, eda.StrengthVeryStrong},
		{0.7, eda.StrengthVeryStrong},
		{0.699, eda.StrengthStrong},
		{0.5, eda.StrengthStrong},
		{0.499, eda.StrengthModerate},
		{0.3, eda.StrengthModerate},
		{0.299, eda.StrengthWeak},
		{0.0, eda.StrengthWeak},
		{-0.7, eda.StrengthVeryStrong},
		{-0.45, eda.StrengthModerate},
	}

	for _, tc := range cases {
		if got := eda.ClassifyStrength(tc.r); got != tc.want {
			t.Errorf("ClassifyStrength(%v) = %v, want %v", tc.r, got, tc.want)
		}
	}
}

func TestTargetCorrelation(t *testing.T) {
	features := []eda.DataColumn{
		numericalColumn("signal", numericValues(1, 2, 3, 4, 5)),
		numericalColumn("flat", numericValues(3, 3, 3, 3, 3)),
	}
	target := numericalColumn("outcome", numericValues(2, 4, 6, 8, 10))

	relevance := TargetCorrelation(features, target)

	rel, ok := relevance["signal"]
	if !ok {
		t.Fatal("expected relevance for signal column")
	}
	if rel.TargetCorrelation != 1.0 || rel.Importance != 1.0 {
		t.Errorf("relevance = %+v, want correlation 1.0", rel)
	}
	if _, ok := relevance["flat"]; ok {
		t.Error("zero-variance column should have no relevance entry")
	}
}
