package eda

import (
	"testing"

	"datalens/domain/eda"
)

func TestHistogram_TotalCountPreserved(t *testing.T) {
	values := append(numericValues(1, 2, 2, 3, 5, 8, 13, 21, 34), eda.NewMissingValue())

	for _, binCount := range []int{1, 2, 5, 10, 20} {
		bins := Histogram(values, binCount)
		total := 0
		for _, b := range bins {
			total += b.Count
		}
		if total != 9 {
			t.Errorf("binCount=%d: total count = %d, want 9 (non-missing values)", binCount, total)
		}
	}
}

func TestHistogram_MaxClampedIntoLastBin(t *testing.T) {
	bins := Histogram(numericValues(0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10), 10)

	if len(bins) != 10 {
		t.Fatalf("bin count = %d, want 10", len(bins))
	}
	// 10 lands exactly on the upper boundary and belongs to the last bin.
	if bins[9].Count != 2 {
		t.Errorf("last bin count = %d, want 2 (value 9 and clamped max 10)", bins[9].Count)
	}
}

func TestHistogram_ZeroRange(t *testing.T) {
	bins := Histogram(numericValues(4, 4, 4, 4), 10)

	if len(bins) != 1 {
		t.Fatalf("expected a single bin for identical values, got %d", len(bins))
	}
	if bins[0].Count != 4 {
		t.Errorf("single bin count = %d, want 4", bins[0].Count)
	}
}

func TestHistogram_EmptyAndInvalidInput(t *testing.T) {
	if bins := Histogram(nil, 10); len(bins) != 0 {
		t.Errorf("expected no bins for empty input, got %d", len(bins))
	}
	if bins := Histogram([]eda.Value{eda.NewMissingValue()}, 10); len(bins) != 0 {
		t.Errorf("expected no bins for all-missing input, got %d", len(bins))
	}

	// A non-positive bin count degrades to a single bin.
	bins := Histogram(numericValues(1, 2, 3), 0)
	if len(bins) != 1 {
		t.Errorf("binCount=0: got %d bins, want 1", len(bins))
	}
}

func TestMissingPatterns(t *testing.T) {
	values := make([]eda.Value, 10)
	for i := range values {
		values[i] = eda.NewNumericValue(float64(i))
	}
	// Cluster missingness in the tail: rows 7, 8, 9.
	values[7] = eda.NewMissingValue()
	values[8] = eda.NewMissingValue()
	values[9] = eda.NewMissingValue()

	patterns := MissingPatterns([]eda.DataColumn{
		numericalColumn("tail_gaps", values),
	}, 3)

	if len(patterns) != 1 {
		t.Fatalf("pattern count = %d, want 1", len(patterns))
	}
	p := patterns[0]
	if p.Feature != "tail_gaps" {
		t.Errorf("feature = %q, want tail_gaps", p.Feature)
	}
	// Chunks are rows [0,3), [3,6), [6,10) - the last absorbs the remainder.
	want := []int{0, 0, 3}
	if len(p.Missing) != len(want) {
		t.Fatalf("chunk count = %d, want %d", len(p.Missing), len(want))
	}
	for i := range want {
		if p.Missing[i] != want[i] {
			t.Errorf("chunk %d missing = %d, want %d", i, p.Missing[i], want[i])
		}
	}
	if p.Total != 3 {
		t.Errorf("total = %d, want 3", p.Total)
	}
	if p.Pct != 30.0 {
		t.Errorf("pct = %v, want 30.0", p.Pct)
	}
}

func TestMissingPatterns_EmptyColumn(t *testing.T) {
	patterns := MissingPatterns([]eda.DataColumn{{Name: "empty", Type: eda.TypeNumerical}}, 5)

	if len(patterns) != 1 {
		t.Fatalf("pattern count = %d, want 1", len(patterns))
	}
	if patterns[0].Total != 0 || patterns[0].Pct != 0 {
		t.Errorf("expected zeroed pattern, got %+v", patterns[0])
	}
}

func TestInferColumnType(t *testing.T) {
	t.Run("numeric strings", func(t *testing.T) {
		got := InferColumnType(stringValues("1", "2", "3.5", "-4", "1e3"), 0.95)
		if got != eda.TypeNumerical {
			t.Errorf("got %v, want numerical", got)
		}
	})

	t.Run("below threshold", func(t *testing.T) {
		// 4 of 5 parse (80%), under the 95% threshold.
		got := InferColumnType(stringValues("1", "2", "3", "4", "apple"), 0.95)
		if got != eda.TypeCategorical {
			t.Errorf("got %v, want categorical", got)
		}
	})

	t.Run("missing values ignored", func(t *testing.T) {
		values := append(stringValues("1", "2"), eda.NewMissingValue(), eda.NewMissingValue())
		got := InferColumnType(values, 0.95)
		if got != eda.TypeNumerical {
			t.Errorf("got %v, want numerical", got)
		}
	})

	t.Run("no values", func(t *testing.T) {
		if got := InferColumnType(nil, 0.95); got != eda.TypeCategorical {
			t.Errorf("got %v, want categorical", got)
		}
	})
}
