package eda

import (
	"fmt"
	"math"

	"datalens/domain/eda"
)

// Histogram buckets a column's non-missing numeric values into binCount
// equal-width bins for distribution charts. The maximum value is clamped
// into the last bin. When all values are identical the result is a single
// bin holding everything. Bin labels carry the [lower, upper) boundaries at
// two decimals.
func Histogram(values []eda.Value, binCount int) []eda.HistogramBin {
	if binCount < 1 {
		binCount = 1
	}

	data := floatSlice(values)
	if len(data) == 0 {
		return []eda.HistogramBin{}
	}

	min, max := data[0], data[0]
	for _, x := range data[1:] {
		if x < min {
			min = x
		}
		if x > max {
			max = x
		}
	}

	if min == max {
		return []eda.HistogramBin{{
			Bin:   fmt.Sprintf("%.2f - %.2f", min, max),
			Count: len(data),
		}}
	}

	width := (max - min) / float64(binCount)
	counts := make([]int, binCount)
	for _, x := range data {
		idx := int(math.Floor((x - min) / width))
		if idx >= binCount {
			idx = binCount - 1 // clamp max into the last bin
		}
		counts[idx]++
	}

	bins := make([]eda.HistogramBin, binCount)
	for i := 0; i < binCount; i++ {
		lower := min + float64(i)*width
		upper := lower + width
		bins[i] = eda.HistogramBin{
			Bin:   fmt.Sprintf("%.2f - %.2f", lower, upper),
			Count: counts[i],
		}
	}
	return bins
}
