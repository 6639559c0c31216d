package eda

import "math"

// Transformation names suggested by the profiler. Advisory only; the engine
// never applies them.
const (
	TransformLog    = "log"
	TransformSqrt   = "sqrt"
	TransformBoxCox = "box-cox"
)

// RecommendTransformations suggests preprocessing transforms from the
// skewness and outlier profile of a numerical column:
//
//   - |skewness| > 1 with strictly positive values: log
//   - |skewness| > 1 with non-negative values (but not all positive): sqrt
//   - |skewness| > 1 with outliers and strictly positive values: box-cox
//
// A roughly symmetric column gets no suggestions.
func RecommendTransformations(skewness, min float64, hasOutliers bool) []string {
	if math.Abs(skewness) <= 1 {
		return nil
	}

	var transforms []string
	switch {
	case min > 0:
		transforms = append(transforms, TransformLog)
		if hasOutliers {
			transforms = append(transforms, TransformBoxCox)
		}
	case min >= 0:
		transforms = append(transforms, TransformSqrt)
	}
	return transforms
}
