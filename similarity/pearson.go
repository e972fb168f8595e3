package similarity

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// PearsonCorrelationSimilarity computes the Pearson correlation coefficient.
// Returns a value between -1 and 1, or 0 when either vector is constant.
func PearsonCorrelationSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	r := stat.Correlation(a, b, nil)
	if math.IsNaN(r) {
		return 0
	}
	return r
}
