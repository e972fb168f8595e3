package similarity

import "gonum.org/v1/gonum/floats"

// EuclideanSimilarity computes similarity based on Euclidean distance.
// Returns 1 / (1 + distance), so identical vectors score 1.
func EuclideanSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	return 1 / (1 + floats.Distance(a, b, 2))
}
