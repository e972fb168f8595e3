package similarity

import "gonum.org/v1/gonum/floats"

// ManhattanSimilarity computes similarity based on Manhattan (L1) distance.
// Returns 1 / (1 + distance).
func ManhattanSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	return 1 / (1 + floats.Distance(a, b, 1))
}
