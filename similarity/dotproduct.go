package similarity

import "gonum.org/v1/gonum/floats"

// DotProductSimilarity computes the dot product between two vectors.
// No normalization is applied, so results depend on vector magnitudes.
func DotProductSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	return floats.Dot(a, b)
}
