package similarity

import (
	"math"

	"github.com/viterin/vek"
)

// Extrema selects, per dimension, whichever of the column maximum or column minimum
// has the larger absolute value. The maximum wins ties.
// Returns nil when vectors is empty.
func Extrema(vectors [][]float64) []float64 {
	if len(vectors) == 0 {
		return nil
	}

	maxima := make([]float64, len(vectors[0]))
	minima := make([]float64, len(vectors[0]))
	copy(maxima, vectors[0])
	copy(minima, vectors[0])
	for _, v := range vectors[1:] {
		vek.Maximum_Inplace(maxima, v)
		vek.Minimum_Inplace(minima, v)
	}

	out := make([]float64, len(maxima))
	for i := range maxima {
		if math.Abs(minima[i]) > maxima[i] {
			out[i] = minima[i]
		} else {
			out[i] = maxima[i]
		}
	}
	return out
}
