package similarity

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// ToFloat64 widens an embedding to float64 for accumulation.
func ToFloat64(v []float32) []float64 {
	out := make([]float64, len(v))
	for i, f := range v {
		out[i] = float64(f)
	}
	return out
}

// Norm returns the Euclidean norm of v. The norm of an empty vector is 0.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return floats.Norm(v, 2)
}

// FrobeniusNorm returns the Euclidean norm of all components of all vectors,
// treating the collection as one matrix. An empty collection has norm 0.
func FrobeniusNorm(vectors [][]float64) float64 {
	var sum float64
	for _, v := range vectors {
		sum += floats.Dot(v, v)
	}
	return math.Sqrt(sum)
}

// IsNearZero reports whether a norm is below NormThreshold.
func IsNearZero(norm float64) bool {
	return norm < NormThreshold
}

// Sum adds vectors component-wise into a new vector of length dim.
// The sum of no vectors is the zero vector.
func Sum(dim int, vectors [][]float64) []float64 {
	out := make([]float64, dim)
	for _, v := range vectors {
		floats.Add(out, v)
	}
	return out
}

// Normalize returns v scaled to unit length. A zero vector is returned unchanged.
func Normalize(v []float64) []float64 {
	out := make([]float64, len(v))
	copy(out, v)
	norm := Norm(out)
	if norm == 0 {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}
