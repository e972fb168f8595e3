// Package similarity provides the vector kernels the embedding metrics are built from.
package similarity

// SimilarityFunc represents a function that computes similarity between two embedding vectors.
// It should return a float64 where higher values indicate greater similarity.
type SimilarityFunc func(a, b []float64) float64

// NormThreshold is the norm below which a vector is treated as zero.
const NormThreshold = 1e-11
