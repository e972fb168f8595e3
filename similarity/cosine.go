package similarity

// CosineSimilarity computes the cosine of the angle between two vectors as
// dot(a, b) / ‖a‖ / ‖b‖.
// Returns 0 for empty, mismatched or zero-norm inputs.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	normA := Norm(a)
	normB := Norm(b)
	if normA == 0 || normB == 0 {
		return 0
	}

	return DotProductSimilarity(a, b) / normA / normB
}
