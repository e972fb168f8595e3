package metrics

import (
	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
)

// inVocabulary returns the float64 vectors of the sentence's in-vocabulary tokens, in order.
func inVocabulary(sentence types.Sentence, lookup types.EmbeddingLookup) [][]float64 {
	vectors := make([][]float64, 0, len(sentence))
	for _, tok := range sentence {
		if lookup.Contains(tok) {
			vectors = append(vectors, similarity.ToFloat64(lookup.VectorOf(tok)))
		}
	}
	return vectors
}
