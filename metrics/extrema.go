package metrics

import (
	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
)

// ExtremaEncoding is a sentence reduced to its extrema vector.
type ExtremaEncoding struct {
	// Norm is the norm of all collected word vectors taken together
	Norm    float64
	Extrema []float64
}

// ExtremaStrategy compares per-dimension extreme values of a sentence's word vectors.
type ExtremaStrategy struct{}

// Encode collects the in-vocabulary vectors and selects their extrema.
func (ExtremaStrategy) Encode(sentence types.Sentence, lookup types.EmbeddingLookup) ExtremaEncoding {
	vectors := inVocabulary(sentence, lookup)
	return ExtremaEncoding{
		Norm:    similarity.FrobeniusNorm(vectors),
		Extrema: similarity.Extrema(vectors),
	}
}

// Compare follows the same skip and zero rules as the embedding average.
func (ExtremaStrategy) Compare(hypothesis, reference ExtremaEncoding) (float64, bool) {
	if similarity.IsNearZero(reference.Norm) {
		return 0, false
	}
	if similarity.IsNearZero(hypothesis.Norm) {
		return 0, true
	}
	return similarity.CosineSimilarity(hypothesis.Extrema, reference.Extrema), true
}

// Extrema is the vector extrema metric.
var Extrema = New[ExtremaEncoding](NameExtrema, ExtremaStrategy{})

// ExtremaSentenceLevel scores one sentence pair with the vector extrema metric.
// ok is false when the reference has no in-vocabulary token.
func ExtremaSentenceLevel(hypothesis, reference types.Sentence, lookup types.EmbeddingLookup) (score float64, ok bool) {
	return Extrema.SentenceLevel(hypothesis, reference, lookup)
}

// ExtremaCorpusLevel summarizes the vector extrema metric over a corpus pair.
func ExtremaCorpusLevel(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Summary, error) {
	return Extrema.CorpusLevel(hypothesis, reference, lookup)
}
