package metrics

import (
	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
)

// AverageStrategy compares the sums of a sentence's word vectors.
type AverageStrategy struct{}

// Encode sums the vectors of the in-vocabulary tokens. A sentence without
// any in-vocabulary token encodes to the zero vector.
func (AverageStrategy) Encode(sentence types.Sentence, lookup types.EmbeddingLookup) []float64 {
	return similarity.Sum(lookup.Dim(), inVocabulary(sentence, lookup))
}

// Compare skips pairs whose reference sum is zero and scores 0 when only the
// hypothesis sum is zero. Otherwise both sums are normalized and compared by cosine.
func (AverageStrategy) Compare(hypothesis, reference []float64) (float64, bool) {
	if similarity.IsNearZero(similarity.Norm(reference)) {
		return 0, false
	}
	if similarity.IsNearZero(similarity.Norm(hypothesis)) {
		return 0, true
	}

	h := similarity.Normalize(hypothesis)
	r := similarity.Normalize(reference)
	return similarity.CosineSimilarity(h, r), true
}

// Average is the embedding average metric.
var Average = New[[]float64](NameAverage, AverageStrategy{})

// AverageSentenceLevel scores one sentence pair with the embedding average metric.
// ok is false when the reference has no in-vocabulary token.
func AverageSentenceLevel(hypothesis, reference types.Sentence, lookup types.EmbeddingLookup) (score float64, ok bool) {
	return Average.SentenceLevel(hypothesis, reference, lookup)
}

// AverageCorpusLevel summarizes the embedding average metric over a corpus pair.
func AverageCorpusLevel(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Summary, error) {
	return Average.CorpusLevel(hypothesis, reference, lookup)
}
