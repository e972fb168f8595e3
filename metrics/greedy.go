package metrics

import (
	"math"

	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
)

// GreedyStrategy aligns every word with its most similar word in the other sentence.
type GreedyStrategy struct {
	// Similarity scores two word vectors. Defaults to cosine similarity.
	Similarity similarity.SimilarityFunc
}

// Encode collects the in-vocabulary vectors.
func (GreedyStrategy) Encode(sentence types.Sentence, lookup types.EmbeddingLookup) [][]float64 {
	return inVocabulary(sentence, lookup)
}

// Compare averages the greedy match in both directions. It never skips a pair.
func (g GreedyStrategy) Compare(hypothesis, reference [][]float64) (float64, bool) {
	forward := g.match(hypothesis, reference)
	backward := g.match(reference, hypothesis)
	return (forward + backward) / 2, true
}

// match averages, over the vectors of a, the best similarity each achieves against b.
// It is 0 when either side is empty.
func (g GreedyStrategy) match(a, b [][]float64) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	sim := g.Similarity
	if sim == nil {
		sim = similarity.CosineSimilarity
	}

	var total float64
	for _, x := range a {
		best := math.Inf(-1)
		for _, y := range b {
			if s := sim(x, y); s > best {
				best = s
			}
		}
		total += best
	}
	return total / float64(len(a))
}

// GreedyMatch is the greedy matching metric.
var GreedyMatch = New[[][]float64](NameGreedy, GreedyStrategy{})

// NewGreedyMatch returns a greedy matching metric that compares words with sim.
func NewGreedyMatch(sim similarity.SimilarityFunc) Metric {
	return New[[][]float64](NameGreedy, GreedyStrategy{Similarity: sim})
}

// GreedyMatchSentenceLevel scores one sentence pair with the greedy matching metric.
func GreedyMatchSentenceLevel(hypothesis, reference types.Sentence, lookup types.EmbeddingLookup) float64 {
	score, _ := GreedyMatch.SentenceLevel(hypothesis, reference, lookup)
	return score
}

// GreedyMatchCorpusLevel summarizes the greedy matching metric over a corpus pair.
func GreedyMatchCorpusLevel(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Summary, error) {
	return GreedyMatch.CorpusLevel(hypothesis, reference, lookup)
}
