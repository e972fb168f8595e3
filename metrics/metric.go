// Package metrics implements the embedding-based sentence similarity metrics:
// embedding average, vector extrema and greedy matching.
//
// Each metric is a Strategy that encodes a sentence into a metric-specific
// structure and compares a hypothesis encoding against a reference encoding.
// A shared pipeline turns a strategy into sentence-level and corpus-level scores.
package metrics

import (
	"fmt"
	"sort"

	"github.com/botirk38/embedscore/corpus"
	"github.com/botirk38/embedscore/stats"
	"github.com/botirk38/embedscore/types"
)

// Metric names, as used in reports and on the command line.
const (
	NameAverage = "vector_average"
	NameExtrema = "vector_extrema"
	NameGreedy  = "greedy_matching"
)

// Strategy is the per-metric part of the scoring pipeline.
type Strategy[E any] interface {
	// Encode maps a sentence to the structure the metric compares.
	// Out-of-vocabulary tokens are ignored.
	Encode(sentence types.Sentence, lookup types.EmbeddingLookup) E

	// Compare scores a hypothesis encoding against a reference encoding.
	// ok is false when the pair must be left out of the aggregate.
	Compare(hypothesis, reference E) (score float64, ok bool)
}

// Metric scores hypothesis text against reference text.
type Metric interface {
	// Name returns the registered metric name.
	Name() string

	// SentenceLevel scores one sentence pair. ok is false when the pair is skipped.
	SentenceLevel(hypothesis, reference types.Sentence, lookup types.EmbeddingLookup) (score float64, ok bool)

	// CorpusLevel scores every index-aligned pair and summarizes the scores.
	CorpusLevel(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Summary, error)

	// Evaluate is CorpusLevel that also returns the per-sentence scores.
	Evaluate(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Report, error)
}

// pipeline adapts a Strategy to the Metric interface.
type pipeline[E any] struct {
	name     string
	strategy Strategy[E]
}

// New builds a Metric named name from a strategy.
func New[E any](name string, strategy Strategy[E]) Metric {
	return &pipeline[E]{name: name, strategy: strategy}
}

func (p *pipeline[E]) Name() string { return p.name }

func (p *pipeline[E]) SentenceLevel(hypothesis, reference types.Sentence, lookup types.EmbeddingLookup) (float64, bool) {
	return p.strategy.Compare(
		p.strategy.Encode(hypothesis, lookup),
		p.strategy.Encode(reference, lookup),
	)
}

func (p *pipeline[E]) CorpusLevel(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Summary, error) {
	report, err := p.Evaluate(hypothesis, reference, lookup)
	if err != nil {
		return types.Summary{}, err
	}
	return report.Summary, nil
}

func (p *pipeline[E]) Evaluate(hypothesis, reference types.Corpus, lookup types.EmbeddingLookup) (types.Report, error) {
	if err := corpus.CheckAligned(hypothesis, reference); err != nil {
		return types.Report{}, err
	}

	scores := make([]types.SentenceScore, len(hypothesis))
	for i := range hypothesis {
		score, ok := p.SentenceLevel(hypothesis[i], reference[i], lookup)
		scores[i] = types.SentenceScore{Index: i, Score: score, Skipped: !ok}
	}

	return Aggregate(p.name, scores)
}

// Aggregate summarizes the non-skipped scores into a report for metric name.
func Aggregate(name string, scores []types.SentenceScore) (types.Report, error) {
	report := types.Report{Metric: name, Scores: scores}

	summary, err := stats.Summarize(report.Values())
	if err != nil {
		return report, fmt.Errorf("%s: %w", name, err)
	}
	report.Summary = summary
	return report, nil
}

var registry = map[string]Metric{
	NameAverage: Average,
	NameExtrema: Extrema,
	NameGreedy:  GreedyMatch,
}

// ByName returns the registered metric with the given name.
func ByName(name string) (Metric, error) {
	m, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownMetric, name)
	}
	return m, nil
}

// Names lists the registered metric names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
