// Package embedscore scores hypothesis text against reference text with
// embedding-based metrics: vector average, vector extrema and greedy matching.
package embedscore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/botirk38/embedscore/corpus"
	"github.com/botirk38/embedscore/metrics"
	"github.com/botirk38/embedscore/options"
	"github.com/botirk38/embedscore/types"
	"golang.org/x/sync/errgroup"
)

// ErrCorpusLengthMismatch is returned when hypothesis and reference corpora
// have different sentence counts.
var ErrCorpusLengthMismatch = types.ErrCorpusLengthMismatch

// Scorer runs metrics over corpus pairs using a shared embedding lookup.
type Scorer struct {
	lookup  types.EmbeddingLookup
	metrics []metrics.Metric
	workers int
	logger  *slog.Logger
}

// New creates a Scorer with functional options.
func New(opts ...options.Option) (*Scorer, error) {
	cfg := options.NewConfig()

	if err := cfg.Apply(opts...); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return NewScorer(cfg.Lookup, cfg.Metrics, cfg.Workers, cfg.Logger)
}

// NewScorer creates a Scorer from explicit parts.
func NewScorer(lookup types.EmbeddingLookup, ms []metrics.Metric, workers int, logger *slog.Logger) (*Scorer, error) {
	if lookup == nil {
		return nil, errors.New("lookup cannot be nil")
	}
	if len(ms) == 0 {
		return nil, types.ErrNoMetrics
	}
	if workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", workers)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Scorer{
		lookup:  lookup,
		metrics: ms,
		workers: workers,
		logger:  logger,
	}, nil
}

// Metrics returns the names of the configured metrics, in run order.
func (s *Scorer) Metrics() []string {
	names := make([]string, len(s.metrics))
	for i, m := range s.metrics {
		names[i] = m.Name()
	}
	return names
}

// Lookup returns the embedding lookup shared by all metrics.
func (s *Scorer) Lookup() types.EmbeddingLookup {
	return s.lookup
}

func (s *Scorer) metric(name string) (metrics.Metric, error) {
	for _, m := range s.metrics {
		if m.Name() == name {
			return m, nil
		}
	}
	return metrics.ByName(name)
}

// Score evaluates the named metric over every index-aligned sentence pair and
// summarizes the result. Sentence pairs are scored concurrently; every score is
// written to its own index, so the report does not depend on scheduling.
func (s *Scorer) Score(ctx context.Context, name string, hypothesis, reference types.Corpus) (types.Report, error) {
	m, err := s.metric(name)
	if err != nil {
		return types.Report{}, err
	}
	if err := corpus.CheckAligned(hypothesis, reference); err != nil {
		return types.Report{}, err
	}

	start := time.Now()
	scores := make([]types.SentenceScore, len(hypothesis))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i := range hypothesis {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			score, ok := m.SentenceLevel(hypothesis[i], reference[i], s.lookup)
			scores[i] = types.SentenceScore{Index: i, Score: score, Skipped: !ok}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Report{}, err
	}
	if err := ctx.Err(); err != nil {
		return types.Report{}, err
	}

	report, err := metrics.Aggregate(m.Name(), scores)
	if err != nil {
		return report, err
	}

	s.logger.Info("scored corpus",
		"metric", m.Name(),
		"sentences", len(scores),
		"aggregated", report.Summary.Count,
		"mean", report.Summary.Mean,
		"elapsed", time.Since(start),
	)
	return report, nil
}

// ScoreAll runs every configured metric in order and returns one report per metric.
func (s *Scorer) ScoreAll(ctx context.Context, hypothesis, reference types.Corpus) ([]types.Report, error) {
	reports := make([]types.Report, 0, len(s.metrics))
	for _, m := range s.metrics {
		report, err := s.Score(ctx, m.Name(), hypothesis, reference)
		if err != nil {
			return nil, err
		}
		reports = append(reports, report)
	}
	return reports, nil
}

// ScoreResult holds the result of an async Score operation.
type ScoreResult struct {
	Report types.Report
	Error  error
}

// ScoreAsync runs Score in the background.
// Returns a channel that will receive the result when complete.
func (s *Scorer) ScoreAsync(ctx context.Context, name string, hypothesis, reference types.Corpus) <-chan ScoreResult {
	resultCh := make(chan ScoreResult, 1)
	go func() {
		defer close(resultCh)
		report, err := s.Score(ctx, name, hypothesis, reference)
		resultCh <- ScoreResult{Report: report, Error: err}
	}()
	return resultCh
}
