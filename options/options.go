// Package options provides functional options for configuring Scorer instances.
package options

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"

	"github.com/botirk38/embedscore/lookup"
	"github.com/botirk38/embedscore/lookup/word2vec"
	"github.com/botirk38/embedscore/metrics"
	"github.com/botirk38/embedscore/similarity"
	"github.com/botirk38/embedscore/types"
)

// Option represents a configuration option for a Scorer
type Option func(*Config) error

// Config holds the configuration for building a Scorer
type Config struct {
	Lookup  types.EmbeddingLookup
	Metrics []metrics.Metric
	Workers int
	Logger  *slog.Logger

	// TokenSimilarity replaces cosine inside greedy matching when set
	TokenSimilarity similarity.SimilarityFunc

	// open builds the lookup once every option has been applied
	open func(logger *slog.Logger) (types.EmbeddingLookup, error)
}

// NewConfig creates a new configuration with default values: every registered
// metric, one worker per CPU and the default logger.
func NewConfig() *Config {
	cfg := &Config{
		Workers: runtime.GOMAXPROCS(0),
		Logger:  slog.Default(),
	}
	for _, name := range metrics.Names() {
		m, _ := metrics.ByName(name)
		cfg.Metrics = append(cfg.Metrics, m)
	}
	return cfg
}

// Apply applies all the given options to the config. Lookups requested with
// WithWord2VecFile or WithLookupSource are loaded last, with the final logger,
// so option order does not matter.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	if c.open == nil {
		return nil
	}

	open := c.open
	c.open = nil
	l, err := open(c.Logger)
	if err != nil {
		return err
	}
	c.Lookup = l
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Lookup == nil {
		return errors.New("embedding lookup is required - use WithLookup, WithWord2VecFile, etc.")
	}
	if len(c.Metrics) == 0 {
		return types.ErrNoMetrics
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.Logger == nil {
		return errors.New("logger cannot be nil")
	}
	return nil
}

// WithLookup uses a pre-built embedding lookup
func WithLookup(l types.EmbeddingLookup) Option {
	return func(cfg *Config) error {
		if l == nil {
			return errors.New("lookup cannot be nil")
		}
		cfg.Lookup = l
		cfg.open = nil
		return nil
	}
}

// WithWord2VecFile loads embeddings from a word2vec file
func WithWord2VecFile(path string, binary bool) Option {
	return func(cfg *Config) error {
		cfg.open = func(logger *slog.Logger) (types.EmbeddingLookup, error) {
			table, err := word2vec.Load(path, word2vec.Options{Binary: binary, Logger: logger})
			if err != nil {
				return nil, err
			}
			return table, nil
		}
		return nil
	}
}

// WithLookupSource opens the lookup of the given type, fetching vectors for
// vocab when the source is remote
func WithLookupSource(ctx context.Context, lookupType types.LookupType, config types.LookupConfig, vocab []string) Option {
	return func(cfg *Config) error {
		cfg.open = func(logger *slog.Logger) (types.EmbeddingLookup, error) {
			return lookup.Open(ctx, lookupType, config, vocab, logger)
		}
		return nil
	}
}

// WithMetrics selects the metrics to run by name, in the given order
func WithMetrics(names ...string) Option {
	return func(cfg *Config) error {
		if len(names) == 0 {
			return types.ErrNoMetrics
		}

		selected := make([]metrics.Metric, 0, len(names))
		for _, name := range names {
			m, err := metrics.ByName(name)
			if err != nil {
				return err
			}
			if name == metrics.NameGreedy && cfg.TokenSimilarity != nil {
				m = metrics.NewGreedyMatch(cfg.TokenSimilarity)
			}
			selected = append(selected, m)
		}
		cfg.Metrics = selected
		return nil
	}
}

// WithTokenSimilarity sets the word similarity used by greedy matching
func WithTokenSimilarity(sim similarity.SimilarityFunc) Option {
	return func(cfg *Config) error {
		if sim == nil {
			return errors.New("token similarity cannot be nil")
		}
		cfg.TokenSimilarity = sim
		for i, m := range cfg.Metrics {
			if m.Name() == metrics.NameGreedy {
				cfg.Metrics[i] = metrics.NewGreedyMatch(sim)
			}
		}
		return nil
	}
}

// WithWorkers sets the number of sentence pairs scored concurrently
func WithWorkers(n int) Option {
	return func(cfg *Config) error {
		if n <= 0 {
			return fmt.Errorf("workers must be positive, got %d", n)
		}
		cfg.Workers = n
		return nil
	}
}

// WithLogger sets the structured logger
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *Config) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.Logger = logger
		return nil
	}
}
