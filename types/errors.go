package types

import "errors"

// Errors shared across the scoring packages.
var (
	// ErrCorpusLengthMismatch indicates hypothesis and reference corpora have different sentence counts
	ErrCorpusLengthMismatch = errors.New("hypothesis and reference corpora differ in length")

	// ErrLookupLoad indicates an embedding source could not be read or parsed
	ErrLookupLoad = errors.New("failed to load embeddings")

	// ErrEmptyScoreSequence indicates every sentence was skipped, leaving nothing to aggregate
	ErrEmptyScoreSequence = errors.New("no sentence scores to aggregate")

	// ErrDimensionMismatch indicates a vector does not match the lookup dimensionality
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrUnknownMetric indicates a metric name that is not registered
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrUnknownSimilarity indicates a similarity function name that is not registered
	ErrUnknownSimilarity = errors.New("unknown similarity function")

	// ErrUnknownLookup indicates an unsupported lookup type
	ErrUnknownLookup = errors.New("unsupported lookup type")

	// ErrNoMetrics indicates no metric was selected
	ErrNoMetrics = errors.New("no metrics specified")
)
