// Package chunker splits a vocabulary into request batches for embedding providers.
package chunker

import (
	"fmt"

	"github.com/botirk38/embedscore/tokenizer"
)

// BatchConfig holds the request limits of an embedding provider.
type BatchConfig struct {
	// MaxTokens is the largest total model token count of one request.
	// Default: 8191 (OpenAI text-embedding-3-small input limit)
	MaxTokens int

	// MaxInputs is the largest number of vocabulary entries in one request.
	// Default: 2048 (OpenAI embeddings input array limit)
	MaxInputs int
}

// Batch is one provider request worth of vocabulary entries.
type Batch struct {
	// Tokens are the vocabulary entries of this batch, in input order
	Tokens []string

	// TokenCount is the total model token count of Tokens
	TokenCount int

	// Index is the batch's position in the sequence (0-based)
	Index int
}

// DefaultBatchConfig returns limits suitable for OpenAI embeddings.
func DefaultBatchConfig() BatchConfig {
	return BatchConfig{
		MaxTokens: 8191,
		MaxInputs: 2048,
	}
}

// GeminiBatchConfig returns limits suitable for Gemini batch embeddings.
func GeminiBatchConfig() BatchConfig {
	return BatchConfig{
		MaxTokens: 20000,
		MaxInputs: 100,
	}
}

// Validate checks if the batch configuration is valid.
func (c BatchConfig) Validate() error {
	if c.MaxTokens <= 0 {
		return ErrInvalidMaxTokens
	}
	if c.MaxInputs <= 0 {
		return ErrInvalidMaxInputs
	}
	return nil
}

// Batcher packs vocabulary entries into batches within a BatchConfig.
type Batcher struct {
	config  BatchConfig
	counter tokenizer.Counter
}

// NewBatcher creates a Batcher that sizes entries with counter.
func NewBatcher(config BatchConfig, counter tokenizer.Counter) (*Batcher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid batch config: %w", err)
	}
	if counter == nil {
		return nil, ErrNilCounter
	}
	return &Batcher{config: config, counter: counter}, nil
}

// Split packs tokens greedily, in order, into batches that respect both limits.
// An empty vocabulary yields no batches.
func (b *Batcher) Split(tokens []string) ([]Batch, error) {
	var (
		batches []Batch
		current Batch
	)

	flush := func() {
		if len(current.Tokens) == 0 {
			return
		}
		current.Index = len(batches)
		batches = append(batches, current)
		current = Batch{}
	}

	for _, tok := range tokens {
		n, err := b.counter.CountTokens(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTokenizerFailed, err)
		}
		if n > b.config.MaxTokens {
			return nil, fmt.Errorf("%w: %q has %d tokens", ErrTokenTooLarge, tok, n)
		}

		if len(current.Tokens) >= b.config.MaxInputs || current.TokenCount+n > b.config.MaxTokens {
			flush()
		}
		current.Tokens = append(current.Tokens, tok)
		current.TokenCount += n
	}
	flush()

	return batches, nil
}
