// Package lookup opens the embedding source selected by a types.LookupType and
// returns it as a read-only types.EmbeddingLookup.
package lookup

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/botirk38/embedscore/chunker"
	"github.com/botirk38/embedscore/lookup/cached"
	"github.com/botirk38/embedscore/lookup/inmemory"
	"github.com/botirk38/embedscore/lookup/remote"
	"github.com/botirk38/embedscore/lookup/word2vec"
	"github.com/botirk38/embedscore/providers"
	"github.com/botirk38/embedscore/tokenizer"
	"github.com/botirk38/embedscore/types"
)

var ErrUnsupportedLookup = fmt.Errorf("%w: unsupported lookup type", types.ErrUnknownLookup)

// Open loads the embeddings for vocab from the configured source. Sources that
// can only be queried per token (Redis, providers) are fetched up front into an
// in-memory table, so scoring never touches the network.
func Open(ctx context.Context, lookupType types.LookupType, config types.LookupConfig, vocab []string, logger *slog.Logger) (types.EmbeddingLookup, error) {
	if logger == nil {
		logger = slog.Default()
	}

	var (
		table *inmemory.Table
		err   error
	)
	switch lookupType {
	case types.LookupWord2Vec:
		table, err = word2vec.Load(config.Path, word2vec.Options{
			Binary: config.Binary,
			Limit:  config.Limit,
			Logger: logger,
		})
	case types.LookupRedis:
		table, err = OpenRedis(ctx, config, vocab, logger)
	case types.LookupOpenAI:
		table, err = OpenProvider(ctx, types.ProviderOpenAI, config, vocab, chunker.DefaultBatchConfig(), logger)
	case types.LookupGemini:
		table, err = OpenProvider(ctx, types.ProviderGemini, config, vocab, chunker.GeminiBatchConfig(), logger)
	default:
		err = fmt.Errorf("%w: %q", ErrUnsupportedLookup, lookupType)
	}
	if err != nil {
		return nil, err
	}
	return table, nil
}

// OpenRedis loads the vectors of vocab from a Redis store.
func OpenRedis(ctx context.Context, config types.LookupConfig, vocab []string, logger *slog.Logger) (*inmemory.Table, error) {
	store, err := remote.NewStore(ctx, config, logger)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrLookupLoad, err)
	}
	defer func() { _ = store.Close() }()

	return store.Load(ctx, vocab)
}

// OpenProvider embeds vocab with a cached embedding provider.
func OpenProvider(ctx context.Context, providerType types.ProviderType, config types.LookupConfig, vocab []string, batchConfig chunker.BatchConfig, logger *slog.Logger) (*inmemory.Table, error) {
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	provider, err := providers.New(ctx, providerType, config)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrLookupLoad, err)
	}
	cache, err := cached.NewLRUProvider(provider, config.CacheSize)
	if err != nil {
		_ = provider.Close()
		return nil, err
	}
	defer func() { _ = cache.Close() }()

	counter, err := tokenizer.NewOpenAICounter()
	if err != nil {
		return nil, err
	}
	batcher, err := chunker.NewBatcher(batchConfig, counter)
	if err != nil {
		return nil, err
	}

	return Prefetch(ctx, cache, vocab, batcher, logger)
}

// Prefetch embeds vocab in the batches produced by batcher and collects the
// vectors into an in-memory table. Every vector must have the same length.
func Prefetch(ctx context.Context, provider types.Provider, vocab []string, batcher *chunker.Batcher, logger *slog.Logger) (*inmemory.Table, error) {
	if logger == nil {
		logger = slog.Default()
	}

	batches, err := batcher.Split(vocab)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrLookupLoad, err)
	}

	var table *inmemory.Table
	for _, batch := range batches {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		vectors, err := provider.EmbedTokens(ctx, batch.Tokens)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil, err
			}
			return nil, fmt.Errorf("%w: %s batch %d: %w", types.ErrLookupLoad, provider.Name(), batch.Index, err)
		}
		if len(vectors) != len(batch.Tokens) {
			return nil, fmt.Errorf("%w: %s returned %d vectors for %d tokens", types.ErrLookupLoad, provider.Name(), len(vectors), len(batch.Tokens))
		}

		for i, tok := range batch.Tokens {
			if table == nil {
				table = inmemory.NewTable(len(vectors[i]))
			}
			if _, err := table.Add(tok, vectors[i]); err != nil {
				return nil, fmt.Errorf("%w: %w", types.ErrLookupLoad, err)
			}
		}
		logger.Debug("embedded batch", "provider", provider.Name(), "batch", batch.Index, "tokens", len(batch.Tokens), "model_tokens", batch.TokenCount)
	}

	if table == nil {
		table = inmemory.NewTable(0)
	}
	logger.Info("embedded vocabulary", "provider", provider.Name(), "tokens", table.Len(), "dim", table.Dim())
	return table, nil
}
