// Package cached puts an LRU cache in front of an embedding provider.
package cached

import (
	"context"
	"fmt"
	"sync"

	"github.com/botirk38/embedscore/types"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCapacity is the cache size used when none is configured.
const DefaultCapacity = 100_000

// LRUProvider implements types.Provider, forwarding only cache misses to the
// wrapped provider.
type LRUProvider struct {
	mu       *sync.Mutex
	cache    *lru.Cache[string, types.Vector]
	provider types.Provider

	hits   int
	misses int
}

// NewLRUProvider wraps provider with an LRU cache holding up to capacity vectors.
// A capacity of zero selects DefaultCapacity.
func NewLRUProvider(provider types.Provider, capacity int) (*LRUProvider, error) {
	if capacity == 0 {
		capacity = DefaultCapacity
	}
	cache, err := lru.New[string, types.Vector](capacity)
	if err != nil {
		return nil, err
	}

	return &LRUProvider{
		mu:       &sync.Mutex{},
		cache:    cache,
		provider: provider,
	}, nil
}

// Name returns the wrapped provider's name.
func (p *LRUProvider) Name() string {
	return p.provider.Name()
}

// EmbedTokens serves cached vectors and embeds the rest with one call to the
// wrapped provider. Vectors are returned in input order.
func (p *LRUProvider) EmbedTokens(ctx context.Context, tokens []string) ([]types.Vector, error) {
	vectors := make([]types.Vector, len(tokens))

	var (
		missing []string
		slots   = make(map[string][]int)
	)
	for i, tok := range tokens {
		if vec, ok := p.cache.Get(tok); ok {
			vectors[i] = vec
			continue
		}
		if _, seen := slots[tok]; !seen {
			missing = append(missing, tok)
		}
		slots[tok] = append(slots[tok], i)
	}

	p.mu.Lock()
	p.hits += len(tokens) - len(missing)
	p.misses += len(missing)
	p.mu.Unlock()

	if len(missing) == 0 {
		return vectors, nil
	}

	embedded, err := p.provider.EmbedTokens(ctx, missing)
	if err != nil {
		return nil, err
	}
	if len(embedded) != len(missing) {
		return nil, fmt.Errorf("provider %s returned %d vectors for %d tokens", p.provider.Name(), len(embedded), len(missing))
	}

	for i, tok := range missing {
		p.cache.Add(tok, embedded[i])
		for _, slot := range slots[tok] {
			vectors[slot] = embedded[i]
		}
	}
	return vectors, nil
}

// Stats returns the number of tokens served from the cache and forwarded to the provider.
func (p *LRUProvider) Stats() (hits, misses int) {
	p.mu.Lock()
	defer p.mu.Unlock()

	return p.hits, p.misses
}

// Len returns the number of cached vectors.
func (p *LRUProvider) Len() int {
	return p.cache.Len()
}

// Close purges the cache and closes the wrapped provider.
func (p *LRUProvider) Close() error {
	p.cache.Purge()
	return p.provider.Close()
}
