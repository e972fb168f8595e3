// Package inmemory provides a map-backed embedding lookup.
package inmemory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/botirk38/embedscore/types"
)

// Table implements types.EmbeddingLookup over an in-memory map.
// A Table is filled with Add and then only read; reads are safe for concurrent use.
type Table struct {
	mu      *sync.RWMutex
	dim     int
	vectors map[string]types.Vector
}

// NewTable creates an empty table for vectors of the given dimensionality.
func NewTable(dim int) *Table {
	return &Table{
		mu:      &sync.RWMutex{},
		dim:     dim,
		vectors: make(map[string]types.Vector),
	}
}

// Add stores the vector for token. The first vector stored for a token wins;
// later ones are ignored and reported with added == false.
func (t *Table) Add(token string, vec types.Vector) (added bool, err error) {
	if len(vec) != t.dim {
		return false, fmt.Errorf("%w: token %q has %d values, want %d", types.ErrDimensionMismatch, token, len(vec), t.dim)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.vectors[token]; exists {
		return false, nil
	}
	t.vectors[token] = vec
	return true, nil
}

// Contains reports whether token has a vector.
func (t *Table) Contains(token string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()

	_, ok := t.vectors[token]
	return ok
}

// VectorOf returns the vector for token, or nil when it is absent.
func (t *Table) VectorOf(token string) types.Vector {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return t.vectors[token]
}

// Dim returns the dimensionality of the table.
func (t *Table) Dim() int {
	return t.dim
}

// Len returns the number of tokens in the table.
func (t *Table) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.vectors)
}

// Tokens returns all tokens in sorted order.
func (t *Table) Tokens() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	tokens := make([]string, 0, len(t.vectors))
	for tok := range t.vectors {
		tokens = append(tokens, tok)
	}
	sort.Strings(tokens)
	return tokens
}
