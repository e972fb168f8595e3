package cached

import (
	"context"
	"errors"
	"testing"

	"github.com/botirk38/embedscore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingProvider embeds a token as {len(token)} and records every request.
type countingProvider struct {
	requests [][]string
	err      error
	closed   bool
}

func (p *countingProvider) Name() string { return "counting" }

func (p *countingProvider) EmbedTokens(_ context.Context, tokens []string) ([]types.Vector, error) {
	if p.err != nil {
		return nil, p.err
	}
	p.requests = append(p.requests, append([]string(nil), tokens...))
	vectors := make([]types.Vector, len(tokens))
	for i, tok := range tokens {
		vectors[i] = types.Vector{float32(len(tok))}
	}
	return vectors, nil
}

func (p *countingProvider) Close() error {
	p.closed = true
	return nil
}

func TestLRUProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards only misses", func(t *testing.T) {
		inner := &countingProvider{}
		p, err := NewLRUProvider(inner, 10)
		require.NoError(t, err)

		got, err := p.EmbedTokens(ctx, []string{"a", "bb"})
		require.NoError(t, err)
		assert.Equal(t, []types.Vector{{1}, {2}}, got)

		got, err = p.EmbedTokens(ctx, []string{"bb", "ccc", "a"})
		require.NoError(t, err)
		assert.Equal(t, []types.Vector{{2}, {3}, {1}}, got)

		assert.Equal(t, [][]string{{"a", "bb"}, {"ccc"}}, inner.requests)
		hits, misses := p.Stats()
		assert.Equal(t, 2, hits)
		assert.Equal(t, 3, misses)
		assert.Equal(t, 3, p.Len())
	})

	t.Run("duplicate tokens in one call", func(t *testing.T) {
		inner := &countingProvider{}
		p, err := NewLRUProvider(inner, 10)
		require.NoError(t, err)

		got, err := p.EmbedTokens(ctx, []string{"x", "x", "yy"})
		require.NoError(t, err)
		assert.Equal(t, []types.Vector{{1}, {1}, {2}}, got)
		assert.Equal(t, [][]string{{"x", "yy"}}, inner.requests)
	})

	t.Run("eviction", func(t *testing.T) {
		inner := &countingProvider{}
		p, err := NewLRUProvider(inner, 1)
		require.NoError(t, err)

		_, err = p.EmbedTokens(ctx, []string{"a"})
		require.NoError(t, err)
		_, err = p.EmbedTokens(ctx, []string{"b"})
		require.NoError(t, err)
		_, err = p.EmbedTokens(ctx, []string{"a"})
		require.NoError(t, err)
		assert.Len(t, inner.requests, 3)
	})

	t.Run("provider error", func(t *testing.T) {
		boom := errors.New("boom")
		p, err := NewLRUProvider(&countingProvider{err: boom}, 10)
		require.NoError(t, err)

		_, err = p.EmbedTokens(ctx, []string{"a"})
		assert.ErrorIs(t, err, boom)
		assert.Equal(t, 0, p.Len())
	})

	t.Run("invalid capacity", func(t *testing.T) {
		_, err := NewLRUProvider(&countingProvider{}, -1)
		assert.Error(t, err)
	})

	t.Run("close", func(t *testing.T) {
		inner := &countingProvider{}
		p, err := NewLRUProvider(inner, 0)
		require.NoError(t, err)
		assert.Equal(t, "counting", p.Name())
		require.NoError(t, p.Close())
		assert.True(t, inner.closed)
	})
}
