package inmemory

import (
	"sync"
	"testing"

	"github.com/botirk38/embedscore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable(t *testing.T) {
	t.Run("BasicOperations", func(t *testing.T) {
		table := NewTable(3)
		assert.Equal(t, 3, table.Dim())
		assert.Equal(t, 0, table.Len())
		assert.False(t, table.Contains("hello"))
		assert.Nil(t, table.VectorOf("hello"))

		added, err := table.Add("hello", types.Vector{0.1, 0.2, 0.3})
		require.NoError(t, err)
		assert.True(t, added)

		assert.True(t, table.Contains("hello"))
		assert.Equal(t, types.Vector{0.1, 0.2, 0.3}, table.VectorOf("hello"))
		assert.Equal(t, 1, table.Len())
	})

	t.Run("FirstVectorWins", func(t *testing.T) {
		table := NewTable(2)
		_, err := table.Add("a", types.Vector{1, 2})
		require.NoError(t, err)

		added, err := table.Add("a", types.Vector{3, 4})
		require.NoError(t, err)
		assert.False(t, added)
		assert.Equal(t, types.Vector{1, 2}, table.VectorOf("a"))
	})

	t.Run("DimensionMismatch", func(t *testing.T) {
		table := NewTable(2)
		_, err := table.Add("a", types.Vector{1, 2, 3})
		assert.ErrorIs(t, err, types.ErrDimensionMismatch)
		assert.False(t, table.Contains("a"))
	})

	t.Run("Tokens", func(t *testing.T) {
		table := NewTable(1)
		for _, tok := range []string{"c", "a", "b"} {
			_, err := table.Add(tok, types.Vector{1})
			require.NoError(t, err)
		}
		assert.Equal(t, []string{"a", "b", "c"}, table.Tokens())
	})

	t.Run("ConcurrentReads", func(t *testing.T) {
		table := NewTable(1)
		_, err := table.Add("a", types.Vector{1})
		require.NoError(t, err)

		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 100; j++ {
					assert.True(t, table.Contains("a"))
					assert.Equal(t, types.Vector{1}, table.VectorOf("a"))
				}
			}()
		}
		wg.Wait()
	})
}
