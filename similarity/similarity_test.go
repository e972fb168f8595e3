package similarity

import (
	"math"
	"testing"

	"github.com/botirk38/embedscore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test similarity functions with known vectors
func TestSimilarityFunctions(t *testing.T) {
	vec1 := []float64{1, 0, 0}
	vec2 := []float64{0, 1, 0}
	vec3 := []float64{1, 0, 0} // Same as vec1

	t.Run("CosineSimilarity", func(t *testing.T) {
		assert.Equal(t, 0.0, CosineSimilarity(vec1, vec2), "orthogonal vectors")
		assert.InDelta(t, 1.0, CosineSimilarity(vec1, vec3), 1e-12, "identical vectors")

		assert.Equal(t, 0.0, CosineSimilarity([]float64{}, []float64{}), "empty vectors")
		assert.Equal(t, 0.0, CosineSimilarity(vec1, []float64{1, 0}), "different lengths")
		assert.Equal(t, 0.0, CosineSimilarity(vec1, []float64{0, 0, 0}), "zero vector")
	})

	t.Run("CosineSimilarityKnownValues", func(t *testing.T) {
		identity := []float64{1, 2, 3}
		negated := []float64{-1, -2, -3}
		orthogonal := []float64{4, 1, -2}

		assert.InDelta(t, 1.0, CosineSimilarity(identity, identity), 1e-12)
		assert.InDelta(t, -1.0, CosineSimilarity(identity, negated), 1e-12)
		assert.InDelta(t, 0.0, CosineSimilarity(identity, orthogonal), 1e-12)
	})

	t.Run("CosineSimilarityOfUnitVectors", func(t *testing.T) {
		a := Normalize([]float64{3, 4, 0})
		b := Normalize([]float64{4, 3, 0})
		assert.InDelta(t, 24.0/25.0, CosineSimilarity(a, b), 1e-12)
		assert.InDelta(t, DotProductSimilarity(a, b), CosineSimilarity(a, b), 1e-12)
	})

	t.Run("DotProductSimilarity", func(t *testing.T) {
		assert.Equal(t, 0.0, DotProductSimilarity(vec1, vec2))
		assert.Equal(t, 1.0, DotProductSimilarity(vec1, vec3))
		assert.Equal(t, 0.0, DotProductSimilarity(vec1, []float64{1}))
	})

	t.Run("EuclideanSimilarity", func(t *testing.T) {
		assert.Equal(t, 1.0, EuclideanSimilarity(vec1, vec3), "identical vectors")
		assert.InDelta(t, 1/(1+math.Sqrt2), EuclideanSimilarity(vec1, vec2), 1e-12)
		assert.InDelta(t, 1.0/6.0, EuclideanSimilarity([]float64{0, 0}, []float64{3, 4}), 1e-12)
		assert.Equal(t, 0.0, EuclideanSimilarity(vec1, []float64{1}))
		assert.Equal(t, 0.0, EuclideanSimilarity(nil, nil))
	})

	t.Run("ManhattanSimilarity", func(t *testing.T) {
		assert.Equal(t, 1.0, ManhattanSimilarity(vec1, vec3))
		assert.InDelta(t, 1.0/3.0, ManhattanSimilarity(vec1, vec2), 1e-12)
		assert.InDelta(t, 1.0/8.0, ManhattanSimilarity([]float64{0, 0}, []float64{3, -4}), 1e-12)
		assert.Equal(t, 0.0, ManhattanSimilarity(vec1, []float64{1}))
	})

	t.Run("PearsonCorrelationSimilarity", func(t *testing.T) {
		assert.InDelta(t, 1.0, PearsonCorrelationSimilarity([]float64{1, 2, 3}, []float64{2, 4, 6}), 1e-12)
		assert.InDelta(t, -1.0, PearsonCorrelationSimilarity([]float64{1, 2, 3}, []float64{3, 2, 1}), 1e-12)
		assert.InDelta(t, -0.5, PearsonCorrelationSimilarity(vec1, vec2), 1e-12)
		assert.Equal(t, 0.0, PearsonCorrelationSimilarity([]float64{1, 1, 1}, []float64{1, 2, 3}), "constant vector")
		assert.Equal(t, 0.0, PearsonCorrelationSimilarity(vec1, []float64{1}))
	})
}

func TestByName(t *testing.T) {
	a := []float64{1, 2, 3}
	b := []float64{3, 1, 2}
	want := map[string]SimilarityFunc{
		NameCosine:    CosineSimilarity,
		NameDot:       DotProductSimilarity,
		NameEuclidean: EuclideanSimilarity,
		NameManhattan: ManhattanSimilarity,
		NamePearson:   PearsonCorrelationSimilarity,
	}
	require.Len(t, Names(), len(want))

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			fn, err := ByName(name)
			require.NoError(t, err)
			assert.Equal(t, want[name](a, b), fn(a, b))
		})
	}

	_, err := ByName("jaccard")
	assert.ErrorIs(t, err, types.ErrUnknownSimilarity)
}

func TestVectorHelpers(t *testing.T) {
	t.Run("Norm", func(t *testing.T) {
		assert.InDelta(t, 5.0, Norm([]float64{3, 4}), 1e-12)
		assert.Equal(t, 0.0, Norm(nil))
	})

	t.Run("FrobeniusNorm", func(t *testing.T) {
		assert.Equal(t, 0.0, FrobeniusNorm(nil))
		assert.InDelta(t, math.Sqrt(30), FrobeniusNorm([][]float64{{1, 2}, {3, 4}}), 1e-12)
	})

	t.Run("IsNearZero", func(t *testing.T) {
		assert.True(t, IsNearZero(0))
		assert.True(t, IsNearZero(1e-12))
		assert.False(t, IsNearZero(1e-10))
	})

	t.Run("Sum", func(t *testing.T) {
		assert.Equal(t, []float64{0, 0, 0}, Sum(3, nil))
		assert.Equal(t, []float64{4, 6}, Sum(2, [][]float64{{1, 2}, {3, 4}}))
	})

	t.Run("Normalize", func(t *testing.T) {
		unit := Normalize([]float64{3, 4})
		assert.InDelta(t, 1.0, Norm(unit), 1e-12)
		assert.Equal(t, []float64{0, 0}, Normalize([]float64{0, 0}))
	})

	t.Run("ToFloat64", func(t *testing.T) {
		assert.Equal(t, []float64{1, -0.5}, ToFloat64([]float32{1, -0.5}))
	})
}

func TestExtrema(t *testing.T) {
	t.Run("known vectors", func(t *testing.T) {
		got := Extrema([][]float64{
			{1, 2, 3},
			{2, -3, -2},
		})
		require.Len(t, got, 3)
		assert.InDeltaSlice(t, []float64{2, -3, 3}, got, 1e-12)
	})

	t.Run("max wins exact ties", func(t *testing.T) {
		got := Extrema([][]float64{{2}, {-2}})
		assert.Equal(t, []float64{2}, got)
	})

	t.Run("all negative column", func(t *testing.T) {
		got := Extrema([][]float64{{-1}, {-4}})
		assert.Equal(t, []float64{-4}, got)
	})

	t.Run("single vector", func(t *testing.T) {
		got := Extrema([][]float64{{0.5, -0.25}})
		assert.Equal(t, []float64{0.5, -0.25}, got)
	})

	t.Run("order independent", func(t *testing.T) {
		a := Extrema([][]float64{{1, -5}, {3, 2}, {-4, 0}})
		b := Extrema([][]float64{{-4, 0}, {1, -5}, {3, 2}})
		assert.Equal(t, a, b)
	})

	t.Run("empty", func(t *testing.T) {
		assert.Nil(t, Extrema(nil))
	})
}
