package similarity

import (
	"fmt"

	"github.com/botirk38/embedscore/types"
)

// Registered similarity names.
const (
	NameCosine    = "cosine"
	NameDot       = "dot"
	NameEuclidean = "euclidean"
	NameManhattan = "manhattan"
	NamePearson   = "pearson"
)

var registry = map[string]SimilarityFunc{
	NameCosine:    CosineSimilarity,
	NameDot:       DotProductSimilarity,
	NameEuclidean: EuclideanSimilarity,
	NameManhattan: ManhattanSimilarity,
	NamePearson:   PearsonCorrelationSimilarity,
}

// Names lists the registered similarity functions in a stable order.
func Names() []string {
	return []string{NameCosine, NameDot, NameEuclidean, NameManhattan, NamePearson}
}

// ByName resolves a similarity function by its registered name.
func ByName(name string) (SimilarityFunc, error) {
	fn, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownSimilarity, name)
	}
	return fn, nil
}
