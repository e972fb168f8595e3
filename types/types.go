package types

import (
	"context"
	"time"
)

// Vector is a single word embedding. Every vector served by one lookup has the same length.
type Vector = []float32

// Sentence is an ordered sequence of tokens.
type Sentence = []string

// Corpus is an ordered sequence of sentences. Hypothesis and reference corpora are
// paired by index, not by content.
type Corpus = []Sentence

// EmbeddingLookup defines the read-only token to vector mapping the metrics consume.
// Implementations must be safe for concurrent readers.
type EmbeddingLookup interface {
	// Contains reports whether the token has an embedding
	Contains(token string) bool

	// VectorOf returns the embedding for a token. Only called when Contains is true.
	VectorOf(token string) Vector

	// Dim returns the dimensionality of every vector in the lookup
	Dim() int
}

// Provider turns tokens into embeddings, typically through a remote API.
type Provider interface {
	// Name identifies the provider in logs and reports.
	Name() string
	// EmbedTokens returns one vector per token, in the order given.
	EmbedTokens(ctx context.Context, tokens []string) ([]Vector, error)
	// Close frees any resources held by the provider.
	Close() error
}

// Summary is the corpus-level result of a metric.
type Summary struct {
	Mean   float64 `json:"mean"`
	CI95   float64 `json:"ci95"`
	StdDev float64 `json:"stddev"`
	// Count is the number of sentence scores that were aggregated
	Count int `json:"count"`
}

// SentenceScore is the score of one hypothesis/reference pair.
type SentenceScore struct {
	Index   int     `json:"index"`
	Score   float64 `json:"score"`
	Skipped bool    `json:"skipped,omitempty"`
}

// Report holds the per-sentence scores and the summary of one metric over a corpus pair.
type Report struct {
	Metric  string          `json:"metric"`
	Scores  []SentenceScore `json:"scores"`
	Summary Summary         `json:"summary"`
}

// Values returns the scores of the sentences that were not skipped, in index order.
func (r Report) Values() []float64 {
	values := make([]float64, 0, len(r.Scores))
	for _, s := range r.Scores {
		if !s.Skipped {
			values = append(values, s.Score)
		}
	}
	return values
}

// LookupConfig provides configuration options for embedding lookups
type LookupConfig struct {
	// For word2vec files
	Path   string
	Binary bool
	Limit  int

	// For Redis
	ConnectionString string
	Username         string
	Password         string
	Database         int
	Prefix           string

	// For embedding providers
	APIKey     string
	BaseURL    string
	Model      string
	Dimensions int
	CacheSize  int
	Timeout    time.Duration
}

// LookupType represents the source of embeddings
type LookupType string

const (
	LookupWord2Vec LookupType = "word2vec"
	LookupRedis    LookupType = "redis"
	LookupOpenAI   LookupType = "openai"
	LookupGemini   LookupType = "gemini"
)

// ProviderType represents the type of embedding provider
type ProviderType string

const (
	ProviderOpenAI ProviderType = "openai"
	ProviderGemini ProviderType = "gemini"
)
