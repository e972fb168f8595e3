// Package openai embeds vocabulary tokens with the OpenAI embeddings API.
package openai

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/botirk38/embedscore/types"
	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const (
	DefaultOpenAIModel = openai.EmbeddingModelTextEmbedding3Small
)

// OpenAIProvider uses OpenAI's API to embed tokens.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	dimensions int
}

// OpenAIConfig provides configuration options for OpenAI embedding provider
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	OrgID   string
	Model   string
	// Dimensions shortens the returned vectors; 0 keeps the model default.
	Dimensions int
}

// NewOpenAIProvider creates an embedding provider for OpenAI.
// If APIKey is empty, it uses os.Getenv("OPENAI_API_KEY").
func NewOpenAIProvider(config OpenAIConfig) (*OpenAIProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			return nil, errors.New("OpenAI API key is required")
		}
	}
	if config.Dimensions < 0 {
		return nil, fmt.Errorf("invalid dimensions %d", config.Dimensions)
	}

	model := config.Model
	if model == "" {
		model = string(DefaultOpenAIModel)
	}

	opts := []option.RequestOption{option.WithAPIKey(apiKey)}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.OrgID != "" {
		opts = append(opts, option.WithOrganization(config.OrgID))
	}

	client := openai.NewClient(opts...)
	return &OpenAIProvider{client: &client, model: model, dimensions: config.Dimensions}, nil
}

// Name returns "openai/<model>".
func (p *OpenAIProvider) Name() string {
	return "openai/" + p.model
}

// EmbedTokens sends one embedding request for all tokens and returns the
// vectors in input order.
func (p *OpenAIProvider) EmbedTokens(ctx context.Context, tokens []string) ([]types.Vector, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(p.model),
		Input: openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: tokens,
		},
	}
	if p.dimensions > 0 {
		params.Dimensions = openai.Int(int64(p.dimensions))
	}

	resp, err := p.client.Embeddings.New(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("openai embeddings request failed: %w", err)
	}
	if len(resp.Data) != len(tokens) {
		return nil, fmt.Errorf("openai returned %d embeddings for %d tokens", len(resp.Data), len(tokens))
	}

	// OpenAI returns []float64 tagged with the input index
	vectors := make([]types.Vector, len(tokens))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("openai returned embedding index %d out of range", d.Index)
		}
		vec := make(types.Vector, len(d.Embedding))
		for i, v := range d.Embedding {
			vec[i] = float32(v)
		}
		vectors[d.Index] = vec
	}
	return vectors, nil
}

// Close is a no-op; the HTTP client needs no cleanup.
func (p *OpenAIProvider) Close() error {
	return nil
}
