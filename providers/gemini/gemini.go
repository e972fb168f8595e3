// Package gemini embeds vocabulary tokens with the Gemini embeddings API.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/botirk38/embedscore/types"
	"google.golang.org/genai"
)

const (
	DefaultGeminiModel = "text-embedding-004"
)

// GeminiProvider uses the Gemini API to embed tokens.
type GeminiProvider struct {
	client     *genai.Client
	model      string
	dimensions int32
}

// GeminiConfig provides configuration options for the Gemini embedding provider
type GeminiConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	// Dimensions truncates the returned vectors; 0 keeps the model default.
	Dimensions int
}

// NewGeminiProvider creates an embedding provider for Gemini.
// If APIKey is empty, GEMINI_API_KEY and then GOOGLE_API_KEY are used.
func NewGeminiProvider(ctx context.Context, config GeminiConfig) (*GeminiProvider, error) {
	apiKey := config.APIKey
	if apiKey == "" {
		apiKey = os.Getenv("GEMINI_API_KEY")
	}
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}
	if apiKey == "" {
		return nil, errors.New("Gemini API key is required")
	}
	if config.Dimensions < 0 {
		return nil, fmt.Errorf("invalid dimensions %d", config.Dimensions)
	}

	model := config.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiProvider{
		client:     client,
		model:      model,
		dimensions: int32(config.Dimensions),
	}, nil
}

// Name returns "gemini/<model>".
func (p *GeminiProvider) Name() string {
	return "gemini/" + p.model
}

// EmbedTokens embeds each token as its own content and returns the vectors in input order.
func (p *GeminiProvider) EmbedTokens(ctx context.Context, tokens []string) ([]types.Vector, error) {
	if len(tokens) == 0 {
		return nil, nil
	}

	contents := make([]*genai.Content, len(tokens))
	for i, tok := range tokens {
		contents[i] = genai.NewContentFromText(tok, genai.RoleUser)
	}

	var config *genai.EmbedContentConfig
	if p.dimensions > 0 {
		config = &genai.EmbedContentConfig{OutputDimensionality: &p.dimensions}
	}

	resp, err := p.client.Models.EmbedContent(ctx, p.model, contents, config)
	if err != nil {
		return nil, fmt.Errorf("gemini embeddings request failed: %w", err)
	}
	if len(resp.Embeddings) != len(tokens) {
		return nil, fmt.Errorf("gemini returned %d embeddings for %d tokens", len(resp.Embeddings), len(tokens))
	}

	vectors := make([]types.Vector, len(tokens))
	for i, e := range resp.Embeddings {
		if e == nil {
			return nil, fmt.Errorf("gemini returned no embedding for %q", tokens[i])
		}
		vectors[i] = e.Values
	}
	return vectors, nil
}

// Close is a no-op; the genai client holds no resources that need releasing.
func (p *GeminiProvider) Close() error {
	return nil
}
