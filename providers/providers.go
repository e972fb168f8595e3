// Package providers builds embedding providers from a lookup configuration.
package providers

import (
	"context"
	"fmt"

	"github.com/botirk38/embedscore/providers/gemini"
	"github.com/botirk38/embedscore/providers/openai"
	"github.com/botirk38/embedscore/types"
)

// NewOpenAIProvider creates a new OpenAI provider
func NewOpenAIProvider(config openai.OpenAIConfig) (types.Provider, error) {
	return openai.NewOpenAIProvider(config)
}

// NewGeminiProvider creates a new Gemini provider
func NewGeminiProvider(ctx context.Context, config gemini.GeminiConfig) (types.Provider, error) {
	return gemini.NewGeminiProvider(ctx, config)
}

// New creates the provider named by providerType from a lookup configuration.
func New(ctx context.Context, providerType types.ProviderType, config types.LookupConfig) (types.Provider, error) {
	switch providerType {
	case types.ProviderOpenAI:
		return NewOpenAIProvider(openai.OpenAIConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			Model:      config.Model,
			Dimensions: config.Dimensions,
		})
	case types.ProviderGemini:
		return NewGeminiProvider(ctx, gemini.GeminiConfig{
			APIKey:     config.APIKey,
			BaseURL:    config.BaseURL,
			Model:      config.Model,
			Dimensions: config.Dimensions,
		})
	default:
		return nil, fmt.Errorf("%w: provider %q", types.ErrUnknownLookup, providerType)
	}
}
