package providers

import (
	"context"
	"testing"

	"github.com/botirk38/embedscore/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx := context.Background()
	config := types.LookupConfig{APIKey: "test-key", Model: "custom-model"}

	p, err := New(ctx, types.ProviderOpenAI, config)
	require.NoError(t, err)
	assert.Equal(t, "openai/custom-model", p.Name())

	p, err = New(ctx, types.ProviderGemini, config)
	require.NoError(t, err)
	assert.Equal(t, "gemini/custom-model", p.Name())

	_, err = New(ctx, "cohere", config)
	assert.ErrorIs(t, err, types.ErrUnknownLookup)
}
