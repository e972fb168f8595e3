// Package tokenizer counts model tokens so provider requests can be sized.
package tokenizer

import (
	"fmt"

	"github.com/tiktoken-go/tokenizer"
)

// Counter counts the model tokens in a piece of text.
type Counter interface {
	CountTokens(text string) (int, error)
}

// TiktokenCounter counts tokens with a tiktoken encoding.
type TiktokenCounter struct {
	codec tokenizer.Codec
}

// NewTiktokenCounter creates a counter for the given encoding.
func NewTiktokenCounter(encoding tokenizer.Encoding) (*TiktokenCounter, error) {
	codec, err := tokenizer.Get(encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize tokenizer: %w", err)
	}
	return &TiktokenCounter{codec: codec}, nil
}

// NewOpenAICounter returns a counter using cl100k_base, the encoding of the
// OpenAI text-embedding-3 models. This is a local operation with no API call.
func NewOpenAICounter() (*TiktokenCounter, error) {
	return NewTiktokenCounter(tokenizer.Cl100kBase)
}

// CountTokens returns the number of tokens in text.
func (c *TiktokenCounter) CountTokens(text string) (int, error) {
	if text == "" {
		return 0, nil
	}

	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return 0, err
	}
	return len(ids), nil
}
