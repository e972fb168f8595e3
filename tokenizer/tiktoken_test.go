package tokenizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTiktokenCounter(t *testing.T) {
	counter, err := NewOpenAICounter()
	require.NoError(t, err)

	tests := []struct {
		name    string
		text    string
		wantMin int
		wantMax int
	}{
		{name: "empty string", text: "", wantMin: 0, wantMax: 0},
		{name: "single word", text: "computer", wantMin: 1, wantMax: 2},
		{name: "sentence", text: "This is a longer piece of text that should have more tokens.", wantMin: 10, wantMax: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := counter.CountTokens(tt.text)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, count, tt.wantMin)
			assert.LessOrEqual(t, count, tt.wantMax)
		})
	}
}
