package chunker

import "errors"

// Common batcher errors
var (
	// ErrInvalidMaxTokens indicates max tokens is invalid (<=0)
	ErrInvalidMaxTokens = errors.New("max tokens must be positive")

	// ErrInvalidMaxInputs indicates max inputs is invalid (<=0)
	ErrInvalidMaxInputs = errors.New("max inputs must be positive")

	// ErrTokenTooLarge indicates a single vocabulary entry exceeds max tokens
	ErrTokenTooLarge = errors.New("vocabulary entry exceeds max tokens")

	// ErrTokenizerFailed indicates tokenization failed
	ErrTokenizerFailed = errors.New("tokenization failed")

	// ErrNilCounter indicates no token counter was supplied
	ErrNilCounter = errors.New("token counter is required")
)
