// Package genai isolates the external text-generation capability behind a
// small interface so providers can be swapped or mocked. One prompt in, one
// text completion out; no streaming.
package genai

import (
	"context"
	"errors"
)

var (
	ErrTimeout       = errors.New("GENAI_TIMEOUT")
	ErrCallFailed    = errors.New("GENAI_CALL_FAILED")
	ErrEmptyResponse = errors.New("GENAI_EMPTY_RESPONSE")
	ErrNoAPIKey      = errors.New("GENAI_NO_API_KEY")
)

// Client is a single-round-trip text-generation capability.
type Client interface {
	// GenerateText submits the prompt and returns the completion text.
	// The call honors ctx for cancellation and deadlines.
	GenerateText(ctx context.Context, prompt string) (string, error)
	// Provider names the backing service, for logs and metrics.
	Provider() string
}
