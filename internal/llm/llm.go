package llm

import (
	"context"
	"errors"
)

// Completer abstracts chat-completion providers.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Embedder abstracts embedding providers.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

var (
	// ErrQuotaExceeded marks upstream quota/rate exhaustion; handlers map
	// it to 429 so callers know a retry may succeed later.
	ErrQuotaExceeded = errors.New("llm quota exceeded")

	// ErrEmptyResponse is returned when the provider answers with no content.
	ErrEmptyResponse = errors.New("empty response from llm")

	// ErrNotConfigured is returned by the placeholder client.
	ErrNotConfigured = errors.New("llm not configured")
)

// Placeholder is a stub implementation used when no provider is configured.
type Placeholder struct{}

// Complete returns ErrNotConfigured.
func (Placeholder) Complete(ctx context.Context, system, user string) (string, error) {
	_ = ctx
	_ = system
	_ = user
	return "", ErrNotConfigured
}

// Embed returns ErrNotConfigured.
func (Placeholder) Embed(ctx context.Context, text string) ([]float32, error) {
	_ = ctx
	_ = text
	return nil, ErrNotConfigured
}
