// Package llm provides text-generation clients for external AI services.
package llm

import (
	"context"
	"errors"
)

// Params tune a single generation call.
type Params struct {
	MaxTokens   int
	Temperature float32
}

// Client is the narrow contract the review and debate engines depend on.
type Client interface {
	// Generate produces text for the prompt. It must honor ctx cancellation.
	Generate(ctx context.Context, prompt string, params Params) (string, error)
}

// Sentinel errors for client construction and calls.
var (
	// ErrNoAPIKey means no provider credentials are configured. Callers
	// should run in fallback mode rather than surface this.
	ErrNoAPIKey = errors.New("llm: no API key configured")

	// ErrEmptyResponse means the service answered with no usable text.
	ErrEmptyResponse = errors.New("llm: empty response")
)
