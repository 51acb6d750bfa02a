package llm

import (
	"fmt"
	"os"
	"strings"
)

// Provider names an LLM backend.
type Provider string

const (
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
)

// FromEnv builds a Client from environment variables, resolved once at
// startup. PARLEY_PROVIDER selects the backend ("openai" or "anthropic");
// when unset, whichever API key is present wins, OpenAI first.
//
// Returns ErrNoAPIKey when nothing is configured; callers should treat that
// as fallback mode, not a failure.
func FromEnv() (Client, error) {
	provider := Provider(strings.ToLower(os.Getenv("PARLEY_PROVIDER")))

	switch provider {
	case ProviderOpenAI:
		key := os.Getenv("OPENAI_API_KEY")
		if key == "" {
			return nil, ErrNoAPIKey
		}
		return NewOpenAI(key, os.Getenv("OPENAI_MODEL")), nil

	case ProviderAnthropic:
		key := os.Getenv("ANTHROPIC_API_KEY")
		if key == "" {
			return nil, ErrNoAPIKey
		}
		return NewAnthropic(key, os.Getenv("ANTHROPIC_MODEL")), nil

	case "":
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return NewOpenAI(key, os.Getenv("OPENAI_MODEL")), nil
		}
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			return NewAnthropic(key, os.Getenv("ANTHROPIC_MODEL")), nil
		}
		return nil, ErrNoAPIKey

	default:
		return nil, fmt.Errorf("llm: unsupported provider %q (supported: openai, anthropic)", provider)
	}
}
