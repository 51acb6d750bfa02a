package llm

import (
	"errors"
	"testing"
)

func TestFromEnvNoKeys(t *testing.T) {
	t.Setenv("PARLEY_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")

	_, err := FromEnv()
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestFromEnvExplicitProvider(t *testing.T) {
	t.Setenv("PARLEY_PROVIDER", "anthropic")
	t.Setenv("ANTHROPIC_API_KEY", "test-key")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if _, ok := c.(*Anthropic); !ok {
		t.Errorf("expected *Anthropic, got %T", c)
	}
}

func TestFromEnvExplicitProviderMissingKey(t *testing.T) {
	t.Setenv("PARLEY_PROVIDER", "openai")
	t.Setenv("OPENAI_API_KEY", "")

	_, err := FromEnv()
	if !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestFromEnvAutoDetectPrefersOpenAI(t *testing.T) {
	t.Setenv("PARLEY_PROVIDER", "")
	t.Setenv("OPENAI_API_KEY", "test-key")
	t.Setenv("ANTHROPIC_API_KEY", "also-set")

	c, err := FromEnv()
	if err != nil {
		t.Fatalf("FromEnv: %v", err)
	}
	if _, ok := c.(*OpenAI); !ok {
		t.Errorf("expected *OpenAI, got %T", c)
	}
}

func TestFromEnvUnknownProvider(t *testing.T) {
	t.Setenv("PARLEY_PROVIDER", "cohere")

	_, err := FromEnv()
	if err == nil || errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected unsupported provider error, got %v", err)
	}
}
