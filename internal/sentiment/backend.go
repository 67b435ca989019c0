package sentiment

import (
	"context"
	"fmt"
	"strings"
	"time"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// BackendConfig selects and configures the LLM used for scoring.
type BackendConfig struct {
	Provider     string
	GeminiAPIKey string
	GeminiModel  string
	OpenAIAPIKey string
	OpenAIModel  string
	Timeout      time.Duration
}

// Credential returns the API key of the selected backend.
func (c BackendConfig) Credential() string {
	if c.provider() == ProviderOpenAI {
		return strings.TrimSpace(c.OpenAIAPIKey)
	}
	return strings.TrimSpace(c.GeminiAPIKey)
}

func (c BackendConfig) provider() string {
	if strings.EqualFold(strings.TrimSpace(c.Provider), ProviderOpenAI) {
		return ProviderOpenAI
	}
	return ProviderGemini
}

// NewLLM builds the configured backend. It returns a nil LLM and no error
// when the selected backend has no credential.
func NewLLM(ctx context.Context, cfg BackendConfig) (LLM, error) {
	if cfg.Credential() == "" {
		return nil, nil
	}
	switch cfg.provider() {
	case ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.Timeout), nil
	default:
		client, err := NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel, cfg.Timeout)
		if err != nil {
			return nil, fmt.Errorf("init gemini backend: %w", err)
		}
		return client, nil
	}
}
