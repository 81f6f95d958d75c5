package genai

import (
	"fmt"
	"strings"

	"greenverify/internal/common/config"
	"greenverify/internal/common/logger"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// NewClient builds the configured provider. A missing API key returns
// ErrNoAPIKey; callers treat that as "run in fallback mode", never fatal.
func NewClient(cfg config.GenAIConfig, log logger.Logger) (Client, error) {
	switch strings.ToLower(cfg.Provider) {
	case ProviderGemini:
		return NewGemini(GeminiOptions{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			MaxRetries:  cfg.MaxRetries,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		}, log)
	case ProviderOpenAI:
		return NewOpenAI(OpenAIOptions{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.BaseURL,
			Temperature: cfg.Temperature,
			MaxTokens:   cfg.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unknown genai provider: %s", cfg.Provider)
	}
}
