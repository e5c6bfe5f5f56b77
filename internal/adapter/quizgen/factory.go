package quizgen

import (
	"context"
	"fmt"

	"slide-quiz/internal/config"
	"slide-quiz/internal/domain"
)

// Generator is a structured generator that holds provider resources.
type Generator interface {
	domain.StructuredGenerator
	Close() error
}

// New builds the generator selected by cfg.Provider.
func New(ctx context.Context, cfg config.LLMConfig) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		gen, err := NewGeminiQuizGenerator(ctx, cfg.GeminiAPIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case config.ProviderOpenAI:
		gen, err := NewOpenAIQuizGenerator(cfg.OpenAIAPIKey, cfg.Model, cfg.Temperature)
		if err != nil {
			return nil, err
		}
		return gen, nil
	case config.ProviderOllama:
		gen, err := NewOllamaQuizGenerator(cfg.ServerURL, cfg.Model, cfg.Temperature, cfg.Timeout)
		if err != nil {
			return nil, err
		}
		return gen, nil
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
}
