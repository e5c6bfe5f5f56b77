package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	lcschema "github.com/tmc/langchaingo/schema"
	"go.uber.org/zap"
)

// contentGenerator is the part of llms.Model the generator uses.
type contentGenerator interface {
	GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error)
}

// OllamaQuizGenerator implements domain.StructuredGenerator against a local
// Ollama server. Ollama only offers a generic JSON mode, so the schema is
// given to the model as a system message.
type OllamaQuizGenerator struct {
	llm         contentGenerator
	temperature float64
}

func NewOllamaQuizGenerator(serverURL, model string, temperature float64, timeout time.Duration) (*OllamaQuizGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}
	httpClient := &http.Client{Timeout: timeout}
	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}
	logger.Get().Info("Initialized OllamaQuizGenerator",
		zap.String("server_url", serverURL),
		zap.String("model", model),
	)
	return &OllamaQuizGenerator{llm: llm, temperature: temperature}, nil
}

func (o *OllamaQuizGenerator) GenerateStructured(ctx context.Context, prompt string, schema *domain.ResponseSchema) (string, error) {
	schemaJSON, err := json.MarshalIndent(wrapSchema(schema), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}
	system := "Respond with ONLY a JSON object that conforms to this JSON Schema:\n" + string(schemaJSON)

	resp, err := o.llm.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(lcschema.ChatMessageTypeSystem, system),
			llms.TextParts(lcschema.ChatMessageTypeHuman, prompt),
		},
		llms.WithTemperature(o.temperature),
		llms.WithJSONMode(),
	)
	if err != nil {
		return "", fmt.Errorf("Ollama request failed: %w", err)
	}
	if resp == nil || len(resp.Choices) == 0 {
		return "", fmt.Errorf("Ollama returned no choices")
	}

	raw := resp.Choices[0].Content
	logger.Get().Debug("Raw Ollama response received", zap.Int("length", len(raw)))
	return unwrapQuestions(stripThink(raw)), nil
}

func (o *OllamaQuizGenerator) Close() error {
	return nil
}

var _ domain.StructuredGenerator = (*OllamaQuizGenerator)(nil)
