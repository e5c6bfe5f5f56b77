package quizgen

import (
	"context"
	"encoding/json"
	"fmt"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/logger"

	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenAIQuizGenerator implements domain.StructuredGenerator with OpenAI's
// json_schema response format. The quiz array is wrapped in an object because
// the response format requires a top-level object.
type OpenAIQuizGenerator struct {
	client      *openai.Client
	model       string
	temperature float32
}

func NewOpenAIQuizGenerator(apiKey string, model string, temperature float64) (*OpenAIQuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenAI API key cannot be empty")
	}
	return newOpenAIQuizGenerator(openai.DefaultConfig(apiKey), model, temperature)
}

func newOpenAIQuizGenerator(clientCfg openai.ClientConfig, model string, temperature float64) (*OpenAIQuizGenerator, error) {
	if model == "" {
		return nil, fmt.Errorf("OpenAI model name cannot be empty")
	}
	logger.Get().Info("Initialized OpenAIQuizGenerator", zap.String("model", model))
	return &OpenAIQuizGenerator{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: float32(temperature),
	}, nil
}

func (o *OpenAIQuizGenerator) GenerateStructured(ctx context.Context, prompt string, schema *domain.ResponseSchema) (string, error) {
	schemaJSON, err := json.Marshal(wrapSchema(schema))
	if err != nil {
		return "", fmt.Errorf("failed to marshal response schema: %w", err)
	}

	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: o.temperature,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:        schema.Name,
				Description: schema.Description,
				Schema:      json.RawMessage(schemaJSON),
				Strict:      true,
			},
		},
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("OpenAI request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}

	logger.Get().Debug("OpenAI completion received",
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
	)
	return unwrapQuestions(resp.Choices[0].Message.Content), nil
}

func (o *OpenAIQuizGenerator) Close() error {
	return nil
}

var _ domain.StructuredGenerator = (*OpenAIQuizGenerator)(nil)
