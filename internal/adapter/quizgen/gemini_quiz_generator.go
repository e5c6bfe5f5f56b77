package quizgen

import (
	"context"
	"fmt"
	"strings"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/logger"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

// GeminiQuizGenerator implements domain.StructuredGenerator with Gemini's
// native response schema support.
type GeminiQuizGenerator struct {
	client      *genai.Client
	modelName   string
	temperature float32
}

// NewGeminiQuizGenerator creates a new instance of GeminiQuizGenerator.
func NewGeminiQuizGenerator(ctx context.Context, apiKey string, modelName string, temperature float64, opts ...option.ClientOption) (*GeminiQuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key cannot be empty")
	}
	if modelName == "" {
		return nil, fmt.Errorf("Gemini model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	logger.Get().Info("Initialized GeminiQuizGenerator", zap.String("model", modelName))
	return &GeminiQuizGenerator{
		client:      client,
		modelName:   modelName,
		temperature: float32(temperature),
	}, nil
}

// GenerateStructured sends the prompt as the sole content with a JSON
// response MIME type and the schema as the response schema.
func (g *GeminiQuizGenerator) GenerateStructured(ctx context.Context, prompt string, schema *domain.ResponseSchema) (string, error) {
	responseSchema, err := toGenaiSchema(schema.Definition)
	if err != nil {
		return "", fmt.Errorf("failed to convert response schema: %w", err)
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SetTemperature(g.temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = responseSchema

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini request failed: %w", err)
	}
	return geminiResponseText(resp)
}

func geminiResponseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("Gemini returned no candidates")
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("Gemini returned no text parts")
	}
	return b.String(), nil
}

func (g *GeminiQuizGenerator) Close() error {
	return g.client.Close()
}

var _ domain.StructuredGenerator = (*GeminiQuizGenerator)(nil)
