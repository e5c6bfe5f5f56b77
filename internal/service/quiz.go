package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"slide-quiz/internal/config"
	"slide-quiz/internal/domain"
	"slide-quiz/internal/extract"
	"slide-quiz/internal/logger"
	"slide-quiz/internal/prompt"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz generation
type QuizService interface {
	GenerateFromNotes(ctx context.Context, notes string) ([]domain.QuizQuestion, error)
	// GenerateFromFile reads a saved upload. ext is the lower-case extension
	// without the dot and must already be validated.
	GenerateFromFile(ctx context.Context, path string, ext string) ([]domain.QuizQuestion, error)
	// BuildPrompt returns the prompt GenerateFromFile would submit.
	BuildPrompt(ctx context.Context, path string, ext string) (string, error)
}

// quizService implements QuizService
type quizService struct {
	generator domain.StructuredGenerator
	opener    domain.DocumentOpener
	extractor *extract.DocumentExtractor
	timeout   time.Duration
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	cfg *config.Config,
	generator domain.StructuredGenerator,
	opener domain.DocumentOpener,
	extractor *extract.DocumentExtractor,
) QuizService {
	return &quizService{
		generator: generator,
		opener:    opener,
		extractor: extractor,
		timeout:   cfg.LLM.Timeout,
	}
}

// GenerateFromNotes implements QuizService
func (s *quizService) GenerateFromNotes(ctx context.Context, notes string) ([]domain.QuizQuestion, error) {
	return s.generate(ctx, prompt.BuildFromNotes(notes), "notes")
}

// GenerateFromFile implements QuizService
func (s *quizService) GenerateFromFile(ctx context.Context, path string, ext string) ([]domain.QuizQuestion, error) {
	p, err := s.BuildPrompt(ctx, path, ext)
	if err != nil {
		return nil, err
	}
	return s.generate(ctx, p, ext)
}

// BuildPrompt implements QuizService
func (s *quizService) BuildPrompt(ctx context.Context, path string, ext string) (string, error) {
	switch ext {
	case "txt":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", domain.NewExtractionError("Failed to read notes file", err)
		}
		return prompt.BuildFromNotes(string(data)), nil
	case "pdf":
		return s.documentPrompt(ctx, path)
	default:
		return "", domain.NewUnsupportedFileTypeError(path)
	}
}

func (s *quizService) documentPrompt(ctx context.Context, path string) (string, error) {
	l := logger.Get()

	doc, err := s.opener.Open(path)
	if err != nil {
		return "", domain.NewExtractionError("Document could not be read", err)
	}
	defer func() {
		if cerr := doc.Close(); cerr != nil {
			l.Warn("Failed to close document", zap.Error(cerr))
		}
	}()

	start := time.Now()
	images, err := s.extractor.ExtractImageText(ctx, doc)
	if err != nil {
		return "", wrapExtraction(err)
	}
	pageText, err := s.extractor.ExtractPageText(ctx, doc)
	if err != nil {
		return "", wrapExtraction(err)
	}

	l.Info("Extracted document content",
		zap.Int("pages", doc.PageCount()),
		zap.Int("image_texts", len(images.Texts)),
		zap.Int("skipped_images", len(images.Warnings)),
		zap.Duration("duration", time.Since(start)),
	)
	return prompt.BuildFromDocument(images.Text(), pageText), nil
}

// generate submits the prompt under the configured timeout and validates the
// structured output. Provider failures become UPSTREAM_UNAVAILABLE; payload
// problems surface as SCHEMA_VIOLATION from the contract.
func (s *quizService) generate(ctx context.Context, p string, source string) ([]domain.QuizQuestion, error) {
	l := logger.Get()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	l.Debug("Submitting quiz prompt", zap.String("source", source), zap.Int("prompt_length", len(p)))
	start := time.Now()
	raw, err := s.generator.GenerateStructured(ctx, p, domain.QuizSetSchema())
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			l.Error("Quiz generation timed out", zap.Duration("timeout", s.timeout), zap.Error(err))
			return nil, domain.NewUpstreamUnavailableError(fmt.Errorf("timed out after %s: %w", s.timeout, err))
		}
		l.Error("Quiz generation failed", zap.String("source", source), zap.Error(err))
		return nil, domain.NewUpstreamUnavailableError(err)
	}

	questions, err := domain.ParseQuizResponse(raw)
	if err != nil {
		l.Error("Quiz response rejected", zap.String("source", source), zap.Error(err))
		return nil, err
	}

	l.Info("Generated quiz",
		zap.String("source", source),
		zap.Int("questions", len(questions)),
		zap.Duration("duration", time.Since(start)),
	)
	return questions, nil
}

func wrapExtraction(err error) error {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return err
	}
	return domain.NewExtractionError("Document content could not be extracted", err)
}
