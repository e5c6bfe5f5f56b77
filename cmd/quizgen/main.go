// Command quizgen generates quizzes for local notes and slide-deck files
// without the HTTP server. Each file produces one JSON line on stdout.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"slide-quiz/internal/adapter/ocr"
	"slide-quiz/internal/adapter/pdf"
	"slide-quiz/internal/adapter/quizgen"
	"slide-quiz/internal/config"
	"slide-quiz/internal/domain"
	"slide-quiz/internal/dto"
	"slide-quiz/internal/extract"
	"slide-quiz/internal/logger"
	"slide-quiz/internal/service"
	"slide-quiz/internal/validation"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type fileResult struct {
	File      string                     `json:"file"`
	Prompt    string                     `json:"prompt,omitempty"`
	Questions []dto.QuizQuestionResponse `json:"questions,omitempty"`
	Error     *domain.DomainError        `json:"error,omitempty"`
}

func main() {
	flags := pflag.NewFlagSet("quizgen", pflag.ExitOnError)
	promptOnly := flags.Bool("prompt-only", false, "print the prompt instead of calling the LLM")
	concurrency := flags.Int("concurrency", 2, "files processed at once")
	flags.String("llm.provider", config.ProviderGemini, "gemini, openai or ollama")
	flags.String("llm.model", "", "model name")
	flags.Int("ocr.workers", 4, "concurrent OCR calls per document")
	flags.String("logger.level", "info", "log level")
	_ = flags.Parse(os.Args[1:])

	files := flags.Args()
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "usage: quizgen [flags] FILE...")
		flags.PrintDefaults()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := config.LoadConfigWithFlags(flags)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger; stdout carries the results
	cfg.Logger.Output = "stderr"
	if err := logger.Initialize(cfg.Logger); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var generator quizgen.Generator
	if !*promptOnly {
		if err := cfg.Validate(); err != nil {
			logger.Get().Fatal("Invalid configuration", zap.Error(err))
		}
		generator, err = quizgen.New(ctx, cfg.LLM)
		if err != nil {
			logger.Get().Fatal("Failed to create quiz generator", zap.Error(err))
		}
		defer generator.Close()
	}

	engine := ocr.NewTesseractEngine(cfg.OCR)
	extractor := extract.NewDocumentExtractor(extract.NewImageTextCollector(engine, cfg.OCR.Workers))
	quizService := service.NewQuizService(cfg, generator, pdf.NewTabulaOpener(), extractor)
	validator := validation.NewValidator(cfg.Upload.AllowedExtensions)

	results := make([]fileResult, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(*concurrency, 1))
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			results[i] = process(gctx, quizService, validator, file, *promptOnly)
			return nil
		})
	}
	_ = g.Wait()

	enc := json.NewEncoder(os.Stdout)
	failed := 0
	for _, r := range results {
		if r.Error != nil {
			failed++
		}
		if err := enc.Encode(r); err != nil {
			logger.Get().Error("Failed to write result", zap.String("file", r.File), zap.Error(err))
		}
	}
	if failed > 0 {
		logger.Get().Warn("Some files failed", zap.Int("failed", failed), zap.Int("total", len(files)))
		os.Exit(1)
	}
}

func process(ctx context.Context, svc service.QuizService, validator *validation.Validator, file string, promptOnly bool) fileResult {
	res := fileResult{File: file}

	ext, err := validator.ValidateFilename(file)
	if err != nil {
		res.Error = asDomainError(err)
		return res
	}

	if promptOnly {
		p, err := svc.BuildPrompt(ctx, file, ext)
		if err != nil {
			res.Error = asDomainError(err)
			return res
		}
		res.Prompt = p
		return res
	}

	questions, err := svc.GenerateFromFile(ctx, file, ext)
	if err != nil {
		res.Error = asDomainError(err)
		return res
	}
	res.Questions = dto.NewQuizSetResponse(questions)
	return res
}

func asDomainError(err error) *domain.DomainError {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de
	}
	return domain.NewInternalError(err.Error(), err)
}
