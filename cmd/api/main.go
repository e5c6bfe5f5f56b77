// @title Slide Quiz API
// @version 1.0
// @description Generates multiple-choice revision quizzes from notes or slide decks.
// @contact.name API Support
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:5000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"slide-quiz/internal/adapter/ocr"
	"slide-quiz/internal/adapter/pdf"
	"slide-quiz/internal/adapter/quizgen"
	"slide-quiz/internal/config"
	"slide-quiz/internal/extract"
	"slide-quiz/internal/handler"
	"slide-quiz/internal/logger"
	"slide-quiz/internal/middleware"
	"slide-quiz/internal/service"
	"slide-quiz/internal/storage"
	"slide-quiz/internal/validation"

	_ "slide-quiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		appLogger.Fatal("Invalid configuration", zap.Error(err))
	}

	generator, err := quizgen.New(context.Background(), cfg.LLM)
	if err != nil {
		appLogger.Fatal("Failed to create quiz generator", zap.Error(err))
	}
	defer generator.Close()
	appLogger.Info("Quiz generator initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", cfg.LLM.Model),
	)

	uploads, err := storage.NewUploadStore(cfg.Upload.Dir)
	if err != nil {
		appLogger.Fatal("Failed to prepare upload directory", zap.Error(err))
	}

	engine := ocr.NewTesseractEngine(cfg.OCR)
	extractor := extract.NewDocumentExtractor(extract.NewImageTextCollector(engine, cfg.OCR.Workers))
	quizService := service.NewQuizService(cfg, generator, pdf.NewTabulaOpener(), extractor)

	quizHandler := handler.NewQuizHandler(
		quizService,
		validation.NewValidator(cfg.Upload.AllowedExtensions),
		uploads,
		cfg.LLM,
	)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.ReadTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,X-Request-ID", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/health", quizHandler.Health)

	// Original routes
	app.Post("/generatefromnotes", quizHandler.GenerateFromNotes)
	app.Post("/generatefromfile", quizHandler.GenerateFromFile)

	apiGroup := app.Group("/api")
	apiGroup.Post("/generate", quizHandler.Generate)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", cfg.Logger.Env))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
