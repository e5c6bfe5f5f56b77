package handler

import (
	"mime/multipart"

	"slide-quiz/internal/config"
	"slide-quiz/internal/domain"
	"slide-quiz/internal/dto"
	"slide-quiz/internal/logger"
	"slide-quiz/internal/middleware"
	"slide-quiz/internal/service"
	"slide-quiz/internal/storage"
	"slide-quiz/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	notesField = "notes"
	fileField  = "file"
)

// QuizHandler handles quiz generation HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
	uploads   *storage.UploadStore
	llm       config.LLMConfig
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService, validator *validation.Validator, uploads *storage.UploadStore, llm config.LLMConfig) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validator,
		uploads:   uploads,
		llm:       llm,
	}
}

// Generate godoc
// @Summary Generate a quiz
// @Description Generates multiple-choice questions from an uploaded file or from notes text. The file wins when both are sent.
// @Tags quiz
// @Accept mpfd
// @Produce json
// @Param notes formData string false "Notes text"
// @Param file formData file false "Notes (.txt) or slide deck (.pdf)"
// @Success 200 {array} dto.QuizQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generate [post]
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	if fh, present := formFile(c); present {
		return h.generateFromUpload(c, fh)
	}
	if notes, present := formValue(c, notesField); present {
		return h.generateFromNotes(c, notes)
	}
	return domain.NewInputMissingError("Note text or file required for processing.")
}

// GenerateFromNotes godoc
// @Summary Generate a quiz from notes
// @Tags quiz
// @Accept mpfd
// @Produce json
// @Param notes formData string true "Notes text"
// @Success 200 {array} dto.QuizQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generatefromnotes [post]
func (h *QuizHandler) GenerateFromNotes(c *fiber.Ctx) error {
	notes, present := formValue(c, notesField)
	if err := h.validator.ValidateNotes(present); err != nil {
		return err
	}
	return h.generateFromNotes(c, notes)
}

// GenerateFromFile godoc
// @Summary Generate a quiz from an uploaded file
// @Tags quiz
// @Accept mpfd
// @Produce json
// @Param file formData file true "Notes (.txt) or slide deck (.pdf)"
// @Success 200 {array} dto.QuizQuestionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /generatefromfile [post]
func (h *QuizHandler) GenerateFromFile(c *fiber.Ctx) error {
	fh, present := formFile(c)
	if !present {
		return domain.NewInputMissingError("File required for processing.")
	}
	return h.generateFromUpload(c, fh)
}

// Health godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) Health(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		Status:   "ok",
		Provider: h.llm.Provider,
		Model:    h.llm.Model,
	})
}

func (h *QuizHandler) generateFromNotes(c *fiber.Ctx, notes string) error {
	questions, err := h.service.GenerateFromNotes(c.UserContext(), notes)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponse(questions))
}

func (h *QuizHandler) generateFromUpload(c *fiber.Ctx, fh *multipart.FileHeader) error {
	filename := ""
	if fh != nil {
		filename = fh.Filename
	}
	ext, err := h.validator.ValidateFilename(filename)
	if err != nil {
		return err
	}

	path, release, err := h.uploads.Save(fh, ext)
	if err != nil {
		return domain.NewInternalError("Failed to store upload", err)
	}
	defer release()

	logger.Get().Debug("Stored upload",
		zap.String("request_id", middleware.RequestIDFrom(c)),
		zap.String("filename", filename),
		zap.String("path", path),
		zap.Int64("size", fh.Size),
	)

	questions, err := h.service.GenerateFromFile(c.UserContext(), path, ext)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewQuizSetResponse(questions))
}

// formValue reports whether the field was sent at all, so an empty notes
// field is distinguishable from a missing one.
func formValue(c *fiber.Ctx, key string) (string, bool) {
	if form, err := c.MultipartForm(); err == nil {
		if vals, ok := form.Value[key]; ok && len(vals) > 0 {
			return vals[0], true
		}
		return "", false
	}
	args := c.Request().PostArgs()
	if args.Has(key) {
		return string(args.Peek(key)), true
	}
	return "", false
}

// formFile returns the uploaded file part. A file field sent with an empty
// filename is parsed as a plain value; it counts as present with a nil header.
func formFile(c *fiber.Ctx) (*multipart.FileHeader, bool) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, false
	}
	if files := form.File[fileField]; len(files) > 0 {
		return files[0], true
	}
	if _, ok := form.Value[fileField]; ok {
		return nil, true
	}
	return nil, false
}
