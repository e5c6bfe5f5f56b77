package middleware_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"input missing", domain.NewInputMissingError("Note text required for processing."), http.StatusBadRequest, "INPUT_MISSING"},
		{"unsupported type", domain.NewUnsupportedFileTypeError("a.doc"), http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"extraction", domain.NewExtractionError("bad pdf", nil), http.StatusUnprocessableEntity, "EXTRACTION_FAILURE"},
		{"schema", domain.NewSchemaViolationError("bad payload", nil), http.StatusBadGateway, "SCHEMA_VIOLATION"},
		{"upstream", domain.NewUpstreamUnavailableError(errors.New("timeout")), http.StatusServiceUnavailable, "UPSTREAM_UNAVAILABLE"},
		{"wrapped domain error", fmt.Errorf("ctx: %w", domain.NewExtractionError("bad pdf", nil)), http.StatusUnprocessableEntity, "EXTRACTION_FAILURE"},
		{"internal", domain.NewInternalError("boom", nil), http.StatusInternalServerError, "INTERNAL_ERROR"},
		{"fiber error", fiber.NewError(http.StatusRequestEntityTooLarge, "too big"), http.StatusRequestEntityTooLarge, "HTTP_ERROR"},
		{"plain error", errors.New("oops"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler()})
			app.Use(middleware.RequestID())
			app.Get("/", func(c *fiber.Ctx) error { return tt.err })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(middleware.RequestIDHeader, "req-123")
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, "req-123", resp.Header.Get(middleware.RequestIDHeader))

			var body middleware.ErrorResponse
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantStatus, body.Status)
			assert.Equal(t, "req-123", body.RequestID)
		})
	}
}

func TestRequestID_Generated(t *testing.T) {
	app := fiber.New()
	app.Use(middleware.RequestID())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(middleware.RequestIDFrom(c))
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil))
	require.NoError(t, err)
	id := resp.Header.Get(middleware.RequestIDHeader)
	assert.Len(t, id, 26)
}
