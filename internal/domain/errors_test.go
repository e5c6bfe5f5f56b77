package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDomainError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewUpstreamUnavailableError(cause)

	assert.Equal(t, "Quiz generation service is unavailable: connection refused", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "File required for processing.", NewInputMissingError("File required for processing.").Error())
}

func TestDomainError_MarshalJSON(t *testing.T) {
	err := NewUnsupportedFileTypeError("slides.pptx")

	b, mErr := json.Marshal(err)
	require.NoError(t, mErr)
	assert.JSONEq(t, `{"code":"UNSUPPORTED_FILE_TYPE","message":"File type not allowed."}`, string(b))
	assert.Equal(t, "slides.pptx", err.Context["filename"])
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("request failed: %w", NewExtractionError("bad pdf", nil))

	assert.True(t, HasCode(wrapped, CodeExtractionFailure))
	assert.False(t, HasCode(wrapped, CodeSchemaViolation))
	assert.False(t, HasCode(errors.New("plain"), CodeInternal))
	assert.False(t, HasCode(nil, CodeInternal))
}
