package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInternal ErrorCode = "INTERNAL_ERROR"

	// Rejected before any extraction work starts.
	CodeInputMissing        ErrorCode = "INPUT_MISSING"
	CodeUnsupportedFileType ErrorCode = "UNSUPPORTED_FILE_TYPE"

	CodeExtractionFailure   ErrorCode = "EXTRACTION_FAILURE"
	CodeSchemaViolation     ErrorCode = "SCHEMA_VIOLATION"
	CodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a detail that is reported back to the caller.
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func NewInputMissingError(message string) *DomainError {
	return NewError(CodeInputMissing, message, nil)
}

func NewUnsupportedFileTypeError(filename string) *DomainError {
	return NewError(CodeUnsupportedFileType, "File type not allowed.", nil).
		WithContext("filename", filename)
}

func NewExtractionError(message string, cause error) *DomainError {
	return NewError(CodeExtractionFailure, message, cause)
}

func NewSchemaViolationError(message string, cause error) *DomainError {
	return NewError(CodeSchemaViolation, message, cause)
}

func NewUpstreamUnavailableError(cause error) *DomainError {
	return NewError(CodeUpstreamUnavailable, "Quiz generation service is unavailable", cause)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// HasCode reports whether err is (or wraps) a DomainError with the given code.
func HasCode(err error, code ErrorCode) bool {
	var de *DomainError
	return errors.As(err, &de) && de.Code == code
}
