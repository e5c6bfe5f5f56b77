package validation

import (
	"strings"

	"slide-quiz/internal/domain"
)

// Validator checks generate requests before any extraction work starts.
type Validator struct {
	allowed map[string]struct{}
}

// NewValidator creates a validator accepting the given file extensions
// (without the dot, case-insensitive).
func NewValidator(allowedExtensions []string) *Validator {
	allowed := make(map[string]struct{}, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}
	return &Validator{allowed: allowed}
}

// ValidateNotes rejects a request that carries no notes field.
func (v *Validator) ValidateNotes(present bool) error {
	if !present {
		return domain.NewInputMissingError("Note text required for processing.")
	}
	return nil
}

// ValidateFilename returns the lower-case extension of an acceptable upload.
func (v *Validator) ValidateFilename(filename string) (string, error) {
	if strings.TrimSpace(filename) == "" {
		return "", domain.NewInputMissingError("File required for processing.")
	}
	ext := FileExtension(filename)
	if _, ok := v.allowed[ext]; !ok || ext == "" {
		return "", domain.NewUnsupportedFileTypeError(filename)
	}
	return ext, nil
}

// FileExtension returns the lower-case text after the last dot, or "" when
// the name has no dot.
func FileExtension(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return ""
	}
	return strings.ToLower(filename[i+1:])
}
