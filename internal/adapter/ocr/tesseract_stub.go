//go:build noocr

// Package ocr recognizes slide image text with the Tesseract engine.
//
// This is the stub used when built with the "noocr" tag. Every call fails
// with ErrOCRNotEnabled, so documents are processed from their text layer and
// their images are reported as skipped.
package ocr

import (
	"context"
	"errors"

	"slide-quiz/internal/config"
)

// ErrOCRNotEnabled is returned when the binary was built without Tesseract.
var ErrOCRNotEnabled = errors.New("OCR support not enabled; rebuild without the noocr tag")

type TesseractEngine struct{}

func NewTesseractEngine(cfg config.OCRConfig) *TesseractEngine {
	return &TesseractEngine{}
}

func (e *TesseractEngine) Recognize(ctx context.Context, data []byte) (string, error) {
	return "", ErrOCRNotEnabled
}
