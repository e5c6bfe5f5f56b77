//go:build !noocr

// Package ocr recognizes slide image text with the Tesseract engine via
// gosseract. It requires the Tesseract library to be installed. On
// Ubuntu/Debian:
//
//	apt-get install tesseract-ocr libtesseract-dev
//
// Build with the "noocr" tag to link without Tesseract.
package ocr

import (
	"context"
	"fmt"
	"strings"

	"slide-quiz/internal/adapter/imaging"
	"slide-quiz/internal/config"

	"github.com/otiai10/gosseract/v2"
)

// TesseractEngine implements domain.OCREngine. gosseract clients are not safe
// for concurrent use, so each call gets its own client.
type TesseractEngine struct {
	language string
	minWidth int
}

func NewTesseractEngine(cfg config.OCRConfig) *TesseractEngine {
	language := cfg.Language
	if language == "" {
		language = "eng"
	}
	return &TesseractEngine{language: language, minWidth: cfg.MinWidth}
}

// Recognize performs OCR on image data (PNG, TIFF, JPEG, etc.).
func (e *TesseractEngine) Recognize(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	prepared, err := imaging.UpscaleForOCR(data, e.minWidth)
	if err != nil {
		return "", err
	}

	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetLanguage(e.language); err != nil {
		return "", fmt.Errorf("failed to set language %q: %w", e.language, err)
	}
	if err := client.SetImageFromBytes(prepared); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("OCR failed: %w", err)
	}
	return strings.TrimSpace(text), nil
}
