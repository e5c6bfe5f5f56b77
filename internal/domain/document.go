package domain

import (
	"context"
	"fmt"
)

// RasterImage is an image embedded in a document page, encoded in a format
// the OCR engine accepts (PNG for PDF sources).
type RasterImage struct {
	Page int    // 1-based page number
	Name string // name of the image inside the page, e.g. "Im1"
	Data []byte
	// Err is set when the embedded image could not be decoded. Such images
	// carry no Data and count as failed OCR inputs.
	Err error
}

// Label identifies the image in logs and warnings.
func (img RasterImage) Label() string {
	return fmt.Sprintf("page %d image %s", img.Page, img.Name)
}

// Document is a paged document opened for one extraction. Implementations are
// read-only and must release their resources on Close.
type Document interface {
	PageCount() int
	// PageText returns the native text layer of page i (0-based).
	PageText(i int) (string, error)
	// PageImages returns the raster images embedded in page i (0-based),
	// in a stable order.
	PageImages(i int) ([]RasterImage, error)
	Close() error
}

// DocumentOpener opens an uploaded file as a Document.
type DocumentOpener interface {
	Open(path string) (Document, error)
}

// OCREngine recognizes text in a single encoded image.
type OCREngine interface {
	Recognize(ctx context.Context, image []byte) (string, error)
}

// StructuredGenerator is an LLM provider that answers a prompt with output
// constrained to the given schema. The returned payload is the raw JSON text.
type StructuredGenerator interface {
	GenerateStructured(ctx context.Context, prompt string, schema *ResponseSchema) (string, error)
}
