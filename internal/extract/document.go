package extract

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/logger"

	"go.uber.org/zap"
)

// DocumentExtractor pulls the two text sources out of a paged document: OCR
// text of the embedded images and the native page text. The two are never
// deduplicated against each other.
type DocumentExtractor struct {
	collector *ImageTextCollector
}

func NewDocumentExtractor(collector *ImageTextCollector) *DocumentExtractor {
	return &DocumentExtractor{collector: collector}
}

// ExtractImageText gathers the images of all pages in page order, drops
// byte-identical repeats (artwork reused across slides) and runs them through
// the collector.
func (e *DocumentExtractor) ExtractImageText(ctx context.Context, doc domain.Document) (*ImageTextResult, error) {
	var images []domain.RasterImage
	seen := make(map[[sha256.Size]byte]struct{})
	repeated := 0

	for i := 0; i < doc.PageCount(); i++ {
		if err := ctx.Err(); err != nil {
			return nil, domain.NewExtractionError("image extraction was interrupted", err)
		}
		pageImages, err := doc.PageImages(i)
		if err != nil {
			return nil, domain.NewExtractionError(fmt.Sprintf("failed to read images of page %d", i+1), err)
		}
		for _, img := range pageImages {
			if img.Err != nil {
				images = append(images, img)
				continue
			}
			sum := sha256.Sum256(img.Data)
			if _, dup := seen[sum]; dup {
				repeated++
				continue
			}
			seen[sum] = struct{}{}
			images = append(images, img)
		}
	}

	logger.Get().Debug("Gathered document images",
		zap.Int("pages", doc.PageCount()),
		zap.Int("unique_images", len(images)),
		zap.Int("repeated_images", repeated),
	)
	return e.collector.Collect(ctx, images)
}

// ExtractPageText normalizes the native text of every page and joins the
// pages with newlines, keeping empty pages as empty lines.
func (e *DocumentExtractor) ExtractPageText(ctx context.Context, doc domain.Document) (string, error) {
	parts := make([]string, doc.PageCount())
	for i := range parts {
		if err := ctx.Err(); err != nil {
			return "", domain.NewExtractionError("page text extraction was interrupted", err)
		}
		text, err := doc.PageText(i)
		if err != nil {
			return "", domain.NewExtractionError(fmt.Sprintf("failed to read text of page %d", i+1), err)
		}
		parts[i] = Normalize(text)
	}
	return strings.Join(parts, "\n"), nil
}
