package extract

import (
	"context"
	"fmt"
	"strings"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ImageTextResult holds the distinct normalized OCR texts of a set of images
// in first-seen order, plus a warning for every image that was skipped.
type ImageTextResult struct {
	Texts    []string
	Warnings []string
}

// Text joins the distinct texts with newlines.
func (r *ImageTextResult) Text() string {
	return strings.Join(r.Texts, "\n")
}

// ImageTextCollector runs OCR over images and deduplicates the results.
type ImageTextCollector struct {
	engine  domain.OCREngine
	workers int
}

// NewImageTextCollector creates a collector that runs at most workers OCR
// calls at a time.
func NewImageTextCollector(engine domain.OCREngine, workers int) *ImageTextCollector {
	if workers < 1 {
		workers = 1
	}
	return &ImageTextCollector{engine: engine, workers: workers}
}

// Collect recognizes every image, normalizes each result and keeps one entry
// per distinct text, ordered by the index of the first image that produced
// it. An image that cannot be decoded or recognized is skipped with a
// warning; if every image fails the whole collection fails with
// EXTRACTION_FAILURE.
func (c *ImageTextCollector) Collect(ctx context.Context, images []domain.RasterImage) (*ImageTextResult, error) {
	result := &ImageTextResult{}
	if len(images) == 0 {
		return result, nil
	}

	texts := make([]string, len(images))
	errs := make([]error, len(images))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i := range images {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if images[i].Err != nil {
				errs[i] = images[i].Err
				return nil
			}
			raw, err := c.engine.Recognize(gctx, images[i].Data)
			if err != nil {
				errs[i] = err
				return nil
			}
			texts[i] = Normalize(raw)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, domain.NewExtractionError("image text extraction was interrupted", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.NewExtractionError("image text extraction was interrupted", err)
	}

	l := logger.Get()
	seen := make(map[string]struct{}, len(images))
	var firstErr error
	failed := 0
	for i, img := range images {
		if errs[i] != nil {
			failed++
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: %w", img.Label(), errs[i])
			}
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", img.Label(), errs[i]))
			l.Warn("Skipping image after OCR failure",
				zap.Int("page", img.Page),
				zap.String("image", img.Name),
				zap.Error(errs[i]),
			)
			continue
		}
		if _, dup := seen[texts[i]]; dup {
			continue
		}
		seen[texts[i]] = struct{}{}
		result.Texts = append(result.Texts, texts[i])
	}

	if failed == len(images) {
		return nil, domain.NewExtractionError("OCR failed on every image", firstErr).
			WithContext("failed_images", failed)
	}

	l.Debug("Collected image texts",
		zap.Int("images", len(images)),
		zap.Int("distinct_texts", len(result.Texts)),
		zap.Int("skipped", failed),
	)
	return result, nil
}
