// Package pdf opens uploaded slide decks with tabula and exposes their pages
// as domain.Document.
package pdf

import (
	"fmt"
	"sort"

	"slide-quiz/internal/domain"
	"slide-quiz/internal/logger"

	"github.com/tsawler/tabula"
	"github.com/tsawler/tabula/reader"
	"go.uber.org/zap"
)

// TabulaOpener implements domain.DocumentOpener for PDF files.
type TabulaOpener struct{}

func NewTabulaOpener() *TabulaOpener {
	return &TabulaOpener{}
}

// Open parses the PDF header, xref table and page tree. The returned document
// owns the file handle until Close.
func (o *TabulaOpener) Open(path string) (domain.Document, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	count, err := r.PageCount()
	if err != nil {
		_ = r.Close()
		return nil, fmt.Errorf("failed to read page tree: %w", err)
	}
	return &tabulaDocument{reader: r, pageCount: count}, nil
}

type tabulaDocument struct {
	reader    *reader.Reader
	pageCount int
}

func (d *tabulaDocument) PageCount() int {
	return d.pageCount
}

func (d *tabulaDocument) PageText(i int) (string, error) {
	// FromReader does not take ownership, so Text leaves the reader open.
	text, warnings, err := tabula.FromReader(d.reader).Pages(i + 1).Text()
	if err != nil {
		return "", err
	}
	if len(warnings) > 0 {
		logger.Get().Debug("PDF text extraction warnings",
			zap.Int("page", i+1),
			zap.Int("warnings", len(warnings)),
		)
	}
	return text, nil
}

// PageImages returns the page's image XObjects as PNG, sorted by XObject name
// since the resource dictionary has no inherent order. Images that cannot be
// converted are returned with Err set.
func (d *tabulaDocument) PageImages(i int) ([]domain.RasterImage, error) {
	page, err := d.reader.GetPage(i)
	if err != nil {
		return nil, err
	}
	pageImages, err := d.reader.ExtractPageImages(page)
	if err != nil {
		return nil, err
	}
	sort.Slice(pageImages, func(a, b int) bool {
		return pageImages[a].Name < pageImages[b].Name
	})

	images := make([]domain.RasterImage, 0, len(pageImages))
	for _, img := range pageImages {
		data, err := img.ToPNG()
		if err != nil {
			logger.Get().Debug("Undecodable PDF image",
				zap.Int("page", i+1),
				zap.String("image", img.Name),
				zap.String("color_space", img.ColorSpace),
				zap.Int("bits_per_component", img.BitsPerComponent),
				zap.Error(err),
			)
			images = append(images, domain.RasterImage{
				Page: i + 1,
				Name: img.Name,
				Err:  fmt.Errorf("failed to convert %s image: %w", img.ColorSpace, err),
			})
			continue
		}
		images = append(images, domain.RasterImage{Page: i + 1, Name: img.Name, Data: data})
	}
	return images, nil
}

func (d *tabulaDocument) Close() error {
	return d.reader.Close()
}
