package service

import (
	"context"
	"errors"
	"sync/atomic"

	"slide-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockStructuredGenerator ---
type MockStructuredGenerator struct {
	mock.Mock
}

func (m *MockStructuredGenerator) GenerateStructured(ctx context.Context, prompt string, schema *domain.ResponseSchema) (string, error) {
	args := m.Called(ctx, prompt, schema)
	return args.String(0), args.Error(1)
}

// --- MockDocumentOpener ---
type MockDocumentOpener struct {
	mock.Mock
}

func (m *MockDocumentOpener) Open(path string) (domain.Document, error) {
	args := m.Called(path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(domain.Document), args.Error(1)
}

// --- stubDocument ---
type stubPage struct {
	text   string
	images []domain.RasterImage
}

type stubDocument struct {
	pages  []stubPage
	closed atomic.Bool
}

func (d *stubDocument) PageCount() int { return len(d.pages) }

func (d *stubDocument) PageText(i int) (string, error) { return d.pages[i].text, nil }

func (d *stubDocument) PageImages(i int) ([]domain.RasterImage, error) { return d.pages[i].images, nil }

func (d *stubDocument) Close() error {
	d.closed.Store(true)
	return nil
}

// --- stubOCR ---
type stubOCR struct {
	texts map[string]string
}

func (o *stubOCR) Recognize(ctx context.Context, data []byte) (string, error) {
	text, ok := o.texts[string(data)]
	if !ok {
		return "", errors.New("unreadable image")
	}
	return text, nil
}
