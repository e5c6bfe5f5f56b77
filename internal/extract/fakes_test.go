package extract

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"slide-quiz/internal/domain"
)

// fakeOCR maps image bytes to recognized text. Keys missing from texts fail.
type fakeOCR struct {
	texts   map[string]string
	calls   atomic.Int32
	active  atomic.Int32
	maxSeen atomic.Int32
	gate    chan struct{}
}

func (f *fakeOCR) Recognize(ctx context.Context, data []byte) (string, error) {
	f.calls.Add(1)
	n := f.active.Add(1)
	defer f.active.Add(-1)
	for {
		m := f.maxSeen.Load()
		if n <= m || f.maxSeen.CompareAndSwap(m, n) {
			break
		}
	}
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	text, ok := f.texts[string(data)]
	if !ok {
		return "", errors.New("corrupt image")
	}
	return text, nil
}

type fakePage struct {
	text    string
	textErr error
	images  []domain.RasterImage
	imgErr  error
}

type fakeDocument struct {
	pages  []fakePage
	mu     sync.Mutex
	closed bool
}

func (d *fakeDocument) PageCount() int { return len(d.pages) }

func (d *fakeDocument) PageText(i int) (string, error) {
	return d.pages[i].text, d.pages[i].textErr
}

func (d *fakeDocument) PageImages(i int) ([]domain.RasterImage, error) {
	return d.pages[i].images, d.pages[i].imgErr
}

func (d *fakeDocument) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}

func img(page int, name, data string) domain.RasterImage {
	return domain.RasterImage{Page: page, Name: name, Data: []byte(data)}
}
