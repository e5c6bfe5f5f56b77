// Package imaging prepares embedded slide images for OCR.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// MaxScale bounds the upscaling factor so tiny icons do not explode in size.
const MaxScale = 4

// MaxPixels caps the area of an upscaled image. Larger sources are passed to
// OCR as they are.
const MaxPixels = 16 << 20

// UpscaleForOCR enlarges images narrower than minWidth by an integer factor
// using Catmull-Rom resampling and re-encodes them as PNG. Images that are
// already wide enough, or that would exceed MaxPixels, are returned
// unchanged. Data that cannot be decoded is an error.
func UpscaleForOCR(data []byte, minWidth int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	scale := upscaleFactor(cfg.Width, cfg.Height, minWidth)
	if scale < 2 {
		return data, nil
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	bounds := src.Bounds()

	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx()*scale, bounds.Dy()*scale))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode PNG: %w", err)
	}
	return buf.Bytes(), nil
}

// upscaleFactor returns the integer factor that brings width up to minWidth,
// limited by MaxScale and MaxPixels. A result below 2 means no upscaling.
func upscaleFactor(width, height, minWidth int) int {
	if minWidth <= 0 || width <= 0 || height <= 0 || width >= minWidth {
		return 1
	}
	scale := min((minWidth+width-1)/width, MaxScale)
	for scale > 1 && int64(width*scale)*int64(height*scale) > MaxPixels {
		scale--
	}
	return scale
}
