package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"

	"github.com/SachinLearns/File-Converter/internal/domain"
)

// FlattenToRGB draws img over a white background, dropping any alpha
// channel. Images that already carry no transparency come through visually
// unchanged.
func FlattenToRGB(img image.Image) *image.RGBA {
	b := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Over)
	return out
}

// EncodeImage serializes img in the requested page-image format.
func EncodeImage(img image.Image, format domain.ImageFormat) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case domain.FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
	case domain.FormatJPG:
		// JPEG has no alpha, so flatten first.
		if err := jpeg.Encode(&buf, FlattenToRGB(img), &jpeg.Options{Quality: 90}); err != nil {
			return nil, fmt.Errorf("failed to encode jpeg: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	return buf.Bytes(), nil
}
