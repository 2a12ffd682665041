// Package converter implements the four format conversions. Decoding,
// rasterization and document generation are delegated to external
// libraries; this package only wires them together and packages results.
package converter

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/jdeng/goheif"
)

// HEICToPNG decodes the HEIC image at path and re-encodes it as PNG,
// preserving pixel dimensions.
func HEICToPNG(path string) ([]byte, error) {
	return heicToPNG(path, goheif.Decode)
}

func heicToPNG(path string, decode func(io.Reader) (image.Image, error)) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open heic file: %w", err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode heic: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode png: %w", err)
	}

	return buf.Bytes(), nil
}
