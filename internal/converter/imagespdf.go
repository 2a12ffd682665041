package converter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"

	_ "image/gif"
	_ "image/png"

	"github.com/jung-kurt/gofpdf"

	"github.com/SachinLearns/File-Converter/pkg/utils"
)

// ImagesToPDF composes the images at paths into a single multi-page PDF,
// one page per image in the given order. Every image is flattened to RGB
// first, so transparency is dropped. Each page is sized to its source
// image at one point per pixel.
func ImagesToPDF(ctx context.Context, paths []string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := decodeImage(path)
		if err != nil {
			return nil, err
		}

		rgb := utils.FlattenToRGB(img)
		var jpg bytes.Buffer
		if err := jpeg.Encode(&jpg, rgb, &jpeg.Options{Quality: 95}); err != nil {
			return nil, fmt.Errorf("failed to encode page image: %w", err)
		}

		name := fmt.Sprintf("img_%d", i)
		opts := gofpdf.ImageOptions{ImageType: "JPG"}
		pdf.RegisterImageOptionsReader(name, opts, &jpg)

		w := float64(rgb.Bounds().Dx())
		h := float64(rgb.Bounds().Dy())
		pdf.AddPageFormat("P", gofpdf.SizeType{Wd: w, Ht: h})
		pdf.ImageOptions(name, 0, 0, w, h, false, opts, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to write pdf: %w", err)
	}

	return buf.Bytes(), nil
}

func decodeImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image %s: %w", filepath.Base(path), err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", filepath.Base(path), err)
	}

	return img, nil
}
