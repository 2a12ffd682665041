package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"

	"github.com/gen2brain/go-fitz"

	"github.com/SachinLearns/File-Converter/internal/domain"
	"github.com/SachinLearns/File-Converter/pkg/utils"
)

// PDFToImages rasterizes every page of the PDF at path, encodes each page in
// the requested format and packages the pages into a single ZIP archive with
// entries page_1.<ext>, page_2.<ext>, ... in page order.
func PDFToImages(ctx context.Context, path string, format domain.ImageFormat) ([]byte, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer doc.Close()

	pages := make([][]byte, 0, doc.NumPage())
	for n := 0; n < doc.NumPage(); n++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := doc.Image(n)
		if err != nil {
			return nil, fmt.Errorf("failed to rasterize page %d: %w", n+1, err)
		}

		encoded, err := utils.EncodeImage(img, format)
		if err != nil {
			return nil, fmt.Errorf("failed to encode page %d: %w", n+1, err)
		}

		pages = append(pages, encoded)
	}

	return packPages(pages, format.Ext())
}

// packPages builds the ZIP archive sent to the client. Entry names are
// 1-based so page_1 is the first page of the document.
func packPages(pages [][]byte, ext string) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	for i, page := range pages {
		entry, err := zw.Create(fmt.Sprintf("page_%d.%s", i+1, ext))
		if err != nil {
			return nil, fmt.Errorf("failed to create zip entry: %w", err)
		}
		if _, err := entry.Write(page); err != nil {
			return nil, fmt.Errorf("failed to write zip entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize zip: %w", err)
	}

	return buf.Bytes(), nil
}
