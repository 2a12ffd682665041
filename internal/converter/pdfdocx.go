package converter

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/ledongthuc/pdf"
)

// PDFToDocx extracts the embedded text layer of the PDF at path and emits a
// DOCX document with one paragraph per extracted line, blank lines
// included, in original order. Layout, images and tables are not preserved;
// scanned (image-only) PDFs yield an empty document.
func PDFToDocx(ctx context.Context, path string) ([]byte, error) {
	text, err := extractText(ctx, path)
	if err != nil {
		return nil, err
	}

	return buildDocx(splitLines(text))
}

func extractText(ctx context.Context, path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer func() { _ = f.Close() }()

	numPages := r.NumPage()
	fonts := make(map[string]*pdf.Font)
	var parts []string

	for i := 1; i <= numPages; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}

		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}

		pageText, err := p.GetPlainText(fonts)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		parts = append(parts, pageText)
	}

	return strings.Join(parts, "\n"), nil
}

// splitLines normalizes line endings and splits, keeping blank lines so
// the paragraph count matches the extracted text exactly.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}

func buildDocx(lines []string) ([]byte, error) {
	doc := docx.New().WithDefaultTheme()

	for _, line := range lines {
		doc.AddParagraph().AddText(line)
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write docx: %w", err)
	}

	return buf.Bytes(), nil
}
