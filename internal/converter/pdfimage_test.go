package converter

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SachinLearns/File-Converter/internal/domain"
)

func TestPackPages_EntryNamesInPageOrder(t *testing.T) {
	pages := [][]byte{
		[]byte("first page"),
		[]byte("second page"),
		[]byte("third page"),
	}

	data, err := packPages(pages, "png")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)

	for i, entry := range zr.File {
		require.Equal(t, fmt.Sprintf("page_%d.png", i+1), entry.Name)

		rc, err := entry.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		require.Equal(t, pages[i], content)
	}
}

func TestPackPages_ExtensionFollowsFormat(t *testing.T) {
	data, err := packPages([][]byte{[]byte("page")}, domain.FormatJPG.Ext())
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 1)
	require.Equal(t, "page_1.jpg", zr.File[0].Name)
}

func TestPackPages_EmptyInputYieldsEmptyArchive(t *testing.T) {
	data, err := packPages(nil, "jpg")
	require.NoError(t, err)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Empty(t, zr.File)
}

func TestPackPages_Idempotent(t *testing.T) {
	pages := [][]byte{[]byte("page one"), []byte("page two")}

	first, err := packPages(pages, "jpg")
	require.NoError(t, err)

	second, err := packPages(pages, "jpg")
	require.NoError(t, err)

	require.Equal(t, first, second, "same pages must produce byte-for-byte equal archives")
}

func TestPDFToImages_CorruptPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.pdf")
	require.NoError(t, os.WriteFile(path, []byte("not a pdf at all"), 0o644))

	_, err := PDFToImages(context.Background(), path, domain.FormatJPG)
	require.Error(t, err)
}

func TestPDFToImages_MissingFile(t *testing.T) {
	_, err := PDFToImages(context.Background(), filepath.Join(t.TempDir(), "nope.pdf"), domain.FormatPNG)
	require.Error(t, err)
}
