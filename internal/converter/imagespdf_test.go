package converter

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeTestPNG creates a small solid-color PNG with an alpha channel.
func writeTestPNG(t *testing.T, dir string, name string, w, h int) string {
	t.Helper()

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 30, B: 30, A: 128})
		}
	}

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	return path
}

func TestImagesToPDF_OnePagePerImage(t *testing.T) {
	dir := t.TempDir()

	var paths []string
	for i := 0; i < 3; i++ {
		paths = append(paths, writeTestPNG(t, dir, fmt.Sprintf("img%d.png", i), 40+i, 60))
	}

	data, err := ImagesToPDF(context.Background(), paths)
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output should be a PDF")
	require.Contains(t, string(data), "/Count 3", "page tree should hold one page per image")
}

func TestImagesToPDF_SingleImage(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "only.png", 32, 32)

	data, err := ImagesToPDF(context.Background(), []string{path})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF")))
	require.Contains(t, string(data), "/Count 1")
}

func TestImagesToPDF_UnreadableImage(t *testing.T) {
	dir := t.TempDir()
	good := writeTestPNG(t, dir, "good.png", 16, 16)
	bad := filepath.Join(dir, "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0o644))

	_, err := ImagesToPDF(context.Background(), []string{good, bad})
	require.Error(t, err)
	require.Contains(t, err.Error(), "bad.png")
}

func TestImagesToPDF_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	path := writeTestPNG(t, dir, "img.png", 16, 16)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ImagesToPDF(ctx, []string{path})
	require.ErrorIs(t, err, context.Canceled)
}
