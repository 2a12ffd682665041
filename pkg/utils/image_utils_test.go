package utils

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SachinLearns/File-Converter/internal/domain"
)

func TestFlattenToRGB_DropsAlphaOntoWhite(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	// Fully transparent pixel should come out white.
	src.Set(0, 0, color.NRGBA{A: 0})
	src.Set(1, 1, color.NRGBA{R: 255, A: 255})

	out := FlattenToRGB(src)

	require.Equal(t, image.Rect(0, 0, 2, 2), out.Bounds())

	r, g, b, a := out.At(0, 0).RGBA()
	require.Equal(t, uint32(0xffff), r)
	require.Equal(t, uint32(0xffff), g)
	require.Equal(t, uint32(0xffff), b)
	require.Equal(t, uint32(0xffff), a)

	r, _, _, _ = out.At(1, 1).RGBA()
	require.Equal(t, uint32(0xffff), r)
}

func TestFlattenToRGB_NormalizesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 10, 14, 12))

	out := FlattenToRGB(src)
	require.Equal(t, image.Rect(0, 0, 4, 2), out.Bounds())
}

func TestEncodeImage_PNGRoundTrips(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 4))

	data, err := EncodeImage(src, domain.FormatPNG)
	require.NoError(t, err)

	decoded, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 8, decoded.Bounds().Dx())
	require.Equal(t, 4, decoded.Bounds().Dy())
}

func TestEncodeImage_JPEGKeepsDimensions(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 6, 3))

	data, err := EncodeImage(src, domain.FormatJPG)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 6, decoded.Bounds().Dx())
	require.Equal(t, 3, decoded.Bounds().Dy())
}

func TestEncodeImage_UnknownFormat(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))

	_, err := EncodeImage(src, domain.ImageFormat("BMP"))
	require.Error(t, err)
}
