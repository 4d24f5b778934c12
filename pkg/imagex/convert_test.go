package imagex

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/bmharper/cimg/v2"
	"github.com/stretchr/testify/require"
)

func TestConvertRoundTrip(t *testing.T) {
	src := cimg.NewImage(4, 3, cimg.PixelFormatRGB)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			src.Pixels[y*src.Stride+x*3] = byte(x * 50)
			src.Pixels[y*src.Stride+x*3+1] = byte(y * 70)
			src.Pixels[y*src.Stride+x*3+2] = 9
		}
	}
	rgba, err := ToRGBA(src)
	require.NoError(t, err)
	back := FromImage(rgba)
	require.Equal(t, src.Width, back.Width)
	require.Equal(t, src.Height, back.Height)
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			for c := 0; c < 3; c++ {
				require.Equal(t, src.Pixels[y*src.Stride+x*3+c], back.Pixels[y*back.Stride+x*3+c])
			}
		}
	}
}

func TestFromImageNonRGBA(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(0, 0, color.Gray{Y: 200})
	img := FromImage(gray)
	require.Equal(t, 2, img.Width)
	require.Equal(t, byte(200), img.Pixels[0])
	require.Equal(t, byte(200), img.Pixels[1])
	require.Equal(t, byte(200), img.Pixels[2])
}

func TestWriteAndReadPNG(t *testing.T) {
	dir := t.TempDir()
	filename := filepath.Join(dir, "out.png")

	src := cimg.NewImage(8, 8, cimg.PixelFormatRGB)
	for i := 0; i < len(src.Pixels); i += 3 {
		src.Pixels[i] = 255
	}
	require.NoError(t, WriteFile(filename, src))

	back, err := ReadFile(filename)
	require.NoError(t, err)
	require.Equal(t, 8, back.Width)
	require.Equal(t, 8, back.Height)
	require.Equal(t, byte(255), back.Pixels[0])
	require.Equal(t, byte(0), back.Pixels[1])
}

func TestWriteUnsupportedFormat(t *testing.T) {
	src := cimg.NewImage(2, 2, cimg.PixelFormatRGB)
	err := WriteFile(filepath.Join(t.TempDir(), "out.tiff"), src)
	require.Error(t, err)
}
