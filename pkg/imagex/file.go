package imagex

import (
	"fmt"
	"image"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmharper/cimg/v2"
	"golang.org/x/image/bmp"

	_ "image/jpeg"
)

// ReadFile loads an image from disk and returns it as 24-bit RGB.
// JPEGs go through cimg (libjpeg-turbo); everything else through the
// standard library decoders.
func ReadFile(filename string) (*cimg.Image, error) {
	switch ext(filename) {
	case ".jpg", ".jpeg":
		return cimg.ReadFile(filename)
	default:
		f, err := os.Open(filename)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		src, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("Failed to decode image %v: %w", filename, err)
		}
		return FromImage(src), nil
	}
}

// WriteFile saves an image to disk, choosing the codec from the filename extension
func WriteFile(filename string, img *cimg.Image) error {
	switch ext(filename) {
	case ".jpg", ".jpeg":
		b, err := cimg.Compress(img, cimg.MakeCompressParams(cimg.Sampling(cimg.Sampling420), 95, cimg.Flags(0)))
		if err != nil {
			return err
		}
		return os.WriteFile(filename, b, 0644)
	case ".png":
		return encodeWith(filename, img, func(f *os.File, rgba image.Image) error {
			return png.Encode(f, rgba)
		})
	case ".bmp":
		return encodeWith(filename, img, func(f *os.File, rgba image.Image) error {
			return bmp.Encode(f, rgba)
		})
	case ".gif":
		return encodeWith(filename, img, func(f *os.File, rgba image.Image) error {
			return gif.Encode(f, rgba, nil)
		})
	default:
		return fmt.Errorf("Unsupported image format '%v'", ext(filename))
	}
}

func encodeWith(filename string, img *cimg.Image, encode func(*os.File, image.Image) error) error {
	rgba, err := ToRGBA(img)
	if err != nil {
		return err
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := encode(f, rgba); err != nil {
		os.Remove(filename)
		return err
	}
	return nil
}

func ext(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}
