package imagex

// Package imagex reads and writes still images, and converts between our
// native RGB representation (cimg) and the Go standard library image types.

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/bmharper/cimg/v2"
)

// ToRGBA converts an RGB or RGBA cimg image into a standard library RGBA image
func ToRGBA(img *cimg.Image) (*image.RGBA, error) {
	dst := image.NewRGBA(image.Rect(0, 0, img.Width, img.Height))
	switch img.NChan() {
	case 3:
		for y := 0; y < img.Height; y++ {
			src := img.Pixels[y*img.Stride:]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < img.Width; x++ {
				out[x*4] = src[x*3]
				out[x*4+1] = src[x*3+1]
				out[x*4+2] = src[x*3+2]
				out[x*4+3] = 255
			}
		}
	case 4:
		for y := 0; y < img.Height; y++ {
			copy(dst.Pix[y*dst.Stride:y*dst.Stride+img.Width*4], img.Pixels[y*img.Stride:])
		}
	default:
		return nil, fmt.Errorf("Unsupported channel count %v", img.NChan())
	}
	return dst, nil
}

// FromImage converts any standard library image into a 24-bit RGB cimg image
func FromImage(src image.Image) *cimg.Image {
	bounds := src.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	rgba, ok := src.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(image.Rect(0, 0, width, height))
		draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	}

	dst := cimg.NewImage(width, height, cimg.PixelFormatRGB)
	for y := 0; y < height; y++ {
		in := rgba.Pix[y*rgba.Stride:]
		out := dst.Pixels[y*dst.Stride:]
		for x := 0; x < width; x++ {
			out[x*3] = in[x*4]
			out[x*3+1] = in[x*4+1]
			out[x*3+2] = in[x*4+2]
		}
	}
	return dst
}
