package onnx

import (
	"github.com/bmharper/cimg/v2"

	"github.com/bearviewcam/bearview/pkg/gen"
	"github.com/bearviewcam/bearview/pkg/nn"
)

// Gray value used to pad the letterboxed image, matching the ultralytics convention
const padValue = 114

// letterboxTransform maps boxes in model input space back to source image space
type letterboxTransform struct {
	scale float32
	padX  int
	padY  int
}

func (t letterboxTransform) toSource(box nn.Rect) nn.Rect {
	return nn.Rect{
		X:      int(float32(box.X-t.padX)/t.scale + 0.5),
		Y:      int(float32(box.Y-t.padY)/t.scale + 0.5),
		Width:  int(float32(box.Width)/t.scale + 0.5),
		Height: int(float32(box.Height)/t.scale + 0.5),
	}
}

// letterbox scales src to fit inside width x height, preserving aspect ratio,
// and pads the remainder with a neutral gray.
func letterbox(src *cimg.Image, width, height int) (*cimg.Image, letterboxTransform) {
	scale := gen.Min(float32(width)/float32(src.Width), float32(height)/float32(src.Height))
	scaledWidth := gen.Min(int(float32(src.Width)*scale+0.5), width)
	scaledHeight := gen.Min(int(float32(src.Height)*scale+0.5), height)

	scaled := src
	if scaledWidth != src.Width || scaledHeight != src.Height {
		scaled = cimg.ResizeNew(src, scaledWidth, scaledHeight)
	}

	padX := (width - scaledWidth) / 2
	padY := (height - scaledHeight) / 2

	dst := cimg.NewImage(width, height, cimg.PixelFormatRGB)
	for i := range dst.Pixels {
		dst.Pixels[i] = padValue
	}
	for y := 0; y < scaledHeight; y++ {
		srcRow := scaled.Pixels[y*scaled.Stride : y*scaled.Stride+scaledWidth*3]
		dstRow := dst.Pixels[(y+padY)*dst.Stride+padX*3:]
		copy(dstRow, srcRow)
	}

	return dst, letterboxTransform{scale: scale, padX: padX, padY: padY}
}

// toNCHW fills dst with the image as planar RGB float32, normalized to [0,1].
// dst must have room for 3 * width * height values.
func toNCHW(img *cimg.Image, dst []float32) {
	planeSize := img.Width * img.Height
	for y := 0; y < img.Height; y++ {
		row := img.Pixels[y*img.Stride:]
		base := y * img.Width
		for x := 0; x < img.Width; x++ {
			dst[base+x] = float32(row[x*3]) / 255
			dst[planeSize+base+x] = float32(row[x*3+1]) / 255
			dst[2*planeSize+base+x] = float32(row[x*3+2]) / 255
		}
	}
}
