package annotate

// Package annotate renders detection results onto video frames and still images.

import (
	"fmt"

	"github.com/bmharper/cimg/v2"
	"github.com/fogleman/gg"

	"github.com/bearviewcam/bearview/pkg/imagex"
	"github.com/bearviewcam/bearview/pkg/nn"
)

type Color struct {
	R, G, B uint8
}

// One color per class, cycled when the model has more classes than we have colors
var palette = []Color{
	{231, 76, 60},  // red
	{46, 204, 113}, // green
	{52, 152, 219}, // blue
	{241, 196, 15}, // yellow
	{155, 89, 182}, // purple
	{230, 126, 34}, // orange
	{26, 188, 156}, // teal
	{236, 100, 196}, // pink
}

type Options struct {
	LineWidth  float64 // Stroke width of box outlines, in pixels
	DrawLabels bool    // Draw "class confidence" above each box
}

func NewOptions() *Options {
	return &Options{
		LineWidth:  2,
		DrawLabels: true,
	}
}

// DrawDetections returns a copy of img with the detected objects drawn on it.
// classes gives the name for each class index; out of range indices are
// rendered with the numeric index.
// If objects is empty, we return an unmodified copy of the source image.
func DrawDetections(img *cimg.Image, objects []nn.ObjectDetection, classes []string, options *Options) (*cimg.Image, error) {
	if options == nil {
		options = NewOptions()
	}
	rgba, err := imagex.ToRGBA(img)
	if err != nil {
		return nil, err
	}
	if len(objects) == 0 {
		return imagex.FromImage(rgba), nil
	}

	dc := gg.NewContextForRGBA(rgba)
	for _, obj := range objects {
		box := obj.Box
		box.ClipTo(img.Width, img.Height)
		if box.Area() == 0 {
			continue
		}
		color := palette[obj.Class%len(palette)]
		dc.SetRGB255(int(color.R), int(color.G), int(color.B))
		dc.SetLineWidth(options.LineWidth)
		dc.DrawRectangle(float64(box.X), float64(box.Y), float64(box.Width), float64(box.Height))
		dc.Stroke()

		if options.DrawLabels {
			label := labelFor(obj, classes)
			tw, th := dc.MeasureString(label)
			// Label goes above the box, unless the box touches the top of the frame
			lx := float64(box.X)
			ly := float64(box.Y) - th - 4
			if ly < 0 {
				ly = float64(box.Y)
			}
			dc.DrawRectangle(lx, ly, tw+6, th+4)
			dc.Fill()
			dc.SetRGB255(255, 255, 255)
			dc.DrawString(label, lx+3, ly+th)
		}
	}
	return imagex.FromImage(rgba), nil
}

func labelFor(obj nn.ObjectDetection, classes []string) string {
	if obj.Class >= 0 && obj.Class < len(classes) {
		return fmt.Sprintf("%v %.2f", classes[obj.Class], obj.Confidence)
	}
	return fmt.Sprintf("%v %.2f", obj.Class, obj.Confidence)
}
