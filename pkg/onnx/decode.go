package onnx

import (
	"github.com/bearviewcam/bearview/pkg/nn"
)

// decodeYOLOv8 turns the raw output tensor into detections in model input space.
// The tensor layout is [1, 4+numClasses, numCells]: 4 rows of box geometry
// (center x, center y, width, height), then one row of scores per class.
func decodeYOLOv8(data []float32, numClasses, numCells int, probThreshold float32) []nn.ObjectDetection {
	objects := []nn.ObjectDetection{}
	for i := 0; i < numCells; i++ {
		bestClass := -1
		bestScore := float32(0)
		for c := 0; c < numClasses; c++ {
			score := data[(4+c)*numCells+i]
			if score > bestScore {
				bestScore = score
				bestClass = c
			}
		}
		if bestClass < 0 || bestScore < probThreshold {
			continue
		}
		cx := data[i]
		cy := data[numCells+i]
		w := data[2*numCells+i]
		h := data[3*numCells+i]
		objects = append(objects, nn.ObjectDetection{
			Class:      bestClass,
			Confidence: bestScore,
			Box: nn.Rect{
				X:      int(cx - w/2 + 0.5),
				Y:      int(cy - h/2 + 0.5),
				Width:  int(w + 0.5),
				Height: int(h + 0.5),
			},
		})
	}
	return objects
}
