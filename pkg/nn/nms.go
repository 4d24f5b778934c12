package nn

import (
	"sort"
)

// NonMaxSuppression removes overlapping detections of the same class,
// keeping the most confident of each overlapping group.
// iouThreshold is the IoU above which two boxes are considered duplicates.
// The result is sorted by descending confidence.
func NonMaxSuppression(objects []ObjectDetection, iouThreshold float32) []ObjectDetection {
	sorted := make([]ObjectDetection, len(objects))
	copy(sorted, objects)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Confidence > sorted[j].Confidence
	})

	keep := make([]ObjectDetection, 0, len(sorted))
	for _, candidate := range sorted {
		duplicate := false
		for _, existing := range keep {
			if existing.Class == candidate.Class && existing.Box.IOU(candidate.Box) > iouThreshold {
				duplicate = true
				break
			}
		}
		if !duplicate {
			keep = append(keep, candidate)
		}
	}
	return keep
}
