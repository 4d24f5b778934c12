package predict

import (
	"path/filepath"
	"strings"
)

var videoExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".mkv": true,
	".wmv": true,
	".flv": true,
}

var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".bmp":  true,
	".gif":  true,
}

func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

func IsImage(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// Partition splits paths into images and videos, preserving order.
// Paths that are neither are dropped.
func Partition(paths []string) (images, videos []string) {
	for _, path := range paths {
		switch {
		case IsImage(path):
			images = append(images, path)
		case IsVideo(path):
			videos = append(videos, path)
		}
	}
	return images, videos
}
