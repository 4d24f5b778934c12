// Package videox reads and writes video files by driving ffmpeg/ffprobe as
// child processes, with raw rgb24 frames moving over pipes.
package videox

import (
	"fmt"
	"os/exec"
)

// findTool resolves an ffmpeg-suite binary on the PATH
func findTool(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("'%v' not found on PATH. Install ffmpeg to process video files", name)
	}
	return path, nil
}
