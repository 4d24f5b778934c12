package videox

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"github.com/bmharper/cimg/v2"
)

// Writer encodes a sequence of RGB frames into an H264 mp4 file.
type Writer struct {
	width  int
	height int

	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stderr *bytes.Buffer
}

// NewWriter starts an encoder writing to filename.
// Every frame passed to WriteFrame must be width x height RGB.
// fps of 0 falls back to 30.
func NewWriter(filename string, width, height int, fps float64) (*Writer, error) {
	ffmpeg, err := findTool("ffmpeg")
	if err != nil {
		return nil, err
	}
	if fps <= 0 {
		fps = 30
	}
	cmd := exec.Command(ffmpeg,
		"-v", "error",
		"-y",
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-s", fmt.Sprintf("%vx%v", width, height),
		"-r", fmt.Sprintf("%.4f", fps),
		"-i", "-",
		"-c:v", "libx264",
		"-pix_fmt", "yuv420p",
		filename)
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("Failed to start ffmpeg for '%v': %w", filename, err)
	}
	return &Writer{
		width:  width,
		height: height,
		cmd:    cmd,
		stdin:  stdin,
		stderr: stderr,
	}, nil
}

func (w *Writer) WriteFrame(img *cimg.Image) error {
	if img.Width != w.width || img.Height != w.height {
		return fmt.Errorf("Frame size %vx%v does not match encoder size %vx%v", img.Width, img.Height, w.width, w.height)
	}
	if img.NChan() != 3 {
		return fmt.Errorf("Expected RGB frame, but frame has %v channels", img.NChan())
	}
	rowBytes := w.width * 3
	if img.Stride == rowBytes {
		_, err := w.stdin.Write(img.Pixels[:rowBytes*w.height])
		return err
	}
	for y := 0; y < w.height; y++ {
		if _, err := w.stdin.Write(img.Pixels[y*img.Stride : y*img.Stride+rowBytes]); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes the encoder and finalizes the file.
// You must check the error, because encoding failures surface here.
func (w *Writer) Close() error {
	if w.cmd == nil {
		return nil
	}
	w.stdin.Close()
	err := w.cmd.Wait()
	w.cmd = nil
	if err != nil {
		return fmt.Errorf("ffmpeg encode failed: %w (%v)", err, w.stderr.String())
	}
	return nil
}
