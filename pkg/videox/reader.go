package videox

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"

	"github.com/bmharper/cimg/v2"
)

// Reader decodes a video file into a sequence of RGB frames.
// Frames arrive from ffmpeg as raw rgb24 over a pipe.
type Reader struct {
	Info Info

	cmd    *exec.Cmd
	stdout io.ReadCloser
	stderr *bytes.Buffer
	frame  []byte
}

// NewReader probes filename and starts decoding it.
// Call NextFrame until it returns io.EOF, then Close.
func NewReader(filename string) (*Reader, error) {
	info, err := Probe(filename)
	if err != nil {
		return nil, err
	}
	ffmpeg, err := findTool("ffmpeg")
	if err != nil {
		return nil, err
	}
	cmd := exec.Command(ffmpeg,
		"-v", "error",
		"-i", filename,
		"-f", "rawvideo",
		"-pix_fmt", "rgb24",
		"-")
	stderr := &bytes.Buffer{}
	cmd.Stderr = stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("Failed to start ffmpeg for '%v': %w", filename, err)
	}
	return &Reader{
		Info:   info,
		cmd:    cmd,
		stdout: stdout,
		stderr: stderr,
		frame:  make([]byte, info.Width*info.Height*3),
	}, nil
}

// NextFrame returns the next decoded frame, or io.EOF after the last one.
// The returned image is freshly allocated, so the caller may hold onto it.
func (r *Reader) NextFrame() (*cimg.Image, error) {
	if r.cmd == nil {
		// decoder already drained or closed
		return nil, io.EOF
	}
	_, err := io.ReadFull(r.stdout, r.frame)
	if err == io.EOF || err == io.ErrUnexpectedEOF {
		if werr := r.cmd.Wait(); werr != nil {
			return nil, fmt.Errorf("ffmpeg decode failed: %w (%v)", werr, r.stderr.String())
		}
		r.cmd = nil
		return nil, io.EOF
	} else if err != nil {
		return nil, err
	}
	img := cimg.NewImage(r.Info.Width, r.Info.Height, cimg.PixelFormatRGB)
	copy(img.Pixels, r.frame)
	return img, nil
}

// Close releases the decoder. Safe to call after NextFrame returned io.EOF.
func (r *Reader) Close() {
	if r.cmd != nil && r.cmd.Process != nil {
		r.cmd.Process.Kill()
		r.cmd.Wait()
		r.cmd = nil
	}
	if r.stdout != nil {
		r.stdout.Close()
		r.stdout = nil
	}
}
