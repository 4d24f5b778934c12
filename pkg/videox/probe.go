package videox

import (
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// Info describes the first video stream of a file
type Info struct {
	Width      int
	Height     int
	FrameCount int     // 0 if the container does not record it
	FPS        float64 // 0 if unknown
}

type ffprobeOutput struct {
	Streams []ffprobeStream `json:"streams"`
}

type ffprobeStream struct {
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	NbFrames     string `json:"nb_frames"`
	AvgFrameRate string `json:"avg_frame_rate"`
	Duration     string `json:"duration"`
}

// Probe returns the dimensions, frame count and frame rate of the first video
// stream in filename.
func Probe(filename string) (Info, error) {
	ffprobe, err := findTool("ffprobe")
	if err != nil {
		return Info{}, err
	}
	cmd := exec.Command(ffprobe,
		"-v", "error",
		"-select_streams", "v:0",
		"-show_entries", "stream=width,height,nb_frames,avg_frame_rate,duration",
		"-of", "json",
		filename)
	raw, err := cmd.Output()
	if err != nil {
		return Info{}, fmt.Errorf("ffprobe failed on '%v': %w", filename, err)
	}
	return parseProbeOutput(raw, filename)
}

func parseProbeOutput(raw []byte, filename string) (Info, error) {
	parsed := ffprobeOutput{}
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return Info{}, fmt.Errorf("Failed to parse ffprobe output for '%v': %w", filename, err)
	}
	if len(parsed.Streams) == 0 {
		return Info{}, fmt.Errorf("'%v' has no video stream", filename)
	}
	stream := parsed.Streams[0]
	if stream.Width <= 0 || stream.Height <= 0 {
		return Info{}, fmt.Errorf("'%v' has invalid dimensions %vx%v", filename, stream.Width, stream.Height)
	}
	info := Info{
		Width:  stream.Width,
		Height: stream.Height,
		FPS:    parseFrameRate(stream.AvgFrameRate),
	}
	if n, err := strconv.Atoi(stream.NbFrames); err == nil && n > 0 {
		info.FrameCount = n
	} else if d, err := strconv.ParseFloat(stream.Duration, 64); err == nil && info.FPS > 0 {
		// Some containers (eg mkv) don't store nb_frames
		info.FrameCount = int(d*info.FPS + 0.5)
	}
	return info, nil
}

// parseFrameRate parses an ffprobe rational such as "30000/1001".
// Returns 0 if the rate is absent or degenerate ("0/0").
func parseFrameRate(rate string) float64 {
	num, den, found := strings.Cut(rate, "/")
	if !found {
		v, _ := strconv.ParseFloat(rate, 64)
		return v
	}
	n, err1 := strconv.ParseFloat(num, 64)
	d, err2 := strconv.ParseFloat(den, 64)
	if err1 != nil || err2 != nil || d == 0 {
		return 0
	}
	return n / d
}
