package videox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFrameRate(t *testing.T) {
	require.InDelta(t, 29.97, parseFrameRate("30000/1001"), 0.001)
	require.InDelta(t, 25.0, parseFrameRate("25/1"), 0.001)
	require.InDelta(t, 0.0, parseFrameRate("0/0"), 0.001)
	require.InDelta(t, 0.0, parseFrameRate(""), 0.001)
	require.InDelta(t, 24.0, parseFrameRate("24"), 0.001)
}

func TestParseProbeOutput(t *testing.T) {
	raw := []byte(`{"streams":[{"width":1920,"height":1080,"nb_frames":"300","avg_frame_rate":"30/1","duration":"10.0"}]}`)
	info, err := parseProbeOutput(raw, "clip.mp4")
	require.NoError(t, err)
	require.Equal(t, Info{Width: 1920, Height: 1080, FrameCount: 300, FPS: 30}, info)
}

func TestParseProbeOutputNoFrameCount(t *testing.T) {
	// mkv style: no nb_frames, so we estimate from duration * fps
	raw := []byte(`{"streams":[{"width":640,"height":480,"avg_frame_rate":"25/1","duration":"4.0"}]}`)
	info, err := parseProbeOutput(raw, "clip.mkv")
	require.NoError(t, err)
	require.Equal(t, 100, info.FrameCount)
	require.InDelta(t, 25.0, info.FPS, 0.001)
}

func TestParseProbeOutputNoStreams(t *testing.T) {
	_, err := parseProbeOutput([]byte(`{"streams":[]}`), "audio.mp4")
	require.Error(t, err)
}

func TestParseProbeOutputBadDimensions(t *testing.T) {
	raw := []byte(`{"streams":[{"width":0,"height":480}]}`)
	_, err := parseProbeOutput(raw, "bad.mp4")
	require.Error(t, err)
}
