package predict

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMediaClassification(t *testing.T) {
	require.True(t, IsVideo("/tmp/clip.MP4"))
	require.True(t, IsVideo("clip.mkv"))
	require.False(t, IsVideo("photo.jpg"))
	require.True(t, IsImage("photo.JPEG"))
	require.True(t, IsImage("scan.bmp"))
	require.False(t, IsImage("clip.mov"))
	require.False(t, IsImage("README"))
}

func TestPartition(t *testing.T) {
	images, videos := Partition([]string{"a.jpg", "b.mp4", "c.png", "d.txt", "e.avi"})
	require.Equal(t, []string{"a.jpg", "c.png"}, images)
	require.Equal(t, []string{"b.mp4", "e.avi"}, videos)
}
