package videox

import (
	"io"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNextFrameAfterDrain(t *testing.T) {
	// Once the decoder process is gone, further calls report end of stream
	// instead of touching the dead process handle
	r := &Reader{Info: Info{Width: 2, Height: 2}}
	for i := 0; i < 2; i++ {
		img, err := r.NextFrame()
		require.Nil(t, img)
		require.Equal(t, io.EOF, err)
	}
	r.Close()
}
