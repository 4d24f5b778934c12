package predict

import (
	"github.com/bearviewcam/bearview/pkg/gen"
)

// progressTracker turns per-file and per-frame completion into a single
// monotonic 0..100 percentage across the whole job. Duplicate percentages are
// not re-emitted.
type progressTracker struct {
	events     chan<- Event
	totalFiles int
	filesDone  int
	last       int
}

func newProgressTracker(events chan<- Event, totalFiles int) *progressTracker {
	return &progressTracker{
		events:     events,
		totalFiles: totalFiles,
		last:       -1,
	}
}

// frameDone reports that frameIdx frames of the current video are written.
// totalFrames of 0 means the container did not record a frame count, in which
// case the video contributes no sub-file progress until it completes.
func (p *progressTracker) frameDone(frameIdx, totalFrames int) {
	frac := 0.0
	if totalFrames > 0 {
		// A stream can deliver more frames than the container claimed. Hold
		// at the file boundary rather than crossing into the next file's
		// share.
		frac = gen.Clamp(float64(frameIdx)/float64(totalFrames), 0, 1)
	}
	p.emit(int(100 * (float64(p.filesDone) + frac) / float64(p.totalFiles)))
}

func (p *progressTracker) fileDone() {
	p.filesDone++
	p.emit(100 * p.filesDone / p.totalFiles)
}

func (p *progressTracker) emit(percent int) {
	if percent <= p.last {
		return
	}
	p.last = percent
	p.events <- Event{Type: EventProgress, Progress: percent}
}
