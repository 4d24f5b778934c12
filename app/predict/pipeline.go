package predict

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bmharper/cimg/v2"
	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/pkg/annotate"
	"github.com/bearviewcam/bearview/pkg/imagex"
	"github.com/bearviewcam/bearview/pkg/nn"
	"github.com/bearviewcam/bearview/pkg/nnload"
	"github.com/bearviewcam/bearview/pkg/videox"
)

// frameSource yields decoded video frames until io.EOF
type frameSource interface {
	Info() videox.Info
	NextFrame() (*cimg.Image, error)
	Close()
}

// frameSink consumes annotated frames. Close finalizes the output file and
// surfaces encoder failures.
type frameSink interface {
	WriteFrame(img *cimg.Image) error
	Close() error
}

// pipelineEnv is the worker's view of the outside world. Tests swap these out
// for in-memory fakes; production code always uses defaultEnv.
type pipelineEnv struct {
	loadModel func(logger logs.Log, modelPath string) (nn.ObjectDetector, error)
	openVideo func(filename string) (frameSource, error)
	newWriter func(filename string, width, height int, fps float64) (frameSink, error)
	readImage func(filename string) (*cimg.Image, error)
	saveImage func(filename string, img *cimg.Image) error
	mkdirTemp func(dir, pattern string) (string, error)
}

type readerSource struct {
	reader *videox.Reader
}

func (r readerSource) Info() videox.Info                { return r.reader.Info }
func (r readerSource) NextFrame() (*cimg.Image, error)  { return r.reader.NextFrame() }
func (r readerSource) Close()                           { r.reader.Close() }

func defaultEnv() *pipelineEnv {
	return &pipelineEnv{
		loadModel: nnload.LoadModel,
		openVideo: func(filename string) (frameSource, error) {
			reader, err := videox.NewReader(filename)
			if err != nil {
				return nil, err
			}
			return readerSource{reader: reader}, nil
		},
		newWriter: func(filename string, width, height int, fps float64) (frameSink, error) {
			return videox.NewWriter(filename, width, height, fps)
		},
		readImage: imagex.ReadFile,
		saveImage: imagex.WriteFile,
		mkdirTemp: os.MkdirTemp,
	}
}

// processVideo detects objects in every frame of input, writing an annotated
// copy of the video to <outDir>/video_<index>/<basename>.
func (r *Runner) processVideo(model nn.ObjectDetector, input, outDir string, index int, progress *progressTracker) (string, error) {
	src, err := r.env.openVideo(input)
	if err != nil {
		return "", err
	}
	defer src.Close()

	info := src.Info()
	subDir := filepath.Join(outDir, fmt.Sprintf("video_%v", index))
	if err := os.MkdirAll(subDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(subDir, filepath.Base(input))
	sink, err := r.env.newWriter(outPath, info.Width, info.Height, info.FPS)
	if err != nil {
		return "", err
	}
	closed := false
	defer func() {
		if !closed {
			sink.Close()
		}
	}()

	params := nn.NewDetectionParams()
	classes := model.Config().Classes
	frameIdx := 0
	for {
		frame, err := src.NextFrame()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		objects, err := model.DetectObjects(frame, params)
		if err != nil {
			return "", err
		}
		out := frame
		if len(objects) > 0 {
			out, err = annotate.DrawDetections(frame, objects, classes, nil)
			if err != nil {
				return "", err
			}
		}
		if err := sink.WriteFrame(out); err != nil {
			return "", err
		}
		frameIdx++
		progress.frameDone(frameIdx, info.FrameCount)
	}
	closed = true
	if err := sink.Close(); err != nil {
		return "", err
	}
	return outPath, nil
}

// processImage runs detection once on input and saves the annotated copy as
// <outDir>/annotated_<basename>. The image is decoded and inferred exactly
// once, whether or not anything is detected.
func (r *Runner) processImage(model nn.ObjectDetector, input, outDir string) (string, error) {
	img, err := r.env.readImage(input)
	if err != nil {
		return "", err
	}
	objects, err := model.DetectObjects(img, nn.NewDetectionParams())
	if err != nil {
		return "", err
	}
	annotated, err := annotate.DrawDetections(img, objects, model.Config().Classes, nil)
	if err != nil {
		return "", err
	}
	outPath := filepath.Join(outDir, "annotated_"+filepath.Base(input))
	if err := r.env.saveImage(outPath, annotated); err != nil {
		return "", err
	}
	return outPath, nil
}
