package onnx

// Package onnx runs YOLO-family detection models through ONNX Runtime.
// This is the concrete implementation behind the nn.ObjectDetector interface.

import (
	"fmt"
	"os"
	"sync"

	"github.com/bmharper/cimg/v2"
	ort "github.com/yalue/onnxruntime_go"

	"github.com/bearviewcam/bearview/pkg/nn"
)

// Environment variable that points at the onnxruntime shared library
// (libonnxruntime.so / onnxruntime.dll). If unset, we rely on the platform
// default search path.
const SharedLibraryEnv = "ONNXRUNTIME_SHARED_LIBRARY"

var (
	runtimeOnce sync.Once
	runtimeErr  error
)

func ensureRuntime() error {
	runtimeOnce.Do(func() {
		if lib := os.Getenv(SharedLibraryEnv); lib != "" {
			ort.SetSharedLibraryPath(lib)
		}
		runtimeErr = ort.InitializeEnvironment()
	})
	return runtimeErr
}

// Detector runs a YOLOv8-style ONNX graph.
// A Detector is not safe for concurrent use - the input/output tensors are
// reused between calls. Our pipeline is strictly sequential, so this is fine.
type Detector struct {
	session  *ort.AdvancedSession
	input    *ort.Tensor[float32]
	output   *ort.Tensor[float32]
	config   nn.ModelConfig
	numCells int
}

// NewDetector loads a YOLOv8 ONNX model from modelFile.
// config provides the input resolution and the class list.
func NewDetector(config *nn.ModelConfig, modelFile string) (*Detector, error) {
	if err := ensureRuntime(); err != nil {
		return nil, fmt.Errorf("Failed to initialize ONNX Runtime: %w", err)
	}
	if config.Width%32 != 0 || config.Height%32 != 0 {
		return nil, fmt.Errorf("Model resolution %vx%v is not a multiple of 32", config.Width, config.Height)
	}

	// YOLOv8 predicts one candidate box per cell, over strides 8, 16 and 32.
	// eg 640x640 -> 80*80 + 40*40 + 20*20 = 8400 cells.
	numCells := 0
	for _, stride := range []int{8, 16, 32} {
		numCells += (config.Width / stride) * (config.Height / stride)
	}

	input, err := ort.NewTensor(ort.NewShape(1, 3, int64(config.Height), int64(config.Width)),
		make([]float32, 3*config.Width*config.Height))
	if err != nil {
		return nil, err
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(1, int64(4+len(config.Classes)), int64(numCells)))
	if err != nil {
		input.Destroy()
		return nil, err
	}
	session, err := ort.NewAdvancedSession(modelFile,
		[]string{"images"}, []string{"output0"},
		[]ort.ArbitraryTensor{input}, []ort.ArbitraryTensor{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("Failed to load ONNX model '%v': %w", modelFile, err)
	}

	return &Detector{
		session:  session,
		input:    input,
		output:   output,
		config:   *config,
		numCells: numCells,
	}, nil
}

func (d *Detector) Close() {
	if d.session != nil {
		d.session.Destroy()
		d.session = nil
	}
	if d.input != nil {
		d.input.Destroy()
		d.input = nil
	}
	if d.output != nil {
		d.output.Destroy()
		d.output = nil
	}
}

func (d *Detector) Config() *nn.ModelConfig {
	return &d.config
}

func (d *Detector) DetectObjects(img *cimg.Image, params *nn.DetectionParams) ([]nn.ObjectDetection, error) {
	if img.NChan() != 3 {
		return nil, fmt.Errorf("Expected RGB image, but image has %v channels", img.NChan())
	}
	if params == nil {
		params = nn.NewDetectionParams()
	}
	probThreshold := params.ProbabilityThreshold
	if probThreshold == 0 {
		probThreshold = nn.DefaultProbabilityThreshold
	}
	iouThreshold := params.NmsIouThreshold
	if iouThreshold == 0 {
		iouThreshold = nn.DefaultNmsIouThreshold
	}

	boxed, xform := letterbox(img, d.config.Width, d.config.Height)
	toNCHW(boxed, d.input.GetData())

	if err := d.session.Run(); err != nil {
		return nil, fmt.Errorf("Inference failed: %w", err)
	}

	objects := decodeYOLOv8(d.output.GetData(), len(d.config.Classes), d.numCells, probThreshold)
	objects = nn.NonMaxSuppression(objects, iouThreshold)
	for i := range objects {
		objects[i].Box = xform.toSource(objects[i].Box)
		objects[i].Box.ClipTo(img.Width, img.Height)
	}
	return objects, nil
}
