package nnload

// Package nnload wraps up our 'nn' interface layer, and has concrete references to our
// neural network implementation (ONNX Runtime), so that you can just call one function
// to load a model, and not need to know about the implementation details.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/pkg/nn"
	"github.com/bearviewcam/bearview/pkg/onnx"
)

// LoadModel loads a neural network from disk.
// modelPath is the path to a .onnx file. If a sibling .json file exists
// (eg model.json next to model.onnx), it is read as the model config, and if a
// sibling .names file exists, it is read as the class list. Without those we
// assume a yolov8 model at 640x640, trained on the 80 COCO classes.
func LoadModel(logger logs.Log, modelPath string) (nn.ObjectDetector, error) {
	if _, err := os.Stat(modelPath); err != nil {
		return nil, fmt.Errorf("Model file '%v' is not readable: %w", modelPath, err)
	}

	stub := strings.TrimSuffix(modelPath, filepath.Ext(modelPath))

	config := &nn.ModelConfig{
		Architecture: "yolov8",
		Width:        640,
		Height:       640,
		Classes:      nn.COCOClasses,
	}
	if _, err := os.Stat(stub + ".json"); err == nil {
		config, err = nn.LoadModelConfig(stub + ".json")
		if err != nil {
			return nil, err
		}
		logger.Infof("Loaded model config %v (%v, %vx%v, %v classes)",
			stub+".json", config.Architecture, config.Width, config.Height, len(config.Classes))
	} else {
		logger.Infof("No config next to '%v', assuming %v at %vx%v", modelPath, config.Architecture, config.Width, config.Height)
	}
	if _, err := os.Stat(stub + ".names"); err == nil {
		classes, err := nn.LoadClassFile(stub + ".names")
		if err != nil {
			return nil, err
		}
		config.Classes = classes
		logger.Infof("Loaded %v class names from %v", len(classes), stub+".names")
	}
	if len(config.Classes) == 0 {
		return nil, fmt.Errorf("Model '%v' has no classes", modelPath)
	}

	return onnx.NewDetector(config, modelPath)
}
