package main

// Batch CLI for the detection pipeline. Runs the same worker as the desktop
// app, printing progress to stdout instead of a progress bar.

import (
	"fmt"
	"os"

	"github.com/akamensky/argparse"
	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/app/predict"
)

func main() {
	parser := argparse.NewParser("predict", "Run object detection over images and videos")
	model := parser.String("m", "model", &argparse.Options{Help: "Path to ONNX detection model", Required: true})
	inputs := parser.StringList("i", "input", &argparse.Options{Help: "Input image or video file (repeatable)", Required: true})
	err := parser.Parse(os.Args)
	if err != nil {
		fmt.Print(parser.Usage(err))
		os.Exit(1)
	}

	logger, _ := logs.NewLog()

	runner := predict.Start(logger, &predict.Job{
		ModelPath: *model,
		Inputs:    *inputs,
	})
	for ev := range runner.Events() {
		switch ev.Type {
		case predict.EventProgress:
			fmt.Printf("\rProgress: %v%%", ev.Progress)
		case predict.EventDone:
			fmt.Printf("\nAnnotated %v files in %v\n", len(ev.Outputs), ev.OutputDir)
			for _, out := range ev.Outputs {
				fmt.Println(out)
			}
		case predict.EventFailed:
			fmt.Printf("\nError: %v\n", ev.Err)
			os.Exit(1)
		}
	}
}
