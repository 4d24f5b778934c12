// Package predict is the detection pipeline worker. It takes a model and an
// ordered list of media files, runs object detection over every image and
// every video frame, and writes annotated copies into a scratch output
// directory. The job either completes for all inputs or fails as a whole, in
// which case the scratch directory is removed.
package predict

import (
	"fmt"
	"os"

	"github.com/cyclopcam/logs"
)

// Prefix of the scratch directory that receives annotated outputs
const outputDirPrefix = "bearview_output_"

// Job is one detection request, consumed whole by the worker
type Job struct {
	ModelPath string   // Path to the .onnx model file
	Inputs    []string // Media files, processed in order
}

type EventType int

const (
	// Percent complete changed. Progress moves from 0 to 100 and never
	// backwards within a job.
	EventProgress EventType = iota
	// Terminal: all inputs processed. Outputs holds one annotated file per
	// input, in input order, and OutputDir is the scratch directory that
	// contains them. The caller owns the directory from here on.
	EventDone
	// Terminal: the job failed, the scratch directory is already removed,
	// and no outputs exist.
	EventFailed
)

type Event struct {
	Type      EventType
	Progress  int
	Outputs   []string
	OutputDir string
	Err       error
}

// Runner is a single in-flight detection job
type Runner struct {
	events chan Event
	log    logs.Log
	env    *pipelineEnv
}

// Start launches the worker goroutine for job.
// Read Events() until it is closed: you will see zero or more EventProgress,
// then exactly one EventDone or EventFailed.
func Start(logger logs.Log, job *Job) *Runner {
	return startWithEnv(logger, job, defaultEnv())
}

func startWithEnv(logger logs.Log, job *Job, env *pipelineEnv) *Runner {
	r := &Runner{
		events: make(chan Event, 64),
		log:    logger,
		env:    env,
	}
	go r.run(job)
	return r
}

// Events returns the event stream. The channel is closed after the terminal
// event, so ranging over it is the natural way to consume a job.
func (r *Runner) Events() <-chan Event {
	return r.events
}

func (r *Runner) run(job *Job) {
	defer close(r.events)

	outputs, outDir, err := r.process(job)
	if err != nil {
		if outDir != "" {
			// Best effort. A leaked scratch dir is not worth masking the
			// original error.
			if rmErr := os.RemoveAll(outDir); rmErr != nil {
				r.log.Warnf("Failed to remove output directory '%v': %v", outDir, rmErr)
			}
		}
		r.log.Errorf("Detection job failed: %v", err)
		r.events <- Event{Type: EventFailed, Err: err}
		return
	}
	// The tracker emits 100 when the final file completes, so all that is
	// left is the terminal event.
	r.events <- Event{Type: EventDone, Outputs: outputs, OutputDir: outDir}
}

// process runs the whole job. It returns the scratch dir even on failure, so
// that run can clean it up.
func (r *Runner) process(job *Job) ([]string, string, error) {
	if len(job.Inputs) == 0 {
		return nil, "", fmt.Errorf("No input files")
	}

	model, err := r.env.loadModel(r.log, job.ModelPath)
	if err != nil {
		return nil, "", err
	}
	defer model.Close()

	outDir, err := r.env.mkdirTemp("", outputDirPrefix)
	if err != nil {
		return nil, "", fmt.Errorf("Failed to create output directory: %w", err)
	}
	r.log.Infof("Writing annotated outputs to %v", outDir)

	progress := newProgressTracker(r.events, len(job.Inputs))
	outputs := []string{}
	for i, input := range job.Inputs {
		var outPath string
		var err error
		switch {
		case IsVideo(input):
			outPath, err = r.processVideo(model, input, outDir, i, progress)
		case IsImage(input):
			outPath, err = r.processImage(model, input, outDir)
		default:
			err = fmt.Errorf("Unsupported file type")
		}
		if err != nil {
			return nil, outDir, fmt.Errorf("Failed to process '%v': %w", input, err)
		}
		outputs = append(outputs, outPath)
		progress.fileDone()
	}
	return outputs, outDir, nil
}
