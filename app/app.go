// Package app is the desktop application controller. It owns the single live
// detection job, the settings file, and the scratch directory that holds the
// most recent results, and it exposes the methods that the Wails frontend
// binds to.
package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/cyclopcam/logs"
	wailsruntime "github.com/wailsapp/wails/v2/pkg/runtime"

	"github.com/bearviewcam/bearview/app/predict"
)

// Event names pushed to the frontend
const (
	EventProgress = "detect:progress"
	EventDone     = "detect:done"
	EventError    = "detect:error"
)

var mediaDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "Media files",
		Pattern:     "*.png;*.jpg;*.jpeg;*.bmp;*.gif;*.mp4;*.avi;*.mov;*.mkv;*.wmv;*.flv",
	},
	{
		DisplayName: "All files",
		Pattern:     "*",
	},
}

var modelDialogFilter = []wailsruntime.FileFilter{
	{
		DisplayName: "ONNX models",
		Pattern:     "*.onnx",
	},
}

// State is a snapshot of the controller for the frontend
type State struct {
	Running   bool     `json:"running"`
	Progress  int      `json:"progress"`  // 0..100, only meaningful while running
	Images    []string `json:"images"`    // Annotated image results, input order
	Videos    []string `json:"videos"`    // Annotated video results, input order
	OutputDir string   `json:"outputDir"` // Scratch dir holding the results, "" when none
	ModelPath string   `json:"modelPath"`
}

// App is bound to the Wails frontend. All exported methods are callable from
// Javascript.
type App struct {
	log      logs.Log
	settings *SettingsStore

	// startJob is swapped out in tests
	startJob func(logger logs.Log, job *predict.Job) <-chan predict.Event

	mu         sync.Mutex
	runtimeCtx context.Context
	modelPath  string
	running    bool
	progress   int
	outputs    []string
	outputDir  string
	workerDone sync.WaitGroup
}

func New(logger logs.Log, settings *SettingsStore) (*App, error) {
	loaded, err := settings.Load()
	if err != nil {
		return nil, fmt.Errorf("Failed to load settings: %w", err)
	}
	return &App{
		log:      logger,
		settings: settings,
		startJob: func(logger logs.Log, job *predict.Job) <-chan predict.Event {
			return predict.Start(logger, job).Events()
		},
		modelPath: loaded.ModelPath,
	}, nil
}

// Startup stores the Wails runtime context so we can push events
func (a *App) Startup(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.runtimeCtx = ctx
}

// Shutdown waits for a running job to finish, then removes the scratch dir.
// There is no mid-job cancellation: the worker always runs to its terminal
// event.
func (a *App) Shutdown(ctx context.Context) {
	a.workerDone.Wait()
	a.mu.Lock()
	outputDir := a.outputDir
	a.outputDir = ""
	a.runtimeCtx = nil
	a.mu.Unlock()
	a.removeOutputDir(outputDir)
}

// SelectFiles opens the native multi-select dialog for media files
func (a *App) SelectFiles() ([]string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return nil, err
	}
	return wailsruntime.OpenMultipleFilesDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select images and videos",
		Filters: mediaDialogFilter,
	})
}

// SelectModelFile opens the native dialog for the detection model and
// persists the choice.
func (a *App) SelectModelFile() (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}
	path, err := wailsruntime.OpenFileDialog(ctx, wailsruntime.OpenDialogOptions{
		Title:   "Select detection model",
		Filters: modelDialogFilter,
	})
	if err != nil || path == "" {
		return "", err
	}
	if err := a.SetModelPath(path); err != nil {
		return "", err
	}
	return path, nil
}

func (a *App) SetModelPath(path string) error {
	a.mu.Lock()
	a.modelPath = path
	a.mu.Unlock()
	return a.settings.Save(Settings{ModelPath: path})
}

// GetState returns a snapshot for the frontend to render
func (a *App) GetState() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	images, videos := predict.Partition(a.outputs)
	return State{
		Running:   a.running,
		Progress:  a.progress,
		Images:    images,
		Videos:    videos,
		OutputDir: a.outputDir,
		ModelPath: a.modelPath,
	}
}

// Detect starts a detection job over files.
// Rejected when a job is already running, when no files are given, or when
// the configured model does not exist. Results from the previous job are
// discarded, along with their scratch directory.
func (a *App) Detect(files []string) error {
	a.mu.Lock()
	if a.running {
		a.mu.Unlock()
		return fmt.Errorf("A detection job is already running")
	}
	if len(files) == 0 {
		a.mu.Unlock()
		return fmt.Errorf("No files selected")
	}
	modelPath := a.modelPath
	previousDir := a.outputDir
	if modelPath == "" {
		a.mu.Unlock()
		return fmt.Errorf("No detection model configured")
	}
	if _, err := os.Stat(modelPath); err != nil {
		a.mu.Unlock()
		return fmt.Errorf("Detection model '%v' is not readable: %w", modelPath, err)
	}
	a.running = true
	a.progress = 0
	a.outputs = nil
	a.outputDir = ""
	a.workerDone.Add(1)
	a.mu.Unlock()

	a.removeOutputDir(previousDir)

	events := a.startJob(a.log, &predict.Job{ModelPath: modelPath, Inputs: files})
	go a.consume(events)
	return nil
}

// ExportImage copies an annotated image to a destination the user picks
func (a *App) ExportImage(src string) (string, error) {
	return a.export(src, "Save annotated image")
}

// ExportVideo copies an annotated video to a destination the user picks
func (a *App) ExportVideo(src string) (string, error) {
	return a.export(src, "Save annotated video")
}

func (a *App) export(src, title string) (string, error) {
	ctx, err := a.runtimeContext()
	if err != nil {
		return "", err
	}
	dst, err := wailsruntime.SaveFileDialog(ctx, wailsruntime.SaveDialogOptions{
		Title:           title,
		DefaultFilename: filepath.Base(src),
	})
	if err != nil || dst == "" {
		return "", err
	}
	if err := copyFile(src, dst); err != nil {
		return "", fmt.Errorf("Failed to export to '%v': %w", dst, err)
	}
	a.log.Infof("Exported %v to %v", src, dst)
	return dst, nil
}

// consume drains one job's event stream and forwards it to the frontend
func (a *App) consume(events <-chan predict.Event) {
	defer a.workerDone.Done()
	for ev := range events {
		switch ev.Type {
		case predict.EventProgress:
			a.mu.Lock()
			a.progress = ev.Progress
			a.mu.Unlock()
			a.emit(EventProgress, ev.Progress)
		case predict.EventDone:
			a.mu.Lock()
			a.running = false
			a.outputs = ev.Outputs
			a.outputDir = ev.OutputDir
			a.mu.Unlock()
			a.emit(EventDone, nil)
		case predict.EventFailed:
			a.mu.Lock()
			a.running = false
			a.mu.Unlock()
			a.emit(EventError, ev.Err.Error())
		}
	}
}

func (a *App) emit(name string, data interface{}) {
	a.mu.Lock()
	ctx := a.runtimeCtx
	a.mu.Unlock()
	if ctx != nil {
		wailsruntime.EventsEmit(ctx, name, data)
	}
}

func (a *App) runtimeContext() (context.Context, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.runtimeCtx == nil {
		return nil, fmt.Errorf("UI runtime is not ready")
	}
	return a.runtimeCtx, nil
}

func (a *App) removeOutputDir(dir string) {
	if dir == "" {
		return
	}
	if err := os.RemoveAll(dir); err != nil {
		a.log.Warnf("Failed to remove output directory '%v': %v", dir, err)
	}
}

func copyFile(srcPath, dstPath string) error {
	src, err := os.Open(srcPath)
	if err != nil {
		return err
	}
	defer src.Close()
	dst, err := os.Create(dstPath)
	if err != nil {
		return err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, src); err != nil {
		return err
	}
	return dst.Close()
}
