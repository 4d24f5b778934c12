package main

// Desktop application for running bear detection over trail camera footage.

import (
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"

	"github.com/cyclopcam/logs"
	"github.com/wailsapp/wails/v2"
	"github.com/wailsapp/wails/v2/pkg/options"
	"github.com/wailsapp/wails/v2/pkg/options/assetserver"

	"github.com/bearviewcam/bearview/app"
)

//go:embed all:frontend
var embeddedAssets embed.FS

func main() {
	logger, _ := logs.NewLog()

	settingsPath, err := app.DefaultSettingsPath()
	if err != nil {
		fmt.Printf("Failed to resolve settings path: %v\n", err)
		os.Exit(1)
	}
	controller, err := app.New(logger, app.NewSettingsStore(settingsPath))
	if err != nil {
		fmt.Printf("Failed to start: %v\n", err)
		os.Exit(1)
	}

	assets, err := fs.Sub(embeddedAssets, "frontend")
	if err != nil {
		fmt.Printf("Failed to load frontend assets: %v\n", err)
		os.Exit(1)
	}
	assetOptions := &assetserver.Options{
		Assets:     assets,
		Middleware: serveLocalFiles,
	}

	err = wails.Run(&options.App{
		Title:       "BearView",
		Width:       1180,
		Height:      780,
		AssetServer: assetOptions,
		OnStartup:   controller.Startup,
		OnShutdown:  controller.Shutdown,
		Bind:        []interface{}{controller},
	})
	if err != nil {
		logger.Errorf("UI runtime exited with error: %v", err)
		os.Exit(1)
	}
}

// serveLocalFiles lets the frontend display annotated results straight from
// the scratch directory, via /local/<url-encoded absolute path>.
func serveLocalFiles(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if encoded, ok := strings.CutPrefix(r.URL.Path, "/local/"); ok {
			path, err := url.PathUnescape(encoded)
			if err != nil {
				http.Error(w, "bad path", http.StatusBadRequest)
				return
			}
			http.ServeFile(w, r, path)
			return
		}
		next.ServeHTTP(w, r)
	})
}
