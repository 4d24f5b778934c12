package main

// Split a labeled image folder into train/val/test (80/10/10) under
// yolo_dataset/. The shuffle is seeded, so rerunning on the same folder
// produces the same split.

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/pkg/dataset"
)

const outputFolder = "yolo_dataset"

func main() {
	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Enter the name of the folder where all images and txts are located: ")
	folder, _ := stdin.ReadString('\n')
	folder = strings.TrimSpace(folder)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		fmt.Printf("Error: Folder '%v' does not exist.\n", folder)
		os.Exit(1)
	}

	logger, _ := logs.NewLog()
	if err := dataset.Split(logger, folder, outputFolder, dataset.DefaultSeed); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dataset split complete and organized into '%v/' folder.\n", outputFolder)
}
