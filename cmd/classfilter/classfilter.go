package main

// Keep only the given class IDs in YOLO annotation files.
// Prompts for a folder and a space-separated list of class numbers, then
// rewrites every .txt file in the folder in place.

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/pkg/dataset"
)

func main() {
	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Enter the name of the folder containing .txt and .jpg files: ")
	folder, _ := stdin.ReadString('\n')
	folder = strings.TrimSpace(folder)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		fmt.Printf("Error: Folder '%v' not found.\n", folder)
		os.Exit(1)
	}

	fmt.Print("Enter the class numbers you want to KEEP (separated by spaces, e.g. '0 2 5'): ")
	classLine, _ := stdin.ReadString('\n')
	keep := map[int]bool{}
	for _, token := range strings.Fields(classLine) {
		classID, err := strconv.Atoi(token)
		if err != nil {
			fmt.Println("Error: Invalid input. Please enter only numbers separated by spaces.")
			os.Exit(1)
		}
		keep[classID] = true
	}
	if len(keep) == 0 {
		fmt.Println("Error: No class numbers given.")
		os.Exit(1)
	}

	logger, _ := logs.NewLog()
	n, err := dataset.FilterClasses(logger, folder, keep)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Filtering complete. Processed %v .txt files in '%v'.\n", n, folder)
}
