package main

// Group labeled media files by the two-character tag at the end of their
// names (eg "trail_0012_jd.jpg" goes to folder JD). Folders are created in
// the current directory.

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/pkg/dataset"
)

func main() {
	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Enter the name of the folder containing the files to group: ")
	folder, _ := stdin.ReadString('\n')
	folder = strings.TrimSpace(folder)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		fmt.Printf("Error: Folder '%v' not found.\n", folder)
		os.Exit(1)
	}

	cwd, err := os.Getwd()
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	logger, _ := logs.NewLog()
	n, err := dataset.GroupBySuffix(logger, folder, cwd)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Reorganized %v files into folders based on suffix.\n", n)
}
