package main

// Remap class IDs in YOLO annotation files.
// Prompts for a folder and two (from, to) pairs. Mappings apply in order and
// the first match wins, so remapping 2->1 and 1->0 in one run will not turn a
// 2 into a 0.

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"

	"github.com/bearviewcam/bearview/pkg/dataset"
)

func readInt(stdin *bufio.Reader, prompt string) int {
	fmt.Print(prompt)
	line, _ := stdin.ReadString('\n')
	value, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		fmt.Println("Error: Invalid input. Please enter a number.")
		os.Exit(1)
	}
	return value
}

func main() {
	stdin := bufio.NewReader(os.Stdin)

	fmt.Print("Enter the folder name (e.g. AB): ")
	folder, _ := stdin.ReadString('\n')
	folder = strings.TrimSpace(folder)
	if info, err := os.Stat(folder); err != nil || !info.IsDir() {
		fmt.Printf("Folder '%v' not found!\n", folder)
		os.Exit(1)
	}

	mappings := []dataset.ClassMapping{}
	for i := 1; i <= 2; i++ {
		fmt.Printf("\nEnter class mapping #%v\n", i)
		from := readInt(stdin, "Classes FROM: ")
		to := readInt(stdin, "Classes TO: ")
		mappings = append(mappings, dataset.ClassMapping{From: from, To: to})
	}

	logger, _ := logs.NewLog()
	if _, err := dataset.RemapClasses(logger, folder, mappings); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("All .txt files in '%v' updated successfully.\n", folder)
}
