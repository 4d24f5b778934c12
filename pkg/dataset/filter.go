package dataset

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"
)

// FilterClasses rewrites every .txt label file in dir, keeping only the lines
// whose class ID (first token) is in the keep set. Blank lines are dropped.
// Files are overwritten in place. A file that fails to read or write, or that
// contains a line whose first token is not a number, is logged and left
// untouched. Returns the number of files rewritten.
func FilterClasses(logger logs.Log, dir string, keep map[int]bool) (int, error) {
	names, err := listFilesWithExt(dir, ".txt")
	if err != nil {
		return 0, err
	}
	rewritten := 0
	for _, name := range names {
		path := filepath.Join(dir, name)
		raw, err := os.ReadFile(path)
		if err != nil {
			logger.Errorf("Failed to read '%v': %v", path, err)
			continue
		}
		kept := []string{}
		malformed := false
		for _, line := range strings.Split(string(raw), "\n") {
			line = strings.TrimRight(line, "\r")
			fields := strings.Fields(line)
			if len(fields) == 0 {
				continue
			}
			classID, err := strconv.Atoi(fields[0])
			if err != nil {
				logger.Errorf("Malformed line in '%v': %q", path, line)
				malformed = true
				break
			}
			if keep[classID] {
				kept = append(kept, line)
			}
		}
		if malformed {
			continue
		}
		out := strings.Join(kept, "\n")
		if len(kept) != 0 {
			out += "\n"
		}
		if err := os.WriteFile(path, []byte(out), 0644); err != nil {
			logger.Errorf("Failed to write '%v': %v", path, err)
			continue
		}
		rewritten++
	}
	logger.Infof("Filtered %v label files in %v", rewritten, dir)
	return rewritten, nil
}
