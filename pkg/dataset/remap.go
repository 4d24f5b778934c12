package dataset

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/cyclopcam/logs"
)

// ClassMapping renames one class ID to another
type ClassMapping struct {
	From int
	To   int
}

// RemapClasses rewrites every .txt label file in dir, replacing class IDs
// according to mappings. Mappings are applied in order and the first match
// wins, so a chain like 2->1, 1->0 will not double-remap a line.
// Every line is rewritten with its fields rejoined by single spaces. Lines
// whose first token is not a number pass through unremapped, and blank lines
// are preserved. Returns the number of files rewritten.
func RemapClasses(logger logs.Log, dir string, mappings []ClassMapping) (int, error) {
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
		lines := strings.Split(string(raw), "\n")
		if len(lines) > 0 && lines[len(lines)-1] == "" {
			// trailing newline, not an extra blank line
			lines = lines[:len(lines)-1]
		}
		out := make([]string, 0, len(lines))
		for _, line := range lines {
			fields := strings.Fields(line)
			if len(fields) == 0 {
				out = append(out, "")
				continue
			}
			if classID, err := strconv.Atoi(fields[0]); err == nil {
				for _, m := range mappings {
					if classID == m.From {
						classID = m.To
						break
					}
				}
				fields[0] = strconv.Itoa(classID)
			}
			out = append(out, strings.Join(fields, " "))
		}
		body := strings.Join(out, "\n")
		if len(out) != 0 {
			body += "\n"
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			logger.Errorf("Failed to write '%v': %v", path, err)
			continue
		}
		rewritten++
	}
	logger.Infof("Remapped %v label files in %v", rewritten, dir)
	return rewritten, nil
}
