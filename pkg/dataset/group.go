package dataset

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/cyclopcam/logs"
)

// Filenames like "IMG_1234_jd.jpg" carry a two-character tag before the
// extension. The tag names the person who captured or labeled the file.
var suffixPattern = regexp.MustCompile(`(?i)^.*_(\w{2})\.(jpg|jpeg|png|txt)$`)

// GroupBySuffix moves every tagged file in srcDir into a subdirectory of
// destRoot named after the uppercased tag (eg "..._jd.jpg" -> destRoot/JD/).
// Untagged files stay where they are. A file that fails to move is logged and
// skipped. Returns the number of files moved.
func GroupBySuffix(logger logs.Log, srcDir, destRoot string) (int, error) {
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return 0, err
	}
	moved := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		match := suffixPattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		group := strings.ToUpper(match[1])
		groupDir := filepath.Join(destRoot, group)
		if err := os.MkdirAll(groupDir, 0755); err != nil {
			logger.Errorf("Failed to create '%v': %v", groupDir, err)
			continue
		}
		src := filepath.Join(srcDir, entry.Name())
		dst := filepath.Join(groupDir, entry.Name())
		if err := os.Rename(src, dst); err != nil {
			logger.Errorf("Failed to move '%v' to '%v': %v", src, dst, err)
			continue
		}
		moved++
	}
	logger.Infof("Grouped %v files from %v into %v", moved, srcDir, destRoot)
	return moved, nil
}
