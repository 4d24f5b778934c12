// Package dataset has the tools we use to massage YOLO training datasets:
// filtering and remapping class IDs in label files, grouping images by
// filename suffix, and carving out train/val/test splits.
package dataset

import (
	"io"
	"os"
	"path/filepath"
	"strings"
)

// listFilesWithExt returns the names (not paths) of regular files in dir whose
// extension matches ext (case insensitive), sorted alphabetically.
func listFilesWithExt(dir string, ext ...string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	names := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		fileExt := strings.ToLower(filepath.Ext(entry.Name()))
		for _, e := range ext {
			if fileExt == e {
				names = append(names, entry.Name())
				break
			}
		}
	}
	// os.ReadDir sorts by filename
	return names, nil
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
