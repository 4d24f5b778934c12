package dataset

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/cyclopcam/logs"
)

// DefaultSeed makes splits reproducible between runs
const DefaultSeed = 42

// Split shuffles the .jpg images in srcDir with the given seed and copies them
// into the YOLO directory layout under outDir:
//
//	outDir/{train,val,test}/images
//	outDir/{train,val,test}/labels
//
// 80% of the images go to train, 10% to val and the remainder to test.
// A label file with the same stem (.txt) rides along with each image. If the
// image has no label file, an empty one is created, which YOLO trainers treat
// as "no objects in this image".
// The split is deterministic: the same srcDir contents and seed always produce
// the same assignment.
func Split(logger logs.Log, srcDir, outDir string, seed int64) error {
	images, err := listFilesWithExt(srcDir, ".jpg")
	if err != nil {
		return err
	}

	// listFilesWithExt returns sorted names, so the shuffle below is the only
	// source of ordering, and it is fixed by the seed.
	rng := rand.New(rand.NewSource(seed))
	rng.Shuffle(len(images), func(i, j int) {
		images[i], images[j] = images[j], images[i]
	})

	n := len(images)
	trainEnd := int(0.8 * float64(n))
	valEnd := int(0.9 * float64(n))
	splits := map[string][]string{
		"train": images[:trainEnd],
		"val":   images[trainEnd:valEnd],
		"test":  images[valEnd:],
	}

	for split := range splits {
		if err := os.MkdirAll(filepath.Join(outDir, split, "images"), 0755); err != nil {
			return err
		}
		if err := os.MkdirAll(filepath.Join(outDir, split, "labels"), 0755); err != nil {
			return err
		}
	}

	for split, names := range splits {
		for _, name := range names {
			stem := strings.TrimSuffix(name, filepath.Ext(name))
			if err := copyFile(filepath.Join(srcDir, name), filepath.Join(outDir, split, "images", name)); err != nil {
				return err
			}
			labelSrc := filepath.Join(srcDir, stem+".txt")
			labelDst := filepath.Join(outDir, split, "labels", stem+".txt")
			if _, err := os.Stat(labelSrc); err == nil {
				if err := copyFile(labelSrc, labelDst); err != nil {
					return err
				}
			} else {
				if err := os.WriteFile(labelDst, nil, 0644); err != nil {
					return err
				}
			}
		}
	}

	logger.Infof("Split %v images into %v train, %v val, %v test under %v",
		n, len(splits["train"]), len(splits["val"]), len(splits["test"]), outDir)
	return nil
}
