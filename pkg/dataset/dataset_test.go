package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/cyclopcam/logs"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
	}
}

func readFile(t *testing.T, path string) string {
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(raw)
}

func TestFilterClasses(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "0 0.5 0.5 0.1 0.1\n1 0.2 0.2 0.1 0.1\n2 0.3 0.3 0.1 0.1\n",
		"b.txt": "\n1 0.1 0.1 0.2 0.2\n\n",
		"c.txt": "3 0.4 0.4 0.1 0.1\n",
	})
	n, err := FilterClasses(logs.NewTestingLog(t), dir, map[int]bool{0: true, 1: true})
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.Equal(t, "0 0.5 0.5 0.1 0.1\n1 0.2 0.2 0.1 0.1\n", readFile(t, filepath.Join(dir, "a.txt")))
	require.Equal(t, "1 0.1 0.1 0.2 0.2\n", readFile(t, filepath.Join(dir, "b.txt")))
	// every line filtered out leaves an empty file, not a deleted one
	require.Equal(t, "", readFile(t, filepath.Join(dir, "c.txt")))
}

func TestFilterClassesIgnoresNonLabelFiles(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"photo.jpg": "not a label",
	})
	n, err := FilterClasses(logs.NewTestingLog(t), dir, map[int]bool{0: true})
	require.NoError(t, err)
	require.Equal(t, 0, n)
	require.Equal(t, "not a label", readFile(t, filepath.Join(dir, "photo.jpg")))
}

func TestFilterClassesLeavesMalformedFileUntouched(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"bad.txt":  "abc 0.5 0.5 0.1 0.1\n0 0.2 0.2 0.1 0.1\n",
		"good.txt": "0 0.1 0.1 0.2 0.2\n1 0.3 0.3 0.1 0.1\n",
	})
	n, err := FilterClasses(logs.NewTestingLog(t), dir, map[int]bool{0: true})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "abc 0.5 0.5 0.1 0.1\n0 0.2 0.2 0.1 0.1\n", readFile(t, filepath.Join(dir, "bad.txt")))
	require.Equal(t, "0 0.1 0.1 0.2 0.2\n", readFile(t, filepath.Join(dir, "good.txt")))
}

func TestRemapClassesFirstMatchWins(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "2 0.5 0.5 0.1 0.1\n1 0.2 0.2 0.1 0.1\n",
	})
	// 2->1 and 1->0 applied to the same file: a line starting as 2 must end as
	// 1, not fall through to 0
	mappings := []ClassMapping{{From: 2, To: 1}, {From: 1, To: 0}}
	n, err := RemapClasses(logs.NewTestingLog(t), dir, mappings)
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "1 0.5 0.5 0.1 0.1\n0 0.2 0.2 0.1 0.1\n", readFile(t, filepath.Join(dir, "a.txt")))
}

func TestRemapClassesKeepsNonNumericLines(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "1 0.5 0.5 0.1 0.1\n# exported by labeler\nx 1 2\n\n0 0.2 0.2 0.1 0.1\n",
	})
	n, err := RemapClasses(logs.NewTestingLog(t), dir, []ClassMapping{{From: 1, To: 3}})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	// comment, non-numeric and blank lines survive the rewrite
	require.Equal(t, "3 0.5 0.5 0.1 0.1\n# exported by labeler\nx 1 2\n\n0 0.2 0.2 0.1 0.1\n", readFile(t, filepath.Join(dir, "a.txt")))
}

func TestRemapClassesNormalizesWhitespace(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "0   0.5\t0.5  0.1 0.1\n",
	})
	_, err := RemapClasses(logs.NewTestingLog(t), dir, []ClassMapping{{From: 0, To: 5}})
	require.NoError(t, err)
	require.Equal(t, "5 0.5 0.5 0.1 0.1\n", readFile(t, filepath.Join(dir, "a.txt")))
}

func TestGroupBySuffix(t *testing.T) {
	src := t.TempDir()
	dest := t.TempDir()
	writeFiles(t, src, map[string]string{
		"trail_0001_jd.jpg":  "x",
		"trail_0001_jd.txt":  "x",
		"trail_0002_AK.jpeg": "x",
		"trail_0003.jpg":     "x", // no tag
		"notes_final_xy.pdf": "x", // wrong extension
	})
	n, err := GroupBySuffix(logs.NewTestingLog(t), src, dest)
	require.NoError(t, err)
	require.Equal(t, 3, n)
	require.FileExists(t, filepath.Join(dest, "JD", "trail_0001_jd.jpg"))
	require.FileExists(t, filepath.Join(dest, "JD", "trail_0001_jd.txt"))
	require.FileExists(t, filepath.Join(dest, "AK", "trail_0002_AK.jpeg"))
	require.FileExists(t, filepath.Join(src, "trail_0003.jpg"))
	require.FileExists(t, filepath.Join(src, "notes_final_xy.pdf"))
	require.NoFileExists(t, filepath.Join(src, "trail_0001_jd.jpg"))
}

func TestSplitProportionsAndLabels(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 20; i++ {
		name := string(rune('a'+i)) + ".jpg"
		files[name] = "img"
		if i != 0 {
			files[string(rune('a'+i))+".txt"] = "0 0.5 0.5 0.1 0.1\n"
		}
	}
	writeFiles(t, src, files)

	require.NoError(t, Split(logs.NewTestingLog(t), src, out, DefaultSeed))

	count := func(split string) int {
		entries, err := os.ReadDir(filepath.Join(out, split, "images"))
		require.NoError(t, err)
		return len(entries)
	}
	require.Equal(t, 16, count("train"))
	require.Equal(t, 2, count("val"))
	require.Equal(t, 2, count("test"))

	// every image has a matching label file, including a.jpg which had none
	for _, split := range []string{"train", "val", "test"} {
		entries, err := os.ReadDir(filepath.Join(out, split, "images"))
		require.NoError(t, err)
		for _, entry := range entries {
			stem := entry.Name()[:len(entry.Name())-len(".jpg")]
			require.FileExists(t, filepath.Join(out, split, "labels", stem+".txt"))
		}
	}
}

func TestSplitDeterministic(t *testing.T) {
	src := t.TempDir()
	files := map[string]string{}
	for i := 0; i < 10; i++ {
		files[string(rune('a'+i))+".jpg"] = "img"
	}
	writeFiles(t, src, files)

	listSplit := func(out, split string) []string {
		entries, err := os.ReadDir(filepath.Join(out, split, "images"))
		require.NoError(t, err)
		names := []string{}
		for _, entry := range entries {
			names = append(names, entry.Name())
		}
		return names
	}

	out1 := t.TempDir()
	out2 := t.TempDir()
	require.NoError(t, Split(logs.NewTestingLog(t), src, out1, 7))
	require.NoError(t, Split(logs.NewTestingLog(t), src, out2, 7))
	for _, split := range []string{"train", "val", "test"} {
		require.Equal(t, listSplit(out1, split), listSplit(out2, split))
	}
}

func TestSplitEmptyDir(t *testing.T) {
	src := t.TempDir()
	out := t.TempDir()
	require.NoError(t, Split(logs.NewTestingLog(t), src, out, DefaultSeed))
	for _, split := range []string{"train", "val", "test"} {
		entries, err := os.ReadDir(filepath.Join(out, split, "images"))
		require.NoError(t, err)
		require.Empty(t, entries)
	}
}
