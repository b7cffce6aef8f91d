package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Entry is a scene file found by ScanDirectory.
type Entry struct {
	Name string // file name without extension
	Path string
}

// ScanDirectory lists the scene files (.yaml or .yml) directly inside dir,
// in directory order. Hidden files are skipped.
func ScanDirectory(dir string) ([]Entry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene directory: %w", err)
	}

	var scenes []Entry
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		scenes = append(scenes, Entry{
			Name: strings.TrimSuffix(name, filepath.Ext(name)),
			Path: filepath.Join(dir, name),
		})
	}
	return scenes, nil
}
