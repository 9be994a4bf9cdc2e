// Package batch drives audio-extraction jobs under a concurrency ceiling.
// This file implements input discovery.
package batch

import (
	"io/fs"
	"os"
	"path/filepath"
)

// Public functions (alphabetical)

// Discover returns every file under root, in walk order. A root that is
// itself a file yields exactly that one path, which lets users mix file
// and directory roots freely on the command line.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
