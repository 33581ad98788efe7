// Package fileutil provides file system utility functions.
package fileutil

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// FindFileCaseInsensitive searches for a file with the given name in the specified directory.
// The search is case-insensitive, so "library.adb" also finds "LIBRARY.ADB".
//
// Example:
//
//	path, err := FindFileCaseInsensitive("/path/to/src", "Library.adb")
//	// Will find "library.adb", "LIBRARY.ADB", "Library.ADB", etc.
func FindFileCaseInsensitive(dir, filename string) (string, error) {
	name, err := FindFileCaseInsensitiveFS(os.DirFS(dir), ".", filename)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, filepath.FromSlash(name)), nil
}

// FindFileCaseInsensitiveFS is FindFileCaseInsensitive over an fs.FS.
// The returned path is slash-separated and relative to fsys.
func FindFileCaseInsensitiveFS(fsys fs.FS, dir, filename string) (string, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return "", fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	// 完全一致を優先する
	for _, entry := range entries {
		if !entry.IsDir() && entry.Name() == filename {
			return path.Join(dir, entry.Name()), nil
		}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(entry.Name(), filename) {
			return path.Join(dir, entry.Name()), nil
		}
	}

	return "", fmt.Errorf("file not found: %s (searched in %s): %w", filename, dir, fs.ErrNotExist)
}

// HasExtFold reports whether name ends with one of exts, ignoring case.
func HasExtFold(name string, exts ...string) bool {
	ext := path.Ext(name)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}
