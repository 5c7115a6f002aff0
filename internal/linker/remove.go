package linker

import (
	"fmt"
	"os"
	"path/filepath"
)

// EmptyDirectory removes everything inside dir but leaves dir itself.
// Symlinks are removed, never followed.
func EmptyDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("reading directory: %w", err)
	}

	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			if err := RemoveTree(path); err != nil {
				return err
			}
			continue
		}
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("removing file: %w", err)
		}
	}

	return nil
}

// RemoveTree empties dir and then removes it. Unlike os.RemoveAll it fails
// when dir does not exist.
func RemoveTree(dir string) error {
	if err := EmptyDirectory(dir); err != nil {
		return err
	}
	if err := os.Remove(dir); err != nil {
		return fmt.Errorf("removing directory: %w", err)
	}
	return nil
}

// removeLinked deletes a previously linked path. Missing paths are not an error.
func removeLinked(path string) error {
	info, err := os.Lstat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("checking file: %w", err)
	}

	if info.IsDir() {
		return RemoveTree(path)
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing file: %w", err)
	}
	return nil
}
