package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath replaces a leading "~/" with the user's home directory.
// Other paths are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ParseImportPath validates a games file given on the command line and
// returns it cleaned and absolute. It returns an error if:
//   - The path is empty
//   - The file does not exist
//   - The path points to a directory instead of a file
//   - The file does not have a .yaml or .yml extension
func ParseImportPath(path string) (string, error) {
	if path == "" {
		return "", errors.New("games file path cannot be empty")
	}

	abs, err := filepath.Abs(ExpandPath(path))
	if err != nil {
		return "", err
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.New("games file does not exist")
		}
		return "", err
	}

	if info.IsDir() {
		return "", errors.New("games file path is a directory, not a file")
	}

	ext := strings.ToLower(filepath.Ext(abs))
	if ext != ".yaml" && ext != ".yml" {
		return "", errors.New("games file must have .yaml or .yml extension")
	}

	return abs, nil
}
