package config

import (
	"os"
	"path/filepath"

	"github.com/dchest/safefile"
	"github.com/pkg/errors"
)

// writeFileAtomic writes data to a temporary file next to path and renames it
// into place, so a crash never leaves a half-written config behind.
func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.WithMessage(err, "creating folder for "+filepath.Base(path))
	}

	f, err := safefile.Create(path, 0644)
	if err != nil {
		return errors.WithMessage(err, "creating "+filepath.Base(path))
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return errors.WithMessage(err, "writing "+filepath.Base(path))
	}

	if err := f.Commit(); err != nil {
		return errors.WithMessage(err, "committing "+filepath.Base(path))
	}

	return nil
}
