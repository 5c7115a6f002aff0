package linker

import (
	"errors"
	"fmt"
	"io"
	"os"
)

// ErrSameFile is returned when the source and destination of a copy are
// the same file.
var ErrSameFile = errors.New("source and destination are the same file")

// CopyFile copies the full contents of src to dst, truncating dst if it
// exists. The destination gets the source's permission bits. Copying a
// file onto itself fails with ErrSameFile and leaves it untouched.
func CopyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	srcInfo, err := srcFile.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if dstInfo, err := os.Stat(dst); err == nil && os.SameFile(srcInfo, dstInfo) {
		return fmt.Errorf("copying %s: %w", src, ErrSameFile)
	}

	dstFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, srcInfo.Mode().Perm())
	if err != nil {
		return fmt.Errorf("creating destination: %w", err)
	}

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		dstFile.Close()
		return fmt.Errorf("copying file: %w", err)
	}

	if err := dstFile.Close(); err != nil {
		return fmt.Errorf("closing destination: %w", err)
	}

	return nil
}

// replaceFile removes whatever sits at dst (a stale copy, a symlink left by
// another tool) and copies src into its place.
func replaceFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		if err := os.Remove(dst); err != nil {
			return fmt.Errorf("removing existing file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking destination: %w", err)
	}

	return CopyFile(src, dst)
}
