// Package linker mirrors a profile directory into a game install directory.
//
// Files are always copied. Symbolic and hard links would need elevated
// permissions on some platforms, so the extra disk space is accepted.
package linker

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/logger"

	"go.uber.org/zap"
)

const adminHint = "Try running modlink with elevated privileges"

// Linker removes previously linked files and mirrors a profile's top-level
// files into an install directory. It holds no state between calls and no
// locks: callers must not run two operations against one install directory
// at the same time.
type Linker struct {
	log *zap.Logger
}

// New creates a linker. A nil logger disables logging.
func New(log *zap.Logger) *Linker {
	return &Linker{log: logger.OrNop(log)}
}

// Link removes every path in previous, then copies the regular files found
// directly in profileDir into installDir and returns the destination paths in
// directory order. The returned set replaces previous; on error no set is
// returned and the caller must keep its old one.
//
// Each stage aborts on its first failure, so a failed cleanup never leaves
// new files mixed with old ones.
func (l *Linker) Link(installDir, profileDir string, previous []string) ([]string, error) {
	if err := l.Remove(previous); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(profileDir)
	if err != nil {
		l.log.Error("reading profile directory", zap.String(logger.FieldPath, profileDir), zap.Error(err))
		return nil, domain.NewError(
			domain.ErrReadFailure,
			fmt.Sprintf("Unable to read directory for profile %s", filepath.Base(profileDir)),
			err,
			adminHint,
		)
	}

	linked := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		name := entry.Name()
		if strings.EqualFold(name, domain.ReservedMetadataFile) {
			continue
		}

		src := filepath.Join(profileDir, name)
		dst := filepath.Join(installDir, name)
		if err := replaceFile(src, dst); err != nil {
			l.log.Error("copying profile file", zap.String(logger.FieldFile, name), zap.Error(err))
			return nil, domain.NewError(
				domain.ErrCopyFailure,
				"Failed to install required files",
				fmt.Errorf("couldn't copy file %s to game directory: %w", name, err),
				"The game must not be running. You may need to run modlink with elevated privileges.",
			)
		}

		l.log.Debug("copied profile file", zap.String(logger.FieldFile, name), zap.String(logger.FieldPath, dst))
		linked = append(linked, dst)
	}

	l.log.Info("linked profile", zap.String(logger.FieldPath, profileDir), zap.Int(logger.FieldCount, len(linked)))
	return linked, nil
}

// Remove deletes every path in previous. Directories are removed with their
// contents; paths that no longer exist are skipped.
func (l *Linker) Remove(previous []string) error {
	if len(previous) > 0 {
		l.log.Info("files to remove", zap.Strings(logger.FieldPath, previous))
	}

	for _, path := range previous {
		l.log.Debug("removing previously copied file", zap.String(logger.FieldPath, path))
		if err := removeLinked(path); err != nil {
			l.log.Error("removing previously copied file", zap.String(logger.FieldPath, path), zap.Error(err))
			return domain.NewError(domain.ErrDeleteFailure, "Unable to delete file", err, adminHint)
		}
	}

	return nil
}
