// Package resetter clears a game's managed directory so the Steam client
// restores it on its next validation.
package resetter

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/linker"
	"github.com/DonovanMods/modlink/internal/logger"

	"go.uber.org/zap"
)

// ValidationTrigger asks an external client to re-validate a game's files.
// Implementations must not wait for the validation to finish.
type ValidationTrigger interface {
	Validate(appID string) error
}

// Target describes the game being reset
type Target struct {
	DisplayName    string // e.g. "Risk of Rain 2"
	ExeName        string // must exist directly under the install directory
	AppID          string // passed to the validation trigger
	ManagedSubpath string // install-relative directory to remove
}

// TargetFor builds a reset target from a configured game
func TargetFor(game *domain.Game) Target {
	return Target{
		DisplayName:    game.DisplayName(),
		ExeName:        game.ExeName,
		AppID:          game.SteamAppID,
		ManagedSubpath: game.ManagedPath(),
	}
}

// Resetter removes a managed subdirectory and triggers validation
type Resetter struct {
	trigger ValidationTrigger
	log     *zap.Logger
}

// New creates a resetter using the given trigger
func New(trigger ValidationTrigger, log *zap.Logger) *Resetter {
	return &Resetter{trigger: trigger, log: logger.OrNop(log)}
}

// Reset checks that installDir holds the game's executable, removes the
// managed subdirectory with its contents, and fires the validation trigger.
// Nothing is deleted when the executable is missing.
func (r *Resetter) Reset(installDir string, target Target) error {
	exePath := filepath.Join(installDir, target.ExeName)
	if target.ExeName == "" || !exists(exePath) {
		r.log.Warn("install directory is missing the game executable", zap.String(logger.FieldPath, exePath))
		return &domain.Error{
			Kind:   domain.ErrDirectoryInvalid,
			Title:  fmt.Sprintf("%s directory is invalid", target.DisplayName),
			Detail: fmt.Sprintf("could not find %q", target.ExeName),
			Hint:   fmt.Sprintf("Set the %s directory with 'modlink game add'", target.DisplayName),
		}
	}

	subpath := target.ManagedSubpath
	if subpath == "" || !filepath.IsLocal(subpath) {
		return &domain.Error{
			Kind:   domain.ErrDirectoryInvalid,
			Title:  fmt.Sprintf("%s managed directory is invalid", target.DisplayName),
			Detail: fmt.Sprintf("%q is not a path inside the install directory", subpath),
			Hint:   "Set data_folder or managed_subpath in games.yaml",
		}
	}

	managed := filepath.Join(installDir, subpath)
	r.log.Info("removing managed directory", zap.String(logger.FieldPath, managed))
	if err := linker.RemoveTree(managed); err != nil {
		r.log.Error("removing managed directory", zap.String(logger.FieldPath, managed), zap.Error(err))
		return domain.NewError(
			domain.ErrDeleteFailure,
			fmt.Sprintf("Failed to remove %s directory", filepath.Base(managed)),
			err,
			"Try launching modlink with elevated privileges",
		)
	}

	r.log.Info("requesting validation", zap.String(logger.FieldAppID, target.AppID))
	if err := r.trigger.Validate(target.AppID); err != nil {
		return domain.NewError(domain.ErrTriggerFailure, "Failed to start steam://validate", err, "")
	}

	return nil
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
