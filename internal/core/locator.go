package core

import (
	"fmt"

	"github.com/DonovanMods/modlink/internal/domain"
)

// InstallLocator resolves the directory a game is installed in.
type InstallLocator interface {
	InstallDir(game *domain.Game) (string, error)
}

// SteamLookup finds an installed Steam app by ID.
type SteamLookup interface {
	InstallDir(appID string) (string, error)
}

type configuredLocator struct {
	steam SteamLookup
}

// NewInstallLocator returns a locator that prefers a game's configured
// install_path and falls back to looking up its Steam app ID.
func NewInstallLocator(steam SteamLookup) InstallLocator {
	return &configuredLocator{steam: steam}
}

func (l *configuredLocator) InstallDir(game *domain.Game) (string, error) {
	if game.InstallPath != "" {
		return game.InstallPath, nil
	}
	if game.SteamAppID != "" && l.steam != nil {
		dir, err := l.steam.InstallDir(game.SteamAppID)
		if err != nil {
			return "", fmt.Errorf("locating %s: %w", game.DisplayName(), err)
		}
		return dir, nil
	}
	return "", fmt.Errorf("%s has no install_path or steam_app_id: %w", game.DisplayName(), domain.ErrInstallDirNotFound)
}
