package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/modlink/internal/domain"

	"gopkg.in/yaml.v3"
)

// GameConfig is the YAML representation of a game
type GameConfig struct {
	Name           string           `yaml:"name"`
	InstallPath    string           `yaml:"install_path,omitempty"`
	SteamAppID     string           `yaml:"steam_app_id,omitempty"`
	ExeName        string           `yaml:"exe_name,omitempty"`
	DataFolder     string           `yaml:"data_folder,omitempty"`
	ManagedSubpath string           `yaml:"managed_subpath,omitempty"`
	Hooks          domain.GameHooks `yaml:"hooks,omitempty"`
}

// GamesFile is the top-level games.yaml structure
type GamesFile struct {
	Games map[string]GameConfig `yaml:"games"`
}

// LoadGames reads all game configurations from the config directory
func LoadGames(configDir string) (map[string]*domain.Game, error) {
	games, err := ReadGamesFile(filepath.Join(configDir, "games.yaml"))
	if errors.Is(err, os.ErrNotExist) {
		return make(map[string]*domain.Game), nil
	}
	return games, err
}

// ReadGamesFile parses a games.yaml-formatted file at path
func ReadGamesFile(path string) (map[string]*domain.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var gamesFile GamesFile
	if err := yaml.Unmarshal(data, &gamesFile); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}

	games := make(map[string]*domain.Game, len(gamesFile.Games))
	for id, cfg := range gamesFile.Games {
		games[id] = &domain.Game{
			ID:             id,
			Name:           cfg.Name,
			InstallPath:    ExpandPath(cfg.InstallPath),
			SteamAppID:     cfg.SteamAppID,
			ExeName:        cfg.ExeName,
			DataFolder:     cfg.DataFolder,
			ManagedSubpath: cfg.ManagedSubpath,
			Hooks: domain.GameHooks{
				Link:  expandHooks(cfg.Hooks.Link),
				Reset: expandHooks(cfg.Hooks.Reset),
			},
		}
	}

	return games, nil
}

func expandHooks(h domain.HookConfig) domain.HookConfig {
	return domain.HookConfig{Before: ExpandPath(h.Before), After: ExpandPath(h.After)}
}

// SaveGame adds or updates a game in games.yaml
func SaveGame(configDir string, game *domain.Game) error {
	games, err := LoadGames(configDir)
	if err != nil {
		return err
	}

	games[game.ID] = game

	return saveGames(configDir, games)
}

// DeleteGame removes a game from games.yaml
func DeleteGame(configDir string, gameID string) error {
	games, err := LoadGames(configDir)
	if err != nil {
		return err
	}

	if _, exists := games[gameID]; !exists {
		return domain.ErrGameNotFound
	}

	delete(games, gameID)
	return saveGames(configDir, games)
}

func saveGames(configDir string, games map[string]*domain.Game) error {
	gamesFile := GamesFile{Games: make(map[string]GameConfig, len(games))}

	for id, game := range games {
		gamesFile.Games[id] = GameConfig{
			Name:           game.Name,
			InstallPath:    game.InstallPath,
			SteamAppID:     game.SteamAppID,
			ExeName:        game.ExeName,
			DataFolder:     game.DataFolder,
			ManagedSubpath: game.ManagedSubpath,
			Hooks:          game.Hooks,
		}
	}

	data, err := yaml.Marshal(&gamesFile)
	if err != nil {
		return fmt.Errorf("marshaling games: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(configDir, "games.yaml"), data); err != nil {
		return fmt.Errorf("writing games.yaml: %w", err)
	}

	return nil
}
