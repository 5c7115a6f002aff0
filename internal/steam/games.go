package steam

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed data/steam-games.yaml
var defaultSteamGamesFS embed.FS

const defaultSteamGamesPath = "data/steam-games.yaml"

// GameInfo describes a game modlink knows how to configure, keyed by Steam App ID.
type GameInfo struct {
	Slug       string // modlink game ID, e.g. "risk-of-rain-2"
	Name       string // Display name, e.g. "Risk of Rain 2"
	ExeName    string // Executable directly under the install dir
	DataFolder string // Unity data folder holding Managed/
}

type steamGamesYAML map[string]struct {
	Slug       string `yaml:"slug"`
	Name       string `yaml:"name"`
	ExeName    string `yaml:"exe_name"`
	DataFolder string `yaml:"data_folder"`
}

func (y steamGamesYAML) mergeInto(out map[string]GameInfo) {
	for appID, e := range y {
		out[appID] = GameInfo{Slug: e.Slug, Name: e.Name, ExeName: e.ExeName, DataFolder: e.DataFolder}
	}
}

// LoadKnownGames returns the known Steam App ID -> GameInfo map: the embedded
// list, with configDir/steam-games.yaml merged over it when present.
func LoadKnownGames(configDir string) (map[string]GameInfo, error) {
	data, err := defaultSteamGamesFS.ReadFile(defaultSteamGamesPath)
	if err != nil {
		return nil, fmt.Errorf("reading embedded steam-games: %w", err)
	}
	var embedded steamGamesYAML
	if err := yaml.Unmarshal(data, &embedded); err != nil {
		return nil, fmt.Errorf("parsing embedded steam-games: %w", err)
	}
	out := make(map[string]GameInfo, len(embedded))
	embedded.mergeInto(out)

	overridePath := filepath.Join(configDir, "steam-games.yaml")
	overrideData, err := os.ReadFile(overridePath)
	if err != nil {
		if os.IsNotExist(err) {
			return out, nil
		}
		return nil, fmt.Errorf("reading %s: %w", overridePath, err)
	}
	var override steamGamesYAML
	if err := yaml.Unmarshal(overrideData, &override); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", overridePath, err)
	}
	override.mergeInto(out)
	return out, nil
}
