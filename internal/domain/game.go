package domain

import "path/filepath"

// ReservedMetadataFile is the profile manifest. It lives in every profile
// directory and is never mirrored into the game (matched case-insensitively).
const ReservedMetadataFile = "mods.yml"

// Game represents a moddable game
type Game struct {
	ID             string    // Unique slug, e.g., "risk-of-rain-2"
	Name           string    // Display name
	InstallPath    string    // Game installation directory; empty means resolve via Steam
	SteamAppID     string    // Steam App ID, used for install lookup and steam://validate
	ExeName        string    // Executable that must exist directly under the install directory
	DataFolder     string    // Unity data folder, e.g., "Risk of Rain 2_Data"
	ManagedSubpath string    // Optional: directory removed by reset; defaults to <DataFolder>/Managed
	Hooks          GameHooks // Optional: scripts around link and reset
}

// ManagedPath returns the install-relative directory that reset clears.
func (g *Game) ManagedPath() string {
	if g.ManagedSubpath != "" {
		return filepath.FromSlash(g.ManagedSubpath)
	}
	if g.DataFolder == "" {
		return ""
	}
	return filepath.Join(g.DataFolder, "Managed")
}

// DisplayName returns Name, falling back to ID
func (g *Game) DisplayName() string {
	if g.Name != "" {
		return g.Name
	}
	return g.ID
}
