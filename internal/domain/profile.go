package domain

import "time"

// Profile is a directory of mod files that can be mirrored into a game
type Profile struct {
	Name      string    // Profile identifier (also its directory name)
	GameID    string    // Which game this profile is for
	Path      string    // Absolute path of the profile directory
	Files     []string  // Top-level files that a link would mirror, in directory order
	CreatedAt time.Time // From the manifest; zero if the manifest is missing
}

// ManifestEntry records a file added to a profile
type ManifestEntry struct {
	File    string    `yaml:"file"`
	AddedAt time.Time `yaml:"added_at"`
}

// ProfileManifest is the content of a profile's mods.yml
type ProfileManifest struct {
	Name      string          `yaml:"name"`
	GameID    string          `yaml:"game_id"`
	CreatedAt time.Time       `yaml:"created_at"`
	Mods      []ManifestEntry `yaml:"mods"`
}

// LinkRun is a record of one successful link operation
type LinkRun struct {
	ID          string
	GameID      string
	ProfileName string
	FileCount   int
	LinkedAt    time.Time
}
