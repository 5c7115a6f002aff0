package steam

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DonovanMods/modlink/internal/domain"
)

// DetectedGame is a Steam game found on disk that modlink knows how to configure.
type DetectedGame struct {
	SteamAppID  string
	Slug        string
	Name        string
	InstallPath string // e.g. .../steamapps/common/Risk of Rain 2
	ExeName     string
	DataFolder  string
}

// ToGame converts a detection result into a game configuration.
func (d DetectedGame) ToGame() *domain.Game {
	return &domain.Game{
		ID:          d.Slug,
		Name:        d.Name,
		InstallPath: d.InstallPath,
		SteamAppID:  d.SteamAppID,
		ExeName:     d.ExeName,
		DataFolder:  d.DataFolder,
	}
}

// FindSteamRoots returns candidate Steam installation roots in search order.
// STEAM_ROOT, when set, is searched first.
func FindSteamRoots() []string {
	home, _ := os.UserHomeDir()
	candidates := []string{
		filepath.Join(home, ".steam", "steam"),
		filepath.Join(home, ".local", "share", "Steam"),
	}
	if p := os.Getenv("STEAM_ROOT"); p != "" {
		candidates = append([]string{p}, candidates...)
	}

	var out []string
	seen := make(map[string]bool)
	for _, p := range candidates {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			continue
		}
		// ~/.steam/steam is usually a symlink to ~/.local/share/Steam
		key := p
		if resolved, err := filepath.EvalSymlinks(p); err == nil {
			key = resolved
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, p)
	}
	return out
}

// GetLibraryPaths returns every Steam library listed in a root's
// libraryfolders.vdf. A root without the file is its own single library.
func GetLibraryPaths(steamRoot string) ([]string, error) {
	f, err := os.Open(filepath.Join(steamRoot, "steamapps", "libraryfolders.vdf"))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{steamRoot}, nil
		}
		return nil, fmt.Errorf("reading libraryfolders: %w", err)
	}
	defer f.Close()

	root, err := ParseVDF(f)
	if err != nil {
		return nil, fmt.Errorf("parsing libraryfolders: %w", err)
	}
	paths := libraryPaths(root)
	if len(paths) == 0 {
		return []string{steamRoot}, nil
	}
	return paths, nil
}

// installedApp is one appmanifest found in a library.
type installedApp struct {
	manifest    AppManifest
	installPath string
}

// scanLibrary reads every appmanifest_*.acf in a library whose install
// directory exists on disk. Unreadable manifests are skipped.
func scanLibrary(libPath string) []installedApp {
	steamapps := filepath.Join(libPath, "steamapps")
	entries, err := os.ReadDir(steamapps)
	if err != nil {
		return nil
	}

	var apps []installedApp
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasPrefix(name, "appmanifest_") || !strings.HasSuffix(name, ".acf") {
			continue
		}
		f, err := os.Open(filepath.Join(steamapps, name))
		if err != nil {
			continue
		}
		manifest, err := ParseAppManifest(f)
		f.Close()
		if err != nil || manifest.AppID == "" || manifest.InstallDir == "" {
			continue
		}
		installPath := filepath.Join(steamapps, "common", manifest.InstallDir)
		if info, err := os.Stat(installPath); err != nil || !info.IsDir() {
			continue
		}
		apps = append(apps, installedApp{manifest: manifest, installPath: installPath})
	}
	return apps
}

// installedApps walks every library of every root. The first library that
// holds an app wins.
func installedApps(roots []string) []installedApp {
	var out []installedApp
	seen := make(map[string]bool)
	for _, root := range roots {
		libraries, err := GetLibraryPaths(root)
		if err != nil {
			continue
		}
		for _, lib := range libraries {
			for _, app := range scanLibrary(lib) {
				if seen[app.manifest.AppID] {
					continue
				}
				seen[app.manifest.AppID] = true
				out = append(out, app)
			}
		}
	}
	return out
}

// DetectGames scans Steam libraries for known games. configDir supplies the
// optional steam-games.yaml override of the known-games list.
func DetectGames(configDir string) ([]DetectedGame, error) {
	return detectGames(configDir, FindSteamRoots())
}

func detectGames(configDir string, roots []string) ([]DetectedGame, error) {
	knownGames, err := LoadKnownGames(configDir)
	if err != nil {
		return nil, err
	}

	var found []DetectedGame
	for _, app := range installedApps(roots) {
		info, ok := knownGames[app.manifest.AppID]
		if !ok {
			continue
		}
		found = append(found, DetectedGame{
			SteamAppID:  app.manifest.AppID,
			Slug:        info.Slug,
			Name:        info.Name,
			InstallPath: app.installPath,
			ExeName:     info.ExeName,
			DataFolder:  info.DataFolder,
		})
	}
	return found, nil
}

// Locator resolves a game's install directory from the local Steam libraries.
type Locator struct {
	roots []string
}

// NewLocator returns a Locator over the default Steam roots.
func NewLocator() *Locator {
	return &Locator{}
}

// NewLocatorWithRoots returns a Locator over explicit Steam roots.
func NewLocatorWithRoots(roots ...string) *Locator {
	return &Locator{roots: roots}
}

// InstallDir returns the install directory of appID, or
// domain.ErrInstallDirNotFound if no library holds it.
func (l *Locator) InstallDir(appID string) (string, error) {
	if appID == "" {
		return "", fmt.Errorf("no steam app id: %w", domain.ErrInstallDirNotFound)
	}
	roots := l.roots
	if roots == nil {
		roots = FindSteamRoots()
	}
	for _, app := range installedApps(roots) {
		if app.manifest.AppID == appID {
			return app.installPath, nil
		}
	}
	return "", fmt.Errorf("steam app %s: %w", appID, domain.ErrInstallDirNotFound)
}
