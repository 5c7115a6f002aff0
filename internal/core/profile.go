package core

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/linker"
	"github.com/DonovanMods/modlink/internal/logger"
	"github.com/DonovanMods/modlink/internal/storage/config"

	"go.uber.org/zap"
)

// ProfileManager handles profile directories under <root>/<game>/<profile>
type ProfileManager struct {
	root string
	log  *zap.Logger
}

// NewProfileManager creates a profile manager rooted at the profiles directory
func NewProfileManager(root string, log *zap.Logger) *ProfileManager {
	return &ProfileManager{root: root, log: logger.OrNop(log)}
}

// ValidateName rejects profile and file names that are empty, "." or "..",
// or that contain a path separator.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%q: %w", name, domain.ErrInvalidProfileName)
	}
	return nil
}

// ValidateGameID rejects game IDs that cannot be used as a single
// directory name under the profiles root.
func ValidateGameID(id string) error {
	if id == "" || id == "." || id == ".." || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("game id %q: %w", id, domain.ErrInvalidConfig)
	}
	return nil
}

// Root returns the profiles directory
func (pm *ProfileManager) Root() string {
	return pm.root
}

// Path returns the directory of a profile, whether or not it exists
func (pm *ProfileManager) Path(gameID, name string) string {
	return filepath.Join(pm.root, gameID, name)
}

// List returns all profiles for a game sorted by name
func (pm *ProfileManager) List(gameID string) ([]*domain.Profile, error) {
	if err := ValidateGameID(gameID); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(pm.root, gameID))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	profiles := make([]*domain.Profile, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		profile, err := pm.Get(gameID, e.Name())
		if err != nil {
			pm.log.Warn("skipping unreadable profile", zap.String(logger.FieldProfile, e.Name()), zap.Error(err))
			continue
		}
		profiles = append(profiles, profile)
	}

	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles, nil
}

// Get retrieves a specific profile with the files a link would mirror
func (pm *ProfileManager) Get(gameID, name string) (*domain.Profile, error) {
	if err := ValidateGameID(gameID); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	dir := pm.Path(gameID, name)
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s/%s: %w", gameID, name, domain.ErrProfileNotFound)
	}

	files, err := listProfileFiles(dir)
	if err != nil {
		return nil, err
	}

	profile := &domain.Profile{Name: name, GameID: gameID, Path: dir, Files: files}
	manifest, err := config.LoadManifest(dir)
	if err != nil {
		pm.log.Warn("ignoring unreadable manifest", zap.String(logger.FieldPath, dir), zap.Error(err))
	} else if manifest != nil {
		profile.CreatedAt = manifest.CreatedAt
	}

	return profile, nil
}

// Files returns the names of the top-level files a link would mirror
func (pm *ProfileManager) Files(gameID, name string) ([]string, error) {
	profile, err := pm.Get(gameID, name)
	if err != nil {
		return nil, err
	}
	return profile.Files, nil
}

// Create makes a new, empty profile directory with its mods.yml manifest
func (pm *ProfileManager) Create(gameID, name string) (*domain.Profile, error) {
	if err := ValidateGameID(gameID); err != nil {
		return nil, err
	}
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	dir := pm.Path(gameID, name)
	if _, err := os.Stat(dir); err == nil {
		return nil, fmt.Errorf("%s/%s: %w", gameID, name, domain.ErrProfileExists)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating profile directory: %w", err)
	}

	manifest := &domain.ProfileManifest{
		Name:      name,
		GameID:    gameID,
		CreatedAt: time.Now().UTC(),
		Mods:      []domain.ManifestEntry{},
	}
	if err := config.SaveManifest(dir, manifest); err != nil {
		return nil, fmt.Errorf("saving profile: %w", err)
	}

	pm.log.Info("created profile", zap.String(logger.FieldGame, gameID), zap.String(logger.FieldProfile, name))
	return &domain.Profile{Name: name, GameID: gameID, Path: dir, CreatedAt: manifest.CreatedAt}, nil
}

// Delete removes a profile directory and everything in it
func (pm *ProfileManager) Delete(gameID, name string) error {
	if _, err := pm.Get(gameID, name); err != nil {
		return err
	}
	if err := os.RemoveAll(pm.Path(gameID, name)); err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	pm.log.Info("deleted profile", zap.String(logger.FieldGame, gameID), zap.String(logger.FieldProfile, name))
	return nil
}

// AddFiles copies files into a profile and records them in its manifest.
// Files already present are overwritten. It returns the names added.
func (pm *ProfileManager) AddFiles(gameID, name string, sources []string) ([]string, error) {
	profile, err := pm.Get(gameID, name)
	if err != nil {
		return nil, err
	}

	// Check everything up front so a bad argument copies nothing.
	// A source that already is the profile's file is only recorded.
	inPlace := make(map[string]bool)
	for _, src := range sources {
		base := filepath.Base(src)
		if strings.EqualFold(base, domain.ReservedMetadataFile) {
			return nil, fmt.Errorf("%s is reserved for profile metadata", base)
		}
		info, err := os.Stat(src)
		if err != nil {
			return nil, fmt.Errorf("adding %s: %w", src, err)
		}
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("adding %s: not a regular file", src)
		}
		if dstInfo, err := os.Stat(filepath.Join(profile.Path, base)); err == nil && os.SameFile(info, dstInfo) {
			inPlace[src] = true
		}
	}

	added := make([]string, 0, len(sources))
	for _, src := range sources {
		base := filepath.Base(src)
		if !inPlace[src] {
			if err := linker.CopyFile(src, filepath.Join(profile.Path, base)); err != nil {
				return added, fmt.Errorf("adding %s: %w", src, err)
			}
		}
		pm.log.Debug("added file to profile", zap.String(logger.FieldProfile, name), zap.String(logger.FieldFile, base))
		added = append(added, base)
	}

	if err := pm.updateManifest(profile, func(m *domain.ProfileManifest) {
		now := time.Now().UTC()
		for _, file := range added {
			m.Mods = removeEntry(m.Mods, file)
			m.Mods = append(m.Mods, domain.ManifestEntry{File: file, AddedAt: now})
		}
	}); err != nil {
		return added, err
	}

	return added, nil
}

// RemoveFile deletes one top-level file from a profile
func (pm *ProfileManager) RemoveFile(gameID, name, file string) error {
	if err := ValidateName(file); err != nil {
		return fmt.Errorf("invalid file name %q", file)
	}
	if strings.EqualFold(file, domain.ReservedMetadataFile) {
		return fmt.Errorf("%s is reserved for profile metadata", file)
	}

	profile, err := pm.Get(gameID, name)
	if err != nil {
		return err
	}

	path := filepath.Join(profile.Path, file)
	info, err := os.Lstat(path)
	if err != nil || info.IsDir() {
		return fmt.Errorf("file %q is not in profile %s", file, name)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("removing %s: %w", file, err)
	}

	return pm.updateManifest(profile, func(m *domain.ProfileManifest) {
		m.Mods = removeEntry(m.Mods, file)
	})
}

func (pm *ProfileManager) updateManifest(profile *domain.Profile, fn func(*domain.ProfileManifest)) error {
	manifest, err := config.LoadManifest(profile.Path)
	if err != nil {
		return err
	}
	if manifest == nil {
		manifest = &domain.ProfileManifest{Name: profile.Name, GameID: profile.GameID, CreatedAt: time.Now().UTC()}
	}
	fn(manifest)
	return config.SaveManifest(profile.Path, manifest)
}

func removeEntry(entries []domain.ManifestEntry, file string) []domain.ManifestEntry {
	out := entries[:0]
	for _, e := range entries {
		if e.File != file {
			out = append(out, e)
		}
	}
	return out
}

// listProfileFiles returns the regular files in dir, excluding the manifest.
func listProfileFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading profile: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.Type().IsRegular() || strings.EqualFold(e.Name(), domain.ReservedMetadataFile) {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
