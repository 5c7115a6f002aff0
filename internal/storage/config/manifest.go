package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/modlink/internal/domain"

	"gopkg.in/yaml.v3"
)

// LoadManifest reads mods.yml from a profile directory. A missing manifest
// yields nil without error; profiles created by hand need not have one.
func LoadManifest(profileDir string) (*domain.ProfileManifest, error) {
	data, err := os.ReadFile(filepath.Join(profileDir, domain.ReservedMetadataFile))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m domain.ProfileManifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	return &m, nil
}

// SaveManifest writes mods.yml into a profile directory
func SaveManifest(profileDir string, m *domain.ProfileManifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(profileDir, domain.ReservedMetadataFile), data); err != nil {
		return fmt.Errorf("writing manifest: %w", err)
	}

	return nil
}
