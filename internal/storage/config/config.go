// Package config reads and writes modlink's YAML configuration: global
// settings, configured games, and profile manifests.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultHookTimeout is used when hook_timeout is unset, in seconds
const DefaultHookTimeout = 60

// Config holds global application settings
type Config struct {
	DefaultGame    string            `yaml:"default_game,omitempty"`
	HookTimeout    int               `yaml:"hook_timeout,omitempty"` // seconds
	LogLevel       string            `yaml:"log_level,omitempty"`
	ProfilesPath   string            `yaml:"profiles_path,omitempty"`   // overrides <data>/profiles
	Keybindings    string            `yaml:"keybindings,omitempty"`     // vim or standard
	ActiveProfiles map[string]string `yaml:"active_profiles,omitempty"` // game ID -> profile name
}

// Load reads configuration from the given directory
func Load(configDir string) (*Config, error) {
	cfg := &Config{
		HookTimeout: DefaultHookTimeout,
		LogLevel:    "info",
		Keybindings: "vim",
	}

	configPath := filepath.Join(configDir, "config.yaml")
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.ActiveProfiles = make(map[string]string)
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.HookTimeout <= 0 {
		cfg.HookTimeout = DefaultHookTimeout
	}
	if cfg.ActiveProfiles == nil {
		cfg.ActiveProfiles = make(map[string]string)
	}
	cfg.ProfilesPath = ExpandPath(cfg.ProfilesPath)

	return cfg, nil
}

// Save writes configuration to the given directory
func (c *Config) Save(configDir string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := writeFileAtomic(filepath.Join(configDir, "config.yaml"), data); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// ActiveProfile returns the active profile for a game, or "" if none is set
func (c *Config) ActiveProfile(gameID string) string {
	return c.ActiveProfiles[gameID]
}

// SetActiveProfile records the active profile for a game; "" clears it
func (c *Config) SetActiveProfile(gameID, profileName string) {
	if c.ActiveProfiles == nil {
		c.ActiveProfiles = make(map[string]string)
	}
	if profileName == "" {
		delete(c.ActiveProfiles, gameID)
		return
	}
	c.ActiveProfiles[gameID] = profileName
}
