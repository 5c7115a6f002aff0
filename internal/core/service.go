package core

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/linker"
	"github.com/DonovanMods/modlink/internal/logger"
	"github.com/DonovanMods/modlink/internal/resetter"
	"github.com/DonovanMods/modlink/internal/steam"
	"github.com/DonovanMods/modlink/internal/storage/config"
	"github.com/DonovanMods/modlink/internal/storage/db"
	"github.com/DonovanMods/modlink/internal/trigger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ServiceConfig holds configuration for the core service
type ServiceConfig struct {
	ConfigDir    string                     // Directory for configuration files
	DataDir      string                     // Directory for database, logs and profiles
	Logger       *zap.Logger                // nil disables logging
	Trigger      resetter.ValidationTrigger // Default: steam://validate
	Locator      InstallLocator             // Default: install_path, then Steam libraries
	IsRunning    ProcessChecker             // Default: IsProcessRunning
	DisableHooks bool
}

// Options modifies a link or reset
type Options struct {
	Force bool // Skip the game-running check
}

// LinkResult describes a completed link
type LinkResult struct {
	RunID      string
	Profile    string
	InstallDir string
	Files      []string // Absolute paths now present in the install directory
	Warnings   []string
}

// ResetResult describes a completed reset
type ResetResult struct {
	InstallDir string
	Warnings   []string
}

// Service is the main orchestrator for link and reset operations
type Service struct {
	config   *config.Config
	db       *db.DB
	games    map[string]*domain.Game
	profiles *ProfileManager
	linker   *linker.Linker
	resetter *resetter.Resetter
	locator  InstallLocator
	running  ProcessChecker
	log      *zap.Logger

	configDir    string
	dataDir      string
	disableHooks bool
}

// NewService creates a new core service instance
func NewService(cfg ServiceConfig) (*Service, error) {
	log := logger.OrNop(cfg.Logger)

	appConfig, err := config.Load(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	games, err := config.LoadGames(cfg.ConfigDir)
	if err != nil {
		return nil, fmt.Errorf("loading games: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	database, err := db.New(filepath.Join(cfg.DataDir, "modlink.db"))
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	profilesDir := appConfig.ProfilesPath
	if profilesDir == "" {
		profilesDir = filepath.Join(cfg.DataDir, "profiles")
	}

	trig := cfg.Trigger
	if trig == nil {
		trig = trigger.NewSteam()
	}
	locator := cfg.Locator
	if locator == nil {
		locator = NewInstallLocator(steam.NewLocator())
	}
	running := cfg.IsRunning
	if running == nil {
		running = IsProcessRunning
	}

	return &Service{
		config:       appConfig,
		db:           database,
		games:        games,
		profiles:     NewProfileManager(profilesDir, log),
		linker:       linker.New(log),
		resetter:     resetter.New(trig, log),
		locator:      locator,
		running:      running,
		log:          log,
		configDir:    cfg.ConfigDir,
		dataDir:      cfg.DataDir,
		disableHooks: cfg.DisableHooks,
	}, nil
}

// Close releases resources held by the service
func (s *Service) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ConfigDir returns the configuration directory
func (s *Service) ConfigDir() string { return s.configDir }

// DataDir returns the data directory
func (s *Service) DataDir() string { return s.dataDir }

// Config returns the loaded global configuration
func (s *Service) Config() *config.Config { return s.config }

// Profiles returns the profile manager
func (s *Service) Profiles() *ProfileManager { return s.profiles }

// Link mirrors the game's active profile into its install directory,
// replacing whatever the previous link put there.
func (s *Service) Link(ctx context.Context, gameID string, opts Options) (*LinkResult, error) {
	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if err := s.checkNotRunning(game, opts); err != nil {
		return nil, err
	}

	installDir, err := s.InstallDir(game)
	if err != nil {
		return nil, err
	}

	profileName := s.ActiveProfile(gameID)
	if profileName == "" {
		return nil, fmt.Errorf("%s: %w", game.DisplayName(), domain.ErrNoActiveProfile)
	}
	profile, err := s.profiles.Get(gameID, profileName)
	if err != nil {
		return nil, err
	}

	log := s.log.With(zap.String(logger.FieldGame, gameID), zap.String(logger.FieldProfile, profileName))
	hc := HookContext{GameID: gameID, GamePath: installDir, Profile: profileName, ProfilePath: profile.Path}

	if err := s.runHook(ctx, game.Hooks.Link.Before, HookLinkBefore, hc); err != nil {
		return nil, fmt.Errorf("%s hook: %w", HookLinkBefore, err)
	}

	previous, err := s.db.GetLinkedFiles(gameID)
	if err != nil {
		return nil, fmt.Errorf("loading linked files: %w", err)
	}

	linked, err := s.linker.Link(installDir, profile.Path, previous)
	if err != nil {
		return nil, err
	}

	if err := s.db.ReplaceLinkedFiles(gameID, linked); err != nil {
		return nil, fmt.Errorf("saving linked files: %w", err)
	}

	result := &LinkResult{
		RunID:      uuid.NewString(),
		Profile:    profileName,
		InstallDir: installDir,
		Files:      linked,
	}
	run := domain.LinkRun{
		ID:          result.RunID,
		GameID:      gameID,
		ProfileName: profileName,
		FileCount:   len(linked),
		LinkedAt:    time.Now().UTC(),
	}
	if err := s.db.RecordLinkRun(run); err != nil {
		log.Warn("recording link run", zap.Error(err))
		result.Warnings = append(result.Warnings, fmt.Sprintf("link history not saved: %v", err))
	}
	log.Info("link complete", zap.String(logger.FieldRunID, run.ID), zap.Int(logger.FieldCount, len(linked)))

	if err := s.runHook(ctx, game.Hooks.Link.After, HookLinkAfter, hc); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s hook: %v", HookLinkAfter, err))
	}

	return result, nil
}

// Unlink removes everything the last link put into the install directory.
// It returns the number of paths removed.
func (s *Service) Unlink(gameID string) (int, error) {
	if _, err := s.GetGame(gameID); err != nil {
		return 0, err
	}

	previous, err := s.db.GetLinkedFiles(gameID)
	if err != nil {
		return 0, fmt.Errorf("loading linked files: %w", err)
	}
	if err := s.linker.Remove(previous); err != nil {
		return 0, err
	}
	if err := s.db.ReplaceLinkedFiles(gameID, nil); err != nil {
		return 0, fmt.Errorf("saving linked files: %w", err)
	}

	s.log.Info("unlinked", zap.String(logger.FieldGame, gameID), zap.Int(logger.FieldCount, len(previous)))
	return len(previous), nil
}

// Reset deletes the game's managed directory and asks Steam to restore it.
func (s *Service) Reset(ctx context.Context, gameID string, opts Options) (*ResetResult, error) {
	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, err
	}
	if err := s.checkNotRunning(game, opts); err != nil {
		return nil, err
	}

	installDir, err := s.InstallDir(game)
	if err != nil {
		return nil, err
	}

	hc := HookContext{GameID: gameID, GamePath: installDir}
	if name := s.ActiveProfile(gameID); name != "" {
		hc.Profile = name
		hc.ProfilePath = s.profiles.Path(gameID, name)
	}

	if err := s.runHook(ctx, game.Hooks.Reset.Before, HookResetBefore, hc); err != nil {
		return nil, fmt.Errorf("%s hook: %w", HookResetBefore, err)
	}

	if err := s.resetter.Reset(installDir, resetter.TargetFor(game)); err != nil {
		return nil, err
	}

	result := &ResetResult{InstallDir: installDir}
	if err := s.runHook(ctx, game.Hooks.Reset.After, HookResetAfter, hc); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%s hook: %v", HookResetAfter, err))
	}
	return result, nil
}

func (s *Service) checkNotRunning(game *domain.Game, opts Options) error {
	if opts.Force || game.ExeName == "" {
		return nil
	}
	running, err := s.running(game.ExeName)
	if err != nil {
		// Not being able to tell is not a reason to refuse
		s.log.Warn("checking for running game", zap.String(logger.FieldGame, game.ID), zap.Error(err))
		return nil
	}
	if running {
		return fmt.Errorf("%s: %w", game.DisplayName(), domain.ErrGameRunning)
	}
	return nil
}

func (s *Service) runHook(ctx context.Context, script, name string, hc HookContext) error {
	if script == "" || s.disableHooks {
		return nil
	}
	hc.HookName = name

	runner := NewHookRunner(time.Duration(s.config.HookTimeout) * time.Second)
	s.log.Info("running hook", zap.String(logger.FieldHook, name), zap.String(logger.FieldPath, script))
	result, err := runner.Run(ctx, script, hc)
	if result != nil && (result.Stdout != "" || result.Stderr != "") {
		s.log.Debug("hook output", zap.String(logger.FieldHook, name),
			zap.String("stdout", result.Stdout), zap.String("stderr", result.Stderr))
	}
	if err != nil {
		s.log.Error("hook failed", zap.String(logger.FieldHook, name), zap.Error(err))
	}
	return err
}

// LinkedFiles returns the paths the last link put into the game's install directory
func (s *Service) LinkedFiles(gameID string) ([]string, error) {
	return s.db.GetLinkedFiles(gameID)
}

// LastLinkRun returns the most recent successful link, or nil if there is none
func (s *Service) LastLinkRun(gameID string) (*domain.LinkRun, error) {
	return s.db.LastLinkRun(gameID)
}

// InstallDir resolves the game's install directory
func (s *Service) InstallDir(game *domain.Game) (string, error) {
	return s.locator.InstallDir(game)
}

// ActiveProfile returns the profile a link would mirror, or "" if none is set
func (s *Service) ActiveProfile(gameID string) string {
	return s.config.ActiveProfile(gameID)
}

// SetActiveProfile selects the profile to link for a game; "" clears it
func (s *Service) SetActiveProfile(gameID, name string) error {
	if _, err := s.GetGame(gameID); err != nil {
		return err
	}
	if name != "" {
		if _, err := s.profiles.Get(gameID, name); err != nil {
			return err
		}
	}
	s.config.SetActiveProfile(gameID, name)
	return s.config.Save(s.configDir)
}

// CreateProfile creates a profile. The first profile of a game becomes active.
func (s *Service) CreateProfile(gameID, name string) (*domain.Profile, error) {
	if _, err := s.GetGame(gameID); err != nil {
		return nil, err
	}
	profile, err := s.profiles.Create(gameID, name)
	if err != nil {
		return nil, err
	}
	if s.ActiveProfile(gameID) == "" {
		if err := s.SetActiveProfile(gameID, name); err != nil {
			return profile, err
		}
	}
	return profile, nil
}

// DeleteProfile deletes a profile, clearing it as the active one if needed
func (s *Service) DeleteProfile(gameID, name string) error {
	if err := s.profiles.Delete(gameID, name); err != nil {
		return err
	}
	if s.ActiveProfile(gameID) == name {
		s.config.SetActiveProfile(gameID, "")
		return s.config.Save(s.configDir)
	}
	return nil
}

// GetGame retrieves a game by ID
func (s *Service) GetGame(gameID string) (*domain.Game, error) {
	game, ok := s.games[gameID]
	if !ok {
		return nil, fmt.Errorf("%s: %w", gameID, domain.ErrGameNotFound)
	}
	return game, nil
}

// ListGames returns all configured games sorted by ID
func (s *Service) ListGames() []*domain.Game {
	games := make([]*domain.Game, 0, len(s.games))
	for _, g := range s.games {
		games = append(games, g)
	}
	sort.Slice(games, func(i, j int) bool { return games[i].ID < games[j].ID })
	return games
}

// AddGame adds or replaces a game configuration
func (s *Service) AddGame(game *domain.Game) error {
	if err := ValidateGameID(game.ID); err != nil {
		return err
	}
	if err := config.SaveGame(s.configDir, game); err != nil {
		return err
	}
	s.games[game.ID] = game
	return nil
}

// RemoveGame removes a game configuration. Profiles and linked files are kept.
func (s *Service) RemoveGame(gameID string) error {
	if err := config.DeleteGame(s.configDir, gameID); err != nil {
		return err
	}
	delete(s.games, gameID)
	if s.config.DefaultGame == gameID {
		s.config.DefaultGame = ""
		return s.config.Save(s.configDir)
	}
	return nil
}

// SetDefaultGame records the game used when --game is omitted
func (s *Service) SetDefaultGame(gameID string) error {
	if _, err := s.GetGame(gameID); err != nil {
		return err
	}
	s.config.DefaultGame = gameID
	return s.config.Save(s.configDir)
}

// DetectGames finds known games in the local Steam libraries
func (s *Service) DetectGames() ([]steam.DetectedGame, error) {
	return steam.DetectGames(s.configDir)
}

// ImportGames adds every game from a games.yaml-formatted file and returns their IDs
func (s *Service) ImportGames(path string) ([]string, error) {
	path, err := config.ParseImportPath(path)
	if err != nil {
		return nil, err
	}
	games, err := config.ReadGamesFile(path)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(games))
	for id := range games {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := ValidateGameID(id); err != nil {
			return nil, err
		}
	}
	for _, id := range ids {
		if err := s.AddGame(games[id]); err != nil {
			return nil, fmt.Errorf("importing %s: %w", id, err)
		}
	}
	return ids, nil
}
