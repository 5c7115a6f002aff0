package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/DonovanMods/modlink/internal/core"
	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/logger"
	"github.com/DonovanMods/modlink/internal/storage/config"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ErrCancelled is returned when the user cancels an operation (e.g. prompt declined).
// When returned from a command, Execute exits with code 2.
var ErrCancelled = errors.New("cancelled")

var (
	version = "0.3.0"

	// Global flags
	configDir  string
	dataDir    string
	gameID     string
	verbose    bool
	noHooks    bool
	jsonOutput bool
	noColor    bool
)

// configureService lets tests replace the Steam and process integrations
var configureService = func(*core.ServiceConfig) {}

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "modlink",
	Short: "modlink - profile-based mod linking for Steam games",
	Long: `modlink keeps mod profiles outside the game and mirrors the active one
into the game's install directory. It can also reset an install back to its
vanilla state and ask Steam to verify the game files.

Use subcommands for operations, or 'modlink tui' for the interactive interface.`,
	Version:       version,
	SilenceUsage:  true, // Runtime errors should not print usage
	SilenceErrors: true, // We handle error output in Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config", "", "config directory (default: ~/.config/modlink)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default: ~/.local/share/modlink)")
	rootCmd.PersistentFlags().StringVarP(&gameID, "game", "g", "", "game ID to operate on")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVar(&noHooks, "no-hooks", false, "disable all hooks")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format (status, profile list, game list)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
}

// colorEnabled returns true if colored output should be used (respects --no-color and NO_COLOR env).
// NO_COLOR: if set (any value), color is disabled per https://no-color.org
func colorEnabled() bool {
	if noColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

const (
	ansiReset  = "\033[0m"
	ansiGreen  = "\033[32m"
	ansiRed    = "\033[31m"
	ansiYellow = "\033[33m"
)

func colorGreen(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiGreen + s + ansiReset
}

func colorRed(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiRed + s + ansiReset
}

func colorYellow(s string) string {
	if !colorEnabled() {
		return s
	}
	return ansiYellow + s + ansiReset
}

// jsonError is printed to stdout when --json is set and a command fails
type jsonError struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
	Hint   string `json:"hint,omitempty"`
}

// Execute runs the root command. Exit codes: 0 = success, 1 = error, 2 = user cancelled.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, ErrCancelled) {
			os.Exit(2)
		}
		if jsonOutput {
			data, _ := json.Marshal(toJSONError(err))
			fmt.Println(string(data))
		} else {
			fmt.Fprint(os.Stderr, formatError(err))
		}
		os.Exit(1)
	}
}

func toJSONError(err error) jsonError {
	var de *domain.Error
	if errors.As(err, &de) {
		return jsonError{Error: de.Title, Detail: de.Detail, Hint: de.Hint}
	}
	return jsonError{Error: err.Error()}
}

// formatError renders an error for the terminal. Link and reset failures
// carry a title, the system error and a hint on separate lines.
func formatError(err error) string {
	var de *domain.Error
	if !errors.As(err, &de) {
		return fmt.Sprintf("%s %v\n", colorRed("Error:"), err)
	}
	out := fmt.Sprintf("%s %s\n", colorRed("Error:"), de.Title)
	if de.Detail != "" {
		out += fmt.Sprintf("  %s\n", de.Detail)
	}
	if de.Hint != "" {
		out += fmt.Sprintf("  %s %s\n", colorYellow("Hint:"), de.Hint)
	}
	return out
}

// initService creates and initializes the core service
func initService() (*core.Service, error) {
	cfg, err := getServiceConfig()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.ConfigDir, 0755); err != nil {
		return nil, fmt.Errorf("creating config dir: %w", err)
	}
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	level := ""
	if appConfig, err := config.Load(cfg.ConfigDir); err == nil {
		level = appConfig.LogLevel
	}
	log, err := logger.New(logger.Options{
		Dir:     filepath.Join(cfg.DataDir, "logs"),
		Level:   level,
		Verbose: verbose,
	})
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	cfg.Logger = log

	configureService(&cfg)

	return core.NewService(cfg)
}

// getServiceConfig returns the service configuration with defaults.
// Returns an error if UserHomeDir fails and defaults are needed.
func getServiceConfig() (core.ServiceConfig, error) {
	cfg := core.ServiceConfig{
		ConfigDir:    configDir,
		DataDir:      dataDir,
		DisableHooks: noHooks,
	}
	if cfg.ConfigDir != "" && cfg.DataDir != "" {
		return cfg, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return core.ServiceConfig{}, fmt.Errorf("home directory: %w", err)
	}
	if cfg.ConfigDir == "" {
		cfg.ConfigDir = filepath.Join(homeDir, ".config", "modlink")
	}
	if cfg.DataDir == "" {
		cfg.DataDir = filepath.Join(homeDir, ".local", "share", "modlink")
	}
	return cfg, nil
}

// requireGame ensures a game is specified, checking config for default if not provided
func requireGame(cmd *cobra.Command) error {
	if gameID != "" {
		return nil
	}

	svcCfg, err := getServiceConfig()
	if err != nil {
		return err
	}
	cfg, err := config.Load(svcCfg.ConfigDir)
	if err == nil && cfg.DefaultGame != "" {
		gameID = cfg.DefaultGame
		if verbose {
			fmt.Fprintf(cmd.ErrOrStderr(), "Using default game: %s\n", gameID)
		}
		return nil
	}

	return fmt.Errorf("no game specified; use --game or -g flag, or set a default with 'modlink game set-default <game-id>'")
}

// printWarnings writes non-fatal problems (hook failures, bookkeeping errors) to stderr
func printWarnings(cmd *cobra.Command, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s %s\n", colorYellow("Warning:"), w)
	}
}
