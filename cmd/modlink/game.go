package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/storage/config"

	"github.com/spf13/cobra"
)

var (
	gameAddName           string
	gameAddPath           string
	gameAddSteamAppID     string
	gameAddExe            string
	gameAddDataFolder     string
	gameAddManagedSubpath string

	gameDetectAll bool
)

var gameCmd = &cobra.Command{
	Use:   "game",
	Short: "Game management commands",
	Long:  `Commands for managing game configurations.`,
}

var gameListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured games",
	Args:  cobra.NoArgs,
	RunE:  runGameList,
}

var gameAddCmd = &cobra.Command{
	Use:   "add <game-id>",
	Short: "Add or update a game",
	Long: `Add a game to games.yaml, or replace an existing entry with the same ID.

Without --path the install directory is looked up in the Steam libraries
using --steam-app-id. The executable must sit directly in the install
directory; reset deletes --managed-subpath, or <data-folder>/Managed.

Example:
  modlink game add risk-of-rain-2 --name "Risk of Rain 2" \
    --path "~/.steam/steam/steamapps/common/Risk of Rain 2" \
    --exe "Risk of Rain 2.exe" --data-folder "Risk of Rain 2_Data"`,
	Args: cobra.ExactArgs(1),
	RunE: runGameAdd,
}

var gameRemoveCmd = &cobra.Command{
	Use:   "remove <game-id>",
	Short: "Remove a game",
	Long: `Remove a game from games.yaml. Its profiles and linked files are left alone.

Example:
  modlink game remove valheim`,
	Args: cobra.ExactArgs(1),
	RunE: runGameRemove,
}

var gameDetectCmd = &cobra.Command{
	Use:   "detect",
	Short: "Detect Steam games and add them to config",
	Long: `Scan Steam libraries for known moddable games and optionally add them to games.yaml.

Prompts for which games to add (e.g. 1,2 or all or none).`,
	Args: cobra.NoArgs,
	RunE: runGameDetect,
}

var gameImportCmd = &cobra.Command{
	Use:   "import <path>",
	Short: "Import games from a games.yaml file",
	Long: `Add every game defined in a games.yaml-formatted file.

Games already configured with the same ID are replaced.

Example:
  modlink game import ~/backup/modlink/games.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runGameImport,
}

var gameSetDefaultCmd = &cobra.Command{
	Use:   "set-default <game-id>",
	Short: "Set the default game",
	Long: `Set the default game so you don't have to specify --game for every command.

Example:
  modlink game set-default risk-of-rain-2`,
	Args: cobra.ExactArgs(1),
	RunE: runGameSetDefault,
}

var gameClearDefaultCmd = &cobra.Command{
	Use:   "clear-default",
	Short: "Clear the default game setting",
	Long:  `Remove the default game setting, requiring --game flag for all commands.`,
	Args:  cobra.NoArgs,
	RunE:  runGameClearDefault,
}

func init() {
	gameAddCmd.Flags().StringVar(&gameAddName, "name", "", "display name")
	gameAddCmd.Flags().StringVar(&gameAddPath, "path", "", "install directory (default: look up in Steam)")
	gameAddCmd.Flags().StringVar(&gameAddSteamAppID, "steam-app-id", "", "Steam App ID")
	gameAddCmd.Flags().StringVar(&gameAddExe, "exe", "", "game executable in the install directory")
	gameAddCmd.Flags().StringVar(&gameAddDataFolder, "data-folder", "", "Unity data folder, e.g. \"Valheim_Data\"")
	gameAddCmd.Flags().StringVar(&gameAddManagedSubpath, "managed-subpath", "", "directory reset deletes, relative to the install")

	gameDetectCmd.Flags().BoolVarP(&gameDetectAll, "yes", "y", false, "add every detected game without prompting")

	gameCmd.AddCommand(gameListCmd)
	gameCmd.AddCommand(gameAddCmd)
	gameCmd.AddCommand(gameRemoveCmd)
	gameCmd.AddCommand(gameDetectCmd)
	gameCmd.AddCommand(gameImportCmd)
	gameCmd.AddCommand(gameSetDefaultCmd)
	gameCmd.AddCommand(gameClearDefaultCmd)
	rootCmd.AddCommand(gameCmd)
}

type gameJSON struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	InstallPath    string `json:"install_path,omitempty"`
	SteamAppID     string `json:"steam_app_id,omitempty"`
	ExeName        string `json:"exe_name,omitempty"`
	DataFolder     string `json:"data_folder,omitempty"`
	ManagedSubpath string `json:"managed_subpath,omitempty"`
	Default        bool   `json:"default"`
}

func runGameList(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	games := service.ListGames()
	defaultGame := service.Config().DefaultGame
	out := cmd.OutOrStdout()

	if jsonOutput {
		items := make([]gameJSON, 0, len(games))
		for _, g := range games {
			items = append(items, gameJSON{
				ID:             g.ID,
				Name:           g.DisplayName(),
				InstallPath:    g.InstallPath,
				SteamAppID:     g.SteamAppID,
				ExeName:        g.ExeName,
				DataFolder:     g.DataFolder,
				ManagedSubpath: g.ManagedSubpath,
				Default:        g.ID == defaultGame,
			})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(games) == 0 {
		fmt.Fprintln(out, "No games configured.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTEAM APP\tDEFAULT")
	fmt.Fprintln(w, "--\t----\t---------\t-------")
	for _, g := range games {
		mark := ""
		if g.ID == defaultGame {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", g.ID, g.DisplayName(), g.SteamAppID, mark)
	}
	w.Flush()
	return nil
}

func runGameAdd(cmd *cobra.Command, args []string) error {
	if gameAddPath == "" && gameAddSteamAppID == "" {
		return fmt.Errorf("either --path or --steam-app-id is required")
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	game := &domain.Game{
		ID:             args[0],
		Name:           gameAddName,
		InstallPath:    config.ExpandPath(gameAddPath),
		SteamAppID:     gameAddSteamAppID,
		ExeName:        gameAddExe,
		DataFolder:     gameAddDataFolder,
		ManagedSubpath: gameAddManagedSubpath,
	}
	if existing, err := service.GetGame(game.ID); err == nil {
		game.Hooks = existing.Hooks
	}
	if err := service.AddGame(game); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Added: %s (%s)\n", game.DisplayName(), game.ID)
	return nil
}

func runGameRemove(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if _, err := service.GetGame(args[0]); err != nil {
		return err
	}
	if err := service.RemoveGame(args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed game %s\n", args[0])
	return nil
}

func runGameDetect(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Scanning Steam libraries...")
	games, err := service.DetectGames()
	if err != nil {
		return fmt.Errorf("detecting games: %w", err)
	}
	if len(games) == 0 {
		fmt.Fprintln(out, "No moddable Steam games found.")
		return nil
	}
	fmt.Fprintf(out, "Found %d moddable game(s):\n", len(games))
	for i, g := range games {
		fmt.Fprintf(out, "  %d. %s (%s)\n", i+1, g.Name, g.Slug)
		fmt.Fprintf(out, "      Path: %s\n", g.InstallPath)
	}

	var indices []int
	if gameDetectAll {
		for i := 1; i <= len(games); i++ {
			indices = append(indices, i)
		}
	} else {
		fmt.Fprint(out, "Add games to config? [1,2/all/none]: ")
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		indices, err = parseSelection(line, len(games))
		if err != nil {
			return err
		}
	}
	if len(indices) == 0 {
		fmt.Fprintln(out, "No games added.")
		return nil
	}

	for _, n := range indices {
		game := games[n-1].ToGame()
		if existing, err := service.GetGame(game.ID); err == nil {
			game.Hooks = existing.Hooks
			game.ManagedSubpath = existing.ManagedSubpath
		}
		if err := service.AddGame(game); err != nil {
			return fmt.Errorf("saving game %s: %w", game.ID, err)
		}
		fmt.Fprintf(out, "Added: %s (%s)\n", game.Name, game.ID)
	}
	return nil
}

// parseSelection reads a prompt answer such as "1,3", "all" or "none"
// into 1-based indices.
func parseSelection(line string, count int) ([]int, error) {
	line = strings.TrimSpace(strings.ToLower(line))
	if line == "" || line == "n" || line == "none" {
		return nil, nil
	}
	var indices []int
	if line == "all" || line == "a" {
		for i := 1; i <= count; i++ {
			indices = append(indices, i)
		}
		return indices, nil
	}
	seen := make(map[int]bool)
	for _, part := range strings.Split(line, ",") {
		part = strings.TrimSpace(part)
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 || n > count {
			return nil, fmt.Errorf("invalid selection: %q (use numbers 1-%d, all, or none)", part, count)
		}
		if !seen[n] {
			seen[n] = true
			indices = append(indices, n)
		}
	}
	return indices, nil
}

func runGameImport(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	ids, err := service.ImportGames(args[0])
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No games found to import.")
		return nil
	}
	for _, id := range ids {
		fmt.Fprintf(cmd.OutOrStdout(), "Imported: %s\n", id)
	}
	return nil
}

func runGameSetDefault(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.SetDefaultGame(args[0]); err != nil {
		return err
	}

	game, _ := service.GetGame(args[0])
	fmt.Fprintf(cmd.OutOrStdout(), "Default game set to: %s (%s)\n", game.DisplayName(), args[0])
	return nil
}

func runGameClearDefault(cmd *cobra.Command, args []string) error {
	svcCfg, err := getServiceConfig()
	if err != nil {
		return err
	}
	cfg, err := config.Load(svcCfg.ConfigDir)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if cfg.DefaultGame == "" {
		fmt.Fprintln(cmd.OutOrStdout(), "No default game was set")
		return nil
	}

	oldDefault := cfg.DefaultGame
	cfg.DefaultGame = ""
	if err := cfg.Save(svcCfg.ConfigDir); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Cleared default game (was: %s)\n", oldDefault)
	return nil
}
