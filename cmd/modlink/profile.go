package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage mod profiles",
	Long: `Manage mod profiles for a game.

A profile is a directory of mod files. Linking copies the active profile's
files into the game's install directory.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all profiles",
	Long: `List all profiles for the specified game.

Examples:
  modlink profile list --game risk-of-rain-2`,
	Args: cobra.NoArgs,
	RunE: runProfileList,
}

var profileCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new profile",
	Long: `Create a new empty profile for the specified game.

The first profile created for a game becomes its active profile.

Examples:
  modlink profile create survival --game valheim`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileCreate,
}

var profileDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a profile",
	Long: `Delete a profile directory and everything in it.

Files already linked into the game are not removed; use 'modlink unlink'.

Examples:
  modlink profile delete old-profile --game valheim`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileDelete,
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Set the active profile",
	Long: `Set the profile that 'modlink link' mirrors into the game.

Examples:
  modlink profile use survival --game valheim`,
	Args: cobra.ExactArgs(1),
	RunE: runProfileUse,
}

var profileShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a profile's files",
	Args:  cobra.ExactArgs(1),
	RunE:  runProfileShow,
}

var profileAddCmd = &cobra.Command{
	Use:   "add <name> <file>...",
	Short: "Copy files into a profile",
	Long: `Copy one or more files into a profile. Existing files with the same
name are replaced.

Examples:
  modlink profile add survival ~/Downloads/BepInEx.dll --game valheim`,
	Args: cobra.MinimumNArgs(2),
	RunE: runProfileAdd,
}

var profileRemoveCmd = &cobra.Command{
	Use:   "remove <name> <file>",
	Short: "Remove a file from a profile",
	Args:  cobra.ExactArgs(2),
	RunE:  runProfileRemove,
}

func init() {
	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileCreateCmd)
	profileCmd.AddCommand(profileDeleteCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileAddCmd)
	profileCmd.AddCommand(profileRemoveCmd)

	rootCmd.AddCommand(profileCmd)
}

type profileJSON struct {
	Name   string   `json:"name"`
	Active bool     `json:"active"`
	Path   string   `json:"path"`
	Files  []string `json:"files"`
}

func runProfileList(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if _, err := service.GetGame(gameID); err != nil {
		return err
	}
	profiles, err := service.Profiles().List(gameID)
	if err != nil {
		return fmt.Errorf("listing profiles: %w", err)
	}
	active := service.ActiveProfile(gameID)

	out := cmd.OutOrStdout()
	if jsonOutput {
		items := make([]profileJSON, 0, len(profiles))
		for _, p := range profiles {
			files := p.Files
			if files == nil {
				files = []string{}
			}
			items = append(items, profileJSON{Name: p.Name, Active: p.Name == active, Path: p.Path, Files: files})
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}

	if len(profiles) == 0 {
		fmt.Fprintln(out, "No profiles found.")
		fmt.Fprintln(out, "\nUse 'modlink profile create <name>' to create one.")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tFILES\tACTIVE")
	fmt.Fprintln(w, "----\t-----\t------")
	for _, p := range profiles {
		mark := ""
		if p.Name == active {
			mark = "*"
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", p.Name, len(p.Files), mark)
	}
	w.Flush()

	return nil
}

func runProfileCreate(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.CreateProfile(gameID, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created profile %q at %s\n", profile.Name, profile.Path)
	if service.ActiveProfile(gameID) == profile.Name {
		fmt.Fprintln(cmd.OutOrStdout(), "It is now the active profile.")
	}
	return nil
}

func runProfileDelete(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.DeleteProfile(gameID, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted profile %q\n", args[0])
	return nil
}

func runProfileUse(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.SetActiveProfile(gameID, args[0]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Active profile for %s: %s\n", gameID, args[0])
	fmt.Fprintln(cmd.OutOrStdout(), "Run 'modlink link' to apply it.")
	return nil
}

func runProfileShow(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	profile, err := service.Profiles().Get(gameID, args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		files := profile.Files
		if files == nil {
			files = []string{}
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(profileJSON{
			Name:   profile.Name,
			Active: service.ActiveProfile(gameID) == profile.Name,
			Path:   profile.Path,
			Files:  files,
		})
	}

	fmt.Fprintf(out, "Profile: %s\n", profile.Name)
	fmt.Fprintf(out, "Path:    %s\n", profile.Path)
	if !profile.CreatedAt.IsZero() {
		fmt.Fprintf(out, "Created: %s\n", profile.CreatedAt.Local().Format("2006-01-02 15:04"))
	}
	if len(profile.Files) == 0 {
		fmt.Fprintln(out, "\nNo files.")
		return nil
	}
	fmt.Fprintf(out, "\nFiles (%d):\n", len(profile.Files))
	for _, f := range profile.Files {
		fmt.Fprintf(out, "  %s\n", f)
	}
	return nil
}

func runProfileAdd(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	added, err := service.Profiles().AddFiles(gameID, args[0], args[1:])
	if err != nil {
		return err
	}

	for _, f := range added {
		fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s\n", colorGreen("✓"), f)
	}
	return nil
}

func runProfileRemove(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if err := service.Profiles().RemoveFile(gameID, args[0], args[1]); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from %q\n", args[1], args[0])
	return nil
}
