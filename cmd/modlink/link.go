package main

import (
	"context"
	"fmt"

	"github.com/DonovanMods/modlink/internal/core"

	"github.com/spf13/cobra"
)

var (
	linkProfile string
	linkForce   bool
)

var linkCmd = &cobra.Command{
	Use:   "link",
	Short: "Mirror the active profile into the game directory",
	Long: `Copy every file in the active profile into the game's install directory.

Files placed by the previous link are removed first, so the install only ever
holds the files of one profile. The profile's mods.yml is never copied.

Examples:
  modlink link --game risk-of-rain-2
  modlink link --game valheim --profile pvp`,
	Args: cobra.NoArgs,
	RunE: runLink,
}

var unlinkCmd = &cobra.Command{
	Use:   "unlink",
	Short: "Remove linked files from the game directory",
	Long: `Remove every file the last link placed into the game's install directory.

Profiles are not touched.

Examples:
  modlink unlink --game risk-of-rain-2`,
	Args: cobra.NoArgs,
	RunE: runUnlink,
}

func init() {
	linkCmd.Flags().StringVarP(&linkProfile, "profile", "p", "", "make this profile active before linking")
	linkCmd.Flags().BoolVarP(&linkForce, "force", "f", false, "link even if the game appears to be running")

	rootCmd.AddCommand(linkCmd)
	rootCmd.AddCommand(unlinkCmd)
}

func runLink(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if linkProfile != "" {
		if err := service.SetActiveProfile(gameID, linkProfile); err != nil {
			return err
		}
	}

	result, err := service.Link(context.Background(), gameID, core.Options{Force: linkForce})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if verbose {
		for _, f := range result.Files {
			fmt.Fprintf(out, "  %s\n", f)
		}
	}
	fmt.Fprintf(out, "%s Linked %d file(s) from %q into %s\n",
		colorGreen("✓"), len(result.Files), result.Profile, result.InstallDir)
	printWarnings(cmd, result.Warnings)
	return nil
}

func runUnlink(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	count, err := service.Unlink(gameID)
	if err != nil {
		return err
	}

	if count == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "Nothing is linked.")
		return nil
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s Removed %d linked file(s)\n", colorGreen("✓"), count)
	return nil
}
