package main

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/DonovanMods/modlink/internal/core"

	"github.com/spf13/cobra"
)

var (
	resetForce bool
	resetYes   bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the game install to vanilla",
	Long: `Delete the game's managed assembly directory and ask Steam to verify the
game files, which restores the originals.

Linked files are left in place; run 'modlink unlink' first for a clean install.

Examples:
  modlink reset --game risk-of-rain-2
  modlink reset --game valheim --yes`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVarP(&resetForce, "force", "f", false, "reset even if the game appears to be running")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip confirmation prompt")

	rootCmd.AddCommand(resetCmd)
}

func runReset(cmd *cobra.Command, args []string) error {
	if err := requireGame(cmd); err != nil {
		return err
	}

	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	game, err := service.GetGame(gameID)
	if err != nil {
		return err
	}

	if !resetYes {
		fmt.Fprintf(cmd.OutOrStdout(), "Reset %s? This deletes %s and triggers a Steam file check. [y/N]: ",
			game.DisplayName(), game.ManagedPath())
		line, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
		response := strings.TrimSpace(strings.ToLower(line))
		if response != "y" && response != "yes" {
			fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
			return ErrCancelled
		}
	}

	result, err := service.Reset(context.Background(), gameID, core.Options{Force: resetForce})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s Reset %s; Steam is verifying the game files\n",
		colorGreen("✓"), result.InstallDir)
	printWarnings(cmd, result.Warnings)
	return nil
}
