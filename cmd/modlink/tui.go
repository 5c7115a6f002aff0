package main

import (
	"fmt"

	"github.com/DonovanMods/modlink/internal/tui"

	"github.com/spf13/cobra"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive interface",
	Long: `Open the terminal interface for choosing a profile, linking it, and
resetting the game.

Examples:
  modlink tui
  modlink tui --game valheim`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	if gameID == "" {
		gameID = service.Config().DefaultGame
	}
	return tui.Run(service, gameID)
}
