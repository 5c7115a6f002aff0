package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/DonovanMods/modlink/internal/core"
	"github.com/DonovanMods/modlink/internal/domain"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current status",
	Long: `Show configured games with their active profile and linked file count.

With --game, show the resolved install directory, the last link and the
linked files for that game.

Examples:
  modlink status
  modlink status --game risk-of-rain-2 --json`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type gameStatusJSON struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	InstallDir    string     `json:"install_dir,omitempty"`
	InstallError  string     `json:"install_error,omitempty"`
	ActiveProfile string     `json:"active_profile,omitempty"`
	Profiles      []string   `json:"profiles"`
	LinkedFiles   []string   `json:"linked_files"`
	LastLinkID    string     `json:"last_link_id,omitempty"`
	LastLinkedAt  *time.Time `json:"last_linked_at,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	service, err := initService()
	if err != nil {
		return fmt.Errorf("initializing service: %w", err)
	}
	defer service.Close()

	games := service.ListGames()
	if gameID != "" {
		game, err := service.GetGame(gameID)
		if err != nil {
			return err
		}
		games = []*domain.Game{game}
	}

	statuses := make([]gameStatusJSON, 0, len(games))
	for _, game := range games {
		st, err := collectStatus(service, game)
		if err != nil {
			return err
		}
		statuses = append(statuses, st)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(statuses); err != nil {
			return fmt.Errorf("encoding json: %w", err)
		}
		return nil
	}

	if len(statuses) == 0 {
		fmt.Fprintln(out, "No games configured.")
		fmt.Fprintln(out, "\nUse 'modlink game detect' or 'modlink game add' to add a game.")
		return nil
	}

	if gameID != "" {
		printGameStatus(out, statuses[0])
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tACTIVE PROFILE\tPROFILES\tLINKED")
	fmt.Fprintln(w, "----\t--------------\t--------\t------")
	for _, st := range statuses {
		active := st.ActiveProfile
		if active == "" {
			active = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\n", st.ID, active, len(st.Profiles), len(st.LinkedFiles))
	}
	w.Flush()

	fmt.Fprintf(out, "\nTotal: %d game(s) configured\n", len(statuses))
	return nil
}

func collectStatus(service *core.Service, game *domain.Game) (gameStatusJSON, error) {
	st := gameStatusJSON{
		ID:            game.ID,
		Name:          game.DisplayName(),
		ActiveProfile: service.ActiveProfile(game.ID),
		Profiles:      []string{},
	}

	if dir, err := service.InstallDir(game); err != nil {
		st.InstallError = err.Error()
	} else {
		st.InstallDir = dir
	}

	profiles, err := service.Profiles().List(game.ID)
	if err != nil {
		return st, fmt.Errorf("listing profiles: %w", err)
	}
	for _, p := range profiles {
		st.Profiles = append(st.Profiles, p.Name)
	}

	linked, err := service.LinkedFiles(game.ID)
	if err != nil {
		return st, fmt.Errorf("loading linked files: %w", err)
	}
	st.LinkedFiles = linked
	if st.LinkedFiles == nil {
		st.LinkedFiles = []string{}
	}

	run, err := service.LastLinkRun(game.ID)
	if err != nil {
		return st, fmt.Errorf("loading link history: %w", err)
	}
	if run != nil {
		st.LastLinkID = run.ID
		st.LastLinkedAt = &run.LinkedAt
	}
	return st, nil
}

func printGameStatus(out io.Writer, st gameStatusJSON) {
	fmt.Fprintf(out, "Game:     %s (%s)\n", st.Name, st.ID)
	if st.InstallError != "" {
		fmt.Fprintf(out, "Install:  %s\n", colorRed(st.InstallError))
	} else {
		fmt.Fprintf(out, "Install:  %s\n", st.InstallDir)
	}
	active := st.ActiveProfile
	if active == "" {
		active = colorYellow("none")
	}
	fmt.Fprintf(out, "Profile:  %s (%d available)\n", active, len(st.Profiles))
	if st.LastLinkedAt != nil {
		fmt.Fprintf(out, "Linked:   %s (run %s)\n", st.LastLinkedAt.Local().Format("2006-01-02 15:04"), st.LastLinkID)
	}

	if len(st.LinkedFiles) == 0 {
		fmt.Fprintln(out, "\nNothing is linked.")
		return
	}
	fmt.Fprintf(out, "\nLinked files (%d):\n", len(st.LinkedFiles))
	for _, f := range st.LinkedFiles {
		fmt.Fprintf(out, "  %s\n", f)
	}
}
