package views

import (
	"fmt"

	"github.com/DonovanMods/modlink/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// GameSelectedMsg is sent when a game is selected
type GameSelectedMsg struct {
	Game *domain.Game
}

// GameSelect is the game selection view model
type GameSelect struct {
	keys     Keys
	games    []*domain.Game
	selected int
	width    int
	height   int
}

// NewGameSelect creates a new game selection view
func NewGameSelect(keys Keys, games []*domain.Game) GameSelect {
	return GameSelect{
		keys:   keys,
		games:  games,
		width:  80,
		height: 24,
	}
}

// Selected returns the currently selected index
func (g GameSelect) Selected() int {
	return g.selected
}

// SelectedGame returns the currently selected game
func (g GameSelect) SelectedGame() *domain.Game {
	if len(g.games) == 0 || g.selected >= len(g.games) {
		return nil
	}
	return g.games[g.selected]
}

// Init implements tea.Model
func (g GameSelect) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (g GameSelect) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return g.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		g.width = msg.Width
		g.height = msg.Height
		return g, nil
	}

	return g, nil
}

func (g GameSelect) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, ok := moveCursor(g.keys, msg, g.selected, len(g.games)); ok {
		g.selected = next
		return g, nil
	}

	if g.keys.IsConfirm(msg) {
		if game := g.SelectedGame(); game != nil {
			return g, func() tea.Msg {
				return GameSelectedMsg{Game: game}
			}
		}
	}

	return g, nil
}

// View implements tea.Model
func (g GameSelect) View() string {
	if len(g.games) == 0 {
		return infoStyle.Render(`No games configured.

Detect installed Steam games with:
  modlink game detect

Or add one by hand:
  modlink game add risk-of-rain-2 --name "Risk of Rain 2" \
    --path "~/.steam/steam/steamapps/common/Risk of Rain 2" \
    --exe "Risk of Rain 2.exe" --data-folder "Risk of Rain 2_Data"
`)
	}

	output := titleStyle.Render("Select a Game") + "\n\n"

	for i, game := range g.games {
		cursor := "  "
		style := itemStyle
		if i == g.selected {
			cursor = "▸ "
			style = selectedStyle
		}
		output += style.Render(fmt.Sprintf("%s%s", cursor, game.DisplayName())) + "\n"

		if i == g.selected {
			output += detailStyle.Render(fmt.Sprintf("ID: %s", game.ID)) + "\n"
			if game.InstallPath != "" {
				output += detailStyle.Render(fmt.Sprintf("Path: %s", game.InstallPath)) + "\n"
			}
			if game.SteamAppID != "" {
				output += detailStyle.Render(fmt.Sprintf("Steam app: %s", game.SteamAppID)) + "\n"
			}
			if managed := game.ManagedPath(); managed != "" {
				output += detailStyle.Render(fmt.Sprintf("Managed: %s", managed)) + "\n"
			}
			output += "\n"
		}
	}

	output += helpStyle.Render("enter: select")
	return output
}
