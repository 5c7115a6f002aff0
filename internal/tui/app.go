package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/DonovanMods/modlink/internal/core"
	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ViewType represents different screens in the TUI
type ViewType int

const (
	ViewGameSelect ViewType = iota
	ViewProfiles
	ViewLinked
)

// NavigateMsg is sent to change views
type NavigateMsg struct {
	View ViewType
}

// ErrorMsg is sent when an error occurs
type ErrorMsg struct {
	Err error
}

// LinkDoneMsg reports the end of a link started from the TUI
type LinkDoneMsg struct {
	Result *core.LinkResult
	Err    error
}

// ResetDoneMsg reports the end of a reset started from the TUI
type ResetDoneMsg struct {
	Result *core.ResetResult
	Err    error
}

// UnlinkDoneMsg reports the end of an unlink started from the TUI
type UnlinkDoneMsg struct {
	Removed int
	Err     error
}

// App is the main TUI application model
type App struct {
	service     *core.Service
	keys        *KeyMap
	currentView ViewType
	game        *domain.Game
	busy        string // Name of the operation in flight, "" when idle
	status      string
	showHelp    bool
	width       int
	height      int
	err         error

	gameSelect views.GameSelect
	profiles   views.Profiles
	linked     views.Linked
}

// NewApp creates a new TUI application. If exactly one game is configured,
// or gameID names one, it opens on that game's profiles.
func NewApp(service *core.Service, gameID string) App {
	mode := ""
	var games []*domain.Game
	if service != nil {
		mode = service.Config().Keybindings
		games = service.ListGames()
	}
	keys := NewKeyMap(mode)

	a := App{
		service:     service,
		keys:        keys,
		currentView: ViewGameSelect,
		width:       80,
		height:      24,
		gameSelect:  views.NewGameSelect(keys, games),
		profiles:    views.NewProfiles(keys, nil, nil, ""),
		linked:      views.NewLinked(keys, nil, nil, nil),
	}

	if service != nil {
		if gameID == "" && len(games) == 1 {
			gameID = games[0].ID
		}
		if game, err := service.GetGame(gameID); err == nil {
			a.selectGame(game)
		}
	}
	return a
}

// CurrentView returns the current view type
func (a App) CurrentView() ViewType {
	return a.currentView
}

// Busy returns the operation in flight, or "" when idle
func (a App) Busy() string {
	return a.busy
}

// Status returns the last status line
func (a App) Status() string {
	return a.status
}

// Err returns the last error shown
func (a App) Err() error {
	return a.err
}

// Init implements tea.Model
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a.broadcast(msg)

	case NavigateMsg:
		a.currentView = msg.View
		return a, nil

	case ErrorMsg:
		a.err = msg.Err
		return a, nil

	case views.GameSelectedMsg:
		a.selectGame(msg.Game)
		return a, nil

	case views.CreateProfileMsg:
		return a.createProfile(msg.Name)

	case views.DeleteProfileMsg:
		return a.deleteProfile(msg.Profile)

	case views.ActivateProfileMsg:
		return a.activateProfile(msg.Profile)

	case views.ResetGameMsg:
		return a.startReset()

	case views.UnlinkMsg:
		return a.startUnlink()

	case LinkDoneMsg:
		a.busy = ""
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = fmt.Sprintf("Linked %d files from %q", len(msg.Result.Files), msg.Result.Profile)
			a.status += warningsSuffix(msg.Result.Warnings)
		}
		a.reload()
		return a, nil

	case ResetDoneMsg:
		a.busy = ""
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = "Reset requested; Steam is validating the game files" + warningsSuffix(msg.Result.Warnings)
		}
		return a, nil

	case UnlinkDoneMsg:
		a.busy = ""
		if msg.Err != nil {
			a.err = msg.Err
			a.status = ""
		} else {
			a.err = nil
			a.status = fmt.Sprintf("Removed %d linked files", msg.Removed)
		}
		a.reload()
		return a, nil
	}

	return a.updateCurrentView(msg)
}

func warningsSuffix(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	return " (warning: " + strings.Join(warnings, "; ") + ")"
}

func (a App) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Typing a profile name must not trigger global keys
	if a.currentView == ViewProfiles && a.profiles.IsCreating() {
		return a.updateCurrentView(msg)
	}

	if a.keys.IsQuit(msg) {
		return a, tea.Quit
	}
	if a.keys.IsHelp(msg) {
		a.showHelp = !a.showHelp
		return a, nil
	}

	switch msg.String() {
	case "1":
		a.currentView = ViewGameSelect
		return a, nil
	case "2":
		a.currentView = ViewProfiles
		return a, nil
	case "3":
		a.currentView = ViewLinked
		return a, nil
	}

	return a.updateCurrentView(msg)
}

func (a App) updateCurrentView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		model tea.Model
		cmd   tea.Cmd
	)

	switch a.currentView {
	case ViewGameSelect:
		model, cmd = a.gameSelect.Update(msg)
		a.gameSelect = model.(views.GameSelect)
	case ViewProfiles:
		model, cmd = a.profiles.Update(msg)
		a.profiles = model.(views.Profiles)
	case ViewLinked:
		model, cmd = a.linked.Update(msg)
		a.linked = model.(views.Linked)
	}

	return a, cmd
}

func (a App) broadcast(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, _ := a.gameSelect.Update(msg)
	a.gameSelect = model.(views.GameSelect)
	model, _ = a.profiles.Update(msg)
	a.profiles = model.(views.Profiles)
	model, _ = a.linked.Update(msg)
	a.linked = model.(views.Linked)
	return a, nil
}

func (a *App) selectGame(game *domain.Game) {
	a.game = game
	a.err = nil
	a.status = ""
	a.currentView = ViewProfiles
	a.reload()
}

// reload rebuilds the profile and linked views from the service.
func (a *App) reload() {
	if a.service == nil || a.game == nil {
		return
	}

	profiles, err := a.service.Profiles().List(a.game.ID)
	if err != nil {
		a.err = err
	}
	var keep string
	if p := a.profiles.SelectedProfile(); p != nil {
		keep = p.Name
	}
	a.profiles = views.NewProfiles(a.keys, a.game, profiles, a.service.ActiveProfile(a.game.ID)).SelectName(keep)

	files, err := a.service.LinkedFiles(a.game.ID)
	if err != nil {
		a.err = err
	}
	lastRun, err := a.service.LastLinkRun(a.game.ID)
	if err != nil {
		a.err = err
	}
	a.linked = views.NewLinked(a.keys, a.game, files, lastRun)

	if a.width > 0 {
		size := tea.WindowSizeMsg{Width: a.width, Height: a.height}
		model, _ := a.profiles.Update(size)
		a.profiles = model.(views.Profiles)
		model, _ = a.linked.Update(size)
		a.linked = model.(views.Linked)
	}
}

// refuseIfBusy reports whether another operation is still running.
func (a *App) refuseIfBusy() bool {
	if a.busy == "" {
		return false
	}
	a.status = fmt.Sprintf("Wait for %s to finish", a.busy)
	return true
}

func (a App) createProfile(name string) (tea.Model, tea.Cmd) {
	if a.service == nil || a.game == nil || a.refuseIfBusy() {
		return a, nil
	}
	if _, err := a.service.CreateProfile(a.game.ID, name); err != nil {
		a.err = err
		return a, nil
	}
	a.err = nil
	a.status = fmt.Sprintf("Created profile %q", name)
	a.reload()
	return a, nil
}

func (a App) deleteProfile(profile *domain.Profile) (tea.Model, tea.Cmd) {
	if a.service == nil || a.game == nil || a.refuseIfBusy() {
		return a, nil
	}
	if err := a.service.DeleteProfile(a.game.ID, profile.Name); err != nil {
		a.err = err
		return a, nil
	}
	a.err = nil
	a.status = fmt.Sprintf("Deleted profile %q", profile.Name)
	a.reload()
	return a, nil
}

func (a App) activateProfile(profile *domain.Profile) (tea.Model, tea.Cmd) {
	if a.service == nil || a.game == nil || a.refuseIfBusy() {
		return a, nil
	}
	if err := a.service.SetActiveProfile(a.game.ID, profile.Name); err != nil {
		a.err = err
		return a, nil
	}

	a.busy = "link"
	a.err = nil
	a.status = fmt.Sprintf("Linking %q...", profile.Name)
	a.reload()

	svc, gameID := a.service, a.game.ID
	return a, func() tea.Msg {
		result, err := svc.Link(context.Background(), gameID, core.Options{})
		return LinkDoneMsg{Result: result, Err: err}
	}
}

func (a App) startReset() (tea.Model, tea.Cmd) {
	if a.service == nil || a.game == nil || a.refuseIfBusy() {
		return a, nil
	}

	a.busy = "reset"
	a.err = nil
	a.status = fmt.Sprintf("Resetting %s...", a.game.DisplayName())

	svc, gameID := a.service, a.game.ID
	return a, func() tea.Msg {
		result, err := svc.Reset(context.Background(), gameID, core.Options{})
		return ResetDoneMsg{Result: result, Err: err}
	}
}

func (a App) startUnlink() (tea.Model, tea.Cmd) {
	if a.service == nil || a.game == nil || a.refuseIfBusy() {
		return a, nil
	}

	a.busy = "unlink"
	a.err = nil
	a.status = "Removing linked files..."

	svc, gameID := a.service, a.game.ID
	return a, func() tea.Msg {
		n, err := svc.Unlink(gameID)
		return UnlinkDoneMsg{Removed: n, Err: err}
	}
}

// View implements tea.Model
func (a App) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("205")).
		MarginBottom(1)

	tabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	activeTabStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("205")).
		Bold(true)

	header := titleStyle.Render("modlink")

	tabs := []string{"[1]Games", "[2]Profiles", "[3]Linked"}
	tabBar := ""
	for i, tab := range tabs {
		if ViewType(i) == a.currentView {
			tabBar += activeTabStyle.Render(tab) + "  "
		} else {
			tabBar += tabStyle.Render(tab) + "  "
		}
	}

	var content string
	switch {
	case a.showHelp:
		content = a.keys.FullHelp()
	case a.currentView == ViewGameSelect:
		content = a.gameSelect.View()
	case a.currentView == ViewProfiles:
		content = a.profiles.View()
	case a.currentView == ViewLinked:
		content = a.linked.View()
	}

	statusLine := ""
	if a.err != nil {
		statusLine = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(errorText(a.err))
	} else if a.status != "" {
		statusLine = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render(a.status)
	}

	footerStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241")).
		MarginTop(1)
	footer := footerStyle.Render(a.keys.NavigationHelp() + "  q: quit  ?: help")

	return fmt.Sprintf("%s\n%s\n\n%s\n\n%s\n%s", header, tabBar, content, statusLine, footer)
}

// errorText renders link and reset failures with their hint.
func errorText(err error) string {
	var de *domain.Error
	if errors.As(err, &de) {
		text := "Error: " + de.Title
		if de.Detail != "" {
			text += "\n  " + de.Detail
		}
		if de.Hint != "" {
			text += "\n  " + de.Hint
		}
		return text
	}
	return fmt.Sprintf("Error: %v", err)
}

// Run starts the TUI application
func Run(service *core.Service, gameID string) error {
	p := tea.NewProgram(NewApp(service, gameID), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
