package views_test

import (
	"testing"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/tui"
	"github.com/DonovanMods/modlink/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var vimKeys = tui.NewKeyMap("vim")

func testGames() []*domain.Game {
	return []*domain.Game{
		{ID: "risk-of-rain-2", Name: "Risk of Rain 2", SteamAppID: "632360", DataFolder: "Risk of Rain 2_Data"},
		{ID: "valheim", Name: "Valheim"},
	}
}

func TestGameSelect_InitialState(t *testing.T) {
	model := views.NewGameSelect(vimKeys, testGames())

	assert.Equal(t, 0, model.Selected())
	view := model.View()
	assert.Contains(t, view, "Risk of Rain 2")
	assert.Contains(t, view, "632360")
}

func TestGameSelect_NavigateDown(t *testing.T) {
	model := views.NewGameSelect(vimKeys, testGames())

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	updated := newModel.(views.GameSelect)

	assert.Equal(t, 1, updated.Selected())
}

func TestGameSelect_NavigateUpWraps(t *testing.T) {
	model := views.NewGameSelect(vimKeys, testGames())

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	updated := newModel.(views.GameSelect)

	assert.Equal(t, 1, updated.Selected())
}

func TestGameSelect_EnterSelectsGame(t *testing.T) {
	model := views.NewGameSelect(vimKeys, testGames())

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	selectedMsg, ok := cmd().(views.GameSelectedMsg)
	require.True(t, ok)
	assert.Equal(t, "valheim", selectedMsg.Game.ID)
}

func TestGameSelect_EmptyList(t *testing.T) {
	model := views.NewGameSelect(vimKeys, nil)

	assert.Contains(t, model.View(), "No games configured")
	assert.Contains(t, model.View(), "modlink game detect")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
}
