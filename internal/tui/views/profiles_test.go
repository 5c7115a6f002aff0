package views_test

import (
	"testing"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProfiles() []*domain.Profile {
	return []*domain.Profile{
		{Name: "default", GameID: "risk-of-rain-2", Files: []string{"BepInEx.dll"}},
		{Name: "survivors", GameID: "risk-of-rain-2", Files: []string{"a.dll", "b.dll"}},
	}
}

func newProfilesView(active string) views.Profiles {
	game := &domain.Game{ID: "risk-of-rain-2", Name: "Risk of Rain 2"}
	return views.NewProfiles(vimKeys, game, testProfiles(), active)
}

func TestProfiles_InitialState(t *testing.T) {
	model := newProfilesView("survivors")

	assert.Equal(t, 1, model.Selected(), "starts on the active profile")
	assert.Equal(t, 2, model.ProfileCount())

	view := model.View()
	assert.Contains(t, view, "[active]")
	assert.Contains(t, view, "Files: 2")
	assert.Contains(t, view, "a.dll")
}

func TestProfiles_Navigate(t *testing.T) {
	model := newProfilesView("default")

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, newModel.(views.Profiles).Selected())

	newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'g'}})
	assert.Equal(t, 0, newModel.(views.Profiles).Selected())
}

func TestProfiles_EnterActivates(t *testing.T) {
	model := newProfilesView("default")

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)

	msg, ok := cmd().(views.ActivateProfileMsg)
	require.True(t, ok)
	assert.Equal(t, "survivors", msg.Profile.Name)
}

func TestProfiles_CreateNew(t *testing.T) {
	model := newProfilesView("default")

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	updated := newModel.(views.Profiles)
	require.True(t, updated.IsCreating())

	for _, r := range "modded" {
		newModel, _ = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	newModel, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.False(t, newModel.(views.Profiles).IsCreating())

	msg, ok := cmd().(views.CreateProfileMsg)
	require.True(t, ok)
	assert.Equal(t, "modded", msg.Name)
}

func TestProfiles_CreateCancel(t *testing.T) {
	model := newProfilesView("default")

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'n'}})
	newModel, cmd := newModel.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, newModel.(views.Profiles).IsCreating())
	assert.Nil(t, cmd)
}

func TestProfiles_Delete(t *testing.T) {
	model := newProfilesView("default")

	// The active profile is protected
	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	assert.Nil(t, cmd)

	newModel, _ := model.Update(tea.KeyMsg{Type: tea.KeyDown})
	_, cmd = newModel.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'d'}})
	require.NotNil(t, cmd)

	msg, ok := cmd().(views.DeleteProfileMsg)
	require.True(t, ok)
	assert.Equal(t, "survivors", msg.Profile.Name)
}

func TestProfiles_Reset(t *testing.T) {
	model := newProfilesView("default")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	require.NotNil(t, cmd)
	_, ok := cmd().(views.ResetGameMsg)
	assert.True(t, ok)
}

func TestProfiles_SelectName(t *testing.T) {
	model := newProfilesView("").SelectName("survivors")
	assert.Equal(t, 1, model.Selected())

	model = model.SelectName("missing")
	assert.Equal(t, 1, model.Selected())
}

func TestProfiles_EmptyList(t *testing.T) {
	game := &domain.Game{ID: "risk-of-rain-2", Name: "Risk of Rain 2"}
	model := views.NewProfiles(vimKeys, game, nil, "")

	assert.Contains(t, model.View(), "No profiles")
	assert.Nil(t, model.SelectedProfile())
}
