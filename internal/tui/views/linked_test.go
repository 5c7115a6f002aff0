package views_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/DonovanMods/modlink/internal/domain"
	"github.com/DonovanMods/modlink/internal/tui/views"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinked_Empty(t *testing.T) {
	model := views.NewLinked(vimKeys, &domain.Game{ID: "valheim", Name: "Valheim"}, nil, nil)

	assert.Equal(t, 0, model.FileCount())
	assert.Contains(t, model.View(), "Nothing is linked")

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	assert.Nil(t, cmd)
}

func TestLinked_ListAndUnlink(t *testing.T) {
	run := &domain.LinkRun{ID: "0123456789abcdef", ProfileName: "main", LinkedAt: time.Now()}
	files := []string{"/games/valheim/a.dll", "/games/valheim/b.dll"}
	model := views.NewLinked(vimKeys, &domain.Game{ID: "valheim", Name: "Valheim"}, files, run)

	view := model.View()
	assert.Contains(t, view, "2 files")
	assert.Contains(t, view, "/games/valheim/b.dll")
	assert.Contains(t, view, "01234567")
	assert.Contains(t, view, `"main"`)

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'u'}})
	require.NotNil(t, cmd)
	_, ok := cmd().(views.UnlinkMsg)
	assert.True(t, ok)
}

func TestLinked_ScrollsWithCursor(t *testing.T) {
	var files []string
	for i := range 40 {
		files = append(files, fmt.Sprintf("/games/valheim/file%02d.dll", i))
	}
	var model tea.Model = views.NewLinked(vimKeys, &domain.Game{ID: "valheim"}, files, nil)
	model, _ = model.Update(tea.WindowSizeMsg{Width: 80, Height: 20})

	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'G'}})
	assert.Equal(t, 39, model.(views.Linked).Selected())

	view := model.View()
	assert.Contains(t, view, "file39.dll")
	assert.NotContains(t, view, "file00.dll")
}
