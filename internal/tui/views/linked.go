package views

import (
	"fmt"

	"github.com/DonovanMods/modlink/internal/domain"

	tea "github.com/charmbracelet/bubbletea"
)

// UnlinkMsg asks to remove every linked file from the install directory
type UnlinkMsg struct{}

// Linked lists the files the last link put into the install directory
type Linked struct {
	keys     Keys
	game     *domain.Game
	files    []string
	lastRun  *domain.LinkRun
	selected int
	offset   int
	width    int
	height   int
}

// NewLinked creates a new linked-files view
func NewLinked(keys Keys, game *domain.Game, files []string, lastRun *domain.LinkRun) Linked {
	return Linked{
		keys:    keys,
		game:    game,
		files:   files,
		lastRun: lastRun,
		width:   80,
		height:  24,
	}
}

// Selected returns the currently selected index
func (m Linked) Selected() int {
	return m.selected
}

// FileCount returns the number of linked files
func (m Linked) FileCount() int {
	return len(m.files)
}

// Init implements tea.Model
func (m Linked) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m Linked) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

func (m Linked) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, ok := moveCursor(m.keys, msg, m.selected, len(m.files)); ok {
		m.selected = next
		m.scrollToSelected()
		return m, nil
	}

	if m.keys.IsUnlink(msg) && len(m.files) > 0 {
		return m, func() tea.Msg {
			return UnlinkMsg{}
		}
	}

	return m, nil
}

// pageSize is how many file rows fit below the header and above the app chrome.
func (m Linked) pageSize() int {
	if n := m.height - 12; n > 3 {
		return n
	}
	return 3
}

func (m *Linked) scrollToSelected() {
	page := m.pageSize()
	if m.selected < m.offset {
		m.offset = m.selected
	}
	if m.selected >= m.offset+page {
		m.offset = m.selected - page + 1
	}
}

// View implements tea.Model
func (m Linked) View() string {
	output := titleStyle.Render("Linked Files") + "\n"

	gameName := "No game selected"
	if m.game != nil {
		gameName = m.game.DisplayName()
	}
	output += infoStyle.Render(fmt.Sprintf("Game: %s", gameName)) + "\n"
	if m.lastRun != nil {
		output += infoStyle.Render(fmt.Sprintf("Last link: %s from %q at %s",
			m.lastRun.ID[:min(8, len(m.lastRun.ID))], m.lastRun.ProfileName,
			m.lastRun.LinkedAt.Local().Format("2006-01-02 15:04"))) + "\n"
	}
	output += "\n"

	if len(m.files) == 0 {
		output += itemStyle.Render("Nothing is linked into the install directory.") + "\n\n"
		output += infoStyle.Render("Use a profile from [2] to link it.") + "\n"
		return output
	}

	output += infoStyle.Render(fmt.Sprintf("%d files:", len(m.files))) + "\n"
	end := min(m.offset+m.pageSize(), len(m.files))
	for i := m.offset; i < end; i++ {
		cursor := "  "
		style := itemStyle
		if i == m.selected {
			cursor = "▸ "
			style = selectedStyle
		}
		output += style.Render(cursor+m.files[i]) + "\n"
	}

	output += helpStyle.Render("u: remove linked files")
	return output
}
