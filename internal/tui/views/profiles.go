package views

import (
	"fmt"

	"github.com/DonovanMods/modlink/internal/domain"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ActivateProfileMsg asks to make a profile active and link it
type ActivateProfileMsg struct {
	Profile *domain.Profile
}

// DeleteProfileMsg is sent to delete a profile
type DeleteProfileMsg struct {
	Profile *domain.Profile
}

// CreateProfileMsg is sent when a new profile is named
type CreateProfileMsg struct {
	Name string
}

// ResetGameMsg asks to reset the game install
type ResetGameMsg struct{}

// maxListedFiles caps the file preview under the selected profile
const maxListedFiles = 8

var activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))

// Profiles is the profile management view
type Profiles struct {
	keys          Keys
	game          *domain.Game
	profiles      []*domain.Profile
	activeProfile string
	selected      int
	creating      bool
	nameInput     textinput.Model
	width         int
	height        int
}

// NewProfiles creates a new profiles view
func NewProfiles(keys Keys, game *domain.Game, profiles []*domain.Profile, activeProfile string) Profiles {
	ti := textinput.New()
	ti.Placeholder = "Profile name..."
	ti.CharLimit = 50
	ti.Width = 30

	p := Profiles{
		keys:          keys,
		game:          game,
		profiles:      profiles,
		activeProfile: activeProfile,
		nameInput:     ti,
		width:         80,
		height:        24,
	}
	// Start on the active profile
	for i, profile := range profiles {
		if profile.Name == activeProfile {
			p.selected = i
		}
	}
	return p
}

// Selected returns the currently selected index
func (p Profiles) Selected() int {
	return p.selected
}

// ProfileCount returns the number of profiles
func (p Profiles) ProfileCount() int {
	return len(p.profiles)
}

// SelectName moves the cursor to the named profile if it is listed
func (p Profiles) SelectName(name string) Profiles {
	for i, profile := range p.profiles {
		if profile.Name == name {
			p.selected = i
		}
	}
	return p
}

// IsCreating returns whether the name prompt is open
func (p Profiles) IsCreating() bool {
	return p.creating
}

// SelectedProfile returns the currently selected profile
func (p Profiles) SelectedProfile() *domain.Profile {
	if len(p.profiles) == 0 || p.selected >= len(p.profiles) {
		return nil
	}
	return p.profiles[p.selected]
}

// Init implements tea.Model
func (p Profiles) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (p Profiles) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if p.creating {
			return p.handleCreateMode(msg)
		}
		return p.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil
	}

	return p, nil
}

func (p Profiles) handleCreateMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		p.creating = false
		p.nameInput.Reset()
		p.nameInput.Blur()
		return p, nil

	case tea.KeyEnter:
		name := p.nameInput.Value()
		if name == "" {
			return p, nil
		}
		p.creating = false
		p.nameInput.Reset()
		p.nameInput.Blur()
		return p, func() tea.Msg {
			return CreateProfileMsg{Name: name}
		}

	default:
		var cmd tea.Cmd
		p.nameInput, cmd = p.nameInput.Update(msg)
		return p, cmd
	}
}

func (p Profiles) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if next, ok := moveCursor(p.keys, msg, p.selected, len(p.profiles)); ok {
		p.selected = next
		return p, nil
	}

	switch {
	case p.keys.IsConfirm(msg):
		if profile := p.SelectedProfile(); profile != nil {
			return p, func() tea.Msg {
				return ActivateProfileMsg{Profile: profile}
			}
		}

	case p.keys.IsNew(msg):
		p.creating = true
		p.nameInput.Focus()
		return p, textinput.Blink

	case p.keys.IsDelete(msg):
		// The active profile cannot be deleted from here
		if profile := p.SelectedProfile(); profile != nil && profile.Name != p.activeProfile {
			return p, func() tea.Msg {
				return DeleteProfileMsg{Profile: profile}
			}
		}

	case p.keys.IsReset(msg):
		if p.game != nil {
			return p, func() tea.Msg {
				return ResetGameMsg{}
			}
		}
	}

	return p, nil
}

// View implements tea.Model
func (p Profiles) View() string {
	output := titleStyle.Render("Profiles") + "\n"

	gameName := "No game selected"
	if p.game != nil {
		gameName = p.game.DisplayName()
	}
	output += infoStyle.Render(fmt.Sprintf("Game: %s", gameName)) + "\n\n"

	if p.creating {
		output += "New profile name: " + p.nameInput.View() + "\n\n"
		output += infoStyle.Render("enter: create  esc: cancel")
		return output
	}

	if len(p.profiles) == 0 {
		output += itemStyle.Render("No profiles configured.") + "\n\n"
		output += infoStyle.Render("Press 'n' to create a new profile.") + "\n"
		return output
	}

	for i, profile := range p.profiles {
		cursor := "  "
		style := itemStyle
		if i == p.selected {
			cursor = "▸ "
			style = selectedStyle
		}

		status := ""
		if profile.Name == p.activeProfile {
			status = activeStyle.Render(" [active]")
		}
		output += style.Render(fmt.Sprintf("%s%s%s", cursor, profile.Name, status)) + "\n"

		if i == p.selected {
			output += detailStyle.Render(fmt.Sprintf("Files: %d", len(profile.Files))) + "\n"
			for j, file := range profile.Files {
				if j == maxListedFiles {
					output += detailStyle.Render(fmt.Sprintf("  ... and %d more", len(profile.Files)-maxListedFiles)) + "\n"
					break
				}
				output += detailStyle.Render("  "+file) + "\n"
			}
			output += "\n"
		}
	}

	output += helpStyle.Render("enter: use & link  n: new  d: delete  r: reset game")
	return output
}
