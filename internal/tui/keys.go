package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap defines keybindings for the TUI
type KeyMap struct {
	mode string
}

// NewKeyMap creates a new keymap for the given mode
func NewKeyMap(mode string) *KeyMap {
	if mode == "" {
		mode = "vim"
	}
	return &KeyMap{mode: mode}
}

// Mode returns the current keybinding mode
func (k *KeyMap) Mode() string {
	return k.mode
}

// IsUp returns true if the key is an "up" navigation key
func (k *KeyMap) IsUp(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyUp {
		return true
	}
	return k.mode == "vim" && msg.String() == "k"
}

// IsDown returns true if the key is a "down" navigation key
func (k *KeyMap) IsDown(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyDown {
		return true
	}
	return k.mode == "vim" && msg.String() == "j"
}

// IsHome returns true if the key should go to first item
func (k *KeyMap) IsHome(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyHome {
		return true
	}
	return k.mode == "vim" && msg.String() == "g"
}

// IsEnd returns true if the key should go to last item
func (k *KeyMap) IsEnd(msg tea.KeyMsg) bool {
	if msg.Type == tea.KeyEnd {
		return true
	}
	return k.mode == "vim" && msg.String() == "G"
}

// IsConfirm returns true if the key is a confirm/select key
func (k *KeyMap) IsConfirm(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEnter || msg.String() == " "
}

// IsCancel returns true if the key is a cancel/back key
func (k *KeyMap) IsCancel(msg tea.KeyMsg) bool {
	return msg.Type == tea.KeyEsc
}

// IsQuit returns true if the key is a quit key
func (k *KeyMap) IsQuit(msg tea.KeyMsg) bool {
	return msg.String() == "q" || msg.Type == tea.KeyCtrlC
}

// IsHelp returns true if the key should show help
func (k *KeyMap) IsHelp(msg tea.KeyMsg) bool {
	return msg.String() == "?"
}

// IsDelete returns true if the key is a delete key
func (k *KeyMap) IsDelete(msg tea.KeyMsg) bool {
	return msg.String() == "d" || msg.Type == tea.KeyDelete
}

// IsNew returns true if the key starts creating an item
func (k *KeyMap) IsNew(msg tea.KeyMsg) bool {
	return msg.String() == "n"
}

// IsReset returns true if the key resets the game install
func (k *KeyMap) IsReset(msg tea.KeyMsg) bool {
	return msg.String() == "r"
}

// IsUnlink returns true if the key removes linked files
func (k *KeyMap) IsUnlink(msg tea.KeyMsg) bool {
	return msg.String() == "u"
}

// NavigationHelp returns help text for navigation keys
func (k *KeyMap) NavigationHelp() string {
	if k.mode == "vim" {
		return "j/k: navigate  g/G: first/last"
	}
	return "↑/↓: navigate  home/end: first/last"
}

// FullHelp returns complete help text
func (k *KeyMap) FullHelp() string {
	nav := `  j/k     Move down/up
  g/G     Go to first/last item`
	if k.mode != "vim" {
		nav = `  ↑/↓     Move up/down
  Home    Go to first item
  End     Go to last item`
	}

	return "Navigation:\n" + nav + `
  1/2/3   Games / Profiles / Linked files

Actions:
  enter   Select game, or use profile and link it
  n       New profile
  d       Delete profile
  r       Reset game install (Steam re-validates it)
  u       Remove linked files
  ?       Help
  q       Quit`
}
