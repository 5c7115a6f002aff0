package views

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Keys classifies key presses for the views
type Keys interface {
	IsUp(tea.KeyMsg) bool
	IsDown(tea.KeyMsg) bool
	IsHome(tea.KeyMsg) bool
	IsEnd(tea.KeyMsg) bool
	IsConfirm(tea.KeyMsg) bool
	IsDelete(tea.KeyMsg) bool
	IsNew(tea.KeyMsg) bool
	IsReset(tea.KeyMsg) bool
	IsUnlink(tea.KeyMsg) bool
}

// moveCursor applies a navigation key to a cursor over n items, wrapping at
// both ends. ok is false when the key is not a navigation key.
func moveCursor(keys Keys, msg tea.KeyMsg, cur, n int) (next int, ok bool) {
	if n == 0 {
		return 0, false
	}
	switch {
	case keys.IsUp(msg):
		cur--
		if cur < 0 {
			cur = n - 1
		}
	case keys.IsDown(msg):
		cur++
		if cur >= n {
			cur = 0
		}
	case keys.IsHome(msg):
		cur = 0
	case keys.IsEnd(msg):
		cur = n - 1
	default:
		return cur, false
	}
	return cur, true
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("69")).
			MarginBottom(1)

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	itemStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	selectedStyle = lipgloss.NewStyle().
			PaddingLeft(2).
			Foreground(lipgloss.Color("205")).
			Bold(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			PaddingLeft(4)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)
