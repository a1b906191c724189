package help

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/leetcode-tracker/internal/keys"
	"github.com/nhle/leetcode-tracker/internal/theme"
)

// Model renders key hints: a one-line summary for the status bar and a
// full overlay.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a help model for k.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{keys: k, help: h, width: width, height: height}
}

// Short renders the compact bindings on one line.
func (m Model) Short() string {
	m.help.ShowAll = false
	return m.help.View(m.keys)
}

// Full renders every binding grouped in a bordered panel.
func (m Model) Full() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Keyboard Shortcuts")

	m.help.ShowAll = true
	m.help.Width = m.width - 4

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(lipgloss.JoinVertical(lipgloss.Left, title, m.help.View(m.keys)))
}

// SetSize updates the available dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}
