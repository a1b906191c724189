package theme

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/leetcode-tracker/internal/model"
)

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for section headers and the dashboard title.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// TitleStyle is used for problem and goal names.
var TitleStyle = lipgloss.NewStyle().Bold(true)

// LinkStyle is used for problem URLs.
var LinkStyle = lipgloss.NewStyle().
	Foreground(ColorBlue).
	Underline(true)

// StatusBarStyle is used for the dashboard status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// PanelStyle wraps a dashboard panel.
var PanelStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// SelectedItemStyle highlights the focused daily problem.
var SelectedItemStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// ListItemStyle is the base style for unfocused items.
var ListItemStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// HelpStyle is used for hints and secondary text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)

// ErrorStyle is used for error lines.
var ErrorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorRed)

// SuccessStyle is used for confirmations and the solved marker.
var SuccessStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// DifficultyStyle returns a color-coded style for a difficulty tier.
func DifficultyStyle(d model.Difficulty) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch d {
	case model.DifficultyEasy:
		return base.Foreground(ColorGreen)
	case model.DifficultyMedium:
		return base.Foreground(ColorYellow)
	case model.DifficultyHard:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// DifficultyIcon returns the marker shown before a difficulty.
func DifficultyIcon(d model.Difficulty) string {
	switch d {
	case model.DifficultyEasy:
		return "🟢"
	case model.DifficultyMedium:
		return "🟡"
	case model.DifficultyHard:
		return "🔴"
	default:
		return "⚪"
	}
}

// GoalStatusStyle returns a color-coded style for a goal status.
func GoalStatusStyle(s model.GoalStatus) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch s {
	case model.GoalActive:
		return base.Foreground(ColorBlue)
	case model.GoalCompleted:
		return base.Foreground(ColorGreen)
	case model.GoalFailed:
		return base.Foreground(ColorRed)
	default:
		return base.Foreground(ColorGray)
	}
}

// HeatmapStyle colors a heatmap cell by level (0 to 4).
func HeatmapStyle(level int) lipgloss.Style {
	base := lipgloss.NewStyle()

	switch {
	case level <= 0:
		return base.Foreground(ColorSubtle)
	case level == 1, level == 2:
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGreen).Bold(true)
	}
}
