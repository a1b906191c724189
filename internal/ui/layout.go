package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/leetcode-tracker/internal/theme"
)

const (
	headerHeight    = 1
	statusBarHeight = 1

	// minPanelWidth is the narrowest a side-by-side panel may get before
	// the dashboard stacks panels vertically.
	minPanelWidth = 36
)

// Layout holds the terminal dimensions the dashboard renders into.
type Layout struct {
	Width  int
	Height int
}

// NewLayout creates a Layout for a terminal of the given size.
func NewLayout(width, height int) Layout {
	return Layout{Width: width, Height: height}
}

// BodyHeight returns the rows left between the header and the status bar.
func (l Layout) BodyHeight() int {
	h := l.Height - headerHeight - statusBarHeight
	if h < 0 {
		return 0
	}
	return h
}

// SideBySide reports whether two panels fit next to each other.
func (l Layout) SideBySide() bool {
	return l.Width >= 2*minPanelWidth
}

// Columns joins two panels horizontally when they fit, vertically otherwise.
func (l Layout) Columns(left, right string) string {
	if l.SideBySide() {
		return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
	}
	return lipgloss.JoinVertical(lipgloss.Left, left, right)
}

// Header renders the title bar with right-aligned context such as a date.
func (l Layout) Header(title, context string) string {
	return l.bar(theme.HeaderStyle, title, context)
}

// StatusBar renders the bottom bar.
func (l Layout) StatusBar(text string) string {
	return l.bar(theme.StatusBarStyle, text, "")
}

// Frame stacks header, body and status bar, padding the body so the status
// bar stays on the last row.
func (l Layout) Frame(header, body, status string) string {
	if h := l.BodyHeight(); h > 0 && lipgloss.Height(body) < h {
		body = lipgloss.NewStyle().Height(h).Render(body)
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status)
}

// bar fills the full width with style, placing left and right at the edges.
func (l Layout) bar(style lipgloss.Style, left, right string) string {
	leftRendered := style.Render(left)
	rightRendered := ""
	if right != "" {
		rightRendered = style.Render(right)
	}

	gap := l.Width - lipgloss.Width(leftRendered) - lipgloss.Width(rightRendered)
	if gap < 0 {
		gap = 0
	}
	filler := lipgloss.NewStyle().
		Width(gap).
		Background(style.GetBackground()).
		Render("")

	return lipgloss.JoinHorizontal(lipgloss.Top, leftRendered, filler, rightRendered)
}
