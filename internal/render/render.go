// Package render formats tracker data as styled terminal text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/stats"
	"github.com/nhle/leetcode-tracker/internal/theme"
	"github.com/nhle/leetcode-tracker/internal/tracker"
)

// SolvedMarker is appended to problems already in the ledger.
const SolvedMarker = "✅"

// ProgressWidth is the number of cells in a goal progress bar.
const ProgressWidth = 20

// Daily writes the three problems of a daily selection.
func Daily(w io.Writer, view tracker.DailyView) {
	fmt.Fprintln(w, theme.HeaderStyle.Render("Daily problems for "+view.Selection.Date.String()))
	for _, d := range model.Difficulties {
		fmt.Fprintln(w)
		fmt.Fprintln(w, Problem(d, view.Selection.Pick(d), view.Solved))
	}
}

// Problem formats one tier of a daily selection. p may be nil.
func Problem(d model.Difficulty, p *model.Problem, solved map[string]bool) string {
	label := theme.DifficultyIcon(d) + " " + theme.DifficultyStyle(d).Render(string(d))
	if p == nil {
		return label + "\n   " + theme.HelpStyle.Render("no unsolved problem available")
	}

	title := theme.TitleStyle.Render(fmt.Sprintf("%s. %s", p.ID, p.Title))
	if solved[p.ID] {
		title += " " + SolvedMarker
	}

	var b strings.Builder
	b.WriteString(label + "\n")
	b.WriteString("   " + title + "\n")
	b.WriteString(fmt.Sprintf("   Acceptance: %.1f%%\n", p.AcceptanceRate))
	b.WriteString("   " + theme.LinkStyle.Render(p.URL()))
	return b.String()
}

// Mark writes the outcome of a mark or unmark.
func Mark(w io.Writer, id string, res tracker.MarkResult) {
	switch res.Outcome {
	case tracker.OutcomeMarked:
		fmt.Fprintln(w, theme.SuccessStyle.Render(
			fmt.Sprintf("%s Marked %s. %s as solved", SolvedMarker, res.Record.ID, res.Record.Title)))
	case tracker.OutcomeAlreadySolved:
		fmt.Fprintf(w, "Problem %s is already marked as solved\n", id)
	case tracker.OutcomeUnmarked:
		fmt.Fprintf(w, "Removed %s. %s from solved problems\n", res.Record.ID, res.Record.Title)
	case tracker.OutcomeNotSolved:
		fmt.Fprintf(w, "Problem %s is not in solved problems\n", id)
	}
}

// Solved writes the ledger, one record per line.
func Solved(w io.Writer, records []model.SolvedRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, theme.HelpStyle.Render("No problems solved yet"))
		return
	}

	fmt.Fprintln(w, theme.HeaderStyle.Render(fmt.Sprintf("Solved problems (%d)", len(records))))
	for _, r := range records {
		line := fmt.Sprintf("%s %s. %s", theme.DifficultyIcon(r.Difficulty), r.ID, r.Title)
		if r.Dated() {
			line += "  " + theme.HelpStyle.Render(model.DateOf(r.SolvedAt).String())
		}
		fmt.Fprintln(w, line)
		fmt.Fprintln(w, "   "+theme.LinkStyle.Render(r.URL()))
	}
}

// Profile writes statistics, the heatmap, and goals.
func Profile(w io.Writer, p tracker.Profile) {
	fmt.Fprintln(w, theme.HeaderStyle.Render("Profile"))
	fmt.Fprintln(w, Stats(p.Stats))
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Last 30 days")
	fmt.Fprintln(w, Heatmap(p.Stats.Heatmap))
	fmt.Fprintln(w)
	if p.Bootstrapped {
		fmt.Fprintln(w, theme.HelpStyle.Render("Created starter goals"))
	}
	Goals(w, p.Goals)
}

// Stats formats totals and streaks.
func Stats(s model.UserStats) string {
	lines := []string{
		fmt.Sprintf("Total solved:   %d", s.TotalSolved),
	}
	for _, d := range model.Difficulties {
		lines = append(lines, fmt.Sprintf("  %s %-7s %d",
			theme.DifficultyIcon(d), string(d)+":", s.ByDifficulty[d]))
	}
	lines = append(lines,
		fmt.Sprintf("Current streak: %d %s", s.CurrentStreak, days(s.CurrentStreak)),
		fmt.Sprintf("Longest streak: %d %s", s.LongestStreak, days(s.LongestStreak)),
	)
	return strings.Join(lines, "\n")
}

func days(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}

// Heatmap colors each heatmap cell by its level.
func Heatmap(h string) string {
	levels := make(map[rune]int, len(stats.HeatmapLevels))
	for i, r := range stats.HeatmapLevels {
		levels[r] = i
	}

	var b strings.Builder
	for _, r := range h {
		b.WriteString(theme.HeatmapStyle(levels[r]).Render(string(r)))
	}
	return b.String()
}

// Goals writes each goal with a progress bar.
func Goals(w io.Writer, goals []model.Goal) {
	if len(goals) == 0 {
		fmt.Fprintln(w, theme.HelpStyle.Render("No goals yet"))
		return
	}
	fmt.Fprintln(w, theme.HeaderStyle.Render("Goals"))
	for _, g := range goals {
		fmt.Fprintln(w, Goal(g))
	}
}

// Goal formats a single goal on two lines.
func Goal(g model.Goal) string {
	status := theme.GoalStatusStyle(g.Status).Render(string(g.Status))
	head := fmt.Sprintf("#%d %s [%s]", g.ID, theme.TitleStyle.Render(g.Name), status)

	kind := g.Type.Label()
	if g.Type == model.GoalDifficultyCount && g.Difficulty != "" {
		kind = fmt.Sprintf("%s (%s)", kind, g.Difficulty)
	}
	detail := fmt.Sprintf("   %s %d/%d  %s  due %s",
		ProgressBar(g.Progress(), ProgressWidth), g.Current, g.Target, kind, g.Deadline)
	return head + "\n" + detail
}

// ProgressBar draws a fixed-width bar filled to ratio.
func ProgressBar(ratio float64, width int) string {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	filled := int(ratio*float64(width) + 0.5)
	return lipgloss.NewStyle().Foreground(theme.ColorGreen).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.ColorSubtle).Render(strings.Repeat("░", width-filled))
}

// Weekly writes the trailing seven day report.
func Weekly(w io.Writer, r stats.WeeklyReport) {
	fmt.Fprintln(w, theme.HeaderStyle.Render(fmt.Sprintf("Weekly report %s to %s",
		model.DateOf(r.Since), model.DateOf(r.Until))))
	fmt.Fprintf(w, "Solved this week: %d\n", r.Total())
	for _, d := range model.Difficulties {
		fmt.Fprintf(w, "  %s %-7s %d\n", theme.DifficultyIcon(d), string(d)+":", r.ByDifficulty[d])
	}
	if r.Total() == 0 {
		return
	}
	fmt.Fprintln(w)
	for _, rec := range r.Records {
		fmt.Fprintf(w, "%s  %s %s. %s\n",
			theme.HelpStyle.Render(rec.SolvedAt.Format("2006-01-02 15:04")),
			theme.DifficultyIcon(rec.Difficulty), rec.ID, rec.Title)
	}
}

// Error writes a styled error line.
func Error(w io.Writer, err error) {
	fmt.Fprintln(w, theme.ErrorStyle.Render("Error: "+err.Error()))
}
