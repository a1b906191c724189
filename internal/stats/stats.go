package stats

import (
	"sort"
	"strings"
	"time"

	"github.com/nhle/leetcode-tracker/internal/model"
)

// HeatmapDays is the length of the trailing activity window.
const HeatmapDays = 30

// WeekWindow is the trailing window used by weekly reports and weekly goals.
const WeekWindow = 7 * 24 * time.Hour

// HeatmapLevels maps a per-day solve count (capped at 4) to its symbol.
var HeatmapLevels = [...]rune{'·', '░', '▒', '▓', '█'}

// Compute derives the user's statistics from the ledger as of today.
func Compute(records []model.SolvedRecord, today model.Date) model.UserStats {
	dates := SolveDates(records)
	return model.UserStats{
		TotalSolved:   len(records),
		ByDifficulty:  CountByDifficulty(records),
		CurrentStreak: CurrentStreak(dates, today),
		LongestStreak: LongestStreak(dates),
		Heatmap:       Heatmap(records, today),
	}
}

// SolveDates collapses the ledger to the set of UTC dates with at least one
// solve. Undated records are ignored.
func SolveDates(records []model.SolvedRecord) map[model.Date]bool {
	dates := make(map[model.Date]bool)
	for _, r := range records {
		if !r.Dated() {
			continue
		}
		dates[model.DateOf(r.SolvedAt)] = true
	}
	return dates
}

// CurrentStreak counts consecutive solve dates walking back from today.
// It is zero when today has no solve.
func CurrentStreak(dates map[model.Date]bool, today model.Date) int {
	n := 0
	for d := today; dates[d]; d = d.AddDays(-1) {
		n++
	}
	return n
}

// LongestStreak returns the longest run of consecutive solve dates.
func LongestStreak(dates map[model.Date]bool) int {
	if len(dates) == 0 {
		return 0
	}

	sorted := make([]model.Date, 0, len(dates))
	for d := range dates {
		sorted = append(sorted, d)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Before(sorted[j]) })

	longest, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].AddDays(1).Equal(sorted[i]) {
			run++
		} else {
			run = 1
		}
		if run > longest {
			longest = run
		}
	}
	return longest
}

// DailyCounts returns the number of solves on each of the HeatmapDays days
// ending today, oldest first.
func DailyCounts(records []model.SolvedRecord, today model.Date) []int {
	start := today.AddDays(-(HeatmapDays - 1))
	counts := make([]int, HeatmapDays)
	for _, r := range records {
		if !r.Dated() {
			continue
		}
		offset := start.DaysUntil(model.DateOf(r.SolvedAt))
		if offset >= 0 && offset < HeatmapDays {
			counts[offset]++
		}
	}
	return counts
}

// Level maps a solve count to a heatmap level in [0, 4].
func Level(count int) int {
	switch {
	case count <= 0:
		return 0
	case count >= len(HeatmapLevels)-1:
		return len(HeatmapLevels) - 1
	default:
		return count
	}
}

// Heatmap renders the trailing window as one symbol per day, oldest first.
func Heatmap(records []model.SolvedRecord, today model.Date) string {
	var b strings.Builder
	for _, c := range DailyCounts(records, today) {
		b.WriteRune(HeatmapLevels[Level(c)])
	}
	return b.String()
}

// CountByDifficulty tallies records by the difficulty stored at solve time.
// Every known difficulty is present in the result.
func CountByDifficulty(records []model.SolvedRecord) map[model.Difficulty]int {
	counts := make(map[model.Difficulty]int, len(model.Difficulties))
	for _, d := range model.Difficulties {
		counts[d] = 0
	}
	for _, r := range records {
		counts[r.Difficulty]++
	}
	return counts
}

// SolvedSince returns the records solved at or after since, oldest first.
func SolvedSince(records []model.SolvedRecord, since time.Time) []model.SolvedRecord {
	var out []model.SolvedRecord
	for _, r := range records {
		if r.Dated() && !r.SolvedAt.Before(since) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].SolvedAt.Before(out[j].SolvedAt) })
	return out
}

// WeeklyReport summarizes the solves in the trailing WeekWindow.
type WeeklyReport struct {
	Since        time.Time
	Until        time.Time
	Records      []model.SolvedRecord
	ByDifficulty map[model.Difficulty]int
}

// Total is the number of solves in the window.
func (w WeeklyReport) Total() int {
	return len(w.Records)
}

// Weekly builds the report for the window ending at now.
func Weekly(records []model.SolvedRecord, now time.Time) WeeklyReport {
	since := now.Add(-WeekWindow)
	recent := SolvedSince(records, since)
	return WeeklyReport{
		Since:        since,
		Until:        now,
		Records:      recent,
		ByDifficulty: CountByDifficulty(recent),
	}
}

// WeeklyCount is the number of solves in the trailing WeekWindow.
func WeeklyCount(records []model.SolvedRecord, now time.Time) int {
	return len(SolvedSince(records, now.Add(-WeekWindow)))
}
