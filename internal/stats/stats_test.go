package stats_test

import (
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/stats"
)

var today = model.NewDate(2024, 5, 20)

func solvedOn(id string, d model.Difficulty, day model.Date, hour int) model.SolvedRecord {
	return model.SolvedRecord{
		ID:         id,
		Title:      "Problem " + id,
		Slug:       "problem-" + id,
		Difficulty: d,
		SolvedAt:   day.Time().Add(time.Duration(hour) * time.Hour),
	}
}

func TestStreakConsecutiveDays(t *testing.T) {
	records := []model.SolvedRecord{
		solvedOn("1", model.DifficultyEasy, today, 9),
		solvedOn("2", model.DifficultyEasy, today.AddDays(-1), 9),
		solvedOn("3", model.DifficultyMedium, today.AddDays(-2), 23),
	}

	s := stats.Compute(records, today)
	assert.Equal(t, 3, s.CurrentStreak)
	assert.GreaterOrEqual(t, s.LongestStreak, 3)
}

func TestStreakWithGap(t *testing.T) {
	records := []model.SolvedRecord{
		solvedOn("1", model.DifficultyEasy, today.AddDays(-5), 9),
		solvedOn("2", model.DifficultyEasy, today.AddDays(-3), 9),
	}

	s := stats.Compute(records, today)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
}

func TestStreakSameDaySolvesCollapse(t *testing.T) {
	records := []model.SolvedRecord{
		solvedOn("1", model.DifficultyEasy, today, 1),
		solvedOn("2", model.DifficultyEasy, today, 2),
		solvedOn("3", model.DifficultyEasy, today, 3),
	}

	s := stats.Compute(records, today)
	assert.Equal(t, 1, s.CurrentStreak)
	assert.Equal(t, 1, s.LongestStreak)
	assert.Equal(t, 3, s.TotalSolved)
}

func TestLongestStreakInPast(t *testing.T) {
	var records []model.SolvedRecord
	for i := 0; i < 4; i++ {
		records = append(records, solvedOn(string(rune('a'+i)), model.DifficultyHard, today.AddDays(-20+i), 12))
	}
	records = append(records, solvedOn("z", model.DifficultyHard, today.AddDays(-1), 12))

	s := stats.Compute(records, today)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 4, s.LongestStreak)
}

func TestEmptyLedger(t *testing.T) {
	s := stats.Compute(nil, today)

	assert.Equal(t, 0, s.TotalSolved)
	assert.Equal(t, 0, s.CurrentStreak)
	assert.Equal(t, 0, s.LongestStreak)
	assert.Equal(t, map[model.Difficulty]int{
		model.DifficultyEasy:   0,
		model.DifficultyMedium: 0,
		model.DifficultyHard:   0,
	}, s.ByDifficulty)
	assert.Equal(t, stats.HeatmapDays, utf8.RuneCountInString(s.Heatmap))
}

func TestHeatmapLevels(t *testing.T) {
	var records []model.SolvedRecord
	add := func(day model.Date, n int) {
		for i := 0; i < n; i++ {
			records = append(records, solvedOn(day.String()+string(rune('a'+i)), model.DifficultyEasy, day, i))
		}
	}
	add(today, 1)
	add(today.AddDays(-1), 2)
	add(today.AddDays(-2), 3)
	add(today.AddDays(-3), 4)
	add(today.AddDays(-4), 7)
	add(today.AddDays(-29), 1)
	add(today.AddDays(-30), 5) // outside the window
	add(today.AddDays(1), 5)   // future

	runes := []rune(stats.Heatmap(records, today))
	require.Len(t, runes, stats.HeatmapDays)

	assert.Equal(t, '░', runes[0], "oldest day in window")
	assert.Equal(t, '█', runes[25])
	assert.Equal(t, '█', runes[26])
	assert.Equal(t, '▓', runes[27])
	assert.Equal(t, '▒', runes[28])
	assert.Equal(t, '░', runes[29], "today is last")
	for _, r := range runes[1:25] {
		assert.Equal(t, '·', r)
	}
}

func TestHeatmapAlwaysWindowLength(t *testing.T) {
	symbols := map[rune]bool{}
	for _, r := range stats.HeatmapLevels {
		symbols[r] = true
	}

	ledgers := [][]model.SolvedRecord{
		nil,
		{solvedOn("1", model.DifficultyEasy, today, 0)},
		{solvedOn("1", model.DifficultyEasy, today.AddDays(-400), 0)},
		{{ID: "legacy", Difficulty: model.DifficultyMedium}},
	}
	for _, ledger := range ledgers {
		h := stats.Heatmap(ledger, today)
		assert.Equal(t, stats.HeatmapDays, utf8.RuneCountInString(h))
		for _, r := range h {
			assert.True(t, symbols[r], "unexpected symbol %q", r)
		}
	}
}

func TestLevelIsMonotonic(t *testing.T) {
	prev := stats.Level(0)
	assert.Equal(t, 0, prev)
	for c := 1; c <= 20; c++ {
		l := stats.Level(c)
		assert.GreaterOrEqual(t, l, prev)
		assert.LessOrEqual(t, l, 4)
		prev = l
	}
	assert.Equal(t, 4, stats.Level(4))
}

func TestCountByDifficultyUsesRecordedDifficulty(t *testing.T) {
	records := []model.SolvedRecord{
		solvedOn("1", model.DifficultyEasy, today, 0),
		solvedOn("2", model.DifficultyHard, today, 0),
		solvedOn("3", model.DifficultyHard, today, 0),
		{ID: "4", Difficulty: model.DifficultyMedium}, // undated
	}

	s := stats.Compute(records, today)
	assert.Equal(t, 4, s.TotalSolved)
	assert.Equal(t, 1, s.ByDifficulty[model.DifficultyEasy])
	assert.Equal(t, 1, s.ByDifficulty[model.DifficultyMedium])
	assert.Equal(t, 2, s.ByDifficulty[model.DifficultyHard])
	assert.Equal(t, 1, s.CurrentStreak)
}

func TestWeeklyWindowIsTrailing(t *testing.T) {
	now := time.Date(2024, 5, 20, 15, 0, 0, 0, time.UTC)
	records := []model.SolvedRecord{
		{ID: "1", Difficulty: model.DifficultyEasy, SolvedAt: now.Add(-time.Hour)},
		{ID: "2", Difficulty: model.DifficultyHard, SolvedAt: now.Add(-stats.WeekWindow)},
		{ID: "3", Difficulty: model.DifficultyEasy, SolvedAt: now.Add(-stats.WeekWindow - time.Minute)},
		{ID: "4", Difficulty: model.DifficultyMedium, SolvedAt: now.Add(-3 * 24 * time.Hour)},
		{ID: "5", Difficulty: model.DifficultyMedium},
	}

	report := stats.Weekly(records, now)
	assert.Equal(t, 3, report.Total())
	assert.Equal(t, 3, stats.WeeklyCount(records, now))
	assert.Equal(t, []string{"2", "4", "1"}, []string{
		report.Records[0].ID, report.Records[1].ID, report.Records[2].ID,
	})
	assert.Equal(t, 1, report.ByDifficulty[model.DifficultyEasy])
	assert.Equal(t, 1, report.ByDifficulty[model.DifficultyMedium])
	assert.Equal(t, 1, report.ByDifficulty[model.DifficultyHard])
}
