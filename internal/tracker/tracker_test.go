package tracker_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nhle/leetcode-tracker/internal/goals"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/store"
	"github.com/nhle/leetcode-tracker/internal/tracker"
	"github.com/nhle/leetcode-tracker/tests/testutil"
)

type env struct {
	svc     *tracker.Service
	store   store.Store
	fetcher *testutil.FakeFetcher
	clock   *testutil.Clock
	ctx     context.Context
}

func newEnv(t *testing.T, problems ...model.Problem) *env {
	t.Helper()
	e := &env{
		store:   testutil.NewTestStore(t),
		fetcher: &testutil.FakeFetcher{Problems: problems},
		clock:   testutil.NewClock(time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC)),
		ctx:     context.Background(),
	}
	e.svc = tracker.New(e.store, e.fetcher, tracker.Options{
		FreshnessDays: 1,
		Now:           e.clock.Now,
		Logger:        zaptest.NewLogger(t),
	})
	return e
}

func defaultCatalog() []model.Problem {
	return []model.Problem{
		testutil.Problem("1", "Two Sum", model.DifficultyEasy),
		testutil.Problem("2", "Add Two Numbers", model.DifficultyMedium),
		testutil.Problem("4", "Median of Two Sorted Arrays", model.DifficultyHard),
	}
}

func ids(records []model.SolvedRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestMarkSolvedIsIdempotent(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)
	_, err := e.svc.Daily(e.ctx, e.svc.Today(), false)
	require.NoError(t, err)

	first, err := e.svc.MarkSolved(e.ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, tracker.OutcomeMarked, first.Outcome)
	assert.Equal(t, "Two Sum", first.Record.Title)
	assert.Equal(t, e.clock.Now(), first.Record.SolvedAt)

	second, err := e.svc.MarkSolved(e.ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, tracker.OutcomeAlreadySolved, second.Outcome)

	solved, err := e.svc.Solved(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(solved))
}

func TestMarkThenUnmarkRestoresLedger(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)
	_, err := e.svc.Daily(e.ctx, e.svc.Today(), false)
	require.NoError(t, err)

	_, err = e.svc.MarkSolved(e.ctx, "2")
	require.NoError(t, err)
	before, err := e.svc.Solved(e.ctx)
	require.NoError(t, err)

	_, err = e.svc.MarkSolved(e.ctx, "4")
	require.NoError(t, err)
	res, err := e.svc.MarkUnsolved(e.ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, tracker.OutcomeUnmarked, res.Outcome)

	after, err := e.svc.Solved(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, ids(before), ids(after))
}

func TestMarkUnsolvedMissingIsNoop(t *testing.T) {
	e := newEnv(t)

	res, err := e.svc.MarkUnsolved(e.ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, tracker.OutcomeNotSolved, res.Outcome)
	assert.False(t, res.Outcome.Changed())
}

func TestMarkSolvedUnknownProblem(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)

	_, err := e.svc.MarkSolved(e.ctx, "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, tracker.ErrProblemNotFound))
	assert.Equal(t, 1, e.fetcher.Calls, "a missing catalog is refreshed once")

	solved, err := e.svc.Solved(e.ctx)
	require.NoError(t, err)
	assert.Empty(t, solved)
}

func TestMarkSolvedFallsBackToDailyCache(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)
	date := e.svc.Today()
	view, err := e.svc.Daily(e.ctx, date, false)
	require.NoError(t, err)
	require.NotNil(t, view.Selection.Hard)

	// Catalog no longer lists the problem, but the stored selection does.
	require.NoError(t, e.store.SaveCatalog(e.ctx, model.CatalogCache{
		FetchedOn: date,
		Problems:  map[string]model.Problem{},
	}))

	res, err := e.svc.MarkSolved(e.ctx, "4")
	require.NoError(t, err)
	assert.Equal(t, tracker.OutcomeMarked, res.Outcome)
	assert.Equal(t, model.DifficultyHard, res.Record.Difficulty)
	assert.Equal(t, 1, e.fetcher.Calls)
}

func TestMarkSolvedNetworkFailureReportsNotFound(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)
	e.fetcher.Err = errors.New("offline")

	_, err := e.svc.MarkSolved(e.ctx, "1")
	assert.ErrorIs(t, err, tracker.ErrProblemNotFound)
}

func TestDailyMarksSolvedProblems(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)
	date := e.svc.Today()

	_, err := e.svc.Daily(e.ctx, date, false)
	require.NoError(t, err)
	_, err = e.svc.MarkSolved(e.ctx, "1")
	require.NoError(t, err)

	view, err := e.svc.Daily(e.ctx, date, false)
	require.NoError(t, err)
	assert.True(t, view.Cached)
	require.NotNil(t, view.Selection.Easy)
	assert.Equal(t, "1", view.Selection.Easy.ID)
	assert.True(t, view.Solved["1"])
	assert.False(t, view.Solved["2"])
}

func TestEmptyProfileBootstrapsStarterGoals(t *testing.T) {
	e := newEnv(t)

	p, err := e.svc.Profile(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Stats.TotalSolved)
	assert.Equal(t, 0, p.Stats.CurrentStreak)
	assert.True(t, p.Bootstrapped)
	assert.Len(t, p.Goals, 3)

	p, err = e.svc.Profile(e.ctx)
	require.NoError(t, err)
	assert.False(t, p.Bootstrapped)
	assert.Len(t, p.Goals, 3)
}

func TestMutationRefreshesGoals(t *testing.T) {
	e := newEnv(t, defaultCatalog()...)
	_, err := e.svc.CreateGoal(e.ctx, goals.NewGoal{Type: model.GoalTotalSolved, Target: 2})
	require.NoError(t, err)
	_, err = e.svc.Daily(e.ctx, e.svc.Today(), false)
	require.NoError(t, err)

	_, err = e.svc.MarkSolved(e.ctx, "1")
	require.NoError(t, err)
	gs, err := e.store.LoadGoals(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, gs[0].Current)
	assert.Equal(t, model.GoalActive, gs[0].Status)

	_, err = e.svc.MarkSolved(e.ctx, "2")
	require.NoError(t, err)
	gs, err = e.store.LoadGoals(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, gs[0].Status)

	// Completed goals are not reverted by later unmarks.
	_, err = e.svc.MarkUnsolved(e.ctx, "2")
	require.NoError(t, err)
	gs, err = e.store.LoadGoals(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, model.GoalCompleted, gs[0].Status)
	assert.Equal(t, 2, gs[0].Current)
}

func TestSolvedSortedNumerically(t *testing.T) {
	e := newEnv(t)
	at := e.clock.Now()
	require.NoError(t, e.store.SaveSolved(e.ctx, []model.SolvedRecord{
		{ID: "100", Title: "c", Difficulty: model.DifficultyEasy, SolvedAt: at},
		{ID: "9", Title: "b", Difficulty: model.DifficultyEasy, SolvedAt: at},
		{ID: "12", Title: "a", Difficulty: model.DifficultyEasy, SolvedAt: at},
	}))

	solved, err := e.svc.Solved(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"9", "12", "100"}, ids(solved))
}

func TestWeeklyReport(t *testing.T) {
	e := newEnv(t)
	now := e.clock.Now()
	require.NoError(t, e.store.SaveSolved(e.ctx, []model.SolvedRecord{
		{ID: "1", Title: "a", Difficulty: model.DifficultyEasy, SolvedAt: now.Add(-24 * time.Hour)},
		{ID: "2", Title: "b", Difficulty: model.DifficultyHard, SolvedAt: now.Add(-8 * 24 * time.Hour)},
	}))

	report, err := e.svc.WeeklyReport(e.ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Total())
	assert.Equal(t, 1, report.ByDifficulty[model.DifficultyEasy])
}
