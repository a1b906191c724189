package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/nhle/leetcode-tracker/internal/catalog"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/tests/testutil"
)

func newCache(t *testing.T, fetcher *testutil.FakeFetcher, clock *testutil.Clock, freshness int) *catalog.Cache {
	t.Helper()
	s := testutil.NewTestStore(t)
	return catalog.New(s, fetcher, catalog.Options{
		FreshnessDays: freshness,
		Now:           clock.Now,
		Logger:        zaptest.NewLogger(t),
	})
}

func TestProblemsFetchesOncePerDay(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	fetcher := &testutil.FakeFetcher{Problems: []model.Problem{
		testutil.Problem("1", "Two Sum", model.DifficultyEasy),
	}}
	c := newCache(t, fetcher, clock, 1)

	got, err := c.Problems(ctx, false)
	require.NoError(t, err)
	assert.Contains(t, got, "1")
	assert.Equal(t, 1, fetcher.Calls)

	clock.Advance(10 * time.Hour)
	_, err = c.Problems(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 1, fetcher.Calls, "same day must be served from cache")

	clock.Advance(10 * time.Hour)
	_, err = c.Problems(ctx, false)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.Calls, "next day must refetch")
}

func TestProblemsForceBypassesCache(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	fetcher := &testutil.FakeFetcher{Problems: []model.Problem{
		testutil.Problem("1", "Two Sum", model.DifficultyEasy),
	}}
	c := newCache(t, fetcher, clock, 1)

	_, err := c.Problems(ctx, false)
	require.NoError(t, err)
	_, err = c.Problems(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.Calls)
}

func TestFreshnessWindow(t *testing.T) {
	clock := testutil.NewClock(time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC))
	c := newCache(t, &testutil.FakeFetcher{}, clock, 3)
	today := model.NewDate(2024, 5, 10)

	assert.True(t, c.Fresh(&model.CatalogCache{FetchedOn: today}, today))
	assert.True(t, c.Fresh(&model.CatalogCache{FetchedOn: today.AddDays(-2)}, today))
	assert.False(t, c.Fresh(&model.CatalogCache{FetchedOn: today.AddDays(-3)}, today))
	assert.False(t, c.Fresh(&model.CatalogCache{FetchedOn: today.AddDays(1)}, today))
	assert.False(t, c.Fresh(nil, today))
}

func TestFailedFetchKeepsCache(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	fetcher := &testutil.FakeFetcher{Problems: []model.Problem{
		testutil.Problem("1", "Two Sum", model.DifficultyEasy),
	}}
	c := newCache(t, fetcher, clock, 1)

	_, err := c.Problems(ctx, false)
	require.NoError(t, err)

	fetcher.Err = errors.New("network down")
	_, err = c.Problems(ctx, true)
	require.Error(t, err)

	p, found, fresh, err := c.Lookup(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.True(t, fresh)
	assert.Equal(t, "Two Sum", p.Title)
}

func TestLookupStaleCatalog(t *testing.T) {
	ctx := context.Background()
	clock := testutil.NewClock(time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC))
	fetcher := &testutil.FakeFetcher{Problems: []model.Problem{
		testutil.Problem("1", "Two Sum", model.DifficultyEasy),
	}}
	c := newCache(t, fetcher, clock, 1)

	_, found, _, err := c.Lookup(ctx, "1")
	require.NoError(t, err)
	assert.False(t, found)

	_, err = c.Problems(ctx, false)
	require.NoError(t, err)

	clock.Advance(72 * time.Hour)
	_, found, fresh, err := c.Lookup(ctx, "1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.False(t, fresh)
}

func TestEligibleFiltersAndSorts(t *testing.T) {
	paid := testutil.Problem("5", "Paid", model.DifficultyEasy)
	paid.PaidOnly = true

	problems := map[string]model.Problem{
		"10": testutil.Problem("10", "Ten", model.DifficultyEasy),
		"2":  testutil.Problem("2", "Two", model.DifficultyEasy),
		"3":  testutil.Problem("3", "Three", model.DifficultyHard),
		"5":  paid,
		"7":  testutil.Problem("7", "Seven", model.DifficultyEasy),
	}

	tiers := catalog.Eligible(problems, map[string]bool{"7": true})

	ids := func(ps []model.Problem) []string {
		out := make([]string, 0, len(ps))
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}
	assert.Equal(t, []string{"2", "10"}, ids(tiers[model.DifficultyEasy]))
	assert.Empty(t, tiers[model.DifficultyMedium])
	assert.Equal(t, []string{"3"}, ids(tiers[model.DifficultyHard]))
}
