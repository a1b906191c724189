package catalog

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/source"
	"github.com/nhle/leetcode-tracker/internal/store"
)

// Cache serves the problem catalog from the local cache while it is
// fresh and refreshes it from the remote source otherwise.
type Cache struct {
	store         store.Store
	fetcher       source.Fetcher
	freshnessDays int
	now           func() time.Time
	logger        *zap.Logger
}

// Options configures a Cache.
type Options struct {
	// FreshnessDays is how many calendar days a fetched catalog stays valid.
	FreshnessDays int
	Now           func() time.Time
	Logger        *zap.Logger
}

// New creates a catalog cache.
func New(s store.Store, f source.Fetcher, opts Options) *Cache {
	if opts.FreshnessDays < 1 {
		opts.FreshnessDays = 1
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Cache{
		store:         s,
		fetcher:       f,
		freshnessDays: opts.FreshnessDays,
		now:           opts.Now,
		logger:        opts.Logger.Named("catalog"),
	}
}

// Fresh reports whether a cached catalog is still valid on today.
func (c *Cache) Fresh(cached *model.CatalogCache, today model.Date) bool {
	if cached == nil || cached.FetchedOn.IsZero() {
		return false
	}
	age := cached.FetchedOn.DaysUntil(today)
	return age >= 0 && age < c.freshnessDays
}

// Problems returns the catalog, fetching it when the cache is stale or
// force is set. A failed fetch leaves the cached copy untouched.
func (c *Cache) Problems(ctx context.Context, force bool) (map[string]model.Problem, error) {
	today := model.DateOf(c.now())

	if !force {
		cached, err := c.store.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		if c.Fresh(cached, today) {
			c.logger.Debug("catalog cache hit", zap.Stringer("fetched_on", cached.FetchedOn))
			return cached.Problems, nil
		}
	}

	return c.Refresh(ctx)
}

// Refresh fetches the catalog unconditionally and replaces the cache.
func (c *Cache) Refresh(ctx context.Context) (map[string]model.Problem, error) {
	if c.fetcher == nil {
		return nil, fmt.Errorf("no catalog source configured")
	}

	problems, err := c.fetcher.FetchCatalog(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]model.Problem, len(problems))
	for _, p := range problems {
		byID[p.ID] = p
	}

	cache := model.CatalogCache{
		FetchedOn: model.DateOf(c.now()),
		Problems:  byID,
	}
	if err := c.store.SaveCatalog(ctx, cache); err != nil {
		return nil, fmt.Errorf("saving catalog cache: %w", err)
	}

	c.logger.Debug("catalog refreshed", zap.Int("problems", len(byID)))
	return byID, nil
}

// Lookup finds a problem in the cached catalog regardless of its age.
// fresh reports whether the cached catalog is current.
func (c *Cache) Lookup(ctx context.Context, id string) (p model.Problem, found bool, fresh bool, err error) {
	cached, err := c.store.LoadCatalog(ctx)
	if err != nil {
		return model.Problem{}, false, false, err
	}
	if cached == nil {
		return model.Problem{}, false, false, nil
	}
	p, found = cached.Problems[id]
	return p, found, c.Fresh(cached, model.DateOf(c.now())), nil
}

// Eligible partitions the free problems not in solved by difficulty.
// Each tier is sorted by id so the order does not depend on how the
// catalog was produced.
func Eligible(problems map[string]model.Problem, solved map[string]bool) map[model.Difficulty][]model.Problem {
	tiers := make(map[model.Difficulty][]model.Problem, len(model.Difficulties))
	for _, p := range problems {
		if p.PaidOnly || solved[p.ID] || !p.Difficulty.Valid() {
			continue
		}
		tiers[p.Difficulty] = append(tiers[p.Difficulty], p)
	}
	for d := range tiers {
		tier := tiers[d]
		sort.Slice(tier, func(i, j int) bool {
			return model.CompareIDs(tier[i].ID, tier[j].ID) < 0
		})
	}
	return tiers
}
