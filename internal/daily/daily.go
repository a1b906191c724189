package daily

import (
	"context"
	"fmt"
	"math/bits"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/catalog"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/store"
)

// Result is a daily selection and whether it came from the per-date cache.
type Result struct {
	Selection model.DailySelection
	Cached    bool
}

// Selector picks one free, unsolved problem per tier for a date.
type Selector struct {
	store   store.Store
	catalog *catalog.Cache
	newRand func(seed uint64) *rand.Rand
	logger  *zap.Logger
}

// Options configures a Selector.
type Options struct {
	// NewRand builds the generator for a date seed. Defaults to NewRand.
	NewRand func(seed uint64) *rand.Rand
	Logger  *zap.Logger
}

// NewRand returns the deterministic generator used for a date seed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

// New creates a Selector.
func New(s store.Store, c *catalog.Cache, opts Options) *Selector {
	if opts.NewRand == nil {
		opts.NewRand = NewRand
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Selector{
		store:   s,
		catalog: c,
		newRand: opts.NewRand,
		logger:  opts.Logger.Named("daily"),
	}
}

// Select returns the selection for date. A cached selection is returned
// as stored without touching the catalog or the generator. force refreshes
// the catalog and redraws.
func (s *Selector) Select(ctx context.Context, date model.Date, force bool) (Result, error) {
	cache, err := s.store.LoadDaily(ctx)
	if err != nil {
		return Result{}, err
	}

	key := date.String()
	if sel, ok := cache[key]; ok && !force {
		s.logger.Debug("daily cache hit", zap.String("date", key))
		return Result{Selection: sel, Cached: true}, nil
	}

	problems, err := s.catalog.Problems(ctx, force)
	if err != nil {
		return Result{}, err
	}
	solved, err := s.store.LoadSolved(ctx)
	if err != nil {
		return Result{}, err
	}

	tiers := catalog.Eligible(problems, model.SolvedIDs(solved))
	sel := Draw(date, tiers, s.newRand(date.Seed()))

	cache[key] = sel
	if err := s.store.SaveDaily(ctx, cache); err != nil {
		return Result{}, fmt.Errorf("saving daily selection: %w", err)
	}

	s.logger.Debug("drew daily selection", zap.String("date", key))
	return Result{Selection: sel}, nil
}

// Cached returns every stored selection.
func (s *Selector) Cached(ctx context.Context) (model.DailyCache, error) {
	return s.store.LoadDaily(ctx)
}

// Draw makes exactly one draw per tier, in Difficulties order, from r.
// An empty tier still consumes its draw so the other tiers do not depend
// on it. Candidates must already be in a canonical order.
func Draw(date model.Date, tiers map[model.Difficulty][]model.Problem, r *rand.Rand) model.DailySelection {
	sel := model.DailySelection{Date: date}
	for _, d := range model.Difficulties {
		n := r.Uint64()
		candidates := tiers[d]
		if len(candidates) == 0 {
			continue
		}
		idx, _ := bits.Mul64(n, uint64(len(candidates)))
		p := candidates[idx]
		sel.SetPick(d, &p)
	}
	return sel
}
