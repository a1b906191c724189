package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/catalog"
	"github.com/nhle/leetcode-tracker/internal/daily"
	"github.com/nhle/leetcode-tracker/internal/goals"
	"github.com/nhle/leetcode-tracker/internal/model"
	"github.com/nhle/leetcode-tracker/internal/source"
	"github.com/nhle/leetcode-tracker/internal/stats"
	"github.com/nhle/leetcode-tracker/internal/store"
)

// ErrProblemNotFound is returned when a problem id is in neither the
// catalog cache nor any daily selection.
var ErrProblemNotFound = errors.New("problem not found")

// Outcome is the informational result of a ledger mutation.
type Outcome int

const (
	OutcomeMarked Outcome = iota + 1
	OutcomeAlreadySolved
	OutcomeUnmarked
	OutcomeNotSolved
)

func (o Outcome) String() string {
	switch o {
	case OutcomeMarked:
		return "marked"
	case OutcomeAlreadySolved:
		return "already solved"
	case OutcomeUnmarked:
		return "unmarked"
	case OutcomeNotSolved:
		return "not solved"
	}
	return "unknown"
}

// Changed reports whether the mutation altered the ledger.
func (o Outcome) Changed() bool {
	return o == OutcomeMarked || o == OutcomeUnmarked
}

// MarkResult describes what a mark or unmark did.
type MarkResult struct {
	Outcome Outcome
	Record  model.SolvedRecord
}

// DailyView is a daily selection together with which of its problems are
// already solved.
type DailyView struct {
	Selection model.DailySelection
	Cached    bool
	Solved    map[string]bool
}

// Profile is the aggregate view of the ledger and goals.
type Profile struct {
	Today        model.Date
	Stats        model.UserStats
	Goals        []model.Goal
	Bootstrapped bool
}

// Service ties the ledger, caches, selection, and goals together.
type Service struct {
	store    store.Store
	catalog  *catalog.Cache
	selector *daily.Selector
	goals    *goals.Engine
	now      func() time.Time
	logger   *zap.Logger
}

// Options configures a Service.
type Options struct {
	FreshnessDays int
	Now           func() time.Time
	Logger        *zap.Logger
	Daily         daily.Options
}

// New wires a Service over a store and a catalog source.
func New(s store.Store, f source.Fetcher, opts Options) *Service {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Daily.Logger == nil {
		opts.Daily.Logger = opts.Logger
	}

	c := catalog.New(s, f, catalog.Options{
		FreshnessDays: opts.FreshnessDays,
		Now:           opts.Now,
		Logger:        opts.Logger,
	})

	return &Service{
		store:    s,
		catalog:  c,
		selector: daily.New(s, c, opts.Daily),
		goals:    goals.NewEngine(s, opts.Now, opts.Logger),
		now:      opts.Now,
		logger:   opts.Logger,
	}
}

// Today is the current UTC date.
func (s *Service) Today() model.Date {
	return model.DateOf(s.now())
}

// Daily returns the selection for date, drawing it on first request.
func (s *Service) Daily(ctx context.Context, date model.Date, force bool) (DailyView, error) {
	res, err := s.selector.Select(ctx, date, force)
	if err != nil {
		return DailyView{}, fmt.Errorf("selecting problems for %s: %w", date, err)
	}

	records, err := s.store.LoadSolved(ctx)
	if err != nil {
		return DailyView{}, err
	}

	return DailyView{
		Selection: res.Selection,
		Cached:    res.Cached,
		Solved:    model.SolvedIDs(records),
	}, nil
}

// MarkSolved appends a record for id stamped with the current time.
func (s *Service) MarkSolved(ctx context.Context, id string) (MarkResult, error) {
	id = strings.TrimSpace(id)
	records, err := s.store.LoadSolved(ctx)
	if err != nil {
		return MarkResult{}, err
	}
	for _, r := range records {
		if r.ID == id {
			return MarkResult{Outcome: OutcomeAlreadySolved, Record: r}, nil
		}
	}

	p, err := s.resolve(ctx, id)
	if err != nil {
		return MarkResult{}, err
	}

	rec := model.NewSolvedRecord(p, s.now())
	records = append(records, rec)
	if err := s.store.SaveSolved(ctx, records); err != nil {
		return MarkResult{}, fmt.Errorf("saving solved ledger: %w", err)
	}
	s.logger.Debug("marked solved", zap.String("id", id))

	if _, err := s.goals.Refresh(ctx); err != nil {
		return MarkResult{}, fmt.Errorf("refreshing goals: %w", err)
	}
	return MarkResult{Outcome: OutcomeMarked, Record: rec}, nil
}

// MarkUnsolved removes the record for id if present.
func (s *Service) MarkUnsolved(ctx context.Context, id string) (MarkResult, error) {
	id = strings.TrimSpace(id)
	records, err := s.store.LoadSolved(ctx)
	if err != nil {
		return MarkResult{}, err
	}

	idx := -1
	for i, r := range records {
		if r.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return MarkResult{Outcome: OutcomeNotSolved}, nil
	}

	removed := records[idx]
	records = append(records[:idx], records[idx+1:]...)
	if err := s.store.SaveSolved(ctx, records); err != nil {
		return MarkResult{}, fmt.Errorf("saving solved ledger: %w", err)
	}
	s.logger.Debug("marked unsolved", zap.String("id", id))

	if _, err := s.goals.Refresh(ctx); err != nil {
		return MarkResult{}, fmt.Errorf("refreshing goals: %w", err)
	}
	return MarkResult{Outcome: OutcomeUnmarked, Record: removed}, nil
}

// resolve finds problem metadata in the catalog cache, then in any daily
// selection. When both miss and the catalog is stale it refreshes once.
func (s *Service) resolve(ctx context.Context, id string) (model.Problem, error) {
	p, found, fresh, err := s.catalog.Lookup(ctx, id)
	if err != nil {
		return model.Problem{}, err
	}
	if found {
		return p, nil
	}

	selections, err := s.selector.Cached(ctx)
	if err != nil {
		return model.Problem{}, err
	}
	for _, sel := range selections {
		if p, ok := sel.Find(id); ok {
			return p, nil
		}
	}

	if !fresh {
		problems, err := s.catalog.Refresh(ctx)
		if err != nil {
			s.logger.Warn("catalog refresh failed while resolving problem",
				zap.String("id", id), zap.Error(err))
		} else if p, ok := problems[id]; ok {
			return p, nil
		}
	}

	return model.Problem{}, fmt.Errorf("%w: %s", ErrProblemNotFound, id)
}

// Solved returns the ledger ordered by problem id.
func (s *Service) Solved(ctx context.Context) ([]model.SolvedRecord, error) {
	records, err := s.store.LoadSolved(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return model.CompareIDs(records[i].ID, records[j].ID) < 0
	})
	return records, nil
}

// Stats computes the statistics for today.
func (s *Service) Stats(ctx context.Context) (model.UserStats, error) {
	records, err := s.store.LoadSolved(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	return stats.Compute(records, s.Today()), nil
}

// Profile computes statistics and refreshed goals, creating the starter
// goals on first use.
func (s *Service) Profile(ctx context.Context) (Profile, error) {
	st, err := s.Stats(ctx)
	if err != nil {
		return Profile{}, err
	}

	gs, created, err := s.goals.Bootstrap(ctx)
	if err != nil {
		return Profile{}, fmt.Errorf("loading goals: %w", err)
	}

	return Profile{
		Today:        s.Today(),
		Stats:        st,
		Goals:        gs,
		Bootstrapped: created,
	}, nil
}

// Goals returns every goal after recomputing the active ones.
func (s *Service) Goals(ctx context.Context) ([]model.Goal, error) {
	return s.goals.Refresh(ctx)
}

// CreateGoal adds a user-defined goal.
func (s *Service) CreateGoal(ctx context.Context, g goals.NewGoal) (model.Goal, error) {
	return s.goals.Create(ctx, g)
}

// BootstrapGoals creates the starter goals if no goal exists yet.
func (s *Service) BootstrapGoals(ctx context.Context) ([]model.Goal, bool, error) {
	return s.goals.Bootstrap(ctx)
}

// WeeklyReport summarizes the trailing seven days.
func (s *Service) WeeklyReport(ctx context.Context) (stats.WeeklyReport, error) {
	records, err := s.store.LoadSolved(ctx)
	if err != nil {
		return stats.WeeklyReport{}, err
	}
	return stats.Weekly(records, s.now()), nil
}

// RefreshCatalog fetches the catalog regardless of its age and returns
// how many problems it holds.
func (s *Service) RefreshCatalog(ctx context.Context) (int, error) {
	problems, err := s.catalog.Refresh(ctx)
	if err != nil {
		return 0, err
	}
	return len(problems), nil
}
